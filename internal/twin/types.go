package twin

// Record shapes served by the twin. Fields that Twilio omits on some
// accounts or API versions are pointers so fixtures can leave them absent.

// CustomerProfile is a TrustHub customer profile bundle.
type CustomerProfile struct {
	SID          string `json:"sid" yaml:"sid"`
	AccountSID   string `json:"account_sid" yaml:"account_sid"`
	FriendlyName string `json:"friendly_name" yaml:"friendly_name"`
	Status       string `json:"status" yaml:"status"`
	Email        string `json:"email" yaml:"email"`
	PolicySID    string `json:"policy_sid" yaml:"policy_sid"`
	DateCreated  string `json:"date_created" yaml:"date_created"`
	DateUpdated  string `json:"date_updated" yaml:"date_updated"`
	URL          string `json:"url,omitempty" yaml:"-"`
}

// EntityAssignment links a supporting document or end user to a profile.
type EntityAssignment struct {
	SID                string  `json:"sid" yaml:"sid"`
	CustomerProfileSID string  `json:"customer_profile_sid" yaml:"customer_profile_sid"`
	AccountSID         string  `json:"account_sid" yaml:"account_sid"`
	ObjectSID          string  `json:"object_sid" yaml:"object_sid"`
	ObjectType         *string `json:"object_type,omitempty" yaml:"object_type,omitempty"`
	Status             *string `json:"status,omitempty" yaml:"status,omitempty"`
	Note               *string `json:"note,omitempty" yaml:"note,omitempty"`
	DateCreated        string  `json:"date_created" yaml:"date_created"`
}

// ChannelEndpointAssignment links a phone number or other endpoint to a
// profile.
type ChannelEndpointAssignment struct {
	SID                 string  `json:"sid" yaml:"sid"`
	CustomerProfileSID  string  `json:"customer_profile_sid" yaml:"customer_profile_sid"`
	AccountSID          string  `json:"account_sid" yaml:"account_sid"`
	ChannelEndpointType string  `json:"channel_endpoint_type" yaml:"channel_endpoint_type"`
	ChannelEndpointSID  string  `json:"channel_endpoint_sid" yaml:"channel_endpoint_sid"`
	Status              *string `json:"status,omitempty" yaml:"status,omitempty"`
	DateCreated         string  `json:"date_created" yaml:"date_created"`
}

// BrandRegistration is a US A2P 10DLC brand.
type BrandRegistration struct {
	SID                      string  `json:"sid" yaml:"sid"`
	AccountSID               string  `json:"account_sid" yaml:"account_sid"`
	CustomerProfileBundleSID *string `json:"customer_profile_bundle_sid,omitempty" yaml:"customer_profile_bundle_sid,omitempty"`
	CustomerProfileSID       *string `json:"customer_profile_sid,omitempty" yaml:"customer_profile_sid,omitempty"`
	A2PProfileBundleSID      *string `json:"a2p_profile_bundle_sid,omitempty" yaml:"a2p_profile_bundle_sid,omitempty"`
	BrandName                *string `json:"brand_name,omitempty" yaml:"brand_name,omitempty"`
	BrandType                *string `json:"brand_type,omitempty" yaml:"brand_type,omitempty"`
	Status                   *string `json:"status,omitempty" yaml:"status,omitempty"`
	RegistrationStatus       *string `json:"registration_status,omitempty" yaml:"registration_status,omitempty"`
	FailureReason            *string `json:"failure_reason,omitempty" yaml:"failure_reason,omitempty"`
	DateCreated              string  `json:"date_created" yaml:"date_created"`
}

// MessagingService is a Messaging Service that may carry an A2P campaign.
type MessagingService struct {
	SID                      string  `json:"sid" yaml:"sid"`
	AccountSID               string  `json:"account_sid" yaml:"account_sid"`
	FriendlyName             string  `json:"friendly_name" yaml:"friendly_name"`
	CustomerProfileSID       *string `json:"customer_profile_sid,omitempty" yaml:"customer_profile_sid,omitempty"`
	CustomerProfileBundleSID *string `json:"customer_profile_bundle_sid,omitempty" yaml:"customer_profile_bundle_sid,omitempty"`
	A2PCampaignSID           *string `json:"a2p_campaign_sid,omitempty" yaml:"a2p_campaign_sid,omitempty"`
	A2PCampaignID            *string `json:"a2p_campaign_id,omitempty" yaml:"a2p_campaign_id,omitempty"`
	UsAppToPersonRegistered  bool    `json:"us_app_to_person_registered" yaml:"us_app_to_person_registered"`
	DateCreated              string  `json:"date_created" yaml:"date_created"`
}

// Campaign is a US A2P compliance record attached to a Messaging Service.
type Campaign struct {
	SID                  string  `json:"sid" yaml:"sid"`
	AccountSID           string  `json:"account_sid" yaml:"account_sid"`
	MessagingServiceSID  string  `json:"messaging_service_sid" yaml:"messaging_service_sid"`
	BrandRegistrationSID string  `json:"brand_registration_sid" yaml:"brand_registration_sid"`
	CampaignID           *string `json:"campaign_id,omitempty" yaml:"campaign_id,omitempty"`
	CampaignStatus       *string `json:"campaign_status,omitempty" yaml:"campaign_status,omitempty"`
	Status               *string `json:"status,omitempty" yaml:"status,omitempty"`
	UsAppToPersonUsecase *string `json:"us_app_to_person_usecase,omitempty" yaml:"us_app_to_person_usecase,omitempty"`
	UseCase              *string `json:"use_case,omitempty" yaml:"use_case,omitempty"`
	Description          string  `json:"description" yaml:"description"`
	DateCreated          string  `json:"date_created" yaml:"date_created"`
}

// Account is a Twilio account or subaccount.
type Account struct {
	SID             string `json:"sid" yaml:"sid"`
	OwnerAccountSID string `json:"owner_account_sid" yaml:"owner_account_sid"`
	FriendlyName    string `json:"friendly_name" yaml:"friendly_name"`
	Status          string `json:"status" yaml:"status"`
	Type            string `json:"type" yaml:"type"`
	DateCreated     string `json:"date_created" yaml:"date_created"`
}

// Ptr returns a pointer to v, for filling optional fixture fields.
func Ptr[T any](v T) *T { return &v }
