package trusthub

import "strings"

// Profile statuses reported by TrustHub.
const (
	StatusDraft          = "draft"
	StatusPendingReview  = "pending-review"
	StatusInReview       = "in-review"
	StatusTwilioRejected = "twilio-rejected"
	StatusTwilioApproved = "twilio-approved"
)

// CustomerProfile is a TrustHub customer profile bundle.
type CustomerProfile struct {
	SID                 string  `json:"sid"`
	AccountSID          string  `json:"account_sid"`
	FriendlyName        string  `json:"friendly_name"`
	Status              string  `json:"status"`
	Email               string  `json:"email"`
	PolicySID           string  `json:"policy_sid"`
	DateCreated         string  `json:"date_created"`
	DateUpdated         string  `json:"date_updated"`
	CustomerProfileType *string `json:"customer_profile_type,omitempty"`
	ParentProfileSID    *string `json:"parent_profile_sid,omitempty"`
}

// AssignmentKind classifies an entity assignment.
type AssignmentKind string

const (
	KindDocument AssignmentKind = "supporting-document"
	KindEndUser  AssignmentKind = "end-user"
	KindOther    AssignmentKind = "other"
)

// EntityAssignment links an object (supporting document, end user, phone
// number) to a customer profile.
type EntityAssignment struct {
	SID                string  `json:"sid"`
	CustomerProfileSID string  `json:"customer_profile_sid"`
	ObjectSID          string  `json:"object_sid"`
	ObjectType         *string `json:"object_type,omitempty"`
	Status             *string `json:"status,omitempty"`
	Note               *string `json:"note,omitempty"`
	DateCreated        string  `json:"date_created"`
}

// Kind classifies by object_type when present, otherwise by the object SID
// prefix (RD for documents, IT for end users).
func (a EntityAssignment) Kind() AssignmentKind {
	if t, ok := first(a.ObjectType); ok {
		t = strings.ToLower(t)
		switch {
		case strings.Contains(t, "document"):
			return KindDocument
		case strings.Contains(strings.NewReplacer("_", "", "-", "", " ", "").Replace(t), "enduser"):
			return KindEndUser
		default:
			return KindOther
		}
	}
	switch {
	case strings.HasPrefix(a.ObjectSID, "RD"):
		return KindDocument
	case strings.HasPrefix(a.ObjectSID, "IT"):
		return KindEndUser
	default:
		return KindOther
	}
}

// Detail returns status, falling back to note. Empty when neither is set.
func (a EntityAssignment) Detail() string {
	v, _ := first(a.Status, a.Note)
	return v
}

// channelEndpointAssignment is the wire shape of a channel endpoint
// assignment; ListChannelEndpointAssignments maps it onto EntityAssignment.
type channelEndpointAssignment struct {
	SID                 string  `json:"sid"`
	CustomerProfileSID  string  `json:"customer_profile_sid"`
	ChannelEndpointType string  `json:"channel_endpoint_type"`
	ChannelEndpointSID  string  `json:"channel_endpoint_sid"`
	Status              *string `json:"status,omitempty"`
	DateCreated         string  `json:"date_created"`
}

func (c channelEndpointAssignment) assignment() EntityAssignment {
	a := EntityAssignment{
		SID:                c.SID,
		CustomerProfileSID: c.CustomerProfileSID,
		ObjectSID:          c.ChannelEndpointSID,
		Status:             c.Status,
		DateCreated:        c.DateCreated,
	}
	if c.ChannelEndpointType != "" {
		t := c.ChannelEndpointType
		a.ObjectType = &t
	}
	return a
}

// SplitAssignments divides assignments into documents, end users and the rest,
// preserving order within each group.
func SplitAssignments(all []EntityAssignment) (docs, endUsers, others []EntityAssignment) {
	for _, a := range all {
		switch a.Kind() {
		case KindDocument:
			docs = append(docs, a)
		case KindEndUser:
			endUsers = append(endUsers, a)
		default:
			others = append(others, a)
		}
	}
	return docs, endUsers, others
}

// BrandRegistration is a US A2P 10DLC brand registration.
type BrandRegistration struct {
	SID                      string  `json:"sid"`
	AccountSID               string  `json:"account_sid"`
	CustomerProfileBundleSID *string `json:"customer_profile_bundle_sid,omitempty"`
	CustomerProfileSID       *string `json:"customer_profile_sid,omitempty"`
	A2PProfileBundleSID      *string `json:"a2p_profile_bundle_sid,omitempty"`
	BrandName                *string `json:"brand_name,omitempty"`
	BrandType                *string `json:"brand_type,omitempty"`
	Status                   *string `json:"status,omitempty"`
	RegistrationStatus       *string `json:"registration_status,omitempty"`
	FailureReason            *string `json:"failure_reason,omitempty"`
	DateCreated              string  `json:"date_created"`
}

// ProfileRef returns customer_profile_bundle_sid, falling back to
// customer_profile_sid.
func (b BrandRegistration) ProfileRef() (string, bool) {
	return first(b.CustomerProfileBundleSID, b.CustomerProfileSID)
}

// DisplayName returns brand_name, falling back to brand_type.
func (b BrandRegistration) DisplayName() string {
	v, _ := first(b.BrandName, b.BrandType)
	return v
}

// State returns status, falling back to registration_status.
func (b BrandRegistration) State() string {
	v, _ := first(b.Status, b.RegistrationStatus)
	return v
}

// MessagingService is a Messaging Service.
type MessagingService struct {
	SID                      string  `json:"sid"`
	AccountSID               string  `json:"account_sid"`
	FriendlyName             string  `json:"friendly_name"`
	CustomerProfileSID       *string `json:"customer_profile_sid,omitempty"`
	CustomerProfileBundleSID *string `json:"customer_profile_bundle_sid,omitempty"`
	A2PCampaignSID           *string `json:"a2p_campaign_sid,omitempty"`
	A2PCampaignID            *string `json:"a2p_campaign_id,omitempty"`
	UsAppToPersonRegistered  bool    `json:"us_app_to_person_registered"`
	DateCreated              string  `json:"date_created"`
}

// ProfileRef returns customer_profile_sid, falling back to
// customer_profile_bundle_sid.
func (s MessagingService) ProfileRef() (string, bool) {
	return first(s.CustomerProfileSID, s.CustomerProfileBundleSID)
}

// CampaignRef returns a2p_campaign_sid, falling back to a2p_campaign_id.
func (s MessagingService) CampaignRef() (string, bool) {
	return first(s.A2PCampaignSID, s.A2PCampaignID)
}

// Campaign is a US A2P campaign (the Usa2p compliance record of a Messaging
// Service).
type Campaign struct {
	SID                  string  `json:"sid"`
	AccountSID           string  `json:"account_sid"`
	MessagingServiceSID  string  `json:"messaging_service_sid"`
	BrandRegistrationSID string  `json:"brand_registration_sid"`
	CampaignID           *string `json:"campaign_id,omitempty"`
	CampaignStatus       *string `json:"campaign_status,omitempty"`
	Status               *string `json:"status,omitempty"`
	UsAppToPersonUsecase *string `json:"us_app_to_person_usecase,omitempty"`
	UseCase              *string `json:"use_case,omitempty"`
	Description          string  `json:"description"`
	DateCreated          string  `json:"date_created"`
}

// State returns campaign_status, falling back to status.
func (c Campaign) State() string {
	v, _ := first(c.CampaignStatus, c.Status)
	return v
}

// UseCaseLabel returns us_app_to_person_usecase, falling back to use_case.
func (c Campaign) UseCaseLabel() string {
	v, _ := first(c.UsAppToPersonUsecase, c.UseCase)
	return v
}

// Account is a Twilio account or subaccount.
type Account struct {
	SID             string `json:"sid"`
	OwnerAccountSID string `json:"owner_account_sid"`
	FriendlyName    string `json:"friendly_name"`
	Status          string `json:"status"`
	Type            string `json:"type"`
	DateCreated     string `json:"date_created"`
}

// first returns the first present, non-empty value.
func first(vals ...*string) (string, bool) {
	for _, v := range vals {
		if v != nil && *v != "" {
			return *v, true
		}
	}
	return "", false
}
