package trusthub

import (
	"context"
	"fmt"
	"net/url"

	"github.com/twctl/twctl/internal/apperrors"
	"github.com/twctl/twctl/internal/validator"
	"go.uber.org/zap"
)

func (c *Client) profileURL(sid string) string {
	return c.cfg.TrustHubURL + "/v1/CustomerProfiles/" + url.PathEscape(sid)
}

// FetchProfile returns one customer profile.
func (c *Client) FetchProfile(ctx context.Context, sid string) (*CustomerProfile, error) {
	var p CustomerProfile
	if err := c.getJSON(ctx, c.profileURL(sid), &p); err != nil {
		return nil, fmt.Errorf("fetching profile %s: %w", sid, err)
	}
	return &p, nil
}

// ListProfiles lists the account's customer profiles.
func (c *Client) ListProfiles(ctx context.Context, limit int) ([]CustomerProfile, error) {
	out, err := listAll[CustomerProfile](ctx, c, c.cfg.TrustHubURL+"/v1/CustomerProfiles", "results", limit)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	return out, nil
}

// ListEntityAssignments returns every entity assignment of a profile. All
// pages are read before the caller filters them.
func (c *Client) ListEntityAssignments(ctx context.Context, profileSID string) ([]EntityAssignment, error) {
	out, err := listAll[EntityAssignment](ctx, c, c.profileURL(profileSID)+"/EntityAssignments", "results", 0)
	if err != nil {
		return nil, fmt.Errorf("listing entity assignments of %s: %w", profileSID, err)
	}
	return out, nil
}

// ListChannelEndpointAssignments returns the channel endpoints (phone
// numbers) assigned to a profile.
func (c *Client) ListChannelEndpointAssignments(ctx context.Context, profileSID string) ([]EntityAssignment, error) {
	raw, err := listAll[channelEndpointAssignment](ctx, c, c.profileURL(profileSID)+"/ChannelEndpointAssignments", "results", 0)
	if err != nil {
		return nil, fmt.Errorf("listing channel endpoint assignments of %s: %w", profileSID, err)
	}
	out := make([]EntityAssignment, len(raw))
	for i, r := range raw {
		out[i] = r.assignment()
	}
	return out, nil
}

// ListBrands lists the account's A2P brand registrations.
func (c *Client) ListBrands(ctx context.Context, limit int) ([]BrandRegistration, error) {
	out, err := listAll[BrandRegistration](ctx, c, c.cfg.MessagingURL+"/v1/a2p/BrandRegistrations", "data", limit)
	if err != nil {
		return nil, fmt.Errorf("listing brand registrations: %w", err)
	}
	return out, nil
}

// ListMessagingServices lists the account's Messaging Services.
func (c *Client) ListMessagingServices(ctx context.Context, limit int) ([]MessagingService, error) {
	out, err := listAll[MessagingService](ctx, c, c.cfg.MessagingURL+"/v1/Services", "services", limit)
	if err != nil {
		return nil, fmt.Errorf("listing messaging services: %w", err)
	}
	return out, nil
}

// ListCampaigns lists US A2P campaigns across every Messaging Service, up to
// limit campaigns in total.
func (c *Client) ListCampaigns(ctx context.Context, limit int) ([]Campaign, error) {
	services, err := c.ListMessagingServices(ctx, 0)
	if err != nil {
		return nil, err
	}

	var out []Campaign
	for _, svc := range services {
		remaining := 0
		if limit > 0 {
			remaining = limit - len(out)
			if remaining <= 0 {
				break
			}
		}
		u := c.cfg.MessagingURL + "/v1/Services/" + url.PathEscape(svc.SID) + "/Compliance/Usa2p"
		campaigns, err := listAll[Campaign](ctx, c, u, "compliance", remaining)
		if err != nil {
			return nil, fmt.Errorf("listing campaigns of service %s: %w", svc.SID, err)
		}
		for i := range campaigns {
			if campaigns[i].MessagingServiceSID == "" {
				campaigns[i].MessagingServiceSID = svc.SID
			}
		}
		out = append(out, campaigns...)
	}
	c.log.Debug("campaigns listed", zap.Int("services", len(services)), zap.Int("campaigns", len(out)))
	return out, nil
}

// ListAccounts lists the authenticated account and its subaccounts.
func (c *Client) ListAccounts(ctx context.Context, limit int) ([]Account, error) {
	out, err := listAll[Account](ctx, c, c.cfg.CoreURL+"/2010-04-01/Accounts.json", "accounts", limit)
	if err != nil {
		return nil, fmt.Errorf("listing accounts: %w", err)
	}
	return out, nil
}

// CheckProfileSID rejects anything that is not a customer profile SID with
// an error wrapping apperrors.ErrValidation.
func CheckProfileSID(sid string) error {
	if err := validator.ProfileSID(sid); err != nil {
		return fmt.Errorf("%v: %w", err, apperrors.ErrValidation)
	}
	return nil
}
