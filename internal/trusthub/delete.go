package trusthub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/twctl/twctl/internal/apperrors"
	"go.uber.org/zap"
)

// DeletePreview is the first step of deleting a profile. Only PreviewDelete
// can construct a usable one.
type DeletePreview struct {
	profile CustomerProfile
}

// Profile returns the profile that would be deleted.
func (p *DeletePreview) Profile() CustomerProfile {
	return p.profile
}

// ConfirmationToken is the text the operator must type to confirm: the
// friendly name, or the SID when the profile has no name.
func (p *DeletePreview) ConfirmationToken() string {
	if p.profile.FriendlyName != "" {
		return p.profile.FriendlyName
	}
	return p.profile.SID
}

// PreviewDelete fetches the profile that DeleteProfile would remove.
func (c *Client) PreviewDelete(ctx context.Context, sid string) (*DeletePreview, error) {
	if err := CheckProfileSID(sid); err != nil {
		return nil, err
	}
	p, err := c.FetchProfile(ctx, sid)
	if err != nil {
		return nil, err
	}
	return &DeletePreview{profile: *p}, nil
}

// DeleteProfile deletes the previewed profile if typed (without its line
// ending) matches the confirmation token exactly. A mismatch returns
// ErrCancelled and nothing is sent.
func (c *Client) DeleteProfile(ctx context.Context, preview *DeletePreview, typed string) error {
	if preview == nil || preview.profile.SID == "" {
		return fmt.Errorf("delete requires a preview from PreviewDelete: %w", apperrors.ErrValidation)
	}
	sid := preview.profile.SID
	log := c.log.With(zap.String("profile_sid", sid))

	if strings.TrimRight(typed, "\r\n") != preview.ConfirmationToken() {
		log.Info("delete not confirmed")
		return fmt.Errorf("confirmation did not match %q: %w", preview.ConfirmationToken(), apperrors.ErrCancelled)
	}

	if _, err := c.do(ctx, http.MethodDelete, c.profileURL(sid)); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			log.Warn("delete rejected", zap.Int("status", apiErr.Status), zap.Int("code", apiErr.Code))
		}
		return fmt.Errorf("deleting profile %s: %w", sid, err)
	}
	log.Info("profile deleted")
	return nil
}
