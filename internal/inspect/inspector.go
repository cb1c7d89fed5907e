// Package inspect assembles TrustHub reports from independent remote
// lookups: a single-profile inspection, an account-wide health check, and a
// subaccount overview. A failed lookup degrades its own section only.
package inspect

import (
	"context"

	"github.com/twctl/twctl/internal/logger"
	"github.com/twctl/twctl/internal/trusthub"
	"go.uber.org/zap"
)

// DefaultLimit caps account-wide listings when none is configured.
const DefaultLimit = 200

// Inspector runs inspections against one account.
type Inspector struct {
	client *trusthub.Client
	limit  int
}

// New creates an Inspector. A limit <= 0 uses DefaultLimit.
func New(client *trusthub.Client, limit int) *Inspector {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Inspector{client: client, limit: limit}
}

// Run inspects one customer profile. It fails only when the SID is invalid
// or the profile itself cannot be fetched; every related lookup that fails is
// recorded in its section and the report is still returned.
func (in *Inspector) Run(ctx context.Context, sid string) (*Report, error) {
	log := logger.FromContext(ctx).Named("inspect").With(zap.String("profile_sid", sid))

	if err := trusthub.CheckProfileSID(sid); err != nil {
		return nil, err
	}

	profile, err := in.client.FetchProfile(ctx, sid)
	if err != nil {
		log.Debug("profile fetch failed", zap.Error(err))
		return nil, err
	}
	report := &Report{Profile: *profile}

	entities, err := in.client.ListEntityAssignments(ctx, sid)
	report.Entities = section(entities, err)

	channels, err := in.client.ListChannelEndpointAssignments(ctx, sid)
	report.Channels = section(channels, err)

	brands, err := in.client.ListBrands(ctx, in.limit)
	report.Brands = section(correlateBrands(brands, sid), err)

	campaigns, err := in.client.ListCampaigns(ctx, in.limit)
	report.Campaigns = section(correlateCampaigns(campaigns, report.Brands), err)

	services, err := in.client.ListMessagingServices(ctx, in.limit)
	report.Services = section(correlateServices(services, sid), err)

	for _, f := range report.Failures() {
		log.Warn("section unavailable", zap.String("section", f.Name), zap.Error(f.Err))
	}
	log.Debug("inspection finished", zap.Bool("partial", report.Partial()))
	return report, nil
}

func correlateBrands(brands []trusthub.BrandRegistration, sid string) []BrandRow {
	rows := make([]BrandRow, len(brands))
	for i, b := range brands {
		ref, ok := b.ProfileRef()
		rows[i] = BrandRow{Brand: b, Link: trusthub.Correlate(ref, ok, sid)}
	}
	return rows
}

// correlateCampaigns links each campaign through its brand. Without the
// brand listing, or when the brand is not in it, the link stays unknown.
func correlateCampaigns(campaigns []trusthub.Campaign, brands Section[BrandRow]) []CampaignRow {
	byBrand := make(map[string]BrandRow, len(brands.Items))
	for _, row := range brands.Items {
		byBrand[row.Brand.SID] = row
	}

	rows := make([]CampaignRow, len(campaigns))
	for i, c := range campaigns {
		rows[i] = CampaignRow{Campaign: c, Link: trusthub.LinkUnknown}
		if !brands.Available() {
			continue
		}
		if row, ok := byBrand[c.BrandRegistrationSID]; ok {
			brand := row.Brand
			rows[i].Brand = &brand
			rows[i].Link = row.Link
		}
	}
	return rows
}

func correlateServices(services []trusthub.MessagingService, sid string) []ServiceRow {
	rows := make([]ServiceRow, len(services))
	for i, s := range services {
		ref, ok := s.ProfileRef()
		rows[i] = ServiceRow{Service: s, Link: trusthub.Correlate(ref, ok, sid)}
	}
	return rows
}
