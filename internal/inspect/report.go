package inspect

import "github.com/twctl/twctl/internal/trusthub"

// Section is the outcome of one independent step of an inspection. When Err
// is set the step failed and Items is empty; other sections are unaffected.
type Section[T any] struct {
	Items []T
	Err   error
}

// Available reports whether the step succeeded.
func (s Section[T]) Available() bool {
	return s.Err == nil
}

func section[T any](items []T, err error) Section[T] {
	if err != nil {
		return Section[T]{Err: err}
	}
	return Section[T]{Items: items}
}

// BrandRow is a brand registration and its apparent relation to the profile.
type BrandRow struct {
	Brand trusthub.BrandRegistration
	Link  trusthub.Link
}

// CampaignRow is a campaign, the brand it was matched to (nil when unknown),
// and the relation inherited from that brand.
type CampaignRow struct {
	Campaign trusthub.Campaign
	Brand    *trusthub.BrandRegistration
	Link     trusthub.Link
}

// ServiceRow is a Messaging Service and its apparent relation to the profile.
type ServiceRow struct {
	Service trusthub.MessagingService
	Link    trusthub.Link
}

// Report is everything twctl knows about one customer profile.
type Report struct {
	Profile   trusthub.CustomerProfile
	Entities  Section[trusthub.EntityAssignment]
	Channels  Section[trusthub.EntityAssignment]
	Brands    Section[BrandRow]
	Campaigns Section[CampaignRow]
	Services  Section[ServiceRow]
}

// SectionFailure names a section that could not be fetched.
type SectionFailure struct {
	Name string
	Err  error
}

// Failures lists the unavailable sections in report order.
func (r *Report) Failures() []SectionFailure {
	var out []SectionFailure
	add := func(name string, err error) {
		if err != nil {
			out = append(out, SectionFailure{Name: name, Err: err})
		}
	}
	add("entity assignments", r.Entities.Err)
	add("channel endpoint assignments", r.Channels.Err)
	add("brand registrations", r.Brands.Err)
	add("campaigns", r.Campaigns.Err)
	add("messaging services", r.Services.Err)
	return out
}

// Partial reports whether any section is unavailable.
func (r *Report) Partial() bool {
	return len(r.Failures()) > 0
}
