package render

import (
	"fmt"
	"strings"

	"github.com/twctl/twctl/internal/inspect"
	"github.com/twctl/twctl/internal/trusthub"
)

// CorrelationNote explains the relation column under brand, campaign and
// service tables.
const CorrelationNote = "Note: relations are inferred from profile references on account-wide listings. " +
	"\"possibly related\" means the reference matches this profile; \"unconfirmed\" means no reference was available. " +
	"Twilio does not expose an authoritative link."

// Report renders a full inspection. Unavailable sections are shown with a
// marker in place of their table; the rest of the report is unaffected.
func Report(r *inspect.Report) string {
	var b strings.Builder
	b.WriteString(ProfilePanel(r.Profile))

	b.WriteString("\n")
	if r.Entities.Available() {
		docs, endUsers, others := trusthub.SplitAssignments(r.Entities.Items)
		b.WriteString(Assignments("Supporting Documents", docs))
		b.WriteString("\n")
		b.WriteString(Assignments("End Users", endUsers))
		if len(others) > 0 {
			b.WriteString("\n")
			b.WriteString(Assignments("Other Assignments", others))
		}
	} else {
		b.WriteString(Unavailable("entity assignments", r.Entities.Err))
	}

	b.WriteString("\n")
	if r.Channels.Available() {
		b.WriteString(Assignments("Channel Endpoints", r.Channels.Items))
	} else {
		b.WriteString(Unavailable("channel endpoint assignments", r.Channels.Err))
	}

	b.WriteString("\n")
	if r.Brands.Available() {
		b.WriteString(Brands(r.Brands.Items))
	} else {
		b.WriteString(Unavailable("brand registrations", r.Brands.Err))
	}

	b.WriteString("\n")
	if r.Campaigns.Available() {
		b.WriteString(Campaigns(r.Campaigns.Items))
	} else {
		b.WriteString(Unavailable("campaigns", r.Campaigns.Err))
	}

	b.WriteString("\n")
	if r.Services.Available() {
		b.WriteString(Services(r.Services.Items))
	} else {
		b.WriteString(Unavailable("messaging services", r.Services.Err))
	}

	if r.Brands.Available() || r.Campaigns.Available() || r.Services.Available() {
		b.WriteString("\n")
		b.WriteString(dim(CorrelationNote))
		b.WriteString("\n")
	}

	if failures := r.Failures(); len(failures) > 0 {
		names := make([]string, len(failures))
		for i, f := range failures {
			names[i] = f.Name
		}
		b.WriteString("\n")
		b.WriteString(yellow(fmt.Sprintf("Partial report: %s unavailable.", strings.Join(names, ", "))))
		b.WriteString("\n")
	}
	return b.String()
}

// ProfilePanel renders the profile's own fields.
func ProfilePanel(p trusthub.CustomerProfile) string {
	return title("Customer Profile") + keyValues([][2]string{
		{"SID", p.SID},
		{"Friendly Name", orNA(p.FriendlyName)},
		{"Status", Status(p.Status)},
		{"Email", orNA(p.Email)},
		{"Policy SID", orNA(p.PolicySID)},
		{"Type", orNAPtr(p.CustomerProfileType)},
		{"Parent Profile", orNAPtr(p.ParentProfileSID)},
		{"Account SID", orNA(p.AccountSID)},
		{"Created", orNA(p.DateCreated)},
		{"Updated", orNA(p.DateUpdated)},
	})
}

// Assignments renders one group of assignments under heading.
func Assignments(heading string, items []trusthub.EntityAssignment) string {
	if len(items) == 0 {
		return title(heading) + fmt.Sprintf("No %s found.\n", strings.ToLower(heading))
	}
	rows := make([][]string, len(items))
	for i, a := range items {
		rows[i] = []string{a.SID, a.ObjectSID, orNAPtr(a.ObjectType), Status(a.Detail()), orNA(a.DateCreated)}
	}
	return title(fmt.Sprintf("%s (%d)", heading, len(items))) +
		table([]string{"Assignment SID", "Object SID", "Type", "Status", "Created"}, rows)
}

// Brands renders brand registrations with their relation to the profile.
func Brands(items []inspect.BrandRow) string {
	if len(items) == 0 {
		return title("Brand Registrations") + "No brand registrations found.\n"
	}
	rows := make([][]string, len(items))
	for i, r := range items {
		ref, _ := r.Brand.ProfileRef()
		rows[i] = []string{
			r.Brand.SID,
			orNA(r.Brand.DisplayName()),
			Status(r.Brand.State()),
			orNA(ref),
			link(r.Link),
		}
	}
	return title(fmt.Sprintf("Brand Registrations (%d)", len(items))) +
		table([]string{"Brand SID", "Name", "Status", "Profile Ref", "Relation"}, rows)
}

// Campaigns renders campaigns with the brand they were matched through.
func Campaigns(items []inspect.CampaignRow) string {
	if len(items) == 0 {
		return title("Campaigns") + "No campaigns found.\n"
	}
	rows := make([][]string, len(items))
	for i, r := range items {
		id := r.Campaign.SID
		if r.Campaign.CampaignID != nil && *r.Campaign.CampaignID != "" {
			id = *r.Campaign.CampaignID
		}
		rows[i] = []string{
			orNA(id),
			orNA(r.Campaign.MessagingServiceSID),
			orNA(r.Campaign.BrandRegistrationSID),
			orNA(r.Campaign.UseCaseLabel()),
			Status(r.Campaign.State()),
			link(r.Link),
		}
	}
	return title(fmt.Sprintf("Campaigns (%d)", len(items))) +
		table([]string{"Campaign", "Messaging Service", "Brand SID", "Use Case", "Status", "Relation"}, rows)
}

// Services renders messaging services with their relation to the profile.
func Services(items []inspect.ServiceRow) string {
	if len(items) == 0 {
		return title("Messaging Services") + "No messaging services found.\n"
	}
	rows := make([][]string, len(items))
	for i, r := range items {
		campaign, _ := r.Service.CampaignRef()
		registered := "no"
		if r.Service.UsAppToPersonRegistered {
			registered = "yes"
		}
		rows[i] = []string{
			r.Service.SID,
			orNA(r.Service.FriendlyName),
			orNA(campaign),
			registered,
			link(r.Link),
		}
	}
	return title(fmt.Sprintf("Messaging Services (%d)", len(items))) +
		table([]string{"Service SID", "Name", "Campaign", "A2P Registered", "Relation"}, rows)
}

// Unavailable is the marker shown in place of a section that failed.
func Unavailable(name string, err error) string {
	if name != "" {
		name = strings.ToUpper(name[:1]) + name[1:]
	}
	msg := name + ": unavailable"
	if err != nil {
		msg += fmt.Sprintf(" (%v)", err)
	}
	return red(msg) + "\n"
}

// DeletePreview shows what delete would remove and what must be typed.
func DeletePreview(p *trusthub.DeletePreview) string {
	var b strings.Builder
	b.WriteString(ProfilePanel(p.Profile()))
	b.WriteString("\n")
	b.WriteString(red("This permanently deletes the customer profile above."))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Type %s exactly to confirm, anything else cancels:\n", bold(p.ConfirmationToken()))
	return b.String()
}

func link(l trusthub.Link) string {
	switch l {
	case trusthub.LinkPossible:
		return green(l.String())
	case trusthub.LinkUnrelated:
		return dim(l.String())
	default:
		return yellow(l.String())
	}
}
