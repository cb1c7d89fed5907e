package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/twctl/twctl/internal/inspect"
	"github.com/twctl/twctl/internal/trusthub"
)

// Profiles renders an account-wide profile listing.
func Profiles(items []trusthub.CustomerProfile) string {
	if len(items) == 0 {
		return "No customer profiles found.\n"
	}
	rows := make([][]string, len(items))
	for i, p := range items {
		rows[i] = []string{p.SID, orNA(p.FriendlyName), Status(p.Status), orNA(p.Email), orNA(p.DateCreated)}
	}
	return title(fmt.Sprintf("Customer Profiles (%d)", len(items))) +
		table([]string{"SID", "Friendly Name", "Status", "Email", "Created"}, rows)
}

// Accounts renders the main account and a row per subaccount.
func Accounts(ov *inspect.Overview) string {
	var b strings.Builder
	if ov.Main != nil {
		b.WriteString(title("Main Account"))
		b.WriteString(keyValues([][2]string{
			{"SID", ov.Main.SID},
			{"Friendly Name", orNA(ov.Main.FriendlyName)},
			{"Status", Status(ov.Main.Status)},
			{"Type", orNA(ov.Main.Type)},
		}))
		b.WriteString("\n")
	}
	if len(ov.Subaccounts) == 0 {
		b.WriteString("No subaccounts found.\n")
		return b.String()
	}
	b.WriteString(title(fmt.Sprintf("Subaccounts (%d)", len(ov.Subaccounts))))
	b.WriteString(subaccountTable(ov.Subaccounts))
	return b.String()
}

// SubaccountSearch renders the subaccounts whose name matched needle.
func SubaccountSearch(needle string, rows []inspect.SubaccountRow) string {
	if len(rows) == 0 {
		return fmt.Sprintf("No subaccounts match %q.\n", needle)
	}
	return title(fmt.Sprintf("Subaccounts matching %q (%d)", needle, len(rows))) + subaccountTable(rows)
}

func subaccountTable(subs []inspect.SubaccountRow) string {
	rows := make([][]string, len(subs))
	for i, s := range subs {
		profiles := red("unavailable")
		if s.Profiles.Available() {
			profiles = strconv.Itoa(len(s.Profiles.Items))
		}
		rows[i] = []string{s.Account.SID, orNA(s.Account.FriendlyName), Status(s.Account.Status), orNA(s.Account.DateCreated), profiles}
	}
	return table([]string{"SID", "Friendly Name", "Status", "Created", "Profiles"}, rows)
}

// Health renders the profile health summary.
func Health(h *inspect.Health) string {
	var b strings.Builder
	b.WriteString(title("Customer Profile Health"))
	if h.Total == 0 {
		b.WriteString("No customer profiles found.\n")
		return b.String()
	}
	b.WriteString(keyValues([][2]string{
		{"Total Profiles", strconv.Itoa(h.Total)},
		{"Approved", green(strconv.Itoa(h.Approved))},
		{"Pending", yellow(strconv.Itoa(h.Pending))},
		{"Rejected", red(strconv.Itoa(h.Rejected))},
		{"Health Score", fmt.Sprintf("%.1f%%", h.Score)},
		{"Verdict", verdict(h.Verdict)},
	}))

	rows := make([][]string, len(h.Statuses))
	for i, s := range h.Statuses {
		rows[i] = []string{Status(s.Status), strconv.Itoa(s.Count), s.Health}
	}
	b.WriteString("\n")
	b.WriteString(table([]string{"Status", "Profiles", "Health"}, rows))
	return b.String()
}

func verdict(v inspect.Verdict) string {
	switch v {
	case inspect.VerdictExcellent:
		return green(string(v))
	case inspect.VerdictFair:
		return yellow(string(v))
	default:
		return red(string(v))
	}
}
