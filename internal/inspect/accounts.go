package inspect

import (
	"context"
	"strings"

	"github.com/twctl/twctl/internal/logger"
	"github.com/twctl/twctl/internal/trusthub"
	"go.uber.org/zap"
)

// SubaccountRow is a subaccount with the TrustHub profiles it owns. A failed
// profile lookup marks only this row's profiles unavailable.
type SubaccountRow struct {
	Account  trusthub.Account
	Profiles Section[trusthub.CustomerProfile]
}

// Overview is the main account followed by its subaccounts.
type Overview struct {
	Main        *trusthub.Account
	Subaccounts []SubaccountRow
}

// Subaccounts lists the account's subaccounts and their profiles.
func (in *Inspector) Subaccounts(ctx context.Context) (*Overview, error) {
	accounts, err := in.client.ListAccounts(ctx, in.limit)
	if err != nil {
		return nil, err
	}

	ov := &Overview{}
	var subs []trusthub.Account
	for i, a := range accounts {
		if a.SID == in.client.AccountSID() {
			ov.Main = &accounts[i]
			continue
		}
		subs = append(subs, a)
	}
	ov.Subaccounts = in.withProfiles(ctx, subs)
	return ov, nil
}

// SearchSubaccounts returns subaccounts whose friendly name contains needle,
// ignoring case (e.g. "239" finds "dev-company-239").
func (in *Inspector) SearchSubaccounts(ctx context.Context, needle string) ([]SubaccountRow, error) {
	accounts, err := in.client.ListAccounts(ctx, in.limit)
	if err != nil {
		return nil, err
	}

	needle = strings.ToLower(strings.TrimSpace(needle))
	var matches []trusthub.Account
	for _, a := range accounts {
		if a.SID == in.client.AccountSID() {
			continue
		}
		if strings.Contains(strings.ToLower(a.FriendlyName), needle) {
			matches = append(matches, a)
		}
	}
	return in.withProfiles(ctx, matches), nil
}

func (in *Inspector) withProfiles(ctx context.Context, accounts []trusthub.Account) []SubaccountRow {
	log := logger.FromContext(ctx).Named("inspect")
	rows := make([]SubaccountRow, len(accounts))
	for i, a := range accounts {
		profiles, err := in.client.ForAccount(a.SID).ListProfiles(ctx, in.limit)
		if err != nil {
			log.Warn("subaccount profiles unavailable", zap.String("account_sid", a.SID), zap.Error(err))
		}
		rows[i] = SubaccountRow{Account: a, Profiles: section(profiles, err)}
	}
	return rows
}
