package inspect_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twctl/twctl/internal/apperrors"
	"github.com/twctl/twctl/internal/twin"
)

const (
	subA = "AC000000000000000000000000000000a1"
	subB = "AC000000000000000000000000000000b2"
)

func seedAccounts(srv *twin.Server) {
	srv.State.Load(twin.Seed{
		Accounts: []twin.Account{
			{SID: mainSID, FriendlyName: "Main", Status: "active", Type: "Full"},
			{SID: subA, OwnerAccountSID: mainSID, FriendlyName: "dev-company-239", Status: "active"},
			{SID: subB, OwnerAccountSID: mainSID, FriendlyName: "Dev-Company-512", Status: "suspended"},
		},
		Profiles: []twin.CustomerProfile{
			{SID: "BU000000000000000000000000000000a1", AccountSID: subA, Status: "twilio-approved"},
			{SID: "BU000000000000000000000000000000a2", AccountSID: subA, Status: "draft"},
			{SID: "BU000000000000000000000000000000b1", AccountSID: subB, Status: "in-review"},
		},
	})
}

func TestSubaccountsOverview(t *testing.T) {
	srv, in := setup(t)
	seedAccounts(srv)

	ov, err := in.Subaccounts(context.Background())
	require.NoError(t, err)
	require.NotNil(t, ov.Main)
	assert.Equal(t, "Main", ov.Main.FriendlyName)

	require.Len(t, ov.Subaccounts, 2)
	assert.Len(t, ov.Subaccounts[0].Profiles.Items, 2)
	assert.Len(t, ov.Subaccounts[1].Profiles.Items, 1)
}

func TestSubaccountProfileFailureIsPerRow(t *testing.T) {
	srv, in := setup(t)
	seedAccounts(srv)
	srv.Faults.Set("/v1/CustomerProfiles", twin.Fault{Account: subB, StatusCode: http.StatusForbidden})

	ov, err := in.Subaccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, ov.Subaccounts, 2)
	assert.True(t, ov.Subaccounts[0].Profiles.Available())
	assert.False(t, ov.Subaccounts[1].Profiles.Available())
	assert.ErrorIs(t, ov.Subaccounts[1].Profiles.Err, apperrors.ErrAuth)
}

func TestSearchSubaccounts(t *testing.T) {
	srv, in := setup(t)
	seedAccounts(srv)

	rows, err := in.SearchSubaccounts(context.Background(), "239")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, subA, rows[0].Account.SID)

	rows, err = in.SearchSubaccounts(context.Background(), "DEV-company")
	require.NoError(t, err)
	assert.Len(t, rows, 2)

	rows, err = in.SearchSubaccounts(context.Background(), "main")
	require.NoError(t, err)
	assert.Empty(t, rows, "the main account is never a search result")
}

func TestSubaccountsListFailure(t *testing.T) {
	srv, in := setup(t)
	srv.Faults.Set("/2010-04-01/Accounts.json", twin.Fault{StatusCode: http.StatusServiceUnavailable})

	_, err := in.Subaccounts(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrRemote)
}
