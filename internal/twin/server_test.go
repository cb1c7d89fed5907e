package twin_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twctl/twctl/internal/twin"
)

const (
	testAccountSID = "AC00000000000000000000000000000001"
	testAuthToken  = "auth_token_sim"
)

func setupTwin(t *testing.T) (*twin.Server, *httptest.Server) {
	t.Helper()
	srv := twin.New()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, ts
}

func get(t *testing.T, url string, authed bool) (int, map[string]any) {
	t.Helper()
	return do(t, http.MethodGet, url, authed)
}

func do(t *testing.T, method, url string, authed bool) (int, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, url, nil)
	require.NoError(t, err)
	if authed {
		req.SetBasicAuth(testAccountSID, testAuthToken)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var m map[string]any
	if len(body) > 0 {
		require.NoError(t, json.Unmarshal(body, &m), string(body))
	}
	return resp.StatusCode, m
}

func TestAuthRequired(t *testing.T) {
	_, ts := setupTwin(t)

	status, body := get(t, ts.URL+"/v1/CustomerProfiles", false)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.EqualValues(t, 20003, body["code"])
	assert.Equal(t, "Authenticate", body["message"])
}

func TestProfilePagingUsesAbsoluteNextURL(t *testing.T) {
	srv, ts := setupTwin(t)
	for i := 0; i < 5; i++ {
		srv.State.Profiles.Set(fmt.Sprintf("BU%032x", i+1), twin.CustomerProfile{
			SID:          fmt.Sprintf("BU%032x", i+1),
			FriendlyName: fmt.Sprintf("Profile %d", i+1),
			Status:       "twilio-approved",
		})
	}

	status, body := get(t, ts.URL+"/v1/CustomerProfiles?PageSize=2", true)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["results"], 2)

	meta := body["meta"].(map[string]any)
	next, ok := meta["next_page_url"].(string)
	require.True(t, ok)
	assert.True(t, strings.HasPrefix(next, ts.URL), next)

	seen := 2
	for next != "" {
		status, body = get(t, next, true)
		require.Equal(t, http.StatusOK, status)
		seen += len(body["results"].([]any))
		next, _ = body["meta"].(map[string]any)["next_page_url"].(string)
	}
	assert.Equal(t, 5, seen)
}

func TestAccountsUseRelativeNextURI(t *testing.T) {
	srv, ts := setupTwin(t)
	srv.State.Load(twin.Seed{Accounts: []twin.Account{
		{SID: testAccountSID, FriendlyName: "Main", Status: "active"},
		{OwnerAccountSID: testAccountSID, FriendlyName: "Sub A", Status: "active"},
		{OwnerAccountSID: testAccountSID, FriendlyName: "Sub B", Status: "suspended"},
		{OwnerAccountSID: "AC_someone_else", FriendlyName: "Hidden", Status: "active"},
	}})

	status, body := get(t, ts.URL+"/2010-04-01/Accounts.json?PageSize=2", true)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["accounts"], 2)
	next := body["next_page_uri"].(string)
	assert.True(t, strings.HasPrefix(next, "/2010-04-01/Accounts.json?"), next)

	status, body = get(t, ts.URL+next, true)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, body["accounts"], 1)
	assert.Nil(t, body["next_page_uri"])
}

func TestDeleteProfileCascades(t *testing.T) {
	srv, ts := setupTwin(t)
	sid := "BU" + strings.Repeat("a", 32)
	srv.State.Load(twin.Seed{
		Profiles:          []twin.CustomerProfile{{SID: sid, FriendlyName: "Acme"}},
		EntityAssignments: []twin.EntityAssignment{{CustomerProfileSID: sid, ObjectSID: "RD1"}},
	})

	status, _ := do(t, http.MethodDelete, ts.URL+"/v1/CustomerProfiles/"+sid, true)
	assert.Equal(t, http.StatusNoContent, status)
	assert.Zero(t, srv.State.Profiles.Count())
	assert.Zero(t, srv.State.EntityAssignments.Count())
	assert.Equal(t, 1, srv.Requests.Count(http.MethodDelete))

	status, body := do(t, http.MethodDelete, ts.URL+"/v1/CustomerProfiles/"+sid, true)
	assert.Equal(t, http.StatusNotFound, status)
	assert.EqualValues(t, 20404, body["code"])
}

func TestFaultGlobMatchesEveryService(t *testing.T) {
	srv, ts := setupTwin(t)
	srv.State.Load(twin.Seed{Services: []twin.MessagingService{{SID: "MG1"}, {SID: "MG2"}}})
	srv.Faults.Set("/v1/Services/*/Compliance/Usa2p", twin.Fault{StatusCode: http.StatusServiceUnavailable})

	for _, sid := range []string{"MG1", "MG2"} {
		status, body := get(t, ts.URL+"/v1/Services/"+sid+"/Compliance/Usa2p", true)
		assert.Equal(t, http.StatusServiceUnavailable, status)
		assert.EqualValues(t, 20500, body["code"])
	}

	status, _ := get(t, ts.URL+"/v1/Services", true)
	assert.Equal(t, http.StatusOK, status)
}

func TestAdminStateRoundTrip(t *testing.T) {
	srv, ts := setupTwin(t)
	seed := `
profiles:
  - sid: BU00000000000000000000000000000042
    friendly_name: Seeded
    status: in-review
brands:
  - brand_name: Seeded Brand
    customer_profile_bundle_sid: BU00000000000000000000000000000042
`
	resp, err := http.Post(ts.URL+"/admin/state", "application/yaml", strings.NewReader(seed))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	snap := srv.State.Snapshot()
	require.Len(t, snap.Brands, 1)
	assert.True(t, strings.HasPrefix(snap.Brands[0].SID, "BN"))
	require.NotNil(t, snap.Brands[0].CustomerProfileBundleSID)
	assert.Nil(t, snap.Brands[0].CustomerProfileSID)

	status, body := get(t, ts.URL+"/v1/a2p/BrandRegistrations", true)
	require.Equal(t, http.StatusOK, status)
	brand := body["data"].([]any)[0].(map[string]any)
	assert.Equal(t, "Seeded Brand", brand["brand_name"])
	_, present := brand["customer_profile_sid"]
	assert.False(t, present, "absent optional fields stay absent on the wire")

	resp, err = http.Post(ts.URL+"/admin/reset", "application/json", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Zero(t, srv.State.Profiles.Count())
}

func TestStoreNextIDLooksLikeTwilioSID(t *testing.T) {
	s := twin.NewStore[twin.CustomerProfile]("BU")
	assert.Equal(t, "BU00000000000000000000000000000001", s.NextID())
	assert.Equal(t, "BU00000000000000000000000000000002", s.NextID())
	s.Reset()
	assert.Equal(t, "BU00000000000000000000000000000001", s.NextID())
}

func TestStoreNextIDSkipsTakenSIDs(t *testing.T) {
	s := twin.NewStore[twin.Account]("AC")
	s.Set(testAccountSID, twin.Account{SID: testAccountSID})
	assert.Equal(t, "AC00000000000000000000000000000002", s.NextID())
}

func TestLoadKeepsExplicitSIDs(t *testing.T) {
	srv, _ := setupTwin(t)
	srv.State.Load(twin.Seed{Accounts: []twin.Account{
		{OwnerAccountSID: testAccountSID, FriendlyName: "Sub A", Status: "active"},
		{SID: testAccountSID, FriendlyName: "Main", Status: "active"},
		{OwnerAccountSID: testAccountSID, FriendlyName: "Sub B", Status: "active"},
	}})

	require.Equal(t, 3, srv.State.Accounts.Count())
	acct, ok := srv.State.Accounts.Get(testAccountSID)
	require.True(t, ok)
	assert.Equal(t, "Main", acct.FriendlyName)

	seen := map[string]bool{}
	for _, a := range srv.State.Accounts.List() {
		assert.False(t, seen[a.SID], "duplicate SID %s", a.SID)
		seen[a.SID] = true
	}
}

func TestFaultScopedToAccount(t *testing.T) {
	srv, ts := setupTwin(t)
	srv.Faults.Set("/v1/CustomerProfiles", twin.Fault{Account: "AC00000000000000000000000000000002", StatusCode: http.StatusForbidden})

	status, _ := get(t, ts.URL+"/v1/CustomerProfiles", true)
	assert.Equal(t, http.StatusOK, status, "fault belongs to another account")

	f := srv.Faults.Check("/v1/CustomerProfiles", "AC00000000000000000000000000000002")
	require.NotNil(t, f)
	assert.Equal(t, http.StatusForbidden, f.StatusCode)

	assert.True(t, srv.Faults.Remove("/v1/CustomerProfiles"))
	assert.Nil(t, srv.Faults.Check("/v1/CustomerProfiles", "AC00000000000000000000000000000002"))
}
