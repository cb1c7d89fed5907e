package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/twctl/twctl/internal/twin"
)

const seed = `
profiles:
  - sid: BU0123456789abcdef0123456789abcdef
    friendly_name: Acme Corp
    status: twilio-approved
`

func setup(t *testing.T) (*twin.Server, *AdminClient) {
	t.Helper()
	srv := twin.New()
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return srv, New(ts.URL + "/")
}

func TestSeedStateAndReset(t *testing.T) {
	srv, c := setup(t)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))
	require.NoError(t, c.Seed(ctx, []byte(seed)))
	assert.Equal(t, 1, srv.State.Profiles.Count())

	state, err := c.State(ctx)
	require.NoError(t, err)
	require.Len(t, state.Profiles, 1)
	assert.Equal(t, "Acme Corp", state.Profiles[0].FriendlyName)

	require.NoError(t, c.Reset(ctx))
	assert.Zero(t, srv.State.Profiles.Count())
}

func TestSeedRejectsGarbage(t *testing.T) {
	_, c := setup(t)

	err := c.Seed(context.Background(), []byte("profiles: [\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 400")
}

func TestFaultsAndRequests(t *testing.T) {
	srv, c := setup(t)
	ctx := context.Background()

	require.NoError(t, c.InjectFault(ctx, "/v1/a2p/BrandRegistrations", twin.Fault{StatusCode: http.StatusTooManyRequests}))
	f := srv.Faults.Check("/v1/a2p/BrandRegistrations", "AC1")
	require.NotNil(t, f)
	assert.Equal(t, http.StatusTooManyRequests, f.StatusCode)

	srv.Requests.Add(twin.RequestLogEntry{Method: http.MethodDelete, Path: "/v1/CustomerProfiles/BU1", StatusCode: http.StatusNoContent})
	entries, err := c.Requests(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "DELETE /v1/CustomerProfiles/BU1 -> 204", entries[0].String())

	require.NoError(t, c.ClearFaults(ctx))
	assert.Empty(t, srv.Faults.All())
}

func TestUnreachableTwin(t *testing.T) {
	c := New("http://127.0.0.1:1")
	assert.Error(t, c.Health(context.Background()))
}
