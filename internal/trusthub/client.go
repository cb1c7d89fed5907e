// Package trusthub is a read-mostly client for the Twilio REST endpoints
// twctl reports on: TrustHub customer profiles and their assignments, A2P
// 10DLC brands and campaigns, Messaging Services, and subaccounts.
//
// The only write it performs is deleting a customer profile, and that is
// gated behind the two-step PreviewDelete / DeleteProfile protocol.
package trusthub

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/twctl/twctl/internal/apperrors"
	"go.uber.org/zap"
)

const (
	// DefaultTimeout bounds every HTTP request when Config.Timeout is zero.
	DefaultTimeout = 20 * time.Second

	maxPageSize = 1000
	userAgent   = "twctl"
)

// Config holds credentials and base URLs for the three Twilio API hosts.
type Config struct {
	AccountSID   string
	AuthToken    string
	TrustHubURL  string
	MessagingURL string
	CoreURL      string
	Timeout      time.Duration
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the logger used for request tracing.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.log = l }
}

// Client talks to the Twilio REST API with HTTP Basic auth. It never retries.
type Client struct {
	cfg  Config
	http *http.Client
	log  *zap.Logger
}

// New creates a Client. Empty base URLs default to Twilio's production hosts.
func New(cfg Config, opts ...Option) *Client {
	if cfg.TrustHubURL == "" {
		cfg.TrustHubURL = "https://trusthub.twilio.com"
	}
	if cfg.MessagingURL == "" {
		cfg.MessagingURL = "https://messaging.twilio.com"
	}
	if cfg.CoreURL == "" {
		cfg.CoreURL = "https://api.twilio.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AccountSID returns the account the client authenticates as.
func (c *Client) AccountSID() string {
	return c.cfg.AccountSID
}

// ForAccount returns a client scoped to a subaccount. Twilio accepts the
// parent's auth token for its subaccounts.
func (c *Client) ForAccount(sid string) *Client {
	scoped := *c
	scoped.cfg.AccountSID = sid
	scoped.log = c.log.With(zap.String("account_sid", sid))
	return &scoped
}

// do performs one request and returns the body of a 2xx response. Non-2xx
// responses become *APIError; transport failures wrap ErrTimeout or ErrRemote.
func (c *Client) do(ctx context.Context, method, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %v: %w", err, apperrors.ErrRemote)
	}
	req.SetBasicAuth(c.cfg.AccountSID, c.cfg.AuthToken)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("%s %s: %v: %w", method, req.URL.Path, err, apperrors.ErrTimeout)
		}
		return nil, fmt.Errorf("%s %s: %v: %w", method, req.URL.Path, err, apperrors.ErrRemote)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return nil, fmt.Errorf("reading %s: %v: %w", req.URL.Path, err, apperrors.ErrTimeout)
		}
		return nil, fmt.Errorf("reading %s: %v: %w", req.URL.Path, err, apperrors.ErrRemote)
	}

	c.log.Debug("twilio request",
		zap.String("method", method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newAPIError(resp.StatusCode, body)
	}
	return body, nil
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func (c *Client) getJSON(ctx context.Context, rawURL string, v any) error {
	body, err := c.do(ctx, http.MethodGet, rawURL)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decoding %s: %v: %w", rawURL, err, apperrors.ErrRemote)
	}
	return nil
}

// pageEnvelope covers both paging styles: v1 APIs put an absolute
// next_page_url under meta, the 2010-04-01 API puts a relative next_page_uri
// at the top level.
type pageEnvelope struct {
	Meta *struct {
		NextPageURL *string `json:"next_page_url"`
	} `json:"meta"`
	NextPageURI *string `json:"next_page_uri"`
}

func (p pageEnvelope) next() string {
	if p.Meta != nil && p.Meta.NextPageURL != nil {
		return *p.Meta.NextPageURL
	}
	if p.NextPageURI != nil {
		return *p.NextPageURI
	}
	return ""
}

// listAll follows pagination from first, collecting the records under key
// until there are no more pages or limit records were read. A limit <= 0
// reads everything.
func listAll[T any](ctx context.Context, c *Client, first, key string, limit int) ([]T, error) {
	base, err := url.Parse(first)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %v: %w", first, err, apperrors.ErrRemote)
	}
	q := base.Query()
	size := maxPageSize
	if limit > 0 && limit < size {
		size = limit
	}
	q.Set("PageSize", fmt.Sprint(size))
	base.RawQuery = q.Encode()

	var out []T
	seen := make(map[string]bool)
	next := base.String()
	for next != "" && !seen[next] {
		seen[next] = true

		body, err := c.do(ctx, http.MethodGet, next)
		if err != nil {
			return out, err
		}
		var raw map[string]json.RawMessage
		var env pageEnvelope
		if err := json.Unmarshal(body, &raw); err != nil {
			return out, fmt.Errorf("decoding page: %v: %w", err, apperrors.ErrRemote)
		}
		if err := json.Unmarshal(body, &env); err != nil {
			return out, fmt.Errorf("decoding page metadata: %v: %w", err, apperrors.ErrRemote)
		}

		var page []T
		if records, ok := raw[key]; ok {
			if err := json.Unmarshal(records, &page); err != nil {
				return out, fmt.Errorf("decoding %q records: %v: %w", key, err, apperrors.ErrRemote)
			}
		}
		out = append(out, page...)
		if limit > 0 && len(out) >= limit {
			return out[:limit], nil
		}

		ref := env.next()
		if ref == "" {
			break
		}
		u, err := base.Parse(ref)
		if err != nil {
			return out, fmt.Errorf("parsing next page %q: %v: %w", ref, err, apperrors.ErrRemote)
		}
		// credentials only go to the host that served the first page
		if u.Scheme != base.Scheme || u.Host != base.Host {
			return out, fmt.Errorf("next page %q is not on %s: %w", ref, base.Host, apperrors.ErrRemote)
		}
		next = u.String()

		c.log.Debug("following next page", zap.String("key", key), zap.Int("so_far", len(out)))
	}
	return out, nil
}
