// Package twin is an in-memory stand-in for the slice of the Twilio REST API
// that twctl reads: TrustHub customer profiles, A2P brand and campaign
// registrations, Messaging Services, and accounts. Tests point the TrustHub
// client at it, and cmd/trusthub-twin serves it for offline demos.
package twin

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	defaultPageSize = 50
	maxPageSize     = 1000
)

// Server serves the twin's API and /admin control plane.
type Server struct {
	State    *State
	Faults   *FaultRegistry
	Requests *RequestLog

	// PageSizeCap, when positive, caps the page size below what the client
	// asks for so tests can exercise multi-page listings with few records.
	PageSizeCap int

	router chi.Router
}

// New creates a Server with empty state.
func New() *Server {
	s := &Server{
		State:    NewState(),
		Faults:   NewFaultRegistry(),
		Requests: NewRequestLog(1000),
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	s.routes(r)
	s.router = r
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(s.requestLog)
		r.Use(basicAuth)
		r.Use(s.faultInjection)

		// TrustHub
		r.Get("/v1/CustomerProfiles", s.listProfiles)
		r.Get("/v1/CustomerProfiles/{sid}", s.getProfile)
		r.Delete("/v1/CustomerProfiles/{sid}", s.deleteProfile)
		r.Get("/v1/CustomerProfiles/{sid}/EntityAssignments", s.listEntityAssignments)
		r.Get("/v1/CustomerProfiles/{sid}/ChannelEndpointAssignments", s.listChannelAssignments)

		// Messaging
		r.Get("/v1/a2p/BrandRegistrations", s.listBrands)
		r.Get("/v1/Services", s.listServices)
		r.Get("/v1/Services/{sid}/Compliance/Usa2p", s.listCampaigns)

		// Core
		r.Get("/2010-04-01/Accounts.json", s.listAccounts)
		r.Get("/2010-04-01/Accounts/{sid}.json", s.getAccount)
	})

	r.Route("/admin", func(r chi.Router) {
		r.Post("/reset", s.handleReset)
		r.Get("/state", s.handleGetState)
		r.Post("/state", s.handleLoadState)
		r.Post("/faults", s.handleInjectFault)
		r.Delete("/faults", s.handleClearFaults)
		r.Get("/faults", s.handleListFaults)
		r.Get("/requests", s.handleGetRequests)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})
}

// basicAuth accepts any non-empty AccountSID:AuthToken pair and answers
// anything else the way Twilio does.
func basicAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		if !ok || user == "" || pass == "" {
			w.Header().Set("WWW-Authenticate", `Basic realm="Twilio API"`)
			writeError(w, http.StatusUnauthorized, 20003, "Authenticate")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// caller returns the account SID the request authenticated as.
func caller(r *http.Request) string {
	user, _, _ := r.BasicAuth()
	return user
}

// visibleTo reports whether a record owned by owner is visible to the
// calling account. Fixtures may leave owner empty to share a record.
func visibleTo(r *http.Request, owner string) bool {
	return owner == "" || owner == caller(r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status, code int, message string) {
	writeJSON(w, status, map[string]any{
		"code":      code,
		"message":   message,
		"more_info": fmt.Sprintf("https://www.twilio.com/docs/errors/%d", code),
		"status":    status,
	})
}

func notFound(w http.ResponseWriter, resource string) {
	writeError(w, http.StatusNotFound, 20404, fmt.Sprintf("The requested resource %s was not found", resource))
}

// pageParams reads Twilio's PageSize and Page query parameters.
func (s *Server) pageParams(r *http.Request) (page, size int) {
	size = defaultPageSize
	if v, err := strconv.Atoi(r.URL.Query().Get("PageSize")); err == nil && v > 0 {
		size = min(v, maxPageSize)
	}
	if s.PageSizeCap > 0 {
		size = min(size, s.PageSizeCap)
	}
	if v, err := strconv.Atoi(r.URL.Query().Get("Page")); err == nil && v > 0 {
		page = v
	}
	return page, size
}

func slicePage[T any](items []T, page, size int) ([]T, bool) {
	start := page * size
	if start >= len(items) {
		return []T{}, false
	}
	end := min(start+size, len(items))
	return items[start:end], end < len(items)
}

func pageURI(r *http.Request, page, size int) string {
	return fmt.Sprintf("%s?PageSize=%d&Page=%d", r.URL.Path, size, page)
}

func absoluteURL(r *http.Request, uri string) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + uri
}

// writeV1Page writes a v1 (TrustHub/Messaging) list response: the records
// under key and a meta block whose next_page_url is absolute.
func writeV1Page[T any](s *Server, w http.ResponseWriter, r *http.Request, key string, items []T) {
	page, size := s.pageParams(r)
	data, more := slicePage(items, page, size)

	var next *string
	if more {
		u := absoluteURL(r, pageURI(r, page+1, size))
		next = &u
	}
	var prev *string
	if page > 0 {
		u := absoluteURL(r, pageURI(r, page-1, size))
		prev = &u
	}

	writeJSON(w, http.StatusOK, map[string]any{
		key:    data,
		"meta": map[string]any{
			"page":              page,
			"page_size":         size,
			"first_page_url":    absoluteURL(r, pageURI(r, 0, size)),
			"previous_page_url": prev,
			"next_page_url":     next,
			"url":               absoluteURL(r, pageURI(r, page, size)),
			"key":               key,
		},
	})
}

// write2010Page writes a 2010-04-01 list response, whose paging links are
// relative URIs at the top level.
func write2010Page[T any](s *Server, w http.ResponseWriter, r *http.Request, key string, items []T) {
	page, size := s.pageParams(r)
	data, more := slicePage(items, page, size)

	var next *string
	if more {
		u := pageURI(r, page+1, size)
		next = &u
	}

	writeJSON(w, http.StatusOK, map[string]any{
		key:              data,
		"page":           page,
		"page_size":      size,
		"first_page_uri": pageURI(r, 0, size),
		"next_page_uri":  next,
		"uri":            pageURI(r, page, size),
	})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	s.State.Reset()
	s.Faults.Reset()
	s.Requests.Clear()
	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.State.Snapshot())
}

func (s *Server) handleLoadState(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, 20001, "failed to read body: "+err.Error())
		return
	}
	if err := s.State.LoadSeed(body); err != nil {
		writeError(w, http.StatusBadRequest, 20001, "failed to load state: "+err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "loaded"})
}

func (s *Server) handleInjectFault(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
		Fault
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Path == "" {
		writeError(w, http.StatusBadRequest, 20001, "invalid fault: path and status_code are required")
		return
	}
	s.Faults.Set(req.Path, req.Fault)
	writeJSON(w, http.StatusOK, map[string]any{"status": "injected", "path": req.Path})
}

func (s *Server) handleClearFaults(w http.ResponseWriter, r *http.Request) {
	s.Faults.Reset()
	writeJSON(w, http.StatusOK, map[string]string{"status": "cleared"})
}

func (s *Server) handleListFaults(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Faults.All())
}

func (s *Server) handleGetRequests(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Requests.Entries())
}
