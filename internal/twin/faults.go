package twin

import (
	"fmt"
	"net/http"
	"path"
	"sync"
	"time"
)

// Fault makes matching requests fail with StatusCode after an optional Delay.
// Code is the Twilio error code placed in the response body. When Account is
// set the fault only applies to requests authenticated as that account.
type Fault struct {
	Account    string        `json:"account,omitempty" yaml:"account,omitempty"`
	StatusCode int           `json:"status_code" yaml:"status_code"`
	Code       int           `json:"code,omitempty" yaml:"code,omitempty"`
	Message    string        `json:"message,omitempty" yaml:"message,omitempty"`
	Delay      time.Duration `json:"delay,omitempty" yaml:"delay,omitempty"`
}

// FaultRegistry holds injected faults keyed by path pattern. Patterns use
// path.Match syntax, so "/v1/Services/*/Compliance/Usa2p" covers every
// service.
type FaultRegistry struct {
	mu     sync.RWMutex
	faults map[string]Fault
}

// NewFaultRegistry creates an empty registry.
func NewFaultRegistry() *FaultRegistry {
	return &FaultRegistry{faults: make(map[string]Fault)}
}

// Set injects a fault for pattern.
func (fr *FaultRegistry) Set(pattern string, fault Fault) {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.faults[pattern] = fault
}

// Remove removes the fault for pattern.
func (fr *FaultRegistry) Remove(pattern string) bool {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	_, existed := fr.faults[pattern]
	delete(fr.faults, pattern)
	return existed
}

// Check returns the fault that applies to a request for urlPath made by
// account, or nil. An exact pattern wins over a glob.
func (fr *FaultRegistry) Check(urlPath, account string) *Fault {
	fr.mu.RLock()
	defer fr.mu.RUnlock()
	applies := func(f Fault) bool {
		return f.Account == "" || f.Account == account
	}
	if f, ok := fr.faults[urlPath]; ok && applies(f) {
		return &f
	}
	for pattern, f := range fr.faults {
		if ok, _ := path.Match(pattern, urlPath); ok && applies(f) {
			return &f
		}
	}
	return nil
}

// All returns a copy of the registered faults.
func (fr *FaultRegistry) All() map[string]Fault {
	fr.mu.RLock()
	defer fr.mu.RUnlock()
	out := make(map[string]Fault, len(fr.faults))
	for k, v := range fr.faults {
		out[k] = v
	}
	return out
}

// Reset clears all faults.
func (fr *FaultRegistry) Reset() {
	fr.mu.Lock()
	defer fr.mu.Unlock()
	fr.faults = make(map[string]Fault)
}

// faultInjection applies any matching fault before the API handler runs.
// It is mounted inside the API routes only, so /admin is never affected.
func (s *Server) faultInjection(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fault := s.Faults.Check(r.URL.Path, caller(r))
		if fault == nil {
			next.ServeHTTP(w, r)
			return
		}
		if fault.Delay > 0 {
			select {
			case <-time.After(fault.Delay):
			case <-r.Context().Done():
				return
			}
		}
		if fault.StatusCode == 0 {
			next.ServeHTTP(w, r)
			return
		}
		code := fault.Code
		if code == 0 {
			code = defaultErrorCode(fault.StatusCode)
		}
		msg := fault.Message
		if msg == "" {
			msg = "injected fault"
		}
		writeError(w, fault.StatusCode, code, msg)
	})
}

func defaultErrorCode(status int) int {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return 20003
	case http.StatusNotFound:
		return 20404
	case http.StatusTooManyRequests:
		return 20429
	default:
		return 20500
	}
}

// RequestLogEntry records one API request.
type RequestLogEntry struct {
	Timestamp  time.Time `json:"timestamp"`
	Method     string    `json:"method"`
	Path       string    `json:"path"`
	Query      string    `json:"query,omitempty"`
	User       string    `json:"user,omitempty"`
	StatusCode int       `json:"status_code"`
}

func (e RequestLogEntry) String() string {
	return fmt.Sprintf("%s %s -> %d", e.Method, e.Path, e.StatusCode)
}

// RequestLog is a bounded, thread-safe log of recent requests.
type RequestLog struct {
	mu      sync.RWMutex
	entries []RequestLogEntry
	maxSize int
}

// NewRequestLog creates a request log that keeps at most maxSize entries.
func NewRequestLog(maxSize int) *RequestLog {
	return &RequestLog{maxSize: maxSize}
}

// Add appends an entry, evicting the oldest at capacity.
func (rl *RequestLog) Add(entry RequestLogEntry) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if len(rl.entries) >= rl.maxSize {
		rl.entries = rl.entries[1:]
	}
	rl.entries = append(rl.entries, entry)
}

// Entries returns a copy of the log.
func (rl *RequestLog) Entries() []RequestLogEntry {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	out := make([]RequestLogEntry, len(rl.entries))
	copy(out, rl.entries)
	return out
}

// Count returns how many logged requests used method.
func (rl *RequestLog) Count(method string) int {
	rl.mu.RLock()
	defer rl.mu.RUnlock()
	n := 0
	for _, e := range rl.entries {
		if e.Method == method {
			n++
		}
	}
	return n
}

// Clear removes all entries.
func (rl *RequestLog) Clear() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	rl.entries = nil
}

type statusRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (sr *statusRecorder) WriteHeader(code int) {
	sr.statusCode = code
	sr.ResponseWriter.WriteHeader(code)
}

func (s *Server) requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		user, _, _ := r.BasicAuth()
		s.Requests.Add(RequestLogEntry{
			Timestamp:  start,
			Method:     r.Method,
			Path:       r.URL.Path,
			Query:      r.URL.RawQuery,
			User:       user,
			StatusCode: rec.statusCode,
		})
	})
}
