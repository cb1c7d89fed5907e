package twin

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("Status")
	name := r.URL.Query().Get("FriendlyName")
	profiles := s.State.Profiles.Filter(func(_ string, p CustomerProfile) bool {
		if !visibleTo(r, p.AccountSID) {
			return false
		}
		if status != "" && p.Status != status {
			return false
		}
		return name == "" || p.FriendlyName == name
	})
	for i := range profiles {
		profiles[i].URL = absoluteURL(r, "/v1/CustomerProfiles/"+profiles[i].SID)
	}
	writeV1Page(s, w, r, "results", profiles)
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	p, ok := s.State.Profiles.Get(sid)
	if !ok || !visibleTo(r, p.AccountSID) {
		notFound(w, "/CustomerProfiles/"+sid)
		return
	}
	p.URL = absoluteURL(r, r.URL.Path)
	writeJSON(w, http.StatusOK, p)
}

// deleteProfile removes the profile and its assignments, answering 204 like
// Twilio.
func (s *Server) deleteProfile(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	p, ok := s.State.Profiles.Get(sid)
	if !ok || !visibleTo(r, p.AccountSID) {
		notFound(w, "/CustomerProfiles/"+sid)
		return
	}
	s.State.Profiles.Delete(sid)
	s.State.EntityAssignments.DeleteWhere(func(_ string, a EntityAssignment) bool {
		return a.CustomerProfileSID == sid
	})
	s.State.ChannelAssignments.DeleteWhere(func(_ string, a ChannelEndpointAssignment) bool {
		return a.CustomerProfileSID == sid
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listEntityAssignments(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	if p, ok := s.State.Profiles.Get(sid); !ok || !visibleTo(r, p.AccountSID) {
		notFound(w, "/CustomerProfiles/"+sid)
		return
	}
	items := s.State.EntityAssignments.Filter(func(_ string, a EntityAssignment) bool {
		return a.CustomerProfileSID == sid
	})
	writeV1Page(s, w, r, "results", items)
}

func (s *Server) listChannelAssignments(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	if p, ok := s.State.Profiles.Get(sid); !ok || !visibleTo(r, p.AccountSID) {
		notFound(w, "/CustomerProfiles/"+sid)
		return
	}
	items := s.State.ChannelAssignments.Filter(func(_ string, a ChannelEndpointAssignment) bool {
		return a.CustomerProfileSID == sid
	})
	writeV1Page(s, w, r, "results", items)
}

func (s *Server) listBrands(w http.ResponseWriter, r *http.Request) {
	items := s.State.Brands.Filter(func(_ string, b BrandRegistration) bool {
		return visibleTo(r, b.AccountSID)
	})
	writeV1Page(s, w, r, "data", items)
}

func (s *Server) listServices(w http.ResponseWriter, r *http.Request) {
	items := s.State.Services.Filter(func(_ string, svc MessagingService) bool {
		return visibleTo(r, svc.AccountSID)
	})
	writeV1Page(s, w, r, "services", items)
}

func (s *Server) listCampaigns(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	if svc, ok := s.State.Services.Get(sid); !ok || !visibleTo(r, svc.AccountSID) {
		notFound(w, "/Services/"+sid)
		return
	}
	items := s.State.Campaigns.Filter(func(_ string, c Campaign) bool {
		return c.MessagingServiceSID == sid
	})
	writeV1Page(s, w, r, "compliance", items)
}

// listAccounts returns the caller's own account followed by its
// subaccounts. FriendlyName and Status filter exactly, as Twilio does.
func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	me := caller(r)
	name := r.URL.Query().Get("FriendlyName")
	status := r.URL.Query().Get("Status")
	items := s.State.Accounts.Filter(func(sid string, a Account) bool {
		if sid != me && a.OwnerAccountSID != me && a.OwnerAccountSID != "" {
			return false
		}
		if status != "" && !strings.EqualFold(a.Status, status) {
			return false
		}
		return name == "" || a.FriendlyName == name
	})
	write2010Page(s, w, r, "accounts", items)
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	sid := chi.URLParam(r, "sid")
	a, ok := s.State.Accounts.Get(sid)
	if !ok {
		notFound(w, "/Accounts/"+sid+".json")
		return
	}
	writeJSON(w, http.StatusOK, a)
}
