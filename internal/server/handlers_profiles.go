package server

import (
	"net/http"

	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/jonathan/resume-builder/internal/server/middleware"
	"github.com/sirupsen/logrus"
)

// handlePutProfile creates or replaces a stored profile
func (s *Server) handlePutProfile(w http.ResponseWriter, r *http.Request) {
	if !s.writesEnabled() {
		s.errorResponse(w, r, ErrWritesDisabled)
		return
	}
	name, err := profileName(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	var mapping map[string]any
	if err := s.decode(w, r, &mapping); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	p, err := profile.FromMap(name, mapping)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	userID, err := middleware.GetUserID(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := s.store.SaveProfile(r.Context(), name, mapping, &userID); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	s.logger(r).WithFields(logrus.Fields{"profile": name, "user_id": userID}).Info("profile saved")
	s.jsonResponse(w, r, http.StatusOK, p.Info())
}

// handleDeleteProfile removes a stored profile
func (s *Server) handleDeleteProfile(w http.ResponseWriter, r *http.Request) {
	if !s.writesEnabled() {
		s.errorResponse(w, r, ErrWritesDisabled)
		return
	}
	name, err := profileName(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	deleted, err := s.store.DeleteProfile(r.Context(), name)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if !deleted {
		s.errorResponse(w, r, &profile.ProfileNotFoundError{Name: name})
		return
	}

	s.logger(r).WithField("profile", name).Info("profile deleted")
	w.WriteHeader(http.StatusNoContent)
}
