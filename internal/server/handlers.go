package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/jonathan/resume-builder/internal/export"
	"github.com/jonathan/resume-builder/internal/filtering"
	"github.com/jonathan/resume-builder/internal/profile"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/jonathan/resume-builder/internal/validation"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	status := map[string]string{"status": "ok"}
	if p, ok := s.store.(pinger); ok {
		if err := p.Ping(r.Context()); err != nil {
			s.logger(r).WithError(err).Warn("database ping failed")
			status["status"] = "degraded"
			status["database"] = "unavailable"
		} else {
			status["database"] = "ok"
		}
	}
	s.jsonResponse(w, r, http.StatusOK, status)
}

// handleListProfiles returns the names of available profiles
func (s *Server) handleListProfiles(w http.ResponseWriter, r *http.Request) {
	names, err := s.profiles.List(r.Context())
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	s.jsonResponse(w, r, http.StatusOK, map[string]any{"profiles": names})
}

// handleGetProfile returns the summary of one profile
func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	name, err := profileName(r)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	p, err := s.profiles.Load(r.Context(), name)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}
	s.jsonResponse(w, r, http.StatusOK, p.Info())
}

// handleFilter applies a stored or inline profile to the posted document
func (s *Server) handleFilter(w http.ResponseWriter, r *http.Request) {
	var req types.FilterRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	p, err := s.requestProfile(r.Context(), req)
	if err != nil {
		s.errorResponse(w, r, err)
		return
	}

	var info *types.ProfileInfo
	if p != nil {
		i := p.Info()
		info = &i
	}

	doc := filtering.FilterResumeData(req.Document, p)
	if req.Clean {
		doc = export.Clean(doc)
	}
	if req.Metadata {
		doc = export.WithMetadata(doc, info, time.Now())
	}

	s.logger(r).WithField("profile", profileLabel(info)).Debug("document filtered")
	s.jsonResponse(w, r, http.StatusOK, types.FilterResponse{Profile: info, Document: doc})
}

// requestProfile resolves the profile of a filter request. No profile means passthrough.
func (s *Server) requestProfile(ctx context.Context, req types.FilterRequest) (*profile.Profile, error) {
	switch {
	case req.ProfileName != "":
		return s.profiles.Load(ctx, req.ProfileName)
	case len(req.Profile) > 0:
		return profile.FromMap("inline", req.Profile)
	default:
		return nil, nil
	}
}

// handleValidate checks the posted document. The outcome is in the body; the
// status is 200 whenever the document could be checked.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req types.ValidateRequest
	if err := s.decode(w, r, &req); err != nil {
		s.errorResponse(w, r, err)
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, r, err)
		return
	}

	result := validation.Validate(req.Document)
	s.jsonResponse(w, r, http.StatusOK, types.ValidateResponse{
		Valid:            result.IsValid(req.Strict),
		ExitCode:         result.ExitCode(req.Strict),
		Summary:          result.Summary(),
		ValidationResult: result,
	})
}

// decode reads a JSON body of at most maxBody bytes into dst
func (s *Server) decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		if errors.Is(err, io.EOF) {
			return &ErrValidation{Field: "body", Message: "request body is empty"}
		}
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

func profileName(r *http.Request) (string, error) {
	name := r.PathValue("name")
	if err := (types.ProfileName{Name: name}).Validate(); err != nil {
		return "", &ErrValidation{Field: "name", Message: "invalid profile name"}
	}
	return name, nil
}

func profileLabel(info *types.ProfileInfo) string {
	if info == nil {
		return "none"
	}
	return info.Name
}
