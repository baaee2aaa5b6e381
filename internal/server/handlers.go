package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/career-recommender/internal/parsing"
	"github.com/jonathan/career-recommender/internal/pipeline"
	"github.com/jonathan/career-recommender/internal/schemas"
	"github.com/jonathan/career-recommender/internal/store"
	"github.com/jonathan/career-recommender/internal/types"
)

// maxProfileBytes bounds the request body of the recommend endpoints
const maxProfileBytes = 1 << 20

// maxListLimit caps the limit query parameter of GET /recommendations
const maxListLimit = 100

// RecommendResponse represents the response for /recommend
type RecommendResponse struct {
	ID              string                 `json:"id"`
	Status          string                 `json:"status,omitempty"`
	Recommendations []types.Recommendation `json:"recommendations"`
}

// ListResponse represents the response for GET /recommendations
type ListResponse struct {
	Sets  []types.SavedSet `json:"sets"`
	Count int              `json:"count"`
}

// RolesResponse represents the response for /roles
type RolesResponse struct {
	Roles []types.RoleDefinition `json:"roles"`
	Count int                    `json:"count"`
}

// handleRoles lists the role catalog
func (s *Server) handleRoles(w http.ResponseWriter, _ *http.Request) {
	roles := s.catalog
	if roles == nil {
		roles = []types.RoleDefinition{}
	}
	s.jsonResponse(w, http.StatusOK, RolesResponse{Roles: roles, Count: len(roles)})
}

// decodeProfile reads, sanitizes and validates the profile in the request body
func (s *Server) decodeProfile(w http.ResponseWriter, r *http.Request) (types.UserProfile, error) {
	var profile types.UserProfile
	body := http.MaxBytesReader(w, r.Body, maxProfileBytes)
	if err := json.NewDecoder(body).Decode(&profile); err != nil {
		return profile, &ErrValidation{Field: "body", Message: "invalid request body: " + err.Error()}
	}

	profile = parsing.SanitizeProfile(profile)
	if err := profile.Validate(); err != nil {
		return profile, profileValidationError(err)
	}
	return profile, nil
}

func (s *Server) recommendOptions(onProgress pipeline.ProgressCallback) pipeline.RecommendOptions {
	return pipeline.RecommendOptions{
		Client:     s.client,
		Timeout:    s.timeout,
		TopK:       s.topK,
		Logger:     s.logger,
		OnProgress: onProgress,
	}
}

// recommendAndSave runs the pipeline, checks the result against the schema and persists it
func (s *Server) recommendAndSave(r *http.Request, profile types.UserProfile, onProgress pipeline.ProgressCallback) (*types.SavedSet, error) {
	set, err := pipeline.Recommend(r.Context(), &profile, s.catalog, s.recommendOptions(onProgress))
	if err != nil {
		return nil, err
	}
	if err := schemas.ValidateRecommendationSet(*set); err != nil {
		return nil, fmt.Errorf("generated recommendations failed validation: %w", err)
	}

	saved := store.NewSavedSet(profile, *set)
	if err := s.store.Save(r.Context(), saved); err != nil {
		return nil, fmt.Errorf("failed to save recommendations: %w", err)
	}
	s.logger.Info("recommendations saved",
		zap.String("id", saved.ID.String()),
		zap.Strings("role_ids", set.RoleIDs()),
	)
	return saved, nil
}

// handleRecommend builds and saves recommendations for the posted profile
func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	profile, err := s.decodeProfile(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	saved, err := s.recommendAndSave(r, profile, nil)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, RecommendResponse{
		ID:              saved.ID.String(),
		Recommendations: saved.Set.Recommendations,
	})
}

// handleRecommendStream builds recommendations and streams per-role progress via SSE
func (s *Server) handleRecommendStream(w http.ResponseWriter, r *http.Request) {
	profile, err := s.decodeProfile(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	onProgress := func(event pipeline.ProgressEvent) {
		// The final event carries the saved id, so it is written after Save
		if event.Step == pipeline.StepComplete {
			return
		}
		if err := sse.WriteEvent(event.Step, event); err != nil {
			s.logger.Warn("failed to write SSE event", zap.String("step", event.Step), zap.Error(err))
		}
	}

	saved, err := s.recommendAndSave(r, profile, onProgress)
	if err != nil {
		s.logger.Error("streaming recommendation failed", zap.Error(err))
		sse.WriteError(err.Error())
		return
	}

	sse.WriteComplete(saved)
}

// handleGetRecommendation returns one saved recommendation set
func (s *Server) handleGetRecommendation(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.writeError(w, &ErrValidation{Field: "id", Message: "invalid recommendation set ID format"})
		return
	}

	saved, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, saved)
}

// handleListRecommendations returns the most recent saved sets
func (s *Server) handleListRecommendations(w http.ResponseWriter, r *http.Request) {
	limit := store.DefaultListLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > maxListLimit {
			s.writeError(w, &ErrValidation{Field: "limit", Message: fmt.Sprintf("must be an integer between 1 and %d", maxListLimit)})
			return
		}
		limit = parsed
	}

	sets, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if sets == nil {
		sets = []types.SavedSet{}
	}

	s.jsonResponse(w, http.StatusOK, ListResponse{Sets: sets, Count: len(sets)})
}
