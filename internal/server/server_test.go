package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/store"
	"github.com/jonathan/career-recommender/internal/types"
)

// failingStore rejects every operation
type failingStore struct{}

func (failingStore) Save(_ context.Context, _ *types.SavedSet) error {
	return &store.StorageError{Op: "save", Message: "backend unavailable"}
}

func (failingStore) Get(_ context.Context, _ uuid.UUID) (*types.SavedSet, error) {
	return nil, &store.StorageError{Op: "get", Message: "backend unavailable"}
}

func (failingStore) List(_ context.Context, _ int) ([]types.SavedSet, error) {
	return nil, &store.StorageError{Op: "list", Message: "backend unavailable"}
}

func (failingStore) Close() error { return nil }

func newTestServer(t *testing.T, st store.Store, roles []types.RoleDefinition) http.Handler {
	t.Helper()
	s, err := New(Config{Port: 0, Store: st, Catalog: roles})
	require.NoError(t, err)
	return s.Handler()
}

const validProfileJSON = `{
	"name": "Asha",
	"education": "B.Sc. Computer Science",
	"skills": ["JavaScript", "html", " CSS "],
	"interests": ["web"],
	"weeklyTime": 8,
	"budget": "Free",
	"language": "en"
}`

func post(t *testing.T, h http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestNew_RequiresStore(t *testing.T) {
	_, err := New(Config{Catalog: catalog.Default()})
	assert.Error(t, err)
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore(), catalog.Default())

	w := get(t, h, "/health")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
}

func TestCORSPreflight(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore(), catalog.Default())

	req := httptest.NewRequest(http.MethodOptions, "/recommend", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestRolesEndpoint(t *testing.T) {
	roles := catalog.Default()
	h := newTestServer(t, store.NewMemoryStore(), roles)

	w := get(t, h, "/roles")
	require.Equal(t, http.StatusOK, w.Code)

	var resp RolesResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, len(roles), resp.Count)
	assert.Equal(t, roles[0].RoleID, resp.Roles[0].RoleID)
}

func TestRecommendEndpoint(t *testing.T) {
	st := store.NewMemoryStore()
	h := newTestServer(t, st, catalog.Default())

	w := post(t, h, "/recommend", validProfileJSON)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var resp RecommendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Recommendations, 3)
	assert.Equal(t, "frontend-developer", resp.Recommendations[0].RoleID)
	assert.Equal(t, 70, resp.Recommendations[0].FitScore)

	id, err := uuid.Parse(resp.ID)
	require.NoError(t, err)
	saved, err := st.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, types.BudgetFree, saved.Profile.Budget)
	assert.Equal(t, []string{"javascript", "html", "css"}, saved.Profile.Skills)
}

func TestRecommendEndpoint_ValidationErrors(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore(), catalog.Default())

	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"name": `},
		{name: "missing skills", body: `{"name":"A","education":"B","interests":["web"],"weeklyTime":5,"budget":"free","language":"en"}`},
		{name: "blank skills only", body: `{"name":"A","education":"B","skills":["  "],"interests":["web"],"weeklyTime":5,"budget":"free","language":"en"}`},
		{name: "zero weekly time", body: `{"name":"A","education":"B","skills":["go"],"interests":["web"],"weeklyTime":0,"budget":"free","language":"en"}`},
		{name: "weekly time too high", body: `{"name":"A","education":"B","skills":["go"],"interests":["web"],"weeklyTime":41,"budget":"free","language":"en"}`},
		{name: "unknown budget", body: `{"name":"A","education":"B","skills":["go"],"interests":["web"],"weeklyTime":5,"budget":"premium","language":"en"}`},
		{name: "unknown language", body: `{"name":"A","education":"B","skills":["go"],"interests":["web"],"weeklyTime":5,"budget":"free","language":"fr"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(t, h, "/recommend", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Contains(t, resp["error"], "validation error")
		})
	}
}

func TestRecommendEndpoint_EmptyCatalog(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore(), []types.RoleDefinition{})

	w := post(t, h, "/recommend", validProfileJSON)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRecommendEndpoint_StoreFailure(t *testing.T) {
	h := newTestServer(t, failingStore{}, catalog.Default())

	w := post(t, h, "/recommend", validProfileJSON)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecommendStreamEndpoint(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore(), catalog.Default())

	w := post(t, h, "/recommend/stream", validProfileJSON)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/event-stream", w.Header().Get("Content-Type"))

	body := w.Body.String()
	assert.Equal(t, 3, strings.Count(body, "event: role_ranked\n"))
	assert.Equal(t, 3, strings.Count(body, "event: role_completed\n"))
	assert.Equal(t, 1, strings.Count(body, "event: complete\n"))

	// Ranking precedes generation and the saved set comes last
	assert.Less(t, strings.LastIndex(body, "event: role_ranked"), strings.Index(body, "event: role_completed"))
	assert.Greater(t, strings.Index(body, "event: complete\n"), strings.LastIndex(body, "event: role_completed"))

	lines := strings.Split(strings.TrimSpace(body), "\n")
	last := lines[len(lines)-1]
	require.True(t, strings.HasPrefix(last, "data: "))

	var final RecommendResponse
	require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(last, "data: ")), &final))
	assert.Equal(t, "completed", final.Status)
	assert.Len(t, final.Recommendations, 3)
	_, err := uuid.Parse(final.ID)
	assert.NoError(t, err)
}

func TestRecommendStreamEndpoint_StoreFailure(t *testing.T) {
	h := newTestServer(t, failingStore{}, catalog.Default())

	w := post(t, h, "/recommend/stream", validProfileJSON)
	body := w.Body.String()
	assert.Contains(t, body, "event: error\n")
	assert.NotContains(t, body, "event: complete\n")
}

func TestGetRecommendationEndpoint(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore(), catalog.Default())

	created := post(t, h, "/recommend", validProfileJSON)
	require.Equal(t, http.StatusOK, created.Code)
	var resp RecommendResponse
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &resp))

	w := get(t, h, "/recommendations/"+resp.ID)
	require.Equal(t, http.StatusOK, w.Code)

	var saved types.SavedSet
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, resp.ID, saved.ID.String())
	assert.Equal(t, "Asha", saved.Profile.Name)
	assert.Equal(t, resp.Recommendations, saved.Set.Recommendations)
}

func TestGetRecommendationEndpoint_Errors(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore(), catalog.Default())

	assert.Equal(t, http.StatusBadRequest, get(t, h, "/recommendations/not-a-uuid").Code)
	assert.Equal(t, http.StatusNotFound, get(t, h, "/recommendations/"+uuid.New().String()).Code)
}

func TestListRecommendationsEndpoint(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore(), catalog.Default())

	for range 2 {
		require.Equal(t, http.StatusOK, post(t, h, "/recommend", validProfileJSON).Code)
	}

	w := get(t, h, "/recommendations")
	require.Equal(t, http.StatusOK, w.Code)
	var resp ListResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Count)

	w = get(t, h, "/recommendations?limit=1")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Count)
}

func TestListRecommendationsEndpoint_Empty(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore(), catalog.Default())

	w := get(t, h, "/recommendations")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"sets":[],"count":0}`, w.Body.String())
}

func TestListRecommendationsEndpoint_InvalidLimit(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore(), catalog.Default())

	for _, limit := range []string{"abc", "0", "-3", "101"} {
		w := get(t, h, "/recommendations?limit="+limit)
		assert.Equal(t, http.StatusBadRequest, w.Code, "limit=%s", limit)
	}
}

func TestMethodNotAllowed(t *testing.T) {
	h := newTestServer(t, store.NewMemoryStore(), catalog.Default())

	req := httptest.NewRequest(http.MethodGet, "/recommend", bytes.NewReader(nil))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
