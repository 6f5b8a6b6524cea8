package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/fitstride/internal/auth"
	"github.com/2beens/fitstride/internal/challenges"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceStub struct {
	top      []Row
	ranking  []Attempt
	standing *Attempt
}

func (s *serviceStub) GlobalTop(_ context.Context) ([]Row, error) {
	return s.top, nil
}

func (s *serviceStub) ChallengeRanking(_ context.Context, _ int) ([]Attempt, error) {
	return s.ranking, nil
}

func (s *serviceStub) MyStanding(_ context.Context, _, _ int) (*Attempt, error) {
	return s.standing, nil
}

type challengeProviderStub struct {
	challenge *challenges.Challenge
}

func (s *challengeProviderStub) Ensure(_ context.Context, _ time.Time) (*challenges.Challenge, error) {
	return s.challenge, nil
}

func newTestRouter(service *serviceStub) *mux.Router {
	handler := NewHandler(service, &challengeProviderStub{
		challenge: &challenges.Challenge{
			ID: 1, ExerciseID: 20, ExerciseName: "Squat",
			StartDate: "2025-06-02", EndDate: "2025-06-08",
		},
	})
	router := mux.NewRouter()
	handler.SetupRoutes(router.PathPrefix("/leaderboard").Subrouter())
	return router
}

func TestHandler_GlobalTop(t *testing.T) {
	router := newTestRouter(&serviceStub{
		top: []Row{{UserID: 1, Username: "A", Points: 300}},
	})

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/leaderboard", nil)
	require.NoError(t, err)

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var top []Row
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &top))
	require.Len(t, top, 1)
	assert.Equal(t, "A", top[0].Username)
}

func TestHandler_ChallengeRanking(t *testing.T) {
	router := newTestRouter(&serviceStub{
		ranking: []Attempt{{UserID: 2, Username: "B", WeightKg: 100, Reps: 8}},
	})

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/leaderboard/challenge", nil)
	require.NoError(t, err)

	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Challenge *challenges.Challenge `json:"challenge"`
		Ranking   []Attempt             `json:"ranking"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Challenge)
	assert.Equal(t, "Squat", resp.Challenge.ExerciseName)
	require.Len(t, resp.Ranking, 1)
	assert.Equal(t, "B", resp.Ranking[0].Username)
}

func TestHandler_MyStanding(t *testing.T) {
	router := newTestRouter(&serviceStub{
		standing: &Attempt{UserID: 1, Username: "A", WeightKg: 100, Reps: 5},
	})

	// not authenticated
	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/leaderboard/challenge/my", nil)
	require.NoError(t, err)
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	req, err = http.NewRequest("GET", "/leaderboard/challenge/my", nil)
	require.NoError(t, err)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), 1))
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Best *Attempt `json:"best"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotNil(t, resp.Best)
	assert.Equal(t, 100.0, resp.Best.WeightKg)
}
