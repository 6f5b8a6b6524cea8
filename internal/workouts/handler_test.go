package workouts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/2beens/fitstride/internal/auth"
	"github.com/2beens/fitstride/internal/telemetry/metrics"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serviceMock struct {
	saveResult   *SaveResult
	saveErr      error
	deleteResult *DeleteResult
	dates        []string
	workout      *Workout
}

func (s *serviceMock) SaveWorkout(_ context.Context, _ int, _ string, _ []EntryInput) (*SaveResult, error) {
	return s.saveResult, s.saveErr
}

func (s *serviceMock) DeleteWorkout(_ context.Context, _ int, _ string) (*DeleteResult, error) {
	return s.deleteResult, nil
}

func (s *serviceMock) ListDates(_ context.Context, _ int) ([]string, error) {
	return s.dates, nil
}

func (s *serviceMock) GetWorkout(_ context.Context, _ int, _ string) (*Workout, error) {
	return s.workout, nil
}

func authedRequest(t *testing.T, method, target string, body []byte) *http.Request {
	t.Helper()
	req, err := http.NewRequest(method, target, bytes.NewReader(body))
	require.NoError(t, err)
	return req.WithContext(auth.ContextWithUserID(req.Context(), 1))
}

func TestHandler_Save(t *testing.T) {
	service := &serviceMock{
		saveResult: &SaveResult{SessionID: 7, EntriesAdded: 2},
	}
	m := metrics.NewTestManager()
	handler := NewHandler(service, m)

	reqBody, err := json.Marshal(saveRequest{
		Date: "2025-06-02",
		Exercises: []EntryInput{
			{ExerciseID: 1, Sets: 3, Reps: 5, WeightKg: 100},
			{ExerciseID: 2, Sets: 4, Reps: 12, WeightKg: 25},
		},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.handleSave(rec, authedRequest(t, "POST", "/workouts/save", reqBody))
	require.Equal(t, http.StatusCreated, rec.Code)

	var result SaveResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 7, result.SessionID)
	assert.Equal(t, 2, result.EntriesAdded)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterWorkoutsSaved))
}

func TestHandler_Save_BadRequests(t *testing.T) {
	handler := NewHandler(&serviceMock{}, metrics.NewTestManager())

	// not authenticated
	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/workouts/save", bytes.NewReader([]byte("{}")))
	require.NoError(t, err)
	handler.handleSave(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// missing date
	reqBody, err := json.Marshal(saveRequest{
		Exercises: []EntryInput{{ExerciseID: 1}},
	})
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	handler.handleSave(rec, authedRequest(t, "POST", "/workouts/save", reqBody))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// no exercises
	reqBody, err = json.Marshal(saveRequest{Date: "2025-06-02"})
	require.NoError(t, err)
	rec = httptest.NewRecorder()
	handler.handleSave(rec, authedRequest(t, "POST", "/workouts/save", reqBody))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	// out of bounds entries
	for _, entry := range []EntryInput{
		{ExerciseID: 0, Sets: 3, Reps: 5, WeightKg: 100},
		{ExerciseID: 1, Sets: 0, Reps: 5, WeightKg: 100},
		{ExerciseID: 1, Sets: 3, Reps: -1, WeightKg: 100},
		{ExerciseID: 1, Sets: 3, Reps: 5, WeightKg: -20},
		{ExerciseID: 1, Sets: 3, Reps: 5, WeightKg: 0, DistanceKm: -5},
	} {
		reqBody, err = json.Marshal(saveRequest{
			Date:      "2025-06-02",
			Exercises: []EntryInput{entry},
		})
		require.NoError(t, err)
		rec = httptest.NewRecorder()
		handler.handleSave(rec, authedRequest(t, "POST", "/workouts/save", reqBody))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "entry: %+v", entry)
	}
}

func TestHandler_Save_ServiceError(t *testing.T) {
	handler := NewHandler(&serviceMock{saveErr: errors.New("db down")}, metrics.NewTestManager())

	reqBody, err := json.Marshal(saveRequest{
		Date:      "2025-06-02",
		Exercises: []EntryInput{{ExerciseID: 1, Sets: 3, Reps: 5, WeightKg: 100}},
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	handler.handleSave(rec, authedRequest(t, "POST", "/workouts/save", reqBody))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandler_ListDates(t *testing.T) {
	handler := NewHandler(&serviceMock{
		dates: []string{"2025-06-02", "2025-06-04"},
	}, metrics.NewTestManager())

	rec := httptest.NewRecorder()
	handler.handleListDates(rec, authedRequest(t, "GET", "/workouts/dates", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var dates []string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &dates))
	assert.Equal(t, []string{"2025-06-02", "2025-06-04"}, dates)
}

func TestHandler_GetAndDelete(t *testing.T) {
	service := &serviceMock{
		workout: &Workout{
			Date: "2025-06-02",
			Entries: []Entry{
				{ID: 1, ExerciseID: 1, ExerciseName: "Deadlift", MuscleGroup: "back", Sets: 3, Reps: 5, WeightKg: 140},
			},
		},
		deleteResult: &DeleteResult{Date: "2025-06-02", Deleted: true},
	}
	m := metrics.NewTestManager()
	handler := NewHandler(service, m)

	router := mux.NewRouter()
	handler.SetupRoutes(router.PathPrefix("/workouts").Subrouter())

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "GET", "/workouts/2025-06-02", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var workout Workout
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &workout))
	require.Len(t, workout.Entries, 1)
	assert.Equal(t, "Deadlift", workout.Entries[0].ExerciseName)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(t, "DELETE", "/workouts/2025-06-02", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var result DeleteResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Deleted)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.CounterWorkoutsDeleted))
}
