package workouts

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/2beens/fitstride/internal/auth"
	"github.com/2beens/fitstride/internal/telemetry/metrics"
	"github.com/2beens/fitstride/internal/telemetry/tracing"
	"github.com/2beens/fitstride/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type workoutsService interface {
	SaveWorkout(ctx context.Context, userID int, date string, entries []EntryInput) (*SaveResult, error)
	DeleteWorkout(ctx context.Context, userID int, date string) (*DeleteResult, error)
	ListDates(ctx context.Context, userID int) ([]string, error)
	GetWorkout(ctx context.Context, userID int, date string) (*Workout, error)
}

type Handler struct {
	service workoutsService
	metrics *metrics.Manager
}

func NewHandler(service workoutsService, metrics *metrics.Manager) *Handler {
	return &Handler{
		service: service,
		metrics: metrics,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("/save", handler.handleSave).Methods("POST", "OPTIONS")
	router.HandleFunc("/dates", handler.handleListDates).Methods("GET", "OPTIONS")
	router.HandleFunc("/{date}", handler.handleGet).Methods("GET", "OPTIONS")
	router.HandleFunc("/{date}", handler.handleDelete).Methods("DELETE", "OPTIONS")
}

type saveRequest struct {
	Date      string       `json:"date"`
	Exercises []EntryInput `json:"exercises"`
}

func (handler *Handler) handleSave(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.save")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var req saveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("save workout, unmarshal json params: %s", err)
		http.Error(w, "save workout failed", http.StatusBadRequest)
		return
	}

	if req.Date == "" {
		http.Error(w, "error, date empty", http.StatusBadRequest)
		return
	}
	if len(req.Exercises) == 0 {
		http.Error(w, "error, no exercises", http.StatusBadRequest)
		return
	}
	for i, e := range req.Exercises {
		if err := e.Validate(); err != nil {
			http.Error(w, fmt.Sprintf("error, exercise %d: %s", i, err), http.StatusBadRequest)
			return
		}
	}

	result, err := handler.service.SaveWorkout(ctx, userID, req.Date, req.Exercises)
	if err != nil {
		log.Errorf("failed to save workout for user %d: %s", userID, err)
		http.Error(w, "error saving workout", http.StatusInternalServerError)
		return
	}

	handler.metrics.CounterWorkoutsSaved.Inc()

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal save result: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusCreated)
}

func (handler *Handler) handleListDates(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.listDates")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	dates, err := handler.service.ListDates(ctx, userID)
	if err != nil {
		log.Errorf("failed to list workout dates for user %d: %s", userID, err)
		http.Error(w, "error getting workout dates", http.StatusInternalServerError)
		return
	}

	datesJson, err := json.Marshal(dates)
	if err != nil {
		log.Errorf("failed to marshal workout dates: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, datesJson, http.StatusOK)
}

func (handler *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.get")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	date := mux.Vars(r)["date"]
	workout, err := handler.service.GetWorkout(ctx, userID, date)
	if err != nil {
		log.Errorf("failed to get workout [%s] for user %d: %s", date, userID, err)
		http.Error(w, "error getting workout", http.StatusInternalServerError)
		return
	}

	workoutJson, err := json.Marshal(workout)
	if err != nil {
		log.Errorf("failed to marshal workout: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, workoutJson, http.StatusOK)
}

func (handler *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.workouts.delete")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	date := mux.Vars(r)["date"]
	result, err := handler.service.DeleteWorkout(ctx, userID, date)
	if err != nil {
		log.Errorf("failed to delete workout [%s] for user %d: %s", date, userID, err)
		http.Error(w, "error deleting workout", http.StatusInternalServerError)
		return
	}

	if result.Deleted {
		handler.metrics.CounterWorkoutsDeleted.Inc()
	}

	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Errorf("failed to marshal delete result: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, resultJson, http.StatusOK)
}
