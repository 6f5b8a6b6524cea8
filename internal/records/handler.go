package records

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/2beens/fitstride/internal/auth"
	"github.com/2beens/fitstride/internal/telemetry/tracing"
	"github.com/2beens/fitstride/pkg"

	log "github.com/sirupsen/logrus"
)

type recordsRepo interface {
	ListForUser(ctx context.Context, userID int) ([]PersonalRecord, error)
}

type Handler struct {
	repo recordsRepo
}

func NewHandler(repo recordsRepo) *Handler {
	return &Handler{
		repo: repo,
	}
}

// HandleMyRecords returns the current user's personal records grouped by
// muscle group, for the account page.
func (handler *Handler) HandleMyRecords(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.records.my")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	personalRecords, err := handler.repo.ListForUser(ctx, userID)
	if err != nil {
		log.Errorf("failed to list personal records for user %d: %s", userID, err)
		http.Error(w, "error getting personal records", http.StatusInternalServerError)
		return
	}

	groupedJson, err := json.Marshal(GroupByMuscleGroup(personalRecords))
	if err != nil {
		log.Errorf("failed to marshal personal records: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, groupedJson, http.StatusOK)
}
