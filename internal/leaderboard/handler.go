package leaderboard

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/fitstride/internal/auth"
	"github.com/2beens/fitstride/internal/challenges"
	"github.com/2beens/fitstride/internal/telemetry/tracing"
	"github.com/2beens/fitstride/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type leaderboardService interface {
	GlobalTop(ctx context.Context) ([]Row, error)
	ChallengeRanking(ctx context.Context, challengeID int) ([]Attempt, error)
	MyStanding(ctx context.Context, challengeID, userID int) (*Attempt, error)
}

// challengeProvider resolves this week's challenge, creating it when the
// leaderboard page is the first visit of the week.
type challengeProvider interface {
	Ensure(ctx context.Context, today time.Time) (*challenges.Challenge, error)
}

type Handler struct {
	service   leaderboardService
	challenge challengeProvider
	now       func() time.Time
}

func NewHandler(service leaderboardService, challenge challengeProvider) *Handler {
	return &Handler{
		service:   service,
		challenge: challenge,
		now:       time.Now,
	}
}

func (handler *Handler) SetupRoutes(router *mux.Router) {
	router.HandleFunc("", handler.handleGlobalTop).Methods("GET", "OPTIONS")
	router.HandleFunc("/challenge", handler.handleChallengeRanking).Methods("GET", "OPTIONS")
	router.HandleFunc("/challenge/my", handler.handleMyStanding).Methods("GET", "OPTIONS")
}

func (handler *Handler) handleGlobalTop(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.leaderboard.globalTop")
	defer span.End()

	top, err := handler.service.GlobalTop(ctx)
	if err != nil {
		log.Errorf("failed to get global leaderboard: %s", err)
		http.Error(w, "error getting leaderboard", http.StatusInternalServerError)
		return
	}

	handler.writeJson(w, top)
}

func (handler *Handler) handleChallengeRanking(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.leaderboard.challengeRanking")
	defer span.End()

	challenge, err := handler.challenge.Ensure(ctx, handler.now())
	if err != nil {
		log.Errorf("failed to get current challenge for ranking: %s", err)
		http.Error(w, "error getting challenge ranking", http.StatusInternalServerError)
		return
	}

	ranked, err := handler.service.ChallengeRanking(ctx, challenge.ID)
	if err != nil {
		log.Errorf("failed to get ranking for challenge %d: %s", challenge.ID, err)
		http.Error(w, "error getting challenge ranking", http.StatusInternalServerError)
		return
	}

	handler.writeJson(w, struct {
		Challenge *challenges.Challenge `json:"challenge"`
		Ranking   []Attempt             `json:"ranking"`
	}{
		Challenge: challenge,
		Ranking:   ranked,
	})
}

func (handler *Handler) handleMyStanding(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.leaderboard.myStanding")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	challenge, err := handler.challenge.Ensure(ctx, handler.now())
	if err != nil {
		log.Errorf("failed to get current challenge for standing: %s", err)
		http.Error(w, "error getting standing", http.StatusInternalServerError)
		return
	}

	standing, err := handler.service.MyStanding(ctx, challenge.ID, userID)
	if err != nil {
		log.Errorf("failed to get standing for user %d: %s", userID, err)
		http.Error(w, "error getting standing", http.StatusInternalServerError)
		return
	}

	handler.writeJson(w, struct {
		Challenge *challenges.Challenge `json:"challenge"`
		Best      *Attempt              `json:"best"`
	}{
		Challenge: challenge,
		Best:      standing,
	})
}

func (handler *Handler) writeJson(w http.ResponseWriter, value any) {
	valueJson, err := json.Marshal(value)
	if err != nil {
		log.Errorf("failed to marshal leaderboard response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, valueJson, http.StatusOK)
}
