package challenges

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/2beens/fitstride/internal/telemetry/tracing"
	"github.com/2beens/fitstride/pkg"

	log "github.com/sirupsen/logrus"
)

type challengeEnsurer interface {
	Ensure(ctx context.Context, today time.Time) (*Challenge, error)
}

type Handler struct {
	selector challengeEnsurer
	now      func() time.Time
}

func NewHandler(selector challengeEnsurer) *Handler {
	return &Handler{
		selector: selector,
		now:      time.Now,
	}
}

// HandleCurrent returns this week's challenge, creating it on first view.
func (handler *Handler) HandleCurrent(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.challenges.current")
	defer span.End()

	challenge, err := handler.selector.Ensure(ctx, handler.now())
	if err != nil {
		log.Errorf("failed to get current challenge: %s", err)
		http.Error(w, "error getting current challenge", http.StatusInternalServerError)
		return
	}

	challengeJson, err := json.Marshal(challenge)
	if err != nil {
		log.Errorf("failed to marshal challenge: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, challengeJson, http.StatusOK)
}
