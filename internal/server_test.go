package internal

import (
	"net/http"
	"testing"

	"github.com/2beens/fitstride/internal/auth"
	"github.com/2beens/fitstride/internal/challenges"
	"github.com/2beens/fitstride/internal/config"
	"github.com/2beens/fitstride/internal/exercises"
	"github.com/2beens/fitstride/internal/telemetry/metrics"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer() *Server {
	metricsManager := metrics.NewTestManager()
	rdb := redis.NewClient(&redis.Options{})
	return &Server{
		config: &config.Config{
			LoginRateLimitAllowedPerMin: 5,
		},
		versionInfo:    "test-version",
		redisClient:    rdb,
		authService:    auth.NewService(auth.DefaultTTL, rdb),
		loginChecker:   auth.NewLoginChecker(auth.DefaultTTL, rdb),
		metricsManager: metricsManager,
		challengeSelector: challenges.NewSelector(
			challenges.NewRepo(nil),
			exercises.NewRepo(nil),
			metricsManager,
		),
	}
}

func TestRouterSetup_Routes(t *testing.T) {
	server := newTestServer()
	router, err := server.routerSetup()
	require.NoError(t, err)

	for _, tc := range []struct {
		method string
		path   string
	}{
		{"POST", "/register"},
		{"POST", "/login"},
		{"POST", "/logout"},
		{"GET", "/account"},
		{"POST", "/account/update"},
		{"GET", "/exercises"},
		{"GET", "/exercises/2"},
		{"POST", "/workouts/save"},
		{"GET", "/workouts/dates"},
		{"GET", "/workouts/2025-06-02"},
		{"DELETE", "/workouts/2025-06-02"},
		{"GET", "/records/my"},
		{"GET", "/challenges/current"},
		{"GET", "/leaderboard"},
		{"GET", "/leaderboard/challenge"},
		{"GET", "/leaderboard/challenge/my"},
		{"GET", "/version"},
	} {
		req, err := http.NewRequest(tc.method, tc.path, nil)
		require.NoError(t, err)

		var match mux.RouteMatch
		assert.True(t, router.Match(req, &match), "no route for %s %s", tc.method, tc.path)
		assert.NotEqual(t, "unknown", match.Route.GetName(), "%s %s fell through to the unknown handler", tc.method, tc.path)
	}
}
