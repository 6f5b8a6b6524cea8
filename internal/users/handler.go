package users

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2beens/fitstride/internal/auth"
	"github.com/2beens/fitstride/internal/middleware"
	"github.com/2beens/fitstride/internal/telemetry/metrics"
	"github.com/2beens/fitstride/internal/telemetry/tracing"
	"github.com/2beens/fitstride/pkg"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
)

type usersRepo interface {
	Add(ctx context.Context, user User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Get(ctx context.Context, id int) (*User, error)
	UpdateProfile(ctx context.Context, userID int, profile Profile) error
}

type sessionService interface {
	Login(ctx context.Context, userID int, createdAt time.Time) (string, error)
	Logout(ctx context.Context, token string) (bool, error)
}

type Handler struct {
	repo     usersRepo
	sessions sessionService
}

func NewHandler(repo usersRepo, sessions sessionService) *Handler {
	return &Handler{
		repo:     repo,
		sessions: sessions,
	}
}

func (handler *Handler) SetupRoutes(
	r *mux.Router,
	rateLimiter middleware.RequestRateLimiter,
	metricsManager *metrics.Manager,
	loginAllowedPerMin int,
) {
	r.HandleFunc("/register", handler.handleRegister).Methods("POST", "OPTIONS").Name("register")
	r.HandleFunc("/logout", handler.handleLogout).Methods("POST", "OPTIONS").Name("logout")
	r.HandleFunc("/account", handler.handleGetAccount).Methods("GET", "OPTIONS").Name("account")
	r.HandleFunc("/account/update", handler.handleUpdateAccount).Methods("POST", "OPTIONS").Name("account-update")

	loginSubrouter := r.Path("/login").Subrouter()
	loginSubrouter.
		HandleFunc("", handler.handleLogin).
		Methods("POST", "OPTIONS").
		Name("login")
	loginSubrouter.Use(middleware.RateLimit(rateLimiter, "login", loginAllowedPerMin, metricsManager))
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (handler *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.register")
	defer span.End()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Tracef("register, unmarshal json params: %s", err)
		http.Error(w, "registration failed", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		http.Error(w, "error, username, email or password empty", http.StatusBadRequest)
		return
	}

	passwordHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		log.Errorf("register, hash password: %s", err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	addedUser, err := handler.repo.Add(ctx, User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
	})
	if err != nil {
		if errors.Is(err, ErrUserExists) {
			http.Error(w, "username or email already taken", http.StatusConflict)
			return
		}
		log.Errorf("register user [%s]: %s", req.Username, err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	token, err := handler.sessions.Login(ctx, addedUser.ID, time.Now())
	if err != nil {
		log.Errorf("register, create session: %s", err)
		http.Error(w, "registration failed", http.StatusInternalServerError)
		return
	}

	log.Debugf("registered user: %s [id %d]", addedUser.Username, addedUser.ID)
	writeUserWithToken(w, addedUser, token, http.StatusCreated)
}

func (handler *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.login")
	defer span.End()

	if r.Method == http.MethodOptions {
		w.Header().Add("Allow", "POST, OPTIONS")
		w.WriteHeader(http.StatusOK)
		return
	}

	type loginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var loginReq loginRequest
	if r.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
			log.Errorf("login, unmarshal json params: %s", err)
			http.Error(w, "login failed", http.StatusBadRequest)
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			log.Errorf("login failed, parse form error: %s", err)
			http.Error(w, "parse form error", http.StatusInternalServerError)
			return
		}
		loginReq = loginRequest{
			Email:    r.Form.Get("email"),
			Password: r.Form.Get("password"),
		}
	}

	if loginReq.Email == "" {
		http.Error(w, "error, email empty", http.StatusBadRequest)
		return
	}
	if loginReq.Password == "" {
		http.Error(w, "error, password empty", http.StatusBadRequest)
		return
	}

	user, err := handler.repo.GetByEmail(ctx, loginReq.Email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			log.Tracef("[user] failed login attempt for email: %s", loginReq.Email)
			http.Error(w, "error, wrong credentials", http.StatusBadRequest)
			return
		}
		log.Errorf("login, get user: %s", err)
		http.Error(w, "login failed", http.StatusInternalServerError)
		return
	}

	if !pkg.CheckPasswordHash(loginReq.Password, user.PasswordHash) {
		if reqIp, ipErr := pkg.ReadUserIP(r); ipErr == nil {
			log.Tracef("[password] failed login attempt for email %s from %s", loginReq.Email, reqIp)
		}
		http.Error(w, "error, wrong credentials", http.StatusBadRequest)
		return
	}

	token, err := handler.sessions.Login(ctx, user.ID, time.Now())
	if err != nil {
		log.Errorf("login failed, generate token error: %s", err)
		http.Error(w, "generate token error", http.StatusInternalServerError)
		return
	}

	log.Tracef("new login success: user %d", user.ID)
	writeUserWithToken(w, user, token, http.StatusOK)
}

func (handler *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.logout")
	defer span.End()

	authToken := r.Header.Get("X-FITSTRIDE-TOKEN")
	if authToken == "" {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	loggedOut, err := handler.sessions.Logout(ctx, authToken)
	if err != nil {
		log.Tracef("[failed logout] => %s: %s", r.URL.Path, err)
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}
	if !loggedOut {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	pkg.WriteTextResponseOK(w, "logged-out")
}

func (handler *Handler) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.account")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	user, err := handler.repo.Get(ctx, userID)
	if err != nil {
		log.Errorf("failed to get user %d: %s", userID, err)
		http.Error(w, "failed to get account", http.StatusInternalServerError)
		return
	}

	userJson, err := json.Marshal(user)
	if err != nil {
		log.Errorf("failed to marshal user: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, userJson, http.StatusOK)
}

func (handler *Handler) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.users.accountUpdate")
	defer span.End()

	userID, ok := auth.UserIDFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	var profile Profile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		log.Tracef("update account, unmarshal json params: %s", err)
		http.Error(w, "update account failed", http.StatusBadRequest)
		return
	}

	if err := handler.repo.UpdateProfile(ctx, userID, profile); err != nil {
		log.Errorf("failed to update profile for user %d: %s", userID, err)
		http.Error(w, "error updating account details", http.StatusInternalServerError)
		return
	}

	updatedUser, err := handler.repo.Get(ctx, userID)
	if err != nil {
		log.Errorf("failed to get updated user %d: %s", userID, err)
		http.Error(w, "failed to get account", http.StatusInternalServerError)
		return
	}

	updatedUserJson, err := json.Marshal(updatedUser)
	if err != nil {
		log.Errorf("failed to marshal updated user: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, updatedUserJson, http.StatusOK)
}

func writeUserWithToken(w http.ResponseWriter, user *User, token string, statusCode int) {
	resp := struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}{
		Token: token,
		User:  user,
	}

	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal login response: %s", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, statusCode)
}
