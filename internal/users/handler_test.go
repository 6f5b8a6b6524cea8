package users

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/2beens/fitstride/internal/auth"
	"github.com/2beens/fitstride/pkg"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sessionServiceStub struct {
	token        string
	loggedInUser int
	loggedOut    []string
}

func (s *sessionServiceStub) Login(_ context.Context, userID int, _ time.Time) (string, error) {
	s.loggedInUser = userID
	return s.token, nil
}

func (s *sessionServiceStub) Logout(_ context.Context, token string) (bool, error) {
	s.loggedOut = append(s.loggedOut, token)
	return true, nil
}

func TestHandler_Register(t *testing.T) {
	repo := newRepoMock()
	sessions := &sessionServiceStub{token: "new-token"}
	h := NewHandler(repo, sessions)

	reqBody, err := json.Marshal(registerRequest{
		Username: "gymrat",
		Email:    "gymrat@example.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/register", bytes.NewReader(reqBody))
	require.NoError(t, err)

	h.handleRegister(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "new-token", resp.Token)
	require.NotNil(t, resp.User)
	assert.Equal(t, "gymrat", resp.User.Username)
	assert.Equal(t, 1, sessions.loggedInUser)

	// registering the same username again fails
	rec = httptest.NewRecorder()
	req, err = http.NewRequest("POST", "/register", bytes.NewReader(reqBody))
	require.NoError(t, err)

	h.handleRegister(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestHandler_Login(t *testing.T) {
	repo := newRepoMock()
	passwordHash, err := pkg.HashPassword("supersecret")
	require.NoError(t, err)
	addedUser, err := repo.Add(context.Background(), User{
		Username:     "gymrat",
		Email:        "gymrat@example.com",
		PasswordHash: passwordHash,
	})
	require.NoError(t, err)

	sessions := &sessionServiceStub{token: "login-token"}
	h := NewHandler(repo, sessions)

	login := func(email, password string) *httptest.ResponseRecorder {
		reqBody, err := json.Marshal(map[string]string{
			"email":    email,
			"password": password,
		})
		require.NoError(t, err)
		rec := httptest.NewRecorder()
		req, err := http.NewRequest("POST", "/login", bytes.NewReader(reqBody))
		require.NoError(t, err)
		req.Header.Set("Content-Type", "application/json")
		h.handleLogin(rec, req)
		return rec
	}

	rec := login("gymrat@example.com", "supersecret")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Token string `json:"token"`
		User  *User  `json:"user"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "login-token", resp.Token)
	assert.Equal(t, addedUser.ID, sessions.loggedInUser)

	rec = login("gymrat@example.com", "wrong-pass")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = login("nobody@example.com", "supersecret")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_AccountUpdate(t *testing.T) {
	repo := newRepoMock()
	addedUser, err := repo.Add(context.Background(), User{
		Username: "gymrat",
		Email:    "gymrat@example.com",
	})
	require.NoError(t, err)

	h := NewHandler(repo, &sessionServiceStub{})

	profile := Profile{
		Country:  gofakeit.Country(),
		City:     gofakeit.City(),
		Phone:    gofakeit.Phone(),
		HeightCm: 185,
		WeightKg: 83.5,
		Age:      33,
		Goals:    "hypertrophy",
	}
	profileJson, err := json.Marshal(profile)
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("POST", "/account/update", bytes.NewReader(profileJson))
	require.NoError(t, err)
	req = req.WithContext(auth.ContextWithUserID(req.Context(), addedUser.ID))

	h.handleUpdateAccount(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated User
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, profile.City, updated.City)
	assert.Equal(t, 83.5, updated.WeightKg)

	// unauthenticated request
	rec = httptest.NewRecorder()
	req, err = http.NewRequest("POST", "/account/update", bytes.NewReader(profileJson))
	require.NoError(t, err)

	h.handleUpdateAccount(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHandler_GetAccount_NotLogged(t *testing.T) {
	h := NewHandler(newRepoMock(), &sessionServiceStub{})

	rec := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/account", nil)
	require.NoError(t, err)

	h.handleGetAccount(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
