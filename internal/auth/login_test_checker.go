package auth

import "context"

// LoginTestChecker is used in unit tests as a replacement for the
// redis backed LoginChecker
type LoginTestChecker struct {
	LoggedSessions map[string]int
}

func NewLoginTestChecker() *LoginTestChecker {
	return &LoginTestChecker{
		LoggedSessions: map[string]int{},
	}
}

func (ltc *LoginTestChecker) UserID(_ context.Context, token string) (int, error) {
	userID, ok := ltc.LoggedSessions[token]
	if !ok {
		return 0, ErrNotLoggedIn
	}
	return userID, nil
}
