package auth

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultTTL       = 24 * 7 * time.Hour
	sessionKeyPrefix = "fitscore-session||"
	tokensSetKey     = "fitscore-sessions"
	tokenLength      = 35
)

var ErrMalformedSession = errors.New("malformed session")

// Session binds a token to the user it was issued for.
type Session struct {
	Token     string
	UserID    string
	CreatedAt time.Time
}

func (s Session) Expired(ttl time.Duration, now time.Time) bool {
	return now.Sub(s.CreatedAt) > ttl
}

// sessions are stored as "<userID>|<createdUnix>"
func encodeSession(userID string, createdAt time.Time) string {
	return fmt.Sprintf("%s|%d", userID, createdAt.Unix())
}

func decodeSession(token, value string) (Session, error) {
	sep := strings.LastIndex(value, "|")
	if sep <= 0 {
		return Session{}, fmt.Errorf("%w: %q", ErrMalformedSession, value)
	}

	createdAtUnix, err := strconv.ParseInt(value[sep+1:], 10, 64)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %s", ErrMalformedSession, err)
	}

	return Session{
		Token:     token,
		UserID:    value[:sep],
		CreatedAt: time.Unix(createdAtUnix, 0),
	}, nil
}
