package services

import (
	"context"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/moviekeeper/internal/client/models"
	"github.com/dmitrijs2005/moviekeeper/internal/cryptox"
	"github.com/dmitrijs2005/moviekeeper/internal/logging"
	"github.com/google/uuid"
)

// MinPasswordLength is the shortest password Login accepts.
const MinPasswordLength = 6

var emailRe = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,64}$`)

// SessionStore persists the single local session.
type SessionStore interface {
	SaveSession(ctx context.Context, s models.Session)
	LoadSession(ctx context.Context) (models.Session, bool)
	IsLoggedIn(ctx context.Context) bool
	ClearSession(ctx context.Context)
}

// AuthService is the local login. There is no identity provider: Login only
// checks the input format and records a session.
type AuthService interface {
	Login(ctx context.Context, email string, password []byte) error
	Logout(ctx context.Context)
	IsLoggedIn(ctx context.Context) bool
	CurrentSession(ctx context.Context) (models.Session, bool)
}

type authService struct {
	sessions SessionStore
	now      func() time.Time
	log      logging.Logger
}

// NewAuthService returns an AuthService that keeps its session in sessions.
func NewAuthService(sessions SessionStore, log logging.Logger) AuthService {
	if log == nil {
		log = logging.NewNop()
	}
	return &authService{sessions: sessions, now: time.Now, log: log}
}

// ValidateCredentials returns a *ValidationError for input Login would reject.
func ValidateCredentials(email string, password []byte) error {
	if email == "" || len(password) == 0 {
		return &ValidationError{Reason: ReasonMissingFields}
	}
	if !emailRe.MatchString(email) {
		return &ValidationError{Reason: ReasonInvalidEmail}
	}
	if utf8.RuneCount(password) < MinPasswordLength {
		return &ValidationError{Reason: ReasonShortPassword}
	}
	return nil
}

// Login validates the credentials and, when they pass, stores a session
// holding the e-mail, an argon2id hash of the password and a fresh token.
// Invalid input never reaches the store.
func (a *authService) Login(ctx context.Context, email string, password []byte) error {
	if err := ValidateCredentials(email, password); err != nil {
		a.log.Debug(ctx, "login rejected", "reason", err.Error())
		return err
	}

	a.sessions.SaveSession(ctx, models.Session{
		Email:        email,
		PasswordHash: cryptox.HashPassword(password),
		Token:        uuid.NewString(),
		CreatedAt:    a.now().UTC(),
	})
	a.log.Info(ctx, "logged in", "email", email)
	return nil
}

func (a *authService) Logout(ctx context.Context) {
	a.sessions.ClearSession(ctx)
	a.log.Info(ctx, "logged out")
}

func (a *authService) IsLoggedIn(ctx context.Context) bool {
	return a.sessions.IsLoggedIn(ctx)
}

// CurrentSession returns the stored session when the logged-in flag is set.
func (a *authService) CurrentSession(ctx context.Context) (models.Session, bool) {
	if !a.sessions.IsLoggedIn(ctx) {
		return models.Session{}, false
	}
	return a.sessions.LoadSession(ctx)
}
