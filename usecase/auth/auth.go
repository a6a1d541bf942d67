// Package auth registers accounts and exchanges a verified identity for a
// bearer token plus a Redis-backed session. Credential verification itself
// belongs to the external identity provider.
package auth

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore"
	"github.com/agora/backend/repository"
)

type UseCase struct {
	users    repository.UserRepository
	sessions repository.SessionRepository
	secret   []byte
	issuer   string
	logger   *zap.Logger
}

func New(users repository.UserRepository, sessions repository.SessionRepository, secret, issuer string, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		users:    users,
		sessions: sessions,
		secret:   []byte(secret),
		issuer:   issuer,
		logger:   logger,
	}
}

// RegisterInput carries the fields of a new account. UserID is the stable
// identifier the identity provider assigned.
type RegisterInput struct {
	UserID    string
	Firstname string
	Lastname  string
	Email     string
	CityIDs   []string
}

// Register creates the user document behind a fresh identity. New accounts
// are never admins.
func (uc *UseCase) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	if input.UserID == "" || input.Email == "" || len(input.CityIDs) == 0 {
		return nil, domain.ErrInvalidPayload
	}

	cities := make([]docstore.Ref, 0, len(input.CityIDs))
	for _, id := range input.CityIDs {
		cities = append(cities, docstore.NewRef(docstore.CollectionCity, id))
	}

	user := &domain.User{
		ID:        input.UserID,
		Firstname: input.Firstname,
		Lastname:  input.Lastname,
		Email:     input.Email,
		Cities:    cities,
		IsAdmin:   false,
	}
	created, err := uc.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	uc.logger.Info("user registered", zap.String("user_id", created.ID))
	return created, nil
}

// Login verifies the user exists, opens a session and signs a bearer token
// for it.
func (uc *UseCase) Login(ctx context.Context, userID string, ttl time.Duration) (string, *domain.Session, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return "", nil, err
	}

	session := &domain.Session{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Admin:     user.IsAdmin,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(ttl),
	}
	if err := uc.sessions.Save(ctx, session); err != nil {
		return "", nil, err
	}

	token, err := uc.signToken(session)
	if err != nil {
		return "", nil, err
	}
	return token, session, nil
}

// GetSession returns a live session, expiring it lazily.
func (uc *UseCase) GetSession(ctx context.Context, sessionID string) (*domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.IsExpired(time.Now()) {
		_ = uc.sessions.Delete(ctx, sessionID)
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}

// RefreshSession extends a session and re-signs its token.
func (uc *UseCase) RefreshSession(ctx context.Context, sessionID string, ttl time.Duration) (string, *domain.Session, error) {
	session, err := uc.sessions.Get(ctx, sessionID)
	if err != nil {
		return "", nil, err
	}
	if err := uc.sessions.Extend(ctx, sessionID, int(ttl.Seconds())); err != nil {
		return "", nil, err
	}
	session.ExpiresAt = time.Now().Add(ttl)

	token, err := uc.signToken(session)
	if err != nil {
		return "", nil, err
	}
	return token, session, nil
}

// RevokeSession drops a session.
func (uc *UseCase) RevokeSession(ctx context.Context, sessionID string) error {
	return uc.sessions.Delete(ctx, sessionID)
}

func (uc *UseCase) signToken(session *domain.Session) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    session.UserID,
		"session_id": session.ID,
		"iss":        uc.issuer,
		"exp":        session.ExpiresAt.Unix(),
		"iat":        time.Now().Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(uc.secret)
}
