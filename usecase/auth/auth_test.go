package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"

	"github.com/agora/backend/domain"
	"github.com/agora/backend/internal/docstore/memstore"
	"github.com/agora/backend/repository"
	"github.com/agora/backend/repository/document"
)

type memorySessionRepo struct {
	sessions map[string]*domain.Session
}

func newMemorySessionRepo() *memorySessionRepo {
	return &memorySessionRepo{sessions: make(map[string]*domain.Session)}
}

func (r *memorySessionRepo) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, ok := r.sessions[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *memorySessionRepo) Save(ctx context.Context, session *domain.Session) error {
	copied := *session
	r.sessions[session.ID] = &copied
	return nil
}

func (r *memorySessionRepo) Delete(ctx context.Context, id string) error {
	delete(r.sessions, id)
	return nil
}

func (r *memorySessionRepo) Extend(ctx context.Context, id string, ttlSeconds int) error {
	session, ok := r.sessions[id]
	if !ok {
		return domain.ErrSessionNotFound
	}
	session.ExpiresAt = time.Now().Add(time.Duration(ttlSeconds) * time.Second)
	return nil
}

var _ repository.SessionRepository = (*memorySessionRepo)(nil)

const testSecret = "test-secret"

func newAuthUseCase(t *testing.T) (*UseCase, *memorySessionRepo) {
	t.Helper()
	sessions := newMemorySessionRepo()
	users := document.NewUserRepository(memstore.New())
	return New(users, sessions, testSecret, "agora", nil), sessions
}

func register(t *testing.T, uc *UseCase, id string) *domain.User {
	t.Helper()
	user, err := uc.Register(context.Background(), RegisterInput{
		UserID:  id,
		Email:   id + "@example.com",
		CityIDs: []string{"c1"},
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	return user
}

func TestRegisterRejectsIncompleteInput(t *testing.T) {
	uc, _ := newAuthUseCase(t)
	ctx := context.Background()

	cases := []RegisterInput{
		{Email: "a@example.com", CityIDs: []string{"c1"}},
		{UserID: "u1", CityIDs: []string{"c1"}},
		{UserID: "u1", Email: "a@example.com"},
	}
	for i, in := range cases {
		if _, err := uc.Register(ctx, in); !domain.IsDomainError(err, domain.ErrCodeInvalid) {
			t.Fatalf("case %d: err = %v, want INVALID", i, err)
		}
	}
}

func TestRegisterNeverCreatesAdmins(t *testing.T) {
	uc, _ := newAuthUseCase(t)

	user := register(t, uc, "u1")
	if user.IsAdmin {
		t.Fatalf("fresh account is admin")
	}
	if len(user.Cities) != 1 || user.Cities[0].ID != "c1" {
		t.Fatalf("Cities = %v, want a c1 reference", user.Cities)
	}
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	uc, sessions := newAuthUseCase(t)
	register(t, uc, "u1")

	token, session, err := uc.Login(context.Background(), "u1", time.Hour)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if session.UserID != "u1" || session.IsExpired(time.Now()) {
		t.Fatalf("session = %+v, want a live u1 session", session)
	}
	if _, ok := sessions.sessions[session.ID]; !ok {
		t.Fatalf("session was not persisted")
	}

	parsed, err := jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["user_id"] != "u1" || claims["session_id"] != session.ID {
		t.Fatalf("claims = %v", claims)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	uc, _ := newAuthUseCase(t)

	_, _, err := uc.Login(context.Background(), "ghost", time.Hour)
	if !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND", err)
	}
}

func TestGetSessionExpiresLazily(t *testing.T) {
	uc, sessions := newAuthUseCase(t)
	register(t, uc, "u1")
	ctx := context.Background()

	_, session, err := uc.Login(ctx, "u1", time.Hour)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	sessions.sessions[session.ID].ExpiresAt = time.Now().Add(-time.Minute)

	if _, err := uc.GetSession(ctx, session.ID); !domain.IsDomainError(err, domain.ErrCodeNotFound) {
		t.Fatalf("err = %v, want NOT_FOUND for an expired session", err)
	}
	if _, ok := sessions.sessions[session.ID]; ok {
		t.Fatalf("expired session was not deleted")
	}
}

func TestRefreshSessionExtendsExpiry(t *testing.T) {
	uc, sessions := newAuthUseCase(t)
	register(t, uc, "u1")
	ctx := context.Background()

	_, session, err := uc.Login(ctx, "u1", time.Minute)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	token, refreshed, err := uc.RefreshSession(ctx, session.ID, 2*time.Hour)
	if err != nil {
		t.Fatalf("RefreshSession: %v", err)
	}
	if token == "" {
		t.Fatalf("refresh returned no token")
	}
	if !refreshed.ExpiresAt.After(session.ExpiresAt) {
		t.Fatalf("expiry not extended: %v -> %v", session.ExpiresAt, refreshed.ExpiresAt)
	}
	if sessions.sessions[session.ID].ExpiresAt.Before(time.Now().Add(time.Hour)) {
		t.Fatalf("stored session not extended")
	}
}

func TestRevokeSession(t *testing.T) {
	uc, sessions := newAuthUseCase(t)
	register(t, uc, "u1")
	ctx := context.Background()

	_, session, err := uc.Login(ctx, "u1", time.Hour)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := uc.RevokeSession(ctx, session.ID); err != nil {
		t.Fatalf("RevokeSession: %v", err)
	}
	if _, ok := sessions.sessions[session.ID]; ok {
		t.Fatalf("session still present after revoke")
	}
}
