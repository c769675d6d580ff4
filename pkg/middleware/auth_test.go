package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"expobook/internal/data/entity"
	"expobook/pkg/utils"
)

type fakeSessionRepo struct {
	sessions map[string]*entity.Session
}

func (r *fakeSessionRepo) Create(_ context.Context, session *entity.Session) error {
	r.sessions[session.Token.String()] = session
	return nil
}

func (r *fakeSessionRepo) FindValidSession(_ context.Context, token string) (*entity.Session, error) {
	session, ok := r.sessions[token]
	if !ok || session.RevokedAt != nil || session.ExpiresAt.Before(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (r *fakeSessionRepo) Revoke(_ context.Context, token string) error {
	if session, ok := r.sessions[token]; ok {
		now := time.Now()
		session.RevokedAt = &now
	}
	return nil
}

func (r *fakeSessionRepo) RevokeAllUserSessions(_ context.Context, userID uuid.UUID) error {
	now := time.Now()
	for _, session := range r.sessions {
		if session.UserID == userID {
			session.RevokedAt = &now
		}
	}
	return nil
}

type fakeUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func seedSession(role entity.UserRole, active bool) (*fakeSessionRepo, *fakeUserRepo, string) {
	user := &entity.User{
		Base:     entity.Base{ID: uuid.New()},
		Name:     "Test User",
		Email:    "test@example.com",
		Role:     role,
		IsActive: active,
	}

	token := uuid.New()
	session := &entity.Session{
		BaseSimple: entity.BaseSimple{ID: uuid.New(), CreatedAt: time.Now()},
		UserID:     user.ID,
		Token:      token,
		ExpiresAt:  time.Now().Add(time.Hour),
	}

	sessionRepo := &fakeSessionRepo{sessions: map[string]*entity.Session{token.String(): session}}
	userRepo := &fakeUserRepo{users: map[uuid.UUID]*entity.User{user.ID: user}}

	return sessionRepo, userRepo, token.String()
}

func TestAuthSession_ValidTokenSetsContext(t *testing.T) {
	sessionRepo, userRepo, token := seedSession(entity.RoleMember, true)

	var gotUserID uuid.UUID
	var gotRole string
	handler := AuthSession(sessionRepo, userRepo, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID, _ = utils.GetUserIDFromContext(r.Context())
		gotRole, _ = utils.GetRoleFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotEqual(t, uuid.Nil, gotUserID)
	assert.Equal(t, string(entity.RoleMember), gotRole)
}

func TestAuthSession_MissingHeaderRejected(t *testing.T) {
	sessionRepo, userRepo, _ := seedSession(entity.RoleMember, true)

	handler := AuthSession(sessionRepo, userRepo, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSession_MalformedHeaderRejected(t *testing.T) {
	sessionRepo, userRepo, token := seedSession(entity.RoleMember, true)

	handler := AuthSession(sessionRepo, userRepo, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSession_UnknownTokenRejected(t *testing.T) {
	sessionRepo, userRepo, _ := seedSession(entity.RoleMember, true)

	handler := AuthSession(sessionRepo, userRepo, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking", nil)
	req.Header.Set("Authorization", "Bearer "+uuid.New().String())
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthSession_InactiveUserRejected(t *testing.T) {
	sessionRepo, userRepo, token := seedSession(entity.RoleMember, false)

	handler := AuthSession(sessionRepo, userRepo, zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/booking", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_MemberForbidden(t *testing.T) {
	sessionRepo, userRepo, token := seedSession(entity.RoleMember, true)

	handler := AuthSession(sessionRepo, userRepo, zap.NewNop())(
		Admin(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not be reached")
		})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exhibitions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAdmin_AdminAllowed(t *testing.T) {
	sessionRepo, userRepo, token := seedSession(entity.RoleAdmin, true)

	handler := AuthSession(sessionRepo, userRepo, zap.NewNop())(
		Admin(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exhibitions", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAdmin_NoSessionContextRejected(t *testing.T) {
	handler := Admin(zap.NewNop())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not be reached")
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/exhibitions", nil)
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
