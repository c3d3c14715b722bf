package transport

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalog/pkg/domain/model"
	"catalog/pkg/domain/service"
)

func userRouter(users service.UserService, tokens *service.Tokens) http.Handler {
	r := mux.NewRouter()
	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(authMiddleware(tokens))
	registerUserRoutes(api, users)
	return r
}

func TestUpdateUserRequiresAdmin(t *testing.T) {
	tokens := service.NewTokens("test-secret", time.Hour)
	targetID := uuid.New()
	body := `{"name": "Mallory", "isAdmin": true}`

	issue := func(t *testing.T, isAdmin bool) string {
		t.Helper()
		token, err := tokens.Issue(&model.User{ID: uuid.New(), IsAdmin: isAdmin})
		require.NoError(t, err)
		return token
	}

	put := func(router http.Handler, token string) *httptest.ResponseRecorder {
		r := httptest.NewRequest(http.MethodPut, "/api/v1/users/"+targetID.String(), strings.NewReader(body))
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, r)
		return w
	}

	t.Run("non-admin cannot grant admin", func(t *testing.T) {
		stub := &stubUserService{user: &model.User{ID: targetID}}
		w := put(userRouter(stub, tokens), issue(t, false))
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Nil(t, stub.updated, "the update must never reach the service")
	})

	t.Run("admin updates", func(t *testing.T) {
		stub := &stubUserService{user: &model.User{ID: targetID}}
		w := put(userRouter(stub, tokens), issue(t, true))
		assert.Equal(t, http.StatusOK, w.Code)
		require.NotNil(t, stub.updated)
		assert.True(t, stub.updated.IsAdmin)
	})
}

func TestRegisterHandlerNeverGrantsAdmin(t *testing.T) {
	tokens := service.NewTokens("test-secret", time.Hour)
	stub := &stubUserService{user: &model.User{ID: uuid.New()}}
	router := userRouter(stub, tokens)

	body := `{"name": "Mallory", "email": "m@example.com", "password": "s3cret", "isAdmin": true}`
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/users/register", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotNil(t, stub.registered)
	assert.False(t, stub.registered.IsAdmin)
}

var _ service.UserService = &stubUserService{}

type stubUserService struct {
	user       *model.User
	registered *service.NewUser
	updated    *service.NewUser
}

func (s *stubUserService) Register(input service.NewUser) (*model.User, error) {
	s.registered = &input
	return s.user, nil
}

func (s *stubUserService) Login(string, string) (string, error) {
	return "", service.ErrInvalidCredentials
}

func (s *stubUserService) GetUser(uuid.UUID) (*model.User, error) {
	if s.user == nil {
		return nil, model.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubUserService) ListUsers() ([]*model.User, error) {
	return []*model.User{}, nil
}

func (s *stubUserService) UpdateUser(_ uuid.UUID, input service.NewUser) (*model.User, error) {
	s.updated = &input
	return s.user, nil
}

func (s *stubUserService) DeleteUser(uuid.UUID) error {
	return nil
}

func (s *stubUserService) CountUsers() (int, error) {
	return 0, nil
}
