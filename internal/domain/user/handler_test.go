package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/jwt"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := jwt.New("test-secret", time.Hour)
	svc := NewService(NewRepository(newTestDB(t)), nil, tokens)
	svc.hashCost = bcrypt.MinCost

	r := gin.New()
	RegisterRoutes(r.Group("/api"), NewHandler(svc, 6), middleware.JWTAuth(tokens), middleware.OptionalAuth(tokens))
	return r
}

func doJSONRequest(r http.Handler, method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	return env
}

func TestUserEndpoints_FullFlow(t *testing.T) {
	r := setupTestRouter(t)

	register := map[string]any{
		"email": "anna@example.com", "username": "anna",
		"first_name": "Anna", "last_name": "Petrova", "password": "supersecret",
	}
	rr := doJSONRequest(r, http.MethodPost, "/api/users", register, "")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = doJSONRequest(r, http.MethodPost, "/api/users", register, "")
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, "EMAIL_TAKEN", decode(t, rr).Error.Code)

	rr = doJSONRequest(r, http.MethodPost, "/api/auth/token/login", map[string]any{"email": "anna@example.com", "password": "nope"}, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSONRequest(r, http.MethodPost, "/api/auth/token/login", map[string]any{"email": "anna@example.com", "password": "supersecret"}, "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var token TokenResponse
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &token))
	require.NotEmpty(t, token.AuthToken)

	rr = doJSONRequest(r, http.MethodGet, "/api/users/me", nil, token.AuthToken)
	require.Equal(t, http.StatusOK, rr.Code)
	var me Response
	require.NoError(t, json.Unmarshal(decode(t, rr).Data, &me))
	assert.Equal(t, "anna", me.Username)

	rr = doJSONRequest(r, http.MethodPost, "/api/users/set_password",
		map[string]any{"current_password": "supersecret", "new_password": "evenmoresecret"}, token.AuthToken)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = doJSONRequest(r, http.MethodPost, "/api/auth/token/login", map[string]any{"email": "anna@example.com", "password": "evenmoresecret"}, "")
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestUserEndpoints_Validation(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/users", map[string]any{"email": "not-an-email", "username": "bad name"}, "")
	require.Equal(t, http.StatusBadRequest, rr.Code)
	env := decode(t, rr)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "email", env.Error.Details["email"])
	assert.Equal(t, "username", env.Error.Details["username"])
}

func TestUserEndpoints_AuthRequired(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodGet, "/api/users/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/users", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/users/42", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/users/abc", nil, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
