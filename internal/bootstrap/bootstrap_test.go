package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Atharvasurya/punjab-alumni-sih/internal/config"
)

const testConfig = `
server:
  mode: test
store:
  driver: memory
  seed_path: ../../seed/alumni.json
session:
  secret: test-secret
  cookie_name: auth-role
logging:
  level: error
`

type testServer struct {
	t      *testing.T
	router *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	ctx := context.Background()
	lgr := zerolog.Nop()
	database, err := SetupDatabase(ctx, cfg, lgr)
	require.NoError(t, err)
	deps, err := BuildDependencies(ctx, cfg, database, lgr)
	require.NoError(t, err)
	t.Cleanup(func() { _ = deps.Close() })

	return &testServer{t: t, router: SetupRouter(cfg, deps, lgr)}
}

func (s *testServer) do(method, path string, body interface{}, cookie *http.Cookie) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *testServer) login(username, password string) *http.Cookie {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": username, "password": password}, nil)
	require.Equal(s.t, http.StatusOK, rec.Code, rec.Body.String())
	for _, c := range rec.Result().Cookies() {
		if c.Name == "auth-role" {
			return c
		}
	}
	s.t.Fatalf("login as %s set no session cookie", username)
	return nil
}

func data(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var envelope struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope.Data
}

func TestRouter_Health(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(http.MethodGet, "/api/health", nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "memory", data(t, rec)["store"])
}

func TestRouter_Login(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin", "password": "wrong"}, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(http.MethodPost, "/api/auth/login", map[string]string{"username": "admin"}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	cookie := s.login("collage", "collage@123")
	rec = s.do(http.MethodGet, "/api/auth/me", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	me := data(t, rec)
	assert.Equal(t, "collage", me["role"])
	assert.NotEmpty(t, me["expiresAt"])
}

func TestRouter_RoleChecks(t *testing.T) {
	s := newTestServer(t)
	student := s.login("students", "students@123")
	college := s.login("collage", "collage@123")

	tests := []struct {
		name   string
		method string
		path   string
		body   interface{}
		cookie *http.Cookie
		want   int
	}{
		{"no cookie", http.MethodGet, "/api/alumni", nil, nil, http.StatusUnauthorized},
		{"forged cookie", http.MethodGet, "/api/alumni", nil, &http.Cookie{Name: "auth-role", Value: "admin"}, http.StatusUnauthorized},
		{"student lists alumni", http.MethodGet, "/api/alumni", nil, student, http.StatusOK},
		{"student reads analytics", http.MethodGet, "/api/admin/analytics", nil, student, http.StatusForbidden},
		{"college reads analytics", http.MethodGet, "/api/admin/analytics", nil, college, http.StatusOK},
		{"college creates alumni", http.MethodPost, "/api/alumni", map[string]string{"name": "X"}, college, http.StatusForbidden},
		{"college applies", http.MethodPost, "/api/opportunities/op_001/apply", nil, college, http.StatusForbidden},
		{"unknown alumni", http.MethodGet, "/api/alumni/al_9999", nil, student, http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(tt.method, tt.path, tt.body, tt.cookie)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestRouter_OpportunityLifecycle(t *testing.T) {
	s := newTestServer(t)
	college := s.login("collage", "collage@123")
	student := s.login("students", "students@123")

	rec := s.do(http.MethodPost, "/api/opportunities", map[string]interface{}{
		"title": "Summer Internship", "type": "internship", "posted_by": "someone-else",
	}, college)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := data(t, rec)
	id := created["id"].(string)
	assert.Equal(t, "collage", created["posted_by"])

	rec = s.do(http.MethodPost, "/api/opportunities/"+id+"/apply", nil, student)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = s.do(http.MethodPost, "/api/opportunities/"+id+"/apply", nil, student)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reason":"ALREADY_APPLIED"`)

	rec = s.do(http.MethodPut, "/api/opportunities/"+id+"/applications/students", map[string]string{"status": "maybe"}, college)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), `"field":"Status"`)

	rec = s.do(http.MethodPut, "/api/opportunities/"+id+"/applications/students", map[string]string{"status": "accepted"}, student)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(http.MethodPut, "/api/opportunities/"+id+"/applications/students", map[string]string{"status": "accepted"}, college)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	apps := data(t, rec)["applications"].([]interface{})
	require.Len(t, apps, 1)
	assert.Equal(t, "accepted", apps[0].(map[string]interface{})["status"])

	admin := s.login("admin", "admin@123")
	rec = s.do(http.MethodGet, "/api/admin/auditlogs", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "CREATE_OPPORTUNITY")
}

func TestRouter_Export(t *testing.T) {
	s := newTestServer(t)
	admin := s.login("admin", "admin@123")

	rec := s.do(http.MethodGet, "/api/admin/export?type=students", nil, admin)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Header().Get("Content-Disposition"), `attachment; filename="students_export_`)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rec.Body.String(), "ID,Name,Email"))

	rec = s.do(http.MethodGet, "/api/admin/export?type=events", nil, admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_LogoutRevokesSession(t *testing.T) {
	s := newTestServer(t)
	cookie := s.login("alumni", "alumni@123")

	rec := s.do(http.MethodPost, "/api/auth/logout", nil, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(http.MethodGet, "/api/auth/me", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
