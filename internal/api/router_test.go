package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dawa-marketplace/ecommerce-api/internal/api/handler"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/domain"
	"github.com/dawa-marketplace/ecommerce-api/internal/core/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// memoryAuthRepo is an in-process credential store with the same uniqueness
// guarantees as the relational one.
type memoryAuthRepo struct {
	mu     sync.Mutex
	users  map[uint]*domain.User
	nextID uint
}

func newMemoryAuthRepo() *memoryAuthRepo {
	return &memoryAuthRepo{users: map[uint]*domain.User{}}
}

var testRoles = map[string]*domain.Role{
	domain.RoleAdmin:    {ID: 1, Name: domain.RoleAdmin},
	domain.RoleCustomer: {ID: 2, Name: domain.RoleCustomer},
}

func (r *memoryAuthRepo) ExistsByUsernameOrEmail(_ context.Context, username, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *memoryAuthRepo) FindRoleByName(_ context.Context, name string) (*domain.Role, error) {
	role, ok := testRoles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	return role, nil
}

func (r *memoryAuthRepo) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	stored := *u
	stored.ID = r.nextID
	for _, role := range testRoles {
		if role.ID == u.RoleID {
			stored.Role = role.Name
		}
	}
	r.users[stored.ID] = &stored
	out := stored
	return &out, nil
}

func (r *memoryAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			out := *u
			return &out, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryAuthRepo) FindByID(_ context.Context, id uint) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func newTestRouter(t *testing.T) (*echo.Echo, *memoryAuthRepo) {
	t.Helper()
	log := zerolog.New(io.Discard)

	tokens, err := service.NewTokenService(service.TokenConfig{Secret: testSecret})
	require.NoError(t, err)

	repo := newMemoryAuthRepo()
	authSvc := service.NewAuthService(repo, service.NewBcryptHasher(4), tokens, nil, time.Hour, log)
	catalog := newMemoryCatalog()
	products := service.NewProductService(catalog, nil, log)
	categories := service.NewCategoryService(categoryStore{catalog}, nil, log)

	e := NewRouter(Deps{
		Auth:       authSvc,
		Tokens:     tokens,
		Products:   products,
		Categories: categories,
		Readiness: map[string]handler.Pinger{
			"postgres": func(context.Context) error { return nil },
		},
		Registry:       prometheus.NewRegistry(),
		AllowedOrigins: []string{"http://localhost:3000"},
		ExposeErrors:   true,
		Log:            log,
	})
	return e, repo
}

func do(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestRouter_AuthScenario(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/auth/register", `{"username":"alice","email":"a@x.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	body := decode(t, rec)
	assert.NotEmpty(t, body["token"])
	assert.NotEmpty(t, body["message"])
	user := body["user"].(map[string]any)
	assert.Equal(t, domain.RoleCustomer, user["role"])
	assert.Equal(t, "alice", user["username"])

	rec = do(e, http.MethodPost, "/api/auth/register", `{"username":"alice","email":"other@x.com","password":"secret123"}`, "")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	wrongPassword := rec.Body.String()

	rec = do(e, http.MethodPost, "/api/auth/login", `{"username":"nobody","password":"wrong"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, wrongPassword, rec.Body.String(), "unknown user and wrong password must be indistinguishable")

	rec = do(e, http.MethodPost, "/api/auth/login", `{"username":"alice","password":"secret123"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)

	rec = do(e, http.MethodGet, "/api/auth/me", "", token)
	require.Equal(t, http.StatusOK, rec.Code)
	me := decode(t, rec)
	assert.Equal(t, "alice", me["username"])
	assert.Equal(t, "a@x.com", me["email"])
	assert.Equal(t, domain.RoleCustomer, me["role"])
}

func TestRouter_RegisterValidation(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/auth/register", `{"username":"alice"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodPost, "/api/auth/register", `{"username":"alice","email":"a@x.com","password":"secret123","role":"SUPERUSER"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid role", decode(t, rec)["error"])

	rec = do(e, http.MethodPost, "/api/auth/login", `{"password":"secret123"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRouter_MeTokenErrors(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodGet, "/api/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodGet, "/api/auth/me", "", "garbage")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "invalid or expired token", decode(t, rec)["error"])

	expiredIssuer, err := service.NewTokenService(service.TokenConfig{
		Secret: testSecret,
		Now:    func() time.Time { return time.Now().Add(-48 * time.Hour) },
	})
	require.NoError(t, err)
	expired, err := expiredIssuer.Issue(domain.IdentityClaim{ID: 1, Username: "alice", Role: domain.RoleCustomer}, time.Hour)
	require.NoError(t, err)

	rec = do(e, http.MethodGet, "/api/auth/me", "", expired)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_MeUserGone(t *testing.T) {
	e, _ := newTestRouter(t)
	tokens, err := service.NewTokenService(service.TokenConfig{Secret: testSecret})
	require.NoError(t, err)
	ghost, err := tokens.Issue(domain.IdentityClaim{ID: 999, Username: "ghost", Role: domain.RoleCustomer}, time.Hour)
	require.NoError(t, err)

	rec := do(e, http.MethodGet, "/api/auth/me", "", ghost)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CatalogWritesRequireAdmin(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/auth/register", `{"username":"bob","email":"b@x.com","password":"secret123"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	customer := decode(t, rec)["token"].(string)

	rec = do(e, http.MethodPost, "/api/auth/register", `{"username":"root","email":"r@x.com","password":"secret123","role":"ADMIN"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	admin := decode(t, rec)["token"].(string)

	payload := `{"nombre":"Laptop","precio":999.99}`

	rec = do(e, http.MethodPost, "/api/products", payload, "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(e, http.MethodPost, "/api/products", payload, customer)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "access forbidden", decode(t, rec)["error"])

	rec = do(e, http.MethodPost, "/api/products", payload, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	assert.Equal(t, true, created["success"])
	assert.Equal(t, "Laptop", created["data"].(map[string]any)["nombre"])

	rec = do(e, http.MethodGet, "/api/products", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decode(t, rec)["data"].([]any), 1)

	rec = do(e, http.MethodGet, "/api/products/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(e, http.MethodGet, "/api/products/42", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_CategoryLifecycle(t *testing.T) {
	e, _ := newTestRouter(t)

	rec := do(e, http.MethodPost, "/api/auth/register", `{"username":"root","email":"r@x.com","password":"secret123","role":"ADMIN"}`, "")
	require.Equal(t, http.StatusCreated, rec.Code)
	admin := decode(t, rec)["token"].(string)

	rec = do(e, http.MethodPost, "/api/categories", `{"name":"Books"}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	catID := decode(t, rec)["data"].(map[string]any)["id"].(float64)

	rec = do(e, http.MethodPost, "/api/categories", `{"name":"Books"}`, admin)
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = do(e, http.MethodPost, "/api/products", `{"nombre":"Go in Action","precio":30,"category_id":`+jsonNumber(catID)+`}`, admin)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(e, http.MethodDelete, "/api/categories/"+jsonNumber(catID), "", admin)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decode(t, rec)["error"], "1 associated product(s)")
}

func TestRouter_Surfaces(t *testing.T) {
	e, _ := newTestRouter(t)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/", "", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health", "", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/health/ready", "", "").Code)

	rec := do(e, http.MethodGet, "/metrics", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "marketplace_")

	rec = do(e, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "route not found", decode(t, rec)["error"])
}

func TestRouter_RegisterRejectsPasswordOverByteLimit(t *testing.T) {
	e, repo := newTestRouter(t)

	// 40 runes, 80 bytes.
	body := `{"username":"carla","email":"c@x.com","password":"` + strings.Repeat("é", 40) + `"}`
	rec := do(e, http.MethodPost, "/api/auth/register", body, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	assert.Empty(t, repo.users)
}

func TestRouter_MetricsReportCommittedStatus(t *testing.T) {
	e, _ := newTestRouter(t)

	require.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/api/auth/me", "", "").Code)
	require.Equal(t, http.StatusNotFound, do(e, http.MethodGet, "/api/products/42", "", "").Code)

	rec := do(e, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var meLine, productLine string
	for _, line := range strings.Split(rec.Body.String(), "\n") {
		if !strings.HasPrefix(line, "marketplace_requests_total{") {
			continue
		}
		switch {
		case strings.Contains(line, `url="/api/auth/me"`):
			meLine = line
		case strings.Contains(line, `url="/api/products/:id"`):
			productLine = line
		}
	}
	require.NotEmpty(t, meLine, rec.Body.String())
	assert.Contains(t, meLine, `code="401"`)
	require.NotEmpty(t, productLine, rec.Body.String())
	assert.Contains(t, productLine, `code="404"`)
}
