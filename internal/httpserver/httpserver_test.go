package httpserver

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/arkhipovd/storefront/internal/models"
	"github.com/arkhipovd/storefront/internal/service"
	"github.com/arkhipovd/storefront/internal/store"
)

type testEnv struct {
	E       *echo.Echo
	Store   *store.MemoryStore
	AuthSvc *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	mem := store.NewMemoryStore()
	ctx := context.Background()

	_, err := mem.CreateUser(ctx, models.InsertUser{
		Username: "customer", Email: "customer@example.com", Password: "password123", Role: models.RoleUser,
	})
	require.NoError(t, err)
	_, err = mem.CreateUser(ctx, models.InsertUser{
		Username: "admin", Email: "admin@example.com", Password: "admin123", Role: models.RoleAdmin,
	})
	require.NoError(t, err)

	secret := []byte("test-secret")
	authSvc := &service.AuthService{Store: mem, Sessions: mem, Secret: secret}
	catalogSvc := &service.CatalogService{Store: mem}

	e := echo.New()
	Register(e, &Deps{
		AuthHandler:    &AuthHTTP{Svc: authSvc},
		ProductHandler: &ProductHTTP{Svc: catalogSvc},
		JWTSecret:      secret,
	})

	return &testEnv{E: e, Store: mem, AuthSvc: authSvc}
}

func (env *testEnv) do(t *testing.T, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	env.E.ServeHTTP(rec, req)
	return rec
}

func (env *testEnv) loginAdmin(t *testing.T) string {
	t.Helper()

	res, err := env.AuthSvc.Login(context.Background(), "admin@example.com", "admin123", "admin")
	require.NoError(t, err)
	return res.Token
}

func (env *testEnv) loginCustomer(t *testing.T) string {
	t.Helper()

	res, err := env.AuthSvc.Login(context.Background(), "customer@example.com", "password123", "")
	require.NoError(t, err)
	return res.Token
}

func (env *testEnv) createWidget(t *testing.T) models.Product {
	t.Helper()

	p, err := env.Store.CreateProduct(context.Background(), models.InsertProduct{
		Name:        "Widget",
		Description: "A test widget",
		Price:       "9.99",
		Image:       "x",
		Category:    "Electronics",
	})
	require.NoError(t, err)
	return *p
}
