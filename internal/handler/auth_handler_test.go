package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/websopen/web-valencio/internal/config"
	"github.com/websopen/web-valencio/internal/handler"
	"github.com/websopen/web-valencio/internal/model"
	"github.com/websopen/web-valencio/internal/repository"
	"github.com/websopen/web-valencio/internal/router"
	"github.com/websopen/web-valencio/internal/service"
	"github.com/websopen/web-valencio/internal/validator"
	"golang.org/x/crypto/bcrypt"
)

type fakeStore struct {
	data     *model.StoreData
	hasAdmin bool
}

func (f *fakeStore) Load(ctx context.Context) (*model.StoreData, error) {
	if f.data == nil {
		return nil, repository.ErrNoData
	}
	return f.data.Clone(), nil
}

func (f *fakeStore) Save(ctx context.Context, data *model.StoreData) error {
	f.data = data.Clone()
	return nil
}

func (f *fakeStore) HasData(ctx context.Context) (bool, error) {
	return f.data != nil, nil
}

func (f *fakeStore) HasAdmin(ctx context.Context) (bool, error) {
	return f.hasAdmin, nil
}

func (f *fakeStore) MarkAdminAssociated(ctx context.Context) error {
	f.hasAdmin = true
	return nil
}

type fakeProducts struct{}

func (fakeProducts) List(ctx context.Context) ([]model.Product, error) {
	return model.DefaultCatalog(), nil
}

type testEnv struct {
	router *gin.Engine
	auth   *service.AuthService
	store  *fakeStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	validator.Setup()

	cfg := &config.Config{
		GinMode:      gin.TestMode,
		CookieSecret: "test-cookie-secret",
		AdminPIN:     "1234",
		BcryptCost:   bcrypt.MinCost,
	}

	store := &fakeStore{}
	authService, err := service.NewAuthService(cfg, store, zerolog.Nop())
	require.NoError(t, err)
	storeService := service.NewStoreService(store, fakeProducts{}, zerolog.Nop())

	handlers := &router.Handlers{
		Auth:  handler.NewAuthHandler(authService, storeService),
		Store: handler.NewStoreHandler(storeService),
	}

	return &testEnv{
		router: router.SetupRouter(authService, handlers, cfg),
		auth:   authService,
		store:  store,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body interface{}, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func adminToken(t *testing.T, extra jwt.MapClaims) string {
	t.Helper()
	claims := jwt.MapClaims{"role": "admin"}
	for k, v := range extra {
		claims[k] = v
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("hub-secret"))
	require.NoError(t, err)
	return signed
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestValidateTokenEndpoint(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/auth/validate-token",
			gin.H{"token": adminToken(t, nil)})

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["valid"])
		assert.NotContains(t, body, "alreadyAssociated")
	})

	t.Run("already associated store", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.hasAdmin = true
		w := env.do(t, http.MethodPost, "/api/auth/validate-token",
			gin.H{"token": adminToken(t, nil)})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["alreadyAssociated"])
	})

	t.Run("expired token", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/auth/validate-token",
			gin.H{"token": adminToken(t, jwt.MapClaims{"exp": time.Now().Add(-time.Hour).Unix()})})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "expired", decodeBody(t, w)["error"])
	})

	t.Run("garbage token", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/auth/validate-token", gin.H{"token": "garbage"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "invalid_token", decodeBody(t, w)["error"])
	})

	t.Run("missing token field", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/auth/validate-token", gin.H{})

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "validation_error", decodeBody(t, w)["error"])
	})
}

func TestActivateEndpoint(t *testing.T) {
	t.Run("correct token and PIN issues session cookie", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/auth/activate",
			gin.H{"token": adminToken(t, nil), "pin": "1234"})

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["success"])

		setCookie := w.Header().Get("Set-Cookie")
		assert.Contains(t, setCookie, service.CookieName+"=")
		assert.Contains(t, setCookie, "Path=/")
		assert.Contains(t, setCookie, "HttpOnly")
		assert.Contains(t, setCookie, "Secure")
		assert.Contains(t, setCookie, "SameSite=Lax")
		// Session cookie: admin access ends with the browser session.
		assert.NotContains(t, setCookie, "Max-Age")
	})

	t.Run("wrong PIN fails without a cookie", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/auth/activate",
			gin.H{"token": adminToken(t, nil), "pin": "0000"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "activation_failed", decodeBody(t, w)["error"])
		assert.Empty(t, w.Header().Get("Set-Cookie"))
	})

	t.Run("bad token yields the same generic failure", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/auth/activate",
			gin.H{"token": "garbage", "pin": "1234"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "activation_failed", decodeBody(t, w)["error"])
	})

	t.Run("non-numeric PIN rejected by validation", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/auth/activate",
			gin.H{"token": adminToken(t, nil), "pin": "abcd"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCheckEndpoint(t *testing.T) {
	t.Run("no cookie", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodGet, "/api/auth/check", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)
		assert.Equal(t, false, body["isAdmin"])
		assert.Equal(t, false, body["onboardingPending"])
	})

	t.Run("valid admin cookie with unsaved store", func(t *testing.T) {
		env := newTestEnv(t)
		cookie := &http.Cookie{
			Name:  service.CookieName,
			Value: env.auth.SignSessionValue(service.CookieValueAdmin),
		}
		w := env.do(t, http.MethodGet, "/api/auth/check", nil, cookie)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["isAdmin"])
		assert.Equal(t, true, body["onboardingPending"])
	})

	t.Run("onboarding clears once data exists", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.data = model.DefaultStoreData()
		cookie := &http.Cookie{
			Name:  service.CookieName,
			Value: env.auth.SignSessionValue(service.CookieValueAdmin),
		}
		w := env.do(t, http.MethodGet, "/api/auth/check", nil, cookie)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["isAdmin"])
		assert.Equal(t, false, body["onboardingPending"])
	})

	t.Run("forged cookie reads as guest", func(t *testing.T) {
		env := newTestEnv(t)
		cookie := &http.Cookie{Name: service.CookieName, Value: "forged-value"}
		w := env.do(t, http.MethodGet, "/api/auth/check", nil, cookie)

		assert.Equal(t, false, decodeBody(t, w)["isAdmin"])
	})
}

func TestHubLoginEndpoint(t *testing.T) {
	t.Run("admin token redirects to admin with cookie", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodGet, "/api/hub-login?hub_token="+adminToken(t, nil), nil)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/admin", w.Header().Get("Location"))
		assert.Contains(t, w.Header().Get("Set-Cookie"), service.CookieName+"=")
	})

	t.Run("missing token", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodGet, "/api/hub-login", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-admin role redirects home", func(t *testing.T) {
		env := newTestEnv(t)
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"role": "viewer"})
		signed, err := token.SignedString([]byte("s"))
		require.NoError(t, err)

		w := env.do(t, http.MethodGet, "/api/hub-login?hub_token="+signed, nil)
		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})
}

func TestLogoutEndpoint(t *testing.T) {
	env := newTestEnv(t)
	w := env.do(t, http.MethodGet, "/api/logout", nil)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	setCookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, setCookie, service.CookieName+"=")
	assert.Contains(t, setCookie, "Max-Age=0")
	assert.Contains(t, setCookie, "SameSite=Strict")
}

func TestStoreEndpoints(t *testing.T) {
	t.Run("data is public and defaults when unsaved", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodGet, "/api/store/data", nil)

		assert.Equal(t, http.StatusOK, w.Code)
		var data model.StoreData
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
		assert.True(t, data.Settings.IsOpen)
		assert.Equal(t, model.MilkyFirst, data.SectionOrder)
	})

	t.Run("settings rejected without session", func(t *testing.T) {
		env := newTestEnv(t)
		w := env.do(t, http.MethodPost, "/api/store/settings",
			gin.H{"offer": "2x1_all"})

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "unauthorized", decodeBody(t, w)["error"])
	})

	t.Run("settings rejected with non-admin session", func(t *testing.T) {
		env := newTestEnv(t)
		cookie := &http.Cookie{
			Name:  service.CookieName,
			Value: env.auth.SignSessionValue("role_viewer"),
		}
		w := env.do(t, http.MethodPost, "/api/store/settings",
			gin.H{"offer": "2x1_all"}, cookie)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("admin session saves and data reflects it", func(t *testing.T) {
		env := newTestEnv(t)
		cookie := &http.Cookie{
			Name:  service.CookieName,
			Value: env.auth.SignSessionValue(service.CookieValueAdmin),
		}

		w := env.do(t, http.MethodPost, "/api/store/settings",
			gin.H{"offer": "2x1_all", "stock": gin.H{"w1": false}}, cookie)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decodeBody(t, w)["success"])

		w = env.do(t, http.MethodGet, "/api/store/data", nil)
		var data model.StoreData
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
		assert.Equal(t, model.Offer2x1All, data.Offer)
		assert.False(t, data.Stock["w1"])
	})

	t.Run("catalog resolves prices and stock order", func(t *testing.T) {
		env := newTestEnv(t)
		env.store.data = &model.StoreData{
			Stock:  map[string]bool{"m1": false},
			Prices: map[string]int{"m2": 20000},
		}

		w := env.do(t, http.MethodGet, "/api/store/catalog", nil)
		assert.Equal(t, http.StatusOK, w.Code)

		var catalog model.CatalogResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &catalog))
		require.NotEmpty(t, catalog.Milky)

		// m1 is out of stock and must sort last in its category.
		last := catalog.Milky[len(catalog.Milky)-1]
		assert.Equal(t, "m1", last.ID)
		assert.False(t, last.InStock)

		for _, e := range catalog.Milky {
			if e.ID == "m2" {
				assert.Equal(t, 20000, e.Price)
			}
		}
	})
}

// The PIN endpoint sits behind a per-IP limiter; hammering it must
// eventually return 429 instead of more PIN verdicts.
func TestAuthRateLimit(t *testing.T) {
	env := newTestEnv(t)

	var limited bool
	for i := 0; i < 40; i++ {
		w := env.do(t, http.MethodPost, "/api/auth/activate",
			gin.H{"token": adminToken(t, nil), "pin": "0000"})
		if w.Code == http.StatusTooManyRequests {
			limited = true
			body := decodeBody(t, w)
			assert.Equal(t, "rate_limited", body["error"])
			break
		}
	}
	assert.True(t, limited, "limiter never engaged")
}
