package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	appsvc "referral-system/internal/app"
	"referral-system/internal/bootstrap"
	"referral-system/internal/config"
	"referral-system/internal/model"
	"referral-system/internal/pkg/jwtutil"
)

const testJWTSecret = "test-secret"

func newTestServer(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&model.User{}))

	cfg := &config.Config{
		App: config.AppConfig{
			Name:    "referral-system",
			Env:     "test",
			GinMode: gin.TestMode,
		},
		Auth: config.AuthConfig{
			JWTSecret:             testJWTSecret,
			AccessTokenExpireHour: 24,
			PasswordScheme:        "plaintext",
		},
		Referral: config.ReferralConfig{CodeValidDays: 30},
	}

	app := &bootstrap.App{
		Config:    cfg,
		DB:        db,
		Verifier:  appsvc.PlaintextVerifier{},
		StartedAt: time.Now(),
	}
	return NewRouter(app), db
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func registerPayload(username, email string) map[string]string {
	return map[string]string{
		"username": username,
		"email":    email,
		"password": "secret",
	}
}

func TestRegisterEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/register", registerPayload("alice", "alice@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "user registered successfully", body["message"])
	assert.NotContains(t, body, "id")
	assert.NotContains(t, body, "referral_code")
}

func TestRegisterEndpointMissingFields(t *testing.T) {
	router, _ := newTestServer(t)

	for _, payload := range []map[string]string{
		{"email": "a@example.com", "password": "pw"},
		{"username": "a", "password": "pw"},
		{"username": "a", "email": "a@example.com"},
		{"username": "", "email": "a@example.com", "password": "pw"},
	} {
		rec := doJSON(t, router, http.MethodPost, "/register", payload)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "please provide username, email, and password", body["error"])
	}
}

func TestRegisterEndpointDuplicateEmail(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/register", registerPayload("alice", "alice@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/register", registerPayload("alice2", "alice@example.com"))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "user with this email already exists", body["error"])
}

func TestLoginEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/register", registerPayload("alice", "alice@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	token, ok := body["access_token"].(string)
	require.True(t, ok)

	claims, err := jwtutil.ParseToken(testJWTSecret, token)
	require.NoError(t, err)
	assert.NotZero(t, claims.UserID)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestLoginEndpointFailures(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/register", registerPayload("alice", "alice@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": "wrong",
	})
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid email or password", decodeBody(t, rec)["error"])

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email": "alice@example.com",
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "please provide email and password", decodeBody(t, rec)["error"])
}

func TestReferralsEndpoint(t *testing.T) {
	router, db := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/register", registerPayload("alice", "alice@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	var referrer model.User
	require.NoError(t, db.Where("email = ?", "alice@example.com").First(&referrer).Error)

	payload := registerPayload("bob", "bob@example.com")
	payload["referral_code"] = referrer.ReferralCode
	rec = doJSON(t, router, http.MethodPost, "/register", payload)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/referrals/"+strconv.FormatUint(uint64(referrer.ID), 10), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Referrals []struct {
			ID       uint   `json:"id"`
			Username string `json:"username"`
			Email    string `json:"email"`
		} `json:"referrals"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Len(t, body.Referrals, 1)
	assert.Equal(t, "bob", body.Referrals[0].Username)
	assert.Equal(t, "bob@example.com", body.Referrals[0].Email)
}

func TestReferralsEndpointEmpty(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/referrals/12345", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"referrals": []}`, rec.Body.String())
}

func TestReferralsEndpointBadID(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodGet, "/referrals/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid user id", decodeBody(t, rec)["error"])
}

func TestMeEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	rec := doJSON(t, router, http.MethodPost, "/register", registerPayload("alice", "alice@example.com"))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, router, http.MethodPost, "/login", map[string]string{
		"email":    "alice@example.com",
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	token := decodeBody(t, rec)["access_token"].(string)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	meRec := httptest.NewRecorder()
	router.ServeHTTP(meRec, req)

	require.Equal(t, http.StatusOK, meRec.Code)
	body := decodeBody(t, meRec)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, "alice@example.com", body["email"])
	assert.Len(t, body["referral_code"], 6)
}

func TestDocsEndpoint(t *testing.T) {
	router, _ := newTestServer(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	require.Equal(t, http.StatusMovedPermanently, rec.Code)

	location := rec.Header().Get("Location")
	require.Equal(t, "/docs/index.html", location)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, location, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "swagger")
}

func TestMeEndpointUnauthorized(t *testing.T) {
	router, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "invalid or expired token", decodeBody(t, rec)["error"])
}
