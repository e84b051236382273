package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"faer/config"
	httpmiddleware "faer/internal/delivery/http/middleware"
	"faer/internal/delivery/http/validator"
	"faer/internal/infra/auth"
	"faer/internal/infra/persistence/postgres"
	"faer/internal/usecase/impl"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestServer wires the real services against an in-memory database
// and returns an echo instance with the API routes registered.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	cfg := &config.Config{}
	cfg.Auth = config.AuthConfig{
		JWTSecret:     "integration-test-secret",
		TokenTTL:      time.Hour,
		SweepInterval: time.Hour,
		BcryptCost:    4,
		CookieName:    config.DefaultCookieName,
	}

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_fk=1"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))
	t.Cleanup(func() {
		sqlDB, dbErr := db.DB()
		require.NoError(t, dbErr)
		require.NoError(t, sqlDB.Close())
	})

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hasher := auth.NewBcryptHasher(cfg)
	tokenService, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	formationRepo := postgres.NewFormationRepository(db)
	txManager := postgres.NewTransactionManager(db)

	authUC := impl.NewAuthService(impl.AuthServiceParams{
		TxManager:    txManager,
		UserRepo:     userRepo,
		SessionRepo:  sessionRepo,
		Hasher:       hasher,
		TokenService: tokenService,
		Logger:       logger,
	})
	sessionUC := impl.NewSessionService(impl.SessionServiceParams{
		SessionRepo:  sessionRepo,
		TokenService: tokenService,
		Logger:       logger,
	})
	profileUC := impl.NewProfileService(impl.ProfileServiceParams{
		UserRepo: userRepo,
		Logger:   logger,
	})
	formationUC := impl.NewFormationService(impl.FormationServiceParams{
		FormationRepo: formationRepo,
		Logger:        logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Validator = validator.New()
	e.HTTPErrorHandler = httpmiddleware.NewErrorMiddleware(logger).HandleHTTPError

	authMW := httpmiddleware.NewAuthMiddleware(sessionUC, cfg)

	authHandler := NewAuthHandler(authUC, cfg, logger)
	userHandler := NewUserHandler(profileUC, logger)
	formationHandler := NewFormationHandler(formationUC, logger)

	e.POST("/api/signup", authHandler.Signup)
	e.POST("/api/login", authHandler.Login)
	e.POST("/api/logout", authHandler.Logout)
	e.GET("/api/user", userHandler.GetUser, authMW.Authenticate)
	e.PUT("/api/user/profile", userHandler.UpdateProfile, authMW.Authenticate)
	e.GET("/api/formations", formationHandler.List)

	return e
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

type apiEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()

	var env apiEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	return env
}

const signupBody = `{"firstName":"Ada","lastName":"Lovelace","email":"ada@example.com","phone":"0123456789","password":"s3cret!"}`

func TestSessionLifecycle_SignupAuthenticateLogout(t *testing.T) {
	e := newTestServer(t)

	// Signup returns a token and the sanitized user.
	rec := doJSON(e, http.MethodPost, "/api/signup", signupBody, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var authData struct {
		Token string `json:"token"`
		User  struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &authData))
	require.NotEmpty(t, authData.Token)
	assert.Equal(t, "ada@example.com", authData.User.Email)
	assert.NotContains(t, rec.Body.String(), "passwordHash")

	// The token opens the protected account endpoint.
	rec = doJSON(e, http.MethodGet, "/api/user", "", authData.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env = decodeEnvelope(t, rec)
	assert.Contains(t, string(env.Data), "ada@example.com")

	// Logout deletes the session.
	rec = doJSON(e, http.MethodPost, "/api/logout", "", authData.Token)
	require.Equal(t, http.StatusOK, rec.Code)

	// The same token is now rejected with a redirect to the login page.
	rec = doJSON(e, http.MethodGet, "/api/user", "", authData.Token)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestSignup_DuplicateEmail(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/signup", signupBody, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/signup", signupBody, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "DUPLICATE_IDENTITY", env.Error.Code)
}

func TestSignup_MissingFields(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/signup", `{"email":"x@y.z"}`, "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	env := decodeEnvelope(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_FAILED", env.Error.Code)
}

func TestLogin_WrongPasswordAndUnknownEmailLookAlike(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/signup", signupBody, "")
	require.Equal(t, http.StatusOK, rec.Code)

	wrongPassword := doJSON(e, http.MethodPost, "/api/login", `{"email":"ada@example.com","password":"nope"}`, "")
	unknownEmail := doJSON(e, http.MethodPost, "/api/login", `{"email":"ghost@example.com","password":"nope"}`, "")

	assert.Equal(t, http.StatusBadRequest, wrongPassword.Code)
	assert.Equal(t, http.StatusBadRequest, unknownEmail.Code)
	// Identical bodies keep the API from leaking which accounts exist.
	assert.JSONEq(t, wrongPassword.Body.String(), unknownEmail.Body.String())
}

func TestLogin_ThenUpdateProfile(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/signup", signupBody, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(e, http.MethodPost, "/api/login", `{"email":"ada@example.com","password":"s3cret!"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)

	var authData struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &authData))

	rec = doJSON(e, http.MethodPut, "/api/user/profile", `{"firstName":"Augusta","lastName":"King","phone":"555"}`, authData.Token)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	env = decodeEnvelope(t, rec)
	assert.Contains(t, string(env.Data), "Augusta")

	// Email survives the profile update.
	rec = doJSON(e, http.MethodGet, "/api/user", "", authData.Token)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ada@example.com")
}

func TestLogout_WithoutSessionStillSucceeds(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodPost, "/api/logout", "", "not-even-a-token")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestProtectedRoute_NoTokenRedirects(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/user", "", "")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get(echo.HeaderLocation))
}

func TestFormations_PublicList(t *testing.T) {
	e := newTestServer(t)

	rec := doJSON(e, http.MethodGet, "/api/formations", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	assert.True(t, env.Success)
}
