package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	marketplaceapp "github.com/ikada/backend/internal/application/marketplace"
	membershipapp "github.com/ikada/backend/internal/application/membership"
	"github.com/ikada/backend/internal/domain/marketplace"
	"github.com/ikada/backend/internal/domain/membership"
	"github.com/ikada/backend/internal/infrastructure/auth"
	"github.com/ikada/backend/internal/infrastructure/config"
	eventbus "github.com/ikada/backend/internal/infrastructure/event"
	"github.com/ikada/backend/internal/infrastructure/persistence"
	"github.com/ikada/backend/internal/interfaces/http/dto"
	"github.com/ikada/backend/internal/interfaces/http/middleware"
	"github.com/ikada/backend/internal/interfaces/http/router"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()
}

type testEnv struct {
	engine     *gin.Engine
	jwtService *auth.JWTService
}

func (e *testEnv) tokenWith(t *testing.T, permissions ...string) string {
	t.Helper()
	pair, err := e.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:      uuid.New(),
		Username:    "admin",
		Permissions: permissions,
	})
	require.NoError(t, err)
	return pair.AccessToken
}

func setupHandlerTest(t *testing.T) *testEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&membership.Alumni{},
		&membership.Syubiyah{},
	))

	bus := eventbus.NewInMemoryEventBus(zap.NewNop())
	alumniRepo := persistence.NewGormAlumniRepository(db)
	syubiyahRepo := persistence.NewGormSyubiyahRepository(db)

	alumniService := membershipapp.NewAlumniService(alumniRepo, syubiyahRepo, bus)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "ikada-test",
		MaxRefreshCount:        10,
	})

	engine := gin.New()
	engine.Use(middleware.RequestID())

	r := router.NewRouter(engine,
		router.WithAuthMiddleware(middleware.JWTAuthMiddleware(jwtService)))
	r.Register(
		NewAlumniHandler(alumniService, nil),
		NewSyubiyahHandler(membershipapp.NewSyubiyahService(syubiyahRepo, alumniRepo)),
	)
	r.Setup()

	return &testEnv{engine: engine, jwtService: jwtService}
}

func postJSON(t *testing.T, engine *gin.Engine, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAlumniRegister_Public(t *testing.T) {
	env := setupHandlerTest(t)

	w := postJSON(t, env.engine, "/api/v1/alumni/register", "", gin.H{
		"full_name":       "Ahmad Fauzi",
		"email":           "ahmad.fauzi@example.com",
		"graduation_year": 2015,
	})

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
}

func TestAlumniRegister_ValidationError(t *testing.T) {
	env := setupHandlerTest(t)

	w := postJSON(t, env.engine, "/api/v1/alumni/register", "", gin.H{
		"full_name": "Ahmad Fauzi",
		"email":     "not-an-email",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
}

func TestAlumniRegister_DuplicateEmail(t *testing.T) {
	env := setupHandlerTest(t)

	body := gin.H{
		"full_name":       "Ahmad Fauzi",
		"email":           "ahmad.fauzi@example.com",
		"graduation_year": 2015,
	}
	w := postJSON(t, env.engine, "/api/v1/alumni/register", "", body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, env.engine, "/api/v1/alumni/register", "", body)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_EMAIL", resp.Error.Code)
}

func TestAlumniList_RequiresAuth(t *testing.T) {
	env := setupHandlerTest(t)

	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/alumni", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAlumniList_WithPermission(t *testing.T) {
	env := setupHandlerTest(t)

	w := postJSON(t, env.engine, "/api/v1/alumni/register", "", gin.H{
		"full_name":       "Siti Rahma",
		"email":           "siti.rahma@example.com",
		"graduation_year": 2018,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/alumni?status=pending", nil)
	req.Header.Set("Authorization", "Bearer "+env.tokenWith(t, "alumni:read"))
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestAlumniVerify_Forbidden(t *testing.T) {
	env := setupHandlerTest(t)

	w := postJSON(t, env.engine, "/api/v1/alumni/"+uuid.NewString()+"/verify",
		env.tokenWith(t, "alumni:read"), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSyubiyahCreateAndPublicList(t *testing.T) {
	env := setupHandlerTest(t)

	w := postJSON(t, env.engine, "/api/v1/syubiyah", env.tokenWith(t, "syubiyah:create"), gin.H{
		"name":   "Syubiyah Jakarta",
		"region": "DKI Jakarta",
		"city":   "Jakarta Selatan",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The chapter list backs the public registration form.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/syubiyah", nil)
	w = httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(1), resp.Meta.Total)
}

func TestSyubiyahCreate_DuplicateName(t *testing.T) {
	env := setupHandlerTest(t)
	token := env.tokenWith(t, "syubiyah:create")

	body := gin.H{"name": "Syubiyah Malang"}
	w := postJSON(t, env.engine, "/api/v1/syubiyah", token, body)
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(t, env.engine, "/api/v1/syubiyah", token, body)
	assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "DUPLICATE_NAME", resp.Error.Code)
}

func TestInvalidUUIDParam(t *testing.T) {
	env := setupHandlerTest(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/syubiyah/not-a-uuid", nil)
	w := httptest.NewRecorder()
	env.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, dto.ErrCodeBadRequest, resp.Error.Code)
}

func setupCategoryHandlerTest(t *testing.T) (*testEnv, *marketplaceapp.CategoryService) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&marketplace.Category{},
		&marketplace.Store{},
		&marketplace.Product{},
	))

	svc := marketplaceapp.NewCategoryService(persistence.NewGormCategoryRepository(db))

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "handler-test-secret",
		AccessTokenExpiration:  time.Hour,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "ikada-test",
		MaxRefreshCount:        10,
	})

	engine := gin.New()
	engine.Use(middleware.RequestID())

	r := router.NewRouter(engine,
		router.WithAuthMiddleware(middleware.JWTAuthMiddleware(jwtService)))
	r.Register(NewCategoryHandler(svc))
	r.Setup()

	return &testEnv{engine: engine, jwtService: jwtService}, svc
}

func TestCategoryDelete_Contract(t *testing.T) {
	env, svc := setupCategoryHandlerTest(t)
	token := env.tokenWith(t, "marketplace:delete")
	ctx := context.Background()

	root, err := svc.Create(ctx, marketplaceapp.CreateCategoryRequest{Name: "Kuliner"})
	require.NoError(t, err)
	child, err := svc.Create(ctx, marketplaceapp.CreateCategoryRequest{Name: "Minuman", ParentID: &root.ID})
	require.NoError(t, err)

	del := func(id uuid.UUID) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/v1/marketplace/categories/"+id.String(), nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		env.engine.ServeHTTP(w, req)
		return w
	}

	// A non-empty category is a 400 rejection, not a conflict status.
	w := del(root.ID)
	require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
	resp := decodeResponse(t, w)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "HAS_CHILDREN", resp.Error.Code)

	// Deleting the leaf succeeds with a 200 and a message body.
	w = del(child.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	resp = decodeResponse(t, w)
	assert.True(t, resp.Success)

	w = del(root.ID)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
