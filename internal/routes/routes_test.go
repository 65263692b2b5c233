package routes

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/SabrinAmbar14/clinica-estetica-api/internal/config"
	dbpkg "github.com/SabrinAmbar14/clinica-estetica-api/internal/db"
)

func newTestServer(t *testing.T) (*gin.Engine, *config.Config) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := dbpkg.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{JWTSecret: "routes-test-secret"}
	r := gin.New()
	RegisterRoutes(r, db, cfg)
	return r, cfg
}

func signToken(t *testing.T, cfg *config.Config, userID uint, role string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":       userID,
		"role":      role,
		"superuser": false,
		"exp":       time.Now().Add(time.Hour).Unix(),
		"iat":       time.Now().Unix(),
	})
	signed, err := token.SignedString([]byte(cfg.JWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func doRequest(r *gin.Engine, method, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Un usuario autenticado pero sin perfil asignado no debe llegar a
// ningún handler operativo: citas, reportes y stock exigen un rol.
func TestRoutePolicy_UserWithoutRoleDenied(t *testing.T) {
	r, cfg := newTestServer(t)
	token := signToken(t, cfg, 1, "")

	cases := []struct {
		method string
		path   string
	}{
		{http.MethodPost, "/api/appointments"},
		{http.MethodPost, "/api/appointments/quote"},
		{http.MethodGet, "/api/appointments"},
		{http.MethodGet, "/api/products/low-stock"},
		{http.MethodGet, "/api/reports/inventory"},
		{http.MethodGet, "/api/reports/inventory/export.csv"},
		{http.MethodGet, "/api/reports/inventory/export.pdf"},
		{http.MethodGet, "/api/reports/top-products"},
	}
	for _, tc := range cases {
		w := doRequest(r, tc.method, tc.path, token)
		if w.Code != http.StatusForbidden {
			t.Errorf("%s %s: expected 403 for a user without role, got %d",
				tc.method, tc.path, w.Code)
		}
	}
}

func TestRoutePolicy_StylistReachesReports(t *testing.T) {
	r, cfg := newTestServer(t)
	token := signToken(t, cfg, 2, "estilista")

	w := doRequest(r, http.MethodGet, "/api/reports/inventory", token)
	if w.Code != http.StatusOK {
		t.Fatalf("stylist on /api/reports/inventory: expected 200, got %d", w.Code)
	}
}

func TestRoutePolicy_StylistDeniedOnAdminRoutes(t *testing.T) {
	r, cfg := newTestServer(t)
	token := signToken(t, cfg, 3, "estilista")

	w := doRequest(r, http.MethodGet, "/api/users", token)
	if w.Code != http.StatusForbidden {
		t.Fatalf("stylist on /api/users: expected 403, got %d", w.Code)
	}
}
