package router

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/maekabu-office/internal/config"
	"github.com/maekabu-office/internal/models"
	"github.com/maekabu-office/internal/provider"
	"github.com/maekabu-office/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type envelope struct {
	StatusCode int             `json:"status_code"`
	Msg        string          `json:"msg"`
	Data       json.RawMessage `json:"data"`
}

func setupRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:router_test_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("auto migrate failed: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Session.Secret = "router-test-secret"
	cfg.Session.ExpireHours = 1
	cfg.Database.URL = "postgres://localhost/office"
	cfg.Database.AnonKey = "anon"
	cfg.Database.ServiceRoleKey = "service-key"

	c, err := provider.NewContainer(cfg, db, provider.WithObjectStore(storage.NewMemoryStore("")))
	if err != nil {
		t.Fatalf("new container failed: %v", err)
	}
	t.Cleanup(c.Close)
	return SetupRouter(cfg, c), db
}

func createEmployee(t *testing.T, db *gorm.DB, number, role string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("Secret123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	employee := &models.Employee{EmployeeNumber: number, LastName: "山田", FirstName: "太郎", Role: role, PasswordHash: string(hash)}
	if err := db.Create(employee).Error; err != nil {
		t.Fatalf("create employee failed: %v", err)
	}
}

func login(t *testing.T, r *gin.Engine, number string) *http.Cookie {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", strings.NewReader(`{"employee_number":"`+number+`","password":"Secret123"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login status want 200 got %d: %s", w.Code, w.Body.String())
	}
	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "session" && cookie.Value != "" {
			return cookie
		}
	}
	t.Fatalf("login should set session cookie")
	return nil
}

func serve(r *gin.Engine, method, path string, cookie *http.Cookie, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)
	return w
}

func TestHealthIsPublic(t *testing.T) {
	r, _ := setupRouter(t)
	w := serve(r, http.MethodGet, "/api/v1/health", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("health want 200 got %d", w.Code)
	}
}

func TestProtectedRoutesRequireSession(t *testing.T) {
	r, _ := setupRouter(t)
	for _, path := range []string{"/api/v1/clients", "/api/v1/invoices", "/api/v1/payments?type=deposit", "/api/v1/bank-transactions"} {
		w := serve(r, http.MethodGet, path, nil, "")
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("%s want 401 got %d", path, w.Code)
		}
		var resp envelope
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("unmarshal failed: %v", err)
		}
		if resp.StatusCode != 401 {
			t.Fatalf("%s envelope status want 401 got %d", path, resp.StatusCode)
		}
	}
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	r, db := setupRouter(t)
	createEmployee(t, db, "E001", "staff")

	w := serve(r, http.MethodPost, "/api/v1/auth/login", nil, `{"employee_number":"E001","password":"wrong"}`)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("wrong password want 401 got %d", w.Code)
	}
	w = serve(r, http.MethodPost, "/api/v1/auth/login", nil, `{"employee_number":"E001"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing password want 400 got %d", w.Code)
	}
}

func TestSessionCookieFlow(t *testing.T) {
	r, db := setupRouter(t)
	createEmployee(t, db, "E002", "staff")
	cookie := login(t, r, "E002")

	w := serve(r, http.MethodGet, "/api/v1/auth/check-session", cookie, "")
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	var state struct {
		Authenticated bool  `json:"authenticated"`
		Configured    *bool `json:"configured"`
	}
	if err := json.Unmarshal(resp.Data, &state); err != nil {
		t.Fatalf("unmarshal state failed: %v", err)
	}
	if !state.Authenticated || state.Configured == nil || !*state.Configured {
		t.Fatalf("unexpected session state %s", string(resp.Data))
	}

	if w := serve(r, http.MethodGet, "/api/v1/clients", cookie, ""); w.Code != http.StatusOK {
		t.Fatalf("list clients want 200 got %d: %s", w.Code, w.Body.String())
	}
	if w := serve(r, http.MethodGet, "/api/v1/me", cookie, ""); w.Code != http.StatusOK {
		t.Fatalf("me want 200 got %d", w.Code)
	}

	w = serve(r, http.MethodGet, "/api/v1/auth/login", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("anonymous session state want 200 got %d", w.Code)
	}
}

func TestRBACDeniesViewerWrites(t *testing.T) {
	r, db := setupRouter(t)
	createEmployee(t, db, "E003", "viewer")
	cookie := login(t, r, "E003")

	if w := serve(r, http.MethodGet, "/api/v1/clients", cookie, ""); w.Code != http.StatusOK {
		t.Fatalf("viewer read want 200 got %d", w.Code)
	}
	w := serve(r, http.MethodPost, "/api/v1/clients", cookie, `{"name":"株式会社テスト"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("viewer write want 403 got %d", w.Code)
	}
	w = serve(r, http.MethodPost, "/api/v1/payments/match", cookie, `{"type":"deposit","depositId":"a","transactionId":"b"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("viewer match want 403 got %d", w.Code)
	}
}

func TestStaffCannotReconcile(t *testing.T) {
	r, db := setupRouter(t)
	createEmployee(t, db, "E004", "staff")
	cookie := login(t, r, "E004")

	w := serve(r, http.MethodPatch, "/api/v1/payments/x/status?type=transfer-request", cookie, `{"status":"approved"}`)
	if w.Code != http.StatusForbidden {
		t.Fatalf("staff status change want 403 got %d", w.Code)
	}
}

func TestBankImportRequiresServiceKey(t *testing.T) {
	r, db := setupRouter(t)
	createEmployee(t, db, "E005", "admin")
	cookie := login(t, r, "E005")

	body := `{"transactions":[]}`
	if w := serve(r, http.MethodPost, "/api/v1/bank-transactions/import", cookie, body); w.Code != http.StatusUnauthorized {
		t.Fatalf("session cookie alone want 401 got %d", w.Code)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/bank-transactions/import", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(serviceKeyHeader, "service-key")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty import with key want 400 got %d", w.Code)
	}
}

func TestPermissionCatalogListsRBACRoutes(t *testing.T) {
	r, db := setupRouter(t)
	createEmployee(t, db, "E006", "admin")
	cookie := login(t, r, "E006")

	w := serve(r, http.MethodGet, "/api/v1/authz/permissions/catalog", cookie, "")
	if w.Code != http.StatusOK {
		t.Fatalf("catalog want 200 got %d", w.Code)
	}
	var resp envelope
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	var items []permissionCatalogItem
	if err := json.Unmarshal(resp.Data, &items); err != nil {
		t.Fatalf("unmarshal items failed: %v", err)
	}
	seen := map[string]bool{}
	for _, item := range items {
		seen[item.Permission] = true
		if strings.HasPrefix(item.Object, "/auth/") || item.Object == "/health" {
			t.Fatalf("public route leaked into catalog: %s", item.Permission)
		}
	}
	for _, want := range []string{"POST:/payments/match", "GET:/invoices/:id/pdf", "DELETE:/creators"} {
		if !seen[want] {
			t.Fatalf("catalog missing %s", want)
		}
	}
}

func TestPfCreatorBindingRejectsUnknownValues(t *testing.T) {
	r, db := setupRouter(t)
	createEmployee(t, db, "E007", "staff")
	cookie := login(t, r, "E007")

	cases := []string{
		`{"platform":"Patreon","creator_name":"テスト"}`,
		`{"platform":"Fantia","creator_name":"テスト","distribution_method":"売上"}`,
	}
	for _, body := range cases {
		w := serve(r, http.MethodPost, "/api/v1/pf-creators", cookie, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s want 400 got %d", body, w.Code)
		}
	}
	w := serve(r, http.MethodPost, "/api/v1/pf-creators", cookie, `{"platform":"Fantia","creator_name":"テスト","distribution_method":"CR給","creator_rate":0.7}`)
	if w.Code != http.StatusOK {
		t.Fatalf("valid pf creator want 200 got %d: %s", w.Code, w.Body.String())
	}
}
