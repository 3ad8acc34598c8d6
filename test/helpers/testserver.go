package helpers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DapP256/trabajo-final-uai/database"
	"github.com/DapP256/trabajo-final-uai/internal/app"
	"github.com/DapP256/trabajo-final-uai/internal/auth"
	"github.com/DapP256/trabajo-final-uai/internal/config"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// TestSessionSecret signs every session cookie minted during tests.
const TestSessionSecret = "test-session-secret-0123456789abcdef"

type TestServer struct {
	Server *httptest.Server
	DB     *gorm.DB
	Cfg    *config.Config
}

// NewTestServer spins up the full router against an in-memory sqlite
// database. Each call gets its own database, named after the test so
// parallel packages do not share state.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// The shared-cache in-memory database disappears when the last
	// connection closes; keep a single connection alive for the test's
	// lifetime.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get *sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Env = "test"
	cfg.Database.DSN = dsn
	cfg.Session.Secret = TestSessionSecret

	router := app.SetupRouter(cfg, db)
	server := httptest.NewServer(router)

	return &TestServer{
		Server: server,
		DB:     db,
		Cfg:    cfg,
	}
}

func (ts *TestServer) Close() {
	ts.Server.Close()
	if sqlDB, err := ts.DB.DB(); err == nil {
		sqlDB.Close()
	}
}

// SendRequest performs an HTTP request against the test server. A non-empty
// sessionCookie is sent as the signed session cookie value.
func (ts *TestServer) SendRequest(t *testing.T, method, path, sessionCookie string, body interface{}) (*http.Response, string) {
	t.Helper()

	url := ts.Server.URL + path

	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, url, reqBody)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	if sessionCookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: sessionCookie})
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := ts.Server.Client().Do(req)
	if err != nil {
		t.Fatalf("failed to send request: %v", err)
	}

	resBodyBytes, err := io.ReadAll(res.Body)
	if err != nil {
		t.Fatalf("failed to read response body: %v", err)
	}
	defer res.Body.Close()

	return res, string(resBodyBytes)
}

// SessionCookie extracts the session cookie value from a response, or ""
// when none was set.
func SessionCookie(res *http.Response) string {
	for _, c := range res.Cookies() {
		if c.Name == auth.CookieName {
			return c.Value
		}
	}
	return ""
}
