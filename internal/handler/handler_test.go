package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/folio/internal/db"
	"github.com/folio/internal/permission"
	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) (*API, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(db.Models()...); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	api := NewAPI(gdb, Options{
		UploadDir:      t.TempDir(),
		UploadURL:      "/static/uploads",
		UploadMaxBytes: 2 << 20,
		JWTSecret:      "test-secret",
		JWTIssuer:      "folio-test",
		TokenTTL:       time.Hour,
	})
	return api, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

type testCall struct {
	method      string
	target      string
	body        any
	params      gin.Params
	permissions []string
}

// perform 直接调用 handler，permissions 非空时模拟 AuthRequired 写入的上下文
func perform(t *testing.T, h gin.HandlerFunc, call testCall) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if call.body != nil {
		payload, err := json.Marshal(call.body)
		if err != nil {
			t.Fatalf("failed to encode body: %v", err)
		}
		reader = bytes.NewReader(payload)
	}
	method := call.method
	if method == "" {
		method = http.MethodGet
	}
	req := httptest.NewRequest(method, call.target, reader)
	if call.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = call.params
	if call.permissions != nil {
		c.Set(permissionsContextKey, permission.FromStored(call.permissions))
	}

	h(c)
	return w
}

type resultEnvelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func decodeResult(t *testing.T, w *httptest.ResponseRecorder) resultEnvelope {
	t.Helper()
	var result resultEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to decode result %q: %v", w.Body.String(), err)
	}
	return result
}

func decodeInto(t *testing.T, raw []byte, dst any) {
	t.Helper()
	if err := json.Unmarshal(raw, dst); err != nil {
		t.Fatalf("failed to decode %q: %v", string(raw), err)
	}
}

func idParam(id uint) gin.Params {
	return gin.Params{gin.Param{Key: "id", Value: fmt.Sprint(id)}}
}
