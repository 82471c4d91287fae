package common

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"credverify/internal/domain"

	"github.com/gin-gonic/gin"
)

func TestWriteErrorUsesErrorsIs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	WriteError(c, fmt.Errorf("wrap: %w", domain.ErrNotFound))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWriteErrorConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	WriteError(c, domain.ErrConflict)

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestWriteErrorDefaultsToInternal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	WriteError(c, fmt.Errorf("connection reset"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestWriteErrorCodeAborts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)

	WriteErrorCode(c, http.StatusBadRequest, "BAD", "bad")

	if !c.IsAborted() {
		t.Fatalf("expected context aborted")
	}
}

func TestParsePageDefaults(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/verifications", nil)

	page := ParsePage(c)
	if page.Limit != 20 || page.Offset != 0 {
		t.Fatalf("defaults: %+v", page)
	}
}

func TestParsePageReadsQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/v1/verifications?limit=50&offset=10", nil)

	page := ParsePage(c)
	if page.Limit != 50 || page.Offset != 10 {
		t.Fatalf("parsed: %+v", page)
	}
}

func TestToVerificationResponseNilFlags(t *testing.T) {
	resp := ToVerificationResponse(domain.VerificationRecord{ID: "log-1"})
	if resp.Flags == nil {
		t.Fatal("flags must serialize as an empty array, not null")
	}
}
