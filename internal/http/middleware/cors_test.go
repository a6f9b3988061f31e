package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestCORS_HeadersOnNormalRequest(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.GET("/ok", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin=%q", got)
	}
	if got := w.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatalf("allow-methods missing")
	}
}

func TestCORS_Preflight204_BeforeHandlers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	// Deliberately register a handler that would fail the test if reached.
	handlerHit := false
	r.POST("/scheduling", func(c *gin.Context) { handlerHit = true; c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/scheduling", nil)
	req.Header.Set("Origin", "https://shop.example.com")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type, X-Custom")
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("preflight status=%d", w.Code)
	}
	if w.Body.Len() != 0 {
		t.Fatalf("preflight must have no body, got %q", w.Body.String())
	}
	if handlerHit {
		t.Fatalf("preflight must short-circuit before route handlers")
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("allow-origin=%q", got)
	}
	// Requested headers are echoed back.
	if got := w.Header().Get("Access-Control-Allow-Headers"); got != "Content-Type, X-Custom" {
		t.Fatalf("allow-headers=%q", got)
	}
}

func TestCORS_Preflight204_WithoutOriginHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(CORS())
	r.GET("/status", func(c *gin.Context) { c.Status(http.StatusOK) })

	// OPTIONS without Origin still gets 204: curl-style probes and strict
	// proxies send bare OPTIONS.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/status", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("status=%d", w.Code)
	}
}

func Test_ensureCORSHeaders_DoesNotClobber(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	c.Writer.Header().Set("Access-Control-Allow-Origin", "https://pinned.example.com")
	ensureCORSHeaders(c)

	if got := c.Writer.Header().Get("Access-Control-Allow-Origin"); got != "https://pinned.example.com" {
		t.Fatalf("existing origin header clobbered: %q", got)
	}
	if got := c.Writer.Header().Get("Access-Control-Allow-Methods"); got == "" {
		t.Fatalf("missing methods header should be filled in")
	}
}
