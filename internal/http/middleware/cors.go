// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file implements the permissive cross-origin policy the storefront
// relies on. The intake endpoints are called directly from browser checkout
// pages hosted on arbitrary shop domains, so every endpoint answers with
// origin "*", and every preflight OPTIONS request is short-circuited to 204
// before any other middleware or business logic can interfere with it.
package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	corsAllowOrigin  = "*"
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type, Authorization, X-Request-ID"
	corsMaxAge       = "3600"
)

// CORS applies the permissive cross-origin headers to every response and
// answers preflight OPTIONS requests immediately with 204 and no body.
//
// Place this ahead of authentication, rate limiting, and body-size limits:
// preflights carry no payload and must never be rejected by policies meant
// for real requests.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		ensureCORSHeaders(c)

		if c.Request.Method == http.MethodOptions {
			reqHeaders := c.GetHeader("Access-Control-Request-Headers")
			if strings.TrimSpace(reqHeaders) != "" {
				c.Header("Access-Control-Allow-Headers", reqHeaders)
			}
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// ensureCORSHeaders stamps the permissive CORS headers onto the response if
// they are not already present. Recovery() calls this too, so even a panic
// response stays readable from a browser.
func ensureCORSHeaders(c *gin.Context) {
	h := c.Writer.Header()
	if h.Get("Access-Control-Allow-Origin") == "" {
		h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
	}
	if h.Get("Access-Control-Allow-Methods") == "" {
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)
	}
	if h.Get("Access-Control-Allow-Headers") == "" {
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
	}
	if h.Get("Access-Control-Max-Age") == "" {
		h.Set("Access-Control-Max-Age", corsMaxAge)
	}
}
