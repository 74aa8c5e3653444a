package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/emirhan-aydin/shopstack-api/config"
)

// setupRouter creates and configures the router for integration testing
func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	cfg := &config.Config{JWTSecret: "integration-test-secret", Port: "8080"}
	config.SetConfig(cfg)
	registerRoutes(router, cfg)

	return router
}

// TestHealthEndpointIntegration tests the /api/v1/health endpoint with full routing
func TestHealthEndpointIntegration(t *testing.T) {
	router := setupRouter()

	// Create a test request
	req, _ := http.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()

	// Serve the request
	router.ServeHTTP(w, req)

	// Assert status code
	assert.Equal(t, http.StatusOK, w.Code, "Expected status 200 OK")

	// Parse and verify response
	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err, "Response should be valid JSON")
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Shopstack API is running", response["message"])
}

// TestAPIV1Prefix tests that the surface requires the /api/v1 prefix
func TestAPIV1Prefix(t *testing.T) {
	router := setupRouter()

	// Test without /api/v1 prefix (should fail)
	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code, "Endpoint should require /api/v1 prefix")

	// Test with correct prefix (should succeed)
	req, _ = http.NewRequest("GET", "/api/v1/health", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code, "Endpoint should work with /api/v1 prefix")
}

// TestProtectedRoutesRequireToken tests that guarded endpoints reject anonymous requests
func TestProtectedRoutesRequireToken(t *testing.T) {
	router := setupRouter()

	tests := []struct {
		method string
		path   string
	}{
		{"POST", "/api/v1/products"},
		{"PUT", "/api/v1/products/1"},
		{"DELETE", "/api/v1/products/1"},
		{"POST", "/api/v1/products/1/image"},
		{"POST", "/api/v1/products/1/reviews"},
		{"PUT", "/api/v1/products/1/reviews"},
		{"DELETE", "/api/v1/products/1/reviews"},
		{"POST", "/api/v1/orders"},
		{"PUT", "/api/v1/orders/1"},
		{"GET", "/api/v1/orders/payments/1"},
	}

	for _, tt := range tests {
		req, _ := http.NewRequest(tt.method, tt.path, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "%s %s should require a bearer token", tt.method, tt.path)
	}
}
