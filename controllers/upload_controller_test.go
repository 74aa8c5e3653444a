package controllers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/emirhan-aydin/shopstack-api/config"
	"github.com/emirhan-aydin/shopstack-api/middleware"
	"github.com/emirhan-aydin/shopstack-api/models"
	"github.com/emirhan-aydin/shopstack-api/services"
)

func setupUploadRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	requireAdmin := middleware.RequireAdmin(controllersTestSecret)
	router.POST("/api/v1/products/:id/image", requireAdmin, UploadProductImage)
	return router
}

// buildImageUpload assembles a multipart body with a single image file field
func buildImageUpload(t *testing.T, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", filename)
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Failed to write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func TestUploadProductImage(t *testing.T) {
	db := newTestDB(t)
	config.SetDB(db)
	router := setupUploadRouter()

	mock := services.NewMockImageStorage()
	mock.SetAsMockForTesting()
	defer services.SetImageStorage(nil)

	product := models.Product{Name: "Scale", Description: "Brew scale", Price: 49.0, ImageURL: "https://img.example.com/placeholder.png"}
	assert.NoError(t, db.Create(&product).Error)

	adminToken := issueTestToken(t, 1, middleware.RoleAdmin)

	body, contentType := buildImageUpload(t, "scale.png", []byte("png-bytes"))
	req, _ := http.NewRequest("POST", "/api/v1/products/1/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.True(t, strings.Contains(data["image_url"].(string), "scale.png"))

	// The product row points at the stored image
	var stored models.Product
	assert.NoError(t, db.First(&stored, product.ID).Error)
	assert.NotEqual(t, "https://img.example.com/placeholder.png", stored.ImageURL)
	assert.True(t, mock.ImageExists("products/1/mock_scale.png"))
}

func TestUploadProductImageRejectsBadFormat(t *testing.T) {
	db := newTestDB(t)
	config.SetDB(db)
	router := setupUploadRouter()

	mock := services.NewMockImageStorage()
	mock.SetAsMockForTesting()
	defer services.SetImageStorage(nil)

	product := models.Product{Name: "Scale", Description: "Brew scale", Price: 49.0, ImageURL: "https://img.example.com/placeholder.png"}
	assert.NoError(t, db.Create(&product).Error)

	adminToken := issueTestToken(t, 1, middleware.RoleAdmin)

	body, contentType := buildImageUpload(t, "scale.gif", []byte("gif-bytes"))
	req, _ := http.NewRequest("POST", "/api/v1/products/1/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "INVALID_FILE_FORMAT", errorData["code"])

	// Nothing may be stored or updated
	var stored models.Product
	assert.NoError(t, db.First(&stored, product.ID).Error)
	assert.Equal(t, "https://img.example.com/placeholder.png", stored.ImageURL)
}

func TestUploadProductImageMissingProduct(t *testing.T) {
	db := newTestDB(t)
	config.SetDB(db)
	router := setupUploadRouter()

	adminToken := issueTestToken(t, 1, middleware.RoleAdmin)

	body, contentType := buildImageUpload(t, "scale.png", []byte("png-bytes"))
	req, _ := http.NewRequest("POST", "/api/v1/products/9/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUploadProductImageRequiresFile(t *testing.T) {
	db := newTestDB(t)
	config.SetDB(db)
	router := setupUploadRouter()

	product := models.Product{Name: "Scale", Description: "Brew scale", Price: 49.0, ImageURL: "https://img.example.com/placeholder.png"}
	assert.NoError(t, db.Create(&product).Error)

	adminToken := issueTestToken(t, 1, middleware.RoleAdmin)

	req, _ := http.NewRequest("POST", "/api/v1/products/1/image", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUploadProductImageStorageUnavailable(t *testing.T) {
	db := newTestDB(t)
	config.SetDB(db)
	router := setupUploadRouter()

	services.SetImageStorage(nil)

	product := models.Product{Name: "Scale", Description: "Brew scale", Price: 49.0, ImageURL: "https://img.example.com/placeholder.png"}
	assert.NoError(t, db.Create(&product).Error)

	adminToken := issueTestToken(t, 1, middleware.RoleAdmin)

	body, contentType := buildImageUpload(t, "scale.png", []byte("png-bytes"))
	req, _ := http.NewRequest("POST", "/api/v1/products/1/image", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	errorData := response["error"].(map[string]interface{})
	assert.Equal(t, "STORAGE_UNAVAILABLE", errorData["code"])
}
