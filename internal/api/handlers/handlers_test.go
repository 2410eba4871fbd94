package handlers

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
	"github.com/stretchr/testify/require"

	"github.com/admin-panel-kit/attachment-service/internal/configuration"
	"github.com/admin-panel-kit/attachment-service/internal/records"
	"github.com/admin-panel-kit/attachment-service/internal/services"
	"github.com/admin-panel-kit/attachment-service/internal/storage"
)

func newTestRouter(t *testing.T, mode string) (*gin.Engine, records.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := records.NewMemoryStore()
	local, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	resolver := services.NewURLResolver("admin.example.com", "/uploads")
	svc := services.NewService(store, local, nil, nil, resolver, nil, mode)

	r := gin.New()
	h := NewFileHandler(svc)
	r.POST("/api/admin/file/upload", h.Upload)
	r.GET("/api/admin/file/index", h.Index)
	r.POST("/api/admin/file/changeStatus", h.ChangeStatus)
	r.POST("/api/admin/file/update", h.Update)
	r.GET("/api/admin/file/download", h.Download)
	return r, store
}

func multipartBody(t *testing.T, field, filename string, content []byte, extra map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	for k, v := range extra {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func doUpload(t *testing.T, r *gin.Engine, filename string, content []byte) map[string]any {
	t.Helper()
	body, contentType := multipartBody(t, "file", filename, content, nil)
	req := httptest.NewRequest(http.MethodPost, "/api/admin/file/upload", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, "success", resp["status"])
	return resp["data"].(map[string]any)
}

func TestUploadReturnsRecord(t *testing.T) {
	r, _ := newTestRouter(t, configuration.ModeLocal)

	data := doUpload(t, r, "a.txt", []byte("0123456789"))
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "a.txt", data["name"])
	assert.Equal(t, float64(10), data["size"])
	assert.True(t, strings.HasPrefix(data["url"].(string), "//admin.example.com/uploads/files/"), data["url"])
}

func TestUploadDeduplicates(t *testing.T) {
	r, _ := newTestRouter(t, configuration.ModeLocal)

	first := doUpload(t, r, "a.txt", []byte("0123456789"))
	second := doUpload(t, r, "a.txt", []byte("0123456789"))
	assert.Equal(t, first["id"], second["id"])
	assert.Equal(t, first["url"], second["url"])
}

func TestUploadWithoutFile(t *testing.T) {
	r, _ := newTestRouter(t, configuration.ModeLocal)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/file/upload", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangeStatusValidation(t *testing.T) {
	r, _ := newTestRouter(t, configuration.ModeLocal)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/file/changeStatus",
		strings.NewReader(`{"id":"","status":0}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangeStatusRemovesAndHidesFromListing(t *testing.T) {
	r, store := newTestRouter(t, configuration.ModeLocal)

	data := doUpload(t, r, "a.txt", []byte("0123456789"))
	id := data["id"].(string)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/file/changeStatus",
		strings.NewReader(`{"id":["`+id+`"],"status":-1}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	record, err := store.GetByID(req.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, -1, record.Status)

	// The tombstone must not appear in the listing.
	req = httptest.NewRequest(http.MethodGet, "/api/admin/file/index", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	listing := resp["data"].(map[string]any)
	assert.Empty(t, listing["lists"])
	assert.Equal(t, float64(0), listing["pagination"].(map[string]any)["total"])
}

func TestChangeStatusAcceptsScalarID(t *testing.T) {
	r, store := newTestRouter(t, configuration.ModeLocal)

	data := doUpload(t, r, "a.txt", []byte("0123456789"))
	id := data["id"].(string)

	req := httptest.NewRequest(http.MethodPost, "/api/admin/file/changeStatus",
		strings.NewReader(`{"id":"`+id+`","status":2}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	record, err := store.GetByID(req.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, record.Status)
}

func TestIndexPaginationEnvelope(t *testing.T) {
	r, _ := newTestRouter(t, configuration.ModeLocal)

	doUpload(t, r, "a.txt", []byte("content one"))
	doUpload(t, r, "b.txt", []byte("content two"))

	req := httptest.NewRequest(http.MethodGet, "/api/admin/file/index?current=1&pageSize=1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	listing := resp["data"].(map[string]any)
	assert.Len(t, listing["lists"], 1)

	pagination := listing["pagination"].(map[string]any)
	assert.Equal(t, float64(1), pagination["current"])
	assert.Equal(t, float64(1), pagination["pageSize"])
	assert.Equal(t, float64(2), pagination["total"])
}

func TestUpdateRejectedWhenRemote(t *testing.T) {
	r, _ := newTestRouter(t, configuration.ModeRemote)

	body, contentType := multipartBody(t, "file", "a.txt", []byte("new"), map[string]string{"id": "some-id"})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/file/update", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "cloud storage")
}

func TestUpdateReplacesContent(t *testing.T) {
	r, store := newTestRouter(t, configuration.ModeLocal)

	data := doUpload(t, r, "a.txt", []byte("old content"))
	id := data["id"].(string)

	body, contentType := multipartBody(t, "file", "b.txt", []byte("new content"), map[string]string{"id": id})
	req := httptest.NewRequest(http.MethodPost, "/api/admin/file/update", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	record, err := store.GetByID(req.Context(), id)
	require.NoError(t, err)
	assert.Equal(t, "b.txt", record.Name)
	assert.Equal(t, services.Fingerprint([]byte("new content")), record.Fingerprint)
}

func TestDownloadRedirects(t *testing.T) {
	r, _ := newTestRouter(t, configuration.ModeLocal)

	data := doUpload(t, r, "a.txt", []byte("0123456789"))
	id := data["id"].(string)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/file/download?id="+id, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, data["url"], w.Header().Get("Location"))
}

func TestDownloadUnknownID(t *testing.T) {
	r, _ := newTestRouter(t, configuration.ModeLocal)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/file/download?id=missing", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/file/download", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
