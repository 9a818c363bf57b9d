package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/fyerfyer/doc-summary-system/api/handler"
	"github.com/fyerfyer/doc-summary-system/internal/cache"
	"github.com/fyerfyer/doc-summary-system/internal/models"
	"github.com/fyerfyer/doc-summary-system/internal/repository"
	"github.com/fyerfyer/doc-summary-system/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testDocument = "Machine learning systems require large amounts of training data. " +
	"The quality of training data directly affects model performance. " +
	"Data scientists spend most of their time cleaning and preparing data. " +
	"Neural networks learn patterns from examples rather than explicit rules. " +
	"Deep learning models contain millions of trainable parameters. " +
	"Training deep models requires significant computational resources. " +
	"Graphics processors accelerate the matrix operations used in training. " +
	"Model evaluation uses held out test data to measure generalization. " +
	"Overfitting happens when a model memorizes the training data. " +
	"Regularization techniques help models generalize to unseen data."

// setupTestAPI 构建一个使用内存数据库和内存缓存的测试路由
func setupTestAPI(t *testing.T) *gin.Engine {
	gin.SetMode(gin.TestMode)

	dbName := fmt.Sprintf("file:memdb_api_%d?mode=memory", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dbName), &gorm.Config{})
	require.NoError(t, err, "Failed to open in-memory database")

	err = db.AutoMigrate(&models.Summary{})
	require.NoError(t, err, "Failed to run migrations")

	repo := repository.NewSummaryRepositoryWithDB(db)

	memCache, err := cache.NewMemoryCache(cache.DefaultConfig())
	require.NoError(t, err, "Failed to create memory cache")

	service, err := services.NewSummaryService(repo, memCache)
	require.NoError(t, err, "Failed to create summary service")

	summaryHandler := handler.NewSummaryHandler(service)
	taskHandler := handler.NewTaskHandler(service)

	return SetupRouter(summaryHandler, taskHandler, RouterConfig{EnableAsync: false})
}

// performRequest 执行HTTP请求并返回响应记录器
func performRequest(router *gin.Engine, method, path string, body *bytes.Buffer, contentType string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, path, body)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// decodeEnvelope 解析通用响应结构
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) (int, map[string]interface{}) {
	var envelope struct {
		Code    int                    `json:"code"`
		Message string                 `json:"message"`
		Data    map[string]interface{} `json:"data"`
	}
	err := json.Unmarshal(w.Body.Bytes(), &envelope)
	require.NoError(t, err, "Response should be valid JSON")
	return envelope.Code, envelope.Data
}

func TestSummarizeEndpoint_JSON(t *testing.T) {
	router := setupTestAPI(t)

	body, err := json.Marshal(map[string]string{
		"text":     testDocument,
		"filename": "ml-notes.txt",
	})
	require.NoError(t, err)

	w := performRequest(router, "POST", "/api/summarize", bytes.NewBuffer(body), "application/json")
	require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	code, data := decodeEnvelope(t, w)
	assert.Equal(t, 0, code)
	assert.NotEmpty(t, data["summary"], "Summary should not be empty")
	assert.NotEmpty(t, data["key_points"], "Key points should not be empty")
	assert.Equal(t, "local", data["mode"])
	assert.Equal(t, "medium", data["length"])
	assert.Equal(t, "ml-notes.txt", data["filename"])
	assert.Greater(t, data["original_length"], data["summary_length"])

	// 未请求保存时不返回saved_id
	_, hasSavedID := data["saved_id"]
	assert.False(t, hasSavedID, "Unsaved summary should not carry saved_id")

	// 追踪ID写入响应头
	assert.NotEmpty(t, w.Header().Get("X-Trace-ID"), "Trace ID header should be set")
}

func TestSummarizeEndpoint_QueryParams(t *testing.T) {
	router := setupTestAPI(t)

	body, err := json.Marshal(map[string]string{"text": testDocument})
	require.NoError(t, err)

	w := performRequest(router, "POST", "/api/summarize?length=short&max_points=3", bytes.NewBuffer(body), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	_, data := decodeEnvelope(t, w)
	assert.Equal(t, "short", data["length"])

	keyPoints, ok := data["key_points"].([]interface{})
	require.True(t, ok)
	assert.LessOrEqual(t, len(keyPoints), 3, "max_points should cap the key point count")
}

func TestSummarizeEndpoint_EmptyText(t *testing.T) {
	router := setupTestAPI(t)

	body, err := json.Marshal(map[string]string{"text": "   "})
	require.NoError(t, err)

	w := performRequest(router, "POST", "/api/summarize", bytes.NewBuffer(body), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSummarizeEndpoint_OnlineWithoutKey(t *testing.T) {
	router := setupTestAPI(t)

	body, err := json.Marshal(map[string]string{"text": testDocument})
	require.NoError(t, err)

	w := performRequest(router, "POST", "/api/summarize?mode=online", bytes.NewBuffer(body), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code, "Online mode without API key should fail")
}

func TestSummarizeEndpoint_InvalidMode(t *testing.T) {
	router := setupTestAPI(t)

	body, err := json.Marshal(map[string]string{"text": testDocument})
	require.NoError(t, err)

	w := performRequest(router, "POST", "/api/summarize?mode=hybrid", bytes.NewBuffer(body), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code, "Unknown mode should be rejected by validation")
}

func TestSummarizeEndpoint_FormText(t *testing.T) {
	router := setupTestAPI(t)

	form := url.Values{}
	form.Set("text", testDocument)
	form.Set("filename", "form-input.txt")

	w := performRequest(router, "POST", "/api/summarize", bytes.NewBufferString(form.Encode()), "application/x-www-form-urlencoded")
	require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	_, data := decodeEnvelope(t, w)
	assert.Equal(t, "form-input.txt", data["filename"])
	assert.NotEmpty(t, data["summary"])
}

func TestSummarizeEndpoint_FileUpload(t *testing.T) {
	router := setupTestAPI(t)

	// 构造multipart请求体
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "upload.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte(testDocument))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := performRequest(router, "POST", "/api/summarize", &buf, writer.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code, "Response body: %s", w.Body.String())

	_, data := decodeEnvelope(t, w)
	assert.Equal(t, "upload.txt", data["filename"])
	assert.Equal(t, "text", data["file_type"])
	assert.NotEmpty(t, data["summary"])
}

func TestSummarizeEndpoint_UnsupportedFileType(t *testing.T) {
	router := setupTestAPI(t)

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "image.png")
	require.NoError(t, err)
	_, err = part.Write([]byte{0x89, 0x50, 0x4e, 0x47})
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	w := performRequest(router, "POST", "/api/summarize", &buf, writer.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, w.Code, "Unsupported file type should be rejected")
}

func TestSummaryLifecycleEndpoints(t *testing.T) {
	router := setupTestAPI(t)

	// 保存一条摘要
	body, err := json.Marshal(map[string]string{
		"text":     testDocument,
		"filename": "lifecycle.txt",
	})
	require.NoError(t, err)

	w := performRequest(router, "POST", "/api/summarize?save=true", bytes.NewBuffer(body), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	_, data := decodeEnvelope(t, w)
	savedID, ok := data["saved_id"].(float64)
	require.True(t, ok, "saved_id should be present when save=true")
	require.Greater(t, savedID, 0.0)

	id := int(savedID)

	t.Run("List", func(t *testing.T) {
		w := performRequest(router, "GET", "/api/summaries", nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		_, data := decodeEnvelope(t, w)
		assert.Equal(t, 1.0, data["total"])

		summaries, ok := data["summaries"].([]interface{})
		require.True(t, ok)
		require.Len(t, summaries, 1)

		item := summaries[0].(map[string]interface{})
		assert.Equal(t, "lifecycle.txt", item["filename"])
		assert.NotEmpty(t, item["summary_preview"])
	})

	t.Run("Get", func(t *testing.T) {
		w := performRequest(router, "GET", fmt.Sprintf("/api/summaries/%d", id), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		_, data := decodeEnvelope(t, w)
		assert.Equal(t, "lifecycle.txt", data["filename"])
		assert.Equal(t, testDocument, data["original_text"])
		assert.NotEmpty(t, data["summary"])
		assert.NotEmpty(t, data["key_points"])
	})

	t.Run("ExportTxt", func(t *testing.T) {
		w := performRequest(router, "GET", fmt.Sprintf("/api/summaries/%d/export", id), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
		assert.Contains(t, w.Body.String(), "Document: lifecycle.txt")
		assert.Contains(t, w.Body.String(), "SUMMARY")
		assert.Contains(t, w.Body.String(), "KEY POINTS")
	})

	t.Run("ExportJson", func(t *testing.T) {
		w := performRequest(router, "GET", fmt.Sprintf("/api/summaries/%d/export?format=json", id), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

		var exported map[string]interface{}
		err := json.Unmarshal(w.Body.Bytes(), &exported)
		require.NoError(t, err)
		assert.Equal(t, "lifecycle.txt", exported["filename"])
	})

	t.Run("Delete", func(t *testing.T) {
		w := performRequest(router, "DELETE", fmt.Sprintf("/api/summaries/%d", id), nil, "")
		require.Equal(t, http.StatusOK, w.Code)

		_, data := decodeEnvelope(t, w)
		assert.Equal(t, true, data["success"])

		// 删除后记录不存在
		w = performRequest(router, "GET", fmt.Sprintf("/api/summaries/%d", id), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)

		// 重复删除返回404
		w = performRequest(router, "DELETE", fmt.Sprintf("/api/summaries/%d", id), nil, "")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestGetSummaryEndpoint_NotFound(t *testing.T) {
	router := setupTestAPI(t)

	w := performRequest(router, "GET", "/api/summaries/9999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportEndpoint_InvalidFormat(t *testing.T) {
	router := setupTestAPI(t)

	w := performRequest(router, "GET", "/api/summaries/1/export?format=xml", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code, "Invalid export format should be rejected")
}

func TestHealthEndpoint(t *testing.T) {
	router := setupTestAPI(t)

	w := performRequest(router, "GET", "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]string
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "1.0.0", resp["version"])
}

func TestAsyncEndpointsDisabled(t *testing.T) {
	router := setupTestAPI(t)

	body := bytes.NewBufferString(`{"text":"some text"}`)
	w := performRequest(router, "POST", "/api/summarize/async", body, "application/json")
	assert.Equal(t, http.StatusNotFound, w.Code, "Async endpoint should not be registered without a queue")

	w = performRequest(router, "GET", "/api/tasks/some-id", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSummarizeEndpoint_SavedResultBypassesCache(t *testing.T) {
	router := setupTestAPI(t)

	body, err := json.Marshal(map[string]string{"text": testDocument})
	require.NoError(t, err)

	// 第一次不保存，结果进缓存
	w := performRequest(router, "POST", "/api/summarize", bytes.NewBuffer(body), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	// 第二次请求保存，即使缓存命中也必须拿到saved_id
	body, err = json.Marshal(map[string]string{"text": testDocument})
	require.NoError(t, err)

	w = performRequest(router, "POST", "/api/summarize?save=true", bytes.NewBuffer(body), "application/json")
	require.Equal(t, http.StatusOK, w.Code)

	_, data := decodeEnvelope(t, w)
	savedID, ok := data["saved_id"].(float64)
	assert.True(t, ok, "saved_id should be present")
	assert.Greater(t, savedID, 0.0)
}
