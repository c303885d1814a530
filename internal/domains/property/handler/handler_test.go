package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"propertypro-backend/internal/domains/property/repository"
	"propertypro-backend/internal/domains/property/service"
	"propertypro-backend/internal/infrastructure/storage"
	"propertypro-backend/internal/shared/middleware"
	"propertypro-backend/pkg/jwt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, filename, contentType string, data []byte) (string, string, error) {
	args := m.Called(ctx, filename, contentType, data)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockUploader) Delete(ctx context.Context, assetID string) error {
	return m.Called(ctx, assetID).Error(0)
}

type testEnv struct {
	router   *gin.Engine
	repo     repository.RepositoryInterface
	uploader *mockUploader
	tokens   *jwt.Manager
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	repo := repository.NewMemoryRepository()
	uploader := new(mockUploader)
	tokens := jwt.NewManager("test-secret", time.Hour)
	svc := service.NewPropertyService(repo, uploader, storage.NewImageProcessor(1024*1024, 800))

	router := gin.New()
	v2 := router.Group("/api/v2")
	NewPropertyHandler(svc).RegisterRoutes(v2, middleware.AuthMiddleware(tokens, nil))

	return &testEnv{router: router, repo: repo, uploader: uploader, tokens: tokens}
}

func (e *testEnv) token(t *testing.T, userID int64, role string) string {
	t.Helper()
	tok, err := e.tokens.GenerateAccessToken(userID, fmt.Sprintf("user%d@example.com", userID), role)
	require.NoError(t, err)
	return tok
}

type apiResponse struct {
	Status  int              `json:"status"`
	Data    json.RawMessage  `json:"data"`
	Message string           `json:"message"`
	Error   json.RawMessage  `json:"error"`
	Errors  []string         `json:"errors"`
	Item    map[string]any   `json:"-"`
	Items   []map[string]any `json:"-"`
}

func (r *apiResponse) errorString() string {
	var s string
	_ = json.Unmarshal(r.Error, &s)
	return s
}

func (r *apiResponse) errorMessage() string {
	var nested struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(r.Error, &nested)
	return nested.Message
}

func (e *testEnv) do(t *testing.T, method, path, token string, body any) (int, *apiResponse) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return e.serve(t, req, token)
}

func (e *testEnv) serve(t *testing.T, req *http.Request, token string) (int, *apiResponse) {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	resp := &apiResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), resp), w.Body.String())
	if len(resp.Data) > 0 {
		if resp.Data[0] == '[' {
			require.NoError(t, json.Unmarshal(resp.Data, &resp.Items))
		} else {
			require.NoError(t, json.Unmarshal(resp.Data, &resp.Item))
		}
	}
	return w.Code, resp
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(1, 1, color.RGBA{G: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, fields map[string]string, image []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	if image != nil {
		fw, err := mw.CreateFormFile("image", "house.png")
		require.NoError(t, err)
		_, err = fw.Write(image)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v2/property", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func propertyFields(propertyType string) map[string]string {
	return map[string]string{
		"price":   "25000",
		"state":   "Lagos",
		"city":    "Ikeja",
		"address": "12 Allen Avenue",
		"type":    propertyType,
	}
}

// create tạo property qua API với upload thành công
func (e *testEnv) create(t *testing.T, ownerID int64, propertyType string) map[string]any {
	t.Helper()
	n := len(e.uploader.ExpectedCalls)
	assetID := fmt.Sprintf("properties/%d.png", n)
	e.uploader.On("Upload", mock.Anything, "house.png", "image/png", mock.Anything).
		Return("https://img.example.com/"+assetID, assetID, nil).Once()

	code, resp := e.serve(t, multipartRequest(t, propertyFields(propertyType), pngBytes(t)), e.token(t, ownerID, "user"))
	require.Equal(t, http.StatusCreated, code, resp.Errors)
	return resp.Item
}

func idOf(item map[string]any) int64 {
	return int64(item["id"].(float64))
}

// ==================== CREATE ====================

func TestCreateProperty(t *testing.T) {
	env := newTestEnv(t)

	item := env.create(t, 1, "3 bedroom")
	assert.Equal(t, float64(1), item["owner_id"])
	assert.Equal(t, "available", item["status"])
	assert.Equal(t, "12 Allen Avenue", item["address"])
	assert.Equal(t, float64(25000), item["price"])
	assert.Contains(t, item["image_url"], "https://img.example.com/")
	env.uploader.AssertExpectations(t)
}

func TestCreateProperty_RequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	code, resp := env.serve(t, multipartRequest(t, propertyFields("duplex"), pngBytes(t)), "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "missing authorization header", resp.errorString())
}

func TestCreateProperty_ValidationFailures(t *testing.T) {
	env := newTestEnv(t)
	token := env.token(t, 1, "user")

	t.Run("missing image", func(t *testing.T) {
		code, resp := env.serve(t, multipartRequest(t, propertyFields("duplex"), nil), token)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, []string{`"image" is required`}, resp.Errors)
	})

	t.Run("not an image", func(t *testing.T) {
		code, resp := env.serve(t, multipartRequest(t, propertyFields("duplex"), []byte("plain text")), token)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.NotEmpty(t, resp.Errors)
	})

	t.Run("bad fields", func(t *testing.T) {
		fields := propertyFields("ab")
		fields["price"] = "-5"
		delete(fields, "city")

		code, resp := env.serve(t, multipartRequest(t, fields, pngBytes(t)), token)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, []string{
			`"city" is required`,
			`"price" must be larger than or equal to 0`,
			`"type" length must be at least 3 characters long`,
		}, resp.Errors)
	})

	t.Run("type longer than column", func(t *testing.T) {
		code, resp := env.serve(t, multipartRequest(t, propertyFields(strings.Repeat("x", 101)), pngBytes(t)), token)
		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, []string{`"type" length must be less than or equal to 100 characters long`}, resp.Errors)
	})

	all, err := env.repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
	env.uploader.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateProperty_UploadFailurePersistsNothing(t *testing.T) {
	env := newTestEnv(t)
	env.uploader.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return("", "", errors.New("cloud unreachable")).Once()

	code, resp := env.serve(t, multipartRequest(t, propertyFields("duplex"), pngBytes(t)), env.token(t, 1, "user"))
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Equal(t, "Image upload failed", resp.errorString())

	code, resp = env.do(t, http.MethodGet, "/api/v2/properties", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp.Items)
}

// ==================== READ ====================

func TestListAndGet_RoundTrip(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, 1, "3 bedroom")
	env.create(t, 2, "duplex")
	env.create(t, 1, "3 bedroom")

	code, resp := env.do(t, http.MethodGet, "/api/v2/properties", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Items, 3)

	for _, item := range resp.Items {
		code, one := env.do(t, http.MethodGet, fmt.Sprintf("/api/v2/property/%d", idOf(item)), "", nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, item, one.Item)
	}
}

func TestGetProperty_NotFound(t *testing.T) {
	env := newTestEnv(t)

	for _, path := range []string{"/api/v2/property/100", "/api/v2/property/abc", "/api/v2/property/-1"} {
		code, resp := env.do(t, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusNotFound, code, path)
		assert.Equal(t, "No property found", resp.errorString(), path)
	}
}

func TestFilterByType(t *testing.T) {
	env := newTestEnv(t)
	env.create(t, 1, "3 bedroom")
	env.create(t, 1, "duplex")
	env.create(t, 2, "3 bedroom")

	code, resp := env.do(t, http.MethodGet, "/api/v2/property?type=3%20bedroom", "", nil)
	require.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Items, 2)
	for _, item := range resp.Items {
		assert.Equal(t, "3 bedroom", item["type"])
	}

	code, resp = env.do(t, http.MethodGet, "/api/v2/property?type=3%20express", "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No available properties of such a type", resp.errorString())

	code, resp = env.do(t, http.MethodGet, "/api/v2/properties?type=duplex", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Items, 1)
}

// ==================== UPDATE ====================

func TestUpdateProperty(t *testing.T) {
	env := newTestEnv(t)
	id := idOf(env.create(t, 1, "3 bedroom"))
	path := fmt.Sprintf("/api/v2/property/%d", id)
	ownerToken := env.token(t, 1, "user")
	otherToken := env.token(t, 2, "user")

	t.Run("owner", func(t *testing.T) {
		code, resp := env.do(t, http.MethodPatch, path, ownerToken, map[string]any{"price": 100})
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, float64(100), resp.Item["price"])
		assert.Equal(t, "Ikeja", resp.Item["city"])
	})

	t.Run("not owner", func(t *testing.T) {
		code, resp := env.do(t, http.MethodPatch, path, otherToken, map[string]any{"price": 100})
		assert.Equal(t, http.StatusForbidden, code)
		assert.Equal(t, "You are allowed to update your property only!", resp.errorMessage())
	})

	t.Run("admin is not owner", func(t *testing.T) {
		code, _ := env.do(t, http.MethodPatch, path, env.token(t, 9, "admin"), map[string]any{"city": "Yaba"})
		assert.Equal(t, http.StatusForbidden, code)
	})

	t.Run("invalid payload before ownership", func(t *testing.T) {
		for _, token := range []string{ownerToken, otherToken} {
			code, resp := env.do(t, http.MethodPatch, path, token, map[string]any{"prices": 1000})
			assert.Equal(t, http.StatusBadRequest, code)
			assert.NotEmpty(t, resp.Errors)
		}
	})

	t.Run("creation payload is a valid update", func(t *testing.T) {
		body := map[string]any{"price": 1, "state": "Ogun", "city": "Abeokuta", "address": "1 Main", "type": "bungalow"}
		code, resp := env.do(t, http.MethodPatch, path, ownerToken, body)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "bungalow", resp.Item["type"])
	})

	t.Run("not found", func(t *testing.T) {
		code, resp := env.do(t, http.MethodPatch, "/api/v2/property/100", ownerToken, map[string]any{"price": 1000})
		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "property your are trying to update is not available!", resp.errorString())
	})
}

// ==================== MARK SOLD ====================

func TestMarkSold(t *testing.T) {
	env := newTestEnv(t)
	id := idOf(env.create(t, 1, "3 bedroom"))
	path := fmt.Sprintf("/api/v2/property/%d/sold", id)

	code, resp := env.do(t, http.MethodPatch, path, env.token(t, 2, "user"), nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "You are allowed to mark as sold your property only!", resp.errorMessage())

	// gọi hai lần đều trả 200 + sold, lần hai không đổi updated_at
	var soldAt any
	for i := 0; i < 2; i++ {
		code, resp = env.do(t, http.MethodPatch, path, env.token(t, 1, "user"), nil)
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "sold", resp.Item["status"])
		if i == 0 {
			soldAt = resp.Item["updated_at"]
			continue
		}
		assert.Equal(t, soldAt, resp.Item["updated_at"])
	}

	code, resp = env.do(t, http.MethodPatch, "/api/v2/property/100/sold", env.token(t, 1, "user"), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No property found", resp.errorString())
}

// ==================== DELETE ====================

func TestDeleteProperty(t *testing.T) {
	env := newTestEnv(t)
	id := idOf(env.create(t, 1, "3 bedroom"))
	path := fmt.Sprintf("/api/v2/property/%d", id)

	code, resp := env.do(t, http.MethodDelete, path, env.token(t, 2, "user"), nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "You are allowed to delete your property only!", resp.errorMessage())

	env.uploader.On("Delete", mock.Anything, mock.AnythingOfType("string")).Return(nil).Once()

	code, resp = env.do(t, http.MethodDelete, path, env.token(t, 1, "user"), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, 200, resp.Status)
	assert.Equal(t, "Property deleted successfully", resp.Message)

	// xóa là terminal
	code, resp = env.do(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No property found", resp.errorString())

	code, resp = env.do(t, http.MethodPatch, path, env.token(t, 1, "user"), map[string]any{"price": 5})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "property your are trying to update is not available!", resp.errorString())

	code, resp = env.do(t, http.MethodDelete, path, env.token(t, 1, "user"), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "no property found!", resp.errorString())

	env.uploader.AssertExpectations(t)
}

func TestDeleteProperty_Admin(t *testing.T) {
	env := newTestEnv(t)
	id := idOf(env.create(t, 1, "duplex"))
	env.uploader.On("Delete", mock.Anything, mock.Anything).Return(nil).Once()

	code, resp := env.do(t, http.MethodDelete, fmt.Sprintf("/api/v2/property/%d", id), env.token(t, 5, "admin"), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Property deleted successfully", resp.Message)
}
