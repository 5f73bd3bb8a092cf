package photo_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pantry-tracker/core/database"
	"pantry-tracker/core/storage/mocks"
	"pantry-tracker/core/vision"
	"pantry-tracker/feature/inventory"
	"pantry-tracker/feature/photo"

	"github.com/gofiber/fiber/v2"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testBucket = "pantry"

type stubClassifier struct {
	detections []vision.Detection
	err        error
}

func (s *stubClassifier) Classify(ctx context.Context, image []byte) ([]vision.Detection, error) {
	return s.detections, s.err
}

func setupApp(t *testing.T, classifier vision.Classifier) (*fiber.App, *mocks.Client, *gorm.DB) {
	t.Helper()

	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	assert.NoError(t, err)
	assert.NoError(t, inventory.Migrate(db))

	store := new(mocks.Client)
	inv := inventory.NewService(db, zap.NewNop())

	app := fiber.New()
	feature := photo.NewFeature(store, testBucket, classifier, inv, zap.NewNop())
	assert.NoError(t, feature.Load(app))

	return app, store, db
}

func photoRequest(t *testing.T, filename string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("photo", filename)
	assert.NoError(t, err)
	_, err = part.Write(content)
	assert.NoError(t, err)
	assert.NoError(t, writer.Close())

	req := httptest.NewRequest(fiber.MethodPost, "/photo_handler", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var data map[string]any
	assert.NoError(t, json.Unmarshal(raw, &data))
	return data
}

func TestHandlePhotoUpload_Success(t *testing.T) {
	classifier := &stubClassifier{detections: []vision.Detection{
		{Product: "Whole Milk", Quantity: 2},
	}}
	app, store, db := setupApp(t, classifier)

	// One put for the photo, one for the analysis record
	store.On("PutObject", mock.Anything, testBucket, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil).Twice()

	resp, err := app.Test(photoRequest(t, "fridge.jpg", []byte("fake image bytes")))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "success", body["status"])
	assert.Contains(t, body["photo_path"], "/uploads/")
	assert.True(t, strings.HasSuffix(body["photo_path"].(string), "_fridge.jpg"))

	// The analysis carries the estimated shelf life ("milk" estimates 7 days)
	analysis := body["analysis"].([]any)
	assert.Len(t, analysis, 1)
	detection := analysis[0].(map[string]any)
	assert.Equal(t, "Whole Milk", detection["product"])
	assert.Equal(t, float64(7), detection["expiration"])

	added := body["added_items"].([]any)
	assert.Len(t, added, 1)
	item := added[0].(map[string]any)
	assert.Equal(t, "Whole Milk", item["name"])
	assert.Equal(t, float64(2), item["quantity"])

	var count int64
	assert.NoError(t, db.Table("items").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	store.AssertExpectations(t)
}

func TestHandlePhotoUpload_NoFile(t *testing.T) {
	app, _, _ := setupApp(t, &stubClassifier{})

	req := httptest.NewRequest(fiber.MethodPost, "/photo_handler", nil)
	resp, err := app.Test(req)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No photo uploaded", decodeBody(t, resp)["error"])
}

func TestHandlePhotoUpload_BadExtension(t *testing.T) {
	app, _, _ := setupApp(t, &stubClassifier{})

	resp, err := app.Test(photoRequest(t, "notes.pdf", []byte("not an image")))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "File type not allowed", decodeBody(t, resp)["error"])
}

func TestHandlePhotoUpload_ClassifierFailure(t *testing.T) {
	classifier := &stubClassifier{err: vision.ErrNoChoices}
	app, store, db := setupApp(t, classifier)

	// Only the photo put happens; no analysis record is written
	store.On("PutObject", mock.Anything, testBucket, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, nil).Once()

	resp, err := app.Test(photoRequest(t, "fridge.jpg", []byte("fake image bytes")))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusMultiStatus, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "partial_success", body["status"])
	assert.Equal(t, "Photo saved but AI analysis failed", body["message"])
	assert.Contains(t, body["photo_path"], "/uploads/")

	var count int64
	assert.NoError(t, db.Table("items").Count(&count).Error)
	assert.Zero(t, count)

	store.AssertExpectations(t)
}

func TestHandleGetUpload(t *testing.T) {
	app, store, _ := setupApp(t, &stubClassifier{})

	store.On("GetObject", mock.Anything, testBucket, "uploads/20260830_120000_fridge.jpg", mock.Anything).
		Return(io.NopCloser(bytes.NewReader([]byte("image bytes"))), nil)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/uploads/20260830_120000_fridge.jpg", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "image/jpeg", resp.Header.Get("Content-Type"))

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, []byte("image bytes"), raw)
}

func TestHandleGetAnalysisResult(t *testing.T) {
	app, store, _ := setupApp(t, &stubClassifier{})

	record := photo.AnalysisRecord{
		Timestamp: "2026-08-30T12:00:00Z",
		ImageFile: "20260830_120000_fridge.jpg",
		Items:     []vision.Detection{{Product: "Whole Milk", Quantity: 2}},
	}
	data, err := json.Marshal(record)
	assert.NoError(t, err)

	store.On("GetObject", mock.Anything, testBucket, "results/analysis_20260830_120000_fridge.json", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(data)), nil)

	// The .json suffix is optional on the route
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/analysis_results/analysis_20260830_120000_fridge", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "20260830_120000_fridge.jpg", body["image_file"])
	assert.Equal(t, "analysis_20260830_120000_fridge.json", body["filename"])
}

func TestHandleListAnalysisResults_Empty(t *testing.T) {
	app, store, _ := setupApp(t, &stubClassifier{})

	ch := make(chan minio.ObjectInfo)
	close(ch)
	store.On("ListObjects", mock.Anything, testBucket, mock.Anything).
		Return((<-chan minio.ObjectInfo)(ch))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/analysis_results", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(string(raw)))
}
