package photo

import (
	"errors"
	"io"

	"pantry-tracker/core/logger"
	"pantry-tracker/core/vision"
	"pantry-tracker/feature/inventory"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for photo uploads and analysis results.
type Handler struct {
	photos     *Service
	inventory  *inventory.Service
	classifier vision.Classifier
	logger     *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(photos *Service, inv *inventory.Service, classifier vision.Classifier, logg *zap.Logger) *Handler {
	return &Handler{photos: photos, inventory: inv, classifier: classifier, logger: logg}
}

// RegisterRoutes registers the photo routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Post("/photo_handler", h.HandlePhotoUpload)
	app.Get("/uploads/:filename", h.HandleGetUpload)
	app.Get("/api/analysis_results", h.HandleListAnalysisResults)
	app.Get("/api/analysis_results/:filename", h.HandleGetAnalysisResult)
}

// HandlePhotoUpload stores a photo, classifies it, and reconciles the
// detections into the inventory.
// @Summary Upload Photo
// @Description Store a photo, run the vision classifier, persist the analysis, and reconcile detections into the inventory. A classifier failure keeps the photo and returns 207.
// @Tags photo
// @Accept multipart/form-data
// @Produce json
// @Param photo formData file true "Image file (jpg, jpeg, png, gif)"
// @Success 200 {object} map[string]any "Analysis and reconciled items"
// @Success 207 {object} map[string]any "Photo saved but analysis failed"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /photo_handler [post]
func (h *Handler) HandlePhotoUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No photo uploaded"})
	}
	if fileHeader.Filename == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Empty filename"})
	}
	if !AllowedFile(fileHeader.Filename) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "File type not allowed"})
	}

	file, err := fileHeader.Open()
	if err != nil {
		l.Error("Failed to open uploaded file", zap.Error(err))
		return h.processingFailed(c)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		l.Error("Failed to read uploaded file", zap.Error(err))
		return h.processingFailed(c)
	}

	stored, err := h.photos.SaveUpload(c.Context(), fileHeader.Filename, data)
	if err != nil {
		l.Error("Failed to store photo", zap.Error(err))
		return h.processingFailed(c)
	}

	detections, err := h.classifier.Classify(c.Context(), data)
	if err != nil {
		l.Error("AI analysis failed", zap.String("photo", stored), zap.Error(err))
		return c.Status(fiber.StatusMultiStatus).JSON(fiber.Map{
			"status":     "partial_success",
			"message":    "Photo saved but AI analysis failed",
			"error":      err.Error(),
			"photo_path": "/uploads/" + stored,
		})
	}

	// Fill in estimated shelf life so the stored record and the response
	// carry the days reconciliation will use.
	detections = h.inventory.AnnotateShelfLife(detections)

	if _, err := h.photos.SaveAnalysis(c.Context(), stored, detections); err != nil {
		l.Error("Failed to store analysis", zap.String("photo", stored), zap.Error(err))
		return h.processingFailed(c)
	}

	result := h.inventory.Reconcile(c.Context(), detections, stored)

	return c.JSON(fiber.Map{
		"status":      "success",
		"message":     "Photo analyzed, results saved, and items directly added to database",
		"photo_path":  "/uploads/" + stored,
		"analysis":    detections,
		"added_items": result.Added,
		"skipped":     result.Skipped,
	})
}

// HandleGetUpload serves a stored photo.
// @Summary Get Upload
// @Description Serve a previously stored photo by filename.
// @Tags photo
// @Produce image/jpeg
// @Param filename path string true "Stored filename"
// @Success 200 {file} binary "Photo bytes"
// @Failure 404 {object} map[string]string "File Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /uploads/{filename} [get]
func (h *Handler) HandleGetUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	filename := c.Params("filename")

	data, err := h.photos.GetUpload(c.Context(), filename)
	if err != nil {
		if errors.Is(err, ErrUploadNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "File not found"})
		}
		l.Error("Failed to fetch upload", zap.String("filename", filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch file"})
	}

	c.Set(fiber.HeaderContentType, ContentTypeFor(filename))
	return c.Send(data)
}

// HandleListAnalysisResults lists all stored analysis records.
// @Summary List Analysis Results
// @Description List every stored photo analysis record.
// @Tags photo
// @Produce json
// @Success 200 {array} photo.AnalysisRecord "Analysis Records"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/analysis_results [get]
func (h *Handler) HandleListAnalysisResults(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	records, err := h.photos.ListAnalysisResults(c.Context())
	if err != nil {
		l.Error("Failed to list analysis results", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch analysis results"})
	}

	return c.JSON(records)
}

// HandleGetAnalysisResult fetches one analysis record.
// @Summary Get Analysis Result
// @Description Fetch one photo analysis record by filename; the .json suffix is optional.
// @Tags photo
// @Produce json
// @Param filename path string true "Analysis record filename"
// @Success 200 {object} photo.AnalysisRecord "Analysis Record"
// @Failure 404 {object} map[string]string "Analysis Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/analysis_results/{filename} [get]
func (h *Handler) HandleGetAnalysisResult(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	filename := c.Params("filename")

	record, err := h.photos.GetAnalysisResult(c.Context(), filename)
	if err != nil {
		if errors.Is(err, ErrAnalysisNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Analysis not found"})
		}
		l.Error("Failed to fetch analysis", zap.String("filename", filename), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to fetch analysis"})
	}

	return c.JSON(record)
}

func (h *Handler) processingFailed(c *fiber.Ctx) error {
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"status":  "error",
		"message": "Processing failed",
	})
}
