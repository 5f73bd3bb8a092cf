package photo

import (
	"pantry-tracker/core/storage"
	"pantry-tracker/core/vision"
	"pantry-tracker/feature/inventory"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new Photo feature reconciling into the given
// inventory service.
func NewFeature(store storage.Client, bucket string, classifier vision.Classifier, inv *inventory.Service, logger *zap.Logger) *Feature {
	svc := NewService(store, bucket, logger)
	return &Feature{handler: NewHandler(svc, inv, classifier, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "photo"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
