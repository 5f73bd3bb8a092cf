package inventory

import (
	"context"
	"strings"
	"time"

	"pantry-tracker/core/vision"
	"pantry-tracker/feature/inventory/estimate"
	"pantry-tracker/feature/inventory/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// AddItemInput carries the fields of a manual item creation.
type AddItemInput struct {
	Name       string
	Category   string
	ExpiryDate string
	Quantity   int
	Unit       string
}

// Service handles inventory operations.
type Service struct {
	repo       *Repository
	reconciler *Reconciler
	logger     *zap.Logger
}

// NewService creates a new inventory service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	repo := NewRepository(db)
	estimator := estimate.New(logger)
	return &Service{
		repo:       repo,
		reconciler: NewReconciler(repo, estimator, logger),
		logger:     logger,
	}
}

// List returns items matching an optional case-insensitive name substring,
// optionally sorted by expiration date ascending.
func (s *Service) List(ctx context.Context, search string, sortByExpiry bool) ([]models.ItemResponse, error) {
	items, err := s.repo.List(ctx, search, sortByExpiry)
	if err != nil {
		return nil, err
	}
	return models.NewItemResponses(items), nil
}

// AddManual creates an item from the CRUD API.
// The category is stored lowercased, matching the historical behavior the
// read side relies on for filtering.
func (s *Service) AddManual(ctx context.Context, input AddItemInput) (*models.ItemResponse, error) {
	expiry, err := time.Parse(models.DateLayout, input.ExpiryDate)
	if err != nil {
		return nil, ErrInvalidExpiryDate
	}
	if input.Quantity < 0 {
		return nil, ErrInvalidQuantity
	}

	item := &models.InventoryItem{
		Name:           input.Name,
		Category:       strings.ToLower(input.Category),
		Quantity:       input.Quantity,
		Unit:           input.Unit,
		ExpirationDate: expiry,
		AddedOn:        time.Now(),
		Source:         models.SourceManual,
	}

	stored, err := s.repo.Insert(ctx, item)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Added item manually", zap.String("name", stored.Name), zap.String("id", stored.ID))
	resp := models.NewItemResponse(*stored)
	return &resp, nil
}

// Decrement reduces an item's quantity by one; at quantity one the record
// is deleted instead. The returned flag reports deletion.
func (s *Service) Decrement(ctx context.Context, id string) (*models.ItemResponse, bool, error) {
	item, deleted, err := s.repo.Decrement(ctx, id)
	if err != nil {
		return nil, false, err
	}
	resp := models.NewItemResponse(*item)
	return &resp, deleted, nil
}

// Increment raises an item's quantity by one.
func (s *Service) Increment(ctx context.Context, id string) (*models.ItemResponse, error) {
	item, err := s.repo.Increment(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := models.NewItemResponse(*item)
	return &resp, nil
}

// UpdateExpiry overwrites an item's expiration date.
func (s *Service) UpdateExpiry(ctx context.Context, id, expiryDate string) (*models.ItemResponse, error) {
	expiry, err := time.Parse(models.DateLayout, expiryDate)
	if err != nil {
		return nil, ErrInvalidExpiryDate
	}

	item, err := s.repo.UpdateExpiry(ctx, id, expiry)
	if err != nil {
		return nil, err
	}
	resp := models.NewItemResponse(*item)
	return &resp, nil
}

// AnnotateShelfLife fills each detection's missing expiration with the
// estimator's shelf life in days, so persisted analysis records and API
// responses carry the figure reconciliation will use. Detections that
// already carry an expiration, or have no product name, are left alone.
func (s *Service) AnnotateShelfLife(detections []vision.Detection) []vision.Detection {
	out := make([]vision.Detection, len(detections))
	copy(out, detections)
	for i := range out {
		if out[i].Expiration != nil || strings.TrimSpace(out[i].Product) == "" {
			continue
		}
		days := float64(s.reconciler.estimator.Days(out[i].Product))
		out[i].Expiration = &days
	}
	return out
}

// Reconcile applies a detection batch against the inventory (see Reconciler).
func (s *Service) Reconcile(ctx context.Context, detections []vision.Detection, imageRef string) ReconcileResult {
	return s.reconciler.Reconcile(ctx, detections, imageRef)
}
