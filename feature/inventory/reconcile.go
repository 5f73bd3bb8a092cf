package inventory

import (
	"context"
	"math"
	"strings"
	"time"

	"pantry-tracker/core/vision"
	"pantry-tracker/feature/inventory/estimate"
	"pantry-tracker/feature/inventory/models"

	"go.uber.org/zap"
)

// SkippedDetection describes a detection excluded from reconciliation.
type SkippedDetection struct {
	// Product is the detection's product label, possibly empty.
	Product string `json:"product"`
	// Reason explains why the detection was skipped.
	Reason string `json:"reason"`
}

// ReconcileResult is the outcome of reconciling one detection batch.
type ReconcileResult struct {
	// Added contains the canonical persisted record for every accepted
	// detection, whether merged into an existing lot or newly created.
	Added []models.ItemResponse `json:"added_items"`
	// Skipped lists detections excluded by validation or storage failure.
	Skipped []SkippedDetection `json:"skipped"`
}

// Reconciler applies detection batches to the inventory store.
type Reconciler struct {
	repo      *Repository
	estimator *estimate.Estimator
	logger    *zap.Logger
}

// NewReconciler creates a reconciler over the given repository.
func NewReconciler(repo *Repository, estimator *estimate.Estimator, logger *zap.Logger) *Reconciler {
	return &Reconciler{repo: repo, estimator: estimator, logger: logger}
}

// Reconcile merges each detection into the inventory or inserts a new lot.
//
// Per detection: the product must be non-empty and the quantity a whole
// non-negative number; the shelf life comes from the detection when present,
// otherwise from the estimator. A lot with the same name expiring within one
// day of the target date absorbs the quantity; anything else becomes a new
// record. Invalid detections and per-detection storage failures are logged,
// reported in Skipped, and never abort the rest of the batch.
func (r *Reconciler) Reconcile(ctx context.Context, detections []vision.Detection, imageRef string) ReconcileResult {
	result := ReconcileResult{
		Added:   []models.ItemResponse{},
		Skipped: []SkippedDetection{},
	}

	for _, det := range detections {
		name := strings.TrimSpace(det.Product)
		if name == "" {
			r.skip(&result, det.Product, "missing product name")
			continue
		}

		quantity, ok := wholeNumber(det.Quantity)
		if !ok || quantity < 0 {
			r.skip(&result, name, "quantity must be a non-negative integer")
			continue
		}

		var days int
		if det.Expiration != nil {
			d, ok := wholeNumber(*det.Expiration)
			if !ok || d < 0 {
				r.skip(&result, name, "expiration must be a non-negative integer")
				continue
			}
			days = d
		} else {
			days = r.estimator.Days(name)
		}

		target := time.Now().AddDate(0, 0, days)

		item, merged, err := r.repo.MergeOrInsert(ctx, name, quantity, target, imageRef)
		if err != nil {
			r.logger.Error("Failed to persist detection",
				zap.String("product", name),
				zap.Error(err),
			)
			result.Skipped = append(result.Skipped, SkippedDetection{Product: name, Reason: "storage failure"})
			continue
		}

		if merged {
			r.logger.Info("Merged detection into existing item",
				zap.String("product", name),
				zap.Int("quantity", item.Quantity),
			)
		} else {
			r.logger.Info("Added new item from detection",
				zap.String("product", name),
				zap.Int("quantity", item.Quantity),
			)
		}
		result.Added = append(result.Added, models.NewItemResponse(*item))
	}

	return result
}

func (r *Reconciler) skip(result *ReconcileResult, product, reason string) {
	r.logger.Warn("Skipping invalid detection",
		zap.String("product", product),
		zap.String("reason", reason),
	)
	result.Skipped = append(result.Skipped, SkippedDetection{Product: product, Reason: reason})
}

// wholeNumber reports whether a JSON number is a whole number and converts it.
func wholeNumber(f float64) (int, bool) {
	if f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}
