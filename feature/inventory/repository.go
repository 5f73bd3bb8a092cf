package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"pantry-tracker/feature/inventory/models"

	"gorm.io/gorm"
)

// Repository provides data access for inventory items.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new inventory repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates or updates the items table.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.InventoryItem{})
}

// List returns items, optionally filtered by a case-insensitive name
// substring and optionally ordered by expiration date ascending.
func (r *Repository) List(ctx context.Context, search string, sortByExpiry bool) ([]models.InventoryItem, error) {
	q := r.db.WithContext(ctx).Model(&models.InventoryItem{})
	if search != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(search)+"%")
	}
	if sortByExpiry {
		q = q.Order("expiration_date ASC")
	}

	var items []models.InventoryItem
	if err := q.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID returns a single item or ErrItemNotFound.
func (r *Repository) FindByID(ctx context.Context, id string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Insert persists a new item and returns the stored record.
func (r *Repository) Insert(ctx context.Context, item *models.InventoryItem) (*models.InventoryItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	// Read back the canonical persisted record
	var stored models.InventoryItem
	if err := r.db.WithContext(ctx).First(&stored, "id = ?", item.ID).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

// MergeOrInsert merges a detection into an existing lot or inserts a new
// record, in one transaction. A lot matches when the name is equal and its
// expiration date lies within one day of the target. On merge the existing
// expiration date is kept; only quantity and added_on change.
func (r *Repository) MergeOrInsert(ctx context.Context, name string, quantity int, target time.Time, imageRef string) (*models.InventoryItem, bool, error) {
	var out models.InventoryItem
	var merged bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.InventoryItem
		err := tx.
			Where("name = ? AND expiration_date >= ? AND expiration_date <= ?",
				name, target.AddDate(0, 0, -1), target.AddDate(0, 0, 1)).
			First(&existing).Error

		switch {
		case err == nil:
			merged = true
			updates := map[string]any{
				"quantity": existing.Quantity + quantity,
				"added_on": time.Now(),
			}
			if err := tx.Model(&models.InventoryItem{}).Where("id = ?", existing.ID).Updates(updates).Error; err != nil {
				return err
			}
			return tx.First(&out, "id = ?", existing.ID).Error

		case errors.Is(err, gorm.ErrRecordNotFound):
			item := models.InventoryItem{
				Name:           name,
				Category:       models.CategoryAIDetected,
				Quantity:       quantity,
				Unit:           models.DefaultUnit,
				ExpirationDate: target,
				AddedOn:        time.Now(),
				Source:         models.SourcePhotoAnalysis,
				ImageFile:      imageRef,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
			return tx.First(&out, "id = ?", item.ID).Error

		default:
			return err
		}
	})
	if err != nil {
		return nil, false, err
	}
	return &out, merged, nil
}

// Decrement reduces an item's quantity by one, deleting the record when the
// quantity was one or less. The returned flag reports deletion.
func (r *Repository) Decrement(ctx context.Context, id string) (*models.InventoryItem, bool, error) {
	var out models.InventoryItem
	var deleted bool

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		if item.Quantity > 1 {
			updates := map[string]any{
				"quantity": item.Quantity - 1,
				"added_on": time.Now(),
			}
			if err := tx.Model(&models.InventoryItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return err
			}
			return tx.First(&out, "id = ?", id).Error
		}

		deleted = true
		out = item
		return tx.Delete(&models.InventoryItem{}, "id = ?", id).Error
	})
	if err != nil {
		return nil, false, err
	}
	return &out, deleted, nil
}

// Increment raises an item's quantity by one.
func (r *Repository) Increment(ctx context.Context, id string) (*models.InventoryItem, error) {
	var out models.InventoryItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		updates := map[string]any{
			"quantity": item.Quantity + 1,
			"added_on": time.Now(),
		}
		if err := tx.Model(&models.InventoryItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateExpiry overwrites an item's expiration date.
func (r *Repository) UpdateExpiry(ctx context.Context, id string, expiry time.Time) (*models.InventoryItem, error) {
	var out models.InventoryItem

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.InventoryItem
		if err := tx.First(&item, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrItemNotFound
			}
			return err
		}

		updates := map[string]any{
			"expiration_date": expiry,
			"added_on":        time.Now(),
		}
		if err := tx.Model(&models.InventoryItem{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&out, "id = ?", id).Error
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}
