package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DateLayout is the wire format for expiration dates.
const DateLayout = "2006-01-02"

const (
	// SourceManual marks records created through the CRUD API.
	SourceManual = "manual"
	// SourcePhotoAnalysis marks records created by photo reconciliation.
	SourcePhotoAnalysis = "photo_analysis"
	// CategoryAIDetected is the category assigned to reconciled detections.
	CategoryAIDetected = "ai_detected"
	// DefaultUnit is the unit assigned to reconciled detections.
	DefaultUnit = "units"
)

// InventoryItem is one inventory record (a single lot of a product).
// Records with the same name but expiration dates more than one day apart
// are distinct lots.
type InventoryItem struct {
	ID             string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name           string    `gorm:"size:255;index" json:"name"`
	Category       string    `gorm:"size:100" json:"category"`
	Quantity       int       `json:"quantity"`
	Unit           string    `gorm:"size:50" json:"unit"`
	ExpirationDate time.Time `gorm:"index" json:"expiration_date"`
	AddedOn        time.Time `json:"added_on"`
	Source         string    `gorm:"size:50" json:"source,omitempty"`
	ImageFile      string    `gorm:"size:255" json:"image_file,omitempty"`
}

// TableName maps the model to the items table.
func (InventoryItem) TableName() string {
	return "items"
}

// BeforeCreate assigns a UUID primary key when none is set.
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// ItemResponse is the API representation of an inventory item.
// The expiration date is rendered as YYYY-MM-DD.
type ItemResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Quantity   int       `json:"quantity"`
	Unit       string    `json:"unit"`
	ExpiryDate string    `json:"expiryDate"`
	AddedOn    time.Time `json:"added_on"`
	Source     string    `json:"source,omitempty"`
	ImageFile  string    `json:"image_file,omitempty"`
}

// NewItemResponse converts a stored item into its API representation.
func NewItemResponse(item InventoryItem) ItemResponse {
	category := item.Category
	if category == "" {
		category = "other"
	}
	return ItemResponse{
		ID:         item.ID,
		Name:       item.Name,
		Category:   category,
		Quantity:   item.Quantity,
		Unit:       item.Unit,
		ExpiryDate: item.ExpirationDate.Format(DateLayout),
		AddedOn:    item.AddedOn,
		Source:     item.Source,
		ImageFile:  item.ImageFile,
	}
}

// NewItemResponses converts a slice of stored items.
func NewItemResponses(items []InventoryItem) []ItemResponse {
	out := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, NewItemResponse(item))
	}
	return out
}
