package inventory

import (
	"errors"
	"fmt"

	"pantry-tracker/core/logger"
	"pantry-tracker/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for inventory items.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logg *zap.Logger) *Handler {
	return &Handler{service: service, logger: logg}
}

// RegisterRoutes registers the inventory routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api/items")
	group.Get("/", h.HandleListItems)
	group.Post("/", h.HandleAddItem)
	group.Delete("/:id", h.HandleDecrementItem)
	group.Post("/:id/increment", h.HandleIncrementItem)
	group.Patch("/:id/update_expiry", h.HandleUpdateExpiry)
}

// HandleListItems lists inventory items.
// @Summary List Items
// @Description List inventory items, optionally filtered by a name substring and sorted by expiration.
// @Tags items
// @Produce json
// @Param search query string false "Case-insensitive name substring"
// @Param sorted query bool false "Sort by expiration date ascending"
// @Success 200 {array} models.ItemResponse "Items"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/items [get]
func (h *Handler) HandleListItems(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	search := c.Query("search")
	sorted := utils.ToBool(c.Query("sorted"))

	items, err := h.service.List(c.Context(), search, sorted)
	if err != nil {
		l.Error("Failed to list items", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to fetch items",
		})
	}

	return c.JSON(items)
}

// HandleAddItem creates an item manually.
// @Summary Add Item
// @Description Create an inventory item from explicit fields.
// @Tags items
// @Accept json
// @Produce json
// @Param item body object true "name, category, expiryDate (YYYY-MM-DD), quantity, unit"
// @Success 201 {object} models.ItemResponse "Created Item"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/items [post]
func (h *Handler) HandleAddItem(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)

	var data map[string]any
	if err := c.BodyParser(&data); err != nil || len(data) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No data provided",
		})
	}

	for _, field := range []string{"name", "category", "expiryDate", "quantity", "unit"} {
		if _, ok := data[field]; !ok {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("Missing field: %s", field),
			})
		}
	}

	input := AddItemInput{
		Name:       utils.ToString(data["name"]),
		Category:   utils.ToString(data["category"]),
		ExpiryDate: utils.ToString(data["expiryDate"]),
		Quantity:   utils.ToInt(data["quantity"]),
		Unit:       utils.ToString(data["unit"]),
	}

	item, err := h.service.AddManual(c.Context(), input)
	if err != nil {
		if errors.Is(err, ErrInvalidExpiryDate) || errors.Is(err, ErrInvalidQuantity) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		l.Error("Failed to add item", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to add item",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleDecrementItem decrements an item's quantity or deletes it.
// @Summary Decrement Item
// @Description Reduce quantity by one; a quantity of one deletes the record.
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} map[string]any "Updated Item or Deletion Message"
// @Failure 404 {object} map[string]string "Item Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/items/{id} [delete]
func (h *Handler) HandleDecrementItem(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	id := c.Params("id")

	item, deleted, err := h.service.Decrement(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found."})
		}
		l.Error("Failed to decrement item", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update item",
		})
	}

	if deleted {
		return c.JSON(fiber.Map{
			"message": fmt.Sprintf("Item %s deleted successfully.", item.Name),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Quantity of %s reduced by 1", item.Name),
		"item":    item,
	})
}

// HandleIncrementItem increments an item's quantity.
// @Summary Increment Item
// @Description Raise quantity by one.
// @Tags items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} map[string]any "Updated Item"
// @Failure 404 {object} map[string]string "Item Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/items/{id}/increment [post]
func (h *Handler) HandleIncrementItem(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	id := c.Params("id")

	item, err := h.service.Increment(c.Context(), id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found."})
		}
		l.Error("Failed to increment item", zap.String("id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to update item",
		})
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Quantity of %s increased by 1", item.Name),
		"item":    item,
	})
}

// HandleUpdateExpiry overwrites an item's expiration date.
// @Summary Update Expiry
// @Description Overwrite the expiration date with a caller-supplied YYYY-MM-DD value.
// @Tags items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param body body object true "expiryDate (YYYY-MM-DD)"
// @Success 200 {object} map[string]any "Updated Item"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 404 {object} map[string]string "Item Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /api/items/{id}/update_expiry [patch]
func (h *Handler) HandleUpdateExpiry(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	id := c.Params("id")

	var data map[string]any
	if err := c.BodyParser(&data); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "No data provided"})
	}
	raw, ok := data["expiryDate"]
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Missing expiryDate field."})
	}

	item, err := h.service.UpdateExpiry(c.Context(), id, utils.ToString(raw))
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidExpiryDate):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, ErrItemNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Item not found."})
		default:
			l.Error("Failed to update expiry", zap.String("id", id), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to update item",
			})
		}
	}

	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Expiry date updated for %s", item.Name),
		"item":    item,
	})
}
