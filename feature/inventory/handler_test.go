package inventory_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"pantry-tracker/feature/inventory"
	"pantry-tracker/feature/inventory/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func setupApp(t *testing.T) (*fiber.App, *inventory.Service) {
	t.Helper()
	db := setupDB(t)
	svc := inventory.NewService(db, zap.NewNop())
	app := fiber.New()
	inventory.NewHandler(svc, zap.NewNop()).RegisterRoutes(app)
	return app, svc
}

func jsonRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
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

func TestHandleAddItem(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/items/", fiber.Map{
		"name":       "Rice",
		"category":   "Grains",
		"expiryDate": "2027-01-15",
		"quantity":   3,
		"unit":       "kg",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Rice", body["name"])
	assert.Equal(t, "grains", body["category"])
	assert.Equal(t, "2027-01-15", body["expiryDate"])
	assert.Equal(t, float64(3), body["quantity"])
	assert.Equal(t, models.SourceManual, body["source"])
}

func TestHandleAddItem_MissingField(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/items/", fiber.Map{
		"name":       "Rice",
		"category":   "grains",
		"expiryDate": "2027-01-15",
		"quantity":   3,
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing field: unit", decodeBody(t, resp)["error"])
}

func TestHandleAddItem_EmptyBody(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/items/", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "No data provided", decodeBody(t, resp)["error"])
}

func TestHandleAddItem_BadDate(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(jsonRequest(fiber.MethodPost, "/api/items/", fiber.Map{
		"name":       "Rice",
		"category":   "grains",
		"expiryDate": "15/01/2027",
		"quantity":   3,
		"unit":       "kg",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleListItems(t *testing.T) {
	app, svc := setupApp(t)

	seed := []inventory.AddItemInput{
		{Name: "Whole Milk", Category: "dairy", ExpiryDate: "2027-03-01", Quantity: 1, Unit: "liters"},
		{Name: "Oat Milk", Category: "dairy", ExpiryDate: "2027-01-01", Quantity: 1, Unit: "liters"},
		{Name: "Bread", Category: "bakery", ExpiryDate: "2027-02-01", Quantity: 1, Unit: "loaves"},
	}
	for _, in := range seed {
		_, err := svc.AddManual(context.Background(), in)
		assert.NoError(t, err)
	}

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/api/items/?search=milk&sorted=true", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	raw, err := io.ReadAll(resp.Body)
	assert.NoError(t, err)
	var items []models.ItemResponse
	assert.NoError(t, json.Unmarshal(raw, &items))
	assert.Len(t, items, 2)
	assert.Equal(t, "Oat Milk", items[0].Name)
	assert.Equal(t, "Whole Milk", items[1].Name)
}

func TestHandleDecrementItem(t *testing.T) {
	app, svc := setupApp(t)

	item, err := svc.AddManual(context.Background(), inventory.AddItemInput{
		Name: "Eggs", Category: "dairy", ExpiryDate: "2027-01-15", Quantity: 2, Unit: "units",
	})
	assert.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/items/"+item.ID, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Quantity of Eggs reduced by 1", decodeBody(t, resp)["message"])

	resp, err = app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/items/"+item.ID, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "Item Eggs deleted successfully.", decodeBody(t, resp)["message"])

	resp, err = app.Test(httptest.NewRequest(fiber.MethodDelete, "/api/items/"+item.ID, nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Item not found.", decodeBody(t, resp)["error"])
}

func TestHandleIncrementItem(t *testing.T) {
	app, svc := setupApp(t)

	item, err := svc.AddManual(context.Background(), inventory.AddItemInput{
		Name: "Eggs", Category: "dairy", ExpiryDate: "2027-01-15", Quantity: 2, Unit: "units",
	})
	assert.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/items/"+item.ID+"/increment", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Quantity of Eggs increased by 1", body["message"])
	updated := body["item"].(map[string]any)
	assert.Equal(t, float64(3), updated["quantity"])
}

func TestHandleIncrementItem_NotFound(t *testing.T) {
	app, _ := setupApp(t)

	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/api/items/nope/increment", nil))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleUpdateExpiry(t *testing.T) {
	app, svc := setupApp(t)

	item, err := svc.AddManual(context.Background(), inventory.AddItemInput{
		Name: "Eggs", Category: "dairy", ExpiryDate: "2027-01-15", Quantity: 2, Unit: "units",
	})
	assert.NoError(t, err)

	resp, err := app.Test(jsonRequest(fiber.MethodPatch, "/api/items/"+item.ID+"/update_expiry", fiber.Map{
		"expiryDate": "2027-02-01",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "Expiry date updated for Eggs", body["message"])
	updated := body["item"].(map[string]any)
	assert.Equal(t, "2027-02-01", updated["expiryDate"])
}

func TestHandleUpdateExpiry_Validation(t *testing.T) {
	app, svc := setupApp(t)

	item, err := svc.AddManual(context.Background(), inventory.AddItemInput{
		Name: "Eggs", Category: "dairy", ExpiryDate: "2027-01-15", Quantity: 2, Unit: "units",
	})
	assert.NoError(t, err)

	resp, err := app.Test(jsonRequest(fiber.MethodPatch, "/api/items/"+item.ID+"/update_expiry", fiber.Map{
		"other": "x",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Missing expiryDate field.", decodeBody(t, resp)["error"])

	resp, err = app.Test(jsonRequest(fiber.MethodPatch, "/api/items/"+item.ID+"/update_expiry", fiber.Map{
		"expiryDate": "bogus",
	}))
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}
