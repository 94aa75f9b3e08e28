package handler

import (
	"errors"
	"strconv"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// CreateMedicine registers a new medicine in the catalog
// POST /api/v1/medicines
func (h *InventoryHandler) CreateMedicine(c *fiber.Ctx) error {
	var req model.Medicine
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.inventoryService.CreateMedicine(&req, getUserID(c), getUserName(c)); err != nil {
		if errors.Is(err, service.ErrMedicineNameTaken) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Medicine created successfully",
		"data":    req,
	})
}

// GetMedicines returns the full catalog
// GET /api/v1/medicines
func (h *InventoryHandler) GetMedicines(c *fiber.Ctx) error {
	medicines, err := h.inventoryService.GetAllMedicines()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch medicines"})
	}
	return c.JSON(medicines)
}

// GetMedicine returns a single medicine
// GET /api/v1/medicines/:id
func (h *InventoryHandler) GetMedicine(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid medicine ID"})
	}

	medicine, err := h.inventoryService.GetMedicineByID(id)
	if err != nil {
		if errors.Is(err, service.ErrMedicineNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch medicine"})
	}
	return c.JSON(medicine)
}

// UpdateMedicine updates catalog data for a medicine
// PUT /api/v1/medicines/:id
func (h *InventoryHandler) UpdateMedicine(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid medicine ID"})
	}

	var req model.Medicine
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	medicine, err := h.inventoryService.UpdateMedicine(id, &req, getUserID(c), getUserName(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMedicineNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrMedicineNameTaken):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Medicine updated successfully",
		"data":    medicine,
	})
}

// AdjustStock applies a manual stock correction or restock
// POST /api/v1/medicines/:id/adjust-stock
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid medicine ID"})
	}

	var req struct {
		Quantity int    `json:"quantity"`
		Reason   string `json:"reason"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	medicine, err := h.inventoryService.AdjustStock(id, req.Quantity, req.Reason, getUserID(c), getUserName(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMedicineNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrInsufficientStock), errors.Is(err, service.ErrInvalidAdjustment):
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to adjust stock"})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Stock adjusted successfully",
		"data":    medicine,
	})
}

// GetLowStock returns medicines at or below their minimum stock level
// GET /api/v1/medicines/low-stock
func (h *InventoryHandler) GetLowStock(c *fiber.Ctx) error {
	medicines, err := h.inventoryService.GetLowStock()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch low stock medicines"})
	}
	return c.JSON(medicines)
}

// GetExpiring returns medicines expiring within ?days= (default 30)
// GET /api/v1/medicines/expiring
func (h *InventoryHandler) GetExpiring(c *fiber.Ctx) error {
	days := 30
	if v := c.Query("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid days parameter"})
		}
		days = parsed
	}

	medicines, err := h.inventoryService.GetExpiring(days)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch expiring medicines"})
	}
	return c.JSON(medicines)
}
