package handler

import (
	"errors"
	"strconv"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type SaleHandler struct {
	saleService service.SaleService
}

func NewSaleHandler(saleService service.SaleService) *SaleHandler {
	return &SaleHandler{saleService: saleService}
}

// saleErrorStatus maps sale service errors onto HTTP status codes
func saleErrorStatus(err error) int {
	switch {
	case errors.Is(err, service.ErrMedicineNotFound),
		errors.Is(err, service.ErrPrescriptionNotFound),
		errors.Is(err, service.ErrSaleNotFound):
		return 404
	case errors.Is(err, service.ErrPrescriptionAlreadyFulfilled):
		return 409
	case errors.Is(err, service.ErrInsufficientStock),
		errors.Is(err, service.ErrInvalidDiscount),
		errors.Is(err, service.ErrInvalidSplit),
		errors.Is(err, service.ErrExternalPharmacyRequired),
		errors.Is(err, service.ErrPrescriptionMedicineMismatch):
		return 400
	default:
		return 400
	}
}

// CreateSale registers a direct (over-the-counter) medicine sale
// POST /api/v1/sales
func (h *SaleHandler) CreateSale(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	sale, err := h.saleService.ProcessSale(&req, getUserID(c), getUserName(c), getUserEmail(c))
	if err != nil {
		return c.Status(saleErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Sale registered successfully",
		"data":    sale,
	})
}

// CreateSaleFromPrescription registers a sale that fulfills a prescription.
// Same pipeline as CreateSale but the prescription reference is mandatory.
// POST /api/v1/sales/from-prescription
func (h *SaleHandler) CreateSaleFromPrescription(c *fiber.Ctx) error {
	var req service.SaleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}
	if req.PrescriptionID == nil || *req.PrescriptionID == "" {
		return c.Status(400).JSON(fiber.Map{"error": "prescription_id is required"})
	}

	sale, err := h.saleService.ProcessSale(&req, getUserID(c), getUserName(c), getUserEmail(c))
	if err != nil {
		return c.Status(saleErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Prescription sale registered successfully",
		"data":    sale,
	})
}

// GetSales returns all sales, newest first
// GET /api/v1/sales
func (h *SaleHandler) GetSales(c *fiber.Ctx) error {
	sales, err := h.saleService.GetAllSales()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch sales"})
	}
	return c.JSON(sales)
}

// GetSale returns a single sale
// GET /api/v1/sales/:id
func (h *SaleHandler) GetSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	sale, err := h.saleService.GetSaleByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Sale not found"})
	}
	return c.JSON(sale)
}

// VoidSale cancels a sale, returning its in-clinic units to stock
// DELETE /api/v1/sales/:id
func (h *SaleHandler) VoidSale(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid sale ID"})
	}

	if err := h.saleService.VoidSale(id, getUserID(c), getUserName(c)); err != nil {
		return c.Status(saleErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"message": "Sale voided successfully"})
}

// GetSplitSuggestion previews how a requested quantity would be split
// against current stock, without committing anything.
// GET /api/v1/sales/split-suggestion?medicine_id=...&quantity=...
func (h *SaleHandler) GetSplitSuggestion(c *fiber.Ctx) error {
	medicineID, err := parseUUID(c.Query("medicine_id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid medicine ID"})
	}

	quantity, err := strconv.Atoi(c.Query("quantity"))
	if err != nil || quantity <= 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Quantity must be a positive integer"})
	}

	suggestion, err := h.saleService.SuggestSplit(medicineID, quantity)
	if err != nil {
		return c.Status(saleErrorStatus(err)).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(suggestion)
}
