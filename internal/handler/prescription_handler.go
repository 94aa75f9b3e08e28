package handler

import (
	"errors"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PrescriptionHandler struct {
	prescriptionService service.PrescriptionService
}

func NewPrescriptionHandler(prescriptionService service.PrescriptionService) *PrescriptionHandler {
	return &PrescriptionHandler{prescriptionService: prescriptionService}
}

// CreatePrescription issues a prescription for a pet
// POST /api/v1/prescriptions
func (h *PrescriptionHandler) CreatePrescription(c *fiber.Ctx) error {
	var req service.CreatePrescriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	prescription, err := h.prescriptionService.CreatePrescription(&req, getUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPetNotFound),
			errors.Is(err, service.ErrMedicineNotFound),
			errors.Is(err, service.ErrVetNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Prescription created successfully",
		"data":    prescription,
	})
}

// GetPrescriptions returns all prescriptions
// GET /api/v1/prescriptions
func (h *PrescriptionHandler) GetPrescriptions(c *fiber.Ctx) error {
	prescriptions, err := h.prescriptionService.GetAllPrescriptions()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch prescriptions"})
	}
	return c.JSON(prescriptions)
}

// GetPrescription returns a single prescription with its sales preloaded
// GET /api/v1/prescriptions/:id
func (h *PrescriptionHandler) GetPrescription(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid prescription ID"})
	}

	prescription, err := h.prescriptionService.GetPrescriptionByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Prescription not found"})
	}
	return c.JSON(prescription)
}

// GetPrescriptionsByPet returns a pet's prescription history
// GET /api/v1/pets/:id/prescriptions
func (h *PrescriptionHandler) GetPrescriptionsByPet(c *fiber.Ctx) error {
	petID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid pet ID"})
	}

	prescriptions, err := h.prescriptionService.GetPrescriptionsByPet(petID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch prescriptions"})
	}
	return c.JSON(prescriptions)
}
