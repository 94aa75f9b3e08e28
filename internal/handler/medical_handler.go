package handler

import (
	"errors"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type MedicalHandler struct {
	medicalService service.MedicalService
}

func NewMedicalHandler(medicalService service.MedicalService) *MedicalHandler {
	return &MedicalHandler{medicalService: medicalService}
}

// CreateRecord stores a consultation entry in a pet's history
// POST /api/v1/medical-records
func (h *MedicalHandler) CreateRecord(c *fiber.Ctx) error {
	var req model.MedicalRecord
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.medicalService.CreateRecord(&req, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrPetNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Medical record created successfully",
		"data":    req,
	})
}

// GetRecord returns a single medical record
// GET /api/v1/medical-records/:id
func (h *MedicalHandler) GetRecord(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid record ID"})
	}

	record, err := h.medicalService.GetRecordByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Medical record not found"})
	}
	return c.JSON(record)
}

// GetRecordsByPet returns a pet's full clinical history, newest first
// GET /api/v1/pets/:id/medical-records
func (h *MedicalHandler) GetRecordsByPet(c *fiber.Ctx) error {
	petID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid pet ID"})
	}

	records, err := h.medicalService.GetRecordsByPet(petID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch medical records"})
	}
	return c.JSON(records)
}

// AdmitPet opens a hospitalization for a pet
// POST /api/v1/hospitalizations
func (h *MedicalHandler) AdmitPet(c *fiber.Ctx) error {
	var req model.Hospitalization
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.medicalService.AdmitPet(&req, getUserID(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrPetNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyAdmitted):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Pet admitted successfully",
		"data":    req,
	})
}

// DischargePet closes an open hospitalization
// PUT /api/v1/hospitalizations/:id/discharge
func (h *MedicalHandler) DischargePet(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid hospitalization ID"})
	}

	var req struct {
		Summary string `json:"summary"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	hosp, err := h.medicalService.DischargePet(id, req.Summary, getUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrHospitalizationNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrAlreadyDischarged):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to discharge pet"})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Pet discharged successfully",
		"data":    hosp,
	})
}

// GetOpenHospitalizations returns all pets currently admitted
// GET /api/v1/hospitalizations/open
func (h *MedicalHandler) GetOpenHospitalizations(c *fiber.Ctx) error {
	hosps, err := h.medicalService.GetOpenHospitalizations()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch hospitalizations"})
	}
	return c.JSON(hosps)
}

// GetHospitalizationsByPet returns a pet's admission history
// GET /api/v1/pets/:id/hospitalizations
func (h *MedicalHandler) GetHospitalizationsByPet(c *fiber.Ctx) error {
	petID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid pet ID"})
	}

	hosps, err := h.medicalService.GetHospitalizationsByPet(petID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch hospitalizations"})
	}
	return c.JSON(hosps)
}
