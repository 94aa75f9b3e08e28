package handler

import (
	"errors"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ConsentHandler struct {
	consentService service.ConsentService
}

func NewConsentHandler(consentService service.ConsentService) *ConsentHandler {
	return &ConsentHandler{consentService: consentService}
}

// CreateConsent opens a consent document pending the owner's signature
// POST /api/v1/consents
func (h *ConsentHandler) CreateConsent(c *fiber.Ctx) error {
	var req model.ConsentDocument
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.consentService.CreateConsent(&req, getUserID(c)); err != nil {
		switch {
		case errors.Is(err, service.ErrPetNotFound), errors.Is(err, service.ErrClientNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Consent document created successfully",
		"data":    req,
	})
}

// SignConsent records the owner's signature on a pending document
// PUT /api/v1/consents/:id/sign
func (h *ConsentHandler) SignConsent(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid consent ID"})
	}

	var req struct {
		SignedBy string `json:"signedBy"`
		FileKey  string `json:"fileKey"`
		FileName string `json:"fileName"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	doc, err := h.consentService.SignConsent(id, req.SignedBy, req.FileKey, req.FileName, getUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConsentNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrConsentFinalized):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Consent signed successfully",
		"data":    doc,
	})
}

// RejectConsent marks a pending document as rejected by the owner
// PUT /api/v1/consents/:id/reject
func (h *ConsentHandler) RejectConsent(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid consent ID"})
	}

	doc, err := h.consentService.RejectConsent(id, getUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrConsentNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrConsentFinalized):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to reject consent"})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Consent rejected",
		"data":    doc,
	})
}

// GetConsent returns a single consent document
// GET /api/v1/consents/:id
func (h *ConsentHandler) GetConsent(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid consent ID"})
	}

	doc, err := h.consentService.GetConsentByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Consent document not found"})
	}
	return c.JSON(doc)
}

// GetPendingConsents returns documents still awaiting a signature
// GET /api/v1/consents/pending
func (h *ConsentHandler) GetPendingConsents(c *fiber.Ctx) error {
	docs, err := h.consentService.GetPendingConsents()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch consents"})
	}
	return c.JSON(docs)
}

// GetConsentsByPet returns every consent document on file for a pet
// GET /api/v1/pets/:id/consents
func (h *ConsentHandler) GetConsentsByPet(c *fiber.Ctx) error {
	petID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid pet ID"})
	}

	docs, err := h.consentService.GetConsentsByPet(petID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch consents"})
	}
	return c.JSON(docs)
}
