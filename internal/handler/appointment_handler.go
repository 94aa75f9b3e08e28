package handler

import (
	"errors"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AppointmentHandler struct {
	appointmentService service.AppointmentService
}

func NewAppointmentHandler(appointmentService service.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// CreateAppointment schedules a visit for a pet with a veterinarian
// POST /api/v1/appointments
func (h *AppointmentHandler) CreateAppointment(c *fiber.Ctx) error {
	var req service.CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	appt, err := h.appointmentService.CreateAppointment(&req, getUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPetNotFound), errors.Is(err, service.ErrVetNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrAppointmentConflict):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(400).JSON(fiber.Map{"error": err.Error()})
		}
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Appointment scheduled successfully",
		"data":    appt,
	})
}

// GetAppointments returns all appointments
// GET /api/v1/appointments
func (h *AppointmentHandler) GetAppointments(c *fiber.Ctx) error {
	appts, err := h.appointmentService.GetAllAppointments()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch appointments"})
	}
	return c.JSON(appts)
}

// GetAppointment returns a single appointment
// GET /api/v1/appointments/:id
func (h *AppointmentHandler) GetAppointment(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	appt, err := h.appointmentService.GetAppointmentByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Appointment not found"})
	}
	return c.JSON(appt)
}

// CompleteAppointment marks a scheduled appointment as completed
// PUT /api/v1/appointments/:id/complete
func (h *AppointmentHandler) CompleteAppointment(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	var req struct {
		Notes string `json:"notes"`
	}
	if err := c.BodyParser(&req); err != nil && len(c.Body()) > 0 {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	appt, err := h.appointmentService.CompleteAppointment(id, req.Notes, getUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppointmentNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrAppointmentFinalized):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to complete appointment"})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Appointment completed",
		"data":    appt,
	})
}

// CancelAppointment cancels a scheduled appointment
// PUT /api/v1/appointments/:id/cancel
func (h *AppointmentHandler) CancelAppointment(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid appointment ID"})
	}

	appt, err := h.appointmentService.CancelAppointment(id, getUserID(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAppointmentNotFound):
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		case errors.Is(err, service.ErrAppointmentFinalized):
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		default:
			return c.Status(500).JSON(fiber.Map{"error": "Failed to cancel appointment"})
		}
	}

	return c.JSON(fiber.Map{
		"message": "Appointment cancelled",
		"data":    appt,
	})
}

// GetAppointmentsByPet returns a pet's appointment history
// GET /api/v1/pets/:id/appointments
func (h *AppointmentHandler) GetAppointmentsByPet(c *fiber.Ctx) error {
	petID, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid pet ID"})
	}

	appts, err := h.appointmentService.GetAppointmentsByPet(petID)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch appointments"})
	}
	return c.JSON(appts)
}
