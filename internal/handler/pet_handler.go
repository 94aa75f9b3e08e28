package handler

import (
	"errors"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type PetHandler struct {
	petService service.PetService
}

func NewPetHandler(petService service.PetService) *PetHandler {
	return &PetHandler{petService: petService}
}

// CreatePet registers a new pet under an existing client
// POST /api/v1/pets
func (h *PetHandler) CreatePet(c *fiber.Ctx) error {
	var req model.Pet
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.petService.CreatePet(&req, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Pet created successfully",
		"data":    req,
	})
}

// GetPets returns all pets
// GET /api/v1/pets
func (h *PetHandler) GetPets(c *fiber.Ctx) error {
	pets, err := h.petService.GetAllPets()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch pets"})
	}
	return c.JSON(pets)
}

// GetPet returns a single pet with its owner preloaded
// GET /api/v1/pets/:id
func (h *PetHandler) GetPet(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid pet ID"})
	}

	pet, err := h.petService.GetPetByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Pet not found"})
	}
	return c.JSON(pet)
}

// UpdatePet updates a pet's record
// PUT /api/v1/pets/:id
func (h *PetHandler) UpdatePet(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid pet ID"})
	}

	var req model.Pet
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	pet, err := h.petService.UpdatePet(id, &req, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrPetNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Pet updated successfully",
		"data":    pet,
	})
}

// DeletePet soft-deletes a pet
// DELETE /api/v1/pets/:id
func (h *PetHandler) DeletePet(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid pet ID"})
	}

	if err := h.petService.DeletePet(id, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrPetNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete pet"})
	}

	return c.JSON(fiber.Map{"message": "Pet deleted successfully"})
}
