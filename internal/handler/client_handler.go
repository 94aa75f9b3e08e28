package handler

import (
	"errors"

	"github.com/Aioros01/veterinaria-sistema-sub000/internal/model"
	"github.com/Aioros01/veterinaria-sistema-sub000/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ClientHandler struct {
	clientService service.ClientService
	petService    service.PetService
}

func NewClientHandler(clientService service.ClientService, petService service.PetService) *ClientHandler {
	return &ClientHandler{clientService: clientService, petService: petService}
}

// CreateClient registers a new pet owner
// POST /api/v1/clients
func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	var req model.Client
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	if err := h.clientService.CreateClient(&req, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrDocumentIDTaken) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(201).JSON(fiber.Map{
		"message": "Client created successfully",
		"data":    req,
	})
}

// GetClients returns all clients
// GET /api/v1/clients
func (h *ClientHandler) GetClients(c *fiber.Ctx) error {
	clients, err := h.clientService.GetAllClients()
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch clients"})
	}
	return c.JSON(clients)
}

// GetClient returns a single client with their pets preloaded
// GET /api/v1/clients/:id
func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	client, err := h.clientService.GetClientByID(id)
	if err != nil {
		return c.Status(404).JSON(fiber.Map{"error": "Client not found"})
	}
	return c.JSON(client)
}

// GetClientPets returns the pets belonging to a client
// GET /api/v1/clients/:id/pets
func (h *ClientHandler) GetClientPets(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	pets, err := h.petService.GetPetsByClient(id)
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to fetch pets"})
	}
	return c.JSON(pets)
}

// UpdateClient updates client contact data
// PUT /api/v1/clients/:id
func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	var req model.Client
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	client, err := h.clientService.UpdateClient(id, &req, getUserID(c))
	if err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		if errors.Is(err, service.ErrDocumentIDTaken) {
			return c.Status(409).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(400).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"message": "Client updated successfully",
		"data":    client,
	})
}

// DeleteClient soft-deletes a client
// DELETE /api/v1/clients/:id
func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	id, err := parseUUID(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid client ID"})
	}

	if err := h.clientService.DeleteClient(id, getUserID(c)); err != nil {
		if errors.Is(err, service.ErrClientNotFound) {
			return c.Status(404).JSON(fiber.Map{"error": err.Error()})
		}
		return c.Status(500).JSON(fiber.Map{"error": "Failed to delete client"})
	}

	return c.JSON(fiber.Map{"message": "Client deleted successfully"})
}
