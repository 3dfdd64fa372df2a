package handlers

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/imf-ops/gadget-api/internal/dto"
	"github.com/imf-ops/gadget-api/internal/generators"
	"github.com/imf-ops/gadget-api/internal/models"
	"github.com/imf-ops/gadget-api/internal/services"
)

type GadgetHandler struct {
	gadgetService *services.GadgetService
	gen           *generators.Generator
}

func NewGadgetHandler(gadgetService *services.GadgetService, gen *generators.Generator) *GadgetHandler {
	return &GadgetHandler{gadgetService: gadgetService, gen: gen}
}

// decorate attaches a freshly drawn mission success probability. Recomputed
// on every read, never persisted.
func (h *GadgetHandler) decorate(gadget models.Gadget) dto.GadgetResponse {
	return dto.GadgetResponse{
		Gadget:                    gadget,
		MissionSuccessProbability: fmt.Sprintf("%d%%", h.gen.SuccessProbability()),
	}
}

func (h *GadgetHandler) List(c *fiber.Ctx) error {
	gadgets, err := h.gadgetService.List(c.Query("status"))
	if err != nil {
		slog.Error("failed to list gadgets", "action", "gadget.list", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Mission failed: Internal server error",
		})
	}

	decorated := make([]dto.GadgetResponse, 0, len(gadgets))
	for _, g := range gadgets {
		decorated = append(decorated, h.decorate(g))
	}

	return c.JSON(dto.GadgetListResponse{
		Message: "Mission successful: Gadget inventory retrieved",
		Count:   len(decorated),
		Gadgets: decorated,
	})
}

func (h *GadgetHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badGadgetID(c)
	}

	gadget, err := h.gadgetService.Get(id)
	if err != nil {
		return h.gadgetError(c, "gadget.get", id, err)
	}

	return c.JSON(dto.GadgetEnvelope{
		Message: "Mission successful: Gadget retrieved",
		Gadget:  h.decorate(*gadget),
	})
}

func (h *GadgetHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateGadgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Mission failed: Invalid gadget data",
		})
	}

	gadget, err := h.gadgetService.Create(req.Name, req.Description)
	if err != nil {
		if errors.Is(err, services.ErrValidation) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: "Mission failed: " + err.Error(),
			})
		}
		if errors.Is(err, generators.ErrCodenameExhausted) {
			// Transient: the codename space is contended, not broken.
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error: true, Message: "Mission failed: Unable to generate unique codename, please try again",
			})
		}
		slog.Error("failed to create gadget", "action", "gadget.create", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Mission failed: Internal server error",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(dto.GadgetEnvelope{
		Message: "Mission successful: Gadget added to inventory",
		Gadget:  h.decorate(*gadget),
	})
}

func (h *GadgetHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badGadgetID(c)
	}

	var req dto.UpdateGadgetRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Mission failed: Invalid update data",
		})
	}

	gadget, err := h.gadgetService.Update(id, services.GadgetPatch{
		Name:        req.Name,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return h.gadgetError(c, "gadget.update", id, err)
	}

	return c.JSON(dto.GadgetEnvelope{
		Message: "Mission successful: Gadget updated",
		Gadget:  h.decorate(*gadget),
	})
}

func (h *GadgetHandler) Decommission(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badGadgetID(c)
	}

	gadget, err := h.gadgetService.Decommission(id)
	if err != nil {
		return h.gadgetError(c, "gadget.decommission", id, err)
	}

	return c.JSON(dto.DecommissionResponse{
		Message: "Mission successful: Gadget decommissioned",
		Gadget:  *gadget,
	})
}

func (h *GadgetHandler) SelfDestruct(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badGadgetID(c)
	}

	gadget, confirmationCode, err := h.gadgetService.SelfDestruct(id)
	if err != nil {
		return h.gadgetError(c, "gadget.self_destruct", id, err)
	}

	return c.JSON(dto.SelfDestructResponse{
		Message:          "Mission successful: Self-destruct sequence activated",
		ConfirmationCode: confirmationCode,
		Gadget:           *gadget,
		Warning:          "This gadget will self-destruct in 5 seconds...",
	})
}

// gadgetError maps lifecycle failures onto HTTP statuses. Every failure kind
// is surfaced; nothing is swallowed.
func (h *GadgetHandler) gadgetError(c *fiber.Ctx, action string, id uuid.UUID, err error) error {
	switch {
	case errors.Is(err, services.ErrGadgetNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Mission failed: Gadget not found",
		})
	case errors.Is(err, services.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Mission failed: " + err.Error(),
		})
	case errors.Is(err, services.ErrGadgetDecommissioned):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Mission failed: Cannot update decommissioned gadget",
		})
	case errors.Is(err, services.ErrAlreadyDecommissioned):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Mission failed: Gadget already decommissioned",
		})
	case errors.Is(err, services.ErrAlreadyDestroyed):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Mission failed: Gadget already destroyed",
		})
	case errors.Is(err, services.ErrSelfDestructActive):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Mission failed: Self-destruct already activated",
		})
	default:
		slog.Error("gadget operation failed", "action", action, "gadget_id", id.String(), "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Mission failed: Internal server error",
		})
	}
}

func badGadgetID(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: "Mission failed: Invalid gadget id",
	})
}
