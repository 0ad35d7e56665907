package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/maheshrc27/approvals-api/internal/service"
	"github.com/maheshrc27/approvals-api/internal/transfer"
)

type IdeaHandler struct {
	s    service.IdeaService
	norm *transfer.Normalizer
}

func NewIdeaHandler(service service.IdeaService, norm *transfer.Normalizer) *IdeaHandler {
	return &IdeaHandler{s: service, norm: norm}
}

func (h *IdeaHandler) ListIdeas(c *fiber.Ctx) error {
	ideas, err := h.s.List(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(ideas)
}

func (h *IdeaHandler) CreateIdea(c *fiber.Ctx) error {
	idea, err := h.bodyIdea(c)
	if err != nil {
		return badRequest(c, "Invalid request body")
	}

	created, err := h.s.Create(c.Context(), GetActor(c), idea)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *IdeaHandler) UpdateIdea(c *fiber.Ctx) error {
	idea, err := h.bodyIdea(c)
	if err != nil {
		return badRequest(c, "Invalid request body")
	}

	updated, err := h.s.Update(c.Context(), GetActor(c), c.Params("id"), idea)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(updated)
}

func (h *IdeaHandler) SubmitIdea(c *fiber.Ctx) error {
	idea, err := h.s.SubmitForApproval(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(idea)
}

func (h *IdeaHandler) ApproveIdea(c *fiber.Ctx) error {
	return h.decide(c, h.s.ClientApprove)
}

func (h *IdeaHandler) AdjustIdea(c *fiber.Ctx) error {
	return h.decide(c, h.s.ClientRequestAdjustment)
}

func (h *IdeaHandler) RejectIdea(c *fiber.Ctx) error {
	return h.decide(c, h.s.ClientReject)
}

type ideaDecision func(ctx context.Context, actor models.Actor, id, comment string) (models.Idea, error)

func (h *IdeaHandler) decide(c *fiber.Ctx, fn ideaDecision) error {
	var req transfer.DecisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	idea, err := fn(c.Context(), GetActor(c), c.Params("id"), req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(idea)
}

func (h *IdeaHandler) DeleteIdea(c *fiber.Ctx) error {
	var req transfer.DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.s.Delete(c.Context(), GetActor(c), c.Params("id"), req.ConfirmTitle); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *IdeaHandler) CreatePublication(c *fiber.Ctx) error {
	pub, err := h.s.CreatePublication(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pub)
}

// bodyIdea reads the request body through the same normalizer used for
// bridge responses, so the dashboard may send any known field spelling.
func (h *IdeaHandler) bodyIdea(c *fiber.Ctx) (models.Idea, error) {
	raw := map[string]any{}
	if err := c.BodyParser(&raw); err != nil {
		return models.Idea{}, err
	}
	return h.norm.Idea(raw, models.IdeaStatusDraft), nil
}
