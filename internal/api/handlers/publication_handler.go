package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/approvals-api/internal/models"
	"github.com/maheshrc27/approvals-api/internal/service"
	"github.com/maheshrc27/approvals-api/internal/transfer"
)

type PublicationHandler struct {
	s    service.PublicationService
	norm *transfer.Normalizer
}

func NewPublicationHandler(service service.PublicationService, norm *transfer.Normalizer) *PublicationHandler {
	return &PublicationHandler{s: service, norm: norm}
}

func (h *PublicationHandler) ListPublications(c *fiber.Ctx) error {
	pubs, err := h.s.List(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(pubs)
}

func (h *PublicationHandler) UpdatePublication(c *fiber.Ctx) error {
	raw := map[string]any{}
	if err := c.BodyParser(&raw); err != nil {
		return badRequest(c, "Invalid request body")
	}
	changes := h.norm.Publication(raw, models.PublicationStatusInDesign)
	if !hasMediaFields(raw) {
		changes.MediaPaths = nil
	}

	pub, err := h.s.Update(c.Context(), GetActor(c), c.Params("id"), changes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(pub)
}

func (h *PublicationHandler) SubmitPublication(c *fiber.Ctx) error {
	pub, err := h.s.SubmitForApproval(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(pub)
}

func (h *PublicationHandler) ApprovePublication(c *fiber.Ctx) error {
	var req transfer.DecisionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	pub, err := h.s.Approve(c.Context(), GetActor(c), c.Params("id"), req.Comment, req.Rating)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(pub)
}

func (h *PublicationHandler) RejectPublication(c *fiber.Ctx) error {
	var req transfer.DecisionRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	pub, err := h.s.Reject(c.Context(), GetActor(c), c.Params("id"), req.Comment)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(pub)
}

func (h *PublicationHandler) SchedulePublication(c *fiber.Ctx) error {
	var req transfer.ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	pub, err := h.s.Schedule(c.Context(), GetActor(c), c.Params("id"), req.ScheduledAt, req.Checklist)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(pub)
}

func (h *PublicationHandler) PublishPublication(c *fiber.Ctx) error {
	var req transfer.PublishRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return badRequest(c, "Invalid request body")
		}
	}

	pub, err := h.s.Publish(c.Context(), GetActor(c), c.Params("id"), req.Link)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(pub)
}

func (h *PublicationHandler) DeletePublication(c *fiber.Ctx) error {
	var req transfer.DeleteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	if err := h.s.Delete(c.Context(), GetActor(c), c.Params("id"), req.ConfirmTitle); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *PublicationHandler) UploadMedia(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		slog.Error(err.Error())
		return badRequest(c, "Unable to parse form")
	}

	files := form.File["files"]
	if len(files) == 0 {
		return badRequest(c, "No files selected")
	}

	pub, err := h.s.AttachMedia(c.Context(), GetActor(c), c.Params("id"), files)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(pub)
}

func (h *PublicationHandler) RemoveMedia(c *fiber.Ctx) error {
	var req transfer.RemoveMediaRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	pub, err := h.s.RemoveMedia(c.Context(), GetActor(c), c.Params("id"), req.Path)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(pub)
}

func hasMediaFields(raw map[string]any) bool {
	for _, k := range []string{"midia_url", "midiaUrl", "media_url", "midia_urls", "midiaUrls", "media_urls", "midias", "midia_url1"} {
		if _, ok := raw[k]; ok {
			return true
		}
	}
	return false
}
