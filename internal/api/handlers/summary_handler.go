package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/approvals-api/internal/service"
	"github.com/maheshrc27/approvals-api/pkg/utils"
)

type SummaryHandler struct {
	s service.SummaryService
}

func NewSummaryHandler(service service.SummaryService) *SummaryHandler {
	return &SummaryHandler{s: service}
}

func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	summary, err := h.s.Get(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(summary)
}

type HistoryHandler struct {
	s service.HistoryService
}

func NewHistoryHandler(service service.HistoryService) *HistoryHandler {
	return &HistoryHandler{s: service}
}

func (h *HistoryHandler) ListHistory(c *fiber.Ctx) error {
	history, err := h.s.List(c.Context(), GetActor(c), c.Query("entity_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(history)
}

type MediaHandler struct {
	opts utils.PublicURLOptions
}

func NewMediaHandler(opts utils.PublicURLOptions) *MediaHandler {
	return &MediaHandler{opts: opts}
}

func (h *MediaHandler) PublicURL(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"url": utils.ResolvePublicURL(c.Query("path"), h.opts),
	})
}
