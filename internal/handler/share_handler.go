package handler

import (
	"github.com/driveboxhq/drivebox/internal/domain"
	"github.com/driveboxhq/drivebox/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// ShareHandler handles HTTP requests for sharing files
type ShareHandler struct {
	shareService domain.ShareService
}

// NewShareHandler creates a new share handler
func NewShareHandler(shareService domain.ShareService) *ShareHandler {
	return &ShareHandler{
		shareService: shareService,
	}
}

type shareRequest struct {
	Email         string `json:"email"`
	ExpiresInDays int    `json:"expires_in_days"`
}

// Share handles POST /share/:id
func (h *ShareHandler) Share(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "user not authenticated",
		})
	}

	fileID := c.Params("id")
	if fileID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file id is required",
		})
	}

	var req shareRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body: " + err.Error(),
		})
	}

	share, err := h.shareService.Share(c.Context(), userID, fileID, req.Email, req.ExpiresInDays)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message":    "File shared successfully",
		"share_link": share.ShareLink,
	})
}

// ListShares handles GET /files/:id/shares
func (h *ShareHandler) ListShares(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "user not authenticated",
		})
	}

	fileID := c.Params("id")
	if fileID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "file id is required",
		})
	}

	shares, err := h.shareService.ListShares(c.Context(), userID, fileID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(shares)
}
