package handler

import (
	"fmt"
	"io"

	"github.com/driveboxhq/drivebox/internal/domain"
	"github.com/driveboxhq/drivebox/internal/middleware"
	"github.com/gofiber/fiber/v2"
)

// FileHandler handles HTTP requests for the file lifecycle
type FileHandler struct {
	fileService domain.FileService
	maxUploadMB int64
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService domain.FileService, maxUploadMB int64) *FileHandler {
	return &FileHandler{
		fileService: fileService,
		maxUploadMB: maxUploadMB,
	}
}

// Upload handles POST /upload
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "user not authenticated",
		})
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "no file provided",
		})
	}

	maxBytes := h.maxUploadMB * 1024 * 1024
	if fileHeader.Size > maxBytes {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("file size exceeds maximum of %dMB", h.maxUploadMB),
		})
	}

	fileHandle, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to open uploaded file",
		})
	}
	defer fileHandle.Close()

	content, err := io.ReadAll(fileHandle)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to read uploaded file",
		})
	}

	contentType := fileHeader.Header.Get("Content-Type")

	file, err := h.fileService.Upload(c.Context(), userID, content, fileHeader.Filename, contentType)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "File uploaded successfully",
		"file_id": file.ID,
	})
}

// Download handles GET /download/:id
func (h *FileHandler) Download(c *fiber.Ctx) error {
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

	content, file, err := h.fileService.Download(c.Context(), userID, fileID)
	if err != nil {
		return respondError(c, err)
	}

	c.Set(fiber.HeaderContentType, file.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", file.Filename))
	return c.Send(content)
}

// List handles GET /files
func (h *FileHandler) List(c *fiber.Ctx) error {
	userID := middleware.GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "user not authenticated",
		})
	}

	files, err := h.fileService.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}

	summaries := make([]domain.FileSummary, 0, len(files))
	for _, f := range files {
		summaries = append(summaries, f.Summary())
	}

	return c.Status(fiber.StatusOK).JSON(summaries)
}
