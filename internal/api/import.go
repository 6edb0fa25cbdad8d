package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tastebook/backend/internal/importer"
	"github.com/tastebook/backend/internal/service"
)

type ImportHandler struct {
	importService *service.ImportService
}

func NewImportHandler(importService *service.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

type ImportRequest struct {
	URL string `json:"url" binding:"required,url"`
}

// ImportRecipe runs the import pipeline against the submitted URL and
// stores the result as a recipe owned by the caller.
func (h *ImportHandler) ImportRecipe(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid url is required"})
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	recipe, err := h.importService.ImportRecipe(c.Request.Context(), req.URL, userID.(uuid.UUID))
	if err != nil {
		status, body := importErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

// PreviewImport runs the pipeline without saving anything, so clients
// can show the extracted recipe for confirmation before committing.
func (h *ImportHandler) PreviewImport(c *gin.Context) {
	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a valid url is required"})
		return
	}

	imported, err := h.importService.Preview(c.Request.Context(), req.URL)
	if err != nil {
		status, body := importErrorResponse(err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, imported)
}

// ListSources returns the informational list of sites that import well.
func (h *ImportHandler) ListSources(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"sources": importer.SupportedSources()})
}

// importErrorResponse maps pipeline error kinds onto HTTP statuses. The
// pipeline's messages are written for end users and passed through.
func importErrorResponse(err error) (int, gin.H) {
	var impErr *importer.Error
	if !errors.As(err, &impErr) {
		return http.StatusInternalServerError, gin.H{"error": "failed to import recipe"}
	}

	body := gin.H{
		"error":     impErr.Message,
		"kind":      impErr.Kind.String(),
		"retryable": impErr.Retryable(),
	}

	switch impErr.Kind {
	case importer.ErrInvalidURL:
		return http.StatusBadRequest, body
	case importer.ErrNotFound:
		return http.StatusNotFound, body
	case importer.ErrTimeout:
		return http.StatusGatewayTimeout, body
	case importer.ErrRemote, importer.ErrNetworkUnreachable:
		return http.StatusBadGateway, body
	case importer.ErrPayloadTooLarge, importer.ErrExtractionFailed:
		return http.StatusUnprocessableEntity, body
	}
	return http.StatusInternalServerError, body
}
