package handler

import (
	"github.com/gin-gonic/gin"

	catalogapp "github.com/onlineshop/backend/internal/application/catalog"
)

// maxImageSize caps product image uploads at 8 MiB
const maxImageSize = 8 << 20

// SuggestionHandler handles the customer side of product suggestions
type SuggestionHandler struct {
	BaseHandler
	suggestionService *catalogapp.SuggestionService
}

// NewSuggestionHandler creates a new SuggestionHandler
func NewSuggestionHandler(suggestionService *catalogapp.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{suggestionService: suggestionService}
}

// Suggest handles POST /api/v1/suggestions
func (h *SuggestionHandler) Suggest(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	var req catalogapp.SuggestProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	suggestion, err := h.suggestionService.Suggest(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, suggestion)
}

// List handles GET /api/v1/suggestions, the user's own suggestions
func (h *SuggestionHandler) List(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}

	suggestions, err := h.suggestionService.ListMine(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestions)
}

// Update handles PUT /api/v1/suggestions/:id. Any edit sends the
// suggestion back into review.
func (h *SuggestionHandler) Update(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid suggestion ID")
		return
	}

	var req catalogapp.SuggestProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	suggestion, err := h.suggestionService.Update(c.Request.Context(), userID, productID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestion)
}

// Delete handles DELETE /api/v1/suggestions/:id
func (h *SuggestionHandler) Delete(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid suggestion ID")
		return
	}

	if err := h.suggestionService.Delete(c.Request.Context(), userID, productID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Resubmit handles POST /api/v1/suggestions/:id/resubmit
func (h *SuggestionHandler) Resubmit(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid suggestion ID")
		return
	}

	suggestion, err := h.suggestionService.Resubmit(c.Request.Context(), userID, productID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestion)
}

// UploadImage handles POST /api/v1/suggestions/:id/image with a
// multipart "file" field.
func (h *SuggestionHandler) UploadImage(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Not authenticated")
		return
	}
	productID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, "Invalid suggestion ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		h.BadRequest(c, "An image file is required")
		return
	}
	if fileHeader.Size > maxImageSize {
		h.BadRequest(c, "Image is too large")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		h.HandleError(c, err)
		return
	}
	defer file.Close()

	suggestion, err := h.suggestionService.AttachImage(c.Request.Context(), userID, productID, fileHeader.Filename, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, suggestion)
}
