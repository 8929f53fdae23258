package api

import (
	"errors"
	"net/http"
	"strings"

	"ops-console/internal/domain/upload"
	reqdto "ops-console/internal/handler/dto/request"
	resdto "ops-console/internal/handler/dto/response"
	"ops-console/internal/handler/middleware"
	"ops-console/internal/usecase/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type UploadHandler struct {
	uploadUseCase commands.UploadCommands
}

func NewUploadHandler(uploadUseCase commands.UploadCommands) *UploadHandler {
	return &UploadHandler{
		uploadUseCase: uploadUseCase,
	}
}

// @Summary Create upload preview
// @Description Parse a CSV payload and stage a row-by-row diff for review
// @Tags uploads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreatePreviewRequest true "Upload preview request"
// @Success 200 {object} resdto.PreviewResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /uploads/preview [post]
func (h *UploadHandler) CreatePreview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreatePreviewRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}
	if req.TrimmedType() == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "type is required",
		})
		return
	}
	if strings.TrimSpace(req.CSVText) == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "csvText is required",
		})
		return
	}

	preview, err := h.uploadUseCase.CreatePreview(c.Request.Context(), commands.CreatePreviewRequest{
		Type:              req.TrimmedType(),
		CSVText:           req.CSVText,
		ContextOutletID:   req.ContextOutletID,
		ContextCampaignID: req.ContextCampaignID,
	}, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUnknownUploadType):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Unknown upload type",
			})
		case errors.Is(err, commands.ErrRoleNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions for this upload type",
			})
		case errors.Is(err, commands.ErrNoParseableHeaders):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "CSV has no parseable header row",
			})
		case errors.Is(err, commands.ErrTooManyRows):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "CSV exceeds the maximum number of rows",
			})
		case errors.Is(err, commands.ErrMissingColumns):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPreview(preview))
}

// @Summary Get upload preview
// @Description Re-display a staged preview by id
// @Tags uploads
// @Produce json
// @Security BearerAuth
// @Param id path string true "Preview ID"
// @Success 200 {object} resdto.PreviewResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /uploads/preview/{id} [get]
func (h *UploadHandler) GetPreview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid preview ID format",
		})
		return
	}

	preview, err := h.uploadUseCase.GetPreview(c.Request.Context(), id, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrPreviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Preview not found or expired",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromPreview(preview))
}

// @Summary Apply upload preview
// @Description Commit a staged preview inside a single transaction
// @Tags uploads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ApplyPreviewRequest true "Apply request"
// @Success 200 {object} resdto.ApplyResultResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /uploads/apply [post]
func (h *UploadHandler) ApplyPreview(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ApplyPreviewRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.uploadUseCase.ApplyPreview(c.Request.Context(), commands.ApplyPreviewRequest{
		PreviewID: req.PreviewID,
		Reason:    req.Reason,
	}, userID, role)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrReasonRequired):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "A non-empty reason is required",
			})
		case errors.Is(err, commands.ErrPreviewNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Preview not found or expired",
			})
		case errors.Is(err, commands.ErrRoleNotAllowed):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions for this upload type",
			})
		case errors.Is(err, commands.ErrPreviewAlreadyApplied):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Preview has already been applied",
			})
		case errors.Is(err, commands.ErrPreviewHasErrors):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Preview contains error rows and cannot be applied",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromApplyResult(result))
}

// @Summary Download CSV template
// @Description Return the header template for an upload type
// @Tags uploads
// @Produce json
// @Security BearerAuth
// @Param type query string true "Upload type"
// @Success 200 {object} resdto.TemplateResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /uploads/template [get]
func (h *UploadHandler) GetTemplate(c *gin.Context) {
	typ, err := upload.ParseType(c.Query("type"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Unknown upload type",
		})
		return
	}

	columns := typ.RequiredColumns()
	c.JSON(http.StatusOK, resdto.TemplateResponse{
		Type:    string(typ),
		Columns: columns,
		CSVText: strings.Join(columns, ",") + "\n",
	})
}
