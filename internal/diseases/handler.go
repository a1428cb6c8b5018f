package diseases

import (
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"agroadvisor-backend/internal/shared/server/middleware"
	"agroadvisor-backend/internal/shared/server/respond"
)

// Uploads above this size are rejected before decoding.
const maxUploadBytes = 10 << 20

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/predictions/disease", h.detect)
	api.GET("/history/disease", middleware.RequireUser(), h.history)
}

func (h *Handler) detect(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "image file is required", nil)
		return
	}
	if fileHeader.Size > maxUploadBytes {
		respond.Error(c, http.StatusBadRequest, "invalid_image", "image exceeds the 10MB limit", nil)
		return
	}
	if contentType := fileHeader.Header.Get("Content-Type"); contentType != "" && !strings.HasPrefix(contentType, "image/") {
		respond.Error(c, http.StatusBadRequest, "invalid_image", "file must be an image", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_image", "could not read uploaded file", nil)
		return
	}
	defer file.Close()

	imageBytes, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "invalid_image", "could not read uploaded file", nil)
		return
	}

	username := middleware.UsernameFromContext(c)
	detection, err := h.Svc.Detect(c.Request.Context(), username, fileHeader.Filename, imageBytes)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, detection)
}

func (h *Handler) history(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	username := middleware.UsernameFromContext(c)
	records, err := h.Svc.History(c.Request.Context(), username, limit)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	if records == nil {
		records = []Record{}
	}
	respond.OK(c, gin.H{"items": records})
}
