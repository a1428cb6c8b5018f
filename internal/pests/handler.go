package pests

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"agroadvisor-backend/internal/shared/server/middleware"
	"agroadvisor-backend/internal/shared/server/respond"
)

const maxUploadBytes = 10 << 20

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/predictions/pest-control", h.advise)
}

func (h *Handler) advise(c *gin.Context) {
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
	advice, err := h.Svc.Advise(c.Request.Context(), username, fileHeader.Filename, imageBytes)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, advice)
}
