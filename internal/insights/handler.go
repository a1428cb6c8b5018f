package insights

import (
	"github.com/gin-gonic/gin"

	"agroadvisor-backend/internal/shared/server/respond"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/crop-patterns", h.cropPatterns)
	api.GET("/insights", h.overview)
}

func (h *Handler) cropPatterns(c *gin.Context) {
	respond.OK(c, gin.H{"patterns": CropPatterns()})
}

func (h *Handler) overview(c *gin.Context) {
	respond.OK(c, BuildOverview())
}
