package crops

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"agroadvisor-backend/internal/shared/server/middleware"
	"agroadvisor-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	api.POST("/predictions/crop", h.recommend)
	api.GET("/history/crop", middleware.RequireUser(), h.history)
}

func (h *Handler) recommend(c *gin.Context) {
	var req Request
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	username := middleware.UsernameFromContext(c)
	rec, err := h.Svc.Recommend(c.Request.Context(), username, req)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, rec)
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
