package users

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"agroadvisor-backend/internal/auth"
	"agroadvisor-backend/internal/shared/server/middleware"
	"agroadvisor-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc    *Service
	Issuer *auth.TokenIssuer
}

func NewHandler(svc *Service, issuer *auth.TokenIssuer) *Handler {
	return &Handler{Svc: svc, Issuer: issuer}
}

// AuthResponse is returned on register and login so the frontend can store
// the session in one step.
type AuthResponse struct {
	AccessToken string      `json:"access_token"`
	TokenType   string      `json:"token_type"`
	User        UserSummary `json:"user"`
}

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name,omitempty"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup) {
	authGroup := api.Group("/auth")
	authGroup.POST("/register", h.register)
	authGroup.POST("/login", h.login)
	authGroup.POST("/logout", h.logout)
	authGroup.GET("/me", middleware.RequireUser(), h.me)
	authGroup.PUT("/me", middleware.RequireUser(), h.updateProfile)
	authGroup.POST("/change-password", middleware.RequireUser(), h.changePassword)
	authGroup.DELETE("/me", middleware.RequireUser(), h.deleteAccount)
}

func (h *Handler) register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Register(c.Request.Context(), input)
	if err != nil {
		respond.FromError(c, err)
		return
	}

	token, err := h.Issuer.Issue(user.Username)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not issue token", nil)
		return
	}
	respond.Created(c, authResponse(token, user))
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	user, err := h.Svc.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respond.FromError(c, err)
		return
	}

	token, err := h.Issuer.Issue(user.Username)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "could not issue token", nil)
		return
	}
	respond.OK(c, authResponse(token, user))
}

// logout is a client-side operation with stateless tokens; the endpoint
// exists so the frontend has a consistent call to make.
func (h *Handler) logout(c *gin.Context) {
	respond.OK(c, gin.H{"message": "Logged out successfully"})
}

func (h *Handler) me(c *gin.Context) {
	username := middleware.UsernameFromContext(c)
	user, err := h.Svc.GetByUsername(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "user not found", nil)
			return
		}
		respond.FromError(c, err)
		return
	}
	respond.OK(c, user)
}

func (h *Handler) updateProfile(c *gin.Context) {
	var update ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	username := middleware.UsernameFromContext(c)
	user, err := h.Svc.UpdateProfile(c.Request.Context(), username, update)
	if err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, user)
}

func (h *Handler) changePassword(c *gin.Context) {
	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	username := middleware.UsernameFromContext(c)
	if err := h.Svc.ChangePassword(c.Request.Context(), username, req.OldPassword, req.NewPassword); err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "Password changed successfully"})
}

func (h *Handler) deleteAccount(c *gin.Context) {
	username := middleware.UsernameFromContext(c)
	if err := h.Svc.Delete(c.Request.Context(), username); err != nil {
		respond.FromError(c, err)
		return
	}
	respond.OK(c, gin.H{"message": "Account deleted successfully"})
}

func authResponse(token string, user User) AuthResponse {
	return AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: UserSummary{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
			FullName: user.FullName,
		},
	}
}
