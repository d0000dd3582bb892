package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"quickbill/internal/service"
)

// AuthHandler handles enterprise registration and authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register handles POST /api/enterprises/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input service.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.authService.Register(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// Login handles POST /api/enterprises/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input service.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	result, err := h.authService.Login(c.Request.Context(), input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, result)
}

// Profile handles GET /api/enterprises/profile
func (h *AuthHandler) Profile(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	enterprise, err := h.authService.GetProfile(c.Request.Context(), enterpriseID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, enterprise)
}

// UpdateProfile handles PUT /api/enterprises/profile
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	enterpriseID, ok := extractEnterpriseID(c)
	if !ok {
		return
	}

	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		RespondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	enterprise, err := h.authService.UpdateProfile(c.Request.Context(), enterpriseID, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, enterprise)
}
