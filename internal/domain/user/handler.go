package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/pagination"
	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/utils"
)

type Handler struct {
	service  *Service
	pageSize int
}

func NewHandler(service *Service, pageSize int) *Handler {
	return &Handler{service: service, pageSize: pageSize}
}

// Register handles POST /api/users
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	created, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, created)
}

// Login handles POST /api/auth/token/login
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, TokenResponse{AuthToken: token})
}

// Logout handles POST /api/auth/token/logout. Tokens are stateless, so the
// client simply discards its copy.
func (h *Handler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// List handles GET /api/users
func (h *Handler) List(c *gin.Context) {
	page, err := h.service.List(c.Request.Context(), middleware.UserID(c), pagination.FromQuery(c, h.pageSize))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}

// Me handles GET /api/users/me
func (h *Handler) Me(c *gin.Context) {
	me, err := h.service.Me(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, me)
}

// Get handles GET /api/users/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := utils.ParseIDParam(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	u, err := h.service.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

// SetPassword handles POST /api/users/set_password
func (h *Handler) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if err := utils.BindJSON(c, &req); err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.SetPassword(c.Request.Context(), middleware.UserID(c), req); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
