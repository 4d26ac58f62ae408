package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"pethealth/internal/pkg/response"
	"pethealth/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts the public auth endpoints.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/auth")
	{
		grp.POST("/register", h.Register)
		grp.POST("/login", h.Login)
	}
}

// RegisterProtectedRoutes mounts endpoints that require a bearer token.
func (h *Handler) RegisterProtectedRoutes(r gin.IRouter) {
	grp := r.Group("/auth")
	{
		grp.GET("/me", h.Me)
		grp.POST("/vet-application", h.ApplyVet)
	}
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	user, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailTaken) {
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "Email already registered")
			return
		}
		response.Error(c, http.StatusInternalServerError, "REGISTER_FAILED", "Failed to register")
		return
	}

	response.Success(c, http.StatusCreated, user)
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	result, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
			return
		}
		response.Error(c, http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login")
		return
	}

	response.Success(c, http.StatusOK, LoginResponse{
		User:        result.User,
		AccessToken: result.AccessToken,
	})
}

func (h *Handler) Me(c *gin.Context) {
	userID := c.GetInt64("user_id")

	user, err := h.service.Me(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "User not found")
		return
	}

	response.Success(c, http.StatusOK, user)
}

func (h *Handler) ApplyVet(c *gin.Context) {
	userID := c.GetInt64("user_id")

	var req VetApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	app, err := h.service.ApplyVet(c.Request.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrAlreadyVet):
			response.Error(c, http.StatusConflict, "ALREADY_VET", "User already has the vet role")
		case errors.Is(err, ErrApplicationPending):
			response.Error(c, http.StatusConflict, "APPLICATION_PENDING", "Vet application already pending")
		default:
			response.Error(c, http.StatusInternalServerError, "APPLY_FAILED", "Failed to submit application")
		}
		return
	}

	response.Success(c, http.StatusCreated, app)
}
