package nutrition

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"pethealth/internal/domain"
	"pethealth/internal/pkg/response"
	"pethealth/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/pets/:id/nutrition-plans", h.ListForPet)
}

func (h *Handler) RegisterVetRoutes(r gin.IRouter) {
	r.POST("/nutrition-plans", h.Create)
}

func (h *Handler) RegisterAdminRoutes(r gin.IRouter) {
	grp := r.Group("/nutrition-plans")
	{
		grp.GET("/pending", h.ListPending)
		grp.PATCH("/:id/approve", h.Approve)
		grp.PATCH("/:id/reject", h.Reject)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	p, err := h.service.Create(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) ListForPet(c *gin.Context) {
	petID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid pet ID")
		return
	}

	list, err := h.service.ListForPet(c.Request.Context(), petID, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) ListPending(c *gin.Context) {
	list, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list pending plans")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := h.planID(c)
	if !ok {
		return
	}

	p, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := h.planID(c)
	if !ok {
		return
	}

	p, err := h.service.Reject(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) planID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid plan ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this pet")
	case errors.Is(err, ErrBadTransition):
		response.Error(c, http.StatusConflict, "BAD_TRANSITION", "Plan is not pending review")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
