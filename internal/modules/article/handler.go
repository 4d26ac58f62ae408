package article

import (
	"errors"
	"net/http"
	"strconv"

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

// RegisterRoutes mounts the public article endpoints.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/articles")
	{
		grp.GET("", h.ListPublished)
		grp.GET("/:id", h.Get)
	}
}

// RegisterVetRoutes mounts the vet-only submission endpoint.
func (h *Handler) RegisterVetRoutes(r gin.IRouter) {
	r.POST("/articles", h.Submit)
}

// RegisterAdminRoutes mounts review endpoints.
func (h *Handler) RegisterAdminRoutes(r gin.IRouter) {
	grp := r.Group("/articles")
	{
		grp.GET("/pending", h.ListPending)
		grp.PATCH("/:id/approve", h.Approve)
		grp.PATCH("/:id/reject", h.Reject)
	}
}

func (h *Handler) Submit(c *gin.Context) {
	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	a, err := h.service.Submit(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to submit article")
		return
	}

	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) ListPublished(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.ListPublished(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list articles")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) ListPending(c *gin.Context) {
	list, err := h.service.ListPending(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list pending articles")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Approve(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}

	a, err := h.service.Approve(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Reject(c *gin.Context) {
	id, ok := h.articleID(c)
	if !ok {
		return
	}

	a, err := h.service.Reject(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) articleID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid article ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Article not found")
	case errors.Is(err, ErrBadTransition):
		response.Error(c, http.StatusConflict, "BAD_TRANSITION", "Article is not pending review")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
