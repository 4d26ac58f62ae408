package admin

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

// RegisterRoutes mounts admin-only endpoints.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/admin")
	{
		grp.GET("/vet-applications", h.ListPendingApplications)
		grp.PATCH("/vet-applications/:id", h.ReviewApplication)
		grp.GET("/reports", h.ListReports)
		grp.POST("/announcements", h.Announce)
	}
}

// RegisterUserRoutes mounts the report endpoint available to any
// authenticated user.
func (h *Handler) RegisterUserRoutes(r gin.IRouter) {
	r.POST("/reports", h.FileReport)
}

func (h *Handler) ListPendingApplications(c *gin.Context) {
	list, err := h.service.ListPendingApplications(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list applications")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) ReviewApplication(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid application ID")
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}

	app, err := h.service.ReviewApplication(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Application not found")
		case errors.Is(err, ErrAlreadyReviewed):
			response.Error(c, http.StatusConflict, "ALREADY_REVIEWED", "Application already reviewed")
		default:
			response.Error(c, http.StatusInternalServerError, "REVIEW_FAILED", "Failed to review application")
		}
		return
	}

	response.Success(c, http.StatusOK, app)
}

func (h *Handler) FileReport(c *gin.Context) {
	var req ReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	rep, err := h.service.FileReport(c.Request.Context(), c.GetInt64("user_id"), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to file report")
		return
	}

	response.Success(c, http.StatusCreated, rep)
}

func (h *Handler) ListReports(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	list, err := h.service.ListReports(c.Request.Context(), limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list reports")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Announce(c *gin.Context) {
	var req AnnouncementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	h.service.Announce(c.Request.Context(), req)
	response.Success(c, http.StatusOK, gin.H{"sent": true})
}
