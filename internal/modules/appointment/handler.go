package appointment

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

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/appointments")
	{
		grp.POST("", h.Create)
		grp.GET("", h.ListMine)
		grp.GET("/:id", h.Get)
		grp.PUT("/:id", h.Reschedule)
		grp.PATCH("/:id/cancel", h.Cancel)
	}
}

// RegisterVetRoutes mounts vet-only appointment endpoints.
func (h *Handler) RegisterVetRoutes(r gin.IRouter) {
	grp := r.Group("/appointments")
	{
		grp.GET("/schedule", h.ListSchedule)
		grp.PATCH("/:id/confirm", h.Confirm)
		grp.PATCH("/:id/complete", h.Complete)
		grp.POST("/:id/respond", h.Respond)
	}
}

func (h *Handler) Create(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	var req CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	a, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) ListMine(c *gin.Context) {
	list, err := h.service.ListForOwner(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list appointments")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) ListSchedule(c *gin.Context) {
	list, err := h.service.ListForVet(c.Request.Context(), c.GetInt64("user_id"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list schedule")
		return
	}
	response.Success(c, http.StatusOK, list)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	a, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Confirm(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	a, err := h.service.Confirm(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req CancelRequest
	_ = c.ShouldBindJSON(&req)

	a, err := h.service.Cancel(c.Request.Context(), id, c.GetInt64("user_id"), req.Reason)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Complete(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	a, err := h.service.Complete(c.Request.Context(), id, c.GetInt64("user_id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	a, err := h.service.Reschedule(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Respond(c *gin.Context) {
	id, ok := h.appointmentID(c)
	if !ok {
		return
	}

	var req RespondRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	if err := h.service.Respond(c.Request.Context(), id, c.GetInt64("user_id"), req.Message); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "sent": true})
}

func (h *Handler) appointmentID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid appointment ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusBadRequest, "VALIDATION_FAILED", "Invalid appointment request")
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "Not your appointment")
	case errors.Is(err, ErrNotAvailable), errors.Is(err, ErrSlotTaken):
		response.Error(c, http.StatusConflict, "SLOT_TAKEN", "Time slot is not available")
	case errors.Is(err, ErrBadTransition):
		response.Error(c, http.StatusConflict, "BAD_TRANSITION", "Appointment cannot change to this status")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
