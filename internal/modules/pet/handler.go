package pet

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
	grp := r.Group("/pets")
	{
		grp.POST("", h.Create)
		grp.GET("", h.List)
		grp.GET("/:id", h.Get)
		grp.PUT("/:id", h.Update)
		grp.DELETE("/:id", h.Delete)

		grp.GET("/:id/health-records", h.ListHealthRecords)
		grp.POST("/:id/vaccinations", h.AddVaccination)
		grp.GET("/:id/vaccinations", h.ListVaccinations)
		grp.POST("/:id/medications", h.AddMedication)
		grp.GET("/:id/medications", h.ListMedications)
	}
}

// RegisterVetRoutes mounts vet-only endpoints.
func (h *Handler) RegisterVetRoutes(r gin.IRouter) {
	r.POST("/pets/:id/health-records", h.AddHealthRecord)
}

func (h *Handler) Create(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	var req CreatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	p, err := h.service.Create(c.Request.Context(), ownerID, req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "CREATE_FAILED", "Failed to create pet")
		return
	}

	response.Success(c, http.StatusCreated, p)
}

func (h *Handler) List(c *gin.Context) {
	ownerID := c.GetInt64("user_id")

	pets, err := h.service.List(c.Request.Context(), ownerID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to list pets")
		return
	}

	response.Success(c, http.StatusOK, pets)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := h.petID(c)
	if !ok {
		return
	}

	p, err := h.service.Get(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := h.petID(c)
	if !ok {
		return
	}

	var req UpdatePetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	p, err := h.service.Update(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, p)
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := h.petID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id, c.GetInt64("user_id")); err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}

func (h *Handler) AddHealthRecord(c *gin.Context) {
	id, ok := h.petID(c)
	if !ok {
		return
	}

	var req CreateHealthRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	rec, err := h.service.AddHealthRecord(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, rec)
}

func (h *Handler) ListHealthRecords(c *gin.Context) {
	id, ok := h.petID(c)
	if !ok {
		return
	}

	recs, err := h.service.ListHealthRecords(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, recs)
}

func (h *Handler) AddVaccination(c *gin.Context) {
	id, ok := h.petID(c)
	if !ok {
		return
	}

	var req CreateVaccinationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	v, err := h.service.AddVaccination(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, v)
}

func (h *Handler) ListVaccinations(c *gin.Context) {
	id, ok := h.petID(c)
	if !ok {
		return
	}

	vs, err := h.service.ListVaccinations(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, vs)
}

func (h *Handler) AddMedication(c *gin.Context) {
	id, ok := h.petID(c)
	if !ok {
		return
	}

	var req CreateMedicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_BODY", "Invalid request body")
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_FAILED", "Validation failed", errs)
		return
	}

	m, err := h.service.AddMedication(c.Request.Context(), id, c.GetInt64("user_id"), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, m)
}

func (h *Handler) ListMedications(c *gin.Context) {
	id, ok := h.petID(c)
	if !ok {
		return
	}

	ms, err := h.service.ListMedications(c.Request.Context(), id, c.GetInt64("user_id"), domain.UserRole(c.GetString("role")))
	if err != nil {
		h.writeError(c, err)
		return
	}

	response.Success(c, http.StatusOK, ms)
}

func (h *Handler) petID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid pet ID")
		return 0, false
	}
	return id, true
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Pet not found")
	case errors.Is(err, ErrForbidden):
		response.Error(c, http.StatusForbidden, "FORBIDDEN", "You don't own this pet")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}
