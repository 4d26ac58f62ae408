package notification

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"pethealth/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	grp := r.Group("/notifications")
	{
		grp.GET("", h.List)
		grp.GET("/unread-count", h.GetUnreadCount)
		grp.PATCH("/read-all", h.MarkAllAsRead)
		grp.PATCH("/:id/read", h.MarkAsRead)
		grp.PATCH("/:id/mark-completed", h.MarkCompleted)
		grp.DELETE("/:id", h.Delete)
	}
}

func (h *Handler) List(c *gin.Context) {
	userID := c.GetInt64("user_id")

	limit := 20
	if s := c.Query("limit"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v > 0 {
			limit = v
			if limit > 100 {
				limit = 100
			}
		}
	}

	offset := 0
	if s := c.Query("offset"); s != "" {
		if v, err := strconv.Atoi(s); err == nil && v >= 0 {
			offset = v
		}
	}

	list, unread, total, err := h.service.List(c.Request.Context(), userID, limit, offset)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get notifications")
		return
	}

	response.Success(c, http.StatusOK, ListResponse{
		Notifications: list,
		UnreadCount:   unread,
		Total:         total,
	})
}

func (h *Handler) GetUnreadCount(c *gin.Context) {
	userID := c.GetInt64("user_id")

	unread, err := h.service.GetUnreadCount(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "FETCH_FAILED", "Failed to get unread count")
		return
	}

	response.Success(c, http.StatusOK, UnreadCountResponse{UnreadCount: unread})
}

func (h *Handler) MarkAsRead(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id := c.Param("id")

	if err := h.service.MarkAsRead(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark notification as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "is_read": true})
}

func (h *Handler) MarkAllAsRead(c *gin.Context) {
	userID := c.GetInt64("user_id")

	if err := h.service.MarkAllAsRead(c.Request.Context(), userID); err != nil {
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark notifications as read")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"unread_count": 0})
}

func (h *Handler) MarkCompleted(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id := c.Param("id")

	if err := h.service.MarkCompleted(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "UPDATE_FAILED", "Failed to mark notification as completed")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "is_completed": true})
}

func (h *Handler) Delete(c *gin.Context) {
	userID := c.GetInt64("user_id")
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Notification not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "DELETE_FAILED", "Failed to delete notification")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"id": id, "deleted": true})
}
