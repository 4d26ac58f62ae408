package realtime

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	jwtsvc "pethealth/internal/pkg/jwt"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // Allow all origins (configure in prod)
}

type Handler struct {
	hub *Hub
	jwt *jwtsvc.Service
}

func NewHandler(hub *Hub, jwt *jwtsvc.Service) *Handler {
	return &Handler{hub: hub, jwt: jwt}
}

// HandleWS upgrades an authenticated request to a WebSocket connection.
//
// Endpoint: GET /ws?token=JWT_TOKEN
//
// The token travels as a query parameter: browsers cannot set headers on
// a WebSocket handshake.
func (h *Handler) HandleWS(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Token is required. Use ?token=YOUR_JWT_TOKEN",
			},
		})
		return
	}

	claims, err := h.jwt.ValidateToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UNAUTHORIZED",
				"message": "Invalid or expired token",
			},
		})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("websocket upgrade failed: %v", err)
		return
	}

	log.Printf("user %d connected via websocket", claims.UserID)
	h.hub.ServeWS(conn, claims.UserID, claims.Role)
	log.Printf("user %d disconnected from websocket", claims.UserID)
}

func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/ws", h.HandleWS)
}
