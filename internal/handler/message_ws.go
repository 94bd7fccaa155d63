package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"volunteerhub/config"
	"volunteerhub/internal/auth"
	"volunteerhub/internal/service"
	"volunteerhub/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = (wsPongWait * 9) / 10
)

var messageUpgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// wsFrame is the client-to-server protocol: an "open" frame scopes the
// connection to one conversation, a "message" frame sends into it.
type wsFrame struct {
	Type       string `json:"type"` // open | message
	UserID     uint   `json:"user_id,omitempty"`
	ReceiverID uint   `json:"receiver_id,omitempty"`
	Content    string `json:"content,omitempty"`
}

// UpgradeMessageWS upgrades to WebSocket for realtime message delivery;
// query: token. The connection receives only messages addressed to the user
// from the counterpart it has opened. Closing the connection unregisters it
// from the hub.
func UpgradeMessageWS(cfg *config.JWTConfig, hub *ws.Hub, msgSvc *service.MessageService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Query("token")
		if token == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "token required"})
			return
		}
		claims, err := auth.ParseAccessToken(cfg, token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		conn, err := messageUpgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		client := &ws.Client{
			UserID: claims.UserID,
			Role:   claims.Role,
			Send:   make(chan []byte, 256),
		}
		hub.Register(client)
		defer client.Close()

		conn.SetReadDeadline(time.Now().Add(wsPongWait))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(wsPongWait))
			return nil
		})
		go func() {
			ticker := time.NewTicker(wsPingPeriod)
			defer ticker.Stop()
			for {
				select {
				case msg, ok := <-client.Send:
					if !ok {
						return
					}
					conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
					if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				case <-ticker.C:
					conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
					if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
						return
					}
				}
			}
		}()
		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				break
			}
			var frame wsFrame
			if json.Unmarshal(raw, &frame) != nil {
				continue
			}
			switch frame.Type {
			case "open":
				client.OpenConversation(frame.UserID)
			case "message":
				m, err := msgSvc.Send(claims.UserID, frame.ReceiverID, frame.Content)
				if err != nil {
					errPayload, _ := json.Marshal(map[string]string{"type": "error", "error": err.Error()})
					select {
					case client.Send <- errPayload:
					default:
					}
					continue
				}
				// Ack with the persisted row so the sender can render it
				// without waiting for an echo (there is none).
				ack, _ := json.Marshal(map[string]interface{}{
					"type":        "sent",
					"id":          m.ID,
					"receiver_id": m.ReceiverID,
					"content":     m.Content,
					"created_at":  m.CreatedAt,
				})
				select {
				case client.Send <- ack:
				default:
				}
			}
		}
	}
}
