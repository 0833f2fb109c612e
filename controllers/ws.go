package controllers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"getmait/models"
	"getmait/pkg/services"
	"getmait/pkg/session"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS handled at HTTP level; allow WS here
		return true
	},
}

type wsStartPayload struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// ChatWS handles one chat exchange over a websocket so the widget can show
// its typing indicator while the workflow thinks.
// Client protocol (JSON messages):
//
//	-> {type: "start", message: string}
//	<- {type: "ack"}
//	<- {type: "waiting"}
//	<- {type: "reply", data: string}
//	<- {type: "done", ok: true}
//	<- {type: "error", error: string}
func ChatWS(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Authenticate via ?token=<session token>
		tokenStr := strings.TrimSpace(c.Query("token"))
		if tokenStr == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "missing token query"})
			return
		}
		sid, err := d.Sessions.ParseToken(tokenStr)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"msg": "invalid session token"})
			return
		}
		store, _, err := d.Sessions.Get(sid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": MsgSessionExpired})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("[ws] upgrade error: %v", err)
			return
		}
		defer conn.Close()

		conn.SetReadLimit(1 << 20) // 1MB
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		})

		// Read exactly one start message per connection
		_, msgBytes, err := conn.ReadMessage()
		if err != nil {
			log.Printf("[ws] read message error: %v", err)
			return
		}
		var start wsStartPayload
		if err := json.Unmarshal(msgBytes, &start); err != nil || strings.ToLower(start.Type) != "start" || strings.TrimSpace(start.Message) == "" {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "invalid start payload"})
			return
		}

		if err := d.Sessions.BeginSend(sid); err != nil {
			if errors.Is(err, session.ErrBusy) {
				_ = conn.WriteJSON(gin.H{"type": "error", "error": "send already in flight"})
			} else {
				_ = conn.WriteJSON(gin.H{"type": "error", "error": "session expired"})
			}
			return
		}
		defer d.Sessions.EndSend(sid)

		userMsg := models.ChatMessage{Role: models.RoleUser, Content: start.Message, Timestamp: time.Now()}
		if err := d.Sessions.Append(sid, userMsg); err != nil {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "session expired"})
			return
		}
		_ = conn.WriteJSON(gin.H{"type": "ack"})
		_ = conn.WriteJSON(gin.H{"type": "waiting"})

		reply, err := d.Relay.Send(c.Request.Context(), start.Message, store)
		if err != nil {
			log.Printf("[ws] relay error for session %s: %v", sid, err)
			reply = services.ApologyMessage(store.ContactPhone)
		}

		assistantMsg := models.ChatMessage{Role: models.RoleAssistant, Content: reply, Timestamp: time.Now()}
		if err := d.Sessions.Append(sid, assistantMsg); err != nil {
			_ = conn.WriteJSON(gin.H{"type": "error", "error": "session expired"})
			return
		}

		_ = conn.WriteJSON(gin.H{"type": "reply", "data": reply})
		_ = conn.WriteJSON(gin.H{"type": "done", "ok": true})
	}
}
