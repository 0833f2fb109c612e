package controllers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"getmait/middleware"
	"getmait/models"
	"getmait/pkg/services"
	"getmait/pkg/session"
	"getmait/pkg/supabase"
)

const (
	MsgChatLoadFailed  = "Kunne ikke indlæse chat"
	MsgSessionExpired  = "Session er udløbet. Genindlæs siden."
	MsgSendInFlight    = "Vent venligst på svar, før du sender igen."
	defaultBrandColor  = "#ea580c"
)

func chatBranding(store models.StoreSummary) gin.H {
	color := store.PrimaryColor
	if color == "" {
		color = defaultBrandColor
	}
	return gin.H{
		"name":          store.Name,
		"primary_color": color,
		"contact_phone": store.ContactPhone,
		"city":          store.City,
		"tel_link":      "tel:" + store.ContactPhone,
		"sms_link":      "sms:" + store.ContactPhone,
	}
}

// OpenSession resolves the tenant for the widget, fetches its reduced store
// projection (open stores only) and opens a chat session seeded with the
// welcome message. The returned token authorizes the rest of the chat API.
func OpenSession(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := d.Resolver.Resolve(c.Request.Host, c.Request.URL.Query())
		log.Printf("[chat] detected slug: %s", slug)

		store, err := d.Backend.GetStoreSummary(c.Request.Context(), slug)
		if err != nil {
			log.Printf("[chat] store error for slug %s: %v", slug, err)
			status := http.StatusBadGateway
			if errors.Is(err, supabase.ErrStoreNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"msg": MsgChatLoadFailed})
			return
		}

		_, token, transcript, err := d.Sessions.Open(store)
		if err != nil {
			log.Printf("[chat] failed to open session for %s: %v", slug, err)
			c.JSON(http.StatusInternalServerError, gin.H{"msg": MsgChatLoadFailed})
			return
		}

		c.JSON(http.StatusCreated, gin.H{
			"token":    token,
			"store":    chatBranding(store),
			"messages": transcript,
		})
	}
}

// GetSession returns the store branding and current transcript.
func GetSession(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)
		store, transcript, err := d.Sessions.Get(sid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": MsgSessionExpired})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"store":    chatBranding(store),
			"messages": transcript,
		})
	}
}

// SendMessage relays one user message to the ordering workflow. The user
// entry is appended before the relay call; a failed exchange appends the
// apology (with the store's phone) instead of an assistant reply and leaves
// the session usable. Only one send may be in flight per session.
func SendMessage(d Deps) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := sessionID(c)

		var body struct {
			Message string `json:"message"`
		}
		if err := c.ShouldBindJSON(&body); err != nil || strings.TrimSpace(body.Message) == "" {
			// whitespace-only input is a no-op: no transcript entry, no call
			c.JSON(http.StatusBadRequest, gin.H{"msg": "message is required"})
			return
		}

		store, _, err := d.Sessions.Get(sid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": MsgSessionExpired})
			return
		}

		if err := d.Sessions.BeginSend(sid); err != nil {
			if errors.Is(err, session.ErrBusy) {
				c.JSON(http.StatusConflict, gin.H{"msg": MsgSendInFlight})
				return
			}
			c.JSON(http.StatusNotFound, gin.H{"msg": MsgSessionExpired})
			return
		}
		defer d.Sessions.EndSend(sid)

		userMsg := models.ChatMessage{Role: models.RoleUser, Content: body.Message, Timestamp: time.Now()}
		if err := d.Sessions.Append(sid, userMsg); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": MsgSessionExpired})
			return
		}

		reply, err := d.Relay.Send(c.Request.Context(), body.Message, store)
		if err != nil {
			log.Printf("[chat] relay error for session %s: %v", sid, err)
			reply = services.ApologyMessage(store.ContactPhone)
		}

		assistantMsg := models.ChatMessage{Role: models.RoleAssistant, Content: reply, Timestamp: time.Now()}
		if err := d.Sessions.Append(sid, assistantMsg); err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": MsgSessionExpired})
			return
		}

		_, transcript, err := d.Sessions.Get(sid)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"msg": MsgSessionExpired})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"messages": transcript})
	}
}

func sessionID(c *gin.Context) string {
	raw, _ := c.Get(middleware.ContextSessionIDKey)
	sid, _ := raw.(string)
	return sid
}
