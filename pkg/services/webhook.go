package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"getmait/models"
)

var ErrWebhookDisabled = errors.New("chat webhook is not configured")

// FallbackAck is used when the webhook answers with a shape we don't know.
const FallbackAck = "Modtaget! Jeg sender din bestilling til køkkenet nu."

// ApologyMessage is the assistant entry appended when an exchange fails; the
// store's phone number is the fallback contact path.
func ApologyMessage(phone string) string {
	return "Hov, Mait! Jeg mistede forbindelsen til ovnen. Prøv venligst igen eller giv os et kald på " + phone
}

// WebhookService relays chat messages to the n8n workflow that implements the
// conversational ordering logic. The workflow is an opaque collaborator: we
// send the message plus store context and display whatever text comes back.
type WebhookService struct {
	url string
}

func NewWebhookService(url string) *WebhookService {
	return &WebhookService{url: url}
}

// Send posts one user message and returns the assistant's reply text. The
// reply is taken from "output", then "message", then FallbackAck. There is no
// retry; a failed exchange is the caller's to surface.
func (s *WebhookService) Send(ctx context.Context, message string, store models.StoreSummary) (string, error) {
	if strings.TrimSpace(s.url) == "" {
		log.Printf("[webhook] N8N_CHAT_WEBHOOK is not set")
		return "", ErrWebhookDisabled
	}

	reqBody := map[string]any{
		"message":    message,
		"store_id":   store.ID,
		"store_name": store.Name,
		"source":     "web_chat",
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
	}
	bodyBytes, _ := json.Marshal(reqBody)

	log.Printf("[webhook] POST %s store=%s", s.url, store.ID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}

	var parsed map[string]any
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("decode error: %w", err)
	}
	if out, ok := parsed["output"].(string); ok && strings.TrimSpace(out) != "" {
		return out, nil
	}
	if msg, ok := parsed["message"].(string); ok && strings.TrimSpace(msg) != "" {
		return msg, nil
	}
	return FallbackAck, nil
}
