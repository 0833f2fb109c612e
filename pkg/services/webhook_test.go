package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"getmait/models"
)

func store() models.StoreSummary {
	return models.StoreSummary{ID: "st-1", Name: "Napoli", ContactPhone: "+4512345678"}
}

func TestSendPayloadShape(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s", r.Method)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"output":"Noteret, vi ses kl. 18.00!"}`))
	}))
	defer srv.Close()

	reply, err := NewWebhookService(srv.URL).Send(context.Background(), "En Roma kl. 18", store())
	if err != nil {
		t.Fatalf("Send: %v", err)
	}
	if reply != "Noteret, vi ses kl. 18.00!" {
		t.Fatalf("reply = %q", reply)
	}

	if got["message"] != "En Roma kl. 18" || got["store_id"] != "st-1" || got["store_name"] != "Napoli" {
		t.Errorf("payload = %+v", got)
	}
	if got["source"] != "web_chat" {
		t.Errorf("source = %v", got["source"])
	}
	ts, _ := got["timestamp"].(string)
	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", ts, err)
	}
}

func TestSendReplyFallbackOrder(t *testing.T) {
	cases := []struct {
		body string
		want string
	}{
		{`{"output":"X"}`, "X"},
		{`{"message":"Y"}`, "Y"},
		{`{"output":"X","message":"Y"}`, "X"},
		{`{"output":"","message":"Y"}`, "Y"},
		{`{"something":"else"}`, FallbackAck},
		{`{}`, FallbackAck},
	}
	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(tc.body))
		}))
		reply, err := NewWebhookService(srv.URL).Send(context.Background(), "hej", store())
		srv.Close()
		if err != nil {
			t.Fatalf("body %s: %v", tc.body, err)
		}
		if reply != tc.want {
			t.Errorf("body %s: reply = %q, want %q", tc.body, reply, tc.want)
		}
	}
}

func TestSendFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewWebhookService(srv.URL).Send(context.Background(), "hej", store()); err == nil {
		t.Fatalf("expected error for status 500")
	}

	malformed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer malformed.Close()

	if _, err := NewWebhookService(malformed.URL).Send(context.Background(), "hej", store()); err == nil {
		t.Fatalf("expected error for malformed body")
	}

	if _, err := NewWebhookService("").Send(context.Background(), "hej", store()); !errors.Is(err, ErrWebhookDisabled) {
		t.Fatalf("expected ErrWebhookDisabled, got %v", err)
	}
}

func TestApologyMentionsPhone(t *testing.T) {
	msg := ApologyMessage("+4512345678")
	if !strings.Contains(msg, "+4512345678") {
		t.Fatalf("apology must contain the phone number: %q", msg)
	}
}

func TestLocalReply(t *testing.T) {
	reply, err := LocalReply{}.Send(context.Background(), "En Margherita", store())
	if err != nil {
		t.Fatalf("LocalReply: %v", err)
	}
	if !strings.Contains(reply, "Napoli") || !strings.Contains(reply, "+4512345678") {
		t.Fatalf("local reply missing store context: %q", reply)
	}
}
