package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"getmait/models"
)

var (
	ErrNotFound = errors.New("session not found or expired")
	// ErrBusy means a send is already in flight for this session; only one
	// outstanding exchange is allowed, there is no queue and no cancellation.
	ErrBusy = errors.New("send already in flight")
)

// WelcomeMessage is the synthesized first transcript entry for a store.
func WelcomeMessage(storeName string) string {
	return fmt.Sprintf("Hejsa! Jeg er din personlige AI-Mait her hos %s. 🍕 Hvad drømmer din mave om i dag, Mait? Jeg er klar til at hjælpe dig med din bestilling direkte her i chatten!", storeName)
}

type state struct {
	store      models.StoreSummary
	transcript []models.ChatMessage
	busy       bool
	exp        time.Time
}

// Store keeps chat sessions in memory for the duration of a page session.
// Transcripts are ephemeral; nothing is written to the backend. Session ids
// travel as HMAC-signed tokens so the widget cannot guess another session.
type Store struct {
	mu       sync.Mutex
	secret   []byte
	ttl      time.Duration
	sessions map[string]*state
}

func NewStore(secret string, ttl time.Duration) *Store {
	s := &Store{
		secret:   []byte(secret),
		ttl:      ttl,
		sessions: make(map[string]*state),
	}
	go s.sweep(time.Minute)
	return s
}

// Open creates a session for a resolved store, seeds the welcome message and
// returns the session id, its signed token and the initial transcript.
func (s *Store) Open(store models.StoreSummary) (string, string, []models.ChatMessage, error) {
	id := uuid.NewString()
	welcome := models.ChatMessage{
		Role:      models.RoleAssistant,
		Content:   WelcomeMessage(store.Name),
		Timestamp: time.Now(),
	}

	token, err := s.signToken(id)
	if err != nil {
		return "", "", nil, err
	}

	s.mu.Lock()
	s.sessions[id] = &state{
		store:      store,
		transcript: []models.ChatMessage{welcome},
		exp:        time.Now().Add(s.ttl),
	}
	s.mu.Unlock()

	return id, token, []models.ChatMessage{welcome}, nil
}

// Get returns the store summary and a copy of the transcript.
func (s *Store) Get(id string) (models.StoreSummary, []models.ChatMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.live(id)
	if err != nil {
		return models.StoreSummary{}, nil, err
	}
	transcript := append([]models.ChatMessage(nil), st.transcript...)
	return st.store, transcript, nil
}

// Append adds one transcript entry and refreshes the session TTL.
func (s *Store) Append(id string, msg models.ChatMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.live(id)
	if err != nil {
		return err
	}
	st.transcript = append(st.transcript, msg)
	st.exp = time.Now().Add(s.ttl)
	return nil
}

// BeginSend marks the session busy for one exchange. Callers must pair it
// with EndSend whether the exchange succeeds or fails.
func (s *Store) BeginSend(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, err := s.live(id)
	if err != nil {
		return err
	}
	if st.busy {
		return ErrBusy
	}
	st.busy = true
	return nil
}

func (s *Store) EndSend(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if st, ok := s.sessions[id]; ok {
		st.busy = false
	}
}

// ParseToken validates a session token and returns the session id. Only HMAC
// signatures are accepted.
func (s *Store) ParseToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("invalid session token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("invalid session token claims")
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("invalid subject in session token")
	}
	return sub, nil
}

func (s *Store) signToken(id string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": id,
		"jti": uuid.NewString(),
		"iat": now.Unix(),
		"exp": now.Add(s.ttl).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// live requires s.mu held; drops the session lazily when expired.
func (s *Store) live(id string) (*state, error) {
	st, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	if time.Now().After(st.exp) {
		delete(s.sessions, id)
		return nil, ErrNotFound
	}
	return st, nil
}

func (s *Store) sweep(interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for range t.C {
		now := time.Now()
		s.mu.Lock()
		for id, st := range s.sessions {
			if now.After(st.exp) {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}
