package supabase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"

	"getmait/models"
)

// ErrStoreNotFound signals an empty result for a slug lookup, distinct from
// transport or query errors so callers can present different messages.
var ErrStoreNotFound = errors.New("store not found")

// Client reads the two storefront resources from the Supabase REST interface.
// All access is anonymous-scope and read-only; the anon key is sent both as
// the apikey header and as a bearer token, the way PostgREST expects it.
type Client struct {
	baseURL string
	anonKey string
}

func New(baseURL, anonKey string) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), anonKey: anonKey}
}

// GetStore returns the full store row for slug.
func (c *Client) GetStore(ctx context.Context, slug string) (models.Store, error) {
	q := url.Values{}
	q.Set("slug", "eq."+slug)
	q.Set("select", "*")

	var rows []models.Store
	if err := c.get(ctx, "stores", q, &rows); err != nil {
		return models.Store{}, err
	}
	if len(rows) == 0 {
		return models.Store{}, ErrStoreNotFound
	}
	return rows[0], nil
}

// GetStoreSummary returns the reduced projection the chat widget needs. Only
// open stores match; a closed store reads as not found.
func (c *Client) GetStoreSummary(ctx context.Context, slug string) (models.StoreSummary, error) {
	q := url.Values{}
	q.Set("slug", "eq."+slug)
	q.Set("is_open", "eq.true")
	q.Set("select", "id,name,primary_color,contact_phone,city")

	var rows []models.StoreSummary
	if err := c.get(ctx, "stores", q, &rows); err != nil {
		return models.StoreSummary{}, err
	}
	if len(rows) == 0 {
		return models.StoreSummary{}, ErrStoreNotFound
	}
	return rows[0], nil
}

// GetMenu returns the available menu rows for a store, ordered by category
// then ascending price. The backend does the filtering and sorting; callers
// must not re-sort. A store with no available items yields an empty slice.
func (c *Client) GetMenu(ctx context.Context, storeID string) ([]models.MenuItem, error) {
	q := url.Values{}
	q.Set("store_id", "eq."+storeID)
	q.Set("tilgaengelig", "eq.true")
	q.Set("order", "kategori.asc,pris.asc")

	var rows []models.MenuItem
	if err := c.get(ctx, "menu", q, &rows); err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []models.MenuItem{}
	}
	return rows, nil
}

func (c *Client) get(ctx context.Context, resource string, query url.Values, out any) error {
	u := fmt.Sprintf("%s/rest/v1/%s?%s", c.baseURL, resource, query.Encode())
	log.Printf("[supabase] GET %s", u)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("apikey", c.anonKey)
	req.Header.Set("Authorization", "Bearer "+c.anonKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("http error: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read error: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(respBytes)))
	}
	if err := json.Unmarshal(respBytes, out); err != nil {
		return fmt.Errorf("decode error: %w", err)
	}
	return nil
}
