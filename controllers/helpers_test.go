package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"getmait/controllers"
	"getmait/middleware"
	"getmait/models"
	"getmait/pkg/cache"
	"getmait/pkg/session"
	"getmait/pkg/supabase"
	"getmait/pkg/tenant"
	"getmait/routes"
)

// fakeBackend is a minimal PostgREST stand-in serving one store and its menu.
type fakeBackend struct {
	store      models.Store
	menu       []models.MenuItem
	storeFail  bool
	menuFail   bool
	storeEmpty bool
}

func (f *fakeBackend) handler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/rest/v1/stores":
			if f.storeFail {
				http.Error(w, "backend down", http.StatusInternalServerError)
				return
			}
			if f.storeEmpty || r.URL.Query().Get("slug") != "eq."+f.store.Slug {
				w.Write([]byte(`[]`))
				return
			}
			if r.URL.Query().Get("is_open") == "eq.true" && !f.store.IsOpen {
				w.Write([]byte(`[]`))
				return
			}
			json.NewEncoder(w).Encode([]models.Store{f.store})
		case "/rest/v1/menu":
			if f.menuFail {
				http.Error(w, "backend down", http.StatusInternalServerError)
				return
			}
			json.NewEncoder(w).Encode(f.menu)
		default:
			t.Errorf("unexpected backend path %q", r.URL.Path)
			http.NotFound(w, r)
		}
	})
}

type fakeRelay struct {
	reply string
	err   error
	last  string
}

func (f *fakeRelay) Send(_ context.Context, message string, _ models.StoreSummary) (string, error) {
	f.last = message
	return f.reply, f.err
}

func napoliStore() models.Store {
	return models.Store{
		ID:           "st-1",
		Slug:         "napoli-esbjerg",
		Name:         "Napoli",
		ContactPhone: "+4512345678",
		City:         "Esbjerg",
		IsOpen:       true,
	}
}

func napoliSummary() models.StoreSummary {
	return models.StoreSummary{ID: "st-1", Name: "Napoli", ContactPhone: "+4512345678", City: "Esbjerg"}
}

func napoliMenu() []models.MenuItem {
	return []models.MenuItem{
		{ID: "m1", StoreID: "st-1", Category: "pizza", Name: "Roma", Description: "Tomat, ost, skinke", Price: 89, Available: true},
	}
}

// newApp wires the full router against a fake backend, the way main does.
func newApp(t *testing.T, backend *fakeBackend, relay controllers.Relay) (*gin.Engine, controllers.Deps) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	middleware.SetRateLimitConfig(time.Second, 1000)

	srv := httptest.NewServer(backend.handler(t))
	t.Cleanup(srv.Close)

	deps := controllers.Deps{
		Backend:  supabase.New(srv.URL, "test-key"),
		Relay:    relay,
		Sessions: session.NewStore("test-secret", time.Minute),
		Resolver: tenant.Resolver{
			RootDomain:    "getmait.dk",
			PreviewDomain: "sslip.io",
			DefaultSlug:   "napoli-esbjerg",
		},
		Snapshots: cache.New(0, 0), // caching off in tests
	}

	r := gin.New()
	routes.RegisterRoutes(r, deps)
	return r, deps
}

func doJSON(t *testing.T, r *gin.Engine, req *http.Request) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	var body map[string]any
	if len(rr.Body.Bytes()) > 0 {
		if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
			t.Fatalf("response is not JSON: %v; body=%s", err, rr.Body.String())
		}
	}
	return rr, body
}
