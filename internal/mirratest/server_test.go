package mirratest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	mirra "github.com/mirra-ai/mirra-go"
)

func doRequest(t *testing.T, s *Server, method, path, apiKey, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-API-Key", apiKey)
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)

	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("response is not an envelope: %v", err)
	}
	return rec, env
}

func TestAuthRequired(t *testing.T) {
	s := New("secret")
	rec, env := doRequest(t, s, http.MethodGet, "/agents", "wrong", "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("got status %d, want 401", rec.Code)
	}
	if env.Success {
		t.Error("expected success=false")
	}
	if env.Error == nil || env.Error.Code != "unauthorized" {
		t.Errorf("got error %+v, want code unauthorized", env.Error)
	}
}

func TestEveryResponseIsEnveloped(t *testing.T) {
	s := New("secret")

	// Success path
	_, env := doRequest(t, s, http.MethodGet, "/agents", "secret", "")
	if !env.Success {
		t.Error("list agents: expected success=true")
	}

	// Error path
	rec, env := doRequest(t, s, http.MethodGet, "/agents/nope", "secret", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("got status %d, want 404", rec.Code)
	}
	if env.Success || env.Error == nil {
		t.Error("expected enveloped error")
	}
}

func TestMarketplaceFiltering(t *testing.T) {
	s := New("secret")
	desc := "Parses invoices from email"
	s.SeedMarketplaceItem(mirra.MarketplaceItem{ID: "a", Name: "Invoice Bot", Type: mirra.MarketplaceTypeAgent, Author: "x", Description: &desc})
	s.SeedMarketplaceItem(mirra.MarketplaceItem{ID: "b", Name: "Backup Script", Type: mirra.MarketplaceTypeScript, Author: "x"})
	s.SeedMarketplaceItem(mirra.MarketplaceItem{ID: "c", Name: "Sales Bot", Type: mirra.MarketplaceTypeAgent, Author: "x"})

	cases := []struct {
		name  string
		query string
		want  int
	}{
		{"no filter", "/marketplace", 3},
		{"by type", "/marketplace?type=agent", 2},
		{"type and limit", "/marketplace?type=agent&limit=1", 1},
		{"offset past end", "/marketplace?offset=5", 0},
		{"search matches description", "/marketplace?search=invoices", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, env := doRequest(t, s, http.MethodGet, tc.query, "secret", "")
			data, _ := json.Marshal(env.Data)
			var items []mirra.MarketplaceItem
			if err := json.Unmarshal(data, &items); err != nil {
				t.Fatalf("decode items: %v", err)
			}
			if len(items) != tc.want {
				t.Errorf("got %d items, want %d", len(items), tc.want)
			}
		})
	}
}
