package chi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aadb-project/aadb/internal/domain"
)

func actorEcho() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a := ActorFromContext(r.Context())
		writeJSON(w, http.StatusOK, map[string]string{"user": a.User, "role": a.Role})
	})
}

func serve(h http.Handler, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/v1/records", http.NoBody)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

var testKeys = []Key{
	{Token: "user-key", User: "alice", Role: domain.RoleUser},
	{Token: "admin-key", User: "root", Role: domain.RoleAdmin},
}

func TestActorMiddleware_NoKeys_LocalAdmin(t *testing.T) {
	for _, keys := range [][]Key{nil, {{Token: ""}}} {
		rr := serve(ActorMiddleware(keys)(actorEcho()), "")
		var body map[string]string
		_ = json.NewDecoder(rr.Body).Decode(&body)
		if body["user"] != LocalUser || body["role"] != domain.RoleAdmin {
			t.Errorf("keys %v: actor = %v, want local admin", keys, body)
		}
	}
}

func TestActorMiddleware_MissingHeader_Anonymous(t *testing.T) {
	rr := serve(ActorMiddleware(testKeys)(actorEcho()), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("got %d, want 200", rr.Code)
	}
	var body map[string]string
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if body["user"] != "" {
		t.Errorf("expected anonymous, got %v", body)
	}
}

func TestActorMiddleware_ValidKey(t *testing.T) {
	rr := serve(ActorMiddleware(testKeys)(actorEcho()), "Bearer admin-key")
	var body map[string]string
	_ = json.NewDecoder(rr.Body).Decode(&body)
	if body["user"] != "root" || body["role"] != domain.RoleAdmin {
		t.Errorf("actor = %v", body)
	}
}

func TestActorMiddleware_Rejections(t *testing.T) {
	tests := []struct {
		name string
		auth string
	}{
		{"wrong scheme", "Basic dXNlcjpwYXNz"},
		{"unknown token", "Bearer nope"},
		{"lowercase bearer", "bearer user-key"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(ActorMiddleware(testKeys)(actorEcho()), tt.auth)
			if rr.Code != http.StatusUnauthorized {
				t.Errorf("got %d, want 401", rr.Code)
			}
			var resp ErrorResponse
			if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Code != CodeUnauthorized {
				t.Errorf("code = %q", resp.Code)
			}
		})
	}
}

func TestRequireRoles(t *testing.T) {
	mw := ActorMiddleware(testKeys)
	tests := []struct {
		name  string
		guard func(http.Handler) http.Handler
		auth  string
		want  int
	}{
		{"user: anonymous", RequireUser, "", http.StatusUnauthorized},
		{"user: user", RequireUser, "Bearer user-key", http.StatusOK},
		{"admin: anonymous", RequireAdmin, "", http.StatusUnauthorized},
		{"admin: user", RequireAdmin, "Bearer user-key", http.StatusForbidden},
		{"admin: admin", RequireAdmin, "Bearer admin-key", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(mw(tt.guard(actorEcho())), tt.auth)
			if rr.Code != tt.want {
				t.Errorf("got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}
