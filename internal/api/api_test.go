package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/starford/torii/internal/querylog"
	"github.com/starford/torii/internal/templeservice"
	"github.com/starford/torii/internal/testutil"
)

// testEnv sets up the sample dataset, a query log and the router.
// An empty authToken means disabled mode.
func testEnv(t *testing.T, authToken string) (*querylog.DB, http.Handler) {
	t.Helper()
	db := testutil.TestQueryLog(t)
	svc := templeservice.NewService(testutil.SampleHolder(t), db)
	router := NewRouter(svc, authToken != "", authToken, nil)
	return db, router
}

func search(t *testing.T, router http.Handler, target string) SearchResponse {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET %s status = %d, body = %s", target, w.Code, w.Body.String())
	}
	var resp SearchResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp
}

func TestSearchAllReturnsWholeStore(t *testing.T) {
	_, router := testEnv(t, "")

	resp := search(t, router, "/temples")
	if resp.Count != 5 {
		t.Fatalf("count = %d, want 5", resp.Count)
	}
	if resp.CountLabel != "5 temples" {
		t.Errorf("count label = %q", resp.CountLabel)
	}
	if len(resp.Markers) != 5 || len(resp.Items) != 5 {
		t.Errorf("markers = %d, items = %d, want 5/5", len(resp.Markers), len(resp.Items))
	}
	for i, item := range resp.Items {
		if item.TempleID != i+1 {
			t.Errorf("item %d id = %d, want %d", i, item.TempleID, i+1)
		}
	}
}

func TestSearchBySubstring(t *testing.T) {
	_, router := testEnv(t, "")

	resp := search(t, router, "/temples?q=SENSO")
	if resp.Count != 1 || resp.Items[0].Name != "Senso-ji" {
		t.Fatalf("items = %+v, want [Senso-ji]", resp.Items)
	}
	if resp.CountLabel != "1 temples" {
		t.Errorf("count label = %q, want %q", resp.CountLabel, "1 temples")
	}
	if resp.State.SearchTerm != "senso" {
		t.Errorf("search term = %q, want lowercased", resp.State.SearchTerm)
	}
}

func TestSearchShintoFilter(t *testing.T) {
	_, router := testEnv(t, "")

	resp := search(t, router, "/temples?filter=shinto")
	want := []string{"Meiji Shrine", "Hie Shrine", "Kanda Myojin Shrine"}
	if len(resp.Items) != len(want) {
		t.Fatalf("items = %+v", resp.Items)
	}
	for i, name := range want {
		if resp.Items[i].Name != name {
			t.Errorf("item %d = %q, want %q", i, resp.Items[i].Name, name)
		}
		if resp.Markers[i].TempleID != resp.Items[i].TempleID {
			t.Errorf("marker %d id = %d, item id = %d", i, resp.Markers[i].TempleID, resp.Items[i].TempleID)
		}
	}
}

func TestSearchNoMatch(t *testing.T) {
	_, router := testEnv(t, "")

	resp := search(t, router, "/temples?q=zzz-no-match")
	if resp.Count != 0 || resp.CountLabel != "0 temples" {
		t.Errorf("count = %d label = %q", resp.Count, resp.CountLabel)
	}
	if len(resp.Markers) != 0 || len(resp.Items) != 0 {
		t.Errorf("expected no markers or items, got %d/%d", len(resp.Markers), len(resp.Items))
	}
}

func TestSearchInvalidFilter(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/temples?filter=temple", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestGetTemple(t *testing.T) {
	_, router := testEnv(t, "")

	req := httptest.NewRequest(http.MethodGet, "/temples/3", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var detail TempleDetail
	_ = json.Unmarshal(w.Body.Bytes(), &detail)
	if detail.Name != "Zojo-ji" {
		t.Errorf("name = %q, want Zojo-ji", detail.Name)
	}
	if len(detail.Highlights) == 0 || detail.History == "" || detail.BestTime == "" {
		t.Errorf("detail fields missing: %+v", detail)
	}
}

func TestGetTempleNotFound(t *testing.T) {
	_, router := testEnv(t, "")

	for target, want := range map[string]int{
		"/temples/99":  http.StatusNotFound,
		"/temples/abc": http.StatusBadRequest,
	} {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		if w.Code != want {
			t.Errorf("GET %s = %d, want %d", target, w.Code, want)
		}
	}
}

func TestPopularSearches(t *testing.T) {
	_, router := testEnv(t, "")

	search(t, router, "/temples?q=shrine")
	search(t, router, "/temples?q=Shrine")
	search(t, router, "/temples?q=senso")

	req := httptest.NewRequest(http.MethodGet, "/searches/popular?limit=5", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp PopularResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Terms) != 2 {
		t.Fatalf("terms = %+v, want 2", resp.Terms)
	}
	if resp.Terms[0].Term != "shrine" || resp.Terms[0].Count != 2 {
		t.Errorf("top term = %+v, want shrine x2", resp.Terms[0])
	}
}

func TestUnmatchedSearches(t *testing.T) {
	_, router := testEnv(t, "")

	search(t, router, "/temples?q=pagoda")
	search(t, router, "/temples?q=meiji")

	req := httptest.NewRequest(http.MethodGet, "/searches/unmatched", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var resp UnmatchedResponse
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Terms) != 1 || resp.Terms[0] != "pagoda" {
		t.Errorf("terms = %v, want [pagoda]", resp.Terms)
	}
}

func TestAuthTokenMode(t *testing.T) {
	_, router := testEnv(t, "secret")

	req := httptest.NewRequest(http.MethodGet, "/temples", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("no token = %d, want 401", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/temples", nil)
	req.Header.Set("Authorization", "Bearer secret")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid token = %d, want 200", w.Code)
	}
}
