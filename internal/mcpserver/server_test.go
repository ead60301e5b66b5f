package mcpserver

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/torii/internal/templeservice"
	"github.com/starford/torii/internal/testutil"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	svc := templeservice.NewService(testutil.SampleHolder(t), testutil.TestQueryLog(t))
	return New(svc, "test")
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	// mcp-go has no direct "call tool" test helper, so handlers are
	// invoked directly.
	var result *mcp.CallToolResult
	var err error

	switch name {
	case "search_temples":
		result, err = srv.searchTemples(ctx, req)
	case "get_temple":
		result, err = srv.getTemple(ctx, req)
	case "list_filters":
		result, err = srv.listFilters(ctx, req)
	case "get_dataset_contract":
		result, err = srv.getDatasetContract(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func TestSearchTemples(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "search_temples", map[string]interface{}{
		"query": "Senso",
	})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	var res templeservice.Results
	if err := json.Unmarshal([]byte(resultText(r)), &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.Count != 1 || res.Items[0].Name != "Senso-ji" {
		t.Errorf("results = %+v, want [Senso-ji]", res.Items)
	}
	if res.CountLabel != "1 temples" {
		t.Errorf("count label = %q", res.CountLabel)
	}
}

func TestSearchTemplesFilter(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "search_temples", map[string]interface{}{
		"filter": "famous",
	})
	var res templeservice.Results
	_ = json.Unmarshal([]byte(resultText(r)), &res)
	if res.Count != 5 {
		t.Errorf("famous count = %d, want 5", res.Count)
	}
}

func TestSearchTemplesInvalidFilter(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "search_temples", map[string]interface{}{"filter": "pagoda"})
	if !r.IsError {
		t.Error("expected error for unknown filter")
	}
}

func TestGetTemple(t *testing.T) {
	srv := testServer(t)

	r := callTool(t, srv, "get_temple", map[string]interface{}{"id": float64(2)})
	if r.IsError {
		t.Fatalf("unexpected error: %s", resultText(r))
	}
	if !strings.Contains(resultText(r), "Meiji Shrine") {
		t.Errorf("result = %q, want Meiji Shrine", resultText(r))
	}
}

func TestGetTempleMissing(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_temple", map[string]interface{}{"id": float64(42)})
	if !r.IsError {
		t.Error("expected error for missing temple")
	}
}

func TestListFilters(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "list_filters", map[string]interface{}{})
	if got := resultText(r); got != "all\nbuddhist\nshinto\nfamous" {
		t.Errorf("filters = %q", got)
	}
}

func TestDatasetContract(t *testing.T) {
	srv := testServer(t)
	r := callTool(t, srv, "get_dataset_contract", map[string]interface{}{})
	if !strings.Contains(resultText(r), "temples:") {
		t.Error("contract should contain an example document")
	}
}
