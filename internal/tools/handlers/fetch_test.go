package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentfoundry/toolbench/internal/tools"
)

func fetchFrom(t *testing.T, tool tools.Descriptor, rawURL string) fetchResult {
	t.Helper()
	out, err := tool.Handler(context.Background(), map[string]any{"url": rawURL})
	require.NoError(t, err)
	var result fetchResult
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	return result
}

func allowServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, HostAllowList) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	u, err := url.Parse(server.URL)
	require.NoError(t, err)
	return server, HostAllowList{u.Hostname()}
}

func TestHTTPFetchTool_Basic(t *testing.T) {
	server, allowed := allowServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("payload"))
	})
	tool := NewHTTPFetchTool(allowed)

	result := fetchFrom(t, tool, server.URL)
	assert.Equal(t, http.StatusOK, result.Status)
	assert.Equal(t, "payload", result.Body)
	assert.Contains(t, result.ContentType, "text/plain")
	assert.False(t, result.Truncated)
}

func TestHTTPFetchTool_NonOKStatusIsData(t *testing.T) {
	server, allowed := allowServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	})
	tool := NewHTTPFetchTool(allowed)

	result := fetchFrom(t, tool, server.URL)
	assert.Equal(t, http.StatusNotFound, result.Status)
	assert.Contains(t, result.Body, "gone")
}

func TestHTTPFetchTool_BodyCap(t *testing.T) {
	server, allowed := allowServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(strings.Repeat("x", fetchMaxBody+100)))
	})
	tool := NewHTTPFetchTool(allowed)

	result := fetchFrom(t, tool, server.URL)
	assert.Len(t, result.Body, fetchMaxBody)
	assert.True(t, result.Truncated)
}

func TestHTTPFetchTool_HostNotAllowed(t *testing.T) {
	tool := NewHTTPFetchTool(HostAllowList{"api.example.com"})

	_, err := tool.Handler(context.Background(), map[string]any{"url": "https://other.example.com/x"})
	require.Error(t, err)
	assert.True(t, tools.IsNetworkPolicy(err))
}

func TestHTTPFetchTool_EmptyListUnrestricted(t *testing.T) {
	server, _ := allowServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("open"))
	})
	tool := NewHTTPFetchTool(nil)

	result := fetchFrom(t, tool, server.URL)
	assert.Equal(t, http.StatusOK, result.Status)
}

func TestHTTPFetchTool_MethodAndHeaders(t *testing.T) {
	var gotMethod, gotHeader string
	server, allowed := allowServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotHeader = r.Header.Get("X-Request-Tag")
	})
	tool := NewHTTPFetchTool(allowed)

	out, err := tool.Handler(context.Background(), map[string]any{
		"url":    server.URL,
		"method": "head",
		"headers": map[string]any{
			"X-Request-Tag": "abc",
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.Equal(t, http.MethodHead, gotMethod)
	assert.Equal(t, "abc", gotHeader)
}

func TestHTTPFetchTool_UnsupportedMethod(t *testing.T) {
	tool := NewHTTPFetchTool(nil)

	_, err := tool.Handler(context.Background(), map[string]any{
		"url":    "http://example.com",
		"method": "POST",
	})
	require.Error(t, err)
	assert.True(t, tools.IsValidation(err))
}

func TestHTTPFetchTool_NonStringHeaderRejected(t *testing.T) {
	tool := NewHTTPFetchTool(nil)

	_, err := tool.Handler(context.Background(), map[string]any{
		"url":     "http://example.com",
		"headers": map[string]any{"X-N": 5},
	})
	require.Error(t, err)
	assert.True(t, tools.IsValidation(err))
}

func TestHTTPFetchTool_BadScheme(t *testing.T) {
	tool := NewHTTPFetchTool(nil)

	_, err := tool.Handler(context.Background(), map[string]any{"url": "ftp://example.com/f"})
	require.Error(t, err)
	assert.True(t, tools.IsValidation(err))
}

func TestHTTPFetchTool_InvalidURL(t *testing.T) {
	tool := NewHTTPFetchTool(nil)

	_, err := tool.Handler(context.Background(), map[string]any{"url": "http://"})
	require.Error(t, err)
	assert.True(t, tools.IsValidation(err))
}

func TestPingTool_HostNotAllowed(t *testing.T) {
	tool := NewPingTool(HostAllowList{"allowed.example"})

	_, err := tool.Handler(context.Background(), map[string]any{"host": "blocked.example"})
	require.Error(t, err)
	assert.True(t, tools.IsNetworkPolicy(err))
}

func TestPingTool_CountBounds(t *testing.T) {
	tool := NewPingTool(nil)

	_, err := tool.Handler(context.Background(), map[string]any{
		"host":  "localhost",
		"count": float64(0),
	})
	require.Error(t, err)
	assert.True(t, tools.IsValidation(err))

	_, err = tool.Handler(context.Background(), map[string]any{
		"host":  "localhost",
		"count": float64(9),
	})
	require.Error(t, err)
	assert.True(t, tools.IsValidation(err))
}

func TestPingTool_AllowListCaseInsensitive(t *testing.T) {
	list := HostAllowList{"API.Example.COM"}
	assert.True(t, list.Allows("api.example.com"))
	assert.False(t, list.Allows("api.example.org"))
}
