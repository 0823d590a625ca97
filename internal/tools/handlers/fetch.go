package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/agentfoundry/toolbench/internal/schema"
	"github.com/agentfoundry/toolbench/internal/tools"
)

// fetchMaxBody caps the response body kept in a tool result.
const fetchMaxBody = 256 * 1024

// fetchResult is the JSON payload for http_fetch. Non-2xx statuses are
// data the model can react to, not failures.
type fetchResult struct {
	Status      int    `json:"status"`
	ContentType string `json:"contentType,omitempty"`
	Body        string `json:"body"`
	Truncated   bool   `json:"truncated,omitempty"`
	DurationMs  int64  `json:"durationMs"`
}

// fetchMethods are the request methods http_fetch accepts. None carry a
// request body.
var fetchMethods = map[string]bool{
	http.MethodGet:    true,
	http.MethodHead:   true,
	http.MethodDelete: true,
}

// NewHTTPFetchTool returns the http_fetch descriptor. Only http and
// https URLs whose hostname is on the allow-list are fetched.
func NewHTTPFetchTool(allowed HostAllowList) tools.Descriptor {
	client := &http.Client{Timeout: 30 * time.Second}
	headersSchema := &schema.Node{
		Kind:        schema.KindObject,
		Description: "Request headers as a name-to-value map.",
	}
	return tools.Descriptor{
		Name:        "http_fetch",
		Description: "Fetch a URL over HTTP. The hostname must be on the configured allow-list. Returns status, content type and up to 256 KiB of body.",
		InputSchema: schema.Object(map[string]*schema.Node{
			"url":     schema.String("HTTP or HTTPS URL to fetch."),
			"method":  schema.String("Request method: GET, HEAD or DELETE. Defaults to GET."),
			"headers": headersSchema,
		}, "url"),
		Handler: func(ctx context.Context, args map[string]any) (string, error) {
			rawURL, err := stringArg(args, "url")
			if err != nil {
				return "", err
			}
			method, err := optionalStringArg(args, "method", http.MethodGet)
			if err != nil {
				return "", err
			}
			method = strings.ToUpper(method)
			if !fetchMethods[method] {
				return "", tools.NewValidationErrorf("unsupported method %q", method)
			}
			headers, err := headerMap(args)
			if err != nil {
				return "", err
			}
			u, err := url.Parse(rawURL)
			if err != nil {
				return "", tools.NewValidationErrorf("invalid url: %v", err)
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return "", tools.NewValidationErrorf("unsupported scheme %q", u.Scheme)
			}
			if u.Hostname() == "" {
				return "", tools.NewValidationErrorf("url has no host")
			}
			if !allowed.Allows(u.Hostname()) {
				return "", &tools.NetworkPolicyError{Host: u.Hostname()}
			}

			req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
			if err != nil {
				return "", tools.NewValidationErrorf("building request: %v", err)
			}
			for name, value := range headers {
				req.Header.Set(name, value)
			}

			start := time.Now()
			resp, err := client.Do(req)
			if err != nil {
				return "", fmt.Errorf("fetching %s: %w", rawURL, err)
			}
			defer resp.Body.Close()

			body, err := io.ReadAll(io.LimitReader(resp.Body, fetchMaxBody+1))
			if err != nil {
				return "", fmt.Errorf("reading response from %s: %w", rawURL, err)
			}
			truncated := false
			if len(body) > fetchMaxBody {
				body = body[:fetchMaxBody]
				truncated = true
			}

			payload, err := json.Marshal(fetchResult{
				Status:      resp.StatusCode,
				ContentType: resp.Header.Get("Content-Type"),
				Body:        string(body),
				Truncated:   truncated,
				DurationMs:  time.Since(start).Milliseconds(),
			})
			if err != nil {
				return "", fmt.Errorf("encoding fetch result: %w", err)
			}
			return string(payload), nil
		},
	}
}

// headerMap extracts the optional headers argument, requiring every
// value to be a string.
func headerMap(args map[string]any) (map[string]string, error) {
	v, ok := args["headers"]
	if !ok || v == nil {
		return nil, nil
	}
	raw, ok := v.(map[string]any)
	if !ok {
		return nil, tools.NewValidationErrorf("headers must be an object")
	}
	out := make(map[string]string, len(raw))
	for name, value := range raw {
		s, ok := value.(string)
		if !ok {
			return nil, tools.NewValidationErrorf("header %s must be a string", name)
		}
		out[name] = s
	}
	return out, nil
}
