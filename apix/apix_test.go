package apix

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethanz-code/appkit/core/errors"
	"github.com/ethanz-code/appkit/testingx"
)

func TestNewRequiresBaseURL(t *testing.T) {
	_, err := New()
	testingx.AssertCode(t, err, errors.CodeInvalidArgument)

	_, err = New(WithBaseURL("not a url"))
	testingx.AssertCode(t, err, errors.CodeInvalidArgument)
}

func TestNewDefaults(t *testing.T) {
	client, err := New(WithBaseURL("https://api.example.com"))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if client.BaseURL() != "https://api.example.com" {
		t.Errorf("BaseURL() = %q", client.BaseURL())
	}
	if client.httpClient.Timeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", client.httpClient.Timeout)
	}
}

func TestDefaultHeaders(t *testing.T) {
	calls := 0
	var gotContentType, gotAuth []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotContentType = append(gotContentType, r.Header.Get("Content-Type"))
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"data": nil, "msg": "ok", "code": 200})
	}))
	defer server.Close()

	client, err := New(
		WithBaseURL(server.URL),
		WithTokenProvider(func() string {
			calls++
			return "tok-1"
		}),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	ctx := context.Background()
	Get[any](ctx, client, "/a")
	Get[any](ctx, client, "/b")

	// The token accessor runs once, at construction. Both requests carry the
	// header computed then.
	if calls != 1 {
		t.Errorf("token provider calls = %d, want 1", calls)
	}
	for i := range gotAuth {
		if gotAuth[i] != "Bearer tok-1" {
			t.Errorf("request %d Authorization = %q, want Bearer tok-1", i, gotAuth[i])
		}
		if gotContentType[i] != "application/json" {
			t.Errorf("request %d Content-Type = %q", i, gotContentType[i])
		}
	}
}

func TestNoAuthorizationWithoutToken(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]any{"data": nil, "msg": "ok", "code": 200})
	}))
	defer server.Close()

	client, _ := New(WithBaseURL(server.URL), WithTokenProvider(func() string { return "" }))
	Get[any](context.Background(), client, "/")

	if auth != "" {
		t.Errorf("Authorization = %q, want unset for empty token", auth)
	}
}

func TestBracketQuerySerialization(t *testing.T) {
	var rawQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode(map[string]any{"data": nil, "msg": "ok", "code": 200})
	}))
	defer server.Close()

	client, _ := New(WithBaseURL(server.URL))
	Get[any](context.Background(), client, "/items",
		WithQueryParam("a", "1", "2"),
		WithQueryParam("b", "x"),
	)

	if rawQuery != "a[]=1&a[]=2&b=x" {
		t.Errorf("RawQuery = %q, want a[]=1&a[]=2&b=x", rawQuery)
	}
}

func TestPerRequestHeaderOverride(t *testing.T) {
	var got string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("X-Trace")
		json.NewEncoder(w).Encode(map[string]any{"data": nil, "msg": "ok", "code": 200})
	}))
	defer server.Close()

	client, _ := New(WithBaseURL(server.URL))
	Get[any](context.Background(), client, "/", WithHeader("X-Trace", "t-9"))

	if got != "t-9" {
		t.Errorf("X-Trace = %q, want t-9", got)
	}
}
