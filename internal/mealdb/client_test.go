package mealdb

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestParseBaseURL_DefaultsAndNormalizes(t *testing.T) {
	u, err := parseBaseURL("")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.String() != DefaultBaseURL {
		t.Fatalf("base = %q, want %q", u.String(), DefaultBaseURL)
	}

	u, err = parseBaseURL("http://example.com:1234/api/json/v1/1/?x=1#frag")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Path != "/api/json/v1/1" || u.RawQuery != "" || u.Fragment != "" {
		t.Fatalf("url not normalized: %q", u.String())
	}

	u, err = parseBaseURL("meals.local/api")
	if err != nil {
		t.Fatalf("parseBaseURL returned error: %v", err)
	}
	if u.Scheme != "https" || u.Host != "meals.local" {
		t.Fatalf("url = %q, want https://meals.local/api", u.String())
	}

	if _, err := parseBaseURL("http://"); err == nil {
		t.Fatalf("parseBaseURL(http://) returned nil error, want missing host")
	}
}

func TestClient_FetchByCategoryEncodesQueryAndPreservesOrder(t *testing.T) {
	t.Parallel()

	var gotPath string
	var gotQuery url.Values
	var gotUserAgent, gotAccept string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		gotUserAgent = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"meals":[
			{"idMeal":"3","strMeal":"Tart","strMealThumb":"http://x/t.jpg"},
			{"idMeal":"1","strMeal":"Cake","strMealThumb":"http://x/c.jpg"},
			{"idMeal":"2","strMeal":"Pie","strMealThumb":"http://x/p.jpg"}
		]}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL + "/api/json/v1/1")
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)

	got, err := c.FetchByCategory(ctx, "Sweet & Sour")
	if err != nil {
		t.Fatalf("FetchByCategory returned error: %v", err)
	}
	if gotPath != "/api/json/v1/1/filter.php" {
		t.Fatalf("path = %q, want /api/json/v1/1/filter.php", gotPath)
	}
	if gotQuery.Get("c") != "Sweet & Sour" {
		t.Fatalf("query c = %q, want %q", gotQuery.Get("c"), "Sweet & Sour")
	}
	if !strings.HasPrefix(gotUserAgent, "crumb/") {
		t.Fatalf("User-Agent = %q, want crumb/*", gotUserAgent)
	}
	if gotAccept != "application/json" {
		t.Fatalf("Accept = %q, want application/json", gotAccept)
	}

	ids := make([]string, 0, len(got))
	for _, s := range got {
		ids = append(ids, s.ID)
	}
	if strings.Join(ids, ",") != "3,1,2" {
		t.Fatalf("ids = %v, want server order [3 1 2]", ids)
	}
	if got[2].ThumbnailURL != "http://x/p.jpg" {
		t.Fatalf("thumbnail = %q, want http://x/p.jpg", got[2].ThumbnailURL)
	}
}

func TestClient_FetchByCategoryEmptyResults(t *testing.T) {
	t.Parallel()

	for _, body := range []string{`{"meals":null}`, `{"meals":[]}`} {
		body := body
		t.Run(body, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(body))
			}))
			t.Cleanup(server.Close)

			c, err := NewClient(server.URL)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			got, err := c.FetchByCategory(context.Background(), "Nothing")
			if err != nil {
				t.Fatalf("FetchByCategory returned error: %v", err)
			}
			if got == nil || len(got) != 0 {
				t.Fatalf("FetchByCategory = %#v, want empty non-nil slice", got)
			}
		})
	}
}

func TestClient_RejectsBlankInputWithoutRequest(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if _, err := c.FetchByCategory(context.Background(), "  "); !errors.Is(err, ErrEmptyCategory) {
		t.Fatalf("FetchByCategory error = %v, want ErrEmptyCategory", err)
	}
	if _, _, err := c.FetchByID(context.Background(), ""); !errors.Is(err, ErrEmptyID) {
		t.Fatalf("FetchByID error = %v, want ErrEmptyID", err)
	}
	if hits != 0 {
		t.Fatalf("server hits = %d, want 0", hits)
	}
}

func TestClient_HTTPErrorAndDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/filter.php":
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("{not-json"))
		case "/lookup.php":
			http.Error(w, "nope", http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}

	_, err = c.FetchByCategory(context.Background(), "Dessert")
	if !IsDecode(err) || IsNetwork(err) {
		t.Fatalf("FetchByCategory error = %v, want DecodeError only", err)
	}

	_, _, err = c.FetchByID(context.Background(), "1")
	if !IsNetwork(err) || IsDecode(err) {
		t.Fatalf("FetchByID error = %v, want NetworkError only", err)
	}
	if StatusCode(err) != http.StatusServiceUnavailable {
		t.Fatalf("StatusCode = %d, want 503", StatusCode(err))
	}
	if !strings.Contains(err.Error(), "returned status 503") {
		t.Fatalf("error = %q, want it to mention status 503", err.Error())
	}
}

func TestClient_UnreachableHostIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	base := server.URL
	server.Close()

	c, err := NewClient(base)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchByCategory(context.Background(), "Dessert")
	if !IsNetwork(err) {
		t.Fatalf("error = %v, want NetworkError", err)
	}
	if StatusCode(err) != 0 {
		t.Fatalf("StatusCode = %d, want 0 for transport failure", StatusCode(err))
	}
}

func TestClient_TimeoutIsNetworkError(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(server.Close)
	t.Cleanup(func() { close(release) })

	c, err := NewClient(server.URL, WithTimeout(50*time.Millisecond))
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, _, err = c.FetchByID(context.Background(), "1")
	var nerr *NetworkError
	if !errors.As(err, &nerr) {
		t.Fatalf("error = %v, want NetworkError", err)
	}
	if !nerr.Timeout() {
		t.Fatalf("Timeout() = false for %v, want true", err)
	}
}

func TestClient_CancelledContextIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = c.FetchByCategory(ctx, "Dessert")
	if !IsNetwork(err) || !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want NetworkError wrapping context.Canceled", err)
	}
}

func TestClient_SchemaMismatchIsDecodeError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		path string
		body string
	}{
		{"listing missing meals key", "/filter.php", `{"drinks":[]}`},
		{"listing meals not array", "/filter.php", `{"meals":"nope"}`},
		{"listing entry missing id", "/filter.php", `{"meals":[{"strMeal":"Cake","strMealThumb":"http://x/c.jpg"}]}`},
		{"listing entry missing name", "/filter.php", `{"meals":[{"idMeal":"1","strMealThumb":"http://x/c.jpg"}]}`},
		{"listing entry missing thumb", "/filter.php", `{"meals":[{"idMeal":"1","strMeal":"Cake"}]}`},
		{"listing null entry", "/filter.php", `{"meals":[null]}`},
		{"lookup missing id", "/lookup.php", `{"meals":[{"strMeal":"Cake"}]}`},
		{"lookup missing name", "/lookup.php", `{"meals":[{"idMeal":"1"}]}`},
		{"lookup numeric slot", "/lookup.php", `{"meals":[{"idMeal":"1","strMeal":"Cake","strIngredient3":7}]}`},
		{"lookup truncated", "/lookup.php", `{"meals":[{"idMeal":"1"`},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tc.body))
			}))
			t.Cleanup(server.Close)

			c, err := NewClient(server.URL)
			if err != nil {
				t.Fatalf("NewClient returned error: %v", err)
			}
			if tc.path == "/filter.php" {
				got, err := c.FetchByCategory(context.Background(), "Dessert")
				if !IsDecode(err) {
					t.Fatalf("FetchByCategory = %#v, %v; want DecodeError", got, err)
				}
				return
			}
			got, found, err := c.FetchByID(context.Background(), "1")
			if !IsDecode(err) || found {
				t.Fatalf("FetchByID = %#v, %v, %v; want DecodeError", got, found, err)
			}
		})
	}
}

func TestClient_OversizedBodyIsDecodeError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"meals":null}`))
		_, _ = w.Write([]byte(strings.Repeat(" ", maxResponseBytes)))
	}))
	t.Cleanup(server.Close)

	c, err := NewClient(server.URL)
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	_, err = c.FetchByCategory(context.Background(), "Dessert")
	if !IsDecode(err) {
		t.Fatalf("FetchByCategory error = %v, want DecodeError", err)
	}
	if !strings.Contains(err.Error(), "response exceeds 4 MiB") {
		t.Fatalf("error = %q, want size message", err.Error())
	}
}
