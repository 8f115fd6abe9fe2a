package scryfall

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

func testClient(serverURL string) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 5 * time.Second},
		rateLimiter: rate.NewLimiter(rate.Inf, 1),
		userAgent:   "deckforge-test/1.0",
		baseURL:     serverURL,
	}
}

func TestGetCardNamedExact(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cards/named" {
			t.Errorf("path = %s, want /cards/named", r.URL.Path)
		}
		if got := r.URL.Query().Get("exact"); got != "Sol Ring" {
			t.Errorf("exact = %q, want Sol Ring", got)
		}
		if ua := r.Header.Get("User-Agent"); ua == "" {
			t.Error("request missing User-Agent header")
		}
		_, _ = w.Write([]byte(`{"id":"sr1","name":"Sol Ring","type_line":"Artifact","cmc":1,"layout":"normal"}`))
	}))
	defer srv.Close()

	card, err := testClient(srv.URL).GetCardNamedExact(context.Background(), "Sol Ring")
	if err != nil {
		t.Fatalf("GetCardNamedExact() error = %v", err)
	}
	if card.Name != "Sol Ring" || card.ID != "sr1" {
		t.Errorf("card = %+v", card)
	}
}

func TestGetCardNamedExactNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetCardNamedExact(context.Background(), "No Such Card")
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("error = %v, want NotFoundError", err)
	}
}

func TestDoRequestRetriesOn429(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"id":"sr1","name":"Sol Ring","layout":"normal"}`))
	}))
	defer srv.Close()

	card, err := testClient(srv.URL).GetCardNamedExact(context.Background(), "Sol Ring")
	if err != nil {
		t.Fatalf("GetCardNamedExact() error = %v", err)
	}
	if card.Name != "Sol Ring" {
		t.Errorf("card name = %s", card.Name)
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server calls = %d, want one retry", got)
	}
}

func TestDoRequestAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"status":400,"code":"bad_request","details":"invalid exact name"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).GetCardNamedExact(context.Background(), "???")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want APIError", err)
	}
	if apiErr.Details != "invalid exact name" {
		t.Errorf("details = %q", apiErr.Details)
	}
}

func TestGetBulkData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bulk-data" {
			t.Errorf("path = %s, want /bulk-data", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"object":"list","data":[
			{"type":"default_cards","download_uri":"https://bulk.example/default.json"},
			{"type":"oracle_cards","download_uri":"https://bulk.example/oracle.json"}
		]}`))
	}))
	defer srv.Close()

	list, err := testClient(srv.URL).GetBulkData(context.Background())
	if err != nil {
		t.Fatalf("GetBulkData() error = %v", err)
	}
	entry := list.OracleCards()
	if entry == nil || entry.DownloadURI != "https://bulk.example/oracle.json" {
		t.Errorf("OracleCards() = %+v", entry)
	}
}

func TestDownloadBulkFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Sol Ring"}]`))
	}))
	defer srv.Close()

	body, err := testClient(srv.URL).DownloadBulkFile(context.Background(), srv.URL+"/file.json")
	if err != nil {
		t.Fatalf("DownloadBulkFile() error = %v", err)
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if string(data) != `[{"name":"Sol Ring"}]` {
		t.Errorf("body = %s", data)
	}
}

func TestOracleCardsMissing(t *testing.T) {
	list := &BulkDataList{Data: []BulkData{{Type: "default_cards"}}}
	if got := list.OracleCards(); got != nil {
		t.Errorf("OracleCards() = %+v, want nil", got)
	}
}
