package fetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestGetHtml(t *testing.T) {
	var gotAgent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		switch r.URL.Path {
		case "/ok":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte(`<html><head><title>Mensa</title></head></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(Options{UserAgent: "test-agent"})

	doc, body, err := f.GetHtml(context.Background(), srv.URL+"/ok")
	if err != nil {
		t.Fatalf("GetHtml() error = %v", err)
	}
	if got := doc.Find("title").Text(); got != "Mensa" {
		t.Errorf("title = %q, want %q", got, "Mensa")
	}
	if !strings.Contains(string(body), "<title>") {
		t.Errorf("body missing markup: %q", body)
	}
	if gotAgent != "test-agent" {
		t.Errorf("User-Agent = %q, want %q", gotAgent, "test-agent")
	}

	if _, err := f.GetHtmlBytes(context.Background(), srv.URL+"/missing"); err == nil {
		t.Errorf("GetHtmlBytes() on 404 error = nil, want error")
	} else if !strings.Contains(err.Error(), "404") {
		t.Errorf("error = %v, want status code in message", err)
	}
}

func TestGetHtmlBytesHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if _, err := NewFetcher(Options{}).GetHtmlBytes(ctx, srv.URL); err == nil {
		t.Errorf("GetHtmlBytes() error = nil, want context deadline")
	}
}
