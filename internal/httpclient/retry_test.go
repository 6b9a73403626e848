package httpclient

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"seopilot/internal/logger"
)

func newTestClient(opts ...Option) *Client {
	base := []Option{WithMaxAttempts(3), WithBaseDelay(time.Millisecond)}
	return New(logger.New("error"), append(base, opts...)...)
}

func TestDoSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Test") != "yes" {
			t.Errorf("header not forwarded")
		}
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	status, body, err := newTestClient().Do(context.Background(), "GET", srv.URL, map[string]string{"X-Test": "yes"}, nil)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if status != http.StatusOK || string(body) != `{"ok":true}` {
		t.Errorf("Do = %d %q", status, body)
	}
}

func TestDoRetriesTransientFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	status, _, err := newTestClient().Do(context.Background(), "GET", srv.URL, nil, nil)
	if err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if status != http.StatusOK {
		t.Errorf("status = %d", status)
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server hit %d times, want 3", got)
	}
}

func TestDoDoesNotRetryClientErrors(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusUnprocessableEntity)
	}))
	defer srv.Close()

	status, _, err := newTestClient().Do(context.Background(), "POST", srv.URL, nil, []byte(`{}`))
	if err == nil {
		t.Fatal("expected error")
	}
	if status != http.StatusUnprocessableEntity {
		t.Errorf("status = %d", status)
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server hit %d times, want 1", got)
	}
}

func TestDoReplaysBodyAcrossAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ := io.ReadAll(r.Body)
		if string(got) != `{"a":1}` {
			t.Errorf("attempt %d body = %q", atomic.LoadInt32(&calls)+1, got)
		}
		if atomic.AddInt32(&calls, 1) < 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if _, _, err := newTestClient().Do(context.Background(), "POST", srv.URL, nil, []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
}

func TestDoGivesUpAfterMaxAttempts(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, _, err := newTestClient().Do(context.Background(), "GET", srv.URL, nil, nil); err == nil {
		t.Fatal("expected error")
	}
	if got := atomic.LoadInt32(&calls); got != 3 {
		t.Errorf("server hit %d times, want 3", got)
	}
}

func TestDoHonorsRetryAfter(t *testing.T) {
	var calls int32
	start := time.Now()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.Header().Set("Retry-After", "0.2")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	if _, _, err := newTestClient().Do(context.Background(), "GET", srv.URL, nil, nil); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if elapsed := time.Since(start); elapsed < 200*time.Millisecond {
		t.Errorf("retried after %v, want at least 200ms", elapsed)
	}
}

func TestDoStopsOnContextCancel(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	c := newTestClient(WithBaseDelay(time.Second))
	if _, _, err := c.Do(ctx, "GET", srv.URL, nil, nil); err == nil {
		t.Fatal("expected context error")
	}
}
