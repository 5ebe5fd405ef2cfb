package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimit_BlocksPastLimit(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})
	handler := RateLimit(3, time.Minute)(next)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = "203.0.113.7:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != 200 {
			t.Fatalf("request %d: got status %d, want 200", i+1, rr.Code)
		}
	}

	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.7:1234"
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusTooManyRequests {
		t.Fatalf("got status %d, want 429", rr.Code)
	}

	// A different client keeps its own window.
	req = httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "198.51.100.9:1234"
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != 200 {
		t.Fatalf("other client: got status %d, want 200", rr.Code)
	}
}

func TestRateLimit_WindowReset(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(200)
	})
	handler := RateLimit(1, 20*time.Millisecond)(next)

	send := func(addr string) int {
		req := httptest.NewRequest("GET", "/", nil)
		req.RemoteAddr = addr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	if code := send("203.0.113.7:1234"); code != 200 {
		t.Fatalf("first request: got status %d, want 200", code)
	}
	if code := send("203.0.113.7:1234"); code != http.StatusTooManyRequests {
		t.Fatalf("within window: got status %d, want 429", code)
	}

	time.Sleep(30 * time.Millisecond)
	if code := send("203.0.113.7:1234"); code != 200 {
		t.Fatalf("after window passed: got status %d, want 200", code)
	}
}

func TestRequestID_EchoesInbound(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if rid := RequestIDFromContext(r.Context()); rid != "fixed-id" {
			t.Fatalf("context request id %q, want fixed-id", rid)
		}
		w.WriteHeader(200)
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "fixed-id")
	rr := httptest.NewRecorder()
	RequestID(next).ServeHTTP(rr, req)

	if got := rr.Header().Get("X-Request-ID"); got != "fixed-id" {
		t.Fatalf("response header %q, want fixed-id", got)
	}
}
