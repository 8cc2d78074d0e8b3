package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"

	"github.com/agbru/fibdrv/internal/config"
	"github.com/agbru/fibdrv/internal/decimal"
	"github.com/agbru/fibdrv/internal/fibonacci"
	"github.com/agbru/fibdrv/internal/logging"
	"github.com/agbru/fibdrv/internal/service/mocks"
)

func testConfig() config.AppConfig {
	return config.AppConfig{Port: "0", MaxIndex: 500, Capacity: 256}
}

// createTestServer builds a server over a real factory with the given capacity.
func createTestServer(t *testing.T, capacity int, opts ...Option) *Server {
	t.Helper()
	opts = append([]Option{WithLogger(logging.Nop())}, opts...)
	s := NewServer(fibonacci.NewFactory(capacity), testConfig(), opts...)
	t.Cleanup(s.rateLimiter.Stop)
	return s
}

func get(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, http.NoBody)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleFib(t *testing.T) {
	t.Parallel()
	s := createTestServer(t, 256)
	h := s.Handler()

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantResult string
		wantAlgo   string
		wantMsg    string
	}{
		{"default algorithm", "?n=10", http.StatusOK, "55", fibonacci.AlgoFast, ""},
		{"linear", "?n=100&algo=linear", http.StatusOK, "354224848179261915075", fibonacci.AlgoLinear, ""},
		{"zero", "?n=0", http.StatusOK, "0", fibonacci.AlgoFast, ""},
		{"missing n", "", http.StatusBadRequest, "", "", "Missing 'n' parameter"},
		{"invalid n", "?n=abc", http.StatusBadRequest, "", "", "non-negative integer"},
		{"negative n", "?n=-5", http.StatusBadRequest, "", "", "non-negative integer"},
		{"above max index", "?n=501", http.StatusBadRequest, "", "", "maximum n value exceeded"},
		{"unknown algorithm", "?n=10&algo=matrix", http.StatusBadRequest, "", "", "unknown algorithm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := get(t, h, "/fib"+tt.query)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d (body %s)", rec.Code, tt.wantStatus, rec.Body)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
				t.Errorf("Content-Type = %q", ct)
			}

			if tt.wantMsg != "" {
				var errResp ErrorResponse
				if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
					t.Fatalf("decode: %v", err)
				}
				if !strings.Contains(errResp.Message, tt.wantMsg) {
					t.Errorf("message = %q, want it to contain %q", errResp.Message, tt.wantMsg)
				}
				return
			}

			var resp Response
			if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if resp.Result != tt.wantResult {
				t.Errorf("result = %q, want %q", resp.Result, tt.wantResult)
			}
			if resp.Digits != len(tt.wantResult) {
				t.Errorf("digits = %d, want %d", resp.Digits, len(tt.wantResult))
			}
			if resp.Algorithm != tt.wantAlgo {
				t.Errorf("algorithm = %q, want %q", resp.Algorithm, tt.wantAlgo)
			}
			if resp.Error != "" {
				t.Errorf("unexpected error field %q", resp.Error)
			}
		})
	}
}

func TestHandleFib_CapacityOverflow(t *testing.T) {
	t.Parallel()
	s := createTestServer(t, 10)

	rec := get(t, s.Handler(), "/fib?n=60")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusUnprocessableEntity)
	}
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Result != "" || !strings.Contains(resp.Error, "capacity overflow") {
		t.Errorf("response = %+v, want capacity overflow error", resp)
	}
	if resp.N != 60 {
		t.Errorf("n = %d, want 60", resp.N)
	}
}

func TestHandleFib_WithMockService(t *testing.T) {
	t.Parallel()
	ctrl := gomock.NewController(t)
	svc := mocks.NewMockService(ctrl)

	v, err := decimal.Parse("55")
	if err != nil {
		t.Fatal(err)
	}
	svc.EXPECT().
		Calculate(gomock.Any(), "fast", int64(10)).
		Return(fibonacci.Result{Index: 10, Value: v, Elapsed: 1500 * time.Nanosecond}, nil)
	svc.EXPECT().
		Calculate(gomock.Any(), "fast", int64(11)).
		Return(fibonacci.Result{Index: 11}, context.DeadlineExceeded)
	svc.EXPECT().
		Calculate(gomock.Any(), "fast", int64(12)).
		Return(fibonacci.Result{Index: 12}, errors.New("boom"))

	s := createTestServer(t, 256, WithService(svc))
	h := s.Handler()

	rec := get(t, h, "/fib?n=10")
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusOK || resp.Result != "55" || resp.ElapsedNS != 1500 {
		t.Errorf("got %d %+v", rec.Code, resp)
	}

	if rec := get(t, h, "/fib?n=11"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("timeout status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
	if rec := get(t, h, "/fib?n=12"); rec.Code != http.StatusInternalServerError {
		t.Errorf("failure status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
}

func TestHandleHealth(t *testing.T) {
	t.Parallel()
	s := createTestServer(t, 256)

	rec := get(t, s.Handler(), "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "healthy" {
		t.Errorf("status = %q", resp.Status)
	}
	if resp.Runtime.Goroutines < 1 {
		t.Errorf("goroutines = %d, want >= 1", resp.Runtime.Goroutines)
	}
	if resp.System.MemTotal == 0 {
		t.Error("system memory should be reported")
	}
}

func TestHandleAlgorithms(t *testing.T) {
	t.Parallel()
	s := createTestServer(t, 256)

	rec := get(t, s.Handler(), "/algorithms")
	var resp struct {
		Algorithms []string `json:"algorithms"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := map[string]bool{}
	for _, a := range resp.Algorithms {
		found[a] = true
	}
	if !found[fibonacci.AlgoFast] || !found[fibonacci.AlgoLinear] {
		t.Errorf("algorithms = %v", resp.Algorithms)
	}
}

func TestHandleMetrics(t *testing.T) {
	t.Parallel()
	s := createTestServer(t, 256)
	h := s.Handler()

	get(t, h, "/fib?n=20")
	rec := get(t, h, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, name := range []string{"fibdrv_calculations_total", "fibdrv_requests_total", "fibdrv_active_requests"} {
		if !strings.Contains(body, name) {
			t.Errorf("metrics output missing %s", name)
		}
	}
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()
	s := createTestServer(t, 256)
	h := s.Handler()

	for _, path := range []string{"/fib?n=1", "/health", "/algorithms", "/metrics"} {
		req := httptest.NewRequest(http.MethodPost, path, http.NoBody)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("POST %s = %d, want %d", path, rec.Code, http.StatusMethodNotAllowed)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	t.Parallel()
	s := createTestServer(t, 256)
	h := s.Handler()

	rec := get(t, h, "/health")
	want := map[string]string{
		"X-Content-Type-Options":      "nosniff",
		"X-Frame-Options":             "DENY",
		"Access-Control-Allow-Origin": "*",
	}
	for k, v := range want {
		if got := rec.Header().Get(k); got != v {
			t.Errorf("%s = %q, want %q", k, got, v)
		}
	}

	req := httptest.NewRequest(http.MethodOptions, "/fib", http.NoBody)
	pre := httptest.NewRecorder()
	h.ServeHTTP(pre, req)
	if pre.Code != http.StatusNoContent {
		t.Errorf("preflight status = %d, want %d", pre.Code, http.StatusNoContent)
	}
}

func TestSecurityMiddleware_RestrictedOrigins(t *testing.T) {
	t.Parallel()
	cfg := SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"https://ok.example"}, AllowedMethods: []string{"GET"}}
	h := SecurityMiddleware(cfg, func(w http.ResponseWriter, r *http.Request) {})

	tests := []struct {
		origin string
		want   string
	}{
		{"https://ok.example", "https://ok.example"},
		{"https://evil.example", ""},
		{"", ""},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
		if tt.origin != "" {
			req.Header.Set("Origin", tt.origin)
		}
		rec := httptest.NewRecorder()
		h(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != tt.want {
			t.Errorf("origin %q: allow = %q, want %q", tt.origin, got, tt.want)
		}
	}
}

func TestRateLimit(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimiterConfig{RequestsPerSecond: 0.001, Burst: 2})
	s := createTestServer(t, 256, WithRateLimiter(rl))
	h := s.Handler()

	codes := make([]int, 3)
	for i := range codes {
		codes[i] = get(t, h, "/health").Code
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusOK {
		t.Errorf("first requests = %v, want 200s", codes[:2])
	}
	if codes[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want %d", codes[2], http.StatusTooManyRequests)
	}
}

func TestRateLimiter_Evict(t *testing.T) {
	t.Parallel()
	rl := NewRateLimiter(RateLimiterConfig{CleanupInterval: time.Hour})
	defer rl.Stop()

	rl.Allow("10.0.0.1")
	rl.Allow("10.0.0.2")
	if rl.Clients() != 2 {
		t.Fatalf("clients = %d, want 2", rl.Clients())
	}
	rl.evict(time.Now().Add(3 * time.Hour))
	if rl.Clients() != 0 {
		t.Errorf("clients after evict = %d, want 0", rl.Clients())
	}
	rl.Stop()
}

func TestGetClientIP(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded list", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "9.9.9.9:1", "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": " 4.3.2.1 "}, "9.9.9.9:1", "4.3.2.1"},
		{"remote v4", nil, "127.0.0.1:8080", "127.0.0.1"},
		{"remote v6", nil, "[::1]:8080", "::1"},
		{"no port", nil, "192.168.1.1", "192.168.1.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", http.NoBody)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := getClientIP(req); got != tt.want {
				t.Errorf("getClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLoggingMiddleware(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	s := createTestServer(t, 256, WithStdLogger(log.New(&buf, "", 0)))

	get(t, s.Handler(), "/fib?n=5")
	out := buf.String()
	if !strings.Contains(out, "request") || !strings.Contains(out, "/fib") {
		t.Errorf("log output = %q", out)
	}
}

func TestServe_GracefulShutdown(t *testing.T) {
	t.Parallel()
	s := createTestServer(t, 256)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/fib?n=50")
	if err != nil {
		cancel()
		t.Fatalf("GET: %v", err)
	}
	var body Response
	err = json.NewDecoder(resp.Body).Decode(&body)
	resp.Body.Close()
	if err != nil || body.Result != "12586269025" {
		t.Errorf("body = %+v, err = %v", body, err)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve returned %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestDefaultServerTimeouts(t *testing.T) {
	t.Parallel()
	d := DefaultServerTimeouts()
	if d.RequestTimeout <= 0 || d.ShutdownTimeout <= 0 {
		t.Errorf("timeouts = %+v", d)
	}
	s := createTestServer(t, 256, WithTimeouts(Timeouts{RequestTimeout: time.Second}))
	if s.timeouts.RequestTimeout != time.Second {
		t.Errorf("RequestTimeout = %v", s.timeouts.RequestTimeout)
	}
}
