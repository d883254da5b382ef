package worker

import (
	"context"
	"testing"
	"time"
)

func TestLimiter_New(t *testing.T) {
	limiter := NewLimiter(10, 5)
	if limiter.defaultBurst != 5 {
		t.Errorf("expected burst 5, got %d", limiter.defaultBurst)
	}

	l2 := NewLimiter(10, -1)
	if l2.defaultBurst != 5 {
		t.Errorf("expected default burst 5 for negative input, got %d", l2.defaultBurst)
	}
}

func TestLimiter_Wait(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	if err := limiter.Wait(ctx, "https://svc.efaktur.pajak.go.id/validasi/faktur/abc"); err != nil {
		t.Errorf("wait failed: %v", err)
	}

	// A different host has its own bucket
	if err := limiter.Wait(ctx, "https://example.com"); err != nil {
		t.Errorf("wait failed: %v", err)
	}
}

func TestLimiter_WaitWithDelay(t *testing.T) {
	limiter := NewLimiter(100, 1)
	ctx := context.Background()

	start := time.Now()
	err := limiter.WaitWithDelay(ctx, "https://example.com", 50*time.Millisecond)
	if err != nil {
		t.Fatalf("WaitWithDelay failed: %v", err)
	}

	if elapsed := time.Since(start); elapsed < 50*time.Millisecond {
		t.Errorf("expected delay >= 50ms, got %v", elapsed)
	}
}

func TestLimiter_PerHostBuckets(t *testing.T) {
	limiter := NewLimiter(1, 1)
	ctx := context.Background()
	url := "https://svc.efaktur.pajak.go.id/validasi"

	if err := limiter.Wait(ctx, url); err != nil {
		t.Errorf("first wait failed: %v", err)
	}

	// Burst of 1 is consumed for this host
	if limiter.Allow(url) {
		t.Errorf("expected allow to fail (exhausted tokens)")
	}

	// Other hosts are unaffected
	if !limiter.Allow("https://other.example.com") {
		t.Errorf("expected allow for other host")
	}
}

func TestLimiter_SetHostRate(t *testing.T) {
	limiter := NewLimiter(10, 10)
	host := "svc.efaktur.pajak.go.id"

	limiter.SetHostRate(host, 0.1, 1)

	if !limiter.Allow("https://" + host + "/validasi") {
		t.Errorf("first request should pass")
	}
	if limiter.Allow("https://" + host + "/validasi") {
		t.Errorf("second request should fail")
	}
	if !limiter.Allow("https://fast.example.com") {
		t.Errorf("other host should pass")
	}
}

func TestExtractHost(t *testing.T) {
	host, err := extractHost("https://svc.efaktur.pajak.go.id/validasi/faktur")
	if err != nil {
		t.Fatalf("extractHost failed: %v", err)
	}
	if host != "svc.efaktur.pajak.go.id" {
		t.Errorf("expected svc.efaktur.pajak.go.id, got %s", host)
	}

	if _, err := extractHost("::invalid"); err == nil {
		t.Errorf("expected error for invalid URL")
	}
}
