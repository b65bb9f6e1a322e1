// File: internal/ratelimit/ratelimit_test.go
package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func newTestLimiter(maxAttempts int, window time.Duration) *MemoryLimiter {
	return NewMemoryLimiter(&Config{
		WindowSize:    window,
		MaxAttempts:   maxAttempts,
		CleanupPeriod: time.Hour,
	})
}

func TestLimiter_BlocksAfterMaxAttempts(t *testing.T) {
	limiter := newTestLimiter(3, time.Minute)
	defer limiter.Close()

	for i := 0; i < 3; i++ {
		allowed, info := limiter.Allow("1.2.3.4")
		if !allowed {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
		if want := 3 - (i + 1); info.Remaining != want {
			t.Fatalf("attempt %d: remaining = %d, want %d", i+1, info.Remaining, want)
		}
	}

	allowed, info := limiter.Allow("1.2.3.4")
	if allowed {
		t.Fatal("fourth attempt should be blocked")
	}
	if info.RetryAfter <= 0 {
		t.Fatalf("blocked response should carry a retry hint, got %v", info.RetryAfter)
	}
}

func TestLimiter_IdentifiersAreIndependent(t *testing.T) {
	limiter := newTestLimiter(1, time.Minute)
	defer limiter.Close()

	if allowed, _ := limiter.Allow("1.2.3.4"); !allowed {
		t.Fatal("first identifier should be allowed")
	}
	if allowed, _ := limiter.Allow("1.2.3.4"); allowed {
		t.Fatal("first identifier should now be blocked")
	}
	if allowed, _ := limiter.Allow("5.6.7.8"); !allowed {
		t.Fatal("second identifier should be unaffected")
	}
}

func TestLimiter_WindowExpiryResets(t *testing.T) {
	limiter := newTestLimiter(1, 20*time.Millisecond)
	defer limiter.Close()

	limiter.Allow("1.2.3.4")
	if allowed, _ := limiter.Allow("1.2.3.4"); allowed {
		t.Fatal("should be blocked inside the window")
	}

	time.Sleep(30 * time.Millisecond)
	if allowed, _ := limiter.Allow("1.2.3.4"); !allowed {
		t.Fatal("should be allowed after the window expires")
	}
}

func TestLimiter_RecordSuccessResets(t *testing.T) {
	limiter := newTestLimiter(2, time.Minute)
	defer limiter.Close()

	limiter.Allow("1.2.3.4")
	limiter.Allow("1.2.3.4")
	limiter.RecordSuccess("1.2.3.4")

	allowed, info := limiter.Allow("1.2.3.4")
	if !allowed {
		t.Fatal("attempts should reset after a recorded success")
	}
	if info.Remaining != 1 {
		t.Fatalf("remaining = %d, want 1", info.Remaining)
	}
}

func TestGetClientIP(t *testing.T) {
	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.1:54321"
	if ip := GetClientIP(r); ip != "10.0.0.1" {
		t.Fatalf("remote addr ip = %q, want 10.0.0.1", ip)
	}

	r.Header.Set("X-Real-IP", "9.9.9.9")
	if ip := GetClientIP(r); ip != "9.9.9.9" {
		t.Fatalf("real ip = %q, want 9.9.9.9", ip)
	}

	r.Header.Set("X-Forwarded-For", "1.2.3.4, 5.6.7.8")
	if ip := GetClientIP(r); ip != "1.2.3.4" {
		t.Fatalf("forwarded ip = %q, want 1.2.3.4", ip)
	}
}
