package auth

import (
	"net/http/httptest"
	"testing"
	"time"
)

// testClock drives a RateLimiter without sleeping.
type testClock struct {
	current time.Time
}

func (c *testClock) now() time.Time          { return c.current }
func (c *testClock) advance(d time.Duration) { c.current = c.current.Add(d) }

func newTestClock() *testClock {
	return &testClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func newTestLimiter(clock *testClock) *RateLimiter {
	l := NewRateLimiter(5, 15*time.Minute)
	l.now = clock.now
	return l
}

func TestRateLimiter_AllowsUpToMax(t *testing.T) {
	clock := newTestClock()
	l := newTestLimiter(clock)

	for i := 1; i <= 5; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d should be allowed", i)
		}
		clock.advance(time.Minute)
	}

	if l.Allow("10.0.0.1") {
		t.Error("6th attempt within the window should be blocked")
	}
}

func TestRateLimiter_ResetsAfterWindow(t *testing.T) {
	clock := newTestClock()
	l := newTestLimiter(clock)

	for i := 0; i < 5; i++ {
		l.Allow("10.0.0.1")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("expected address to be blocked")
	}

	clock.advance(16 * time.Minute)

	if !l.Allow("10.0.0.1") {
		t.Error("attempt after a 16-minute gap should be allowed")
	}
	// Window restarted: four more attempts fit before blocking again.
	for i := 0; i < 4; i++ {
		if !l.Allow("10.0.0.1") {
			t.Fatalf("attempt %d of the fresh window should be allowed", i+2)
		}
	}
	if l.Allow("10.0.0.1") {
		t.Error("6th attempt of the fresh window should be blocked")
	}
}

func TestRateLimiter_BlockedAttemptsDoNotExtendWindow(t *testing.T) {
	clock := newTestClock()
	l := newTestLimiter(clock)

	for i := 0; i < 5; i++ {
		l.Allow("10.0.0.1")
	}

	// Hammering while blocked must not push the reset point forward.
	for i := 0; i < 10; i++ {
		clock.advance(time.Minute)
		l.Allow("10.0.0.1")
	}

	clock.advance(6 * time.Minute) // 16 minutes past the last counted attempt
	if !l.Allow("10.0.0.1") {
		t.Error("expected the block to lift one window after the last counted attempt")
	}
}

func TestRateLimiter_AddressesAreIndependent(t *testing.T) {
	clock := newTestClock()
	l := newTestLimiter(clock)

	for i := 0; i < 5; i++ {
		l.Allow("10.0.0.1")
	}
	if l.Allow("10.0.0.1") {
		t.Fatal("expected 10.0.0.1 to be blocked")
	}
	if !l.Allow("10.0.0.2") {
		t.Error("a different address should be unaffected")
	}
}

func TestClientAddr(t *testing.T) {
	r := httptest.NewRequest("POST", "/auth/login", nil)
	r.RemoteAddr = "192.0.2.10:51234"

	if got := clientAddr(r); got != "192.0.2.10" {
		t.Errorf("expected peer host, got %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := clientAddr(r); got != "203.0.113.7" {
		t.Errorf("expected first forwarded hop, got %q", got)
	}
}
