package middleware

import (
	"testing"
	"time"
)

func TestTokenBucketExhaustion(t *testing.T) {
	bucket := NewTokenBucket(3, 0.0001) // effectively no refill during the test

	for i := 0; i < 3; i++ {
		if !bucket.Allow() {
			t.Fatalf("request %d denied before exhaustion", i+1)
		}
	}
	if bucket.Allow() {
		t.Error("request allowed after bucket exhausted")
	}
}

func TestTokenBucketRefill(t *testing.T) {
	bucket := NewTokenBucket(1, 100) // 100 tokens/sec

	if !bucket.Allow() {
		t.Fatal("first request denied")
	}
	if bucket.Allow() {
		t.Error("second immediate request allowed")
	}

	time.Sleep(20 * time.Millisecond)
	if !bucket.Allow() {
		t.Error("request denied after refill window")
	}
}

func TestRateLimiterPerKey(t *testing.T) {
	rl := NewRateLimiter(1, 100000) // one request per key, near-zero refill

	if !rl.Allow("10.0.0.1") {
		t.Fatal("first request for key denied")
	}
	if rl.Allow("10.0.0.1") {
		t.Error("second request for same key allowed")
	}
	// A different client gets its own bucket.
	if !rl.Allow("10.0.0.2") {
		t.Error("first request for other key denied")
	}
}
