package cache

import (
	"testing"
	"time"
)

func TestTTLCacheSetGet(t *testing.T) {
	c := NewTTLCache[string, int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)

	if value, ok := c.Get("a"); !ok || value != 1 {
		t.Fatalf("Get(a) = %d,%v", value, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for unknown key")
	}
}

func TestTTLCacheEvictsLRU(t *testing.T) {
	c := NewTTLCache[string, int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // a 를 최신으로
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Fatal("expected b to be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected a to survive")
	}
	if c.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", c.Len())
	}
}

func TestTTLCacheExpiry(t *testing.T) {
	c := NewTTLCache[string, int](10, 10*time.Millisecond)

	c.Set("a", 1)
	time.Sleep(25 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected expired entry to miss")
	}
}

func TestTTLCacheModify(t *testing.T) {
	c := NewTTLCache[string, int](10, time.Minute)

	increment := func(current int, _ bool) int { return current + 1 }

	if value, ok := c.Modify("counter", increment); !ok || value != 1 {
		t.Fatalf("first Modify = %d,%v", value, ok)
	}
	if value, ok := c.Modify("counter", increment); !ok || value != 2 {
		t.Fatalf("second Modify = %d,%v", value, ok)
	}
	if _, ok := c.Modify("counter", nil); ok {
		t.Fatal("nil fn must be rejected")
	}
}

func TestTTLCacheDelete(t *testing.T) {
	c := NewTTLCache[string, int](10, time.Minute)
	c.Set("a", 1)
	c.Delete("a")
	c.Delete("a") // 멱등

	if _, ok := c.Get("a"); ok {
		t.Fatal("expected deleted entry to miss")
	}
}
