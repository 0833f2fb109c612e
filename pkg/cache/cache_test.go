package cache

import (
	"fmt"
	"testing"
	"time"

	"getmait/models"
)

func snap(name string) Snapshot {
	return Snapshot{Store: models.Store{Name: name}}
}

func TestPutGetAndExpire(t *testing.T) {
	c := New(50*time.Millisecond, 10)

	if _, ok := c.Get("napoli-esbjerg"); ok {
		t.Fatalf("expected empty cache initially")
	}

	c.Put("napoli-esbjerg", snap("Napoli"))
	if s, ok := c.Get("napoli-esbjerg"); !ok || s.Store.Name != "Napoli" {
		t.Fatalf("expected snapshot for Napoli, got %+v ok=%v", s, ok)
	}

	time.Sleep(80 * time.Millisecond)
	if _, ok := c.Get("napoli-esbjerg"); ok {
		t.Fatalf("expected expired snapshot to be gone")
	}
}

func TestInvalidate(t *testing.T) {
	c := New(time.Second, 10)
	c.Put("roma-odense", snap("Roma"))
	c.Invalidate("roma-odense")
	if _, ok := c.Get("roma-odense"); ok {
		t.Fatalf("expected invalidated snapshot to be absent")
	}
}

func TestEvictsLeastRecentlyUsed(t *testing.T) {
	c := New(time.Minute, 2)
	c.Put("a", snap("A"))
	c.Put("b", snap("B"))

	// touch "a" so "b" becomes LRU
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a present")
	}
	c.Put("c", snap("C"))

	if _, ok := c.Get("b"); ok {
		t.Fatalf("expected b evicted as LRU")
	}
	if _, ok := c.Get("a"); !ok {
		t.Fatalf("expected a retained")
	}
	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
}

func TestZeroTTLDisablesCaching(t *testing.T) {
	c := New(0, 10)
	c.Put("x", snap("X"))
	if _, ok := c.Get("x"); ok {
		t.Fatalf("expected zero-TTL cache to store nothing")
	}
}

func TestUnlimitedCapacity(t *testing.T) {
	c := New(time.Minute, 0)
	for i := 0; i < 100; i++ {
		c.Put(fmt.Sprintf("slug-%d", i), snap("S"))
	}
	if c.Len() != 100 {
		t.Fatalf("expected all 100 entries kept, got %d", c.Len())
	}
}
