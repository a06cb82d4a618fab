package engine

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	t.Run("deterministic", func(t *testing.T) {
		k1 := CacheKey("transcript", "dQw4w9WgXcQ", "en")
		k2 := CacheKey("transcript", "dQw4w9WgXcQ", "en")
		if k1 != k2 {
			t.Errorf("CacheKey not deterministic: %q != %q", k1, k2)
		}
	})

	t.Run("different inputs differ", func(t *testing.T) {
		k1 := CacheKey("transcript", "dQw4w9WgXcQ", "en")
		k2 := CacheKey("transcript", "dQw4w9WgXcQ", "de")
		if k1 == k2 {
			t.Errorf("different inputs produced same key: %q", k1)
		}
	})

	t.Run("has prefix", func(t *testing.T) {
		k := CacheKey("test")
		if k[:3] != "gt:" {
			t.Errorf("expected gt: prefix, got %q", k[:3])
		}
	})
}

func TestCacheGetSetTranscript(t *testing.T) {
	// In-memory only, no Redis.
	InitCache("", 1*time.Minute, 100, 5*time.Minute)

	ctx := context.Background()
	key := CacheKey("transcript", "round-trip")

	// Miss
	if _, ok := CacheGetTranscript(ctx, key); ok {
		t.Error("expected cache miss on empty cache")
	}

	// Set
	val := []TranscriptFragment{
		{Text: "hello there", Start: 0, Duration: 2.5},
		{Text: "general remark", Start: 2.5, Duration: 3},
	}
	CacheSetTranscript(ctx, key, val)

	// Hit
	got, ok := CacheGetTranscript(ctx, key)
	if !ok {
		t.Fatal("expected cache hit after set")
	}
	if len(got) != 2 || got[1].Text != "general remark" || got[1].Start != 2.5 {
		t.Errorf("round trip mangled fragments: %+v", got)
	}
}

func TestCacheExpiration(t *testing.T) {
	InitCache("", 1*time.Millisecond, 100, 5*time.Minute)

	ctx := context.Background()
	key := CacheKey("transcript", "expiry")

	CacheSetTranscript(ctx, key, []TranscriptFragment{{Text: "temp"}})
	time.Sleep(5 * time.Millisecond)

	if _, ok := CacheGetTranscript(ctx, key); ok {
		t.Error("expected cache miss after TTL expiry")
	}
}

func TestCacheEviction(t *testing.T) {
	// maxEntries=3
	InitCache("", 1*time.Minute, 3, 5*time.Minute)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		key := CacheKey("evict", fmt.Sprintf("video-%d", i))
		CacheSetTranscript(ctx, key, []TranscriptFragment{{Text: fmt.Sprintf("v%d", i)}})
	}

	count := 0
	transcriptCache.l1.Range(func(_, _ any) bool {
		count++
		return true
	})
	if count > 3 {
		t.Errorf("expected at most 3 entries after eviction, got %d", count)
	}
}

func TestCacheStats(t *testing.T) {
	InitCache("", 1*time.Minute, 100, 5*time.Minute)
	cacheHits.Store(0)
	cacheMisses.Store(0)

	ctx := context.Background()
	key := CacheKey("stats", "test")

	// Miss
	CacheGetTranscript(ctx, key)
	_, misses := CacheStats()
	if misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}

	// Set and hit
	CacheSetTranscript(ctx, key, []TranscriptFragment{{Text: "x"}})
	CacheGetTranscript(ctx, key)

	hits, misses := CacheStats()
	if hits != 1 {
		t.Errorf("hits = %d, want 1", hits)
	}
	if misses != 1 {
		t.Errorf("misses = %d, want 1", misses)
	}
}
