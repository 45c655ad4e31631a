package cache

import (
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/paperclass/internal/model"
)

func TestCacheKey(t *testing.T) {
	k1 := CacheKey("a transformer architecture")
	k2 := CacheKey("a transformer architecture")
	k3 := CacheKey("a diffusion model")

	if k1 != k2 {
		t.Errorf("expected identical keys for identical text, got %s and %s", k1, k2)
	}
	if k1 == k3 {
		t.Error("expected different keys for different text")
	}
	if !strings.HasPrefix(k1, "paperclass:v1:") {
		t.Errorf("unexpected key prefix: %s", k1)
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	label := model.Label{Category: model.CategoryBoth, Methods: []string{"neural network"}}

	if err := c.Set("k", label, 0); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := c.Get("k")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Category != model.CategoryBoth || got.MethodsUsed() != "neural network" {
		t.Errorf("unexpected label: %+v", got)
	}

	// Mutating the returned label must not affect the cached copy
	got.Methods[0] = "mutated"
	again, _ := c.Get("k")
	if again.Methods[0] != "neural network" {
		t.Errorf("cached label was mutated: %+v", again)
	}

	if c.Len() != 1 {
		t.Errorf("expected 1 item, got %d", c.Len())
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)
	_ = c.Set("k", model.Label{Category: model.CategoryOther}, 10*time.Millisecond)

	time.Sleep(30 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expected expired entry to miss")
	}
}

func TestRecordKey_SeparatesFields(t *testing.T) {
	a := RecordKey(model.Record{Abstract: "deep", Title: "learning model"})
	b := RecordKey(model.Record{Abstract: "deep learning", Title: "model"})
	if a == b {
		t.Error("expected field boundaries to change the key")
	}
}
