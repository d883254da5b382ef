package cache

import (
	"strings"
	"testing"
	"time"
)

func TestKey_StableAndPrefixed(t *testing.T) {
	url := "https://svc.efaktur.pajak.go.id/validasi/faktur/abc123"

	k1 := Key(url)
	k2 := Key(url)

	if k1 != k2 {
		t.Errorf("Key() not deterministic: %q vs %q", k1, k2)
	}
	if !strings.HasPrefix(k1, "efaktur:v1:") {
		t.Errorf("Key() = %q, want efaktur:v1: prefix", k1)
	}
	if k1 == Key(url+"x") {
		t.Error("distinct URLs produced the same key")
	}
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	c := NewMemoryCache(time.Minute, time.Minute)

	if _, found := c.Get("missing"); found {
		t.Error("Get() on empty cache reported a hit")
	}

	if err := c.Set("k", []byte("record"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	val, found := c.Get("k")
	if !found || string(val) != "record" {
		t.Errorf("Get() = %q, %v; want record, true", val, found)
	}

	if err := c.Delete("k"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Get() after Delete() reported a hit")
	}
}

func TestDiskCache_SurvivesNewInstance(t *testing.T) {
	dir := t.TempDir()

	c1 := NewDiskCache(dir, time.Hour)
	if err := c1.Set(Key("url"), []byte("record"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	c2 := NewDiskCache(dir, time.Hour)
	val, found := c2.Get(Key("url"))
	if !found || string(val) != "record" {
		t.Errorf("Get() from fresh instance = %q, %v; want record, true", val, found)
	}
}

func TestDiskCache_ExpiredEntryIsMiss(t *testing.T) {
	c := NewDiskCache(t.TempDir(), time.Hour)

	if err := c.Set("k", []byte("record"), -time.Second); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Get() returned an expired entry")
	}
}

func TestLayeredCache_PromotesDiskHit(t *testing.T) {
	dir := t.TempDir()

	// Seed disk only, then read through a fresh layered stack.
	seed := NewDiskCache(dir, time.Hour)
	if err := seed.Set("k", []byte("record"), 0); err != nil {
		t.Fatalf("seed Set() error: %v", err)
	}

	c := NewLayeredCache(time.Minute, dir, time.Hour)
	val, found := c.Get("k")
	if !found || string(val) != "record" {
		t.Fatalf("Get() = %q, %v; want record, true", val, found)
	}

	// The hit should now be answered by the memory layer alone.
	if err := seed.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	val, found = c.Get("k")
	if !found || string(val) != "record" {
		t.Errorf("Get() after disk clear = %q, %v; want promoted memory hit", val, found)
	}
}

func TestLayeredCache_ClearEmptiesBothLayers(t *testing.T) {
	c := NewLayeredCache(time.Minute, t.TempDir(), time.Hour)

	if err := c.Set("k", []byte("record"), 0); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if err := c.Clear(); err != nil {
		t.Fatalf("Clear() error: %v", err)
	}
	if _, found := c.Get("k"); found {
		t.Error("Get() after Clear() reported a hit")
	}
}
