package skit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

type track struct {
	Title  string `json:"title"`
	Artist string `json:"artist"`
}

func TestStoreRoundTrip(t *testing.T) {
	store := NewStore(t.TempDir())

	in := track{Title: "So What", Artist: "Miles Davis"}
	if err := store.Write("standards", in); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var out track
	ok, err := store.Get("standards", &out)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected a hit for a written name")
	}
	if out != in {
		t.Errorf("Round trip mismatch: wrote %+v, read %+v", in, out)
	}
}

func TestStoreMissIsNotAnError(t *testing.T) {
	store := NewStore(t.TempDir())

	var out track
	ok, err := store.Get("never-written", &out)
	if err != nil {
		t.Fatalf("Expected no error on miss, got %v", err)
	}
	if ok {
		t.Error("Expected a miss for a name never written")
	}
}

func TestStoreNullValueIsAMiss(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	if err := os.WriteFile(filepath.Join(dir, "empty.json"), []byte(`{"value": null}`), 0644); err != nil {
		t.Fatalf("Failed to seed store file: %v", err)
	}

	var out track
	ok, err := store.Get("empty", &out)
	if err != nil {
		t.Fatalf("Expected no error for null value, got %v", err)
	}
	if ok {
		t.Error("Expected null value to read as a miss")
	}
}

func TestStoreSchemaOutOfDate(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)

	tests := []struct {
		name string
		body string
	}{
		{"legacy tracks layout", `{"tracks": [{"title": "So What"}]}`},
		{"value of the wrong shape", `{"value": "just a string"}`},
		{"not json at all", `tracks: []`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := os.WriteFile(filepath.Join(dir, "stale.json"), []byte(tt.body), 0644); err != nil {
				t.Fatalf("Failed to seed store file: %v", err)
			}

			var out track
			_, err := store.Get("stale", &out)
			if err == nil {
				t.Fatal("Expected an error for out-of-date data")
			}
			if !errors.Is(err, ErrSchemaOutOfDate) {
				t.Errorf("Expected ErrSchemaOutOfDate, got %v", err)
			}
		})
	}
}

func TestStoreClear(t *testing.T) {
	store := NewStore(t.TempDir())

	if err := store.Write("gone", track{Title: "x"}); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if err := store.Clear("gone"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}

	var out track
	ok, err := store.Get("gone", &out)
	if err != nil || ok {
		t.Errorf("Expected a clean miss after Clear, got ok=%v err=%v", ok, err)
	}

	// Clearing again is fine
	if err := store.Clear("gone"); err != nil {
		t.Errorf("Expected Clear of a missing name to succeed, got %v", err)
	}
}

func TestStoreGetOrFetch(t *testing.T) {
	store := NewStore(t.TempDir())

	calls := 0
	fetch := func(ctx context.Context) (any, error) {
		calls++
		return track{Title: "Blue in Green", Artist: "Bill Evans"}, nil
	}

	var first track
	if err := store.GetOrFetch(context.Background(), "cache", &first, fetch); err != nil {
		t.Fatalf("First GetOrFetch failed: %v", err)
	}
	if first.Title != "Blue in Green" {
		t.Errorf("Expected fetched value, got %+v", first)
	}

	var second track
	if err := store.GetOrFetch(context.Background(), "cache", &second, fetch); err != nil {
		t.Fatalf("Second GetOrFetch failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("Expected fetch to run once, ran %d times", calls)
	}
	if second != first {
		t.Errorf("Expected cached value %+v, got %+v", first, second)
	}
}

func TestStoreGetOrFetchPropagatesFetchError(t *testing.T) {
	store := NewStore(t.TempDir())

	var out track
	err := store.GetOrFetch(context.Background(), "boom", &out, func(ctx context.Context) (any, error) {
		return nil, fmt.Errorf("upstream down")
	})
	if err == nil {
		t.Fatal("Expected fetch error to propagate")
	}

	// A failed fetch must not leave a record behind
	ok, getErr := store.Get("boom", &out)
	if getErr != nil || ok {
		t.Errorf("Expected no record after failed fetch, got ok=%v err=%v", ok, getErr)
	}
}
