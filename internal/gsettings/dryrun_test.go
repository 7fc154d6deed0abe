package gsettings

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
)

func TestDryRunStore_DoesNotTouchInner(t *testing.T) {
	inner := NewMemoryStore()
	dry := NewDryRunStore(inner, slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil)))
	ctx := context.Background()
	list := FormatStringList([]string{CustomKeybindingsPath + "custom0/"})

	if err := dry.Set(ctx, MediaKeysSchema, CustomKeybindingsKey, list); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := dry.Get(ctx, MediaKeysSchema, CustomKeybindingsKey)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != list {
		t.Errorf("Get() after Set() = %q, want %q", got, list)
	}

	if len(inner.Writes()) != 0 {
		t.Errorf("inner store received %d writes", len(inner.Writes()))
	}
	innerValue, _ := inner.Value(MediaKeysSchema, CustomKeybindingsKey)
	if innerValue != "@as []" {
		t.Errorf("inner value changed to %q", innerValue)
	}
	if len(dry.Writes()) != 1 {
		t.Errorf("Writes() = %d, want 1", len(dry.Writes()))
	}
}

func TestDryRunStore_ReadsThrough(t *testing.T) {
	inner := NewMemoryStore()
	inner.SeedValue(MediaKeysSchema, "screenshot", "['Print']")
	dry := NewDryRunStore(inner, nil)

	got, err := dry.Get(context.Background(), MediaKeysSchema, "screenshot")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != "['Print']" {
		t.Errorf("Get() = %q", got)
	}
}
