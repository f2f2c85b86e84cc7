package pagination

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCursorRoundTrip(t *testing.T) {
	want := Cursor{
		CreatedAt: time.Date(2026, 3, 1, 12, 0, 0, 123456789, time.UTC),
		ID:        uuid.New(),
	}

	got, err := ParseCursor(EncodeCursor(want))
	if err != nil {
		t.Fatalf("parse cursor: %v", err)
	}
	if got == nil || !got.CreatedAt.Equal(want.CreatedAt) || got.ID != want.ID {
		t.Fatalf("round trip mismatch: want %+v got %+v", want, got)
	}
}

func TestParseCursorEmptyIsNil(t *testing.T) {
	got, err := ParseCursor("  ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil cursor, got %+v", got)
	}
}

func TestParseCursorRejectsGarbage(t *testing.T) {
	if _, err := ParseCursor("not-base64!"); err == nil {
		t.Fatal("expected error for invalid encoding")
	}
}

func TestNormalizeLimitBounds(t *testing.T) {
	if got := NormalizeLimit(0); got != DefaultLimit {
		t.Fatalf("expected default for zero, got %d", got)
	}
	if got := NormalizeLimit(MaxLimit + 50); got != MaxLimit {
		t.Fatalf("expected cap at max, got %d", got)
	}
	if got := NormalizeLimit(10); got != 10 {
		t.Fatalf("expected 10, got %d", got)
	}
}

func TestPageShortFetchHasNoCursor(t *testing.T) {
	pageLen, next := Page(3, 10, func(i int) Cursor {
		t.Fatal("cursorOf should not be called for a short page")
		return Cursor{}
	})
	if pageLen != 3 {
		t.Fatalf("expected page length 3, got %d", pageLen)
	}
	if next != nil {
		t.Fatalf("expected no cursor, got %q", *next)
	}
}

func TestPageOverfullFetchTruncatesAndEncodes(t *testing.T) {
	rows := []Cursor{
		{CreatedAt: time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), ID: uuid.New()},
		{CreatedAt: time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC), ID: uuid.New()},
		{CreatedAt: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), ID: uuid.New()},
	}

	pageLen, next := Page(len(rows), 2, func(i int) Cursor { return rows[i] })
	if pageLen != 2 {
		t.Fatalf("expected page length 2, got %d", pageLen)
	}
	if next == nil {
		t.Fatal("expected a continuation cursor")
	}

	cursor, err := ParseCursor(*next)
	if err != nil {
		t.Fatalf("parse continuation cursor: %v", err)
	}
	if cursor.ID != rows[1].ID {
		t.Fatal("expected cursor to point at the last row kept")
	}
}
