package ingest

import (
	"archive/zip"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/jdelaney/contentpipe-go/internal/db"
)

func newTestService() (*Service, *db.MemoryStore) {
	store := db.NewMemoryStore()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(store, log), store
}

func TestIngestTextFromPaste(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	content := "# Why Coaches Undercharge\n\nMost coaches price for time instead of outcomes."
	result, err := svc.IngestText(ctx, content, "paste", "client-a")
	if err != nil {
		t.Fatalf("IngestText failed: %v", err)
	}

	if result.Title != "Why Coaches Undercharge" {
		t.Errorf("Expected h1 title, got %q", result.Title)
	}
	if result.WordCount != 12 {
		t.Errorf("Expected 12 words, got %d", result.WordCount)
	}

	piece, err := store.GetPiece(ctx, result.PieceID)
	if err != nil {
		t.Fatalf("Stored piece not found: %v", err)
	}
	if piece.ClientID != "client-a" {
		t.Errorf("Expected client-a, got %q", piece.ClientID)
	}
	if piece.Body != content {
		t.Error("Body should be stored verbatim")
	}
}

func TestIngestTextTitleFallsBackToFilename(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	// First line is too short to be a title
	result, err := svc.IngestText(ctx, "ok\nsome actual content here", "episode-42-notes.md", "")
	if err != nil {
		t.Fatalf("IngestText failed: %v", err)
	}
	if result.Title != "episode-42-notes" {
		t.Errorf("Expected filename-derived title, got %q", result.Title)
	}
}

func TestIngestTextFrontmatterClientID(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	content := "---\ntitle: Q3 Workshop\nclient_id: client-fm\n---\nWorkshop transcript body."
	result, err := svc.IngestText(ctx, content, "workshop.md", "")
	if err != nil {
		t.Fatalf("IngestText failed: %v", err)
	}
	if result.Title != "Q3 Workshop" {
		t.Errorf("Expected frontmatter title, got %q", result.Title)
	}

	piece, _ := store.GetPiece(ctx, result.PieceID)
	if piece.ClientID != "client-fm" {
		t.Errorf("Expected frontmatter client_id, got %q", piece.ClientID)
	}
}

func TestIngestTextExplicitClientWinsOverFrontmatter(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	content := "---\nclient_id: client-fm\n---\nBody content here."
	result, err := svc.IngestText(ctx, content, "notes.md", "client-explicit")
	if err != nil {
		t.Fatalf("IngestText failed: %v", err)
	}

	piece, _ := store.GetPiece(ctx, result.PieceID)
	if piece.ClientID != "client-explicit" {
		t.Errorf("Explicit client ID should win, got %q", piece.ClientID)
	}
}

func TestIngestTextRejectsEmpty(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.IngestText(ctx, "   \n  ", "paste", "")
	if !errors.Is(err, ErrEmptyContent) {
		t.Errorf("Expected ErrEmptyContent, got %v", err)
	}
}

func TestIngestFileUnsupportedType(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	_, err := svc.IngestFile(ctx, "/tmp/whatever.exe", "")
	if !errors.Is(err, ErrUnsupportedType) {
		t.Errorf("Expected ErrUnsupportedType, got %v", err)
	}
}

func TestIngestFileText(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService()

	path := filepath.Join(t.TempDir(), "memo.txt")
	if err := os.WriteFile(path, []byte("Voice memo on client retention\n\nKeep clients longer."), 0o644); err != nil {
		t.Fatal(err)
	}

	results, err := svc.IngestFile(ctx, path, "client-a")
	if err != nil {
		t.Fatalf("IngestFile failed: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("Expected 1 result, got %d", len(results))
	}
	if results[0].Title != "Voice memo on client retention" {
		t.Errorf("Unexpected title %q", results[0].Title)
	}
}

func TestIngestZipSkipsUnsupportedEntries(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService()

	path := filepath.Join(t.TempDir(), "batch.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	entries := map[string]string{
		"post-one.md":         "# Post One\n\nContent of post one.",
		"post-two.txt":        "Post Two Title\n\nContent of post two.",
		"image.png":           "not really an image",
		"__MACOSX/.hidden":    "resource fork junk",
		".DS_Store":           "finder junk",
		"notes/post-three.md": "# Post Three\n\nNested content.",
	}
	for name, content := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	results, err := svc.IngestZip(ctx, path, "client-a")
	if err != nil {
		t.Fatalf("IngestZip failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("Expected 3 ingested pieces, got %d", len(results))
	}

	pieces, _ := store.ListPieces(ctx, "client-a")
	if len(pieces) != 3 {
		t.Errorf("Expected 3 stored pieces, got %d", len(pieces))
	}
	for _, piece := range pieces {
		if piece.Source == "" {
			t.Error("Archive pieces should carry a source path")
		}
	}
}
