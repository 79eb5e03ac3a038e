// Package ingest turns raw uploads (pastes, files, archives) into stored pieces.
package ingest

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/jdelaney/contentpipe-go/internal/models"
	"github.com/jdelaney/contentpipe-go/internal/parser"
)

var (
	// ErrEmptyContent indicates an upload with no usable text.
	ErrEmptyContent = errors.New("content is empty")

	// ErrUnsupportedType indicates a file extension the ingester cannot read.
	ErrUnsupportedType = errors.New("unsupported file type")
)

// Result summarizes one stored piece.
type Result struct {
	PieceID   string `json:"piece_id"`
	Title     string `json:"title"`
	WordCount int    `json:"word_count"`
}

// PieceCreator is the slice of the store the ingester needs.
type PieceCreator interface {
	CreatePiece(ctx context.Context, piece *models.Piece) error
}

// Service ingests content and persists pieces.
type Service struct {
	store PieceCreator
	log   *slog.Logger
}

// NewService creates an ingestion service.
func NewService(store PieceCreator, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, log: log}
}

// IngestText stores plain text or markdown as a new piece. The source string
// (filename or "paste") seeds the title fallback. Frontmatter, when present,
// can override the title and carry a client_id.
func (s *Service) IngestText(ctx context.Context, content, source, clientID string) (*Result, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}

	doc := parser.Parse(content)

	title := doc.Title
	if title == "" {
		title = strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	}
	if fm := doc.GetFrontmatterString("client_id"); fm != "" && clientID == "" {
		clientID = fm
	}

	piece := &models.Piece{
		ID:        uuid.NewString(),
		ClientID:  clientID,
		Title:     title,
		Body:      content,
		Source:    source,
		WordCount: parser.CountWords(doc.Body),
	}

	if err := s.store.CreatePiece(ctx, piece); err != nil {
		return nil, fmt.Errorf("store piece: %w", err)
	}

	s.log.Info("ingested piece",
		"piece_id", piece.ID,
		"title", piece.Title,
		"words", piece.WordCount,
		"source", source)

	return &Result{PieceID: piece.ID, Title: piece.Title, WordCount: piece.WordCount}, nil
}

// IngestFile reads a file from disk and ingests it. Zip archives expand into
// multiple pieces; everything else yields exactly one.
func (s *Service) IngestFile(ctx context.Context, path, clientID string) ([]Result, error) {
	ext := strings.ToLower(filepath.Ext(path))

	switch ext {
	case ".txt", ".md", ".markdown":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		result, err := s.IngestText(ctx, string(data), filepath.Base(path), clientID)
		if err != nil {
			return nil, err
		}
		return []Result{*result}, nil

	case ".zip":
		return s.IngestZip(ctx, path, clientID)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
	}
}

// IngestZip expands a zip archive and ingests every text file inside it.
// Unreadable or unsupported entries are skipped with a warning so one bad
// file does not sink the batch.
func (s *Service) IngestZip(ctx context.Context, path, clientID string) ([]Result, error) {
	reader, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open zip: %w", err)
	}
	defer reader.Close()

	archiveName := filepath.Base(path)
	var results []Result

	for _, file := range reader.File {
		if file.FileInfo().IsDir() || strings.HasPrefix(file.Name, "__MACOSX") {
			continue
		}
		if strings.HasPrefix(filepath.Base(file.Name), ".") {
			continue
		}

		ext := strings.ToLower(filepath.Ext(file.Name))
		if ext != ".txt" && ext != ".md" && ext != ".markdown" {
			s.log.Warn("skipping unsupported file in archive", "file", file.Name)
			continue
		}

		content, err := readZipEntry(file)
		if err != nil {
			s.log.Warn("failed to read archive entry", "file", file.Name, "error", err)
			continue
		}

		result, err := s.IngestText(ctx, content, archiveName+"/"+file.Name, clientID)
		if err != nil {
			s.log.Warn("failed to ingest archive entry", "file", file.Name, "error", err)
			continue
		}
		results = append(results, *result)
	}

	return results, nil
}

func readZipEntry(file *zip.File) (string, error) {
	rc, err := file.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
