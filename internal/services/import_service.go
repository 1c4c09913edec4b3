package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/mrlokans/highlights-reader/internal/config"
	"github.com/mrlokans/highlights-reader/internal/entities"
	"github.com/mrlokans/highlights-reader/internal/importers"
)

// Mode selects the expected file format.
type Mode string

const (
	ModeClippings Mode = "clippings"
	ModeJSON      Mode = "json"
)

// ParseMode maps a user supplied mode name to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeClippings:
		return ModeClippings, true
	case ModeJSON:
		return ModeJSON, true
	}
	return "", false
}

// File is an uploaded file as seen by the import service.
type File struct {
	Name        string
	ContentType string // declared MIME type
	Size        int64  // declared size in bytes
	Content     io.Reader
}

var extensions = map[Mode]string{
	ModeClippings: ".txt",
	ModeJSON:      ".json",
}

// ImportService validates uploaded files and hands accepted highlights to
// storage in a single batch. A batch that fails any check is never
// partially stored.
type ImportService struct {
	store      HighlightCreator
	cfg        config.Upload
	converters map[Mode]importers.Converter
	allowed    map[Mode][]string
	logger     *zap.Logger
}

// NewImportService creates a new ImportService.
func NewImportService(store HighlightCreator, cfg config.Upload, logger *zap.Logger) *ImportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ImportService{
		store: store,
		cfg:   cfg,
		converters: map[Mode]importers.Converter{
			ModeClippings: importers.NewClippingsConverter(cfg.MaxHighlightLength),
			ModeJSON:      importers.NewJSONConverter(cfg.MaxHighlightLength),
		},
		allowed: map[Mode][]string{
			ModeClippings: cfg.AllowedTypesClippings,
			ModeJSON:      cfg.AllowedTypesJSON,
		},
		logger: logger,
	}
}

// Import runs the checks in order and stops at the first failure:
// presence, size, declared type, content, record validation, volume cap,
// then storage.
func (s *ImportService) Import(ctx context.Context, mode Mode, file *File) (ImportResult, error) {
	converter, ok := s.converters[mode]
	if !ok {
		return ImportResult{}, fmt.Errorf("unsupported import mode %q", mode)
	}

	if file == nil || file.Content == nil {
		return ImportResult{}, newError(KindMissingFile, nil, nil)
	}

	if file.Size > s.cfg.MaxFileSizeBytes {
		return ImportResult{}, s.fileTooLarge(file.Size)
	}

	if !slices.Contains(s.allowed[mode], normalizeMediaType(file.ContentType)) {
		return ImportResult{}, newError(KindInvalidFileType,
			fmt.Errorf("content type %q not allowed for %s import", file.ContentType, mode),
			map[string]any{"Extension": extensions[mode]})
	}

	content, err := s.readContent(file)
	if err != nil {
		return ImportResult{}, err
	}

	batch, err := converter.Convert(content)
	if err != nil {
		switch {
		case errors.Is(err, importers.ErrInvalidJSON):
			return ImportResult{}, newError(KindInvalidJSON, err, nil)
		case errors.Is(err, importers.ErrNotAnArray):
			return ImportResult{}, newError(KindNotAnArray, err, nil)
		}
		return ImportResult{}, fmt.Errorf("failed to convert %s import: %w", mode, err)
	}

	if len(batch.Highlights) == 0 {
		if mode == ModeClippings {
			return ImportResult{}, newError(KindNoHighlightsFound, nil, nil)
		}
		return ImportResult{}, newError(KindNoValidHighlights, nil, nil)
	}

	if len(batch.Highlights) > s.cfg.MaxHighlightsPerImport {
		return ImportResult{}, newError(KindTooManyHighlights,
			fmt.Errorf("%d highlights exceed the limit", len(batch.Highlights)),
			map[string]any{"Limit": s.cfg.MaxHighlightsPerImport})
	}

	rows := make([]entities.Highlight, len(batch.Highlights))
	for i, h := range batch.Highlights {
		rows[i] = entities.NewHighlight(h)
	}

	imported, err := s.store.CreateHighlights(ctx, rows)
	if err != nil {
		s.logger.Error("failed to store imported highlights",
			zap.String("mode", string(mode)),
			zap.String("file", file.Name),
			zap.Int("count", len(rows)),
			zap.Error(err),
		)
		return ImportResult{}, newError(KindStorageError, err, nil)
	}

	s.logger.Info("imported highlights",
		zap.String("mode", string(mode)),
		zap.String("file", file.Name),
		zap.Int("imported", imported),
		zap.Int("skipped", batch.Skipped),
	)

	return ImportResult{Imported: imported, Skipped: batch.Skipped}, nil
}

// readContent reads at most one byte past the size limit so a wrong
// declared size cannot smuggle a larger payload in.
func (s *ImportService) readContent(file *File) (string, error) {
	data, err := io.ReadAll(io.LimitReader(file.Content, s.cfg.MaxFileSizeBytes+1))
	if err != nil {
		return "", fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > s.cfg.MaxFileSizeBytes {
		return "", s.fileTooLarge(int64(len(data)))
	}
	return strings.ToValidUTF8(string(data), "\uFFFD"), nil
}

func (s *ImportService) fileTooLarge(size int64) *Error {
	return newError(KindFileTooLarge,
		fmt.Errorf("file of %d bytes exceeds %d bytes", size, s.cfg.MaxFileSizeBytes),
		map[string]any{"MaxMB": s.cfg.MaxFileSizeBytes / (1024 * 1024)})
}

// normalizeMediaType drops parameters such as "; charset=utf-8".
func normalizeMediaType(contentType string) string {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mediaType
}
