package linksheet

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/models"
	"go.uber.org/zap"
)

// Shorten shortens the URL typed into the shorten sheet and writes the
// short id next to it.
func (s *Service) Shorten(ctx context.Context) (models.Link, error) {
	logger := s.logger.With(zap.String("run", uuid.NewString()), zap.String("action", "shorten"))

	if err := s.guard.Check(ctx, PromptNotOwnerShorten); err != nil {
		return models.Link{}, s.report(ctx, logger, err)
	}
	raw, err := s.store.Cell(ctx, s.opts.ShortenSheet, s.opts.InputRow, s.opts.InputCol)
	if err != nil {
		return models.Link{}, NewStorageError(s.opts.ShortenSheet, "read", err)
	}
	return s.shorten(ctx, logger, raw)
}

// ShortenURL enters longURL into the shorten sheet, then shortens it like
// Shorten does.
func (s *Service) ShortenURL(ctx context.Context, longURL string) (models.Link, error) {
	logger := s.logger.With(zap.String("run", uuid.NewString()), zap.String("action", "shorten"))

	if err := s.guard.Check(ctx, PromptNotOwnerShorten); err != nil {
		return models.Link{}, s.report(ctx, logger, err)
	}
	longURL = strings.TrimSpace(longURL)
	if longURL == "" {
		return models.Link{}, s.report(ctx, logger, ErrNoLongURL)
	}
	if err := s.store.SetCell(ctx, s.opts.ShortenSheet, s.opts.InputRow, s.opts.InputCol, longURL); err != nil {
		return models.Link{}, NewStorageError(s.opts.ShortenSheet, "write", err)
	}
	return s.shorten(ctx, logger, longURL)
}

func (s *Service) shorten(ctx context.Context, logger *zap.Logger, raw string) (models.Link, error) {
	longURL := strings.TrimSpace(raw)
	if longURL == "" {
		return models.Link{}, s.report(ctx, logger, ErrNoLongURL)
	}

	link, err := s.links.Shorten(ctx, longURL)
	if err != nil {
		return models.Link{}, fmt.Errorf("shorten: %w", err)
	}

	if err := s.store.SetCell(ctx, s.opts.ShortenSheet, s.opts.OutputRow, s.opts.OutputCol, shortID(link)); err != nil {
		return models.Link{}, NewStorageError(s.opts.ShortenSheet, "write", err)
	}
	if err := s.store.Flush(ctx); err != nil {
		return models.Link{}, NewStorageError(s.opts.ShortenSheet, "flush", err)
	}
	logger.Info("Shortened url", zap.String("long_url", longURL), zap.String("short", shortID(link)))
	return link, nil
}
