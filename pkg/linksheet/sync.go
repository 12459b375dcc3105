package linksheet

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/models"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/table"
	"go.uber.org/zap"
)

// Update refreshes the link directory sheet from the provider.
//
// Links are listed oldest first, each with its click count and resolved
// title, and written below the header. Titles the user edited in the sheet
// are kept. A provider error aborts the run before anything is written.
func (s *Service) Update(ctx context.Context) ([]models.LinkRecord, error) {
	logger := s.logger.With(zap.String("run", uuid.NewString()), zap.String("action", "update"))

	if err := s.guard.Check(ctx, PromptNotOwnerUpdate); err != nil {
		return nil, s.report(ctx, logger, err)
	}

	links, err := s.links.ListLinks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list links: %w", err)
	}
	if len(links) == 0 {
		return nil, s.report(ctx, logger, &EmptyResultError{Prompt: PromptNoLinks})
	}
	SortByCreation(links)
	logger.Info("Listed links", zap.Int("count", len(links)))

	records := make([]models.LinkRecord, 0, len(links))
	for _, link := range links {
		clicks, err := s.links.ClickCount(ctx, link.ID)
		if err != nil {
			return nil, fmt.Errorf("link %s: %w", link.ID, err)
		}
		title := s.titles.Resolve(ctx, link.LongURL)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if title != nil && *title == "" {
			title = nil
		}
		logger.Debug("Resolved link",
			zap.String("id", link.ID),
			zap.Int64("clicks", clicks),
			zap.Bool("titled", title != nil))
		records = append(records, models.LinkRecord{
			Title:      title,
			ClickCount: clicks,
			LongURL:    link.LongURL,
			ShortID:    shortID(link),
		})
	}

	rows := Rows(s.opts.Header, records)
	written, err := table.NewWriter(s.store, s.opts.DataSheet, logger).Write(ctx, rows)
	if err != nil {
		return nil, NewStorageError(s.opts.DataSheet, "write", err)
	}

	preserved := 0
	for _, row := range written {
		if len(row) > table.EditableColumn && row[table.EditableColumn] == nil {
			preserved++
		}
	}
	logger.Info("Updated link directory",
		zap.String("sheet", s.opts.DataSheet),
		zap.Int("rows", len(written)),
		zap.Int("untouched_titles", preserved))
	return records, nil
}

// SortByCreation orders links oldest first. Links created at the same time
// keep their listed order.
func SortByCreation(links []models.Link) {
	sort.SliceStable(links, func(i, j int) bool {
		return links[i].CreatedAt.Before(links[j].CreatedAt)
	})
}

// Rows lays out the table written to the data sheet: the header, if any,
// then one row per record.
func Rows(header models.Row, records []models.LinkRecord) []models.Row {
	rows := make([]models.Row, 0, len(records)+1)
	if header != nil {
		rows = append(rows, header.Clone())
	}
	for _, r := range records {
		rows = append(rows, r.Row())
	}
	return rows
}

func shortID(link models.Link) string {
	if link.ShortURL != "" {
		return link.ShortURL
	}
	return link.ID
}
