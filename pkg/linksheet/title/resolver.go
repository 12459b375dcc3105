// Package title resolves human-readable titles for the long URLs of
// shortened links.
//
// Resolution runs a pipeline of stages. The default pipeline first asks a
// document metadata service for the name of a document referenced by the
// URL, then falls back to fetching the page and reading its <title>.
package title

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

// ErrNoDocumentID is the fallback reason for URLs that do not reference a
// stored document.
var ErrNoDocumentID = errors.New("no document id in url")

// DocumentLookup returns the display name of a stored document.
type DocumentLookup interface {
	DocumentTitle(ctx context.Context, id string) (string, error)
}

// Fetcher retrieves the body of a URL. Network and HTTP errors are returned
// as errors.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Stage is one step of title resolution.
type Stage func(ctx context.Context, url string) Result

// Resolver runs stages in order until one does not fall back.
type Resolver struct {
	stages []Stage
	logger *zap.Logger
}

// NewResolver returns the two-stage resolver: structured lookup, then
// fetch and scrape. lookup may be nil to skip the first stage.
func NewResolver(lookup DocumentLookup, fetcher Fetcher, logger *zap.Logger) *Resolver {
	var stages []Stage
	if lookup != nil {
		stages = append(stages, LookupStage(lookup))
	}
	stages = append(stages, ScrapeStage(fetcher))
	return NewPipeline(logger, stages...)
}

// NewPipeline returns a Resolver running the given stages.
func NewPipeline(logger *zap.Logger, stages ...Stage) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{stages: stages, logger: logger}
}

// Resolve returns the title for url, or nil if none was found or the title
// is empty. A failed resolution yields the failure text so it shows up in
// the sheet. Once ctx is done Resolve returns nil.
func (r *Resolver) Resolve(ctx context.Context, url string) *string {
	for i, stage := range r.stages {
		if ctx.Err() != nil {
			return nil
		}
		res := stage(ctx, url)
		switch res.Outcome {
		case Resolved:
			if res.Title == nil || *res.Title == "" {
				return nil
			}
			return res.Title
		case Failed:
			r.logger.Debug("Title resolution failed",
				zap.String("url", url), zap.Int("stage", i), zap.Error(res.Reason))
			msg := res.Reason.Error()
			return &msg
		default:
			if res.Reason != nil && !errors.Is(res.Reason, ErrNoDocumentID) {
				r.logger.Debug("Title stage fell back",
					zap.String("url", url), zap.Int("stage", i), zap.Error(res.Reason))
			}
		}
	}
	return nil
}

// LookupStage resolves URLs that reference a stored document by asking
// lookup for its name. Any lookup error falls back.
func LookupStage(lookup DocumentLookup) Stage {
	return func(ctx context.Context, url string) Result {
		id, ok := DocumentID(url)
		if !ok {
			return Skip(ErrNoDocumentID)
		}
		name, err := lookup.DocumentTitle(ctx, id)
		if err != nil {
			return Skip(err)
		}
		return Ok(&name)
	}
}

// ScrapeStage fetches url and scrapes its <title>. A fetch error fails,
// unless it was caused by ctx being done.
func ScrapeStage(fetcher Fetcher) Stage {
	return func(ctx context.Context, url string) Result {
		body, err := fetcher.Fetch(ctx, url)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return Skip(ctxErr)
			}
			return Fail(err)
		}
		return Ok(Scrape(body))
	}
}
