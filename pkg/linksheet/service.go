package linksheet

import (
	"context"
	"errors"

	"github.com/ukaji3/linksheet-go/pkg/linksheet/models"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/table"
	"go.uber.org/zap"
)

// LinkProvider is the link shortening service.
type LinkProvider interface {
	// ListLinks returns every link owned by the acting account.
	ListLinks(ctx context.Context) ([]models.Link, error)
	// ClickCount returns the all-time click count of a link.
	ClickCount(ctx context.Context, id string) (int64, error)
	// Shorten registers a new short link for longURL.
	Shorten(ctx context.Context, longURL string) (models.Link, error)
}

// TitleResolver produces a display title for a URL, or nil.
type TitleResolver interface {
	Resolve(ctx context.Context, url string) *string
}

// Notifier shows a blocking informational prompt to the user.
type Notifier interface {
	Inform(ctx context.Context, message string) error
}

// Dependencies are the collaborators of a Service. All are required
// except Logger.
type Dependencies struct {
	Links    LinkProvider
	Titles   TitleResolver
	Store    table.Store
	Guard    *Guard
	Notifier Notifier
	Logger   *zap.Logger
}

// Service runs the two sheet actions: Update and Shorten.
type Service struct {
	links    LinkProvider
	titles   TitleResolver
	store    table.Store
	guard    *Guard
	notifier Notifier
	opts     Options
	logger   *zap.Logger
}

// NewService creates a Service.
func NewService(deps Dependencies, opts Options) *Service {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		links:    deps.Links,
		titles:   deps.Titles,
		store:    deps.Store,
		guard:    deps.Guard,
		notifier: deps.Notifier,
		opts:     opts,
		logger:   logger,
	}
}

// Options returns the sheet layout the service works with.
func (s *Service) Options() Options {
	return s.opts
}

// report shows the prompt carried by user-facing errors and returns err.
func (s *Service) report(ctx context.Context, logger *zap.Logger, err error) error {
	var prompt string
	var authErr *AuthorizationError
	var emptyErr *EmptyResultError
	switch {
	case errors.As(err, &authErr):
		prompt = authErr.Prompt
	case errors.As(err, &emptyErr):
		prompt = emptyErr.Prompt
	case errors.Is(err, ErrNoLongURL):
		prompt = PromptNoLongURL
	default:
		return err
	}
	if informErr := s.notifier.Inform(ctx, prompt); informErr != nil {
		logger.Warn("Failed to inform user", zap.Error(informErr))
	}
	return err
}
