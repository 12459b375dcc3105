package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ukaji3/linksheet-go/pkg/linksheet"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/access"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/config"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/provider"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/table"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/title"
	"go.uber.org/zap"
	"google.golang.org/api/drive/v3"
	"google.golang.org/api/sheets/v4"
)

// app is a service wired to the configured backend.
type app struct {
	service  *linksheet.Service
	location string
	closers  []func() error
}

func (a *app) Close() error {
	var firstErr error
	for _, c := range a.closers {
		if err := c(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func newApp(ctx context.Context, cfg *config.Config, notifier linksheet.Notifier, logger *zap.Logger) (*app, error) {
	opts := linksheet.DefaultOptions()
	opts.DataSheet = cfg.Storage.DataSheet
	opts.ShortenSheet = cfg.Storage.ShortenSheet
	var err error
	if opts.InputRow, opts.InputCol, err = cellAt(cfg.Storage.InputCell); err != nil {
		return nil, fmt.Errorf("storage.input_cell: %w", err)
	}
	if opts.OutputRow, opts.OutputCol, err = cellAt(cfg.Storage.OutputCell); err != nil {
		return nil, fmt.Errorf("storage.output_cell: %w", err)
	}

	bitly := provider.NewBitly(ctx, provider.BitlyConfig{
		Token:             cfg.Bitly.Token,
		GroupGUID:         cfg.Bitly.GroupGUID,
		BaseURL:           cfg.Bitly.BaseURL,
		RequestsPerSecond: cfg.Bitly.RequestsPerSecond,
	}, logger.Named("bitly"))

	fetcher := &provider.HTTPFetcher{
		Client:    &http.Client{Timeout: cfg.Fetch.Timeout},
		UserAgent: cfg.Fetch.UserAgent,
	}

	a := &app{}
	var (
		store  table.Store
		auth   linksheet.AuthorizationProvider
		lookup title.DocumentLookup
	)

	switch cfg.Storage.Backend {
	case config.BackendSheets:
		opt, err := provider.GoogleClientOption(ctx, cfg.Google.CredentialsFile,
			drive.DriveMetadataReadonlyScope, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, err
		}
		sheetsSvc, err := sheets.NewService(ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheets service: %w", err)
		}
		driveSvc, err := drive.NewService(ctx, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to create drive service: %w", err)
		}
		ss := table.NewSheets(sheetsSvc, cfg.Storage.SpreadsheetID)
		store = ss
		auth = access.NewDriveOwnership(driveSvc, ss.SpreadsheetID())
		lookup = provider.NewDrive(driveSvc)
		a.location = "spreadsheet " + ss.SpreadsheetID()

	default:
		wb, err := table.OpenWorkbook(cfg.Storage.Workbook, opts.Sheets()...)
		if err != nil {
			return nil, fmt.Errorf("failed to open workbook: %w", err)
		}
		a.closers = append(a.closers, wb.Close)
		store = wb
		auth = access.NewStatic(cfg.Access.Owners, bitly.PrimaryEmail)
		a.location = wb.Path()

		if cfg.Google.DocumentLookup {
			driveSvc, err := newDriveService(ctx, cfg.Google.CredentialsFile)
			if err != nil {
				a.Close()
				return nil, err
			}
			lookup = provider.NewDrive(driveSvc)
		}
	}

	a.service = linksheet.NewService(linksheet.Dependencies{
		Links:    bitly,
		Titles:   title.NewResolver(lookup, fetcher, logger.Named("title")),
		Store:    store,
		Guard:    linksheet.NewGuard(auth),
		Notifier: notifier,
		Logger:   logger,
	}, opts)
	return a, nil
}

func newDriveService(ctx context.Context, credentialsFile string) (*drive.Service, error) {
	opt, err := provider.GoogleClientOption(ctx, credentialsFile, drive.DriveMetadataReadonlyScope)
	if err != nil {
		return nil, err
	}
	svc, err := drive.NewService(ctx, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return svc, nil
}

// cellAt parses a single-cell A1 reference such as B2.
func cellAt(ref string) (row, col int, err error) {
	sheet, region, err := table.ParseRange(ref)
	if err != nil {
		return 0, 0, err
	}
	if sheet != "" || region.Rows() != 1 || region.Cols() != 1 {
		return 0, 0, fmt.Errorf("%q is not a single cell", ref)
	}
	return region.R1, region.C1, nil
}
