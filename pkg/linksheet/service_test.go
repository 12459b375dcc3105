package linksheet

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/models"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/table"
)

type fakeLinks struct {
	links     []models.Link
	clicks    map[string]int64
	clicksErr error
	shortened []string
}

func (f *fakeLinks) ListLinks(context.Context) ([]models.Link, error) {
	out := make([]models.Link, len(f.links))
	copy(out, f.links)
	return out, nil
}

func (f *fakeLinks) ClickCount(_ context.Context, id string) (int64, error) {
	if f.clicksErr != nil {
		return 0, f.clicksErr
	}
	return f.clicks[id], nil
}

func (f *fakeLinks) Shorten(_ context.Context, longURL string) (models.Link, error) {
	f.shortened = append(f.shortened, longURL)
	return models.Link{ID: "bit.ly/new", ShortURL: "https://bit.ly/new", LongURL: longURL}, nil
}

type fakeTitles map[string]string

func (f fakeTitles) Resolve(_ context.Context, url string) *string {
	t, ok := f[url]
	if !ok {
		return nil
	}
	return &t
}

type fakeNotifier struct {
	messages []string
}

func (f *fakeNotifier) Inform(_ context.Context, message string) error {
	f.messages = append(f.messages, message)
	return nil
}

type fakeAuth struct {
	owners []string
	actor  string
}

func (f fakeAuth) Owners(context.Context) ([]string, error) { return f.owners, nil }
func (f fakeAuth) ActingIdentity(context.Context) (string, error) { return f.actor, nil }

type fixture struct {
	svc      *Service
	links    *fakeLinks
	notifier *fakeNotifier
	wb       *table.Workbook
	path     string
}

func newFixture(t *testing.T, actor string) *fixture {
	t.Helper()
	path := filepath.Join(t.TempDir(), "links.xlsx")
	opts := DefaultOptions()
	wb, err := table.OpenWorkbook(path, opts.Sheets()...)
	require.NoError(t, err)
	t.Cleanup(func() { wb.Close() })

	base := time.Date(2017, 5, 1, 0, 0, 0, 0, time.UTC)
	links := &fakeLinks{
		links: []models.Link{
			{ID: "goo.gl/c", ShortURL: "https://goo.gl/c", LongURL: "https://c.example", CreatedAt: base.Add(2 * time.Hour)},
			{ID: "goo.gl/a", ShortURL: "https://goo.gl/a", LongURL: "https://a.example", CreatedAt: base},
			{ID: "goo.gl/b", ShortURL: "https://goo.gl/b", LongURL: "https://b.example", CreatedAt: base.Add(time.Hour)},
		},
		clicks: map[string]int64{"goo.gl/a": 1, "goo.gl/b": 2, "goo.gl/c": 3},
	}
	notifier := &fakeNotifier{}
	svc := NewService(Dependencies{
		Links:    links,
		Titles:   fakeTitles{"https://a.example": "Alpha", "https://b.example": "Beta"},
		Store:    wb,
		Guard:    NewGuard(fakeAuth{owners: []string{"Owner@Example.com"}, actor: actor}),
		Notifier: notifier,
	}, opts)
	return &fixture{svc: svc, links: links, notifier: notifier, wb: wb, path: path}
}

func (f *fixture) data(t *testing.T) []models.Row {
	t.Helper()
	rows, err := f.wb.ReadRegion(context.Background(), "Data", models.RegionAt(1, 1, 5, 5))
	require.NoError(t, err)
	return rows
}

func TestUpdateWritesSortedDirectory(t *testing.T) {
	f := newFixture(t, "owner@example.com")

	records, err := f.svc.Update(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Equal(t, []models.Row{
		{"title", "comment", "counts", "long", "short"},
		{"Alpha", "", "1", "https://a.example", "https://goo.gl/a"},
		{"Beta", "", "2", "https://b.example", "https://goo.gl/b"},
		{"", "", "3", "https://c.example", "https://goo.gl/c"},
		{"", "", "", "", ""},
	}, f.data(t))
	assert.FileExists(t, f.path)
	assert.Empty(t, f.notifier.messages)
}

func TestUpdateKeepsEditsAndComments(t *testing.T) {
	f := newFixture(t, "owner@example.com")
	ctx := context.Background()
	_, err := f.svc.Update(ctx)
	require.NoError(t, err)

	// The user retitles Beta and comments on Alpha.
	require.NoError(t, f.wb.SetCell(ctx, "Data", 3, 1, "Beta (spring issue)"))
	require.NoError(t, f.wb.SetCell(ctx, "Data", 2, 2, "front page"))
	f.links.clicks["goo.gl/b"] = 20

	_, err = f.svc.Update(ctx)
	require.NoError(t, err)

	rows := f.data(t)
	assert.Equal(t, models.Row{"Alpha", "front page", "1", "https://a.example", "https://goo.gl/a"}, rows[1])
	assert.Equal(t, models.Row{"Beta (spring issue)", "", "20", "https://b.example", "https://goo.gl/b"}, rows[2])
}

func TestUpdateClearsRowsOfDeletedLinks(t *testing.T) {
	f := newFixture(t, "owner@example.com")
	ctx := context.Background()
	_, err := f.svc.Update(ctx)
	require.NoError(t, err)

	f.links.links = f.links.links[1:2] // only goo.gl/a survives
	_, err = f.svc.Update(ctx)
	require.NoError(t, err)

	extent, err := f.wb.Extent(ctx, "Data")
	require.NoError(t, err)
	assert.Equal(t, models.Region{R1: 1, C1: 1, R2: 2, C2: 5}, extent)
}

func TestUpdateRejectsNonOwner(t *testing.T) {
	f := newFixture(t, "visitor@example.com")

	_, err := f.svc.Update(context.Background())

	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, "visitor@example.com", authErr.Actor)
	assert.Equal(t, []string{PromptNotOwnerUpdate}, f.notifier.messages)
	assert.NoFileExists(t, f.path)
}

func TestUpdateWithNoLinks(t *testing.T) {
	f := newFixture(t, "owner@example.com")
	f.links.links = nil

	_, err := f.svc.Update(context.Background())

	var emptyErr *EmptyResultError
	require.ErrorAs(t, err, &emptyErr)
	assert.Equal(t, []string{PromptNoLinks}, f.notifier.messages)
	assert.NoFileExists(t, f.path)
}

// cancelingTitles cancels the run while a title is being resolved and
// reports the cancellation as the title, as a fetch error would.
type cancelingTitles struct {
	cancel context.CancelFunc
}

func (c cancelingTitles) Resolve(ctx context.Context, url string) *string {
	c.cancel()
	msg := fmt.Sprintf("Get %q: %v", url, ctx.Err())
	return &msg
}

func TestUpdateCanceledWritesNothing(t *testing.T) {
	f := newFixture(t, "owner@example.com")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	f.svc.titles = cancelingTitles{cancel: cancel}

	records, err := f.svc.Update(ctx)

	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, records)
	assert.NoFileExists(t, f.path)
	assert.Equal(t, "", f.data(t)[1].Text(0))
}

func TestUpdateEmptyTitleIsNotWritten(t *testing.T) {
	f := newFixture(t, "owner@example.com")
	f.svc.titles = fakeTitles{"https://a.example": "", "https://b.example": "Beta"}

	records, err := f.svc.Update(context.Background())
	require.NoError(t, err)

	require.Len(t, records, 3)
	assert.Nil(t, records[0].Title)
	require.NotNil(t, records[1].Title)
	assert.Equal(t, "Beta", *records[1].Title)
	assert.Nil(t, records[0].Row()[0])
}

func TestUpdateProviderFailureWritesNothing(t *testing.T) {
	f := newFixture(t, "owner@example.com")
	f.links.clicksErr = errors.New("rate limited")

	_, err := f.svc.Update(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
	assert.Empty(t, f.notifier.messages)
	_, statErr := os.Stat(f.path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSortByCreationIsStable(t *testing.T) {
	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	links := []models.Link{
		{ID: "late", CreatedAt: at.Add(time.Minute)},
		{ID: "first-tie", CreatedAt: at},
		{ID: "second-tie", CreatedAt: at},
	}

	SortByCreation(links)

	assert.Equal(t, []string{"first-tie", "second-tie", "late"}, []string{links[0].ID, links[1].ID, links[2].ID})
}

func TestRowsWithoutHeader(t *testing.T) {
	title := "T"
	rows := Rows(nil, []models.LinkRecord{{Title: &title, ClickCount: 4, LongURL: "https://l.example", ShortID: "s"}})

	assert.Equal(t, []models.Row{{"T", nil, int64(4), "https://l.example", "s"}}, rows)
}
