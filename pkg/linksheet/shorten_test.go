package linksheet

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortenReadsInputCell(t *testing.T) {
	f := newFixture(t, "owner@example.com")
	ctx := context.Background()
	require.NoError(t, f.wb.SetCell(ctx, "Make Short Url", 2, 1, "  https://long.example/article  "))

	link, err := f.svc.Shorten(ctx)
	require.NoError(t, err)

	assert.Equal(t, "https://bit.ly/new", link.ShortURL)
	assert.Equal(t, []string{"https://long.example/article"}, f.links.shortened)
	out, err := f.wb.Cell(ctx, "Make Short Url", 2, 2)
	require.NoError(t, err)
	assert.Equal(t, "https://bit.ly/new", out)
	assert.FileExists(t, f.path)
}

func TestShortenURLEntersInput(t *testing.T) {
	f := newFixture(t, "owner@example.com")
	ctx := context.Background()

	_, err := f.svc.ShortenURL(ctx, "https://typed.example")
	require.NoError(t, err)

	in, err := f.wb.Cell(ctx, "Make Short Url", 2, 1)
	require.NoError(t, err)
	assert.Equal(t, "https://typed.example", in)
	assert.Equal(t, []string{"https://typed.example"}, f.links.shortened)
}

func TestShortenEmptyInput(t *testing.T) {
	f := newFixture(t, "owner@example.com")

	_, err := f.svc.Shorten(context.Background())

	require.ErrorIs(t, err, ErrNoLongURL)
	assert.Equal(t, []string{PromptNoLongURL}, f.notifier.messages)
	assert.Empty(t, f.links.shortened)
}

func TestShortenRejectsNonOwner(t *testing.T) {
	f := newFixture(t, "visitor@example.com")

	_, err := f.svc.ShortenURL(context.Background(), "https://typed.example")

	var authErr *AuthorizationError
	require.ErrorAs(t, err, &authErr)
	assert.Equal(t, []string{PromptNotOwnerShorten}, f.notifier.messages)
	assert.Empty(t, f.links.shortened)
	assert.NoFileExists(t, f.path)
}
