package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/ukaji3/linksheet-go/pkg/linksheet/models"
)

func TestReconcileKeepsUserEdit(t *testing.T) {
	existing := []models.Row{{"A", "", "3", "https://a.example", "bit.ly/a"}}
	fresh := []models.Row{{"B", nil, int64(5), "https://a.example", "bit.ly/a"}}

	out := Reconcile(existing, fresh)

	want := []models.Row{{nil, nil, int64(5), "https://a.example", "bit.ly/a"}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileOverwritesEmptyCell(t *testing.T) {
	existing := []models.Row{{"", "", "", "", ""}}
	fresh := []models.Row{{"B", nil, int64(1), "https://b.example", "bit.ly/b"}}

	out := Reconcile(existing, fresh)

	assert.Equal(t, "B", out[0][0])
}

func TestReconcileEqualValueIsIdempotent(t *testing.T) {
	existing := []models.Row{{"Same", "note", "1", "https://c.example", "bit.ly/c"}}
	fresh := []models.Row{{"Same", nil, int64(2), "https://c.example", "bit.ly/c"}}

	out := Reconcile(existing, fresh)

	assert.Equal(t, "Same", out[0][0])
	assert.Equal(t, int64(2), out[0][2])
}

func TestReconcileNilFreshOverwrites(t *testing.T) {
	existing := []models.Row{{"Hand typed", "", "", "", ""}}
	fresh := []models.Row{{nil, nil, int64(0), "https://d.example", "bit.ly/d"}}

	out := Reconcile(existing, fresh)

	assert.Nil(t, out[0][0])
}

func TestReconcileOnlyProtectsFirstColumn(t *testing.T) {
	existing := []models.Row{{"", "", "999", "https://edited.example", "bit.ly/edited"}}
	fresh := []models.Row{{"T", nil, int64(1), "https://e.example", "bit.ly/e"}}

	out := Reconcile(existing, fresh)

	want := []models.Row{{"T", nil, int64(1), "https://e.example", "bit.ly/e"}}
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileComparesDisplayText(t *testing.T) {
	// A numeric title reads back from the sheet as text.
	existing := []models.Row{{"2017", "", "", "", ""}}
	fresh := []models.Row{{int64(2017), nil, int64(1), "", ""}}

	out := Reconcile(existing, fresh)

	assert.Equal(t, int64(2017), out[0][0])
}

func TestReconcileFreshLongerThanExisting(t *testing.T) {
	existing := []models.Row{{"title", "comment", "counts", "long", "short"}}
	fresh := []models.Row{
		{"title", "comment", "counts", "long", "short"},
		{"New", nil, int64(0), "https://f.example", "bit.ly/f"},
	}

	out := Reconcile(existing, fresh)

	if diff := cmp.Diff(fresh, out); diff != "" {
		t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	existing := []models.Row{{"A"}}
	fresh := []models.Row{{"B"}}

	_ = Reconcile(existing, fresh)

	assert.Equal(t, "A", existing[0][0])
	assert.Equal(t, "B", fresh[0][0])
}
