package cache

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ananthu100/pubmed-pharma-papers-aganitha/pkg/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "papers.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecord(pmid string) types.PaperRecord {
	return types.PaperRecord{
		PMID:    pmid,
		Title:   "A cached paper.",
		PubDate: "2024 Mar",
		Authors: []types.Author{
			{ForeName: "Wei", LastName: "Chen", Affiliations: []string{"Pfizer Inc., New York"}},
		},
	}
}

func TestGetOnEmptyStore(t *testing.T) {
	s := openTestStore(t)

	hits, misses, err := s.Get(context.Background(), []string{"1", "2"})
	require.NoError(t, err)
	assert.Empty(t, hits)
	assert.Equal(t, []string{"1", "2"}, misses)
}

func TestPutThenGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	want := sampleRecord("38912345")
	require.NoError(t, s.Put(ctx, []types.PaperRecord{want}))

	hits, misses, err := s.Get(ctx, []string{"38912345", "99999999"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, want, hits[0])
	assert.Equal(t, []string{"99999999"}, misses)
}

func TestPutUpserts(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	rec := sampleRecord("1")
	require.NoError(t, s.Put(ctx, []types.PaperRecord{rec}))

	rec.Title = "An updated title."
	require.NoError(t, s.Put(ctx, []types.PaperRecord{rec}))

	hits, _, err := s.Get(ctx, []string{"1"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "An updated title.", hits[0].Title)

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestGetPreservesRequestOrder(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put(ctx, []types.PaperRecord{sampleRecord("2"), sampleRecord("4")}))

	hits, misses, err := s.Get(ctx, []string{"1", "2", "3", "4"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3"}, misses)
	require.Len(t, hits, 2)
	assert.Equal(t, "2", hits[0].PMID)
	assert.Equal(t, "4", hits[1].PMID)
}

func TestOpenCreatesParentDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "papers.db")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Put(context.Background(), []types.PaperRecord{sampleRecord("1")}))
}
