package ao3

import (
	"ao3search/internal/components/chrono"
	"ao3search/internal/db"
	"ao3search/lib/testutil"
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func openTestStore(t testing.TB) Store {
	return NewStore(testutil.OpenDB(t, db.Schema), chrono.FixedTime{
		At: time.Date(2024, time.April, 1, 12, 0, 0, 0, time.UTC),
	})
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	works := []Work{
		{
			Id:          "12345678",
			Url:         "https://archiveofourown.org/works/12345678",
			Title:       "Example Work",
			Authors:     []string{"Author One", "Author Two"},
			Fandoms:     []string{"Fandom A", "Fandom B"},
			Date:        time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC),
			WordCount:   12345,
			IsComplete:  true,
			IsCrossover: true,
			Rating:      ratingPtr(RatingGeneral),
		},
		{
			Id:        "87654321",
			Url:       "https://archiveofourown.org/works/87654321",
			Title:     "Another Work",
			Fandoms:   []string{"Fandom C"},
			Date:      time.Date(2023, time.February, 1, 0, 0, 0, 0, time.UTC),
			WordCount: 987,
		},
	}
	require.NoError(t, store.Save(ctx, works))

	saved, err := store.Get(ctx, "12345678")
	require.NoError(t, err)
	if diff := cmp.Diff(works[0], saved); diff != "" {
		t.Fatal(diff)
	}

	listed, err := store.List(ctx)
	require.NoError(t, err)
	if diff := cmp.Diff(works, listed, cmpopts.EquateEmpty()); diff != "" {
		t.Fatal(diff)
	}
}

func TestStoreReplacesWork(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	work := Work{
		Id:      "1",
		Title:   "Draft",
		Authors: []string{"A", "B"},
		Fandoms: []string{"F"},
		Date:    time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, store.Save(ctx, []Work{work}))

	work.Title = "Final"
	work.Authors = []string{"B"}
	require.NoError(t, store.Save(ctx, []Work{work}))

	saved, err := store.Get(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "Final", saved.Title)
	require.Equal(t, []string{"B"}, saved.Authors)

	listed, err := store.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
}

func TestStoreMissingWork(t *testing.T) {
	store := openTestStore(t)
	_, err := store.Get(context.Background(), "404")
	require.ErrorIs(t, err, sql.ErrNoRows)
}
