package db

import (
	"ao3search/lib/configutil"
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func openTestDB(t testing.TB) *sql.DB {
	db, err := configutil.Database{File: ":memory:"}.OpenDB(Schema)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestMakeTxDiscard(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	tx, discard, _, err := NewMakeTx(database)(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertWork(ctx, UpsertWorkParams{ID: "1", Title: "discarded"}))
	require.NoError(t, discard())

	_, err = New(database).GetWork(ctx, "1")
	require.ErrorIs(t, err, sql.ErrNoRows)
}

func TestMakeTxCommit(t *testing.T) {
	database := openTestDB(t)
	ctx := context.Background()

	tx, discard, commit, err := NewMakeTx(database)(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.UpsertWork(ctx, UpsertWorkParams{ID: "1", Title: "kept"}))
	require.NoError(t, tx.AddWorkAuthor(ctx, AddWorkAuthorParams{WorkID: "1", Position: 1, Name: "B"}))
	require.NoError(t, tx.AddWorkAuthor(ctx, AddWorkAuthorParams{WorkID: "1", Position: 0, Name: "A"}))
	require.NoError(t, commit())
	require.Error(t, discard())

	qry := New(database)
	work, err := qry.GetWork(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, "kept", work.Title)
	require.False(t, work.Rating.Valid)

	authors, err := qry.GetWorkAuthors(ctx, "1")
	require.NoError(t, err)
	require.Equal(t, []string{"A", "B"}, authors)
}
