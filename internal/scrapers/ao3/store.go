package ao3

import (
	"ao3search/internal/components/assert"
	"ao3search/internal/components/chrono"
	"ao3search/internal/db"
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Store keeps search results in the database so they can be listed later
// without going back to the site.
type Store struct {
	makeTx db.MakeTx
	qry    *db.Queries
	time   chrono.TimeAPI
}

func NewStore(database *sql.DB, timeAPI chrono.TimeAPI) Store {
	assert.NotNil(database)
	assert.NotNil(timeAPI)

	return Store{
		makeTx: db.NewMakeTx(database),
		qry:    db.New(database),
		time:   timeAPI,
	}
}

// Save inserts or replaces every work in a single transaction.
func (s Store) Save(ctx context.Context, works []Work) error {
	tx, discard, commit, err := s.makeTx(ctx)
	if err != nil {
		return err
	}
	defer discard()

	savedAt := s.time.Now().Unix()
	for _, work := range works {
		err := saveWork(ctx, tx, work, savedAt)
		if err != nil {
			return fmt.Errorf("save work %s: %w", work.Id, err)
		}
	}

	return commit()
}

func saveWork(ctx context.Context, tx *db.Queries, work Work, savedAt int64) error {
	var rating sql.NullInt64
	if work.Rating != nil {
		rating = sql.NullInt64{Int64: int64(*work.Rating), Valid: true}
	}

	err := tx.UpsertWork(ctx, db.UpsertWorkParams{
		ID:          work.Id,
		Url:         work.Url,
		Title:       work.Title,
		Date:        work.Date.Unix(),
		WordCount:   work.WordCount,
		IsComplete:  work.IsComplete,
		IsCrossover: work.IsCrossover,
		Rating:      rating,
		SavedAt:     savedAt,
	})
	if err != nil {
		return err
	}

	err = tx.DeleteWorkAuthors(ctx, work.Id)
	if err != nil {
		return err
	}
	for i, author := range work.Authors {
		err = tx.AddWorkAuthor(ctx, db.AddWorkAuthorParams{
			WorkID:   work.Id,
			Position: int64(i),
			Name:     author,
		})
		if err != nil {
			return err
		}
	}

	err = tx.DeleteWorkFandoms(ctx, work.Id)
	if err != nil {
		return err
	}
	for i, fandom := range work.Fandoms {
		err = tx.AddWorkFandom(ctx, db.AddWorkFandomParams{
			WorkID:   work.Id,
			Position: int64(i),
			Name:     fandom,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// Get returns a saved work, sql.ErrNoRows is returned when it was never saved.
func (s Store) Get(ctx context.Context, id string) (Work, error) {
	row, err := s.qry.GetWork(ctx, id)
	if err != nil {
		return Work{}, err
	}
	return s.load(ctx, row)
}

// List returns every saved work, most recently saved first.
func (s Store) List(ctx context.Context) ([]Work, error) {
	rows, err := s.qry.ListWorks(ctx)
	if err != nil {
		return nil, err
	}
	works := make([]Work, len(rows))
	for i, row := range rows {
		works[i], err = s.load(ctx, row)
		if err != nil {
			return nil, err
		}
	}
	return works, nil
}

func (s Store) load(ctx context.Context, row db.Work) (Work, error) {
	authors, err := s.qry.GetWorkAuthors(ctx, row.ID)
	if err != nil {
		return Work{}, fmt.Errorf("get authors of %s: %w", row.ID, err)
	}
	fandoms, err := s.qry.GetWorkFandoms(ctx, row.ID)
	if err != nil {
		return Work{}, fmt.Errorf("get fandoms of %s: %w", row.ID, err)
	}

	var rating *Rating
	if row.Rating.Valid {
		r := Rating(row.Rating.Int64)
		rating = &r
	}

	return Work{
		Id:          row.ID,
		Url:         row.Url,
		Title:       row.Title,
		Authors:     authors,
		Fandoms:     fandoms,
		Date:        time.Unix(row.Date, 0).UTC(),
		WordCount:   row.WordCount,
		IsComplete:  row.IsComplete,
		IsCrossover: row.IsCrossover,
		Rating:      rating,
	}, nil
}
