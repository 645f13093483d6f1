package db

import (
	"context"
	"database/sql"
)

const upsertWork = `
insert into work (id, url, title, date, word_count, is_complete, is_crossover, rating, saved_at)
values (?, ?, ?, ?, ?, ?, ?, ?, ?)
on conflict (id) do update set
    url = excluded.url,
    title = excluded.title,
    date = excluded.date,
    word_count = excluded.word_count,
    is_complete = excluded.is_complete,
    is_crossover = excluded.is_crossover,
    rating = excluded.rating,
    saved_at = excluded.saved_at
`

type UpsertWorkParams struct {
	ID          string
	Url         string
	Title       string
	Date        int64
	WordCount   int64
	IsComplete  bool
	IsCrossover bool
	Rating      sql.NullInt64
	SavedAt     int64
}

func (q *Queries) UpsertWork(ctx context.Context, arg UpsertWorkParams) error {
	_, err := q.db.ExecContext(ctx, upsertWork,
		arg.ID,
		arg.Url,
		arg.Title,
		arg.Date,
		arg.WordCount,
		arg.IsComplete,
		arg.IsCrossover,
		arg.Rating,
		arg.SavedAt,
	)
	return err
}

const deleteWorkAuthors = `delete from work_author where work_id = ?`

func (q *Queries) DeleteWorkAuthors(ctx context.Context, workID string) error {
	_, err := q.db.ExecContext(ctx, deleteWorkAuthors, workID)
	return err
}

const addWorkAuthor = `insert into work_author (work_id, position, name) values (?, ?, ?)`

type AddWorkAuthorParams struct {
	WorkID   string
	Position int64
	Name     string
}

func (q *Queries) AddWorkAuthor(ctx context.Context, arg AddWorkAuthorParams) error {
	_, err := q.db.ExecContext(ctx, addWorkAuthor, arg.WorkID, arg.Position, arg.Name)
	return err
}

const deleteWorkFandoms = `delete from work_fandom where work_id = ?`

func (q *Queries) DeleteWorkFandoms(ctx context.Context, workID string) error {
	_, err := q.db.ExecContext(ctx, deleteWorkFandoms, workID)
	return err
}

const addWorkFandom = `insert into work_fandom (work_id, position, name) values (?, ?, ?)`

type AddWorkFandomParams struct {
	WorkID   string
	Position int64
	Name     string
}

func (q *Queries) AddWorkFandom(ctx context.Context, arg AddWorkFandomParams) error {
	_, err := q.db.ExecContext(ctx, addWorkFandom, arg.WorkID, arg.Position, arg.Name)
	return err
}

const workColumns = `id, url, title, date, word_count, is_complete, is_crossover, rating, saved_at`

const getWork = `select ` + workColumns + ` from work where id = ?`

func (q *Queries) GetWork(ctx context.Context, id string) (Work, error) {
	row := q.db.QueryRowContext(ctx, getWork, id)
	var i Work
	err := row.Scan(
		&i.ID,
		&i.Url,
		&i.Title,
		&i.Date,
		&i.WordCount,
		&i.IsComplete,
		&i.IsCrossover,
		&i.Rating,
		&i.SavedAt,
	)
	return i, err
}

const listWorks = `select ` + workColumns + ` from work order by saved_at desc, id asc`

func (q *Queries) ListWorks(ctx context.Context) ([]Work, error) {
	rows, err := q.db.QueryContext(ctx, listWorks)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []Work
	for rows.Next() {
		var i Work
		if err := rows.Scan(
			&i.ID,
			&i.Url,
			&i.Title,
			&i.Date,
			&i.WordCount,
			&i.IsComplete,
			&i.IsCrossover,
			&i.Rating,
			&i.SavedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const getWorkAuthors = `select name from work_author where work_id = ? order by position`

func (q *Queries) GetWorkAuthors(ctx context.Context, workID string) ([]string, error) {
	return q.listNames(ctx, getWorkAuthors, workID)
}

const getWorkFandoms = `select name from work_fandom where work_id = ? order by position`

func (q *Queries) GetWorkFandoms(ctx context.Context, workID string) ([]string, error) {
	return q.listNames(ctx, getWorkFandoms, workID)
}

func (q *Queries) listNames(ctx context.Context, query, workID string) ([]string, error) {
	rows, err := q.db.QueryContext(ctx, query, workID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		items = append(items, name)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
