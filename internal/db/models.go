package db

import "database/sql"

type Work struct {
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

type WorkAuthor struct {
	WorkID   string
	Position int64
	Name     string
}

type WorkFandom struct {
	WorkID   string
	Position int64
	Name     string
}
