package dataset

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// LoadSQLite reads the dataset from a table in a SQLite database, in rowid
// order.
func LoadSQLite(ctx context.Context, path string, opts Options) (*Dataset, error) {
	opts = opts.withDefaults()

	// sql.Open would silently create a missing database file.
	if _, err := os.Stat(path); err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: fmt.Errorf("failed to open SQLite database: %w", err)}
	}
	defer db.Close()

	c := opts.Columns
	query := fmt.Sprintf("SELECT %s, %s, %s, %s, %s FROM %s ORDER BY rowid",
		quoteIdent(c.Date), quoteIdent(c.Season), quoteIdent(c.Weather),
		quoteIdent(c.Weekday), quoteIdent(c.Count), quoteIdent(opts.Table))

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, &ResourceError{Path: path, Err: fmt.Errorf("failed to query table %s: %w", opts.Table, err)}
	}
	defer rows.Close()

	source := path + ":" + opts.Table
	b := newBuilder(source, opts, 0)
	row := 0
	for rows.Next() {
		row++

		var rawDate any
		var season, weather, weekday, count sql.NullInt64
		if err := rows.Scan(&rawDate, &season, &weather, &weekday, &count); err != nil {
			return nil, &ParseError{Source: source, Row: row, Err: err}
		}

		for i, v := range []sql.NullInt64{season, weather, weekday, count} {
			if !v.Valid {
				return nil, &ParseError{Source: source, Row: row, Column: c.list()[i+1], Value: "NULL",
					Err: fmt.Errorf("value is required")}
			}
		}

		var date time.Time
		switch v := rawDate.(type) {
		case time.Time:
			date = v
		case string:
			date, err = time.ParseInLocation(opts.DateLayout, strings.TrimSpace(v), time.UTC)
		case []byte:
			date, err = time.ParseInLocation(opts.DateLayout, strings.TrimSpace(string(v)), time.UTC)
		default:
			err = fmt.Errorf("unsupported date type %T", rawDate)
		}
		if err != nil {
			return nil, &ParseError{Source: source, Row: row, Column: c.Date, Value: fmt.Sprint(rawDate), Err: err}
		}

		if err := b.add(row, date, int(season.Int64), int(weather.Int64), int(weekday.Int64), int(count.Int64)); err != nil {
			return nil, err
		}
	}
	if err := rows.Err(); err != nil {
		return nil, &ResourceError{Path: path, Err: err}
	}

	return b.dataset(), nil
}

// WriteSQLite stores ds in a new table of the SQLite database at path,
// creating the database file if needed.
func WriteSQLite(ctx context.Context, path string, opts Options, ds *Dataset) error {
	opts = opts.withDefaults()
	c := opts.Columns

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer db.Close()

	create := fmt.Sprintf(`CREATE TABLE %s (
		%s TEXT PRIMARY KEY,
		%s INTEGER NOT NULL,
		%s INTEGER NOT NULL,
		%s INTEGER NOT NULL,
		%s INTEGER NOT NULL
	)`, quoteIdent(opts.Table), quoteIdent(c.Date), quoteIdent(c.Season),
		quoteIdent(c.Weather), quoteIdent(c.Weekday), quoteIdent(c.Count))

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, create); err != nil {
		return fmt.Errorf("failed to create table %s: %w", opts.Table, err)
	}

	insert := fmt.Sprintf("INSERT INTO %s (%s, %s, %s, %s, %s) VALUES (?, ?, ?, ?, ?)",
		quoteIdent(opts.Table), quoteIdent(c.Date), quoteIdent(c.Season),
		quoteIdent(c.Weather), quoteIdent(c.Weekday), quoteIdent(c.Count))
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < ds.Len(); i++ {
		r := ds.At(i)
		_, err := stmt.ExecContext(ctx, r.Date.Format(opts.DateLayout), r.Season.Code(), r.Weather.Code(), r.Weekday, r.Count)
		if err != nil {
			return fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
