package source

import (
	"context"
	"database/sql"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/nikbrunner/dropdown/internal/model"
)

// SQLiteDataSource serves paginated, keyword-filtered entries from a local
// SQLite database. It lets the widget exercise the remote-search path
// without a network.
type SQLiteDataSource struct {
	db *sql.DB
}

// NewSQLiteDataSource opens (or creates) the database at path. Use
// ":memory:" for an in-memory database.
func NewSQLiteDataSource(path string) (*SQLiteDataSource, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &SQLiteDataSource{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteDataSource) Close() error {
	return s.db.Close()
}

func (s *SQLiteDataSource) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS options (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			value TEXT NOT NULL,
			text TEXT NOT NULL,
			grp TEXT NOT NULL DEFAULT '',
			image TEXT NOT NULL DEFAULT ''
		)
	`)
	return err
}

// Seed replaces the stored rows with the given entries. Group entries are
// flattened into rows carrying their group label.
func (s *SQLiteDataSource) Seed(entries []model.Entry) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec("DELETE FROM options"); err != nil {
		return err
	}

	insert := func(e model.Entry, label string) error {
		_, err := tx.Exec(
			"INSERT INTO options (value, text, grp, image) VALUES (?, ?, ?, ?)",
			e.Value, e.Text, label, e.Image,
		)
		return err
	}
	for _, e := range entries {
		if e.IsGroup() {
			for _, c := range e.Children {
				if err := insert(c, e.Label); err != nil {
					return err
				}
			}
			continue
		}
		if err := insert(e, ""); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Fetch returns one page of entries whose text matches the keyword,
// regrouping consecutive rows sharing a group label.
func (s *SQLiteDataSource) Fetch(ctx context.Context, q Query) (Page, error) {
	perPage := q.PerPage
	if perPage <= 0 {
		perPage = 20
	}
	page := q.Page
	if page < 1 {
		page = 1
	}
	pattern := "%" + strings.ToLower(q.Keyword) + "%"

	var total int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM options WHERE lower(text) LIKE ?", pattern,
	).Scan(&total)
	if err != nil {
		return Page{}, err
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT value, text, grp, image FROM options WHERE lower(text) LIKE ? ORDER BY id LIMIT ? OFFSET ?",
		pattern, perPage, (page-1)*perPage,
	)
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	var entries []model.Entry
	currentLabel := ""
	for rows.Next() {
		var value, text, label, image string
		if err := rows.Scan(&value, &text, &label, &image); err != nil {
			return Page{}, err
		}
		entry := model.Entry{Value: value, Text: text, Image: image}
		if label == "" {
			entries = append(entries, entry)
			currentLabel = ""
			continue
		}
		if label != currentLabel || len(entries) == 0 || !entries[len(entries)-1].IsGroup() {
			entries = append(entries, model.NewGroupEntry(label))
			currentLabel = label
		}
		last := &entries[len(entries)-1]
		last.Children = append(last.Children, entry)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	return Page{
		Entries:    entries,
		Page:       page,
		TotalPages: totalPages,
		HasMore:    page < totalPages,
	}, nil
}
