package catalog

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory catalog.
const MemoryPath = ":memory:"

const (
	unknownEmoji       = "🎬"
	unknownDescription = "Film türü"
)

const schema = `
	CREATE TABLE IF NOT EXISTS genres (
		key TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		emoji TEXT NOT NULL,
		description TEXT NOT NULL,
		keywords TEXT NOT NULL DEFAULT ''
	);
`

// Store provides access to the genre catalog.
type Store struct {
	db *sql.DB
}

// Open opens the catalog at path, creating and seeding it when empty.
func Open(path string) (*Store, error) {
	if path == "" {
		path = MemoryPath
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	// Each pooled connection to :memory: would get its own empty database.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping catalog: %w", err)
	}

	s := &Store{db: db}
	if err := s.init(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) init() error {
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM genres`).Scan(&n); err != nil {
		return fmt.Errorf("count genres: %w", err)
	}
	if n > 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO genres (key, name, emoji, description, keywords) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare seed: %w", err)
	}
	defer stmt.Close()

	for _, r := range seed {
		if _, err := stmt.Exec(r.key, r.name, r.emoji, r.description, r.keywords); err != nil {
			return fmt.Errorf("seed %s: %w", r.key, err)
		}
	}
	return tx.Commit()
}

// Get returns a single catalog row by exact key, or nil if absent.
func (s *Store) Get(key string) (*Genre, error) {
	row := s.db.QueryRow(`
		SELECT key, name, emoji, description, keywords
		FROM genres
		WHERE key = ?
	`, key)

	g, err := scanGenre(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return g, nil
}

// Scorable returns every genre that has keywords, ordered by key.
func (s *Store) Scorable() ([]Genre, error) {
	rows, err := s.db.Query(`
		SELECT key, name, emoji, description, keywords
		FROM genres
		WHERE keywords <> ''
		ORDER BY key ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query genres: %w", err)
	}
	defer rows.Close()

	var out []Genre
	for rows.Next() {
		g, err := scanGenre(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

// Lookup resolves display metadata for a genre key. Combined keys such as
// "comedy_family" join their parts; unknown parts fall back to a generic
// entry with a capitalized name.
func (s *Store) Lookup(key string) (Info, error) {
	k := strings.ToLower(strings.TrimSpace(key))

	if !strings.Contains(k, "_") {
		g, err := s.Get(k)
		if err != nil {
			return Info{}, err
		}
		if g == nil {
			return Info{Name: capitalize(key), Emoji: unknownEmoji, Description: unknownDescription}, nil
		}
		return Info{Name: g.Name, Emoji: g.Emoji, Description: g.Description}, nil
	}

	var emojis, names, descriptions []string
	for _, part := range strings.Split(k, "_") {
		part = strings.TrimSpace(part)
		g, err := s.Get(part)
		if err != nil {
			return Info{}, err
		}
		if g == nil {
			emojis = append(emojis, unknownEmoji)
			names = append(names, capitalize(part))
			descriptions = append(descriptions, unknownDescription)
			continue
		}
		emojis = append(emojis, g.Emoji)
		names = append(names, g.Name)
		descriptions = append(descriptions, g.Description)
	}

	return Info{
		Emoji:       strings.Join(emojis[:min(2, len(emojis))], ""),
		Name:        strings.Join(names, " & "),
		Description: strings.Join(descriptions[:min(2, len(descriptions))], " ve "),
	}, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanGenre(sc scanner) (*Genre, error) {
	var g Genre
	var keywords string
	if err := sc.Scan(&g.Key, &g.Name, &g.Emoji, &g.Description, &keywords); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("scan genre: %w", err)
	}
	if keywords != "" {
		g.Keywords = strings.Split(keywords, ",")
	}
	return &g, nil
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
