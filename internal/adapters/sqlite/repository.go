package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"promptdeck/internal/application"
	"promptdeck/internal/domain"
	"promptdeck/internal/ports"
)

const schemaVersion = "1"

// Repository implements ports.ProjectRepository on SQLite. The project
// document is stored as JSON with extracted columns for listing.
type Repository struct {
	db     *sql.DB
	dbPath string
}

// Ensure Repository implements ProjectRepository
var _ ports.ProjectRepository = (*Repository)(nil)

// Open creates a repository backed by the database at dbPath.
func Open(dbPath string) (*Repository, error) {
	if strings.HasPrefix(dbPath, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// WAL mode for better concurrency between the editor surface and
	// background autosaves.
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Performance pragmas + schema in single batch (reduces round-trips)
	_, err = db.Exec(`
		PRAGMA synchronous = NORMAL;
		PRAGMA cache_size = -64000;
		PRAGMA temp_store = MEMORY;
		PRAGMA busy_timeout = 5000;

		CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			segment_count INTEGER NOT NULL,
			created_at INTEGER NOT NULL,
			modified_at INTEGER NOT NULL,
			document TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_projects_modified ON projects(modified_at);

		INSERT OR REPLACE INTO meta (key, value) VALUES ('schema_version', '` + schemaVersion + `');
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	return &Repository{db: db, dbPath: dbPath}, nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Create persists a new empty project with the given name.
func (r *Repository) Create(name string) (*domain.Project, error) {
	p := domain.NewProject(name)
	if err := r.Save(p); err != nil {
		return nil, err
	}
	return p, nil
}

// Save upserts the stored document for the project.
func (r *Repository) Save(p *domain.Project) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return &application.StorageError{Op: "save", Err: err}
	}

	_, err = r.db.Exec(`
		INSERT INTO projects (id, name, segment_count, created_at, modified_at, document)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			segment_count = excluded.segment_count,
			modified_at = excluded.modified_at,
			document = excluded.document
	`, p.ID, p.Name, len(p.Segments), p.CreatedAt.UnixMilli(), p.ModifiedAt.UnixMilli(), string(doc))
	if err != nil {
		return &application.StorageError{Op: "save", Err: err}
	}
	return nil
}

// Load fetches a project by ID.
func (r *Repository) Load(id string) (*domain.Project, error) {
	var doc string
	err := r.db.QueryRow(`SELECT document FROM projects WHERE id = ?`, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, &application.NotFoundError{Kind: "project", ID: id}
	}
	if err != nil {
		return nil, &application.StorageError{Op: "load", Err: err}
	}

	var p domain.Project
	if err := json.Unmarshal([]byte(doc), &p); err != nil {
		return nil, &application.StorageError{Op: "load", Err: err}
	}
	return &p, nil
}

// List returns summaries of all stored projects.
func (r *Repository) List() ([]domain.ProjectSummary, error) {
	rows, err := r.db.Query(`
		SELECT id, name, segment_count, modified_at
		FROM projects ORDER BY modified_at DESC
	`)
	if err != nil {
		return nil, &application.StorageError{Op: "list", Err: err}
	}
	defer rows.Close()

	var summaries []domain.ProjectSummary
	for rows.Next() {
		var s domain.ProjectSummary
		var modified int64
		if err := rows.Scan(&s.ID, &s.Name, &s.SegmentCount, &modified); err != nil {
			return nil, &application.StorageError{Op: "list", Err: err}
		}
		s.ModifiedAt = time.UnixMilli(modified).UTC()
		summaries = append(summaries, s)
	}

	return summaries, rows.Err()
}

// Delete removes a project.
func (r *Repository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return &application.StorageError{Op: "delete", Err: err}
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return &application.NotFoundError{Kind: "project", ID: id}
	}
	return nil
}

// Duplicate copies a project under a new name with fresh IDs.
func (r *Repository) Duplicate(id, name string) (*domain.Project, error) {
	src, err := r.Load(id)
	if err != nil {
		return nil, err
	}

	copy := src.Clone()
	copy.ID = uuid.NewString()
	copy.Name = name
	now := time.Now().UTC()
	copy.CreatedAt = now
	copy.ModifiedAt = now
	for i := range copy.Segments {
		copy.Segments[i].ID = uuid.NewString()
	}

	if err := r.Save(copy); err != nil {
		return nil, err
	}
	return copy, nil
}
