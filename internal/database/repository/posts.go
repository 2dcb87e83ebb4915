package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("repository: not found")

// PostRepo handles posts.
type PostRepo struct {
	db *sql.DB
}

func NewPostRepo(db *sql.DB) *PostRepo {
	return &PostRepo{db: db}
}

func (r *PostRepo) Upsert(ctx context.Context, p Post) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO posts(id, title, content, status, type, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 content=excluded.content,
	 status=excluded.status,
	 type=excluded.type,
	 updated_at=excluded.updated_at;
	`, p.ID, p.Title, p.Content, p.Status, p.Type, p.CreatedAt, p.UpdatedAt)
	return err
}

func (r *PostRepo) Get(ctx context.Context, id string) (*Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, content, status, type, created_at, updated_at FROM posts WHERE id = ?`, id)
	var p Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Status, &p.Type, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// Latest returns the most recently updated post, or ErrNotFound when the
// table is empty.
func (r *PostRepo) Latest(ctx context.Context) (*Post, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, content, status, type, created_at, updated_at FROM posts ORDER BY updated_at DESC LIMIT 1`)
	var p Post
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &p.Status, &p.Type, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *PostRepo) List(ctx context.Context) ([]Post, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, content, status, type, created_at, updated_at FROM posts ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Post
	for rows.Next() {
		var p Post
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.Status, &p.Type, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PostRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM posts WHERE id = ?`, id)
	return err
}
