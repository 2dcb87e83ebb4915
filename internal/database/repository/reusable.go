package repository

import (
	"context"
	"database/sql"
	"errors"
)

// ReusableBlockRepo handles reusable blocks.
type ReusableBlockRepo struct {
	db *sql.DB
}

func NewReusableBlockRepo(db *sql.DB) *ReusableBlockRepo {
	return &ReusableBlockRepo{db: db}
}

func (r *ReusableBlockRepo) Upsert(ctx context.Context, b ReusableBlock) error {
	_, err := r.db.ExecContext(ctx, `
	INSERT INTO reusable_blocks(id, title, content, updated_at)
	VALUES (?, ?, ?, ?)
	ON CONFLICT(id) DO UPDATE SET
	 title=excluded.title,
	 content=excluded.content,
	 updated_at=excluded.updated_at;
	`, b.ID, b.Title, b.Content, b.UpdatedAt)
	return err
}

func (r *ReusableBlockRepo) Get(ctx context.Context, id string) (*ReusableBlock, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, title, content, updated_at FROM reusable_blocks WHERE id = ?`, id)
	var b ReusableBlock
	if err := row.Scan(&b.ID, &b.Title, &b.Content, &b.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *ReusableBlockRepo) List(ctx context.Context) ([]ReusableBlock, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, content, updated_at FROM reusable_blocks ORDER BY title, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ReusableBlock
	for rows.Next() {
		var b ReusableBlock
		if err := rows.Scan(&b.ID, &b.Title, &b.Content, &b.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *ReusableBlockRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reusable_blocks WHERE id = ?`, id)
	return err
}

// Rename moves a row to a new id, used when a temporary client id is
// replaced by the final one on first save.
func (r *ReusableBlockRepo) Rename(ctx context.Context, oldID, newID string) error {
	_, err := r.db.ExecContext(ctx, `UPDATE reusable_blocks SET id = ? WHERE id = ?`, newID, oldID)
	return err
}
