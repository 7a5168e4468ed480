package repository

import (
	"context"
	"database/sql"
	"fmt"

	"giftme/internal/model"
)

const contentColumns = `id, title, image, description, tags, enabled, created_at, updated_at`

// CreateContent inserts a new content block and returns the stored record
func (r *PostgresRepository) CreateContent(ctx context.Context, input *model.ContentInput) (*model.ContentBlock, error) {
	query := fmt.Sprintf(`
		INSERT INTO content_blocks (title, image, description, tags, enabled)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING %s`, contentColumns)

	var block model.ContentBlock
	err := r.db.GetContext(ctx, &block, query,
		input.Title, input.Image, input.Description, model.JSONArray(input.Tags), input.Enabled)
	if err != nil {
		return nil, fmt.Errorf("failed to create content block: %w", err)
	}
	return &block, nil
}

// UpdateContent replaces a content block's fields and returns the stored record
func (r *PostgresRepository) UpdateContent(ctx context.Context, id int64, input *model.ContentInput) (*model.ContentBlock, error) {
	query := fmt.Sprintf(`
		UPDATE content_blocks SET title = $1, image = $2, description = $3, tags = $4, enabled = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING %s`, contentColumns)

	var block model.ContentBlock
	err := r.db.GetContext(ctx, &block, query,
		input.Title, input.Image, input.Description, model.JSONArray(input.Tags), input.Enabled, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update content block: %w", err)
	}
	return &block, nil
}

// DeleteContent removes a content block
func (r *PostgresRepository) DeleteContent(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM content_blocks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete content block: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListContent returns content blocks, optionally restricted to enabled ones
// (the public storefront only sees enabled blocks)
func (r *PostgresRepository) ListContent(ctx context.Context, enabledOnly bool) ([]model.ContentBlock, error) {
	query := fmt.Sprintf(`SELECT %s FROM content_blocks ORDER BY id ASC`, contentColumns)
	if enabledOnly {
		query = fmt.Sprintf(`SELECT %s FROM content_blocks WHERE enabled = true ORDER BY id ASC`, contentColumns)
	}

	blocks := []model.ContentBlock{}
	if err := r.db.SelectContext(ctx, &blocks, query); err != nil {
		return nil, fmt.Errorf("failed to fetch content blocks: %w", err)
	}
	return blocks, nil
}
