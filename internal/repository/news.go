package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"giftme/internal/model"
)

const newsColumns = `id, title, excerpt, content, image, category, author, publish_date,
	read_time, featured, tags, created_at, updated_at`

// CreateNews inserts a new article and returns the stored record
func (r *PostgresRepository) CreateNews(ctx context.Context, input *model.NewsInput) (*model.NewsArticle, error) {
	query := fmt.Sprintf(`
		INSERT INTO news (title, excerpt, content, image, category, author, publish_date, read_time, featured, tags)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, newsColumns)

	var article model.NewsArticle
	err := r.db.GetContext(ctx, &article, query,
		input.Title, input.Excerpt, input.Content, input.Image, input.Category,
		input.Author, input.PublishDate, input.ReadTime, input.Featured, model.JSONArray(input.Tags))
	if err != nil {
		return nil, fmt.Errorf("failed to create news article: %w", err)
	}
	return &article, nil
}

// UpdateNews replaces an article's fields and returns the stored record
func (r *PostgresRepository) UpdateNews(ctx context.Context, id int64, input *model.NewsInput) (*model.NewsArticle, error) {
	query := fmt.Sprintf(`
		UPDATE news SET title = $1, excerpt = $2, content = $3, image = $4, category = $5,
			author = $6, publish_date = $7, read_time = $8, featured = $9, tags = $10, updated_at = NOW()
		WHERE id = $11
		RETURNING %s`, newsColumns)

	var article model.NewsArticle
	err := r.db.GetContext(ctx, &article, query,
		input.Title, input.Excerpt, input.Content, input.Image, input.Category,
		input.Author, input.PublishDate, input.ReadTime, input.Featured, model.JSONArray(input.Tags), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update news article: %w", err)
	}
	return &article, nil
}

// DeleteNews removes an article
func (r *PostgresRepository) DeleteNews(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete news article: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetNewsByID retrieves a single article
func (r *PostgresRepository) GetNewsByID(ctx context.Context, id int64) (*model.NewsArticle, error) {
	var article model.NewsArticle
	query := fmt.Sprintf(`SELECT %s FROM news WHERE id = $1`, newsColumns)
	err := r.db.GetContext(ctx, &article, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get news article: %w", err)
	}
	return &article, nil
}

// ListNews returns a paginated article listing, newest publish date first
func (r *PostgresRepository) ListNews(ctx context.Context, params model.ListParams) (*model.NewsListResponse, error) {
	page, limit, offset := normalizePage(params.Page, params.Limit, 50)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if search := strings.TrimSpace(params.Search); search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(title ILIKE $%d OR excerpt ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+search+"%")
		argIndex++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM news WHERE %s", whereClause), args...); err != nil {
		return nil, fmt.Errorf("failed to count news articles: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM news WHERE %s ORDER BY publish_date DESC, id ASC LIMIT $%d OFFSET $%d`,
		newsColumns, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	articles := []model.NewsArticle{}
	if err := r.db.SelectContext(ctx, &articles, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch news articles: %w", err)
	}

	return &model.NewsListResponse{
		Data:       articles,
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	}, nil
}
