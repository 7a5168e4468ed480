package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"giftme/internal/model"
)

const replyColumns = `id, keywords, response, active, created_at, updated_at`

// ActiveReplies returns the keyword records the chat pipeline matches against
func (r *PostgresRepository) ActiveReplies(ctx context.Context) ([]model.BotReply, error) {
	query := fmt.Sprintf(`SELECT %s FROM bot_replies WHERE active = true ORDER BY id ASC`, replyColumns)
	replies := []model.BotReply{}
	if err := r.db.SelectContext(ctx, &replies, query); err != nil {
		return nil, fmt.Errorf("failed to fetch active replies: %w", err)
	}
	return replies, nil
}

// CreateReply inserts a new keyword record and returns the stored record
func (r *PostgresRepository) CreateReply(ctx context.Context, input *model.BotReplyInput) (*model.BotReply, error) {
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	query := fmt.Sprintf(`
		INSERT INTO bot_replies (keywords, response, active)
		VALUES ($1, $2, $3)
		RETURNING %s`, replyColumns)

	var reply model.BotReply
	err := r.db.GetContext(ctx, &reply, query, model.JSONArray(input.Keywords), input.Response, active)
	if err != nil {
		return nil, fmt.Errorf("failed to create reply: %w", err)
	}
	return &reply, nil
}

// UpdateReply replaces a keyword record's fields and returns the stored record
func (r *PostgresRepository) UpdateReply(ctx context.Context, id int64, input *model.BotReplyInput) (*model.BotReply, error) {
	active := true
	if input.Active != nil {
		active = *input.Active
	}

	query := fmt.Sprintf(`
		UPDATE bot_replies SET keywords = $1, response = $2, active = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING %s`, replyColumns)

	var reply model.BotReply
	err := r.db.GetContext(ctx, &reply, query, model.JSONArray(input.Keywords), input.Response, active, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update reply: %w", err)
	}
	return &reply, nil
}

// DeleteReply removes a keyword record
func (r *PostgresRepository) DeleteReply(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bot_replies WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete reply: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ListReplies returns a paginated keyword record listing for the back office
func (r *PostgresRepository) ListReplies(ctx context.Context, params model.ListParams) (*model.BotReplyListResponse, error) {
	page, limit, offset := normalizePage(params.Page, params.Limit, 50)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if search := strings.TrimSpace(params.Search); search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("(keywords::text ILIKE $%d OR response ILIKE $%d)", argIndex, argIndex))
		args = append(args, "%"+search+"%")
		argIndex++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM bot_replies WHERE %s", whereClause), args...); err != nil {
		return nil, fmt.Errorf("failed to count replies: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM bot_replies WHERE %s ORDER BY id ASC LIMIT $%d OFFSET $%d`,
		replyColumns, whereClause, argIndex, argIndex+1)
	args = append(args, limit, offset)

	replies := []model.BotReply{}
	if err := r.db.SelectContext(ctx, &replies, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch replies: %w", err)
	}

	return &model.BotReplyListResponse{
		Data:       replies,
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	}, nil
}
