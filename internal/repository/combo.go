package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"giftme/internal/model"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
)

const comboColumns = `id, name, price, original_price, image, badge, discount, category,
	occasion, price_range, description, features, includes, gallery, created_at, updated_at`

// buildComboWhere renders WHERE clauses for a chat-pipeline combo filter.
// Occasion is a case-insensitive substring match; price bounds are applied
// independently; features require intersection with the stored lowercase
// canonical tags. Returns clauses, positional args and the next arg index.
func buildComboWhere(filter model.ComboFilter, argIndex int) ([]string, []interface{}, int) {
	var clauses []string
	var args []interface{}

	if filter.Occasion != nil {
		clauses = append(clauses, fmt.Sprintf("occasion ILIKE $%d", argIndex))
		args = append(args, "%"+*filter.Occasion+"%")
		argIndex++
	}
	if filter.PriceMin != nil {
		clauses = append(clauses, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, *filter.PriceMin)
		argIndex++
	}
	if filter.PriceMax != nil {
		clauses = append(clauses, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, *filter.PriceMax)
		argIndex++
	}
	if len(filter.Features) > 0 {
		clauses = append(clauses, fmt.Sprintf(
			"EXISTS (SELECT 1 FROM jsonb_array_elements_text(features) feat WHERE lower(feat) = ANY($%d))", argIndex))
		args = append(args, pq.Array(filter.Features))
		argIndex++
	}

	return clauses, args, argIndex
}

// FindCombos returns up to limit combos matching the filter, in creation
// order so identical queries stay reproducible.
func (r *PostgresRepository) FindCombos(ctx context.Context, filter model.ComboFilter, limit int) ([]model.Combo, error) {
	clauses, args, argIndex := buildComboWhere(filter, 1)
	where := "1=1"
	if len(clauses) > 0 {
		where = strings.Join(clauses, " AND ")
	}

	query := fmt.Sprintf(`SELECT %s FROM combos WHERE %s ORDER BY created_at ASC, id ASC LIMIT $%d`,
		comboColumns, where, argIndex)
	args = append(args, limit)

	combos := []model.Combo{}
	if err := r.db.SelectContext(ctx, &combos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch combos: %w", err)
	}
	return combos, nil
}

// normalizeFeatures lowercases and trims feature tags before storage, so the
// chat pipeline's lowercase intersection matching holds for every record.
func normalizeFeatures(features []string) []string {
	out := make([]string, 0, len(features))
	for _, f := range features {
		f = strings.ToLower(strings.TrimSpace(f))
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// CreateCombo inserts a new combo and returns the stored record
func (r *PostgresRepository) CreateCombo(ctx context.Context, input *model.ComboInput) (*model.Combo, error) {
	query := fmt.Sprintf(`
		INSERT INTO combos (name, price, original_price, image, badge, discount, category,
			occasion, price_range, description, features, includes, gallery)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING %s`, comboColumns)

	var combo model.Combo
	err := r.db.GetContext(ctx, &combo, query,
		input.Name, input.Price, input.OriginalPrice, input.Image, input.Badge, input.Discount,
		input.Category, input.Occasion, input.PriceRange, input.Description,
		model.JSONArray(normalizeFeatures(input.Features)),
		model.JSONArray(input.Includes), model.JSONArray(input.Gallery))
	if err != nil {
		return nil, fmt.Errorf("failed to create combo: %w", err)
	}
	return &combo, nil
}

// UpdateCombo replaces a combo's fields and returns the stored record
func (r *PostgresRepository) UpdateCombo(ctx context.Context, id int64, input *model.ComboInput) (*model.Combo, error) {
	query := fmt.Sprintf(`
		UPDATE combos SET name = $1, price = $2, original_price = $3, image = $4, badge = $5,
			discount = $6, category = $7, occasion = $8, price_range = $9, description = $10,
			features = $11, includes = $12, gallery = $13, updated_at = NOW()
		WHERE id = $14
		RETURNING %s`, comboColumns)

	var combo model.Combo
	err := r.db.GetContext(ctx, &combo, query,
		input.Name, input.Price, input.OriginalPrice, input.Image, input.Badge, input.Discount,
		input.Category, input.Occasion, input.PriceRange, input.Description,
		model.JSONArray(normalizeFeatures(input.Features)),
		model.JSONArray(input.Includes), model.JSONArray(input.Gallery), id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update combo: %w", err)
	}
	return &combo, nil
}

// DeleteCombo removes a combo
func (r *PostgresRepository) DeleteCombo(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM combos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete combo: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetComboByID retrieves a single combo
func (r *PostgresRepository) GetComboByID(ctx context.Context, id int64) (*model.Combo, error) {
	var combo model.Combo
	query := fmt.Sprintf(`SELECT %s FROM combos WHERE id = $1`, comboColumns)
	err := r.db.GetContext(ctx, &combo, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get combo: %w", err)
	}
	return &combo, nil
}

// ListCombos returns a catalog page with the storefront's filters applied
func (r *PostgresRepository) ListCombos(ctx context.Context, params model.ComboListParams) (*model.ComboListResponse, error) {
	page, limit, offset := normalizePage(params.Page, params.Limit, 50)

	whereClauses := []string{"1=1"}
	args := []interface{}{}
	argIndex := 1

	if search := strings.TrimSpace(params.Search); search != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("name ILIKE $%d", argIndex))
		args = append(args, "%"+search+"%")
		argIndex++
	}
	if category := strings.TrimSpace(params.Category); category != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("category = $%d", argIndex))
		args = append(args, category)
		argIndex++
	}
	if occasion := strings.TrimSpace(params.Occasion); occasion != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("occasion = $%d", argIndex))
		args = append(args, occasion)
		argIndex++
	}
	if badge := strings.TrimSpace(params.Badge); badge != "" {
		whereClauses = append(whereClauses, fmt.Sprintf("badge = $%d", argIndex))
		args = append(args, badge)
		argIndex++
	}
	if params.MinPrice > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("price >= $%d", argIndex))
		args = append(args, params.MinPrice)
		argIndex++
	}
	if params.MaxPrice > 0 {
		whereClauses = append(whereClauses, fmt.Sprintf("price <= $%d", argIndex))
		args = append(args, params.MaxPrice)
		argIndex++
	}

	whereClause := strings.Join(whereClauses, " AND ")

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM combos WHERE %s", whereClause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, fmt.Errorf("failed to count combos: %w", err)
	}

	orderBy := "created_at DESC"
	switch params.SortBy {
	case "price_low":
		orderBy = "price ASC"
	case "price_high":
		orderBy = "price DESC"
	case "newest":
		orderBy = "created_at DESC"
	}

	query := fmt.Sprintf(`SELECT %s FROM combos WHERE %s ORDER BY %s, id ASC LIMIT $%d OFFSET $%d`,
		comboColumns, whereClause, orderBy, argIndex, argIndex+1)
	args = append(args, limit, offset)

	combos := []model.Combo{}
	if err := r.db.SelectContext(ctx, &combos, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch combos: %w", err)
	}

	return &model.ComboListResponse{
		Data:       combos,
		Total:      total,
		Page:       page,
		TotalPages: totalPages(total, limit),
	}, nil
}

// GetHotCombos returns the newest combos carrying the HOT badge
func (r *PostgresRepository) GetHotCombos(ctx context.Context, limit int) ([]model.Combo, error) {
	query := fmt.Sprintf(`SELECT %s FROM combos WHERE badge = 'HOT' ORDER BY created_at DESC LIMIT $1`, comboColumns)
	combos := []model.Combo{}
	if err := r.db.SelectContext(ctx, &combos, query, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch hot combos: %w", err)
	}
	return combos, nil
}

// GetSuggestedCombos returns other combos sharing the given combo's occasion
func (r *PostgresRepository) GetSuggestedCombos(ctx context.Context, id int64, limit int) ([]model.Combo, error) {
	current, err := r.GetComboByID(ctx, id)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`SELECT %s FROM combos WHERE id <> $1 AND occasion = $2 ORDER BY created_at DESC LIMIT $3`, comboColumns)
	combos := []model.Combo{}
	if err := r.db.SelectContext(ctx, &combos, query, id, current.Occasion, limit); err != nil {
		return nil, fmt.Errorf("failed to fetch suggested combos: %w", err)
	}
	return combos, nil
}

// BatchUpdateEmbeddings updates embedding vectors for multiple combos
func (r *PostgresRepository) BatchUpdateEmbeddings(ctx context.Context, items []model.EmbeddingItem) (int, []string) {
	success := 0
	var errs []string

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		errs = append(errs, fmt.Sprintf("failed to start transaction: %v", err))
		return success, errs
	}
	defer tx.Rollback()

	stmt, err := tx.PreparexContext(ctx, `UPDATE combos SET embedding = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		errs = append(errs, fmt.Sprintf("failed to prepare statement: %v", err))
		return success, errs
	}
	defer stmt.Close()

	for _, item := range items {
		vec := pgvector.NewVector(item.Embedding)
		if _, err := stmt.ExecContext(ctx, vec, item.ComboID); err != nil {
			errs = append(errs, fmt.Sprintf("combo_id %d: %v", item.ComboID, err))
			continue
		}
		success++
	}

	if err := tx.Commit(); err != nil {
		errs = append(errs, fmt.Sprintf("failed to commit transaction: %v", err))
		return 0, errs
	}

	return success, errs
}
