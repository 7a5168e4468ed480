package model

import "time"

// NewsArticle is a storefront news/blog post
type NewsArticle struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Excerpt     string    `json:"excerpt" db:"excerpt"`
	Content     string    `json:"content" db:"content"`
	Image       string    `json:"image" db:"image"`
	Category    string    `json:"category" db:"category"`
	Author      string    `json:"author" db:"author"`
	PublishDate time.Time `json:"publish_date" db:"publish_date"`
	ReadTime    int       `json:"read_time" db:"read_time"`
	Featured    bool      `json:"featured" db:"featured"`
	Tags        JSONArray `json:"tags,omitempty" db:"tags"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// NewsInput carries admin-supplied article fields
type NewsInput struct {
	Title       string    `json:"title" binding:"required"`
	Excerpt     string    `json:"excerpt" binding:"required"`
	Content     string    `json:"content" binding:"required"`
	Image       string    `json:"image" binding:"required"`
	Category    string    `json:"category" binding:"required"`
	Author      string    `json:"author" binding:"required"`
	PublishDate time.Time `json:"publish_date" binding:"required"`
	ReadTime    int       `json:"read_time" binding:"required,gt=0"`
	Featured    bool      `json:"featured"`
	Tags        []string  `json:"tags"`
}

// NewsListResponse is a paginated news page
type NewsListResponse struct {
	Data       []NewsArticle `json:"data"`
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
}

// ContentBlock is an admin-managed homepage content section
type ContentBlock struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Image       string    `json:"image" db:"image"`
	Description string    `json:"description" db:"description"`
	Tags        JSONArray `json:"tags,omitempty" db:"tags"`
	Enabled     bool      `json:"enabled" db:"enabled"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ContentInput carries admin-supplied content block fields
type ContentInput struct {
	Title       string   `json:"title" binding:"required"`
	Image       string   `json:"image" binding:"required"`
	Description string   `json:"description" binding:"required"`
	Tags        []string `json:"tags"`
	Enabled     bool     `json:"enabled"`
}

// BotReply is an admin-maintained keyword record: when any keyword appears in
// a user message the canned response is returned without an oracle call.
type BotReply struct {
	ID        int64     `json:"id" db:"id"`
	Keywords  JSONArray `json:"keywords" db:"keywords"`
	Response  string    `json:"response" db:"response"`
	Active    bool      `json:"active" db:"active"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// BotReplyInput carries admin-supplied keyword record fields
type BotReplyInput struct {
	Keywords []string `json:"keywords" binding:"required,min=1,dive,required"`
	Response string   `json:"response" binding:"required"`
	Active   *bool    `json:"active"`
}

// BotReplyListResponse is a paginated keyword record page
type BotReplyListResponse struct {
	Data       []BotReply `json:"data"`
	Total      int        `json:"total"`
	Page       int        `json:"page"`
	TotalPages int        `json:"totalPages"`
}

// ListParams are shared pagination parameters for admin listings
type ListParams struct {
	Page   int
	Limit  int
	Search string
}

// EmbeddingBatchRequest is a batch embedding upload for combos
type EmbeddingBatchRequest struct {
	Embeddings []EmbeddingItem `json:"embeddings" binding:"required"`
}

// EmbeddingItem is a single combo embedding
type EmbeddingItem struct {
	ComboID   int64     `json:"combo_id" binding:"required"`
	Embedding []float32 `json:"embedding" binding:"required"`
}

// EmbeddingBatchResponse reports the outcome of a batch embedding upload
type EmbeddingBatchResponse struct {
	Success int      `json:"success"`
	Failed  int      `json:"failed"`
	Errors  []string `json:"errors,omitempty"`
}
