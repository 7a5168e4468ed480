package service

import (
	"context"
	"strings"

	"giftme/internal/model"
)

// ReplySource provides the admin-maintained keyword records
type ReplySource interface {
	ActiveReplies(ctx context.Context) ([]model.BotReply, error)
}

// MatchReply returns the response of the first active record whose keyword
// appears in the input, or "" when none match. Matching is case-insensitive
// substring, same as the storefront admins expect from the back office.
func MatchReply(replies []model.BotReply, input string) string {
	lower := strings.ToLower(input)
	for _, reply := range replies {
		for _, keyword := range reply.Keywords {
			keyword = strings.ToLower(strings.TrimSpace(keyword))
			if keyword != "" && strings.Contains(lower, keyword) {
				return reply.Response
			}
		}
	}
	return ""
}
