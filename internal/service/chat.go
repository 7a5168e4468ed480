package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"giftme/internal/model"
)

// ErrEmptyMessage is the only error HandleMessage surfaces to its caller:
// the message was empty after trimming. Everything else degrades into a
// lower-quality but successful reply.
var ErrEmptyMessage = errors.New("message must not be empty")

// Static replies used when the oracle call for the final text itself fails
const (
	fallbackGreeting  = "Xin chào! Mình là trợ lý quà tặng của Gift Me. Bạn đang tìm quà cho dịp nào vậy?"
	fallbackSuggest   = "Mình tìm được vài combo quà phù hợp với yêu cầu của bạn, bạn xem thử nhé!"
	fallbackNoResults = "Mình chưa tìm được combo nào khớp với yêu cầu. Bạn thử đổi dịp hoặc khoảng giá xem sao nhé!"
	fallbackGeneric   = "Xin lỗi, tôi chưa hiểu. Bạn có thể hỏi câu khác được không?"
)

// ComboFinder is the product lookup collaborator
type ComboFinder interface {
	FindCombos(ctx context.Context, filter model.ComboFilter, limit int) ([]model.Combo, error)
}

// ChatService runs the conversational pipeline: classify the message,
// extract a structured gift request when there is one, look up matching
// combos and assemble a user-facing reply. Holds no cross-turn state, so
// concurrent turns need no locking. At most 3 oracle calls per turn:
// re-classification, structured extraction, final reply generation.
type ChatService struct {
	finder        ComboFinder
	replies       ReplySource
	oracle        Oracle
	extractor     *Extractor
	oracleTimeout time.Duration
	limit         int
}

// NewChatService creates a new chat service. Both replies and oracle may be
// nil; the pipeline then runs keyword-only with static replies.
func NewChatService(finder ComboFinder, replies ReplySource, oracle Oracle, oracleTimeout time.Duration, limit int) *ChatService {
	if oracleTimeout <= 0 {
		oracleTimeout = 15 * time.Second
	}
	if limit <= 0 {
		limit = SuggestionLimit
	}
	return &ChatService{
		finder:        finder,
		replies:       replies,
		oracle:        oracle,
		extractor:     NewExtractor(oracle),
		oracleTimeout: oracleTimeout,
		limit:         limit,
	}
}

// HandleMessage processes one user turn and always produces a non-empty
// response text plus zero or more suggested combos.
func (s *ChatService) HandleMessage(ctx context.Context, text string) (*model.ChatResponse, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	intent := DetectIntent(text)

	if intent == model.IntentOther {
		// Admin keyword records answer FAQs without touching the oracle.
		if s.replies != nil {
			if replies, err := s.replies.ActiveReplies(ctx); err != nil {
				log.Printf("loading keyword replies failed: %v", err)
			} else if response := MatchReply(replies, text); response != "" {
				return &model.ChatResponse{Response: response}, nil
			}
		}
		intent = s.classifyWithOracle(ctx, text)
	}

	switch intent {
	case model.IntentGreeting:
		return &model.ChatResponse{Response: s.generateReply(ctx, greetingPrompt(text), fallbackGreeting)}, nil
	case model.IntentGiftRequest:
		return s.respondWithSuggestions(ctx, text)
	default:
		return &model.ChatResponse{Response: s.generateReply(ctx, genericPrompt(text), fallbackGeneric)}, nil
	}
}

// respondWithSuggestions runs the gift path: extract, build the filter, look
// up combos, assemble the reply. Storage failures degrade like oracle ones.
func (s *ChatService) respondWithSuggestions(ctx context.Context, text string) (*model.ChatResponse, error) {
	analysisCtx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	analysis := s.extractor.Analyze(analysisCtx, text)
	cancel()

	filter := BuildComboFilter(analysis)

	combos, err := s.finder.FindCombos(ctx, filter, s.limit)
	if err != nil {
		log.Printf("combo lookup failed: %v", err)
		return &model.ChatResponse{Response: s.generateReply(ctx, genericPrompt(text), fallbackGeneric)}, nil
	}

	if len(combos) == 0 {
		return &model.ChatResponse{Response: s.generateReply(ctx, noResultsPrompt(analysis), fallbackNoResults)}, nil
	}

	return &model.ChatResponse{
		Response: s.generateReply(ctx, suggestPrompt(analysis, len(combos)), fallbackSuggest),
		Data:     combos,
	}, nil
}

// classifyWithOracle asks the oracle to re-classify input the keyword rules
// could not place. Any failure keeps IntentOther.
func (s *ChatService) classifyWithOracle(ctx context.Context, text string) model.Intent {
	if s.oracle == nil {
		return model.IntentOther
	}

	callCtx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	defer cancel()

	raw, err := s.oracle.Ask(callCtx, classifyPrompt(text))
	if err != nil {
		log.Printf("intent re-classification failed: %v", err)
		return model.IntentOther
	}

	answer := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case strings.Contains(answer, "greeting"):
		return model.IntentGreeting
	case strings.Contains(answer, "gift"):
		return model.IntentGiftRequest
	}
	return model.IntentOther
}

// generateReply asks the oracle for the final user-facing text, substituting
// the static fallback on any failure so the turn still succeeds.
func (s *ChatService) generateReply(ctx context.Context, prompt, fallback string) string {
	if s.oracle == nil {
		return fallback
	}

	callCtx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	defer cancel()

	raw, err := s.oracle.Ask(callCtx, prompt)
	if err != nil {
		log.Printf("reply generation failed: %v", err)
		return fallback
	}

	reply := strings.TrimSpace(raw)
	if reply == "" {
		return fallback
	}
	return reply
}

// Prompt builders

func classifyPrompt(text string) string {
	return fmt.Sprintf(`Phân loại tin nhắn sau vào đúng một trong ba nhãn: greeting, gift_request, other.
- greeting: lời chào hỏi
- gift_request: hỏi mua hoặc nhờ gợi ý quà tặng
- other: mọi trường hợp còn lại

Tin nhắn: "%s"

Chỉ trả về nhãn, không thêm chữ nào khác.`, text)
}

func greetingPrompt(text string) string {
	return fmt.Sprintf(`Bạn là trợ lý quà tặng thân thiện của cửa hàng Gift Me. Người dùng chào: "%s". Hãy chào lại ngắn gọn, ấm áp bằng tiếng Việt và hỏi họ đang tìm quà cho dịp nào.`, text)
}

func genericPrompt(text string) string {
	return fmt.Sprintf(`Bạn là trợ lý quà tặng của cửa hàng Gift Me. Người dùng viết: "%s". Hãy trả lời ngắn gọn, lịch sự bằng tiếng Việt và gợi ý họ mô tả dịp tặng quà cùng khoảng giá mong muốn.`, text)
}

func suggestPrompt(analysis model.GiftAnalysis, count int) string {
	return fmt.Sprintf(`Bạn là trợ lý quà tặng của cửa hàng Gift Me. Bạn vừa tìm được %d combo quà phù hợp với yêu cầu: %s. Hãy viết một câu giới thiệu ngắn gọn, hào hứng bằng tiếng Việt để mời người dùng xem các combo bên dưới. Không liệt kê sản phẩm.`, count, describeAnalysis(analysis))
}

func noResultsPrompt(analysis model.GiftAnalysis) string {
	return fmt.Sprintf(`Bạn là trợ lý quà tặng của cửa hàng Gift Me. Không có combo nào khớp với yêu cầu: %s. Hãy xin lỗi ngắn gọn bằng tiếng Việt và gợi ý người dùng nới rộng khoảng giá hoặc đổi dịp tặng quà.`, describeAnalysis(analysis))
}

// describeAnalysis renders the extracted constraints for reply prompts
func describeAnalysis(analysis model.GiftAnalysis) string {
	parts := []string{}
	if analysis.Occasion != nil {
		parts = append(parts, "dịp "+*analysis.Occasion)
	}
	if analysis.BudgetMin != nil {
		parts = append(parts, fmt.Sprintf("từ %.0f nghìn", *analysis.BudgetMin))
	}
	if analysis.BudgetMax != nil {
		parts = append(parts, fmt.Sprintf("đến %.0f nghìn", *analysis.BudgetMax))
	}
	if len(analysis.Features) > 0 {
		parts = append(parts, "đặc điểm "+strings.Join(analysis.Features, ", "))
	}
	if len(parts) == 0 {
		return "không có điều kiện cụ thể"
	}
	return strings.Join(parts, ", ")
}
