package model

// Intent is the coarse category of a user utterance
type Intent int

const (
	IntentOther Intent = iota
	IntentGreeting
	IntentGiftRequest
)

// String returns a readable label, mostly for logging
func (i Intent) String() string {
	switch i {
	case IntentGreeting:
		return "greeting"
	case IntentGiftRequest:
		return "gift_request"
	default:
		return "other"
	}
}

// GiftAnalysis is the structured gift-request description extracted from a
// user's free-text inquiry. Budget bounds are in thousand VND; nil means the
// field was not detected. Lives for a single conversation turn.
type GiftAnalysis struct {
	Occasion  *string  `json:"occasion"`
	BudgetMin *float64 `json:"budgetMin"`
	BudgetMax *float64 `json:"budgetMax"`
	Features  []string `json:"features"`
}

// ChatRequest is one user message sent to the assistant
type ChatRequest struct {
	Message string `json:"message" binding:"required"`
}

// ChatResponse carries the assistant reply plus any suggested combos
type ChatResponse struct {
	Response string  `json:"response"`
	Data     []Combo `json:"data,omitempty"`
}
