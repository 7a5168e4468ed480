package service

import (
	"regexp"

	"giftme/internal/model"
)

// intentRule maps a compiled pattern to the intent it signals
type intentRule struct {
	pattern *regexp.Regexp
	intent  model.Intent
}

// Ordered rules, first match wins. Greeting markers take priority over gift
// markers, so "chào shop, mình muốn mua quà" opens with a greeting. The bare
// "hi" needs surrounding whitespace/punctuation to avoid firing on Vietnamese
// words like "hiểu".
var intentRules = []intentRule{
	{regexp.MustCompile(`(?i)(xin chào|chào|hello|(^|[\s.,!?])hi([\s.,!?]|$))`), model.IntentGreeting},
	{regexp.MustCompile(`(?i)(quà|tặng|gợi ý|(^|[\s.,!?])mua([\s.,!?]|$))`), model.IntentGiftRequest},
}

// DetectIntent classifies a user utterance with substring rules. It is
// intentionally coarse: it exists to short-circuit the slow, fallible oracle
// call for unambiguous input. Pure and total; unmatched text is IntentOther.
func DetectIntent(text string) model.Intent {
	for _, rule := range intentRules {
		if rule.pattern.MatchString(text) {
			return rule.intent
		}
	}
	return model.IntentOther
}
