package service

import (
	"strings"

	"giftme/internal/model"
)

// SuggestionLimit is the default number of combos returned per gift request
const SuggestionLimit = 5

// BuildComboFilter translates a gift analysis into a storage filter.
// Pure and total. Occasion becomes a case-insensitive substring constraint,
// budget bounds map to price bounds and are kept independent (an inverted
// range is passed through as-is and matches nothing), features are lowercased
// for intersection against the lowercase canonical tags stored on combos.
func BuildComboFilter(analysis model.GiftAnalysis) model.ComboFilter {
	filter := model.ComboFilter{}

	if analysis.Occasion != nil {
		occasion := strings.ToLower(strings.TrimSpace(*analysis.Occasion))
		if occasion != "" {
			filter.Occasion = &occasion
		}
	}

	if analysis.BudgetMin != nil {
		min := *analysis.BudgetMin
		filter.PriceMin = &min
	}
	if analysis.BudgetMax != nil {
		max := *analysis.BudgetMax
		filter.PriceMax = &max
	}

	for _, feature := range analysis.Features {
		feature = strings.ToLower(strings.TrimSpace(feature))
		if feature != "" {
			filter.Features = append(filter.Features, feature)
		}
	}

	return filter
}
