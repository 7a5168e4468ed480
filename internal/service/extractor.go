package service

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"giftme/internal/model"
	"giftme/internal/utils"
)

const analysisPromptTemplate = `Người dùng viết: "%s".

Hãy phân tích và trả về JSON với cấu trúc:
{
  "occasion": "dịp tặng quà (ví dụ: sinh nhật, noel, valentine...), null nếu không có",
  "budgetMin": số tiền tối thiểu (nghìn VND, null nếu không có),
  "budgetMax": số tiền tối đa (nghìn VND, null nếu không có),
  "features": ["công nghệ", "thời trang", "làm đẹp", ...] hoặc []
}

Trả về chỉ JSON hợp lệ, không thêm chữ nào khác.`

// occasionKeywords maps input markers to canonical occasion labels.
// Checked in order, first hit wins.
var occasionKeywords = []struct {
	marker string
	label  string
}{
	{"sinh nhật", "sinh nhật"},
	{"valentine", "valentine"},
	{"noel", "noel"},
	{"giáng sinh", "noel"},
	{"tết", "tết"},
	{"8/3", "8/3"},
	{"20/10", "20/10"},
}

// Extractor turns free-text gift inquiries into a structured GiftAnalysis,
// combining an oracle prompt with keyword fallback over the raw input.
type Extractor struct {
	oracle Oracle
}

// NewExtractor creates a new extractor. A nil oracle is allowed; extraction
// then runs keyword-only.
func NewExtractor(oracle Oracle) *Extractor {
	return &Extractor{oracle: oracle}
}

// Analyze never fails: on any oracle error or unparsable reply the analysis
// keeps null fields and only the keyword fallback applies. The fallback also
// runs after a successful parse to fill a missing occasion, but it never
// overwrites a value the oracle produced.
func (e *Extractor) Analyze(ctx context.Context, text string) model.GiftAnalysis {
	analysis := model.GiftAnalysis{Features: []string{}}

	if e.oracle != nil {
		raw, err := e.oracle.Ask(ctx, fmt.Sprintf(analysisPromptTemplate, text))
		switch {
		case err != nil:
			log.Printf("gift analysis oracle call failed: %v", err)
		case utils.ExtractJSONObject(raw) == "":
			log.Printf("gift analysis reply carried no JSON object")
		default:
			mergeOracleFields(utils.ExtractJSONObject(raw), &analysis)
		}
	}

	if analysis.Occasion == nil {
		lower := strings.ToLower(text)
		for _, kw := range occasionKeywords {
			if strings.Contains(lower, kw.marker) {
				label := kw.label
				analysis.Occasion = &label
				break
			}
		}
	}

	return analysis
}

// mergeOracleFields copies type-valid fields out of the model's JSON object.
// Each field is validated independently; an absent or mistyped field stays
// null instead of failing the whole analysis.
func mergeOracleFields(obj string, analysis *model.GiftAnalysis) {
	var fields map[string]interface{}
	if err := utils.ParseModelJSON(obj, &fields); err != nil {
		log.Printf("gift analysis JSON unparsable: %v", err)
		return
	}

	if v, ok := fields["occasion"].(string); ok {
		v = strings.TrimSpace(v)
		if v != "" && !strings.EqualFold(v, "null") {
			analysis.Occasion = &v
		}
	}

	if v, ok := asNumber(fields["budgetMin"]); ok && v >= 0 {
		analysis.BudgetMin = &v
	}
	if v, ok := asNumber(fields["budgetMax"]); ok && v >= 0 {
		analysis.BudgetMax = &v
	}

	if list, ok := fields["features"].([]interface{}); ok {
		for _, item := range list {
			if s, ok := item.(string); ok {
				s = strings.ToLower(strings.TrimSpace(s))
				if s != "" {
					analysis.Features = append(analysis.Features, s)
				}
			}
		}
	}
}

// asNumber accepts JSON numbers and numeric strings, which models emit
// interchangeably ("200" vs 200).
func asNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
