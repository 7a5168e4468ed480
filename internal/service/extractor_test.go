package service

import (
	"context"
	"testing"
)

// oracleTurn scripts one Ask call of the fake oracle
type oracleTurn struct {
	text string
	err  error
}

// fakeOracle replays a scripted sequence of replies. Calls beyond the script
// repeat the last turn. Used across the service tests in place of the real
// Gemini client.
type fakeOracle struct {
	script  []oracleTurn
	calls   int
	prompts []string
}

func (f *fakeOracle) Ask(ctx context.Context, prompt string) (string, error) {
	idx := f.calls
	f.calls++
	f.prompts = append(f.prompts, prompt)

	if len(f.script) == 0 {
		return "", ErrOracleUnavailable
	}
	if idx >= len(f.script) {
		idx = len(f.script) - 1
	}
	return f.script[idx].text, f.script[idx].err
}

func strPtr(s string) *string {
	return &s
}

func TestExtractorParsesOracleJSON(t *testing.T) {
	oracle := &fakeOracle{script: []oracleTurn{
		{text: `{"occasion": "valentine", "budgetMin": 200, "budgetMax": 500, "features": ["Công Nghệ", "làm đẹp"]}`},
	}}
	extractor := NewExtractor(oracle)

	analysis := extractor.Analyze(context.Background(), "quà valentine cho bạn gái, 200-500k, thích công nghệ")

	if analysis.Occasion == nil || *analysis.Occasion != "valentine" {
		t.Errorf("Occasion = %v, want valentine", analysis.Occasion)
	}
	if analysis.BudgetMin == nil || *analysis.BudgetMin != 200 {
		t.Errorf("BudgetMin = %v, want 200", analysis.BudgetMin)
	}
	if analysis.BudgetMax == nil || *analysis.BudgetMax != 500 {
		t.Errorf("BudgetMax = %v, want 500", analysis.BudgetMax)
	}
	if len(analysis.Features) != 2 || analysis.Features[0] != "công nghệ" || analysis.Features[1] != "làm đẹp" {
		t.Errorf("Features = %v, want lowercased [công nghệ, làm đẹp]", analysis.Features)
	}
}

func TestExtractorToleratesProseAroundJSON(t *testing.T) {
	oracle := &fakeOracle{script: []oracleTurn{
		{text: "Đây là kết quả phân tích:\n```json\n{\"occasion\": \"noel\", \"budgetMin\": null, \"budgetMax\": 300, \"features\": []}\n```\nHy vọng giúp được bạn!"},
	}}
	extractor := NewExtractor(oracle)

	analysis := extractor.Analyze(context.Background(), "quà giáng sinh dưới 300 nghìn")

	if analysis.Occasion == nil || *analysis.Occasion != "noel" {
		t.Errorf("Occasion = %v, want noel", analysis.Occasion)
	}
	if analysis.BudgetMin != nil {
		t.Errorf("BudgetMin = %v, want nil", *analysis.BudgetMin)
	}
	if analysis.BudgetMax == nil || *analysis.BudgetMax != 300 {
		t.Errorf("BudgetMax = %v, want 300", analysis.BudgetMax)
	}
}

func TestExtractorFallsBackWhenOracleUnavailable(t *testing.T) {
	oracle := &fakeOracle{script: []oracleTurn{{err: ErrOracleUnavailable}}}
	extractor := NewExtractor(oracle)

	analysis := extractor.Analyze(context.Background(), "Tôi muốn mua quà sinh nhật cho mẹ, khoảng 200 đến 500 nghìn")

	if analysis.Occasion == nil || *analysis.Occasion != "sinh nhật" {
		t.Errorf("Occasion = %v, want sinh nhật via keyword fallback", analysis.Occasion)
	}
	// Budgets are only extracted by the oracle path
	if analysis.BudgetMin != nil || analysis.BudgetMax != nil {
		t.Errorf("budgets should stay nil when the oracle is down, got min=%v max=%v", analysis.BudgetMin, analysis.BudgetMax)
	}
	if len(analysis.Features) != 0 {
		t.Errorf("Features = %v, want empty", analysis.Features)
	}
}

func TestExtractorFallsBackOnMalformedOutput(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"no JSON at all", "xin lỗi, tôi không thể phân tích yêu cầu này"},
		{"unbalanced braces", `{"occasion": "valentine"`},
		{"empty reply handled upstream", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oracle := &fakeOracle{script: []oracleTurn{{text: tt.reply}}}
			extractor := NewExtractor(oracle)

			analysis := extractor.Analyze(context.Background(), "quà tết cho ông bà")

			if analysis.Occasion == nil || *analysis.Occasion != "tết" {
				t.Errorf("Occasion = %v, want tết via keyword fallback", analysis.Occasion)
			}
			if analysis.BudgetMin != nil || analysis.BudgetMax != nil {
				t.Error("budgets must stay nil on malformed oracle output")
			}
		})
	}
}

func TestExtractorDefaultsMistypedFieldsToNull(t *testing.T) {
	oracle := &fakeOracle{script: []oracleTurn{
		{text: `{"occasion": 42, "budgetMin": "hai trăm", "budgetMax": [500], "features": "công nghệ"}`},
	}}
	extractor := NewExtractor(oracle)

	analysis := extractor.Analyze(context.Background(), "món gì đó hay ho")

	if analysis.Occasion != nil {
		t.Errorf("Occasion = %v, want nil for non-string value", *analysis.Occasion)
	}
	if analysis.BudgetMin != nil || analysis.BudgetMax != nil {
		t.Error("mistyped budgets must default to nil")
	}
	if len(analysis.Features) != 0 {
		t.Errorf("Features = %v, want empty for non-array value", analysis.Features)
	}
}

func TestExtractorAcceptsNumericStrings(t *testing.T) {
	oracle := &fakeOracle{script: []oracleTurn{
		{text: `{"occasion": null, "budgetMin": "100", "budgetMax": "300", "features": []}`},
	}}
	extractor := NewExtractor(oracle)

	analysis := extractor.Analyze(context.Background(), "tầm 100 đến 300 nghìn")

	if analysis.BudgetMin == nil || *analysis.BudgetMin != 100 {
		t.Errorf("BudgetMin = %v, want 100", analysis.BudgetMin)
	}
	if analysis.BudgetMax == nil || *analysis.BudgetMax != 300 {
		t.Errorf("BudgetMax = %v, want 300", analysis.BudgetMax)
	}
}

func TestExtractorKeepsOracleOccasionOverFallback(t *testing.T) {
	// Input mentions "sinh nhật" but the oracle already decided "valentine";
	// the fallback must not overwrite it.
	oracle := &fakeOracle{script: []oracleTurn{
		{text: `{"occasion": "valentine", "budgetMin": null, "budgetMax": null, "features": []}`},
	}}
	extractor := NewExtractor(oracle)

	analysis := extractor.Analyze(context.Background(), "quà valentine hay quà sinh nhật đây")

	if analysis.Occasion == nil || *analysis.Occasion != "valentine" {
		t.Errorf("Occasion = %v, want valentine from oracle", analysis.Occasion)
	}
}

func TestExtractorRejectsNegativeBudgets(t *testing.T) {
	oracle := &fakeOracle{script: []oracleTurn{
		{text: `{"occasion": null, "budgetMin": -50, "budgetMax": 200, "features": []}`},
	}}
	extractor := NewExtractor(oracle)

	analysis := extractor.Analyze(context.Background(), "quà gì đó")

	if analysis.BudgetMin != nil {
		t.Errorf("BudgetMin = %v, want nil for negative value", *analysis.BudgetMin)
	}
	if analysis.BudgetMax == nil || *analysis.BudgetMax != 200 {
		t.Errorf("BudgetMax = %v, want 200", analysis.BudgetMax)
	}
}

func TestExtractorWithoutOracle(t *testing.T) {
	extractor := NewExtractor(nil)

	analysis := extractor.Analyze(context.Background(), "quà 20/10 cho cô giáo")

	if analysis.Occasion == nil || *analysis.Occasion != "20/10" {
		t.Errorf("Occasion = %v, want 20/10", analysis.Occasion)
	}
}

func TestExtractorFirstKeywordWins(t *testing.T) {
	extractor := NewExtractor(nil)

	// Both "sinh nhật" and "valentine" appear; the keyword table is checked
	// in order, so "sinh nhật" wins.
	analysis := extractor.Analyze(context.Background(), "valentine hay sinh nhật gì cũng được")

	if analysis.Occasion == nil || *analysis.Occasion != "sinh nhật" {
		t.Errorf("Occasion = %v, want sinh nhật (first keyword in table order)", analysis.Occasion)
	}
}
