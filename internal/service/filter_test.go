package service

import (
	"reflect"
	"testing"

	"giftme/internal/model"
)

func floatPtr(f float64) *float64 {
	return &f
}

func TestBuildComboFilter(t *testing.T) {
	tests := []struct {
		name     string
		analysis model.GiftAnalysis
		want     model.ComboFilter
	}{
		{
			name: "full analysis",
			analysis: model.GiftAnalysis{
				Occasion:  strPtr("Tết"),
				BudgetMin: floatPtr(100),
				BudgetMax: floatPtr(300),
				Features:  []string{"Công Nghệ"},
			},
			want: model.ComboFilter{
				Occasion: strPtr("tết"),
				PriceMin: floatPtr(100),
				PriceMax: floatPtr(300),
				Features: []string{"công nghệ"},
			},
		},
		{
			name:     "all null means unconstrained",
			analysis: model.GiftAnalysis{Features: []string{}},
			want:     model.ComboFilter{},
		},
		{
			name: "inverted budget range passes through",
			analysis: model.GiftAnalysis{
				BudgetMin: floatPtr(500),
				BudgetMax: floatPtr(200),
			},
			want: model.ComboFilter{
				PriceMin: floatPtr(500),
				PriceMax: floatPtr(200),
			},
		},
		{
			name: "occasion trimmed and lowercased",
			analysis: model.GiftAnalysis{
				Occasion: strPtr("  Sinh Nhật  "),
			},
			want: model.ComboFilter{Occasion: strPtr("sinh nhật")},
		},
		{
			name: "blank occasion dropped",
			analysis: model.GiftAnalysis{
				Occasion: strPtr("   "),
			},
			want: model.ComboFilter{},
		},
		{
			name: "blank features dropped",
			analysis: model.GiftAnalysis{
				Features: []string{"", "  ", "Thời Trang"},
			},
			want: model.ComboFilter{Features: []string{"thời trang"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildComboFilter(tt.analysis)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("BuildComboFilter() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestBuildComboFilterDoesNotAliasInput(t *testing.T) {
	min := 100.0
	analysis := model.GiftAnalysis{BudgetMin: &min}

	filter := BuildComboFilter(analysis)
	min = 999

	if *filter.PriceMin != 100 {
		t.Errorf("PriceMin aliased the analysis value, got %v", *filter.PriceMin)
	}
}
