package utils

import (
	"testing"
)

type analysisPayload struct {
	Occasion  *string  `json:"occasion"`
	BudgetMin *float64 `json:"budgetMin"`
	BudgetMax *float64 `json:"budgetMax"`
	Features  []string `json:"features"`
}

func TestParseModelJSON(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		wantOccasion string
		wantMax      float64
		wantErr      bool
	}{
		{
			name:         "pure JSON",
			input:        `{"occasion": "sinh nhật", "budgetMin": null, "budgetMax": 500, "features": []}`,
			wantOccasion: "sinh nhật",
			wantMax:      500,
		},
		{
			name:         "markdown code block with json tag",
			input:        "```json\n{\"occasion\": \"noel\", \"budgetMin\": null, \"budgetMax\": 300, \"features\": []}\n```",
			wantOccasion: "noel",
			wantMax:      300,
		},
		{
			name:         "markdown code block without tag",
			input:        "```\n{\"occasion\": \"tết\", \"budgetMin\": null, \"budgetMax\": 200, \"features\": []}\n```",
			wantOccasion: "tết",
			wantMax:      200,
		},
		{
			name:         "JSON with surrounding prose",
			input:        "Đây là kết quả:\n{\"occasion\": \"valentine\", \"budgetMin\": null, \"budgetMax\": 400, \"features\": []}\nHy vọng giúp được bạn!",
			wantOccasion: "valentine",
			wantMax:      400,
		},
		{
			name:         "trailing comma",
			input:        `{"occasion": "8/3", "budgetMin": null, "budgetMax": 150, "features": [],}`,
			wantOccasion: "8/3",
			wantMax:      150,
		},
		{
			name:         "unquoted keys",
			input:        `{occasion: "20/10", budgetMin: null, budgetMax: 250, features: []}`,
			wantOccasion: "20/10",
			wantMax:      250,
		},
		{
			name:    "empty input",
			input:   "",
			wantErr: true,
		},
		{
			name:    "no JSON at all",
			input:   "xin lỗi, tôi không thể phân tích yêu cầu này",
			wantErr: true,
		},
		{
			name:    "unbalanced braces",
			input:   `{"occasion": "valentine"`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload analysisPayload
			err := ParseModelJSON(tt.input, &payload)
			if tt.wantErr {
				if err == nil {
					t.Errorf("ParseModelJSON(%q) err = nil, want error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseModelJSON(%q) err = %v", tt.input, err)
			}
			if payload.Occasion == nil || *payload.Occasion != tt.wantOccasion {
				t.Errorf("occasion = %v, want %q", payload.Occasion, tt.wantOccasion)
			}
			if payload.BudgetMax == nil || *payload.BudgetMax != tt.wantMax {
				t.Errorf("budgetMax = %v, want %v", payload.BudgetMax, tt.wantMax)
			}
			if payload.BudgetMin != nil {
				t.Errorf("budgetMin = %v, want nil", *payload.BudgetMin)
			}
		})
	}
}

func TestExtractJSONObject(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "bare object",
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "object inside prose",
			input: `kết quả là {"a": 1} nhé`,
			want:  `{"a": 1}`,
		},
		{
			name:  "nested objects",
			input: `x {"a": {"b": 2}} y`,
			want:  `{"a": {"b": 2}}`,
		},
		{
			name:  "braces inside strings ignored",
			input: `{"a": "has } brace"}`,
			want:  `{"a": "has } brace"}`,
		},
		{
			name:  "escaped quote inside string",
			input: `{"a": "say \"hi\" {"}`,
			want:  `{"a": "say \"hi\" {"}`,
		},
		{
			name:  "no object",
			input: "no braces here",
			want:  "",
		},
		{
			name:  "unbalanced",
			input: `{"a": 1`,
			want:  "",
		},
		{
			name:  "first of two objects",
			input: `{"a": 1} {"b": 2}`,
			want:  `{"a": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractJSONObject(tt.input); got != tt.want {
				t.Errorf("ExtractJSONObject(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestCleanJSON(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trailing comma in object",
			input: `{"a": 1,}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "trailing comma in array",
			input: `{"a": [1, 2,]}`,
			want:  `{"a": [1, 2]}`,
		},
		{
			name:  "bare keys quoted",
			input: `{a: 1, b: 2}`,
			want:  `{"a": 1, "b": 2}`,
		},
		{
			name:  "control characters stripped",
			input: "{\"a\": \"x\x01y\"}",
			want:  `{"a": "xy"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanJSON(tt.input); got != tt.want {
				t.Errorf("cleanJSON(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
