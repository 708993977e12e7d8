package pipeline

import (
	"testing"
)

func TestNormalizeLineHandling(t *testing.T) {
	pre := &ModelOutputPreprocessor{}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "CRLF to LF",
			input:    "سطر أول\r\nسطر ثان",
			expected: "سطر أول\nسطر ثان",
		},
		{
			name:     "blank lines compressed to two",
			input:    "أ\n\n\n\n\nب",
			expected: "أ\n\nب",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pre.Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStripBidiControls(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "RLM and LRM removed",
			input:    "نص\u200f مع\u200e علامات",
			expected: "نص مع علامات",
		},
		{
			name:     "BOM removed",
			input:    "\ufeffالنص",
			expected: "النص",
		},
		{
			name:     "embedding controls removed",
			input:    "\u202bمضمن\u202c",
			expected: "مضمن",
		},
		{
			name:     "clean text unchanged",
			input:    "نص عادي تماما",
			expected: "نص عادي تماما",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripBidiControls(tt.input)
			if got != tt.expected {
				t.Errorf("stripBidiControls() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStripBoldArtifacts(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "literal strong wrapper removed",
			input:    "هذا <strong>مهم</strong> جدا",
			expected: "هذا مهم جدا",
		},
		{
			name:     "uppercase b tag removed",
			input:    "<B>عنوان</B>",
			expected: "عنوان",
		},
		{
			name:     "markdown emphasis untouched",
			input:    "هذا **مهم** جدا",
			expected: "هذا **مهم** جدا",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := stripBoldArtifacts(tt.input)
			if got != tt.expected {
				t.Errorf("stripBoldArtifacts() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestRepairGluedMarkers(t *testing.T) {
	pre := &ModelOutputPreprocessor{}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "heading glued to sentence",
			input:    "انتهت المقدمة.## الشروط",
			expected: "انتهت المقدمة.\n## الشروط",
		},
		{
			name:     "heading without space gains one",
			input:    "#العنوان",
			expected: "# العنوان",
		},
		{
			name:     "numbered item glued after colon",
			input:    "الخطوات التالية:1. قدم الطلب",
			expected: "الخطوات التالية:\n1. قدم الطلب",
		},
		{
			name:     "arabic ordinal glued after colon",
			input:    "يشمل ذلك:أولاً: الأهلية",
			expected: "يشمل ذلك:\nأولاً: الأهلية",
		},
		{
			name:     "section starter glued after period",
			input:    "انتهى الشرح.ملاحظة: يستثنى القاصر",
			expected: "انتهى الشرح.\nملاحظة: يستثنى القاصر",
		},
		{
			name:     "bullet glued to text",
			input:    "الأسباب:• السبب الأول",
			expected: "الأسباب:\n- السبب الأول",
		},
		{
			name:     "bullet at line start normalized",
			input:    "• بند",
			expected: "- بند",
		},
		{
			name:     "ordinal prefixed by conjunction letter is left alone",
			input:    "وأولاً: البداية",
			expected: "وأولاً: البداية",
		},
		{
			name:     "decimal number is not a list marker",
			input:    "النسبة 3.5 بالمئة",
			expected: "النسبة 3.5 بالمئة",
		},
		{
			name:     "code fence content untouched",
			input:    "```\nالخطوات:1. أمر\n```",
			expected: "```\nالخطوات:1. أمر\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pre.Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	pre := &ModelOutputPreprocessor{}

	inputs := []string{
		"",
		"نص عادي",
		"انتهت المقدمة.## الشروط",
		"الخطوات التالية:1. قدم الطلب\r\nثم:2. انتظر الرد",
		"يشمل ذلك:أولاً: الأهلية•ثم الشروط",
		"#عنوان\n\n\n\nفقرة <strong>قديمة</strong>\u200f",
		"| أ | ب |\n|---|---|\n| 1 | 2 |",
	}

	for _, input := range inputs {
		once := pre.Normalize(input)
		twice := pre.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q:\n once: %q\ntwice: %q", input, once, twice)
		}
	}
}
