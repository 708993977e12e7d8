package pipeline

import (
	"strings"
	"testing"
)

func TestExtractMarkdownTables(t *testing.T) {
	e := &TableExtractor{}

	tests := []struct {
		name         string
		input        string
		wantTable    bool
		wantContains []string
	}{
		{
			name:      "minimal table",
			input:     "a|b\n---|---\n1|2\n3|4",
			wantTable: true,
			wantContains: []string{
				"<th>a</th><th>b</th>",
				"<td>1</td><td>2</td>",
				"<td>3</td><td>4</td>",
				`<table class="comparison-table">`,
			},
		},
		{
			name:      "boundary pipes and padding",
			input:     "| البند | الحكم |\n|---|---|\n| الأول | جائز |\n| الثاني |",
			wantTable: true,
			wantContains: []string{
				"<th>البند</th><th>الحكم</th>",
				"<td>الأول</td><td>جائز</td>",
				"<td>الثاني</td><td>-</td>",
			},
		},
		{
			name:      "table between paragraphs",
			input:     "قبل الجدول\n\nس|ص\n---|---\nق|ك\nل|م\n\nبعد الجدول",
			wantTable: true,
			wantContains: []string{
				"قبل الجدول",
				"بعد الجدول",
				"<td>ق</td><td>ك</td>",
			},
		},
		{
			name:      "separator without data rows is not a table",
			input:     "a|b\n---|---",
			wantTable: false,
		},
		{
			name:      "plain text with one pipe passes through",
			input:     "الخيار الأول | الخيار الثاني",
			wantTable: false,
		},
		{
			name:      "fenced table is left alone",
			input:     "```\na|b\n---|---\n1|2\n```",
			wantTable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.input)
			hasTable := strings.Contains(got, "<table")
			if hasTable != tt.wantTable {
				t.Fatalf("Extract() table presence = %v, want %v\noutput: %q", hasTable, tt.wantTable, got)
			}
			if !tt.wantTable && got != tt.input {
				t.Fatalf("Extract() mutated non-table input:\n got: %q\nwant: %q", got, tt.input)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Extract() output missing %q\noutput: %q", want, got)
				}
			}
		})
	}
}

func TestExtractSingleTableOnly(t *testing.T) {
	e := &TableExtractor{}

	got := e.Extract("a|b\n---|---\n1|2\n3|4")
	if n := strings.Count(got, "<table"); n != 1 {
		t.Errorf("table count = %d, want 1\noutput: %q", n, got)
	}
	if n := strings.Count(got, "<tr>"); n != 3 {
		t.Errorf("row count = %d, want 3 (one header, two data)\noutput: %q", n, got)
	}
}

func TestExtractComparisonBlocks(t *testing.T) {
	e := &TableExtractor{}

	tests := []struct {
		name         string
		input        string
		wantTable    bool
		wantContains []string
	}{
		{
			name: "side by side rows with default headers",
			input: "مقارنة بين النظامين\n" +
				"السرعة: عالية | السرعة: منخفضة\n" +
				"التكلفة: مرتفعة | التكلفة: قليلة",
			wantTable: true,
			wantContains: []string{
				"<caption>جدول مقارنة</caption>",
				"<th>العنصر الأول</th><th>العنصر الثاني</th>",
				"<td>عالية</td><td>منخفضة</td>",
				"<td>مرتفعة</td><td>قليلة</td>",
			},
		},
		{
			name: "explicit header line wins over defaults",
			input: "الفرق بين العقدين\n" +
				"عقد البيع | عقد الإيجار\n" +
				"الأثر: نقل الملكية | الأثر: نقل المنفعة\n" +
				"المدة: فوري | المدة: مؤقت",
			wantTable: true,
			wantContains: []string{
				"<th>عقد البيع</th><th>عقد الإيجار</th>",
				"<td>نقل الملكية</td><td>نقل المنفعة</td>",
			},
		},
		{
			name: "labeled bullets become rows",
			input: "جدول الشروط\n" +
				"- الأهلية: بلوغ سن الرشد\n" +
				"- التراضي: رضا الطرفين",
			wantTable: true,
			wantContains: []string{
				"<td>الأهلية</td><td>بلوغ سن الرشد</td>",
				"<td>التراضي</td><td>رضا الطرفين</td>",
			},
		},
		{
			name: "one sided row keeps sentinel",
			input: "مقارنة الخيارات\n" +
				"الأول: سريع | الثاني: بطيء\n" +
				"الضمان: سنة |",
			wantTable: true,
			wantContains: []string{
				"<td>سريع</td><td>بطيء</td>",
				"<td>سنة</td><td>-</td>",
			},
		},
		{
			name:      "keyword without colon lines passes through",
			input:     "هذه مقارنة بين أمرين\nلكن لا توجد تفاصيل هنا",
			wantTable: false,
		},
		{
			name:      "colon lines without keyword pass through",
			input:     "السرعة: عالية | السرعة: منخفضة\nالتكلفة: مرتفعة | التكلفة: قليلة",
			wantTable: false,
		},
		{
			name:      "single matching line is not enough",
			input:     "مقارنة سريعة\nالسرعة: عالية | السرعة: منخفضة",
			wantTable: false,
		},
		{
			name:      "numbered list alone never becomes a table",
			input:     "جدول الإجراءات\n1. قدم الطلب\n2. انتظر الرد\n3. استلم القرار",
			wantTable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := e.Extract(tt.input)
			hasTable := strings.Contains(got, "<table")
			if hasTable != tt.wantTable {
				t.Fatalf("Extract() table presence = %v, want %v\noutput: %q", hasTable, tt.wantTable, got)
			}
			if !tt.wantTable && got != tt.input {
				t.Fatalf("Extract() mutated input it should pass through:\n got: %q\nwant: %q", got, tt.input)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("Extract() output missing %q\noutput: %q", want, got)
				}
			}
		})
	}
}

func TestExtractComparisonPreservesSurroundingText(t *testing.T) {
	e := &TableExtractor{}

	input := "مقارنة بين الحالتين\n" +
		"الحكم: جائز | الحكم: باطل\n" +
		"السبب: التراضي | السبب: الإكراه\n" +
		"وهذا خلاصة الفرق بينهما."
	got := e.Extract(input)

	for _, want := range []string{"مقارنة بين الحالتين", "وهذا خلاصة الفرق بينهما."} {
		if !strings.Contains(got, want) {
			t.Errorf("surrounding text %q dropped\noutput: %q", want, got)
		}
	}
}

func TestTableDataFinalize(t *testing.T) {
	data := TableData{
		Headers: []string{"أ", "ب"},
		Rows: [][]string{
			{"1"},
			{"1", "2", "3"},
		},
	}
	data.Finalize()

	if len(data.Headers) != 3 {
		t.Fatalf("header width = %d, want 3", len(data.Headers))
	}
	if data.Headers[2] != "-" {
		t.Errorf("padded header = %q, want %q", data.Headers[2], "-")
	}
	for i, row := range data.Rows {
		if len(row) != 3 {
			t.Errorf("row %d width = %d, want 3", i, len(row))
		}
	}
	if data.Rows[0][1] != "-" || data.Rows[0][2] != "-" {
		t.Errorf("row padding = %v, want sentinel cells", data.Rows[0])
	}
}

func TestRenderTableEscapesCells(t *testing.T) {
	data := TableData{
		Caption: "جدول",
		Headers: []string{"<th>"},
		Rows:    [][]string{{"<script>alert(1)</script>"}},
	}
	got := renderTable(data)

	if strings.Contains(got, "<script") {
		t.Errorf("cell content not escaped: %q", got)
	}
	if !strings.Contains(got, "&lt;script&gt;") {
		t.Errorf("expected escaped cell content, got %q", got)
	}
}
