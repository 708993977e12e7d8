package pipeline

import (
	"strings"
	"testing"
)

func TestGoldmarkCodeRendererRender(t *testing.T) {
	r := NewGoldmarkCodeRenderer("monokai")

	got, err := r.Render("```go\nfmt.Println(\"hi\")\n```")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if !strings.Contains(got, "<pre") {
		t.Errorf("Render() output has no <pre block: %q", got)
	}
	if !strings.Contains(got, "fmt") {
		t.Errorf("Render() lost the code body: %q", got)
	}
}

func TestGoldmarkCodeRendererEscapesHTML(t *testing.T) {
	r := NewGoldmarkCodeRenderer("monokai")

	got, err := r.Render("```\n<script>alert(1)</script>\n```")
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("code body rendered as live markup: %q", got)
	}
}
