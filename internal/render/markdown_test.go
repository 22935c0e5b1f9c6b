package render

import (
	"strings"
	"testing"
)

func TestRenderRecipeMarkdown(t *testing.T) {
	r := NewMarkdown()
	src := "## Amazing Blueberry Muffins\n\n### Ingredients (12 muffins)\n\n* 2 cups flour\n* 1 cup blueberries\n\n### Instructions\n\n1. Preheat oven to 375F.\n2. Mix and bake.\n"

	html, err := r.Render(src)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "<h2") || !strings.Contains(html, "Amazing Blueberry Muffins") {
		t.Fatalf("expected h2 heading, got %q", html)
	}
	if !strings.Contains(html, "<ul>") || !strings.Contains(html, "<ol>") {
		t.Fatalf("expected lists in output, got %q", html)
	}
}

func TestRenderStripsScripts(t *testing.T) {
	r := NewMarkdown()
	html, err := r.Render("hello <script>alert(1)</script> world")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if strings.Contains(html, "<script") || strings.Contains(html, "alert(1)") {
		t.Fatalf("expected script stripped, got %q", html)
	}
}

func TestRenderPlainText(t *testing.T) {
	r := NewMarkdown()
	html, err := r.Render("Would you like a vegetarian or a meat-based lasagna?")
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(html, "vegetarian or a meat-based lasagna") {
		t.Fatalf("expected text preserved, got %q", html)
	}
}
