package content

import (
	"strings"
	"testing"
)

func TestRenderBodyAndTOC(t *testing.T) {
	p := &Post{Slug: "doc", Body: "Intro.\n\n## Install\n\nText.\n\n### From *source*\n\nMore.\n\n##### Too deep\n\n## Usage\n"}
	if err := NewRenderer().Render(p); err != nil {
		t.Fatalf("Render: %v", err)
	}

	if len(p.TOC) != 3 {
		t.Fatalf("TOC = %+v, want 3 entries", p.TOC)
	}
	if p.TOC[0].Text != "Install" || p.TOC[0].Level != 2 || p.TOC[0].ID != "install" {
		t.Errorf("TOC[0] = %+v", p.TOC[0])
	}
	if p.TOC[1].Text != "From source" || p.TOC[1].Level != 3 {
		t.Errorf("TOC[1] = %+v", p.TOC[1])
	}
	if p.TOC[2].Text != "Usage" {
		t.Errorf("TOC[2] = %+v", p.TOC[2])
	}
	if !strings.Contains(p.HTML, `id="install"`) {
		t.Errorf("HTML should keep heading ids: %s", p.HTML)
	}
}

func TestRenderSanitizes(t *testing.T) {
	p := &Post{Slug: "x", Body: "Hello <script>alert(1)</script> <a href=\"javascript:alert(1)\">x</a>\n"}
	if err := NewRenderer().Render(p); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if strings.Contains(p.HTML, "<script>") {
		t.Error("script tags must be stripped")
	}
	if strings.Contains(p.HTML, "javascript:") {
		t.Error("javascript: links must be stripped")
	}
}

func TestRenderNoHeadings(t *testing.T) {
	p := &Post{Slug: "x", Body: "just text"}
	if err := NewRenderer().Render(p); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if len(p.TOC) != 0 {
		t.Errorf("TOC = %+v, want empty", p.TOC)
	}
}
