package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mysite/internal/db"
	"github.com/mysite/internal/paginate"
	"gorm.io/gorm"
)

func TestTruncateWords(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		n        int
		expected string
	}{
		{name: "short", input: "one two", n: 3, expected: "one two"},
		{name: "exact", input: "one two three", n: 3, expected: "one two three"},
		{name: "long", input: "one  two\nthree four", n: 2, expected: "one two …"},
		{name: "zero", input: "one", n: 0, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateWords(tt.input, tt.n); got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestRenderMarkdownSanitizes(t *testing.T) {
	out, err := RenderMarkdown("**bold** <script>alert(1)</script>")
	if err != nil {
		t.Fatalf("render markdown: %v", err)
	}
	html := string(out)
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Fatalf("expected bold markup, got %q", html)
	}
	if strings.Contains(html, "<script>") {
		t.Fatalf("expected script to be stripped, got %q", html)
	}
}

func TestLinebreaks(t *testing.T) {
	got := string(Linebreaks("a <b>\nc\n\nd"))
	want := "<p>a &lt;b&gt;<br>c</p>\n\n<p>d</p>"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestTemplatesRenderList(t *testing.T) {
	tmpl, err := Templates(time.UTC)
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}

	posts := []db.Post{{
		Model:   gorm.Model{ID: 1},
		Title:   "Hello",
		Slug:    "hello",
		Body:    "Some *markdown* body",
		Publish: time.Date(2023, 1, 2, 10, 0, 0, 0, time.UTC),
		Tags:    []db.Tag{{Name: "Go", Slug: "go"}},
	}}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "list.html", map[string]any{
		"siteName": "My Blog",
		"posts":    posts,
		"page":     paginate.Resolve(4, 3, "1"),
	})
	if err != nil {
		t.Fatalf("execute list: %v", err)
	}

	body := buf.String()
	for _, want := range []string{
		`href="/articles/2023/01/02/hello/"`,
		`href="/articles/tag/go/"`,
		"<em>markdown</em>",
		"Page 1 of 2.",
		`href="?page=2"`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestTemplatesRenderShareForm(t *testing.T) {
	tmpl, err := Templates(nil)
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}

	var buf bytes.Buffer
	err = tmpl.ExecuteTemplate(&buf, "share.html", map[string]any{
		"siteName":  "My Blog",
		"post":      &db.Post{Title: "Hello"},
		"form":      struct{ Name, Email, To, Comments string }{Name: "Ann"},
		"errors":    map[string]string{"to": "This field is required."},
		"csrfToken": "token-123",
	})
	if err != nil {
		t.Fatalf("execute share: %v", err)
	}

	body := buf.String()
	if !strings.Contains(body, "This field is required.") {
		t.Fatalf("expected field error in output")
	}
	if !strings.Contains(body, `value="token-123"`) {
		t.Fatalf("expected csrf token in output")
	}
	if !strings.Contains(body, `value="Ann"`) {
		t.Fatalf("expected submitted value to be kept")
	}
}
