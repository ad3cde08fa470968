package view

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/mysite/internal/db"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// PreviewWords 是列表页摘要保留的单词数。
const PreviewWords = 30

var (
	//go:embed templates/*.html
	templateFS embed.FS

	//go:embed static
	staticFS embed.FS

	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// Templates parses the embedded page templates. Post dates and URLs are
// rendered in loc.
func Templates(loc *time.Location) (*template.Template, error) {
	return template.New("").Funcs(FuncMap(loc)).ParseFS(templateFS, "templates/*.html")
}

// Static serves the embedded stylesheet directory.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

// FuncMap returns the helpers available to every template.
func FuncMap(loc *time.Location) template.FuncMap {
	if loc == nil {
		loc = time.UTC
	}
	return template.FuncMap{
		"markdown": RenderMarkdown,
		"preview": func(body string) (template.HTML, error) {
			return RenderMarkdown(TruncateWords(body, PreviewWords))
		},
		"linebreaks": Linebreaks,
		"postURL": func(post any) string {
			switch p := post.(type) {
			case *db.Post:
				return p.Path(loc)
			case db.Post:
				return p.Path(loc)
			default:
				return ""
			}
		},
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format("Jan. 2, 2006")
		},
		"datetime": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.In(loc).Format("Jan. 2, 2006, 15:04")
		},
		"pluralize": func(n int) string {
			if n == 1 {
				return ""
			}
			return "s"
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
	}
}

// RenderMarkdown converts markdown to sanitized HTML.
func RenderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	safe := sanitizer.SanitizeBytes(buf.Bytes())
	return template.HTML(safe), nil
}

// TruncateWords 保留前 n 个以空白分隔的单词，被截断时追加省略号。
func TruncateWords(s string, n int) string {
	words := strings.Fields(s)
	if n <= 0 {
		return ""
	}
	if len(words) <= n {
		return strings.Join(words, " ")
	}
	return strings.Join(words[:n], " ") + " …"
}

// Linebreaks escapes plain text and keeps its line breaks.
func Linebreaks(s string) template.HTML {
	s = strings.ReplaceAll(strings.TrimSpace(s), "\r\n", "\n")
	if s == "" {
		return ""
	}

	var b strings.Builder
	for i, para := range strings.Split(s, "\n\n") {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("<p>")
		b.WriteString(strings.ReplaceAll(template.HTMLEscapeString(para), "\n", "<br>"))
		b.WriteString("</p>")
	}
	return template.HTML(b.String())
}
