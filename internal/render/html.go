package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

var page = template.Must(template.New("page.html").
	Funcs(template.FuncMap{
		"display": RenderHTML,
		"panel":   RenderPanel,
	}).
	ParseFS(templateFS, "templates/page.html"))

// Page writes the three-tab advisor page for data.
func Page(w io.Writer, data any) error {
	return page.Execute(w, data)
}

// RenderHTML is the single dispatcher from display content to markup.
func RenderHTML(d Display) template.HTML {
	var b strings.Builder
	switch d.Kind {
	case KindText:
		b.WriteString(`<div class="result-text">`)
		b.WriteString(template.HTMLEscapeString(d.Text))
		b.WriteString(`</div>`)
	case KindList:
		if len(d.Items) == 0 {
			b.WriteString(`<div class="result-empty">No items to display.</div>`)
			break
		}
		b.WriteString(`<ul class="result-list">`)
		for _, item := range d.Items {
			b.WriteString(`<li>`)
			b.WriteString(renderItem(item))
			b.WriteString(`</li>`)
		}
		b.WriteString(`</ul>`)
	case KindProgress:
		fmt.Fprintf(&b, `<div class="result-progress"><progress max="100" value="%d"></progress><p>%d%%</p></div>`, d.Progress, d.Progress)
	}
	return template.HTML(b.String())
}

func renderItem(item Item) string {
	name := template.HTMLEscapeString(item.Text)
	if item.URL == "" {
		return name
	}
	return fmt.Sprintf(`<a href="%s" target="_blank" rel="noopener noreferrer">%s</a>`,
		template.HTMLEscapeString(item.URL), name)
}

// RenderPanel renders a titled panel in whichever state it is in.
func RenderPanel(p Panel) template.HTML {
	title := template.HTMLEscapeString(p.Title)
	var b strings.Builder
	b.WriteString(`<section class="panel">`)
	switch p.State {
	case StateLoading:
		fmt.Fprintf(&b, `<div class="panel-loading">Loading %s...</div>`, title)
	case StateError:
		fmt.Fprintf(&b, `<div class="panel-error" role="alert"><strong>Error fetching %s</strong><p>%s</p></div>`,
			title, template.HTMLEscapeString(p.Error))
	case StateEmpty:
		fmt.Fprintf(&b, `<div class="panel-empty">No %s data available yet.</div>`, strings.ToLower(title))
	default:
		fmt.Fprintf(&b, `<h3>%s</h3>`, title)
		b.WriteString(string(RenderHTML(p.Display)))
	}
	b.WriteString(`</section>`)
	return template.HTML(b.String())
}
