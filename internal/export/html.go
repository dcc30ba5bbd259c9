package export

import (
	"strings"

	"github.com/conn-castle/gradebook/internal/messages"
	"github.com/conn-castle/gradebook/internal/roster"
)

var htmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// EscapeHTML escapes &, < and > so untrusted names can be embedded in markup.
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// HTML renders a read-only table page. Empty grades show the placeholder glyph.
func HTML(students []roster.Student, columns int) ([]byte, error) {
	if len(students) == 0 {
		return nil, ErrEmptyRoster
	}
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>")
	b.WriteString(messages.ExportHTMLTitle)
	b.WriteString("</title></head>\n<body>\n<table>\n<thead><tr>")
	for _, h := range Header(columns) {
		b.WriteString("<th>" + EscapeHTML(h) + "</th>")
	}
	b.WriteString("</tr></thead>\n<tbody>\n")
	for _, s := range students {
		b.WriteString("<tr><td>" + EscapeHTML(s.Surname) + "</td><td>" + EscapeHTML(s.Name) + "</td>")
		for _, g := range s.Grades {
			b.WriteString("<td>" + EscapeHTML(g.Label()) + "</td>")
		}
		b.WriteString("</tr>\n")
	}
	b.WriteString("</tbody>\n</table>\n</body>\n</html>\n")
	return []byte(b.String()), nil
}
