package usecase

import (
	"html"

	"github.com/valyala/bytebufferpool"
)

// BuildThreatReportHTML assembles the printable dossier document: portrait,
// profile text and the recent story list.
func BuildThreatReportHTML(hero ExternalHero, stories []ExternalStory) []byte {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	buf.WriteString("<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>")
	buf.WriteString(html.EscapeString(hero.Name))
	buf.WriteString(" Threat Report</title></head><body>")

	if hero.ThumbnailURL != "" {
		buf.WriteString("<img src=\"")
		buf.WriteString(html.EscapeString(hero.ThumbnailURL))
		buf.WriteString("\" alt=\"")
		buf.WriteString(html.EscapeString(hero.Name))
		buf.WriteString("\">")
	}

	buf.WriteString("<h2>")
	buf.WriteString(html.EscapeString(hero.Name))
	buf.WriteString("</h2>")

	description := hero.Description
	if description == "" {
		description = "No description available."
	}
	buf.WriteString("<p>")
	buf.WriteString(html.EscapeString(description))
	buf.WriteString("</p>")

	buf.WriteString("<h3>Latest stories</h3><ul>")
	for _, story := range stories {
		buf.WriteString("<li>")
		buf.WriteString(html.EscapeString(story.Title))
		buf.WriteString("</li>")
	}
	buf.WriteString("</ul></body></html>")

	// The pooled buffer is reused after Put, so hand back a copy.
	return append([]byte(nil), buf.B...)
}
