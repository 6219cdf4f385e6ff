package jobs

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PlainText renders a possibly HTML job description as collapsed plain text.
func PlainText(description string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(description))
	if err != nil {
		return strings.Join(strings.Fields(description), " ")
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}
