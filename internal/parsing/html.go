package parsing

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// blockElements get a separating space so adjacent paragraphs do not run together.
const blockElements = "p, div, li, br, h1, h2, h3, h4, h5, h6, tr, ul, ol"

// HTMLToText converts an HTML fragment (as found in job board feeds) to plain text
// with collapsed whitespace. Input without markup is only whitespace-collapsed.
func HTMLToText(fragment string) string {
	if !strings.Contains(fragment, "<") {
		return CollapseWhitespace(fragment)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return CollapseWhitespace(fragment)
	}

	doc.Find("script, style").Remove()
	doc.Find(blockElements).Each(func(_ int, s *goquery.Selection) {
		s.AppendHtml(" ")
	})

	return CollapseWhitespace(doc.Text())
}
