package docs

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var collapseWhitespace = regexp.MustCompile(`[ \t]+`)
var collapseBlankLines = regexp.MustCompile(`\n{3,}`)

// HTMLToText strips markup from an uploaded HTML document and returns its
// visible text. Scripts, styles and hidden noise are removed; block structure
// is preserved as line breaks so tables stay roughly row-per-line for the
// model.
func HTMLToText(htmlContent string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find("script, style, noscript, iframe, svg").Remove()

	var sb strings.Builder
	doc.Find("body").Each(func(i int, body *goquery.Selection) {
		appendBlockText(&sb, body)
	})
	if sb.Len() == 0 {
		// Fragment without a body tag
		appendBlockText(&sb, doc.Selection)
	}

	text := collapseWhitespace.ReplaceAllString(sb.String(), " ")
	text = collapseBlankLines.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text), nil
}

// appendBlockText walks the selection emitting text with newlines at block
// boundaries and cell separators inside table rows.
func appendBlockText(sb *strings.Builder, sel *goquery.Selection) {
	sel.Children().Each(func(i int, child *goquery.Selection) {
		tag := goquery.NodeName(child)
		switch tag {
		case "table":
			child.Find("tr").Each(func(_ int, row *goquery.Selection) {
				var cells []string
				row.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
					cells = append(cells, strings.TrimSpace(cell.Text()))
				})
				sb.WriteString(strings.Join(cells, " | "))
				sb.WriteString("\n")
			})
		case "p", "div", "h1", "h2", "h3", "h4", "h5", "h6", "li", "tr", "br", "section", "article":
			if child.Children().Length() > 0 && tag != "p" && tag != "li" {
				appendBlockText(sb, child)
			} else {
				sb.WriteString(strings.TrimSpace(child.Text()))
			}
			sb.WriteString("\n")
		default:
			sb.WriteString(strings.TrimSpace(child.Text()))
			sb.WriteString(" ")
		}
	})
}
