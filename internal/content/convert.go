// Package content holds the pure conversion functions between a BlockDocument
// and its derived views: plain text, HTML and key points. All functions are
// total: a malformed block renders nothing instead of raising an error.
package content

import (
	"fmt"
	"html"
	"strings"

	"github.com/coffeescripttech-maker/biscas-learning-module-sub006/internal/models"
	"github.com/google/uuid"
)

// maxConvertBlocks bounds iteration over untrusted documents. Anything past
// the bound is ignored.
const maxConvertBlocks = 10000

// ToPlainText renders the document as text, one line per block in document
// order. List items become "• item" lines, table rows become "|"-joined
// lines, delimiters render nothing. Empty documents yield "".
func ToPlainText(doc models.BlockDocument) string {
	var lines []string
	for _, block := range bounded(doc.Blocks) {
		switch data := block.Data.(type) {
		case models.ParagraphData:
			lines = append(lines, data.Text)
		case models.HeaderData:
			lines = append(lines, data.Text)
		case models.ListData:
			for _, item := range data.Items {
				lines = append(lines, "• "+item)
			}
		case models.QuoteData:
			lines = append(lines, data.Text)
		case models.TableData:
			if len(data.Headers) > 0 {
				lines = append(lines, strings.Join(data.Headers, " | "))
			}
			for _, row := range data.Rows {
				lines = append(lines, strings.Join(row, " | "))
			}
		case models.CodeData:
			lines = append(lines, data.Code)
		case models.ImageData:
			lines = append(lines, data.Caption)
		}
	}
	return strings.Join(lines, "\n")
}

// ToHTML renders the document as semantic HTML. All user-supplied text is
// escaped; this holds even for attribute values on image blocks.
func ToHTML(doc models.BlockDocument) string {
	var parts []string
	for _, block := range bounded(doc.Blocks) {
		switch data := block.Data.(type) {
		case models.ParagraphData:
			parts = append(parts, "<p>"+html.EscapeString(data.Text)+"</p>")
		case models.HeaderData:
			level := clampLevel(data.Level)
			parts = append(parts, fmt.Sprintf("<h%d>%s</h%d>", level, html.EscapeString(data.Text), level))
		case models.ListData:
			parts = append(parts, listHTML(data))
		case models.QuoteData:
			parts = append(parts, "<blockquote>"+html.EscapeString(data.Text)+"</blockquote>")
		case models.TableData:
			parts = append(parts, tableHTML(data))
		case models.CodeData:
			parts = append(parts, "<pre><code>"+html.EscapeString(data.Code)+"</code></pre>")
		case models.ImageData:
			src := data.URL
			if src == "" {
				src = data.ObjectKey
			}
			parts = append(parts, fmt.Sprintf(`<img src="%s" alt="%s">`, html.EscapeString(src), html.EscapeString(data.Caption)))
		case models.DelimiterData:
			parts = append(parts, "<hr>")
		}
	}
	return strings.Join(parts, "\n")
}

// FromPlainText seeds a document from text: one paragraph block per non-empty
// line, blank lines dropped. The conversion is lossy and one-directional:
// ToPlainText(FromPlainText(s)) does not restore blank-line structure.
func FromPlainText(text string) models.BlockDocument {
	var blocks []models.ContentBlock
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		blocks = append(blocks, models.ContentBlock{
			ID:   uuid.NewString(),
			Type: models.BlockParagraph,
			Data: models.ParagraphData{Text: line},
		})
	}
	return models.BlockDocument{Blocks: blocks}
}

// ExtractKeyPoints pulls header texts and individual list items into a flat
// list in document order. Paragraphs, quotes and tables are skipped.
func ExtractKeyPoints(doc models.BlockDocument) []string {
	points := []string{}
	for _, block := range bounded(doc.Blocks) {
		switch data := block.Data.(type) {
		case models.HeaderData:
			points = append(points, data.Text)
		case models.ListData:
			points = append(points, data.Items...)
		}
	}
	return points
}

func bounded(blocks []models.ContentBlock) []models.ContentBlock {
	if len(blocks) > maxConvertBlocks {
		return blocks[:maxConvertBlocks]
	}
	return blocks
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}

func listHTML(data models.ListData) string {
	tag := "ul"
	if data.Style == models.ListOrdered {
		tag = "ol"
	}
	var b strings.Builder
	b.WriteString("<" + tag + ">")
	for _, item := range data.Items {
		b.WriteString("<li>" + html.EscapeString(item) + "</li>")
	}
	b.WriteString("</" + tag + ">")
	return b.String()
}

func tableHTML(data models.TableData) string {
	var b strings.Builder
	b.WriteString("<table>")
	if data.Caption != "" {
		b.WriteString("<caption>" + html.EscapeString(data.Caption) + "</caption>")
	}
	width := len(data.Headers)
	if width > 0 {
		b.WriteString("<thead><tr>")
		for _, h := range data.Headers {
			b.WriteString("<th>" + html.EscapeString(h) + "</th>")
		}
		b.WriteString("</tr></thead>")
	}
	b.WriteString("<tbody>")
	for _, row := range data.Rows {
		b.WriteString("<tr>")
		for i := 0; i < len(row) || i < width; i++ {
			// rows are padded or truncated to the header width
			if width > 0 && i >= width {
				break
			}
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			b.WriteString("<td>" + html.EscapeString(cell) + "</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}
