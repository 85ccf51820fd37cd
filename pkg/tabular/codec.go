package tabular

import (
	"strings"
)

// CleanGeneratedText strips Markdown code-fence wrappers the model tends to
// put around CSV output, plus surrounding whitespace. Idempotent.
func CleanGeneratedText(text string) string {
	cleaned := text
	for _, fence := range []string{"```csv\n", "```csv", "```json\n", "```json", "```\n", "```"} {
		cleaned = strings.ReplaceAll(cleaned, fence, "")
	}
	return strings.TrimSpace(cleaned)
}

// ParseRow splits one CSV line into cells with a character-by-character
// scan. Double-quote-delimited fields may contain commas; a doubled quote
// inside a quoted field is an escaped literal quote. Unquoted cells are
// trimmed. An empty line produces one empty cell.
func ParseRow(line string) []string {
	var cells []string
	var current strings.Builder
	inQuotes := false
	quoted := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		ch := runes[i]
		switch {
		case ch == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
			} else {
				inQuotes = !inQuotes
				quoted = true
			}
		case ch == ',' && !inQuotes:
			cells = append(cells, finishCell(current.String(), quoted))
			current.Reset()
			quoted = false
		default:
			current.WriteRune(ch)
		}
	}
	cells = append(cells, finishCell(current.String(), quoted))

	return cells
}

func finishCell(raw string, quoted bool) string {
	if quoted {
		return raw
	}
	return strings.TrimSpace(raw)
}

// ParseRows parses cleaned CSV text into rows for preview rendering. The
// cleaned raw text stays authoritative for download; a parse quirk here
// must never corrupt the downloadable artifact.
func ParseRows(text string) [][]string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var rows [][]string
	for _, line := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		rows = append(rows, ParseRow(line))
	}
	return rows
}
