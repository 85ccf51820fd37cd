package datagen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-usecase-explorer-be/pkg/apperror"
	"ai-usecase-explorer-be/pkg/llm"
	"ai-usecase-explorer-be/pkg/llm/token"
	"ai-usecase-explorer-be/pkg/tabular"
)

// DefaultSystemPrompt is used when the caller does not override it.
const DefaultSystemPrompt = `You are a synthetic data generator. You produce realistic, internally consistent tabular data as plain CSV. Quote fields containing commas with double quotes. Return only CSV text, no explanations and no Markdown fences.`

// A hint is "specific" when it enumerates literal values (multiple lines,
// or a single line containing a comma) and "descriptive" when it is one
// short phrase stating a requirement the generator must satisfy.
func hintIsSpecific(hint string) bool {
	trimmed := strings.TrimSpace(hint)
	if strings.Contains(trimmed, "\n") {
		return true
	}
	return strings.Contains(trimmed, ",")
}

// BuildPrompt turns the row/column hints into the generation request. A
// specific hint is used verbatim as headers; a descriptive one asks the
// model to invent headers meeting the requirement.
func BuildPrompt(rowHint, colHint string) string {
	var b strings.Builder

	b.WriteString("Generate a synthetic data table as CSV.\n\n")

	if hintIsSpecific(colHint) {
		fmt.Fprintf(&b, "Use these exact column headers, in order:\n%s\n\n", strings.TrimSpace(colHint))
	} else {
		fmt.Fprintf(&b, "Invent appropriate column headers meeting this requirement: %s\n\n", strings.TrimSpace(colHint))
	}

	if hintIsSpecific(rowHint) {
		fmt.Fprintf(&b, "Generate one data row for each of these exact row identifiers, in order:\n%s\n\n", strings.TrimSpace(rowHint))
	} else {
		fmt.Fprintf(&b, "Invent data rows meeting this requirement: %s\n\n", strings.TrimSpace(rowHint))
	}

	b.WriteString("Return the header row first, followed by the data rows. Output CSV only.")
	return b.String()
}

// Pipeline produces a CSV dataset from user hints via the completion
// backend and cleans the result for preview and download.
type Pipeline struct {
	provider llm.Provider
	tokens   token.Source
}

func NewPipeline(provider llm.Provider, tokens token.Source) *Pipeline {
	return &Pipeline{provider: provider, tokens: tokens}
}

// Generate validates the inputs and auth token before any network call,
// then delegates to the completion backend and cleans the returned text.
// The cleaned raw text is authoritative for download.
func (p *Pipeline) Generate(ctx context.Context, systemPrompt, rowHint, colHint string) (string, error) {
	if strings.TrimSpace(rowHint) == "" {
		return "", apperror.NewValidation("row input must not be empty")
	}
	if strings.TrimSpace(colHint) == "" {
		return "", apperror.NewValidation("column input must not be empty")
	}
	if _, err := p.tokens.Token(ctx); err != nil {
		return "", apperror.NewValidation("no auth token available: %v", err)
	}

	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}

	response, err := llm.Complete(ctx, p.provider, systemPrompt, BuildPrompt(rowHint, colHint))
	if err != nil {
		return "", err
	}

	return tabular.CleanGeneratedText(response), nil
}

// Preview parses the cleaned text into rows for table rendering only.
func (p *Pipeline) Preview(rawText string) [][]string {
	return tabular.ParseRows(rawText)
}

// DownloadFilename templates the CSV attachment name with an ISO-like
// timestamp, colons replaced with hyphens.
func DownloadFilename(now time.Time) string {
	ts := strings.ReplaceAll(now.UTC().Format(time.RFC3339), ":", "-")
	return fmt.Sprintf("synthetic-data-%s.csv", ts)
}
