package valuechain

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"ai-usecase-explorer-be/pkg/apperror"
	"ai-usecase-explorer-be/pkg/llm"
	"ai-usecase-explorer-be/pkg/tabular"
)

const generationSystemPromptTemplate = `You are an expert business analyst. Generate a value chain for the "%s" industry or function.

Return ONLY a JSON object with this exact structure:
{
  "name": "%s",
  "type": "custom",
  "valueChain": ["Step 1", "Step 2", "Step 3", "Step 4", "Step 5", "Step 6"],
  "useCases": {
    "Step 1": ["Use Case 1", "Use Case 2", "Use Case 3", "Use Case 4"],
    "Step 2": ["Use Case 1", "Use Case 2", "Use Case 3", "Use Case 4"]
  }
}

- Generate 4-8 value chain steps that are typical for this industry/function
- For each step, generate 3-6 LLM use cases (3-6 words each)
- Use cases should leverage AI/LLM capabilities like text generation, analysis, automation, etc.
- Return only valid JSON, no explanations`

// Generator builds custom value-chain documents through the completion
// backend.
type Generator struct {
	provider llm.Provider
}

func NewGenerator(provider llm.Provider) *Generator {
	return &Generator{provider: provider}
}

// Generate asks the backend for a document describing the given industry
// or function. A non-conforming result is a GenerationParseError; no
// default document is substituted.
func (g *Generator) Generate(ctx context.Context, industry string) (*Document, error) {
	systemPrompt := fmt.Sprintf(generationSystemPromptTemplate, industry, industry)
	userMessage := fmt.Sprintf("Generate value chain and LLM use cases for: %s", industry)

	response, err := llm.Complete(ctx, g.provider, systemPrompt, userMessage)
	if err != nil {
		return nil, err
	}

	cleaned := tabular.CleanGeneratedText(response)

	var doc Document
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, apperror.NewGenerationParse(cleaned, "value chain response is not valid JSON: %v", err)
	}

	if strings.TrimSpace(doc.Name) == "" || len(doc.Steps) == 0 || doc.UseCases == nil {
		return nil, apperror.NewGenerationParse(cleaned, "value chain response is missing name, valueChain or useCases")
	}

	doc.Kind = KindCustom
	return &doc, nil
}

// Resolver picks a document for a user selection: a catalog hit is
// returned unchanged, anything else is treated as a generation request.
type Resolver struct {
	catalog   *Catalog
	generator *Generator
}

func NewResolver(catalog *Catalog, generator *Generator) *Resolver {
	return &Resolver{catalog: catalog, generator: generator}
}

func (r *Resolver) Resolve(ctx context.Context, selectedKey, customLabel string) (*Document, error) {
	selectedKey = strings.TrimSpace(selectedKey)
	customLabel = strings.TrimSpace(customLabel)

	if selectedKey == "" && customLabel == "" {
		return nil, apperror.NewValidation("select an industry/function or enter a custom one")
	}

	if selectedKey != "" {
		if doc, ok := r.catalog.Get(selectedKey); ok {
			return doc, nil
		}
	}

	industry := customLabel
	if industry == "" {
		industry = selectedKey
	}
	return r.generator.Generate(ctx, industry)
}
