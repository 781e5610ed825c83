package pbexport

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Generator is the narrow contract with the content-generation service.
// Both calls can be slow and can fail; no retries happen here — one
// failure aborts the operation that invoked it.
type Generator interface {
	// Generate returns a structured result for a structured prompt.
	// schema, if non-empty, describes the JSON shape the caller expects;
	// a malformed response fails with ErrGeneration.
	Generate(ctx context.Context, prompt string, schema json.RawMessage) (json.RawMessage, error)

	// GenerateAssetContent produces markdown content for one offer-stack
	// asset, grounded in the business context.
	GenerateAssetContent(ctx context.Context, item OfferStackItem, biz BusinessContext) (string, error)
}

const assetSystemPrompt = `You are a business consultant producing ready-to-use downloadable resources.
Respond with the resource content only, in plain markdown, without any preamble.`

const structuredSystemPrompt = `You produce strictly valid JSON.
Respond with a single JSON document conforming to the provided schema and nothing else.`

// buildAssetPrompt assembles the generation prompt for one asset.
func buildAssetPrompt(item OfferStackItem, biz BusinessContext) string {
	a := item.Asset
	var b strings.Builder
	fmt.Fprintf(&b, "Create a %s named %q.\n\n", a.Type, a.Name)
	fmt.Fprintf(&b, "It solves this problem: %s\n", item.Problem)
	fmt.Fprintf(&b, "It delivers this solution: %s\n\n", item.Solution)
	b.WriteString("Business context:\n")
	fmt.Fprintf(&b, "- Business: %s\n", biz.BusinessName)
	fmt.Fprintf(&b, "- Industry: %s\n", biz.Industry)
	fmt.Fprintf(&b, "- Target customer: %s\n", biz.TargetCustomer)
	if biz.CoreProblem != "" {
		fmt.Fprintf(&b, "- Core problem: %s\n", biz.CoreProblem)
	}
	if biz.RevenueGoal != "" {
		fmt.Fprintf(&b, "- Revenue goal: %s\n", biz.RevenueGoal)
	}
	b.WriteString("\nMake it specific and immediately usable, 400-800 words.")
	return b.String()
}

// OpenAIGenerator implements Generator on the OpenAI chat completions
// API.
type OpenAIGenerator struct {
	client openai.Client
	model  openai.ChatModel
}

// NewOpenAIGenerator creates a generator for the given API key and chat
// model. Extra request options (base URL overrides, etc.) pass through
// to the client.
func NewOpenAIGenerator(apiKey, model string, opts ...option.RequestOption) *OpenAIGenerator {
	reqOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &OpenAIGenerator{
		client: openai.NewClient(reqOpts...),
		model:  openai.ChatModel(model),
	}
}

// complete runs one chat completion and returns the first choice.
func (g *OpenAIGenerator) complete(ctx context.Context, system, user string) (string, error) {
	resp, err := g.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: g.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrGeneration, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrGeneration)
	}
	return resp.Choices[0].Message.Content, nil
}

// GenerateAssetContent produces markdown content for one asset.
func (g *OpenAIGenerator) GenerateAssetContent(ctx context.Context, item OfferStackItem, biz BusinessContext) (string, error) {
	if item.Asset == nil {
		return "", ErrNoAsset
	}
	out, err := g.complete(ctx, assetSystemPrompt, buildAssetPrompt(item, biz))
	if err != nil {
		return "", err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("%w: empty asset content", ErrGeneration)
	}
	return out, nil
}

// Generate returns a validated JSON document for a structured prompt.
// The schema travels inside the prompt; the response is checked for
// JSON validity, tolerating a markdown code fence around it.
func (g *OpenAIGenerator) Generate(ctx context.Context, prompt string, schema json.RawMessage) (json.RawMessage, error) {
	user := prompt
	if len(schema) > 0 {
		user = prompt + "\n\nJSON schema for the response:\n" + string(schema)
	}
	out, err := g.complete(ctx, structuredSystemPrompt, user)
	if err != nil {
		return nil, err
	}
	return parseStructuredResult(out)
}

// parseStructuredResult validates the completion as one JSON document.
func parseStructuredResult(out string) (json.RawMessage, error) {
	s := strings.TrimSpace(out)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	s = strings.TrimSpace(s)
	if !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("%w: response is not valid JSON", ErrGeneration)
	}
	return json.RawMessage(s), nil
}

// Compile-time interface check.
var _ Generator = (*OpenAIGenerator)(nil)
