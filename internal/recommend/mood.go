package recommend

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"google.golang.org/genai"

	"github.com/filmvibe/app-discover-api/internal/metrics"
	"github.com/filmvibe/app-discover-api/internal/utils"
)

const moodTimeout = 5 * time.Second

// MoodResolver maps free text to a registered vibe id.
type MoodResolver interface {
	Resolve(ctx context.Context, mood string) (string, error)
}

// GeminiMoodResolver asks a Gemini chat model to pick a vibe for the mood,
// constrained to the registry ids through a response schema.
type GeminiMoodResolver struct {
	registry *Registry
	generate func(ctx context.Context, prompt string, schema *genai.Schema) (string, error)
}

func NewGeminiMoodResolver(ctx context.Context, apiKey, model string, registry *Registry) (*GeminiMoodResolver, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}

	return &GeminiMoodResolver{
		registry: registry,
		generate: func(ctx context.Context, prompt string, schema *genai.Schema) (string, error) {
			content := genai.NewContentFromText(prompt, genai.RoleUser)
			cfg := &genai.GenerateContentConfig{
				ResponseMIMEType: "application/json",
				ResponseSchema:   schema,
			}
			resp, err := client.Models.GenerateContent(ctx, model, []*genai.Content{content}, cfg)
			if err != nil {
				return "", err
			}
			return resp.Text(), nil
		},
	}, nil
}

func (r *GeminiMoodResolver) schema() *genai.Schema {
	vibes := r.registry.List()
	ids := make([]string, len(vibes))
	for i, v := range vibes {
		ids[i] = v.ID
	}
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"vibe": {
				Type:        genai.TypeString,
				Description: "The id of the vibe that best matches the mood",
				Enum:        ids,
			},
		},
		Required: []string{"vibe"},
	}
}

func (r *GeminiMoodResolver) prompt(mood string) string {
	var b strings.Builder
	b.WriteString("Pick the viewing vibe that best matches how the user feels.\n\nVibes:\n")
	for _, v := range r.registry.List() {
		fmt.Fprintf(&b, "- %s: %s\n", v.ID, v.DisplayName)
	}
	fmt.Fprintf(&b, "\nUser mood: %q\n", mood)
	return b.String()
}

// Resolve returns a vibe id present in the registry. ErrMoodUnresolved
// covers empty moods and unusable answers; ErrMoodUpstream covers model failures.
func (r *GeminiMoodResolver) Resolve(ctx context.Context, mood string) (string, error) {
	mood = utils.FoldText(mood)
	if mood == "" {
		return "", ErrMoodUnresolved
	}

	ctx, cancel := context.WithTimeout(ctx, moodTimeout)
	defer cancel()

	text, err := r.generate(ctx, r.prompt(mood), r.schema())
	if err != nil {
		metrics.MoodResolutionsTotal.WithLabelValues("error").Inc()
		return "", fmt.Errorf("%w: %v", ErrMoodUpstream, err)
	}

	var answer struct {
		Vibe string `json:"vibe"`
	}
	if err := json.Unmarshal([]byte(text), &answer); err != nil {
		metrics.MoodResolutionsTotal.WithLabelValues("invalid").Inc()
		return "", fmt.Errorf("%w: unparsable answer", ErrMoodUnresolved)
	}
	v, ok := r.registry.Get(answer.Vibe)
	if !ok {
		metrics.MoodResolutionsTotal.WithLabelValues("invalid").Inc()
		return "", fmt.Errorf("%w: unknown vibe %q", ErrMoodUnresolved, answer.Vibe)
	}

	metrics.MoodResolutionsTotal.WithLabelValues("ok").Inc()
	return v.ID, nil
}
