package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/marraa99/Intermittent-Fasting-Calculator/internal/model"
)

var (
	ErrNoCredential    = errors.New("label analysis is not configured (set GEMINI_API_KEY)")
	ErrLabelUnreadable = errors.New("could not read nutrition values from the label analysis")
	ErrEmptyImage      = errors.New("label image is empty")
)

// LabelPrompt is sent alongside the label image.
const LabelPrompt = `Extract nutrition per 100g from this label. Return ONLY a JSON object with these keys: calories, protein, carbs, fiber, fat. All values should be numbers. If a value is missing, use 0. Do not use markdown code blocks.`

// LabelAnalyzer turns a nutrition-label image into the model's raw text
// answer. Implementations may block on the network.
type LabelAnalyzer interface {
	AnalyzeLabel(ctx context.Context, image []byte, mimeType, model string) (string, error)
}

// FoodDraft is a food entry being prepared before it is logged.
type FoodDraft struct {
	Name    string
	Grams   float64
	Per100g model.Nutrients
}

func (d FoodDraft) Input() FoodInput {
	return FoodInput{Name: d.Name, Grams: d.Grams, Per100g: d.Per100g}
}

// EstimateLabel asks the analyzer for per-100g values. A nil analyzer means
// no credential is configured.
func EstimateLabel(ctx context.Context, analyzer LabelAnalyzer, image []byte, mimeType, modelName string) (model.Nutrients, error) {
	if analyzer == nil {
		return model.Nutrients{}, ErrNoCredential
	}
	if len(image) == 0 {
		return model.Nutrients{}, ErrEmptyImage
	}
	if strings.TrimSpace(modelName) == "" {
		modelName = model.DefaultLabelModel
	}
	text, err := analyzer.AnalyzeLabel(ctx, image, mimeType, modelName)
	if err != nil {
		return model.Nutrients{}, fmt.Errorf("analyze label: %w", err)
	}
	return ParseLabelEstimate(text)
}

// ApplyLabelEstimate fills the draft's per-100g values from a label image.
// On any failure the draft is returned exactly as it was.
func ApplyLabelEstimate(ctx context.Context, analyzer LabelAnalyzer, draft FoodDraft, image []byte, mimeType, modelName string) (FoodDraft, error) {
	per100g, err := EstimateLabel(ctx, analyzer, image, mimeType, modelName)
	if err != nil {
		return draft, err
	}
	draft.Per100g = per100g
	return draft, nil
}

// ParseLabelEstimate decodes the analyzer's answer. Markdown fences are
// stripped; every field is coerced to a number and anything missing,
// non-numeric, negative, or non-finite becomes 0. Only text that is not a
// JSON object at all is an error.
func ParseLabelEstimate(text string) (model.Nutrients, error) {
	clean := strings.ReplaceAll(text, "```json", "")
	clean = strings.ReplaceAll(clean, "```", "")
	clean = strings.TrimSpace(clean)
	if start, end := strings.Index(clean, "{"), strings.LastIndex(clean, "}"); start >= 0 && end > start {
		clean = clean[start : end+1]
	}

	var raw map[string]any
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return model.Nutrients{}, fmt.Errorf("%w: %v", ErrLabelUnreadable, err)
	}
	return model.Nutrients{
		Calories: coerceNumber(raw["calories"]),
		ProteinG: coerceNumber(raw["protein"]),
		CarbsG:   coerceNumber(raw["carbs"]),
		FiberG:   coerceNumber(raw["fiber"]),
		FatG:     coerceNumber(raw["fat"]),
	}, nil
}

func coerceNumber(v any) float64 {
	var f float64
	switch t := v.(type) {
	case float64:
		f = t
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(t), 64)
		if err != nil {
			return 0
		}
		f = parsed
	case bool:
		if t {
			f = 1
		}
	default:
		return 0
	}
	if !isFinite(f) || f < 0 {
		return 0
	}
	return f
}
