// Package analysis turns raw per-label classifier scores into the tool
// responses: top-K ranking, full tiered spectrum and multi-text comparison.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spacesedan/emotionmcp/internal/emotions"
	"github.com/spacesedan/emotionmcp/internal/models"
)

const (
	DefaultTopK = 5
	compareTopN = 3
)

// Classifier returns one score slice per input text, in input order.
type Classifier interface {
	Classify(ctx context.Context, texts []string) ([][]emotions.Score, error)
}

type Analyzer struct {
	classifier Classifier
	translator *emotions.Translator
}

func NewAnalyzer(classifier Classifier, translator *emotions.Translator) *Analyzer {
	return &Analyzer{classifier: classifier, translator: translator}
}

// ClampTopK bounds k to [1, LabelCount].
func ClampTopK(k int) int {
	if k < 1 {
		return 1
	}
	if k > emotions.LabelCount {
		return emotions.LabelCount
	}
	return k
}

func (a *Analyzer) classifyOne(ctx context.Context, text string) ([]emotions.Score, error) {
	results, err := a.classifier.Classify(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(results) != 1 {
		return nil, fmt.Errorf("classifier returned %d results for 1 text", len(results))
	}
	return results[0], nil
}

func (a *Analyzer) TopEmotions(ctx context.Context, text string, topK int) (*models.TopEmotionsResponse, error) {
	scores, err := a.classifyOne(ctx, text)
	if err != nil {
		return nil, err
	}

	sorted := emotions.SortDescending(scores)
	top := sorted[:min(ClampTopK(topK), len(sorted))]
	if len(top) == 0 {
		return nil, emotions.ErrIncompleteScores
	}

	resp := &models.TopEmotionsResponse{
		Text:                    text,
		TotalEmotions:           len(scores),
		TopEmotions:             make([]models.RankedEmotion, 0, len(top)),
		DominantEmotion:         a.translator.Translate(top[0].Label),
		DominantEmotionOriginal: top[0].Label,
		DominantConfidence:      emotions.FormatPercent(top[0].Probability),
	}
	for _, s := range top {
		resp.TopEmotions = append(resp.TopEmotions, a.ranked(s))
	}

	return resp, nil
}

func (a *Analyzer) Detailed(ctx context.Context, text string) (*models.DetailedResponse, error) {
	scores, err := a.classifyOne(ctx, text)
	if err != nil {
		return nil, err
	}

	sorted := emotions.SortDescending(scores)
	if len(sorted) == 0 {
		return nil, emotions.ErrIncompleteScores
	}

	resp := &models.DetailedResponse{
		Text:                    text,
		DominantEmotion:         a.translator.Translate(sorted[0].Label),
		DominantEmotionOriginal: sorted[0].Label,
		DominantConfidence:      emotions.FormatPercent(sorted[0].Probability),
		AllEmotions:             make([]models.TieredEmotion, 0, len(sorted)),
	}

	for _, s := range sorted {
		tier := emotions.Classify(s.Probability)
		switch tier {
		case emotions.TierHigh:
			resp.Summary.HighConfidence++
		case emotions.TierMedium:
			resp.Summary.MediumConfidence++
		default:
			resp.Summary.LowConfidence++
		}
		resp.AllEmotions = append(resp.AllEmotions, models.TieredEmotion{
			RankedEmotion: a.ranked(s),
			Tier:          string(tier),
		})
	}

	return resp, nil
}

// Compare classifies all texts in one call and reports each in input order,
// numbered from 1.
func (a *Analyzer) Compare(ctx context.Context, texts []string) (*models.ComparisonResponse, error) {
	resp := &models.ComparisonResponse{
		TotalTexts: len(texts),
		Analyses:   make([]models.TextComparison, 0, len(texts)),
	}
	if len(texts) == 0 {
		return resp, nil
	}

	results, err := a.classifier.Classify(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(results) != len(texts) {
		return nil, fmt.Errorf("classifier returned %d results for %d texts", len(results), len(texts))
	}

	for i, scores := range results {
		sorted := emotions.SortDescending(scores)
		if len(sorted) == 0 {
			return nil, emotions.ErrIncompleteScores
		}
		top := sorted[:min(compareTopN, len(sorted))]

		entry := models.TextComparison{
			TextNumber:              i + 1,
			Text:                    texts[i],
			DominantEmotion:         a.translator.Translate(top[0].Label),
			DominantEmotionOriginal: top[0].Label,
			Confidence:              emotions.FormatPercent(top[0].Probability),
			Top3Emotions:            make([]models.ComparedEmotion, 0, len(top)),
		}
		for _, s := range top {
			entry.Top3Emotions = append(entry.Top3Emotions, models.ComparedEmotion{
				Emotion:         a.translator.Translate(s.Label),
				EmotionOriginal: s.Label,
				Probability:     emotions.FormatPercent(s.Probability),
			})
		}
		resp.Analyses = append(resp.Analyses, entry)
	}

	return resp, nil
}

func (a *Analyzer) ranked(s emotions.Score) models.RankedEmotion {
	return models.RankedEmotion{
		Emotion:         a.translator.Translate(s.Label),
		EmotionOriginal: s.Label,
		Probability:     emotions.Percent(s.Probability),
		Percentage:      emotions.FormatPercent(s.Probability),
	}
}

// RenderJSON encodes v with two-space indentation and without escaping
// HTML or non-ASCII characters.
func RenderJSON(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("failed to encode response: %w", err)
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}
