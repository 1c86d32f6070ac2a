package models

type RankedEmotion struct {
	Emotion         string  `json:"emotion"`
	EmotionOriginal string  `json:"emotion_original"`
	Probability     float64 `json:"probability"`
	Percentage      string  `json:"percentage"`
}

type TieredEmotion struct {
	RankedEmotion
	Tier string `json:"tier"`
}

type TopEmotionsResponse struct {
	Text                    string          `json:"text"`
	TotalEmotions           int             `json:"total_emotions"`
	TopEmotions             []RankedEmotion `json:"top_emotions"`
	DominantEmotion         string          `json:"dominant_emotion"`
	DominantEmotionOriginal string          `json:"dominant_emotion_original"`
	DominantConfidence      string          `json:"dominant_confidence"`
}

type TierSummary struct {
	HighConfidence   int `json:"high_confidence"`
	MediumConfidence int `json:"medium_confidence"`
	LowConfidence    int `json:"low_confidence"`
}

type DetailedResponse struct {
	Text                    string          `json:"text"`
	DominantEmotion         string          `json:"dominant_emotion"`
	DominantEmotionOriginal string          `json:"dominant_emotion_original"`
	DominantConfidence      string          `json:"dominant_confidence"`
	Summary                 TierSummary     `json:"summary"`
	AllEmotions             []TieredEmotion `json:"all_emotions"`
}

// ComparedEmotion carries the probability as a formatted percentage only.
type ComparedEmotion struct {
	Emotion         string `json:"emotion"`
	EmotionOriginal string `json:"emotion_original"`
	Probability     string `json:"probability"`
}

type TextComparison struct {
	TextNumber              int               `json:"text_number"`
	Text                    string            `json:"text"`
	DominantEmotion         string            `json:"dominant_emotion"`
	DominantEmotionOriginal string            `json:"dominant_emotion_original"`
	Confidence              string            `json:"confidence"`
	Top3Emotions            []ComparedEmotion `json:"top_3_emotions"`
}

type ComparisonResponse struct {
	TotalTexts int              `json:"total_texts"`
	Analyses   []TextComparison `json:"analyses"`
}

type PolarityResponse struct {
	Text     string  `json:"text"`
	Compound float64 `json:"compound"`
	Positive float64 `json:"positive"`
	Neutral  float64 `json:"neutral"`
	Negative float64 `json:"negative"`
	Label    string  `json:"label"`
}
