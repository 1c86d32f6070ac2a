// Package sentiment scores overall polarity with VADER, independent of the
// emotion model.
package sentiment

import (
	"regexp"
	"strings"

	"github.com/jonreiter/govader"
	"github.com/russross/blackfriday/v2"
)

const polarityThreshold = 0.20

var (
	analyzer = govader.NewSentimentIntensityAnalyzer()

	linkPattern = regexp.MustCompile(`\[(.*?)\]\((https?:\/\/[^\s\)]+)\)`)
	urlPattern  = regexp.MustCompile(`https?://\S+|www\.\S+`)
	tagPattern  = regexp.MustCompile(`<[^>]*>`)
)

type Polarity struct {
	Compound float64
	Positive float64
	Neutral  float64
	Negative float64
	Label    string
}

func RemoveLinks(input string) string {
	input = linkPattern.ReplaceAllString(input, "$1") // keep the link text
	return urlPattern.ReplaceAllString(input, "")
}

// ConvertMarkdownToText renders markdown and drops the resulting markup.
func ConvertMarkdownToText(input string) string {
	input = RemoveLinks(input)
	output := blackfriday.Run([]byte(input), blackfriday.WithNoExtensions())
	plain := tagPattern.ReplaceAllString(string(output), " ")
	return strings.Join(strings.Fields(plain), " ")
}

func Label(compound float64) string {
	switch {
	case compound >= polarityThreshold:
		return "positive"
	case compound <= -polarityThreshold:
		return "negative"
	default:
		return "neutral"
	}
}

func AnalyzeWithVADER(text string) Polarity {
	s := analyzer.PolarityScores(ConvertMarkdownToText(text))

	return Polarity{
		Compound: s.Compound,
		Positive: s.Positive,
		Neutral:  s.Neutral,
		Negative: s.Negative,
		Label:    Label(s.Compound),
	}
}
