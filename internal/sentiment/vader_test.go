package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveLinks(t *testing.T) {
	in := "see [the docs](https://example.com/a) or https://example.com/b and www.example.org"
	assert.Equal(t, "see the docs or  and ", RemoveLinks(in))
}

func TestConvertMarkdownToText(t *testing.T) {
	in := "# Title\n\nSome **bold** and _italic_ text with a [link](https://example.com)."
	assert.Equal(t, "Title Some bold and italic text with a link.", ConvertMarkdownToText(in))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "positive", Label(0.2))
	assert.Equal(t, "positive", Label(0.95))
	assert.Equal(t, "neutral", Label(0.19))
	assert.Equal(t, "neutral", Label(-0.19))
	assert.Equal(t, "negative", Label(-0.2))
}

func TestAnalyzeWithVADER(t *testing.T) {
	pos := AnalyzeWithVADER("I love this, it is wonderful and amazing!")
	assert.Equal(t, "positive", pos.Label)
	assert.Greater(t, pos.Compound, 0.2)

	neg := AnalyzeWithVADER("This is terrible, I hate it. Awful experience.")
	assert.Equal(t, "negative", neg.Label)
	assert.Less(t, neg.Compound, -0.2)

	assert.InDelta(t, 1.0, pos.Positive+pos.Neutral+pos.Negative, 0.01)
}
