package ai

import (
	"context"
	"fmt"
	"strings"
)

// KeywordExtractor is the offline PreferenceExtractor. It scores categories by
// lexicon hits and hashes the remaining words into the tail of the vector.
type KeywordExtractor struct{}

func NewKeywordExtractor() *KeywordExtractor { return &KeywordExtractor{} }

func (KeywordExtractor) Dimension() int { return PreferenceDimension }

func (KeywordExtractor) Extract(ctx context.Context, text string) (Embedding, error) {
	if err := ctx.Err(); err != nil {
		return Embedding{}, err
	}
	if strings.TrimSpace(text) == "" {
		return Embedding{}, fmt.Errorf("empty text: %w", ErrPermanent)
	}

	scores := scoresFromHits(categoryHits(text))
	vec := make([]float64, PreferenceDimension)
	for _, s := range scores {
		vec[categoryIndex(s.Category)] = s.Score * 2
	}
	for _, w := range strings.Fields(normalizeText(text)) {
		if len(w) < 3 {
			continue
		}
		vec[hashSlot(stem(w), PreferenceDimension)] += 1
	}

	return Embedding{
		Vector:     unit(vec),
		Categories: scores,
		Source:     "keyword",
	}, nil
}
