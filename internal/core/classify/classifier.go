// Package classify scores raw document text against the type registry.
package classify

import (
	"strings"

	"github.com/pulakdeshmukh/loan-document-processor/internal/core/domain"
	"github.com/pulakdeshmukh/loan-document-processor/internal/core/registry"
)

// Classify counts, per registered type, how many of its recognition patterns
// occur anywhere in the lower-cased text. The strictly highest count wins;
// ties go to the first type in registry order; an all-zero score returns the
// TypeOther sentinel. Pure function: identical input always yields identical
// output.
func Classify(text string) domain.Classification {
	lower := strings.ToLower(text)

	scores := make(map[domain.TypeKind]int, len(registry.All()))
	best := domain.TypeOther
	bestScore := 0

	for _, spec := range registry.All() {
		score := 0
		for _, pattern := range spec.Patterns {
			if pattern.MatchString(lower) {
				score++
			}
		}
		scores[spec.Kind] = score
		if score > bestScore {
			best = spec.Kind
			bestScore = score
		}
	}

	return domain.Classification{Kind: best, Scores: scores}
}
