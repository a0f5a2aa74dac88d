// Package heuristic infers persona fields from keyword counts over a user's
// posts and comments. It is the fallback used when the language model call fails.
package heuristic

import (
	"strings"

	"github.com/agenthands/persona/internal/core/model"
)

const maxQuoteRunes = 200

// Analyze builds a complete record from posts and comments without any I/O.
func Analyze(username string, posts, comments []model.Item) model.Persona {
	items := make([]model.Item, 0, len(posts)+len(comments))
	items = append(items, posts...)
	items = append(items, comments...)

	tube, archetype := TubeArchetype(items)
	primary, secondary := Traits(items)

	return model.Persona{
		Username:        username,
		Name:            username,
		Age:             Age(items),
		Occupation:      Occupation(items),
		Status:          RelationshipStatus(items),
		Location:        Location(items),
		Tube:            tube,
		Archetype:       archetype,
		PrimaryTraits:   primary,
		SecondaryTraits: secondary,
		Motivations:     Motivations(items),
		Behavior:        Behavior(posts, comments),
		Goals:           Goals(items),
		Frustrations:    Frustrations(items),
		Quote:           Quote(items),
	}.WithDefaults()
}

// Age applies the clue rules in fixed priority order; the first rule that
// fires wins. Each clue counts the items whose text contains it.
func Age(items []model.Item) string {
	counts := make(map[string]int, len(ageClues))
	for _, it := range items {
		text := it.Content()
		for _, clue := range ageClues {
			if strings.Contains(text, clue) {
				counts[clue]++
			}
		}
	}

	switch {
	case counts["kids"] > 2 || counts["children"] > 2:
		return "35-50 (parent)"
	case counts["wife"] > 1 || counts["husband"] > 1:
		return "30-45 (married)"
	case counts["college"] > 1 || counts["university"] > 1:
		return "18-25 (student)"
	case counts["job"] > 2 || counts["career"] > 2:
		return "25-40 (professional)"
	case counts["retirement"] > 0:
		return "60+ (retired)"
	}
	return "25-35"
}

// Occupation picks the category with the most keyword hits. Ties go to the
// category listed first.
func Occupation(items []model.Item) string {
	best, bestCount := "", 0
	for _, b := range occupationBuckets {
		n := 0
		for _, it := range items {
			n += countContained(it.Content(), b.keywords)
		}
		if n > bestCount {
			best, bestCount = b.label, n
		}
	}

	switch {
	case bestCount == 0:
		return model.Unknown
	case best == "legal":
		return "Legal Professional"
	}
	return strings.ToUpper(best[:1]) + best[1:]
}

// Location returns the first location matched, scanning items in collection order.
func Location(items []model.Item) string {
	return firstMatch(items, locationBuckets)
}

func RelationshipStatus(items []model.Item) string {
	return firstMatch(items, statusBuckets)
}

// TubeArchetype reads body text only.
func TubeArchetype(items []model.Item) (tube, archetype string) {
	var techCount, creativeCount, helpCount int
	for _, it := range items {
		text := it.Body()
		techCount += countContained(text, techKeywords)
		creativeCount += countContained(text, creativeKeywords)
		helpCount += countContained(text, helpKeywords)
	}

	switch {
	case techCount > 3:
		tube = "Early Adopter"
	case techCount > 0:
		tube = "Mainstream"
	default:
		tube = "Laggard"
	}

	switch {
	case creativeCount > helpCount && creativeCount > 2:
		archetype = "The Creator"
	case helpCount > 2:
		archetype = "The Helper"
	default:
		archetype = "The Participant"
	}
	return tube, archetype
}

func Traits(items []model.Item) (primary, secondary string) {
	var positive, negative, analytical, social int
	for _, it := range items {
		text := it.Content()
		positive += countContained(text, positiveWords)
		negative += countContained(text, negativeWords)
		analytical += countContained(text, analyticalWords)
		social += countContained(text, socialWords)
	}

	primary = "Social, Emotional"
	if analytical > social {
		primary = "Analytical, Logical"
	}
	secondary = "Critical, Direct"
	if positive > negative {
		secondary = "Positive, Helpful"
	}
	return primary, secondary
}

func Motivations(items []model.Item) []string {
	return matchCategories(items, motivationBuckets)
}

func Goals(items []model.Item) []string {
	return matchCategories(items, goalBuckets)
}

func Frustrations(items []model.Item) []string {
	return matchCategories(items, frustrationBuckets)
}

// Quote returns the body (or title) of the most upvoted item, truncated and
// prefixed with its subreddit. The earliest item wins ties.
func Quote(items []model.Item) string {
	if len(items) == 0 {
		return model.NoQuote
	}

	top := items[0]
	for _, it := range items[1:] {
		if it.Upvotes > top.Upvotes {
			top = it
		}
	}

	text := top.Text
	if text == "" {
		text = top.Title
	}
	if r := []rune(text); len(r) > maxQuoteRunes {
		text = string(r[:maxQuoteRunes]) + "..."
	}

	if top.Subreddit != "" {
		return "[r/" + top.Subreddit + "] " + text
	}
	return text
}

// matchCategories includes each label at most once, in the order it is first
// seen across items; ["Unknown"] when nothing matches.
func matchCategories(items []model.Item, buckets []bucket) []string {
	var out []string
	seen := make(map[string]bool, len(buckets))
	for _, it := range items {
		text := it.Content()
		for _, b := range buckets {
			if !seen[b.label] && containsAny(text, b.keywords) {
				seen[b.label] = true
				out = append(out, b.label)
			}
		}
	}
	if len(out) == 0 {
		return []string{model.Unknown}
	}
	return out
}

func firstMatch(items []model.Item, buckets []bucket) string {
	for _, it := range items {
		text := it.Content()
		for _, b := range buckets {
			if containsAny(text, b.keywords) {
				return b.label
			}
		}
	}
	return model.Unknown
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// countContained counts how many of keywords occur in text, not how often.
func countContained(text string, keywords []string) int {
	n := 0
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			n++
		}
	}
	return n
}
