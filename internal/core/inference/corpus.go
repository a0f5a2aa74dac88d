package inference

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agenthands/persona/internal/core/model"
)

const (
	corpusItems    = 30
	corpusMaxRunes = 10000
)

// BuildCorpus renders the most upvoted posts and comments as labeled
// paragraphs and truncates the result to the model's input budget.
func BuildCorpus(posts, comments []model.Item) string {
	var parts []string
	for _, p := range topByUpvotes(posts, corpusItems) {
		parts = append(parts, fmt.Sprintf("POST in r/%s (%d upvotes): %s\n%s", p.Subreddit, p.Upvotes, p.Title, p.Text))
	}
	for _, c := range topByUpvotes(comments, corpusItems) {
		parts = append(parts, fmt.Sprintf("COMMENT in r/%s (%d upvotes): %s", c.Subreddit, c.Upvotes, c.Text))
	}

	corpus := strings.Join(parts, "\n\n")
	if r := []rune(corpus); len(r) > corpusMaxRunes {
		corpus = string(r[:corpusMaxRunes])
	}
	return corpus
}

// topByUpvotes returns up to n items, highest score first. Ties keep input order.
func topByUpvotes(items []model.Item, n int) []model.Item {
	sorted := make([]model.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(a, b int) bool { return sorted[a].Upvotes > sorted[b].Upvotes })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
