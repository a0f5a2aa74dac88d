package heuristic

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agenthands/persona/internal/core/model"
)

// SubredditCount is one row of per-subreddit activity.
type SubredditCount struct {
	Name  string
	Count int
}

// Behavior returns the fixed summary lines followed by any conditional
// meme or political lines.
func Behavior(posts, comments []model.Item) []string {
	items := make([]model.Item, 0, len(posts)+len(comments))
	items = append(items, posts...)
	items = append(items, comments...)

	subs := SubredditStats(items)
	top := subs
	if len(top) > 3 {
		top = top[:3]
	}
	active := make([]string, len(top))
	for i, s := range top {
		active[i] = fmt.Sprintf("r/%s (%d activities)", s.Name, s.Count)
	}

	lines := []string{
		fmt.Sprintf("Active in %d subreddits", len(subs)),
		fmt.Sprintf("Has made %d posts and %d comments", len(posts), len(comments)),
		fmt.Sprintf("Most active in: %s", strings.Join(active, ", ")),
		fmt.Sprintf("Most frequent posting times: %s", PostingTimes(items)),
		fmt.Sprintf("Engagement style: %s", EngagementStyle(items)),
	}

	if n := countItems(items, memeKeywords); n > 2 {
		lines = append(lines, fmt.Sprintf("Frequently shares memes/humor (%d instances)", n))
	}
	if n := countItems(items, politicalKeywords); n > 2 {
		lines = append(lines, fmt.Sprintf("Engages in political discussions (%d instances)", n))
	}
	return lines
}

// SubredditStats counts items per subreddit, most active first. Equal counts
// keep first-seen order. A blank subreddit is reported as "unknown".
func SubredditStats(items []model.Item) []SubredditCount {
	index := make(map[string]int)
	var out []SubredditCount
	for _, it := range items {
		name := it.Subreddit
		if name == "" {
			name = "unknown"
		}
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, SubredditCount{Name: name})
		}
		out[i].Count++
	}

	sort.SliceStable(out, func(a, b int) bool { return out[a].Count > out[b].Count })
	return out
}

// PostingTimes buckets timestamped items by UTC hour and reports the two
// busiest hours. Equal counts resolve to the earlier hour.
func PostingTimes(items []model.Item) string {
	if len(items) == 0 {
		return model.Unknown
	}

	var hours [24]int
	for _, it := range items {
		if it.HasTimestamp() {
			hours[it.CreatedAt.UTC().Hour()]++
		}
	}

	ranked := make([]int, 24)
	for h := range ranked {
		ranked[h] = h
	}
	sort.SliceStable(ranked, func(a, b int) bool { return hours[ranked[a]] > hours[ranked[b]] })

	first, second := ranked[0], ranked[1]
	return fmt.Sprintf("%d:00-%d:00 UTC, %d:00-%d:00 UTC", first, first+1, second, second+1)
}

// EngagementStyle compares body texts containing '?' against non-empty ones without.
func EngagementStyle(items []model.Item) string {
	var questions, answers int
	for _, it := range items {
		switch {
		case strings.Contains(it.Text, "?"):
			questions++
		case it.Text != "":
			answers++
		}
	}

	switch {
	case questions > answers*2:
		return "Mostly asks questions"
	case answers > questions*2:
		return "Mostly provides answers"
	}
	return "Balanced questions and answers"
}

// countItems counts items whose text contains at least one keyword.
func countItems(items []model.Item, keywords []string) int {
	n := 0
	for _, it := range items {
		if containsAny(it.Content(), keywords) {
			n++
		}
	}
	return n
}
