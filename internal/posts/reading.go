package posts

import (
	"fmt"
	"strings"
)

const (
	DefaultWordsPerMinute   = 200
	DefaultReadingTimeLabel = "min de leitura"
	DefaultAuthor           = "I.C.L"
	DefaultCategory         = "Geral"
)

// ReadingTime estimates how long a body takes to read.
type ReadingTime struct {
	WordsPerMinute int
	Label          string
}

// DefaultReadingTime returns the estimator used by the site: 200 words per
// minute rendered as "N min de leitura".
func DefaultReadingTime() ReadingTime {
	return ReadingTime{WordsPerMinute: DefaultWordsPerMinute, Label: DefaultReadingTimeLabel}
}

// Minutes returns ceil(words / rate) with a floor of one minute. Words are
// whitespace separated tokens.
func (r ReadingTime) Minutes(body string) int {
	rate := r.WordsPerMinute
	if rate <= 0 {
		rate = DefaultWordsPerMinute
	}
	words := len(strings.Fields(body))
	minutes := (words + rate - 1) / rate
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Estimate renders the reading time for body.
func (r ReadingTime) Estimate(body string) string {
	return r.Format(r.Minutes(body))
}

// Format renders a minute count with the configured label.
func (r ReadingTime) Format(minutes int) string {
	label := strings.TrimSpace(r.Label)
	if label == "" {
		label = DefaultReadingTimeLabel
	}
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d %s", minutes, label)
}

// EstimateReadingTime applies the default estimator.
func EstimateReadingTime(body string) string {
	return DefaultReadingTime().Estimate(body)
}

// Defaults holds the fallbacks applied when a source omits a field.
type Defaults struct {
	Author   string
	Category string
}

// DefaultFallbacks returns the author and category used when posts omit them.
func DefaultFallbacks() Defaults {
	return Defaults{Author: DefaultAuthor, Category: DefaultCategory}
}

// Apply fills empty author, category and tags on values.
func (d Defaults) Apply(author, category string, tags []string) (string, string, []string) {
	if strings.TrimSpace(author) == "" {
		author = d.Author
		if author == "" {
			author = DefaultAuthor
		}
	}
	if strings.TrimSpace(category) == "" {
		category = d.Category
		if category == "" {
			category = DefaultCategory
		}
	}
	if tags == nil {
		tags = []string{}
	}
	return author, category, tags
}
