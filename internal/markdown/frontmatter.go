package markdown

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
)

// FrontMatter holds the recognised post keys. Date is always exposed as a
// string whether the source used a YAML timestamp or a quoted value.
type FrontMatter struct {
	Title       string
	Description string
	Date        string
	Author      string
	Category    string
	Tags        []string
	Image       string
	VideoURL    string
	// Published is true unless the frontmatter sets it to false explicitly.
	Published bool
	Raw       map[string]any
}

// ParseFrontMatter splits source into its frontmatter and body.
func ParseFrontMatter(source []byte) (FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

type frontMatterEnvelope struct {
	Title       string         `yaml:"title"`
	Description string         `yaml:"description"`
	Date        any            `yaml:"date"`
	Author      string         `yaml:"author"`
	Category    string         `yaml:"category"`
	Tags        []string       `yaml:"tags"`
	Image       string         `yaml:"image"`
	VideoURL    string         `yaml:"videoUrl"`
	Published   *bool          `yaml:"published"`
	Custom      map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) FrontMatter {
	published := true
	if env.Published != nil {
		published = *env.Published
	}
	date := normalizeDate(env.Date)

	raw := make(map[string]any, len(env.Custom)+9)
	for key, value := range env.Custom {
		raw[key] = normalizeValue(value)
	}
	setIfPresent(raw, "title", env.Title)
	setIfPresent(raw, "description", env.Description)
	setIfPresent(raw, "date", date)
	setIfPresent(raw, "author", env.Author)
	setIfPresent(raw, "category", env.Category)
	setIfPresent(raw, "image", env.Image)
	setIfPresent(raw, "videoUrl", env.VideoURL)
	if env.Tags != nil {
		raw["tags"] = append([]string{}, env.Tags...)
	}
	raw["published"] = published

	return FrontMatter{
		Title:       strings.TrimSpace(env.Title),
		Description: strings.TrimSpace(env.Description),
		Date:        date,
		Author:      strings.TrimSpace(env.Author),
		Category:    strings.TrimSpace(env.Category),
		Tags:        append([]string(nil), env.Tags...),
		Image:       strings.TrimSpace(env.Image),
		VideoURL:    strings.TrimSpace(env.VideoURL),
		Published:   published,
		Raw:         raw,
	}
}

// normalizeValue converts YAML maps with interface keys into map[string]any
// so nested frontmatter can be encoded as JSON.
func normalizeValue(value any) any {
	switch v := value.(type) {
	case map[any]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[fmt.Sprint(key)] = normalizeValue(inner)
		}
		return out
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, inner := range v {
			out[key] = normalizeValue(inner)
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, inner := range v {
			out[i] = normalizeValue(inner)
		}
		return out
	default:
		return v
	}
}

func setIfPresent(raw map[string]any, key, value string) {
	if value != "" {
		raw[key] = value
	}
}

// normalizeDate renders YAML dates back to text. Midnight UTC values keep the
// short date form they were most likely written in.
func normalizeDate(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		if v.IsZero() {
			return ""
		}
		if v.Location() == time.UTC && v.Hour() == 0 && v.Minute() == 0 && v.Second() == 0 && v.Nanosecond() == 0 {
			return v.Format(time.DateOnly)
		}
		return v.Format(time.RFC3339)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
