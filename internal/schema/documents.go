package schema

import (
	"encoding/json"
	"fmt"
)

// LocalDocument maps frontmatter keys of a local post onto the stored
// document shape: the slug comes from the file name, date becomes
// publishedAt and the body becomes content.
func LocalDocument(slug string, frontmatter map[string]any, body string) map[string]any {
	doc := make(map[string]any, len(frontmatter)+3)
	for key, value := range frontmatter {
		switch key {
		case "date":
			doc["publishedAt"] = value
		case "image":
			if ref, ok := value.(string); ok && ref != "" {
				// Local posts link images by URL; there is no asset to check.
				continue
			}
			doc[key] = value
		default:
			doc[key] = value
		}
	}
	doc["slug"] = map[string]any{"current": slug}
	doc["content"] = body
	return doc
}

// ToDocument converts a struct with JSON tags into a generic document.
func ToDocument(value any) (map[string]any, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("schema: encode document: %w", err)
	}
	doc := map[string]any{}
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("schema: decode document: %w", err)
	}
	return doc, nil
}
