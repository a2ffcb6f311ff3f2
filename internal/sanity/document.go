package sanity

import (
	"strings"

	"github.com/goliatone/go-blog/internal/identity"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/internal/posts"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Document is the stored shape of a post.
type Document struct {
	ID          string               `json:"_id"`
	Type        string               `json:"_type,omitempty"`
	Slug        SlugField            `json:"slug"`
	Title       string               `json:"title"`
	Description string               `json:"description"`
	Content     string               `json:"content"`
	Category    string               `json:"category"`
	Tags        []string             `json:"tags"`
	Author      string               `json:"author"`
	PublishedAt string               `json:"publishedAt"`
	Image       *interfaces.ImageRef `json:"image,omitempty"`
	VideoURL    string               `json:"videoUrl,omitempty"`
	Published   bool                 `json:"published"`
}

// SlugField is the nested slug object of a document.
type SlugField struct {
	Current string `json:"current"`
}

// converter turns documents into normalized posts.
type converter struct {
	images   interfaces.ImageURLResolver
	defaults posts.Defaults
	reading  posts.ReadingTime
	logger   interfaces.Logger
}

func (c converter) toPost(doc Document) *interfaces.Post {
	slug := strings.TrimSpace(doc.Slug.Current)
	author, category, tags := c.defaults.Apply(doc.Author, doc.Category, doc.Tags)

	return &interfaces.Post{
		ID:          identity.PostUUID(slug),
		Slug:        slug,
		Title:       doc.Title,
		Description: doc.Description,
		Date:        doc.PublishedAt,
		Author:      author,
		Category:    category,
		Tags:        tags,
		Image:       c.imageURL(slug, doc.Image),
		VideoURL:    strings.TrimSpace(doc.VideoURL),
		Published:   doc.Published,
		Content:     doc.Content,
		ReadingTime: c.reading.Estimate(doc.Content),
		Source:      interfaces.SourceRemote,
	}
}

func (c converter) toPosts(docs []Document) []*interfaces.Post {
	out := make([]*interfaces.Post, 0, len(docs))
	for _, doc := range docs {
		out = append(out, c.toPost(doc))
	}
	return out
}

func (c converter) imageURL(slug string, ref *interfaces.ImageRef) string {
	if ref == nil || strings.TrimSpace(ref.Asset.Ref) == "" || c.images == nil {
		return ""
	}
	url, err := c.images.ResolveImageURL(*ref)
	if err != nil {
		logging.WithPostContext(c.logger, slug, interfaces.SourceRemote).
			Warn("sanity.image.unresolved", "ref", ref.Asset.Ref, "error", err)
		return ""
	}
	return url
}
