package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// Post source identifiers recorded on every normalized post.
const (
	SourceLocal  = "local"
	SourceRemote = "remote"
)

// Post is the normalized shape shared by the local file source and the remote
// document store. Posts are rebuilt on every request and never mutated once
// returned to callers.
type Post struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Image       string    `json:"image,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	Published   bool      `json:"published"`
	Content     string    `json:"content"`
	ReadingTime string    `json:"readingTime"`
	Source      string    `json:"source"`
}

// PostMetadata is the listing projection of Post; it carries every field
// except the content body.
type PostMetadata struct {
	ID          uuid.UUID `json:"id"`
	Slug        string    `json:"slug"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Author      string    `json:"author"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	Image       string    `json:"image,omitempty"`
	VideoURL    string    `json:"videoUrl,omitempty"`
	Published   bool      `json:"published"`
	ReadingTime string    `json:"readingTime"`
	Source      string    `json:"source"`
}

// Metadata projects the post into its listing shape.
func (p *Post) Metadata() PostMetadata {
	if p == nil {
		return PostMetadata{}
	}
	return PostMetadata{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Description: p.Description,
		Date:        p.Date,
		Author:      p.Author,
		Category:    p.Category,
		Tags:        append([]string{}, p.Tags...),
		Image:       p.Image,
		VideoURL:    p.VideoURL,
		Published:   p.Published,
		ReadingTime: p.ReadingTime,
		Source:      p.Source,
	}
}

// LocalPostSource reads posts authored as files with frontmatter.
type LocalPostSource interface {
	// ListFiles returns the content file names found in the content directory.
	// A missing directory yields an empty list.
	ListFiles(ctx context.Context) ([]string, error)
	// ParseFile reads and normalizes a single content file.
	ParseFile(ctx context.Context, filename string) (*Post, error)
	// Filename maps a slug to the file name ParseFile expects.
	Filename(slug string) string
}

// RemotePostSource queries the hosted document store. Every method issues a
// single request and surfaces transport or query failures unchanged.
type RemotePostSource interface {
	ListAllPublished(ctx context.Context) ([]*Post, error)
	// GetBySlug returns nil without error when no published document matches.
	GetBySlug(ctx context.Context, slug string) (*Post, error)
	ListByCategory(ctx context.Context, category string) ([]*Post, error)
	ListByTag(ctx context.Context, tag string) ([]*Post, error)
	ListDistinctCategories(ctx context.Context) ([]string, error)
	ListDistinctTags(ctx context.Context) ([]string, error)
}

// ImageRef points at an image asset stored by the document store.
type ImageRef struct {
	Asset   ImageAsset    `json:"asset"`
	Hotspot *ImageHotspot `json:"hotspot,omitempty"`
}

// ImageAsset holds the asset reference of an image field.
type ImageAsset struct {
	Ref string `json:"_ref"`
}

// ImageHotspot is the optional focal point hint attached to an image.
type ImageHotspot struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// ImageURLResolver builds a fully qualified URL for an image reference.
type ImageURLResolver interface {
	ResolveImageURL(ref ImageRef) (string, error)
}

// PostService is the unified catalog exposed to callers. Implementations
// never return errors: failures degrade to empty or partial results.
type PostService interface {
	GetAllPosts(ctx context.Context) []PostMetadata
	GetPostBySlug(ctx context.Context, slug string) (*Post, bool)
	GetPostsByCategory(ctx context.Context, category string) []PostMetadata
	GetPostsByTag(ctx context.Context, tag string) []PostMetadata
	GetAllCategories(ctx context.Context) []string
	GetAllTags(ctx context.Context) []string
}
