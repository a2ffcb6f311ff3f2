package gallery

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// storedCategories lists the manifest sections in display order.
var storedCategories = []string{
	CategoryBanners,
	CategoryDecorativos,
	CategoryInfo,
	CategorySocial,
	CategoryTecnologias,
	CategoryFerramentas,
	CategoryLangs,
}

// skillsComposition is the order skills are assembled in.
var skillsComposition = []string{CategoryTecnologias, CategoryFerramentas, CategoryLangs}

// Catalog serves the badge manifest. It is immutable once built.
type Catalog struct {
	sections map[string][]interfaces.GalleryItem
	logger   interfaces.Logger
}

var _ interfaces.GalleryService = (*Catalog)(nil)

// CatalogOption customises a Catalog.
type CatalogOption func(*Catalog)

// WithLogger sets the catalog logger.
func WithLogger(logger interfaces.Logger) CatalogOption {
	return func(c *Catalog) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewCatalog indexes manifest. Items of a legacy skills section are folded
// into tecnologias, ferramentas or langs by their path.
func NewCatalog(manifest *Manifest, opts ...CatalogOption) *Catalog {
	c := &Catalog{
		sections: make(map[string][]interfaces.GalleryItem, len(storedCategories)),
		logger:   logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if manifest == nil {
		manifest = &Manifest{}
	}

	for _, category := range storedCategories {
		items, _ := manifest.Section(category)
		c.sections[category] = withCategory(items, category)
	}
	if len(manifest.Skills) > 0 {
		c.logger.Warn("gallery.skills.legacy", "count", len(manifest.Skills))
		for _, item := range manifest.Skills {
			category := SkillCategory(item.Filename)
			c.sections[category] = append(c.sections[category], withCategory([]interfaces.GalleryItem{item}, category)...)
		}
	}
	return c
}

// LoadCatalog builds a catalog from the manifest at path, or from the bundled
// manifest when path is empty.
func LoadCatalog(path string, opts ...CatalogOption) (*Catalog, error) {
	var (
		manifest *Manifest
		err      error
	)
	if strings.TrimSpace(path) == "" {
		manifest, err = DefaultManifest()
	} else {
		manifest, err = LoadManifest(path)
	}
	if err != nil {
		return nil, err
	}
	return NewCatalog(manifest, opts...), nil
}

// SkillCategory picks the skills subset a badge belongs to from its path.
func SkillCategory(filename string) string {
	normalized := "/" + strings.ReplaceAll(filename, "\\", "/")
	switch {
	case strings.Contains(normalized, "/langs/"):
		return CategoryLangs
	case strings.Contains(normalized, "/ferramentas/"):
		return CategoryFerramentas
	default:
		return CategoryTecnologias
	}
}

// Categories returns every category including the composite skills.
func (c *Catalog) Categories() []string {
	out := make([]string, 0, len(storedCategories)+1)
	out = append(out, storedCategories...)
	return append(out, CategorySkills)
}

// Items returns the badges of category.
func (c *Catalog) Items(category string) ([]interfaces.GalleryItem, error) {
	category = strings.ToLower(strings.TrimSpace(category))
	if category == CategorySkills {
		return c.Skills(), nil
	}
	items, ok := c.sections[category]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}
	return cloneItems(items), nil
}

// Skills returns tecnologias, ferramentas and langs in that order.
func (c *Catalog) Skills() []interfaces.GalleryItem {
	var out []interfaces.GalleryItem
	for _, category := range skillsComposition {
		out = append(out, cloneItems(c.sections[category])...)
	}
	if out == nil {
		out = []interfaces.GalleryItem{}
	}
	return out
}

// Find looks an id up across categories in display order.
func (c *Catalog) Find(id string) (interfaces.GalleryItem, bool) {
	id = strings.TrimSpace(id)
	for _, category := range storedCategories {
		for _, item := range c.sections[category] {
			if item.ID == id {
				return cloneItem(item), true
			}
		}
	}
	return interfaces.GalleryItem{}, false
}

// All returns every stored badge once.
func (c *Catalog) All() []interfaces.GalleryItem {
	out := []interfaces.GalleryItem{}
	for _, category := range storedCategories {
		out = append(out, cloneItems(c.sections[category])...)
	}
	return out
}

func withCategory(items []interfaces.GalleryItem, category string) []interfaces.GalleryItem {
	out := make([]interfaces.GalleryItem, 0, len(items))
	for _, item := range items {
		item = cloneItem(item)
		if item.Category == "" {
			item.Category = category
		}
		if item.Name == "" {
			item.Name = item.ID
		}
		out = append(out, item)
	}
	return out
}

func cloneItems(items []interfaces.GalleryItem) []interfaces.GalleryItem {
	out := make([]interfaces.GalleryItem, 0, len(items))
	for _, item := range items {
		out = append(out, cloneItem(item))
	}
	return out
}

func cloneItem(item interfaces.GalleryItem) interfaces.GalleryItem {
	if item.Tags != nil {
		item.Tags = append([]string(nil), item.Tags...)
	}
	return item
}
