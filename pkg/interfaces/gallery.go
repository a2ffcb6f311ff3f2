package interfaces

// GalleryItem describes a single SVG badge asset.
type GalleryItem struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	Filename string   `yaml:"filename" json:"filename"`
	Category string   `yaml:"category,omitempty" json:"category"`
	Tags     []string `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// GalleryService exposes the static badge catalog.
type GalleryService interface {
	Categories() []string
	Items(category string) ([]GalleryItem, error)
	Skills() []GalleryItem
	Find(id string) (GalleryItem, bool)
	All() []GalleryItem
}
