package gallery

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Category names. Skills is not stored; it is composed from its subsets.
const (
	CategoryBanners     = "banners"
	CategoryDecorativos = "decorativos"
	CategoryInfo        = "info"
	CategorySocial      = "social"
	CategoryTecnologias = "tecnologias"
	CategoryFerramentas = "ferramentas"
	CategoryLangs       = "langs"
	CategorySkills      = "skills"
)

var (
	ErrUnknownCategory = errors.New("gallery: unknown category")
	ErrDuplicateItem   = errors.New("gallery: duplicate item id")
	ErrItemInvalid     = errors.New("gallery: item requires id and filename")
)

//go:embed default_manifest.yaml
var defaultManifest []byte

// Manifest lists badge files per category. A legacy flat skills section is
// accepted until it is split.
type Manifest struct {
	Banners     []interfaces.GalleryItem `yaml:"banners"`
	Decorativos []interfaces.GalleryItem `yaml:"decorativos"`
	Info        []interfaces.GalleryItem `yaml:"info"`
	Social      []interfaces.GalleryItem `yaml:"social"`
	Tecnologias []interfaces.GalleryItem `yaml:"tecnologias"`
	Ferramentas []interfaces.GalleryItem `yaml:"ferramentas"`
	Langs       []interfaces.GalleryItem `yaml:"langs"`
	Skills      []interfaces.GalleryItem `yaml:"skills,omitempty"`
}

// DefaultManifest returns the manifest bundled with the module.
func DefaultManifest() (*Manifest, error) {
	return ParseManifest(defaultManifest)
}

// ParseManifest decodes YAML manifest data.
func ParseManifest(data []byte) (*Manifest, error) {
	manifest := &Manifest{}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(manifest); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("gallery: decode manifest: %w", err)
	}
	if err := manifest.Validate(); err != nil {
		return nil, err
	}
	return manifest, nil
}

// LoadManifest reads the manifest at path.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("gallery: read manifest: %w", err)
	}
	return ParseManifest(data)
}

// Marshal encodes the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(m); err != nil {
		return nil, fmt.Errorf("gallery: encode manifest: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("gallery: encode manifest: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the manifest to path.
func (m *Manifest) Save(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("gallery: write manifest: %w", err)
	}
	return nil
}

// Section returns the stored items of category.
func (m *Manifest) Section(category string) ([]interfaces.GalleryItem, bool) {
	switch category {
	case CategoryBanners:
		return m.Banners, true
	case CategoryDecorativos:
		return m.Decorativos, true
	case CategoryInfo:
		return m.Info, true
	case CategorySocial:
		return m.Social, true
	case CategoryTecnologias:
		return m.Tecnologias, true
	case CategoryFerramentas:
		return m.Ferramentas, true
	case CategoryLangs:
		return m.Langs, true
	}
	return nil, false
}

// Validate checks that items carry an id and filename and that ids are
// unique within their category.
func (m *Manifest) Validate() error {
	sections := map[string][]interfaces.GalleryItem{CategorySkills: m.Skills}
	for _, category := range storedCategories {
		items, _ := m.Section(category)
		sections[category] = items
	}
	for category, items := range sections {
		seen := make(map[string]struct{}, len(items))
		for i, item := range items {
			if strings.TrimSpace(item.ID) == "" || strings.TrimSpace(item.Filename) == "" {
				return fmt.Errorf("%w: %s[%d]", ErrItemInvalid, category, i)
			}
			if _, ok := seen[item.ID]; ok {
				return fmt.Errorf("%w: %s/%s", ErrDuplicateItem, category, item.ID)
			}
			seen[item.ID] = struct{}{}
		}
	}
	return nil
}

// IDSet returns the ids and file base names listed in category.
func (m *Manifest) IDSet(category string) map[string]struct{} {
	items, _ := m.Section(category)
	out := make(map[string]struct{}, len(items)*2)
	for _, item := range items {
		out[item.ID] = struct{}{}
		out[BaseName(item.Filename)] = struct{}{}
	}
	return out
}

// BaseName strips the directory and .svg suffix from filename.
func BaseName(filename string) string {
	return strings.TrimSuffix(path.Base(strings.ReplaceAll(filename, "\\", "/")), ".svg")
}
