package gallery

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

func ids(items []interfaces.GalleryItem) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.ID)
	}
	return out
}

func TestDefaultCatalog(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	want := []string{"banners", "decorativos", "info", "social", "tecnologias", "ferramentas", "langs", "skills"}
	if got := catalog.Categories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}

	langs, err := catalog.Items("langs")
	if err != nil {
		t.Fatalf("Items: %v", err)
	}
	if len(langs) == 0 || langs[0].Category != CategoryLangs {
		t.Fatalf("expected langs to carry their category, got %+v", langs)
	}
}

func TestSkillsIsComposite(t *testing.T) {
	catalog := NewCatalog(&Manifest{
		Tecnologias: []interfaces.GalleryItem{{ID: "react", Filename: "badges/tecnologias/react.svg"}},
		Ferramentas: []interfaces.GalleryItem{{ID: "git", Filename: "badges/ferramentas/git.svg"}},
		Langs:       []interfaces.GalleryItem{{ID: "go", Filename: "badges/langs/go.svg"}},
	})

	if got := ids(catalog.Skills()); !reflect.DeepEqual(got, []string{"react", "git", "go"}) {
		t.Fatalf("unexpected skills order %v", got)
	}
	viaItems, err := catalog.Items("Skills")
	if err != nil {
		t.Fatalf("Items skills: %v", err)
	}
	if len(viaItems) != 3 {
		t.Fatalf("expected skills through Items, got %v", ids(viaItems))
	}
	if len(catalog.All()) != 3 {
		t.Fatalf("expected All to list each badge once, got %d", len(catalog.All()))
	}
}

func TestLegacySkillsSectionIsFolded(t *testing.T) {
	catalog := NewCatalog(&Manifest{
		Skills: []interfaces.GalleryItem{
			{ID: "rust", Filename: "badges/skills/langs/rust.svg"},
			{ID: "vim", Filename: "badges/skills/ferramentas/vim.svg"},
			{ID: "redis", Filename: "badges/skills/redis.svg"},
		},
	})

	for category, want := range map[string]string{"langs": "rust", "ferramentas": "vim", "tecnologias": "redis"} {
		items, err := catalog.Items(category)
		if err != nil {
			t.Fatalf("Items %s: %v", category, err)
		}
		if len(items) != 1 || items[0].ID != want {
			t.Fatalf("expected %s in %s, got %v", want, category, ids(items))
		}
	}
}

func TestFindAndUnknownCategory(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}

	item, ok := catalog.Find("go")
	if !ok || item.Filename != "badges/langs/go.svg" || item.Name != "Go" {
		t.Fatalf("unexpected find result %+v (ok=%v)", item, ok)
	}
	if _, ok := catalog.Find("cobol"); ok {
		t.Fatal("expected unknown id to be missing")
	}
	if _, err := catalog.Items("stickers"); !errors.Is(err, ErrUnknownCategory) {
		t.Fatalf("expected ErrUnknownCategory, got %v", err)
	}
}

func TestItemsReturnsCopies(t *testing.T) {
	catalog := NewCatalog(&Manifest{
		Langs: []interfaces.GalleryItem{{ID: "go", Filename: "badges/langs/go.svg", Tags: []string{"backend"}}},
	})
	items, _ := catalog.Items("langs")
	items[0].Tags[0] = "mutated"
	items[0].ID = "mutated"

	again, _ := catalog.Items("langs")
	if again[0].ID != "go" || again[0].Tags[0] != "backend" {
		t.Fatalf("expected catalog to be immutable, got %+v", again[0])
	}
}

func TestManifestRoundTripOnDisk(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "gallery.yaml")

	manifest, err := DefaultManifest()
	if err != nil {
		t.Fatalf("DefaultManifest: %v", err)
	}
	manifest.Skills = nil
	if err := manifest.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if strings.Contains(string(data), "skills:") {
		t.Fatalf("expected empty skills section to be omitted:\n%s", data)
	}

	loaded, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if !reflect.DeepEqual(loaded.Langs, manifest.Langs) {
		t.Fatalf("langs changed across save/load")
	}
}

func TestParseManifestRejectsInvalidData(t *testing.T) {
	cases := map[string]string{
		"unknown section": "stickers:\n  - id: x\n    filename: x.svg\n",
		"missing id":      "langs:\n  - filename: badges/langs/go.svg\n",
		"duplicate id":    "langs:\n  - id: go\n    filename: a.svg\n  - id: go\n    filename: b.svg\n",
	}
	for name, data := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := ParseManifest([]byte(data)); err == nil {
				t.Fatal("expected error")
			}
		})
	}

	empty, err := ParseManifest(nil)
	if err != nil {
		t.Fatalf("expected empty manifest to parse, got %v", err)
	}
	if len(NewCatalog(empty).All()) != 0 {
		t.Fatal("expected empty catalog")
	}
}

func TestSkillCategoryAndBaseName(t *testing.T) {
	cases := map[string]string{
		"badges/langs/go.svg":               CategoryLangs,
		"badges/skills/ferramentas/git.svg": CategoryFerramentas,
		"badges/skills/react.svg":           CategoryTecnologias,
		"langs/go.svg":                      CategoryLangs,
	}
	for filename, want := range cases {
		if got := SkillCategory(filename); got != want {
			t.Fatalf("SkillCategory(%q) = %q, want %q", filename, got, want)
		}
	}
	if BaseName("badges\\langs\\go.svg") != "go" {
		t.Fatalf("unexpected base name %q", BaseName("badges\\langs\\go.svg"))
	}
}
