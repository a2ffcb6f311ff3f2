package gallerycmd

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/goliatone/go-blog/internal/gallery"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const badgesDir = "badges"

// ErrDestinationExists reports a move whose target is already taken, either
// on disk or by an earlier move in the same run.
var ErrDestinationExists = errors.New("gallery: destination already exists")

// relocateSearchDirs lists, in order, the folders searched for misplaced
// decorativos and info badges.
var relocateSearchDirs = []string{
	gallery.CategoryTecnologias,
	gallery.CategoryFerramentas,
	gallery.CategorySkills,
	gallery.CategoryDecorativos,
	gallery.CategoryInfo,
}

// manifestRewrites are applied in order; the last one catches paths left
// under the old skills folder.
var manifestRewrites = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`badges/skills/langs/`), "badges/langs/"},
	{regexp.MustCompile(`badges/skills/ferramentas/`), "badges/ferramentas/"},
	{regexp.MustCompile(`badges/skills/tecnologias/`), "badges/tecnologias/"},
	{regexp.MustCompile(`badges/skills/`), "badges/tecnologias/"},
}

// Move records a single relocation. Paths are relative to the svg root, or
// category names for manifest-only moves.
type Move struct {
	Item string `json:"item"`
	From string `json:"from"`
	To   string `json:"to"`
}

// Failure records a move that could not be applied.
type Failure struct {
	Item  string `json:"item"`
	Path  string `json:"path"`
	Error string `json:"error"`
}

// MigrationReport summarises a maintenance run.
type MigrationReport struct {
	Moved           []Move    `json:"moved"`
	Skipped         []string  `json:"skipped"`
	Failed          []Failure `json:"failed"`
	ManifestUpdated bool      `json:"manifest_updated"`
	DryRun          bool      `json:"dry_run"`
}

func newReport(dryRun bool) MigrationReport {
	return MigrationReport{
		Moved:   []Move{},
		Skipped: []string{},
		Failed:  []Failure{},
		DryRun:  dryRun,
	}
}

// Migrator applies badge layout migrations on a local svg tree.
type Migrator struct {
	logger interfaces.Logger
	rename func(oldpath, newpath string) error
}

// MigratorOption customises a Migrator.
type MigratorOption func(*Migrator)

// WithMigratorLogger sets the logger used for per-file events.
func WithMigratorLogger(logger interfaces.Logger) MigratorOption {
	return func(m *Migrator) {
		m.logger = logging.OrNoOp(logger)
	}
}

// NewMigrator constructs a Migrator.
func NewMigrator(opts ...MigratorOption) *Migrator {
	m := &Migrator{
		logger: logging.NoOp(),
		rename: os.Rename,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}
	return m
}

// Reorganize moves badges into langs, ferramentas or tecnologias by base
// name and rewrites the manifest paths. Badges listed under decorativos or
// info are left in place.
func (m *Migrator) Reorganize(ctx context.Context, svgRoot, manifestPath string, dryRun bool) (MigrationReport, error) {
	report := newReport(dryRun)
	manifest, err := loadManifest(manifestPath)
	if err != nil {
		return report, err
	}

	langs := manifest.IDSet(gallery.CategoryLangs)
	ferramentas := manifest.IDSet(gallery.CategoryFerramentas)
	pinned := manifest.IDSet(gallery.CategoryDecorativos)
	for id := range manifest.IDSet(gallery.CategoryInfo) {
		pinned[id] = struct{}{}
	}

	files, err := badgeFiles(filepath.Join(svgRoot, badgesDir))
	if err != nil {
		return report, err
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		base := gallery.BaseName(file)
		if _, ok := pinned[base]; ok {
			report.Skipped = append(report.Skipped, base)
			continue
		}
		category := gallery.CategoryTecnologias
		if _, ok := langs[base]; ok {
			category = gallery.CategoryLangs
		} else if _, ok := ferramentas[base]; ok {
			category = gallery.CategoryFerramentas
		}
		dest := filepath.Join(svgRoot, badgesDir, category, base+".svg")
		m.move(svgRoot, base, file, dest, &report)
	}

	if strings.TrimSpace(manifestPath) == "" {
		return report, nil
	}
	updated, err := m.rewriteManifest(manifestPath, dryRun)
	if err != nil {
		return report, err
	}
	report.ManifestUpdated = updated
	return report, nil
}

// SplitSkills folds the legacy skills section into the category sections
// and removes it. Items whose id already exists in the target are skipped.
func (m *Migrator) SplitSkills(ctx context.Context, manifestPath string, dryRun bool) (MigrationReport, error) {
	report := newReport(dryRun)
	manifest, err := gallery.LoadManifest(manifestPath)
	if err != nil {
		return report, err
	}
	if len(manifest.Skills) == 0 {
		return report, nil
	}

	sections := map[string]*[]interfaces.GalleryItem{
		gallery.CategoryLangs:       &manifest.Langs,
		gallery.CategoryFerramentas: &manifest.Ferramentas,
		gallery.CategoryTecnologias: &manifest.Tecnologias,
	}
	for _, item := range manifest.Skills {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		category := gallery.SkillCategory(item.Filename)
		if _, exists := manifest.IDSet(category)[item.ID]; exists {
			report.Skipped = append(report.Skipped, item.ID)
			continue
		}
		target := sections[category]
		*target = append(*target, item)
		report.Moved = append(report.Moved, Move{
			Item: item.ID,
			From: gallery.CategorySkills,
			To:   category,
		})
	}
	manifest.Skills = nil

	if err := manifest.Validate(); err != nil {
		return report, err
	}
	if dryRun {
		return report, nil
	}
	if err := manifest.Save(manifestPath); err != nil {
		return report, err
	}
	report.ManifestUpdated = true
	return report, nil
}

// Relocate moves every badge named in the decorativos and info sections
// into badges/decorativos or badges/info, taking the first match found in
// the search folders.
func (m *Migrator) Relocate(ctx context.Context, svgRoot, manifestPath string, dryRun bool) (MigrationReport, error) {
	report := newReport(dryRun)
	manifest, err := loadManifest(manifestPath)
	if err != nil {
		return report, err
	}

	for _, category := range []string{gallery.CategoryDecorativos, gallery.CategoryInfo} {
		items, _ := manifest.Section(category)
		dest := filepath.Join(svgRoot, badgesDir, category)
		for _, item := range items {
			if err := ctx.Err(); err != nil {
				return report, err
			}
			base := gallery.BaseName(item.Filename)
			target := filepath.Join(dest, base+".svg")
			if fileExists(target) {
				report.Skipped = append(report.Skipped, base)
				continue
			}
			source, ok := findBadge(svgRoot, base)
			if !ok {
				m.logger.Debug("gallery.relocate.missing", "item", base)
				report.Skipped = append(report.Skipped, base)
				continue
			}
			m.move(svgRoot, base, source, target, &report)
		}
	}
	return report, nil
}

func (m *Migrator) move(svgRoot, item, from, to string, report *MigrationReport) {
	relFrom := relative(svgRoot, from)
	relTo := relative(svgRoot, to)
	if filepath.Clean(from) == filepath.Clean(to) {
		report.Skipped = append(report.Skipped, item)
		return
	}
	if fileExists(to) || report.claims(relTo) {
		m.fail(item, relFrom, fmt.Errorf("%w: %s", ErrDestinationExists, relTo), report)
		return
	}
	if !report.DryRun {
		if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
			m.fail(item, relFrom, err, report)
			return
		}
		if err := m.rename(from, to); err != nil {
			m.fail(item, relFrom, err, report)
			return
		}
	}
	m.logger.Info("gallery.badge.moved", "from", relFrom, "to", relTo, "dry_run", report.DryRun)
	report.Moved = append(report.Moved, Move{Item: item, From: relFrom, To: relTo})
}

func (r *MigrationReport) claims(target string) bool {
	for _, move := range r.Moved {
		if move.To == target {
			return true
		}
	}
	return false
}

func (m *Migrator) fail(item, path string, err error, report *MigrationReport) {
	m.logger.Error("gallery.badge.move_failed", "path", path, "error", err)
	report.Failed = append(report.Failed, Failure{Item: item, Path: path, Error: err.Error()})
}

func (m *Migrator) rewriteManifest(manifestPath string, dryRun bool) (bool, error) {
	data, err := os.ReadFile(manifestPath)
	if err != nil {
		return false, fmt.Errorf("gallery: read manifest: %w", err)
	}
	rewritten := RewriteManifestPaths(data)
	if string(rewritten) == string(data) {
		return false, nil
	}
	if _, err := gallery.ParseManifest(rewritten); err != nil {
		return false, err
	}
	if dryRun {
		return true, nil
	}
	if err := os.WriteFile(manifestPath, rewritten, 0o644); err != nil {
		return false, fmt.Errorf("gallery: write manifest: %w", err)
	}
	m.logger.Info("gallery.manifest.rewritten", "path", manifestPath)
	return true, nil
}

// RewriteManifestPaths maps legacy badges/skills paths onto the flat
// category folders.
func RewriteManifestPaths(data []byte) []byte {
	out := data
	for _, rewrite := range manifestRewrites {
		out = rewrite.pattern.ReplaceAll(out, []byte(rewrite.replace))
	}
	return out
}

func loadManifest(path string) (*gallery.Manifest, error) {
	if strings.TrimSpace(path) == "" {
		return gallery.DefaultManifest()
	}
	return gallery.LoadManifest(path)
}

func badgeFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".svg") {
			return nil
		}
		files = append(files, path)
		return nil
	})
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("gallery: walk badges: %w", err)
	}
	sort.Strings(files)
	return files, nil
}

func findBadge(svgRoot, base string) (string, bool) {
	for _, dir := range relocateSearchDirs {
		for _, candidate := range []string{
			filepath.Join(svgRoot, badgesDir, dir, base+".svg"),
			filepath.Join(svgRoot, dir, base+".svg"),
		} {
			if fileExists(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

func relative(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return path
	}
	return filepath.ToSlash(rel)
}
