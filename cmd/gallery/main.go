package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	blog "github.com/goliatone/go-blog"
	"github.com/goliatone/go-blog/cmd/internal/bootstrap"
	gallerycmd "github.com/goliatone/go-blog/internal/commands/gallery"
	"github.com/goliatone/go-blog/internal/gallery"
	"github.com/goliatone/go-blog/internal/logging"
)

const usage = `usage: gallery [flags] <command> [category]

commands:
  reorganize     move badges into langs, ferramentas or tecnologias and rewrite manifest paths
  split-skills   split the legacy skills manifest section into its categories
  relocate       move decorativos and info badges out of the skills folders
  list           list every badge, or the badges of [category]
`

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatalf("gallery: %v", err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("gallery", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprint(fs.Output(), usage)
		fs.PrintDefaults()
	}
	opts := bootstrap.RegisterFlags(fs)
	dryRun := fs.Bool("dry-run", false, "Report planned changes without touching files")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("command is required")
	}

	opts.LocalOnly = true
	cfg, err := bootstrap.LoadConfig(*opts)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	command := fs.Arg(0)
	if command == "list" {
		return list(cfg, strings.TrimSpace(fs.Arg(1)), stdout)
	}

	provider, err := blog.NewLoggerProvider(cfg.Logging)
	if err != nil {
		return err
	}
	var report gallerycmd.MigrationReport
	handlers, err := gallerycmd.RegisterGalleryCommands(nil, provider,
		gallerycmd.WithReportSink(func(_ string, r gallerycmd.MigrationReport) {
			report = r
		}),
		gallerycmd.WithMigrator(gallerycmd.NewMigrator(
			gallerycmd.WithMigratorLogger(logging.GalleryLogger(provider)),
		)),
	)
	if err != nil {
		return err
	}

	ctx := context.Background()
	svgRoot := cfg.Gallery.SVGRoot
	manifest := cfg.Gallery.ManifestPath
	switch command {
	case "reorganize":
		err = handlers.Reorganize.Execute(ctx, gallerycmd.ReorganizeBadgesCommand{
			SVGRoot:      svgRoot,
			ManifestPath: manifest,
			DryRun:       *dryRun,
		})
	case "split-skills":
		err = handlers.SplitSkills.Execute(ctx, gallerycmd.SplitSkillsCommand{
			ManifestPath: manifest,
			DryRun:       *dryRun,
		})
	case "relocate":
		err = handlers.Relocate.Execute(ctx, gallerycmd.RelocateBadgesCommand{
			SVGRoot:      svgRoot,
			ManifestPath: manifest,
			DryRun:       *dryRun,
		})
	default:
		return fmt.Errorf("unknown command %q", command)
	}
	if err != nil {
		return fmt.Errorf("execute %s: %w", command, err)
	}
	return bootstrap.WriteJSON(stdout, report)
}

func list(cfg blog.Config, category string, stdout io.Writer) error {
	catalog, err := gallery.LoadCatalog(cfg.Gallery.ManifestPath)
	if err != nil {
		return err
	}
	if category == "" {
		return bootstrap.WriteJSON(stdout, catalog.All())
	}
	items, err := catalog.Items(category)
	if err != nil {
		return err
	}
	return bootstrap.WriteJSON(stdout, items)
}
