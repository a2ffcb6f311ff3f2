package gallerycmd

import (
	"context"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/internal/logging"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

const (
	reorganizeOperation  = "gallery.reorganize"
	splitSkillsOperation = "gallery.split_skills"
	relocateOperation    = "gallery.relocate"
)

var (
	_ command.Commander[ReorganizeBadgesCommand] = (*ReorganizeBadgesHandler)(nil)
	_ command.Commander[SplitSkillsCommand]      = (*SplitSkillsHandler)(nil)
	_ command.Commander[RelocateBadgesCommand]   = (*RelocateBadgesHandler)(nil)
)

// ReportSink receives the report of every completed run.
type ReportSink func(operation string, report MigrationReport)

// ReorganizeBadgesHandler runs ReorganizeBadgesCommand through the shared
// command handler.
type ReorganizeBadgesHandler struct {
	inner *commands.Handler[ReorganizeBadgesCommand]
}

// NewReorganizeBadgesHandler binds the handler to migrator.
func NewReorganizeBadgesHandler(migrator *Migrator, logger interfaces.Logger, sink ReportSink, opts ...commands.HandlerOption[ReorganizeBadgesCommand]) *ReorganizeBadgesHandler {
	baseLogger := logging.OrNoOp(logger)
	exec := func(ctx context.Context, msg ReorganizeBadgesCommand) error {
		report, err := migrator.Reorganize(ctx, msg.SVGRoot, msg.ManifestPath, msg.DryRun)
		if err != nil {
			return err
		}
		complete(baseLogger, "gallery.command.reorganize.completed", reorganizeOperation, report, sink)
		return nil
	}

	handlerOpts := []commands.HandlerOption[ReorganizeBadgesCommand]{
		commands.WithLogger[ReorganizeBadgesCommand](baseLogger),
		commands.WithOperation[ReorganizeBadgesCommand](reorganizeOperation),
		commands.WithMessageFields(func(msg ReorganizeBadgesCommand) map[string]any {
			return treeFields(msg.SVGRoot, msg.ManifestPath, msg.DryRun)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ReorganizeBadgesCommand](baseLogger)),
	}
	return &ReorganizeBadgesHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[ReorganizeBadgesCommand].
func (h *ReorganizeBadgesHandler) Execute(ctx context.Context, msg ReorganizeBadgesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// SplitSkillsHandler runs SplitSkillsCommand through the shared command
// handler.
type SplitSkillsHandler struct {
	inner *commands.Handler[SplitSkillsCommand]
}

// NewSplitSkillsHandler binds the handler to migrator.
func NewSplitSkillsHandler(migrator *Migrator, logger interfaces.Logger, sink ReportSink, opts ...commands.HandlerOption[SplitSkillsCommand]) *SplitSkillsHandler {
	baseLogger := logging.OrNoOp(logger)
	exec := func(ctx context.Context, msg SplitSkillsCommand) error {
		report, err := migrator.SplitSkills(ctx, msg.ManifestPath, msg.DryRun)
		if err != nil {
			return err
		}
		complete(baseLogger, "gallery.command.split_skills.completed", splitSkillsOperation, report, sink)
		return nil
	}

	handlerOpts := []commands.HandlerOption[SplitSkillsCommand]{
		commands.WithLogger[SplitSkillsCommand](baseLogger),
		commands.WithOperation[SplitSkillsCommand](splitSkillsOperation),
		commands.WithMessageFields(func(msg SplitSkillsCommand) map[string]any {
			return treeFields("", msg.ManifestPath, msg.DryRun)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SplitSkillsCommand](baseLogger)),
	}
	return &SplitSkillsHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[SplitSkillsCommand].
func (h *SplitSkillsHandler) Execute(ctx context.Context, msg SplitSkillsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RelocateBadgesHandler runs RelocateBadgesCommand through the shared
// command handler.
type RelocateBadgesHandler struct {
	inner *commands.Handler[RelocateBadgesCommand]
}

// NewRelocateBadgesHandler binds the handler to migrator.
func NewRelocateBadgesHandler(migrator *Migrator, logger interfaces.Logger, sink ReportSink, opts ...commands.HandlerOption[RelocateBadgesCommand]) *RelocateBadgesHandler {
	baseLogger := logging.OrNoOp(logger)
	exec := func(ctx context.Context, msg RelocateBadgesCommand) error {
		report, err := migrator.Relocate(ctx, msg.SVGRoot, msg.ManifestPath, msg.DryRun)
		if err != nil {
			return err
		}
		complete(baseLogger, "gallery.command.relocate.completed", relocateOperation, report, sink)
		return nil
	}

	handlerOpts := []commands.HandlerOption[RelocateBadgesCommand]{
		commands.WithLogger[RelocateBadgesCommand](baseLogger),
		commands.WithOperation[RelocateBadgesCommand](relocateOperation),
		commands.WithMessageFields(func(msg RelocateBadgesCommand) map[string]any {
			return treeFields(msg.SVGRoot, msg.ManifestPath, msg.DryRun)
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RelocateBadgesCommand](baseLogger)),
	}
	return &RelocateBadgesHandler{
		inner: commands.NewHandler(exec, append(handlerOpts, opts...)...),
	}
}

// Execute satisfies command.Commander[RelocateBadgesCommand].
func (h *RelocateBadgesHandler) Execute(ctx context.Context, msg RelocateBadgesCommand) error {
	return h.inner.Execute(ctx, msg)
}

func complete(logger interfaces.Logger, event, operation string, report MigrationReport, sink ReportSink) {
	logging.WithFields(logger, map[string]any{
		"moved_count":      len(report.Moved),
		"skipped_count":    len(report.Skipped),
		"failed_count":     len(report.Failed),
		"manifest_updated": report.ManifestUpdated,
		"dry_run":          report.DryRun,
	}).Info(event)
	if sink != nil {
		sink(operation, report)
	}
}

func treeFields(svgRoot, manifestPath string, dryRun bool) map[string]any {
	fields := map[string]any{}
	if svgRoot != "" {
		fields["svg_root"] = svgRoot
	}
	if manifestPath != "" {
		fields["manifest_path"] = manifestPath
	}
	if dryRun {
		fields["dry_run"] = true
	}
	return fields
}
