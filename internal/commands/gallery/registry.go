package gallerycmd

import (
	"github.com/goliatone/go-blog/internal/commands"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring
// command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the gallery maintenance handlers.
type HandlerSet struct {
	Reorganize  *ReorganizeBadgesHandler
	SplitSkills *SplitSkillsHandler
	Relocate    *RelocateBadgesHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	sink     ReportSink
	migrator *Migrator
}

// WithReportSink receives every completed migration report.
func WithReportSink(sink ReportSink) Option {
	return func(cfg *options) {
		cfg.sink = sink
	}
}

// WithMigrator replaces the default filesystem migrator.
func WithMigrator(migrator *Migrator) Option {
	return func(cfg *options) {
		cfg.migrator = migrator
	}
}

// RegisterGalleryCommands builds the gallery handlers and registers them
// with reg when one is supplied.
func RegisterGalleryCommands(reg CommandRegistry, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "gallery")
	migrator := cfg.migrator
	if migrator == nil {
		migrator = NewMigrator(WithMigratorLogger(logger))
	}

	set := &HandlerSet{
		Reorganize:  NewReorganizeBadgesHandler(migrator, logger, cfg.sink),
		SplitSkills: NewSplitSkillsHandler(migrator, logger, cfg.sink),
		Relocate:    NewRelocateBadgesHandler(migrator, logger, cfg.sink),
	}
	if reg != nil {
		for _, handler := range []any{set.Reorganize, set.SplitSkills, set.Relocate} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}
