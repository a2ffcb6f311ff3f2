package commands

import (
	"errors"

	blog "github.com/goliatone/go-blog"
	gallerycmd "github.com/goliatone/go-blog/internal/commands/gallery"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// ReportSink receives the report of every completed gallery migration.
type ReportSink = gallerycmd.ReportSink

// MigrationReport exports the gallery migration summary.
type MigrationReport = gallerycmd.MigrationReport

// Gallery maintenance messages accepted by the registered handlers.
type (
	ReorganizeBadgesCommand = gallerycmd.ReorganizeBadgesCommand
	SplitSkillsCommand      = gallerycmd.SplitSkillsCommand
	RelocateBadgesCommand   = gallerycmd.RelocateBadgesCommand
)

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	LoggerProvider interfaces.LoggerProvider
	Reports        ReportSink
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
	Gallery       *gallerycmd.HandlerSet
}

// RegisterModuleCommands builds the gallery maintenance handlers and
// optionally registers them with registry and dispatcher integrations.
func RegisterModuleCommands(module *blog.Module, opts RegistrationOptions) (*RegistrationResult, error) {
	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	provider := opts.LoggerProvider
	if provider == nil && module != nil {
		provider = module.LoggerProvider()
	}

	set, err := gallerycmd.RegisterGalleryCommands(nil, provider, gallerycmd.WithReportSink(opts.Reports))
	if err != nil {
		return result, err
	}
	result.Gallery = set

	var errs error
	for _, handler := range []any{set.Reorganize, set.SplitSkills, set.Relocate} {
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}
	return result, errs
}
