package gallerycmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	reorganizeMessageType  = "blog.gallery.reorganize"
	splitSkillsMessageType = "blog.gallery.split_skills"
	relocateMessageType    = "blog.gallery.relocate"
)

// ReorganizeBadgesCommand moves every badge below SVGRoot/badges into the
// langs, ferramentas or tecnologias folder and rewrites manifest paths.
type ReorganizeBadgesCommand struct {
	// SVGRoot is the directory holding the public svg tree.
	SVGRoot string `json:"svg_root"`
	// ManifestPath points at the gallery manifest. When empty the bundled
	// manifest supplies the id sets and no manifest is rewritten.
	ManifestPath string `json:"manifest_path,omitempty"`
	// DryRun reports planned moves without touching the filesystem.
	DryRun bool `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (ReorganizeBadgesCommand) Type() string { return reorganizeMessageType }

// Validate ensures the svg root is present before handlers execute.
func (cmd ReorganizeBadgesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.SVGRoot, validation.Required, validation.By(notBlank(
			"blog.gallery.reorganize.svg_root_required", "svg root is required",
		))),
	)
}

// SplitSkillsCommand splits the legacy flat skills section of the manifest
// into its langs, ferramentas and tecnologias sections.
type SplitSkillsCommand struct {
	ManifestPath string `json:"manifest_path"`
	DryRun       bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (SplitSkillsCommand) Type() string { return splitSkillsMessageType }

// Validate ensures a manifest file is named.
func (cmd SplitSkillsCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.ManifestPath, validation.Required, validation.By(notBlank(
			"blog.gallery.split_skills.manifest_required", "manifest path is required",
		))),
	)
}

// RelocateBadgesCommand moves the files listed in the decorativos and info
// sections out of the skills folders into badges/decorativos and badges/info.
type RelocateBadgesCommand struct {
	SVGRoot      string `json:"svg_root"`
	ManifestPath string `json:"manifest_path,omitempty"`
	DryRun       bool   `json:"dry_run,omitempty"`
}

// Type implements command.Message.
func (RelocateBadgesCommand) Type() string { return relocateMessageType }

// Validate ensures the svg root is present before handlers execute.
func (cmd RelocateBadgesCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.SVGRoot, validation.Required, validation.By(notBlank(
			"blog.gallery.relocate.svg_root_required", "svg root is required",
		))),
	)
}

func notBlank(code, message string) validation.RuleFunc {
	return func(value any) error {
		if s, ok := value.(string); ok && strings.TrimSpace(s) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
