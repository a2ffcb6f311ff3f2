package blog

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-blog/internal/schema"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// AuditFinding lists the schema issues of a single post document.
type AuditFinding struct {
	Source string                   `json:"source"`
	Slug   string                   `json:"slug"`
	File   string                   `json:"file,omitempty"`
	Issues []schema.ValidationIssue `json:"issues"`
}

// AuditReport summarises a schema audit over both sources.
type AuditReport struct {
	Checked  int            `json:"checked"`
	Findings []AuditFinding `json:"findings"`
	// RemoteError is set when the remote documents could not be listed.
	RemoteError string `json:"remote_error,omitempty"`
}

// Valid reports whether no document had issues.
func (r AuditReport) Valid() bool {
	return len(r.Findings) == 0 && r.RemoteError == ""
}

// Audit validates local frontmatter and remote documents against the post
// document type. Local read failures abort the audit; remote failures are
// recorded on the report.
func (m *Module) Audit(ctx context.Context) (AuditReport, error) {
	report := AuditReport{Findings: []AuditFinding{}}
	validator, err := schema.NewPostValidator()
	if err != nil {
		return report, err
	}

	files, err := m.local.ListFiles(ctx)
	if err != nil {
		return report, fmt.Errorf("blog audit: list local files: %w", err)
	}
	for _, file := range files {
		post, err := m.local.ParseFile(ctx, file)
		if err != nil {
			return report, fmt.Errorf("blog audit: %w", err)
		}
		frontmatter, err := m.localFrontMatter(ctx, file, post)
		if err != nil {
			return report, fmt.Errorf("blog audit: %w", err)
		}
		report.Checked++
		doc := schema.LocalDocument(post.Slug, frontmatter, post.Content)
		if issues := validator.ValidateDocument(doc); len(issues) > 0 {
			report.Findings = append(report.Findings, AuditFinding{
				Source: interfaces.SourceLocal,
				Slug:   post.Slug,
				File:   file,
				Issues: issues,
			})
		}
	}

	if m.remoteSanity == nil {
		return report, nil
	}
	docs, err := m.remoteSanity.ListDocuments(ctx)
	if err != nil {
		report.RemoteError = err.Error()
		return report, nil
	}
	for _, stored := range docs {
		doc, err := schema.ToDocument(stored)
		if err != nil {
			return report, fmt.Errorf("blog audit: %w", err)
		}
		report.Checked++
		if issues := validator.ValidateDocument(doc); len(issues) > 0 {
			report.Findings = append(report.Findings, AuditFinding{
				Source: interfaces.SourceRemote,
				Slug:   strings.TrimSpace(stored.Slug.Current),
				Issues: issues,
			})
		}
	}
	return report, nil
}

func (m *Module) localFrontMatter(ctx context.Context, file string, post *interfaces.Post) (map[string]any, error) {
	if m.markdown != nil {
		meta, err := m.markdown.FrontMatterOf(ctx, file)
		if err != nil {
			return nil, err
		}
		return meta.Raw, nil
	}
	frontmatter := map[string]any{
		"title":       post.Title,
		"description": post.Description,
		"date":        post.Date,
		"author":      post.Author,
		"category":    post.Category,
		"tags":        post.Tags,
		"published":   post.Published,
	}
	if post.VideoURL != "" {
		frontmatter["videoUrl"] = post.VideoURL
	}
	return frontmatter, nil
}
