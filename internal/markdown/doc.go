// Package markdown reads locally authored posts: files with YAML frontmatter
// stored in a single content directory. It also renders post bodies to HTML
// through goldmark.
package markdown
