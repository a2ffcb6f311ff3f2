// Package http provides the read-only HTTP adapter for the blog catalog.
//
// Routes mount under the configured base path (default "/api"):
//   - Posts: /posts, /posts/{slug}, /posts/{slug}/html
//   - Taxonomy: /categories, /categories/{category}/posts, /tags, /tags/{tag}/posts
//   - Badge gallery: /gallery, /gallery/{category}
//
// Host applications can register handlers on their own mux as needed.
package http
