// Package sanity reads published posts from a hosted Sanity dataset through
// its GROQ query API.
package sanity
