package posts

import (
	"sort"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

// Merge concatenates the snapshots in order, keeps the first post seen for
// each slug and drops unpublished or nil entries. Earlier snapshots win, so
// callers pass local posts first.
func Merge(snapshots ...[]*interfaces.Post) []*interfaces.Post {
	total := 0
	for _, snapshot := range snapshots {
		total += len(snapshot)
	}
	merged := make([]*interfaces.Post, 0, total)
	seen := make(map[string]struct{}, total)
	for _, snapshot := range snapshots {
		for _, post := range snapshot {
			if post == nil || !post.Published {
				continue
			}
			if _, ok := seen[post.Slug]; ok {
				continue
			}
			seen[post.Slug] = struct{}{}
			merged = append(merged, post)
		}
	}
	return merged
}

// SortByDate orders posts newest first. The sort is stable: equal dates keep
// their input order and posts whose date cannot be parsed sink to the end in
// their original relative order.
func SortByDate(posts []*interfaces.Post) {
	keys := make(map[*interfaces.Post]sortKey, len(posts))
	for _, post := range posts {
		keys[post] = dateKey(post.Date)
	}
	sort.SliceStable(posts, func(i, j int) bool {
		left, right := keys[posts[i]], keys[posts[j]]
		if left.ok != right.ok {
			return left.ok
		}
		if !left.ok {
			return false
		}
		return left.at.After(right.at)
	})
}

type sortKey struct {
	at time.Time
	ok bool
}

func dateKey(value string) sortKey {
	value = strings.TrimSpace(value)
	if value == "" {
		return sortKey{}
	}
	parsed, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return sortKey{}
	}
	return sortKey{at: parsed, ok: true}
}

// Project strips content from posts and fills an empty reading time.
func Project(posts []*interfaces.Post, reading ReadingTime) []interfaces.PostMetadata {
	out := make([]interfaces.PostMetadata, 0, len(posts))
	for _, post := range posts {
		meta := post.Metadata()
		if strings.TrimSpace(meta.ReadingTime) == "" {
			meta.ReadingTime = reading.Format(1)
		}
		if meta.Tags == nil {
			meta.Tags = []string{}
		}
		out = append(out, meta)
	}
	return out
}

// distinct returns the sorted set of non-empty values.
func distinct(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		out = append(out, value)
	}
	sort.Strings(out)
	return out
}
