package posts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"reflect"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/pkg/interfaces"
)

type fakeLocal struct {
	posts   map[string]*interfaces.Post
	order   []string
	listErr error
	parsed  []string
}

func newFakeLocal(posts ...*interfaces.Post) *fakeLocal {
	f := &fakeLocal{posts: map[string]*interfaces.Post{}}
	for _, post := range posts {
		name := post.Slug + ".mdx"
		f.posts[name] = post
		f.order = append(f.order, name)
	}
	return f
}

func (f *fakeLocal) ListFiles(context.Context) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]string{}, f.order...), nil
}

func (f *fakeLocal) ParseFile(_ context.Context, filename string) (*interfaces.Post, error) {
	f.parsed = append(f.parsed, filename)
	post, ok := f.posts[filename]
	if !ok {
		return nil, fmt.Errorf("open %s: %w", filename, fs.ErrNotExist)
	}
	clone := *post
	return &clone, nil
}

func (f *fakeLocal) Filename(slug string) string { return slug + ".mdx" }

type fakeRemote struct {
	posts      []*interfaces.Post
	err        error
	slugLookup int
	listCalls  int
	onList     func()
}

func (f *fakeRemote) ListAllPublished(context.Context) ([]*interfaces.Post, error) {
	f.listCalls++
	if f.onList != nil {
		f.onList()
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

func (f *fakeRemote) GetBySlug(_ context.Context, slug string) (*interfaces.Post, error) {
	f.slugLookup++
	if f.err != nil {
		return nil, f.err
	}
	for _, post := range f.posts {
		if post.Slug == slug {
			return post, nil
		}
	}
	return nil, nil
}

func (f *fakeRemote) ListByCategory(context.Context, string) ([]*interfaces.Post, error) {
	return nil, errors.New("not used")
}

func (f *fakeRemote) ListByTag(context.Context, string) ([]*interfaces.Post, error) {
	return nil, errors.New("not used")
}

func (f *fakeRemote) ListDistinctCategories(context.Context) ([]string, error) {
	return nil, errors.New("not used")
}

func (f *fakeRemote) ListDistinctTags(context.Context) ([]string, error) {
	return nil, errors.New("not used")
}

func post(slug, date, source string, mutate ...func(*interfaces.Post)) *interfaces.Post {
	p := &interfaces.Post{
		Slug:        slug,
		Title:       strings.ToUpper(slug),
		Date:        date,
		Author:      DefaultAuthor,
		Category:    DefaultCategory,
		Tags:        []string{},
		Published:   true,
		Content:     "body of " + slug,
		ReadingTime: "1 min de leitura",
		Source:      source,
	}
	for _, fn := range mutate {
		fn(p)
	}
	return p
}

func slugs(posts []interfaces.PostMetadata) []string {
	out := make([]string, 0, len(posts))
	for _, p := range posts {
		out = append(out, p.Slug)
	}
	return out
}

func TestGetAllPostsMergesDedupesAndSorts(t *testing.T) {
	local := newFakeLocal(
		post("shared", "2024-01-10", interfaces.SourceLocal),
		post("local-old", "2023-05-01", interfaces.SourceLocal),
	)
	remote := &fakeRemote{posts: []*interfaces.Post{
		post("remote-new", "2024-03-01T10:00:00Z", interfaces.SourceRemote),
		post("shared", "2025-01-01", interfaces.SourceRemote),
	}}

	svc := NewService(local, remote)
	got := svc.GetAllPosts(context.Background())

	want := []string{"remote-new", "shared", "local-old"}
	if !reflect.DeepEqual(slugs(got), want) {
		t.Fatalf("expected %v, got %v", want, slugs(got))
	}
	for _, p := range got {
		if p.Slug == "shared" && p.Source != interfaces.SourceLocal {
			t.Fatalf("expected local version to win, got source %q", p.Source)
		}
	}
}

func TestGetAllPostsStableForEqualAndInvalidDates(t *testing.T) {
	local := newFakeLocal(
		post("a", "2024-01-01", interfaces.SourceLocal),
		post("broken-1", "not a date", interfaces.SourceLocal),
		post("b", "2024-01-01", interfaces.SourceLocal),
		post("broken-2", "", interfaces.SourceLocal),
		post("c", "2024-02-01", interfaces.SourceLocal),
	)

	got := slugs(NewService(local, nil).GetAllPosts(context.Background()))
	want := []string{"c", "a", "b", "broken-1", "broken-2"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGetAllPostsFallsBackToLocalWhenRemoteFails(t *testing.T) {
	local := newFakeLocal(
		post("older", "2022-01-01", interfaces.SourceLocal),
		post("newer", "2023-01-01", interfaces.SourceLocal),
		post("draft", "2024-01-01", interfaces.SourceLocal, func(p *interfaces.Post) { p.Published = false }),
	)
	remote := &fakeRemote{err: errors.New("store unreachable")}

	got := slugs(NewService(local, remote).GetAllPosts(context.Background()))
	want := []string{"newer", "older"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestGetAllPostsDegradesToRemoteWhenLocalFails(t *testing.T) {
	local := newFakeLocal()
	local.listErr = errors.New("permission denied")
	remote := &fakeRemote{posts: []*interfaces.Post{post("remote", "2024-01-01", interfaces.SourceRemote)}}

	got := slugs(NewService(local, remote).GetAllPosts(context.Background()))
	if !reflect.DeepEqual(got, []string{"remote"}) {
		t.Fatalf("expected remote only, got %v", got)
	}
}

func TestGetAllPostsProjectsMetadata(t *testing.T) {
	local := newFakeLocal(post("hello", "2024-01-01", interfaces.SourceLocal, func(p *interfaces.Post) {
		p.ReadingTime = ""
		p.Tags = nil
	}))

	got := NewService(local, nil).GetAllPosts(context.Background())
	if len(got) != 1 {
		t.Fatalf("expected one post, got %d", len(got))
	}
	if got[0].ReadingTime != "1 min de leitura" {
		t.Fatalf("expected default reading time, got %q", got[0].ReadingTime)
	}
	if got[0].Tags == nil {
		t.Fatal("expected tags to be an empty slice")
	}
}

func TestGetAllPostsWithoutSourcesIsEmpty(t *testing.T) {
	got := NewService(nil, nil).GetAllPosts(context.Background())
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", got)
	}
}

func TestUnpublishedPostsNeverSurface(t *testing.T) {
	draft := post("draft", "2024-01-01", interfaces.SourceLocal, func(p *interfaces.Post) {
		p.Published = false
		p.Category = "tutorial"
		p.Tags = []string{"go"}
	})
	local := newFakeLocal(draft, post("live", "2023-01-01", interfaces.SourceLocal))
	svc := NewService(local, &fakeRemote{})
	ctx := context.Background()

	if got := slugs(svc.GetAllPosts(ctx)); !reflect.DeepEqual(got, []string{"live"}) {
		t.Fatalf("expected only live post, got %v", got)
	}
	if got := svc.GetPostsByCategory(ctx, "tutorial"); len(got) != 0 {
		t.Fatalf("expected no tutorial posts, got %v", slugs(got))
	}
	if got := svc.GetPostsByTag(ctx, "go"); len(got) != 0 {
		t.Fatalf("expected no go posts, got %v", slugs(got))
	}
	if _, ok := svc.GetPostBySlug(ctx, "draft"); ok {
		t.Fatal("expected draft lookup to be not found")
	}
}

func TestGetPostBySlugPrefersLocal(t *testing.T) {
	local := newFakeLocal(post("hello", "2024-01-01", interfaces.SourceLocal))
	remote := &fakeRemote{posts: []*interfaces.Post{post("hello", "2024-01-01", interfaces.SourceRemote)}}

	got, ok := NewService(local, remote).GetPostBySlug(context.Background(), "hello")
	if !ok || got.Source != interfaces.SourceLocal {
		t.Fatalf("expected local post, got %+v (ok=%v)", got, ok)
	}
	if remote.slugLookup != 0 {
		t.Fatalf("expected remote not to be consulted, got %d lookups", remote.slugLookup)
	}
}

func TestGetPostBySlugFallsBackToRemote(t *testing.T) {
	remote := &fakeRemote{posts: []*interfaces.Post{post("remote-only", "2024-01-01", interfaces.SourceRemote)}}

	got, ok := NewService(newFakeLocal(), remote).GetPostBySlug(context.Background(), "remote-only")
	if !ok || got.Slug != "remote-only" || got.Source != interfaces.SourceRemote {
		t.Fatalf("expected remote post, got %+v (ok=%v)", got, ok)
	}
}

func TestGetPostBySlugNotFound(t *testing.T) {
	cases := []struct {
		name   string
		remote interfaces.RemotePostSource
		slug   string
	}{
		{"missing everywhere", &fakeRemote{}, "ghost"},
		{"remote failure", &fakeRemote{err: errors.New("boom")}, "ghost"},
		{"no remote", nil, "ghost"},
		{"blank slug", &fakeRemote{}, "  "},
		{"remote unpublished", &fakeRemote{posts: []*interfaces.Post{
			post("ghost", "2024-01-01", interfaces.SourceRemote, func(p *interfaces.Post) { p.Published = false }),
		}}, "ghost"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := NewService(newFakeLocal(), tc.remote).GetPostBySlug(context.Background(), tc.slug)
			if ok || got != nil {
				t.Fatalf("expected not found, got %+v", got)
			}
		})
	}
}

func TestFiltersAndDistinctValues(t *testing.T) {
	local := newFakeLocal(
		post("a", "2024-03-01", interfaces.SourceLocal, func(p *interfaces.Post) {
			p.Category = "tutorial"
			p.Tags = []string{"go", "cli"}
		}),
		post("b", "2024-02-01", interfaces.SourceLocal, func(p *interfaces.Post) {
			p.Category = "design"
			p.Tags = []string{"css"}
		}),
	)
	remote := &fakeRemote{posts: []*interfaces.Post{
		post("c", "2024-01-01", interfaces.SourceRemote, func(p *interfaces.Post) {
			p.Category = "tutorial"
			p.Tags = []string{"go", "api"}
		}),
	}}
	svc := NewService(local, remote)
	ctx := context.Background()

	if got := slugs(svc.GetPostsByCategory(ctx, "tutorial")); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("unexpected category filter %v", got)
	}
	if got := slugs(svc.GetPostsByCategory(ctx, "Tutorial")); len(got) != 0 {
		t.Fatalf("expected exact category match, got %v", got)
	}
	if got := slugs(svc.GetPostsByTag(ctx, "go")); !reflect.DeepEqual(got, []string{"a", "c"}) {
		t.Fatalf("unexpected tag filter %v", got)
	}
	if got := svc.GetAllCategories(ctx); !reflect.DeepEqual(got, []string{"design", "tutorial"}) {
		t.Fatalf("unexpected categories %v", got)
	}
	if got := svc.GetAllTags(ctx); !reflect.DeepEqual(got, []string{"api", "cli", "css", "go"}) {
		t.Fatalf("unexpected tags %v", got)
	}
}

func TestGetAllPostsQueriesRemoteAfterLocalFiles(t *testing.T) {
	local := newFakeLocal(
		post("first", "2024-01-01", interfaces.SourceLocal),
		post("second", "2024-01-02", interfaces.SourceLocal),
	)
	remote := &fakeRemote{posts: []*interfaces.Post{post("third", "2024-01-03", interfaces.SourceRemote)}}
	var parsedBeforeRemote []string
	remote.onList = func() {
		parsedBeforeRemote = append([]string{}, local.parsed...)
	}

	got := NewService(local, remote).GetAllPosts(context.Background())
	if len(got) != 3 {
		t.Fatalf("expected 3 posts, got %d", len(got))
	}
	if remote.listCalls != 1 {
		t.Fatalf("expected a single remote listing, got %d", remote.listCalls)
	}
	want := []string{"first.mdx", "second.mdx"}
	if !reflect.DeepEqual(parsedBeforeRemote, want) {
		t.Fatalf("expected local files parsed before the remote query, got %v", parsedBeforeRemote)
	}
}
