package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goliatone/go-blog/internal/gallery"
	"github.com/goliatone/go-blog/pkg/interfaces"
)

type stubPostService struct {
	posts []*interfaces.Post
}

func (s *stubPostService) GetAllPosts(context.Context) []interfaces.PostMetadata {
	out := []interfaces.PostMetadata{}
	for _, post := range s.posts {
		out = append(out, post.Metadata())
	}
	return out
}

func (s *stubPostService) GetPostBySlug(_ context.Context, slug string) (*interfaces.Post, bool) {
	for _, post := range s.posts {
		if post.Slug == slug {
			return post, true
		}
	}
	return nil, false
}

func (s *stubPostService) GetPostsByCategory(_ context.Context, category string) []interfaces.PostMetadata {
	out := []interfaces.PostMetadata{}
	for _, post := range s.posts {
		if post.Category == category {
			out = append(out, post.Metadata())
		}
	}
	return out
}

func (s *stubPostService) GetPostsByTag(_ context.Context, tag string) []interfaces.PostMetadata {
	out := []interfaces.PostMetadata{}
	for _, post := range s.posts {
		for _, candidate := range post.Tags {
			if candidate == tag {
				out = append(out, post.Metadata())
				break
			}
		}
	}
	return out
}

func (s *stubPostService) GetAllCategories(context.Context) []string {
	return []string{"Geral", "tutorial"}
}

func (s *stubPostService) GetAllTags(context.Context) []string {
	return []string{"blog", "go"}
}

type stubRenderer struct {
	err error
}

func (r stubRenderer) RenderPost(_ context.Context, post *interfaces.Post) ([]byte, error) {
	if r.err != nil {
		return nil, r.err
	}
	return []byte("<p>" + post.Content + "</p>"), nil
}

func setupReadAPI(t *testing.T, renderer PostRenderer) *http.ServeMux {
	t.Helper()
	catalog, err := gallery.LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	service := &stubPostService{posts: []*interfaces.Post{
		{Slug: "hello", Title: "Hello", Category: "tutorial", Tags: []string{"go"}, Content: "hi", Published: true},
		{Slug: "news", Title: "News", Category: "Geral", Tags: []string{"blog"}, Content: "body", Published: true},
	}}
	api := NewReadAPI(
		WithPostService(service),
		WithGalleryService(catalog),
		WithRenderer(renderer),
	)
	mux := http.NewServeMux()
	if err := api.Register(mux); err != nil {
		t.Fatalf("Register: %v", err)
	}
	return mux
}

func doRequest(t *testing.T, handler http.Handler, path string, wantStatus int) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != wantStatus {
		t.Fatalf("GET %s: expected status %d got %d (%s)", path, wantStatus, rec.Code, rec.Body.String())
	}
	return rec
}

func decodeJSONBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestReadAPI_PostRoutes(t *testing.T) {
	mux := setupReadAPI(t, stubRenderer{})

	var list []interfaces.PostMetadata
	decodeJSONBody(t, doRequest(t, mux, "/api/posts", http.StatusOK), &list)
	if len(list) != 2 || list[0].Slug != "hello" {
		t.Fatalf("unexpected post list %+v", list)
	}

	var post interfaces.Post
	decodeJSONBody(t, doRequest(t, mux, "/api/posts/news", http.StatusOK), &post)
	if post.Title != "News" || post.Content != "body" {
		t.Fatalf("unexpected post %+v", post)
	}

	var byCategory []interfaces.PostMetadata
	decodeJSONBody(t, doRequest(t, mux, "/api/categories/tutorial/posts", http.StatusOK), &byCategory)
	if len(byCategory) != 1 || byCategory[0].Slug != "hello" {
		t.Fatalf("unexpected category posts %+v", byCategory)
	}

	var byTag []interfaces.PostMetadata
	decodeJSONBody(t, doRequest(t, mux, "/api/tags/blog/posts", http.StatusOK), &byTag)
	if len(byTag) != 1 || byTag[0].Slug != "news" {
		t.Fatalf("unexpected tag posts %+v", byTag)
	}

	var categories, tags []string
	decodeJSONBody(t, doRequest(t, mux, "/api/categories", http.StatusOK), &categories)
	decodeJSONBody(t, doRequest(t, mux, "/api/tags", http.StatusOK), &tags)
	if len(categories) != 2 || len(tags) != 2 {
		t.Fatalf("unexpected taxonomy %v / %v", categories, tags)
	}
}

func TestReadAPI_UnknownCategoryYieldsEmptyList(t *testing.T) {
	mux := setupReadAPI(t, stubRenderer{})
	rec := doRequest(t, mux, "/api/categories/missing/posts", http.StatusOK)
	if strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestReadAPI_NotFound(t *testing.T) {
	mux := setupReadAPI(t, stubRenderer{})
	for _, path := range []string{"/api/posts/missing", "/api/posts/missing/html", "/api/gallery/unknown"} {
		var payload errorResponse
		decodeJSONBody(t, doRequest(t, mux, path, http.StatusNotFound), &payload)
		if payload.Error != "not_found" {
			t.Fatalf("%s: expected not_found, got %+v", path, payload)
		}
	}
}

func TestReadAPI_RenderedHTML(t *testing.T) {
	mux := setupReadAPI(t, stubRenderer{})
	rec := doRequest(t, mux, "/api/posts/hello/html", http.StatusOK)
	if got := rec.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Fatalf("expected html content type, got %q", got)
	}
	if rec.Body.String() != "<p>hi</p>" {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestReadAPI_RenderFailure(t *testing.T) {
	mux := setupReadAPI(t, stubRenderer{err: errors.New("boom")})
	var payload errorResponse
	decodeJSONBody(t, doRequest(t, mux, "/api/posts/hello/html", http.StatusInternalServerError), &payload)
	if payload.Error != "internal_error" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}

func TestReadAPI_GalleryRoutes(t *testing.T) {
	mux := setupReadAPI(t, stubRenderer{})

	var index galleryIndex
	decodeJSONBody(t, doRequest(t, mux, "/api/gallery", http.StatusOK), &index)
	if len(index.Categories) != 8 || index.Categories[7] != gallery.CategorySkills {
		t.Fatalf("unexpected categories %v", index.Categories)
	}
	if len(index.Items) == 0 {
		t.Fatal("expected bundled gallery items")
	}

	var skills []interfaces.GalleryItem
	decodeJSONBody(t, doRequest(t, mux, "/api/gallery/skills", http.StatusOK), &skills)
	if len(skills) == 0 || skills[0].Category != gallery.CategoryTecnologias {
		t.Fatalf("expected skills to start with tecnologias, got %+v", skills)
	}
}

func TestReadAPI_BasePathAndUnavailableServices(t *testing.T) {
	api := NewReadAPI(WithBasePath("/blog/"))
	handler, err := api.Handler()
	if err != nil {
		t.Fatalf("Handler: %v", err)
	}
	doRequest(t, handler, "/blog/posts", http.StatusServiceUnavailable)
	doRequest(t, handler, "/blog/gallery", http.StatusServiceUnavailable)
	doRequest(t, handler, "/api/posts", http.StatusNotFound)
}

func TestReadAPI_RegisterRequiresMux(t *testing.T) {
	if err := NewReadAPI().Register(nil); err == nil {
		t.Fatal("expected error for nil mux")
	}
}

func TestJoinPath(t *testing.T) {
	cases := []struct {
		base, suffix, want string
	}{
		{"", "", "/"},
		{"/", "posts", "/posts"},
		{"/api/", "posts", "/api/posts"},
		{"api", "/tags/", "/api/tags"},
		{"/api", "", "/api"},
	}
	for _, tc := range cases {
		if got := joinPath(tc.base, tc.suffix); got != tc.want {
			t.Fatalf("joinPath(%q, %q) = %q, want %q", tc.base, tc.suffix, got, tc.want)
		}
	}
}
