package blog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-blog/internal/sanity"
)

const fixturesDir = "internal/markdown/testdata/posts"

type fakeQuerier struct {
	docs []sanity.Document
	err  error
}

func (f *fakeQuerier) Fetch(_ context.Context, _ string, params map[string]any, out any) error {
	if f.err != nil {
		return f.err
	}
	var payload any = f.docs
	if slug, ok := params["slug"]; ok {
		payload = nil
		for _, doc := range f.docs {
			if doc.Slug.Current == slug {
				payload = doc
				break
			}
		}
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return json.Unmarshal(encoded, out)
}

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.Content.Dir = fixturesDir
	cfg.Logging.Provider = "none"
	return cfg
}

func remoteDocs() []sanity.Document {
	return []sanity.Document{
		{
			ID:          "remote-1",
			Type:        "post",
			Slug:        sanity.SlugField{Current: "remote-post"},
			Title:       "Remote",
			Description: "Vindo do CMS",
			Content:     "conteudo remoto",
			Category:    "tips",
			Tags:        []string{"cms"},
			Author:      "I.C.L",
			PublishedAt: "2024-03-01T10:00:00Z",
			Published:   true,
		},
		{
			ID:          "remote-2",
			Type:        "post",
			Slug:        sanity.SlugField{Current: "hello"},
			Title:       "Remote hello",
			Description: "Shadowed by the local file",
			Content:     "ignored",
			Category:    "geral",
			PublishedAt: "2025-01-01",
			Published:   true,
		},
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Content.Dir = ""
	if _, err := New(cfg); !errors.Is(err, ErrContentDirRequired) {
		t.Fatalf("expected ErrContentDirRequired, got %v", err)
	}
}

func TestModuleServesLocalPosts(t *testing.T) {
	module, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if module.RemoteEnabled() {
		t.Fatal("expected remote source to be disabled by default")
	}

	posts := module.Posts().GetAllPosts(context.Background())
	if len(posts) != 2 || posts[0].Slug != "hello" || posts[1].Slug != "minimal" {
		t.Fatalf("unexpected posts %+v", posts)
	}
	if _, ok := module.Posts().GetPostBySlug(context.Background(), "draft"); ok {
		t.Fatal("expected unpublished post to be hidden")
	}
}

func TestModuleMergesRemotePosts(t *testing.T) {
	module, err := New(testConfig(), WithQuerier(&fakeQuerier{docs: remoteDocs()}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if !module.RemoteEnabled() {
		t.Fatal("expected remote source to be wired")
	}

	posts := module.Posts().GetAllPosts(context.Background())
	if len(posts) != 3 {
		t.Fatalf("expected 3 posts, got %+v", posts)
	}
	if posts[0].Slug != "remote-post" || posts[1].Slug != "hello" {
		t.Fatalf("unexpected order %s, %s", posts[0].Slug, posts[1].Slug)
	}
	if posts[1].Source != "local" {
		t.Fatalf("expected local hello to win, got %+v", posts[1])
	}

	post, ok := module.Posts().GetPostBySlug(context.Background(), "remote-post")
	if !ok || post.Content != "conteudo remoto" {
		t.Fatalf("expected remote post, got %+v (ok=%v)", post, ok)
	}
}

func TestModuleDegradesWhenRemoteFails(t *testing.T) {
	module, err := New(testConfig(), WithQuerier(&fakeQuerier{err: errors.New("offline")}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := len(module.Posts().GetAllPosts(context.Background())); got != 2 {
		t.Fatalf("expected local posts only, got %d", got)
	}

	report, err := module.Audit(context.Background())
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if report.RemoteError == "" || report.Valid() {
		t.Fatalf("expected remote error on report, got %+v", report)
	}
}

func TestAuditFlagsIncompleteDocuments(t *testing.T) {
	module, err := New(testConfig(), WithQuerier(&fakeQuerier{docs: remoteDocs()}))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	report, err := module.Audit(context.Background())
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if report.Checked != 5 {
		t.Fatalf("expected 5 documents checked, got %d", report.Checked)
	}
	flagged := map[string]bool{}
	for _, finding := range report.Findings {
		flagged[finding.Source+"/"+finding.Slug] = true
	}
	if !flagged["local/draft"] || !flagged["local/minimal"] {
		t.Fatalf("expected draft and minimal to be flagged, got %v", flagged)
	}
	if flagged["local/hello"] || flagged["remote/remote-post"] {
		t.Fatalf("expected complete documents to pass, got %v", flagged)
	}
}

func TestAuditAcceptsEmptyTagsAndNestedFrontmatter(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"good.mdx":      "---\ntitle: Bom\ndescription: Completo\ndate: 2024-03-01\ncategory: tips\ntags: [go]\n---\nTexto\n",
		"emptytags.mdx": "---\ntitle: Sem tags\ndescription: Lista vazia\ndate: 2024-03-02\ncategory: tips\ntags: []\n---\nTexto\n",
		"nested.mdx":    "---\ntitle: Aninhado\ndescription: Chaves extras\ndate: 2024-03-03\ncategory: tips\nseo:\n  keywords: go\n---\nTexto\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	cfg := testConfig()
	cfg.Content.Dir = dir
	module, err := New(cfg, WithoutRemoteSource())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	report, err := module.Audit(context.Background())
	if err != nil {
		t.Fatalf("Audit: %v", err)
	}
	if report.Checked != 3 {
		t.Fatalf("expected 3 documents checked, got %d", report.Checked)
	}
	if !report.Valid() {
		t.Fatalf("expected valid frontmatter to pass, got %+v", report.Findings)
	}
}

func TestModuleHTTPHandler(t *testing.T) {
	module, err := New(testConfig(), WithoutRemoteSource())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	handler, err := module.HTTPHandler()
	if err != nil {
		t.Fatalf("HTTPHandler: %v", err)
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/posts/hello/html", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/gallery/langs", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for gallery, got %d", rec.Code)
	}
}

func TestNewLoggerProvider(t *testing.T) {
	for _, provider := range []string{"", "console", "gologger", "none"} {
		if _, err := NewLoggerProvider(LoggingConfig{Provider: provider, Level: "info"}); err != nil {
			t.Fatalf("provider %q: %v", provider, err)
		}
	}
	if _, err := NewLoggerProvider(LoggingConfig{Provider: "syslog"}); !errors.Is(err, ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}
