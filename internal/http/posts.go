package http

import (
	"net/http"
)

func (api *ReadAPI) registerPostRoutes(mux *http.ServeMux, base string) {
	posts := joinPath(base, "posts")
	mux.HandleFunc("GET "+posts, api.handlePostList)
	mux.HandleFunc("GET "+posts+"/{slug}", api.handlePostGet)
	mux.HandleFunc("GET "+posts+"/{slug}/html", api.handlePostHTML)

	categories := joinPath(base, "categories")
	mux.HandleFunc("GET "+categories, api.handleCategoryList)
	mux.HandleFunc("GET "+categories+"/{category}/posts", api.handleCategoryPosts)

	tags := joinPath(base, "tags")
	mux.HandleFunc("GET "+tags, api.handleTagList)
	mux.HandleFunc("GET "+tags+"/{tag}/posts", api.handleTagPosts)
}

func (api *ReadAPI) postsAvailable(w http.ResponseWriter) bool {
	if api == nil || api.posts == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return false
	}
	return true
}

func (api *ReadAPI) handlePostList(w http.ResponseWriter, r *http.Request) {
	if !api.postsAvailable(w) {
		return
	}
	writeJSON(w, http.StatusOK, api.posts.GetAllPosts(r.Context()))
}

func (api *ReadAPI) handlePostGet(w http.ResponseWriter, r *http.Request) {
	if !api.postsAvailable(w) {
		return
	}
	post, ok := api.posts.GetPostBySlug(r.Context(), pathValue(r, "slug"))
	if !ok {
		writeError(w, errNotFound)
		return
	}
	writeJSON(w, http.StatusOK, post)
}

func (api *ReadAPI) handlePostHTML(w http.ResponseWriter, r *http.Request) {
	if !api.postsAvailable(w) {
		return
	}
	if api.renderer == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "service_unavailable"})
		return
	}
	post, ok := api.posts.GetPostBySlug(r.Context(), pathValue(r, "slug"))
	if !ok {
		writeError(w, errNotFound)
		return
	}
	html, err := api.renderer.RenderPost(r.Context(), post)
	if err != nil {
		api.logger.WithContext(r.Context()).Error("http.render.failed", "slug", post.Slug, "error", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(html)
}

func (api *ReadAPI) handleCategoryList(w http.ResponseWriter, r *http.Request) {
	if !api.postsAvailable(w) {
		return
	}
	writeJSON(w, http.StatusOK, api.posts.GetAllCategories(r.Context()))
}

func (api *ReadAPI) handleCategoryPosts(w http.ResponseWriter, r *http.Request) {
	if !api.postsAvailable(w) {
		return
	}
	writeJSON(w, http.StatusOK, api.posts.GetPostsByCategory(r.Context(), pathValue(r, "category")))
}

func (api *ReadAPI) handleTagList(w http.ResponseWriter, r *http.Request) {
	if !api.postsAvailable(w) {
		return
	}
	writeJSON(w, http.StatusOK, api.posts.GetAllTags(r.Context()))
}

func (api *ReadAPI) handleTagPosts(w http.ResponseWriter, r *http.Request) {
	if !api.postsAvailable(w) {
		return
	}
	writeJSON(w, http.StatusOK, api.posts.GetPostsByTag(r.Context(), pathValue(r, "tag")))
}
