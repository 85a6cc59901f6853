package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/jmehl/goblog/internal/auth"
	"github.com/jmehl/goblog/internal/models"
	"github.com/jmehl/goblog/internal/services"
)

// BlogHandler handles the post index and the post CRUD pages. All mutation
// routes sit behind the login guard, so CurrentUser is never nil there.
type BlogHandler struct {
	posts services.PostServiceProvider
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(posts services.PostServiceProvider) *BlogHandler {
	return &BlogHandler{posts: posts}
}

// Index shows all the posts, newest first.
func (h *BlogHandler) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Failed to list posts")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	render(w, r, indexTmpl, viewData{Posts: posts})
}

// Create renders the new-post form and inserts the post on POST.
func (h *BlogHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		title := r.FormValue("title")
		body := r.FormValue("body")
		user := auth.CurrentUser(r.Context())

		err := h.posts.Create(r.Context(), title, body, user.ID)
		if err == nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		if msg, ok := flashMessage(err); ok {
			render(w, r, createTmpl, viewData{Flash: msg, Post: models.Post{Title: title, Body: body}})
			return
		}
		log.Error().Err(err).Msg("Failed to create post")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	render(w, r, createTmpl, viewData{})
}

// Update renders the edit form for a post the current user owns and applies
// the changes on POST. Missing posts are 404, another author's posts 403.
func (h *BlogHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	user := auth.CurrentUser(r.Context())

	if r.Method == http.MethodPost {
		title := r.FormValue("title")
		body := r.FormValue("body")

		err := h.posts.Update(r.Context(), id, title, body, user.ID)
		if err == nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		if msg, ok := flashMessage(err); ok {
			post, getErr := h.posts.Get(r.Context(), id, true, user.ID)
			if getErr != nil {
				writeServiceError(w, getErr)
				return
			}
			post.Title, post.Body = title, body
			render(w, r, updateTmpl, viewData{Flash: msg, Post: post})
			return
		}
		writeServiceError(w, err)
		return
	}

	post, err := h.posts.Get(r.Context(), id, true, user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	render(w, r, updateTmpl, viewData{Post: post})
}

// Delete removes a post the current user owns and returns to the index.
func (h *BlogHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := postID(r)
	if err != nil {
		http.NotFound(w, r)
		return
	}
	user := auth.CurrentUser(r.Context())

	if err := h.posts.Delete(r.Context(), id, user.ID); err != nil {
		writeServiceError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusFound)
}

// Hello is the plain smoke-test endpoint.
func Hello(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte("Hello, World!"))
}

func postID(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
}
