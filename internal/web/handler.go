package web

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mwilde/quill/internal/middleware"
	"github.com/mwilde/quill/internal/models"
	"github.com/mwilde/quill/internal/store"
)

// PostStore defines the interface for post persistence.
type PostStore interface {
	Insert(ctx context.Context, post *models.Post) (string, error)
	List(ctx context.Context) ([]models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, id, title, content string) error
	Delete(ctx context.Context, id string) error
}

// Handler holds the post HTTP handlers.
type Handler struct {
	posts PostStore
	views *Renderer
}

func NewHandler(posts PostStore, views *Renderer) *Handler {
	return &Handler{posts: posts, views: views}
}

// Home lists all posts. The current identity rides along so the view
// can decide whether to show compose and edit affordances.
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		log.Printf("list posts: %v", err)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}
	h.views.Render(w, "home", viewData{
		User:  middleware.UserFrom(r.Context()),
		Posts: posts,
	})
}

// ComposeForm renders the compose form. The route gates it behind
// RequireAuth; the form itself is identical for every author.
func (h *Handler) ComposeForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, "compose", viewData{User: middleware.UserFrom(r.Context())})
}

// Compose persists a new post and redirects home.
func (h *Handler) Compose(w http.ResponseWriter, r *http.Request) {
	post := &models.Post{
		Title:   r.PostFormValue("postTitle"),
		Content: r.PostFormValue("postBody"),
	}
	if _, err := h.posts.Insert(r.Context(), post); err != nil {
		log.Printf("save post: %v", err)
		http.Error(w, "Failed to save post.", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Show renders a single post, or 404 when the id is malformed or
// matches nothing.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "postID")
	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			http.Error(w, "Post not found", http.StatusNotFound)
			return
		}
		log.Printf("get post %s: %v", id, err)
		http.Error(w, "Server Error", http.StatusInternalServerError)
		return
	}
	h.views.Render(w, "post", viewData{
		User: middleware.UserFrom(r.Context()),
		Post: post,
	})
}

// EditForm renders the edit form prefilled with the post.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	post, err := h.posts.GetByID(r.Context(), id)
	if err != nil {
		http.Error(w, "Post not found", http.StatusNotFound)
		return
	}
	h.views.Render(w, "edit", viewData{
		User: middleware.UserFrom(r.Context()),
		Post: post,
	})
}

// Edit overwrites the post's title and content in place.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	err := h.posts.Update(r.Context(), id,
		r.PostFormValue("postTitle"), r.PostFormValue("postBody"))
	if err != nil {
		log.Printf("update post %s: %v", id, err)
		http.Error(w, "Update failed.", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Delete removes the post.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.posts.Delete(r.Context(), id); err != nil {
		log.Printf("delete post %s: %v", id, err)
		http.Error(w, "Delete failed.", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
