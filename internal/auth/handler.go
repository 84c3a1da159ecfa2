package auth

import (
	"context"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/mwilde/quill/internal/models"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, username, hashedPw string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}

// Renderer renders a named view. Satisfied by web.Renderer.
type Renderer interface {
	Render(w http.ResponseWriter, name string, data any)
}

// Handler holds auth-related HTTP handlers.
type Handler struct {
	users    UserStore
	sessions Sessions
	cookies  *CookieCodec
	views    Renderer
}

func NewHandler(users UserStore, sessions Sessions, cookies *CookieCodec, views Renderer) *Handler {
	return &Handler{users: users, sessions: sessions, cookies: cookies, views: views}
}

// RegisterForm renders the registration form.
func (h *Handler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, "register", nil)
}

// Register creates a new user and logs them in immediately. Any failure
// sends the visitor back to the registration form with no user created.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	creds := models.Credentials{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	}
	if creds.Username == "" || creds.Password == "" {
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("bcrypt: %v", err)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	user, err := h.users.CreateUser(r.Context(), creds.Username, string(hashed))
	if err != nil {
		log.Printf("register %q: %v", creds.Username, err)
		http.Redirect(w, r, "/register", http.StatusSeeOther)
		return
	}

	h.startSession(w, r, user.ID.Hex())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// LoginForm renders the login form.
func (h *Handler) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, "login", nil)
}

// Login verifies the credentials and establishes a session. A mismatch
// redirects back to the login form with no detail leaked.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	user, err := h.users.GetUserByUsername(r.Context(), username)
	if err != nil || user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	h.startSession(w, r, user.ID.Hex())
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Logout destroys the current session and redirects home. A failure
// while clearing the session surfaces as a 500 instead of silently
// leaving the session live.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if sid := h.cookies.Read(r); sid != "" {
		if err := h.sessions.Delete(r.Context(), sid); err != nil {
			log.Printf("logout: %v", err)
			http.Error(w, "Server Error", http.StatusInternalServerError)
			return
		}
	}
	h.cookies.Clear(w)
	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *Handler) startSession(w http.ResponseWriter, r *http.Request, userID string) {
	sid, err := h.sessions.Create(r.Context(), userID)
	if err != nil {
		log.Printf("session create: %v", err)
		return
	}
	if err := h.cookies.Set(w, sid); err != nil {
		log.Printf("session cookie: %v", err)
	}
}
