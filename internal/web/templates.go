package web

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/mwilde/quill/internal/models"
)

//go:embed templates/*.html
var templatesFS embed.FS

// viewData is the payload handed to every template.
type viewData struct {
	User  *models.User
	Posts []models.Post
	Post  *models.Post
}

// Renderer holds the parsed template set.
type Renderer struct {
	tmpl *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"excerpt": excerpt,
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render executes the named template. Failures after headers are sent
// cannot be recovered, so they are only logged.
func (r *Renderer) Render(w http.ResponseWriter, name string, data any) {
	if data == nil {
		data = viewData{}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.tmpl.ExecuteTemplate(w, name+".html", data); err != nil {
		log.Printf("render %s: %v", name, err)
	}
}

// excerpt shortens post content for the home list.
func excerpt(s string) string {
	const max = 100
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + " ..."
}
