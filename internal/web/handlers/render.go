package handlers

import (
	"embed"
	"errors"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/jmehl/goblog/internal/auth"
	"github.com/jmehl/goblog/internal/models"
	"github.com/jmehl/goblog/internal/services"
)

//go:embed templates
var templateFS embed.FS

// Page templates. Each page is parsed together with the base layout and
// rendered through its "base" entry point.
var (
	registerTmpl = parsePage("auth/register.html")
	loginTmpl    = parsePage("auth/login.html")
	indexTmpl    = parsePage("blog/index.html")
	createTmpl   = parsePage("blog/create.html")
	updateTmpl   = parsePage("blog/update.html")
)

func parsePage(page string) *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/"+page))
}

// viewData is what every template receives: the logged-in user for the nav,
// a one-shot flash message, and the page payload.
type viewData struct {
	User  *models.User
	Flash string
	Post  models.Post
	Posts []models.Post
}

func render(w http.ResponseWriter, r *http.Request, tmpl *template.Template, data viewData) {
	data.User = auth.CurrentUser(r.Context())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		log.Error().Err(err).Str("template", tmpl.Name()).Msg("Failed to render template")
	}
}

// flashMessage extracts the user-visible message from validation and
// conflict errors. ok is false for everything else.
func flashMessage(err error) (msg string, ok bool) {
	var ve *services.ValidationError
	if errors.As(err, &ve) {
		return ve.Message, true
	}
	var ce *services.ConflictError
	if errors.As(err, &ce) {
		return ce.Message, true
	}
	return "", false
}

// writeServiceError maps service errors onto HTTP status codes.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
	default:
		log.Error().Err(err).Msg("Unexpected service error")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
