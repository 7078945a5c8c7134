package webserver

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/pricingexcellence/pricing/internal/catalog"
	"github.com/pricingexcellence/pricing/internal/render"
)

var layout = template.Must(template.New("layout").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}} | Pricing Excellence</title>
<style>
body { font-family: system-ui, sans-serif; max-width: 52rem; margin: 2rem auto; padding: 0 1rem; line-height: 1.5; color: #1f2937; }
table { border-collapse: collapse; width: 100%; }
th, td { border: 1px solid #e5e7eb; padding: .4rem .6rem; text-align: left; }
nav a { margin-right: 1rem; }
</style>
</head>
<body>
<nav><a href="/">Pricing models</a><a href="/api/questions">API</a></nav>
<main>
{{.Body}}
</main>
</body>
</html>
`))

type pageData struct {
	Title string
	Body  template.HTML
}

type pages struct {
	catalog *catalog.Catalog
}

func (p *pages) index(w http.ResponseWriter, _ *http.Request) {
	md, err := render.CatalogMarkdown(p.catalog.All())
	if err != nil {
		pageError(w, err)
		return
	}
	writePage(w, http.StatusOK, md)
}

func (p *pages) model(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	m, ok := p.catalog.Get(id)
	if !ok {
		p.notFound(w, r)
		return
	}
	// Aliases redirect to the canonical page.
	if m.ID != id {
		http.Redirect(w, r, m.Link(), http.StatusMovedPermanently)
		return
	}

	md, err := render.ModelMarkdown(m)
	if err != nil {
		pageError(w, err)
		return
	}
	writePage(w, http.StatusOK, md)
}

func (p *pages) notFound(w http.ResponseWriter, r *http.Request) {
	writePage(w, http.StatusNotFound, fmt.Sprintf("# Not found\n\nNo page at `%s`. See the [pricing models](/).\n", r.URL.Path))
}

func writePage(w http.ResponseWriter, status int, md string) {
	body, err := render.HTML(md)
	if err != nil {
		pageError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := layout.Execute(&buf, pageData{Title: render.Title(md), Body: template.HTML(body)}); err != nil { //nolint:gosec // goldmark escapes raw HTML
		pageError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes()) //nolint:errcheck
}

func pageError(w http.ResponseWriter, err error) {
	slog.Error("rendering page", "error", err)
	http.Error(w, "internal server error", http.StatusInternalServerError)
}
