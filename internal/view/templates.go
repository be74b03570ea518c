package view

import (
	"bytes"
	"fmt"
	"html"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/aspire-executive/frontdesk/internal/static"
	"github.com/aspire-executive/frontdesk/internal/widget"
)

// Site holds values shared by every page.
type Site struct {
	Name       string
	Email      string
	LogoURL    string
	BookingURL string
	DemoNumber string
	// BackendURL prefixes the contact endpoint in the form; empty means same origin.
	BackendURL string
}

// DefaultSite returns the Aspire Executive Solutions defaults.
func DefaultSite() Site {
	return Site{
		Name:       "Aspire Executive Solutions",
		Email:      "info@aspireexecutive.com.au",
		LogoURL:    "https://raw.githubusercontent.com/scottyowen4683/Aspirereception/refs/heads/feature/ai-receptionist/frontend/aspire.png",
		BookingURL: "https://calendly.com/scott-owen-aspire/ai-receptionist-demo",
	}
}

// BackendOrigin returns the scheme://host of BackendURL, or "" when the form
// posts to the serving origin.
func (s Site) BackendOrigin() string {
	u, err := url.Parse(s.BackendURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

// TemplateData contains values passed to a page.
type TemplateData struct {
	Title   string
	Site    Site
	Scripts []widget.Script
}

// Engine renders the landing pages.
type Engine struct {
	pages map[string]*template.Template
	site  Site

	mu      sync.RWMutex
	scripts []widget.Script
}

// NewEngine parses the embedded templates.
func NewEngine(site Site) (*Engine, error) {
	site.BackendURL = strings.TrimRight(site.BackendURL, "/")

	funcMap := template.FuncMap{
		"scriptTag": scriptTag,
	}

	base, err := template.New("root").Funcs(funcMap).ParseFS(static.Templates,
		"templates/layouts/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	pageFiles, err := fs.Glob(static.Templates, "templates/pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, file := range pageFiles {
		tpl, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts: %w", err)
		}
		if _, err := tpl.ParseFS(static.Templates, file); err != nil {
			return nil, fmt.Errorf("parse %s: %w", file, err)
		}
		pages[strings.TrimSuffix(path.Base(file), ".html")] = tpl
	}

	return &Engine{pages: pages, site: site}, nil
}

// AddScript registers a script for every page. A script whose ID is already
// registered is ignored; it reports whether the script was added.
func (e *Engine) AddScript(s widget.Script) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, existing := range e.scripts {
		if existing.ID == s.ID {
			return false
		}
	}
	e.scripts = append(e.scripts, s)
	return true
}

// Site returns the values shared by every page.
func (e *Engine) Site() Site {
	return e.site
}

// Scripts returns the registered scripts.
func (e *Engine) Scripts() []widget.Script {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]widget.Script(nil), e.scripts...)
}

// Render executes a page by name (file name without extension).
func (e *Engine) Render(w http.ResponseWriter, page, title string) error {
	if e == nil {
		return fmt.Errorf("template engine not initialised")
	}
	tpl, ok := e.pages[page]
	if !ok {
		return fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	data := TemplateData{Title: title, Site: e.site, Scripts: e.Scripts()}
	if err := tpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := buf.WriteTo(w)
	return err
}

// scriptTag renders an external script element with escaped attributes.
func scriptTag(s widget.Script) template.HTML {
	var b strings.Builder
	b.WriteString(`<script id="`)
	b.WriteString(html.EscapeString(s.ID))
	b.WriteString(`" src="`)
	b.WriteString(html.EscapeString(s.Src))
	b.WriteString(`"`)

	keys := make([]string, 0, len(s.Attrs))
	for k := range s.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(" ")
		b.WriteString(html.EscapeString(k))
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(s.Attrs[k]))
		b.WriteString(`"`)
	}
	b.WriteString("></script>")
	return template.HTML(b.String())
}
