// Package view renders the customer and admin pages from the templates
// directory, with per-request language lookups wired into the template funcs.
package view

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"sync"

	"github.com/Davazzzz/carparts-request/internal/i18n"
)

var (
	baseDir  = "templates"
	tplCache = struct {
		sync.RWMutex
		m map[string]*template.Template
	}{m: map[string]*template.Template{}}
)

// SetBaseDir overrides the templates directory (tests point this at a
// temporary dir).
func SetBaseDir(dir string) {
	tplCache.Lock()
	defer tplCache.Unlock()
	baseDir = dir
	tplCache.m = map[string]*template.Template{}
}

func load(name string) (*template.Template, error) {
	tplCache.RLock()
	tpl, ok := tplCache.m[name]
	tplCache.RUnlock()
	if ok {
		return tpl, nil
	}

	tpl, err := template.New(filepath.Base(name)).Funcs(template.FuncMap{
		// placeholders, rebound per request in Render
		"t":    func(code string) string { return code },
		"lang": func() string { return i18n.DefaultLang },
	}).ParseFiles(filepath.Join(baseDir, name))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	tplCache.Lock()
	tplCache.m[name] = tpl
	tplCache.Unlock()
	return tpl, nil
}

// Render writes the named template with the request's language bound into
// the "t" and "lang" template funcs. The template is executed into a buffer
// first so a render failure never writes a partial page.
func Render(w http.ResponseWriter, r *http.Request, name string, data any) error {
	tpl, err := load(name)
	if err != nil {
		return err
	}

	lang := i18n.Lang(r.Context())
	bound, err := tpl.Clone()
	if err != nil {
		return fmt.Errorf("clone template %s: %w", name, err)
	}
	bound.Funcs(template.FuncMap{
		"t":    func(code string) string { return i18n.T(lang, code) },
		"lang": func() string { return lang },
	})

	var buf bytes.Buffer
	if err := bound.ExecuteTemplate(&buf, filepath.Base(name), data); err != nil {
		return fmt.Errorf("execute template %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err = buf.WriteTo(w)
	return err
}
