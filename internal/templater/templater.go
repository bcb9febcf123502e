// Package templater renders the skeleton of new posts.
package templater

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/template"
	"time"
)

//go:embed templates
var embeddedTemplates embed.FS

// DefaultTemplate is used when no template is named.
const DefaultTemplate = "post"

// PostData is passed to templates when rendering.
type PostData struct {
	ID    string
	Title string
	Date  string
	Tags  []string
}

// NewPostData fills the ID and date from now.
func NewPostData(title string, tags []string, now time.Time) PostData {
	now = now.UTC()
	return PostData{
		ID:    now.Format("20060102150405"),
		Title: title,
		Date:  now.Format("2006-01-02"),
		Tags:  append([]string{}, tags...),
	}
}

var funcs = template.FuncMap{
	"quote": strconv.Quote,
	"join":  strings.Join,
}

// Templater manages a collection of templates.
type Templater struct {
	templates map[string]string
}

// New loads the embedded templates. Templates in userDir with a .tmpl
// extension take precedence over embedded ones of the same name; a missing
// userDir is ignored.
func New(userDir string) (*Templater, error) {
	templates := make(map[string]string)

	if userDir != "" {
		if err := loadDir(templates, os.DirFS(userDir)); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load templates from %s: %w", userDir, err)
		}
	}

	embedded, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return nil, err
	}
	if err := loadDir(templates, embedded); err != nil {
		return nil, err
	}

	return &Templater{templates: templates}, nil
}

// Names lists the available templates in sorted order.
func (t *Templater) Names() []string {
	names := make([]string, 0, len(t.templates))
	for name := range t.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute renders the named template with data.
func (t *Templater) Execute(name string, data PostData) (string, error) {
	if name == "" {
		name = DefaultTemplate
	}
	content, ok := t.templates[name]
	if !ok {
		return "", fmt.Errorf("template %q not found (available: %s)", name, strings.Join(t.Names(), ", "))
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(content)
	if err != nil {
		return "", fmt.Errorf("parse template %q: %w", name, err)
	}

	var rendered bytes.Buffer
	if err := tmpl.Execute(&rendered, data); err != nil {
		return "", fmt.Errorf("render template %q: %w", name, err)
	}
	return rendered.String(), nil
}

func loadDir(templates map[string]string, fsys fs.FS) error {
	return fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ".tmpl" {
			return nil
		}

		name := strings.TrimSuffix(d.Name(), ".tmpl")
		if _, exists := templates[name]; exists {
			return nil
		}
		data, err := fs.ReadFile(fsys, path)
		if err != nil {
			return err
		}
		templates[name] = string(data)
		return nil
	})
}
