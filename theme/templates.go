package theme

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"

	"cssg/config"
)

// Values is a struct that holds variables we make available for template expansion
type Values struct {
	Context  string
	Theme    string
	ID       string
	Scheme   string
	Language string
	Date     string
	Ext      string
}

func expandTemplate(def *Definition, name config.TemplateFieldName, field string) (string, error) {
	funcMap := sprig.FuncMap()

	tmpl, err := template.New(string(name)).Funcs(funcMap).Parse(field)
	if err != nil {
		return "", fmt.Errorf("unable to parse template field %s: %w", name, err)
	}

	values := Values{
		Context:  string(name),
		Theme:    def.Name,
		ID:       def.ID,
		Scheme:   def.Scheme.String(),
		Language: def.Language,
		Date:     time.Now().Format("2006-01-02"),
		Ext:      outputExt,
	}

	buf := new(bytes.Buffer)
	if err := tmpl.Execute(buf, values); err != nil {
		return "", err
	}
	return buf.String(), nil
}
