package server

import (
	"html/template"
	"io"

	"github.com/hoklam-ng/proclaim/app/config"
	"github.com/labstack/echo/v4"
)

type TemplateRenderer struct {
	tmpl *template.Template
	conf *config.ProclaimConfig
}

func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	wrappedData := map[string]any{
		"InstanceName": t.conf.InstanceName,
		"Data":         data,
	}
	err := t.tmpl.ExecuteTemplate(w, name, wrappedData)
	if err != nil {
		c.Logger().Error(err)
		return err
	}
	return nil
}

func NewTemplateRenderer(conf *config.ProclaimConfig, assets *HashFS) *TemplateRenderer {
	funcMap := template.FuncMap{
		"asset": func(p string) string {
			return "/static/" + assets.FormatWithHash(p)
		},
	}
	return &TemplateRenderer{
		tmpl: MustParseTemplates(funcMap),
		conf: conf,
	}
}
