package render

import (
	"bytes"
	"fmt"
	"html/template"

	"go.uber.org/zap"
)

// Instance is one renderable component: a type string resolved against the
// registry and the props feeding its template.
type Instance struct {
	Type  string
	Props any
}

// Renderer executes component templates. Construction fails when any
// registered kind lacks a template, so a missing renderer is a startup
// error rather than a blank section in production.
type Renderer struct {
	tmpl *template.Template
	log  *zap.Logger
}

// NewRenderer validates the template set against the component registry.
func NewRenderer(tmpl *template.Template, log *zap.Logger) (*Renderer, error) {
	if log == nil {
		log = zap.NewNop()
	}
	for _, kind := range Kinds() {
		if tmpl.Lookup(kind.TemplateName()) == nil {
			return nil, fmt.Errorf("render: no template %q for component %s", kind.TemplateName(), kind)
		}
	}
	return &Renderer{tmpl: tmpl, log: log}, nil
}

// Component renders a single instance. An unknown type is a logged no-op
// with zero output, preserving the content contract at the boundary.
func (r *Renderer) Component(inst Instance) template.HTML {
	kind, ok := ParseKind(inst.Type)
	if !ok {
		r.log.Warn("unknown component type", zap.String("type", inst.Type))
		return ""
	}
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, kind.TemplateName(), inst.Props); err != nil {
		r.log.Error("render component", zap.String("type", kind.String()), zap.Error(err))
		return ""
	}
	return template.HTML(buf.String())
}

// All renders an ordered instance list into HTML blocks, preserving order.
func (r *Renderer) All(insts []Instance) []template.HTML {
	out := make([]template.HTML, 0, len(insts))
	for _, inst := range insts {
		if html := r.Component(inst); html != "" {
			out = append(out, html)
		}
	}
	return out
}
