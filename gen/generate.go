package gen

import (
	"bytes"
	"go/format"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Revolution1/bitfield"
)

const runtimePath = "github.com/Revolution1/bitfield"

// ErrUnresolvedEmbed is returned when the host embeds types whose members
// cannot be checked for collisions.
var ErrUnresolvedEmbed = errors.New("embedded type declared outside the package")

var fileTmpl = template.Must(template.New("file").Parse(`// Code generated by bitfield; DO NOT EDIT.

package {{.Package}}

import {{if ne .Import "bitfield"}}{{.Import}} {{end}}"` + runtimePath + `"
{{range .Methods}}{{if .Setter}}
// {{.Name}} sets bit {{.Pos}} to v.
func ({{$.Recv}} *{{$.Type}}) {{.Name}}(v bool) {
	{{$.SetSlot}} = {{$.Import}}.Assign({{$.SetSlot}}, {{.Pos}}, v)
}
{{else}}
// {{.Name}} reports whether bit {{.Pos}} is set.
func ({{$.Recv}} {{$.Type}}) {{.Name}}() bool {
	return {{$.Import}}.Has({{$.GetSlot}}, {{.Pos}})
}
{{end}}{{end}}`))

type method struct {
	Name   string
	Pos    uint
	Setter bool
}

type fileData struct {
	Package string
	Type    string
	Recv    string
	Import  string
	GetSlot string
	SetSlot string
	Methods []method
}

// OutputName is the default name of the generated file for typeName.
func OutputName(typeName string) string {
	return strings.ToLower(typeName) + "_bitfield.go"
}

// Generate renders the accessors of descs as methods on h. Every name must
// be unique and must not clash with a field or method h already has,
// including promoted ones.
func Generate(h *Host, descs []bitfield.Descriptor) ([]byte, error) {
	if len(h.Unresolved) > 0 && !h.AllowEmbedded {
		return nil, errors.Wrapf(ErrUnresolvedEmbed, "%s embeds %s", h.Name, strings.Join(h.Unresolved, ", "))
	}
	data := fileData{Package: h.Package, Type: h.Name, Recv: h.Recv, Import: h.Import}
	if data.Import == "" {
		data.Import = "bitfield"
	}
	if h.Field == "" {
		data.GetSlot, data.SetSlot = h.Recv, "*"+h.Recv
	} else {
		data.GetSlot = h.Recv + "." + h.Field
		data.SetSlot = data.GetSlot
	}

	if len(descs) == 0 {
		return nil, errors.Errorf("no flags declared for %s", h.Name)
	}
	seen := make(map[string]struct{})
	for _, d := range descs {
		if err := d.Validate(); err != nil {
			return nil, errors.Wrapf(err, "type %s", h.Name)
		}
		for _, name := range d.Names() {
			if _, ok := seen[name]; ok || h.HasMember(name) {
				return nil, errors.Wrapf(bitfield.ErrNameCollision, "%s.%s", h.Name, name)
			}
			seen[name] = struct{}{}
		}
		for _, name := range d.Getters() {
			data.Methods = append(data.Methods, method{Name: name, Pos: d.Pos})
		}
		for _, name := range d.Setters() {
			data.Methods = append(data.Methods, method{Name: name, Pos: d.Pos, Setter: true})
		}
	}

	var buf bytes.Buffer
	if err := fileTmpl.Execute(&buf, data); err != nil {
		return nil, errors.Wrap(err, "execute template")
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, errors.Wrapf(err, "format generated code for %s", h.Name)
	}
	log.WithField("type", h.Name).Debugf("generated %d accessors", len(data.Methods))
	return src, nil
}
