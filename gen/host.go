package gen

import (
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/Revolution1/bitfield"
)

const directivePrefix = "//bitfield:"

var (
	ErrTypeNotFound = errors.New("type not found")
	ErrNoStorage    = errors.New("no integer storage")
)

var integerTypes = map[string]bool{
	"int": true, "int8": true, "int16": true, "int32": true, "int64": true,
	"uint": true, "uint8": true, "uint16": true, "uint32": true, "uint64": true,
	"uintptr": true, "byte": true, "rune": true,
}

// Host is the type accessors are generated for.
type Host struct {
	Package string
	Name    string
	// Field is the storage field, empty when the type itself is an integer.
	Field   string
	Storage string
	Recv    string
	// Import is the name the generated file gives the runtime package.
	Import string
	// Flags declared with //bitfield: directives on the type.
	Flags []bitfield.Descriptor
	// Unresolved lists embedded types declared outside the package. Their
	// promoted members are unknown, so Generate refuses to run unless
	// AllowEmbedded is set.
	Unresolved    []string
	AllowEmbedded bool

	members map[string]struct{}
}

// HasMember reports whether the host already declares a field or method
// called name, directly or promoted from an embedded type.
func (h *Host) HasMember(name string) bool {
	_, ok := h.members[name]
	return ok
}

func (h *Host) Members() []string {
	out := make([]string, 0, len(h.members))
	for name := range h.members {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// pkgIndex holds the declarations of the scanned package.
type pkgIndex struct {
	name    string
	types   map[string]*ast.TypeSpec
	docs    map[string]*ast.CommentGroup
	methods map[string][]string
	recvs   map[string]string
	scope   map[string]struct{}
}

// Load parses the non-test Go files in dir, skipping the file named skip,
// and returns the host type called typeName. field picks the storage field
// of a struct; when empty the single integer field is used.
func Load(dir, typeName, field, skip string) (*Host, error) {
	files, err := parseDir(dir, skip)
	if err != nil {
		return nil, err
	}
	idx, err := indexPackage(dir, files)
	if err != nil {
		return nil, err
	}
	spec, ok := idx.types[typeName]
	if !ok {
		return nil, errors.Wrapf(ErrTypeNotFound, "%s in %s", typeName, dir)
	}
	if spec.Assign.IsValid() || spec.TypeParams != nil {
		return nil, errors.Wrapf(ErrNoStorage, "%s must be a defined, non-generic type", typeName)
	}
	h := &Host{Package: idx.name, Name: typeName, Recv: idx.recvs[typeName], members: make(map[string]struct{})}
	if err := h.findStorage(spec, field); err != nil {
		return nil, err
	}
	h.collectMembers(idx, spec)
	if h.Flags, err = parseDirectives(idx.docs[typeName]); err != nil {
		return nil, errors.Wrapf(err, "type %s", typeName)
	}
	if h.Recv == "" {
		h.Recv = strings.ToLower(typeName[:1])
	}
	h.Import = importName(idx.scope, h.Recv)
	log.WithFields(log.Fields{
		"type":       typeName,
		"package":    h.Package,
		"field":      h.Field,
		"storage":    h.Storage,
		"flags":      len(h.Flags),
		"unresolved": h.Unresolved,
	}).Debug("loaded host type")
	return h, nil
}

func parseDir(dir, skip string) ([]*ast.File, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.go"))
	if err != nil {
		return nil, err
	}
	fset := token.NewFileSet()
	var files []*ast.File
	for _, path := range paths {
		base := filepath.Base(path)
		if strings.HasSuffix(base, "_test.go") || base == skip {
			continue
		}
		f, err := parser.ParseFile(fset, path, nil, parser.ParseComments)
		if err != nil {
			return nil, errors.Wrap(err, "parse")
		}
		files = append(files, f)
	}
	if len(files) == 0 {
		return nil, errors.Errorf("no Go files in %s", dir)
	}
	return files, nil
}

func indexPackage(dir string, files []*ast.File) (*pkgIndex, error) {
	idx := &pkgIndex{
		types:   make(map[string]*ast.TypeSpec),
		docs:    make(map[string]*ast.CommentGroup),
		methods: make(map[string][]string),
		recvs:   make(map[string]string),
		scope:   make(map[string]struct{}),
	}
	for _, f := range files {
		if idx.name == "" {
			idx.name = f.Name.Name
		} else if idx.name != f.Name.Name {
			return nil, errors.Errorf("%s: found packages %s and %s", dir, idx.name, f.Name.Name)
		}
		for _, decl := range f.Decls {
			switch decl := decl.(type) {
			case *ast.GenDecl:
				for _, s := range decl.Specs {
					switch s := s.(type) {
					case *ast.TypeSpec:
						idx.types[s.Name.Name] = s
						idx.scope[s.Name.Name] = struct{}{}
						doc := s.Doc
						if doc == nil && len(decl.Specs) == 1 {
							doc = decl.Doc
						}
						idx.docs[s.Name.Name] = doc
					case *ast.ValueSpec:
						for _, n := range s.Names {
							idx.scope[n.Name] = struct{}{}
						}
					}
				}
			case *ast.FuncDecl:
				typeName, recv, ok := receiverOf(decl)
				if !ok {
					idx.scope[decl.Name.Name] = struct{}{}
					continue
				}
				idx.methods[typeName] = append(idx.methods[typeName], decl.Name.Name)
				if _, seen := idx.recvs[typeName]; !seen && recv != "" && recv != "_" {
					idx.recvs[typeName] = recv
				}
			}
		}
	}
	return idx, nil
}

// receiverOf returns the receiver type and variable name of a method.
func receiverOf(fn *ast.FuncDecl) (typeName, recv string, ok bool) {
	if fn.Recv == nil || len(fn.Recv.List) == 0 {
		return "", "", false
	}
	field := fn.Recv.List[0]
	typ := field.Type
	if star, ok := typ.(*ast.StarExpr); ok {
		typ = star.X
	}
	switch t := typ.(type) {
	case *ast.IndexExpr:
		typ = t.X
	case *ast.IndexListExpr:
		typ = t.X
	}
	ident, ok := typ.(*ast.Ident)
	if !ok {
		return "", "", false
	}
	if len(field.Names) > 0 {
		recv = field.Names[0].Name
	}
	return ident.Name, recv, true
}

// importName picks a name for the runtime import that nothing in the
// package scope or the receiver shadows.
func importName(scope map[string]struct{}, recv string) string {
	for i := 0; ; i++ {
		name := "bitfield"
		if i > 0 {
			name += strconv.Itoa(i)
		}
		if _, taken := scope[name]; !taken && name != recv {
			return name
		}
	}
}

func (h *Host) findStorage(spec *ast.TypeSpec, field string) error {
	switch t := spec.Type.(type) {
	case *ast.Ident:
		if !integerTypes[t.Name] {
			return errors.Wrapf(ErrNoStorage, "%s is a %s", h.Name, t.Name)
		}
		if field != "" {
			return errors.Wrapf(ErrNoStorage, "%s is not a struct, it has no field %s", h.Name, field)
		}
		h.Storage = t.Name
		return nil
	case *ast.StructType:
		var candidates []string
		for _, f := range t.Fields.List {
			typ := exprString(f.Type)
			for _, name := range fieldNames(f) {
				if field != "" && name == field {
					if builtin(typ) && !integerTypes[typ] {
						return errors.Wrapf(ErrNoStorage, "field %s.%s is a %s", h.Name, name, typ)
					}
					h.Field, h.Storage = name, typ
				}
				if field == "" && integerTypes[typ] {
					candidates = append(candidates, name)
					h.Storage = typ
				}
			}
		}
		if field != "" {
			if h.Field == "" {
				return errors.Wrapf(ErrNoStorage, "%s has no field %s", h.Name, field)
			}
			return nil
		}
		if len(candidates) != 1 {
			h.Storage = ""
			return errors.Wrapf(ErrNoStorage, "%s has %d integer fields, pick one with the field option", h.Name, len(candidates))
		}
		h.Field = candidates[0]
		return nil
	}
	return errors.Wrapf(ErrNoStorage, "%s is neither an integer nor a struct", h.Name)
}

// collectMembers records the methods and fields of the host, including
// everything promoted through embedded types declared in the package.
func (h *Host) collectMembers(idx *pkgIndex, spec *ast.TypeSpec) {
	seen := map[string]bool{spec.Name.Name: true}
	for _, m := range idx.methods[spec.Name.Name] {
		h.members[m] = struct{}{}
	}
	if st, ok := spec.Type.(*ast.StructType); ok {
		h.addFields(idx, st, seen)
	}
}

func (h *Host) addFields(idx *pkgIndex, st *ast.StructType, seen map[string]bool) {
	for _, f := range st.Fields.List {
		for _, name := range fieldNames(f) {
			h.members[name] = struct{}{}
		}
		if len(f.Names) == 0 {
			h.promote(idx, f.Type, seen, true)
		}
	}
}

// promote adds the members an embedded type contributes. Types that cannot
// be seen from this package end up in Unresolved.
func (h *Host) promote(idx *pkgIndex, e ast.Expr, seen map[string]bool, withMethods bool) {
	if star, ok := e.(*ast.StarExpr); ok {
		e = star.X
	}
	ident, ok := e.(*ast.Ident)
	if !ok {
		name := exprString(e)
		if name == "" {
			name = "embedded field"
		}
		h.Unresolved = append(h.Unresolved, name)
		return
	}
	spec, local := idx.types[ident.Name]
	if !local {
		switch {
		case ident.Name == "error":
			h.members["Error"] = struct{}{}
		case !builtin(ident.Name):
			h.Unresolved = append(h.Unresolved, ident.Name)
		}
		return
	}
	if seen[ident.Name] {
		return
	}
	seen[ident.Name] = true
	if withMethods || spec.Assign.IsValid() {
		for _, m := range idx.methods[ident.Name] {
			h.members[m] = struct{}{}
		}
	}
	switch t := spec.Type.(type) {
	case *ast.StructType:
		h.addFields(idx, t, seen)
	case *ast.InterfaceType:
		for _, m := range t.Methods.List {
			if len(m.Names) == 0 {
				h.promote(idx, m.Type, seen, true)
				continue
			}
			for _, n := range m.Names {
				h.members[n.Name] = struct{}{}
			}
		}
	case *ast.Ident, *ast.SelectorExpr, *ast.StarExpr:
		// type A B: the fields of B carry over, its methods do not
		h.promote(idx, t, seen, spec.Assign.IsValid())
	}
}

func fieldNames(f *ast.Field) []string {
	if len(f.Names) > 0 {
		names := make([]string, len(f.Names))
		for i, n := range f.Names {
			names[i] = n.Name
		}
		return names
	}
	// embedded
	typ := f.Type
	if star, ok := typ.(*ast.StarExpr); ok {
		typ = star.X
	}
	switch t := typ.(type) {
	case *ast.Ident:
		return []string{t.Name}
	case *ast.SelectorExpr:
		return []string{t.Sel.Name}
	case *ast.IndexExpr:
		return fieldNames(&ast.Field{Type: t.X})
	case *ast.IndexListExpr:
		return fieldNames(&ast.Field{Type: t.X})
	}
	return nil
}

// exprString renders simple type expressions; anything else comes back empty.
func exprString(e ast.Expr) string {
	switch t := e.(type) {
	case *ast.Ident:
		return t.Name
	case *ast.SelectorExpr:
		if x, ok := t.X.(*ast.Ident); ok {
			return x.Name + "." + t.Sel.Name
		}
	}
	return ""
}

func builtin(typ string) bool {
	switch typ {
	case "bool", "string", "float32", "float64", "complex64", "complex128", "error", "any", "":
		return true
	}
	return integerTypes[typ]
}

// parseDirectives reads lines of the form
//
//	//bitfield:ro Name [Alias] Pos
//	//bitfield:rw Name Setter [Alias AliasSetter] Pos
func parseDirectives(doc *ast.CommentGroup) ([]bitfield.Descriptor, error) {
	if doc == nil {
		return nil, nil
	}
	var descs []bitfield.Descriptor
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directivePrefix) {
			continue
		}
		fields := strings.Fields(strings.TrimPrefix(c.Text, directivePrefix))
		if len(fields) == 0 {
			return nil, errors.Errorf("empty directive %q", c.Text)
		}
		mode, err := bitfield.ParseMode(fields[0])
		if err != nil {
			return nil, errors.Wrapf(err, "directive %q", c.Text)
		}
		d, err := bitfield.ParseArgs(mode, fields[1:]...)
		if err != nil {
			return nil, errors.Wrapf(err, "directive %q", c.Text)
		}
		descs = append(descs, d)
	}
	return descs, nil
}
