// Package annotate extracts @name field annotations from Go source and renders registration code
package annotate

import (
	"bytes"
	"go/ast"
	"go/format"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/pkg/errors"
	"github.com/viant/jsonmap/annotation"
	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages
const LoadMode = packages.NeedName | packages.NeedFiles | packages.NeedSyntax

// DefaultOutput is the generated file name
const DefaultOutput = "annotation_gen.go"

// Field represents an annotated struct field
type Field struct {
	Type  string
	Name  string
	Text  string
	Alias string
}

// Package represents annotated fields of a single package
type Package struct {
	Name   string
	Fields []Field
}

// Load loads package in dir and scans its syntax for annotated fields
func Load(dir string) (*Package, error) {
	cfg := &packages.Config{Mode: LoadMode, Dir: dir}
	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load package %s", dir)
	}
	if len(pkgs) != 1 {
		return nil, errors.Errorf("expected single package in %s, got %d", dir, len(pkgs))
	}
	pkg := pkgs[0]
	if len(pkg.Errors) > 0 {
		return nil, errors.Errorf("package errors: %v", pkg.Errors)
	}
	return &Package{Name: pkg.Name, Fields: Scan(pkg.Syntax...)}, nil
}

// Scan returns annotated struct fields in declaration order, doc comment takes precedence over line comment
func Scan(files ...*ast.File) []Field {
	var ret []Field
	for _, file := range files {
		for _, decl := range file.Decls {
			genDecl, ok := decl.(*ast.GenDecl)
			if !ok {
				continue
			}
			for _, spec := range genDecl.Specs {
				typeSpec, ok := spec.(*ast.TypeSpec)
				if !ok || typeSpec.TypeParams != nil {
					continue
				}
				structType, ok := typeSpec.Type.(*ast.StructType)
				if !ok {
					continue
				}
				ret = append(ret, scanStruct(typeSpec.Name.Name, structType)...)
			}
		}
	}
	return ret
}

func scanStruct(typeName string, structType *ast.StructType) []Field {
	var ret []Field
	for _, field := range structType.Fields.List {
		text, alias, ok := fieldAnnotation(field)
		if !ok {
			continue
		}
		for _, name := range field.Names {
			if !name.IsExported() {
				continue
			}
			ret = append(ret, Field{Type: typeName, Name: name.Name, Text: text, Alias: alias})
		}
	}
	return ret
}

func fieldAnnotation(field *ast.Field) (string, string, bool) {
	for _, group := range []*ast.CommentGroup{field.Doc, field.Comment} {
		if group == nil {
			continue
		}
		text := strings.TrimSpace(group.Text())
		if alias, ok := annotation.Alias(text); ok {
			return text, alias, true
		}
	}
	return "", "", false
}

func quote(text string) string {
	return strconv.Quote(text)
}

var registerTemplate = template.Must(template.New("register").Funcs(template.FuncMap{
	"quote": quote,
}).Parse(`// Code generated by annotgen. DO NOT EDIT.

package {{.Name}}

import (
	"reflect"

	"github.com/viant/jsonmap/annotation"
)

func init() {
{{range .Fields}}	annotation.Register(reflect.TypeOf({{.Type}}{}), {{quote .Name}}, {{quote .Text}})
{{end}}}
`))

// Render renders gofmt'ed registration source
func Render(pkg *Package) ([]byte, error) {
	if pkg.Name == "" {
		return nil, errors.New("package name was empty")
	}
	var buf bytes.Buffer
	if err := registerTemplate.Execute(&buf, pkg); err != nil {
		return nil, errors.Wrap(err, "executing template")
	}
	formatted, err := format.Source(buf.Bytes())
	if err != nil {
		return buf.Bytes(), errors.Wrap(err, "formatting code")
	}
	return formatted, nil
}

// Aliases returns type.field to alias mapping, used for reporting
func (p *Package) Aliases() []string {
	ret := make([]string, 0, len(p.Fields))
	for _, field := range p.Fields {
		ret = append(ret, field.Type+"."+field.Name+" -> "+field.Alias)
	}
	sort.Strings(ret)
	return ret
}
