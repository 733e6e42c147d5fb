package descriptor

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/viant/jsonmap/annotation"
	"github.com/viant/jsonmap/value"
	"github.com/viant/tagly/format"
	"github.com/viant/tagly/format/text"
	ftime "github.com/viant/tagly/format/time"
	"github.com/viant/xunsafe"
)

// ErrReflection is returned when a type can not be introspected or instantiated
var ErrReflection = errors.New("reflection failure")

var (
	timeType  = reflect.TypeOf(time.Time{})
	valueType = reflect.TypeOf(value.Value{})
)

type cacheKey struct {
	rType      reflect.Type
	caseFormat text.CaseFormat
}

var cache sync.Map // map[cacheKey]*Type

// Resolver builds type descriptors, descriptors are cached process wide per type and case format
type Resolver struct {
	caseFormat text.CaseFormat
}

var defaultResolver = NewResolver()

// Resolve resolves descriptor with default resolver
func Resolve(rType reflect.Type) (*Type, error) {
	return defaultResolver.Resolve(rType)
}

// NewResolver creates a resolver
func NewResolver(opts ...Option) *Resolver {
	ret := &Resolver{caseFormat: text.CaseFormatLowerCamel}
	Options(opts).Apply(ret)
	return ret
}

// CaseFormat returns case format used to derive declared names
func (r *Resolver) CaseFormat() text.CaseFormat {
	return r.caseFormat
}

// Resolve returns descriptor for supplied struct type or pointer to struct type
func (r *Resolver) Resolve(rType reflect.Type) (*Type, error) {
	if rType == nil {
		return nil, errors.Wrap(ErrReflection, "nil type")
	}
	if rType.Kind() == reflect.Ptr {
		rType = rType.Elem()
	}
	if rType.Kind() != reflect.Struct || rType == timeType || rType == valueType {
		return nil, errors.Wrapf(ErrReflection, "%s is not a mappable struct type", rType.String())
	}
	return r.resolve(rType, map[reflect.Type]bool{})
}

func (r *Resolver) resolve(rType reflect.Type, seen map[reflect.Type]bool) (*Type, error) {
	key := cacheKey{rType: rType, caseFormat: r.caseFormat}
	if v, ok := cache.Load(key); ok {
		return v.(*Type), nil
	}
	if seen[rType] {
		return nil, errors.Wrapf(ErrReflection, "recursive type %s", rType.String())
	}
	seen[rType] = true
	defer delete(seen, rType)

	compiled := &Type{Type: rType, index: map[string]int{}}
	if err := r.collect(compiled, rType, nil, seen); err != nil {
		return nil, err
	}
	if err := r.mark(compiled); err != nil {
		return nil, err
	}
	actual, loaded := cache.LoadOrStore(key, compiled)
	if glog.V(3) {
		glog.Infof("descriptor: resolved %s with %d fields (cached: %v)", rType.String(), len(compiled.Fields), loaded)
	}
	return actual.(*Type), nil
}

func (r *Resolver) collect(owner *Type, rType reflect.Type, parent []*xunsafe.Field, seen map[reflect.Type]bool) error {
	for i := 0; i < rType.NumField(); i++ {
		sf := rType.Field(i)
		if sf.PkgPath != "" || IsSetMarker(sf.Tag) {
			continue
		}
		name, fTag, err := r.declaredName(sf)
		if err != nil {
			return err
		}
		if fTag.Ignore {
			continue
		}
		chain := append(append([]*xunsafe.Field{}, parent...), xunsafe.NewField(sf))
		if sf.Anonymous && !hasExplicitName(sf) {
			embedded := sf.Type
			if embedded.Kind() == reflect.Ptr {
				embedded = embedded.Elem()
			}
			if embedded.Kind() == reflect.Struct && embedded != timeType && embedded != valueType {
				if sf.Type.Kind() == reflect.Ptr {
					owner.shared = true
				}
				if seen[embedded] {
					return errors.Wrapf(ErrReflection, "recursive embedded type %s", embedded.String())
				}
				seen[embedded] = true
				err := r.collect(owner, embedded, chain, seen)
				delete(seen, embedded)
				if err != nil {
					return err
				}
				continue
			}
		}
		target, err := r.target(sf.Type, seen)
		if err != nil {
			return errors.WithMessagef(err, "field %s.%s", rType.Name(), sf.Name)
		}
		target.setLayout(timeLayout(fTag))
		field := &Field{
			Name:   name,
			GoName: sf.Name,
			Index:  len(owner.Fields),
			Target: *target,
			chain:  chain,
		}
		if doc, ok := annotation.Field(rType, sf); ok {
			field.Alias, _ = annotation.Alias(doc)
		}
		owner.index[sf.Name] = field.Index
		owner.Fields = append(owner.Fields, field)
	}
	return nil
}

// mark binds presence holder declared directly on the owner type
func (r *Resolver) mark(owner *Type) error {
	rType := owner.Type
	for i := 0; i < rType.NumField(); i++ {
		sf := rType.Field(i)
		if sf.PkgPath != "" || !IsSetMarker(sf.Tag) {
			continue
		}
		if owner.Marker != nil {
			return errors.Wrapf(ErrReflection, "%s declares more than one presence marker", rType.String())
		}
		marker, err := newMarker(owner, sf)
		if err != nil {
			return err
		}
		owner.Marker = marker
		if sf.Type.Kind() == reflect.Ptr {
			owner.shared = true
		}
	}
	return nil
}

func (r *Resolver) target(rType reflect.Type, seen map[reflect.Type]bool) (*Target, error) {
	ret := &Target{Type: rType, Base: rType}
	if rType.Kind() == reflect.Ptr {
		ret.Ptr = true
		ret.Base = rType.Elem()
		if ret.Base.Kind() == reflect.Ptr {
			return nil, errors.Wrapf(ErrReflection, "unsupported multi level pointer %s", rType.String())
		}
	}
	base := ret.Base
	switch base {
	case timeType:
		ret.Kind = KindTemporal
		return ret, nil
	case valueType:
		ret.Kind = KindValue
		return ret, nil
	}
	switch base.Kind() {
	case reflect.Bool:
		ret.Kind = KindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		ret.Kind = KindInt
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		ret.Kind = KindUint
	case reflect.Float32, reflect.Float64:
		ret.Kind = KindFloat
	case reflect.String:
		ret.Kind = KindString
	case reflect.Interface:
		if base.NumMethod() > 0 {
			return nil, errors.Wrapf(ErrReflection, "unsupported interface type %s", base.String())
		}
		ret.Kind = KindAny
	case reflect.Slice, reflect.Array:
		elem, err := r.target(base.Elem(), seen)
		if err != nil {
			return nil, err
		}
		ret.Kind = KindArray
		ret.Elem = elem
	case reflect.Map:
		if base.Key().Kind() != reflect.String {
			return nil, errors.Wrapf(ErrReflection, "unsupported map key type %s", base.Key().String())
		}
		elem, err := r.target(base.Elem(), seen)
		if err != nil {
			return nil, err
		}
		ret.Kind = KindObject
		ret.Elem = elem
	case reflect.Struct:
		nested, err := r.resolve(base, seen)
		if err != nil {
			return nil, err
		}
		ret.Kind = KindNested
		ret.Nested = nested
	default:
		return nil, errors.Wrapf(ErrReflection, "unsupported type %s", rType.String())
	}
	return ret, nil
}

// declaredName resolves field JSON key: explicit json name, then format tag name or case, then resolver case format
func (r *Resolver) declaredName(sf reflect.StructField) (string, *format.Tag, error) {
	fTag, err := format.Parse(sf.Tag)
	if err != nil {
		return "", nil, errors.Wrapf(ErrReflection, "invalid format tag on %s: %v", sf.Name, err)
	}
	if fTag == nil {
		fTag = &format.Tag{}
	}
	if jsonTag, ok := sf.Tag.Lookup("json"); ok {
		name := strings.Split(jsonTag, ",")[0]
		if name == "-" && !strings.Contains(jsonTag, ",") {
			fTag.Ignore = true
			return "", fTag, nil
		}
		if name != "" {
			return name, fTag, nil
		}
	}
	if fTag.Name != "" || fTag.CaseFormat != "" {
		tag := &format.Tag{Name: fTag.Name, CaseFormat: fTag.CaseFormat}
		if tag.Name == "" {
			tag.Name = sf.Name
		}
		return tag.CaseFormatName(""), fTag, nil
	}
	return r.formatName(sf.Name), fTag, nil
}

func timeLayout(tag *format.Tag) string {
	if tag.TimeLayout != "" {
		return tag.TimeLayout
	}
	if tag.DateFormat != "" {
		return ftime.DateFormatToTimeLayout(tag.DateFormat)
	}
	return ""
}

func (r *Resolver) formatName(goName string) string {
	if !r.caseFormat.IsDefined() {
		return goName
	}
	if goName == "ID" {
		switch r.caseFormat {
		case text.CaseFormatLower, text.CaseFormatLowerCamel, text.CaseFormatLowerUnderscore:
			return "id"
		}
	}
	src := text.DetectCaseFormat(goName)
	if !src.IsDefined() {
		src = text.CaseFormatUpperCamel
	}
	return src.Format(goName, r.caseFormat)
}

func hasExplicitName(sf reflect.StructField) bool {
	name := strings.Split(sf.Tag.Get("json"), ",")[0]
	return name != "" && name != "-"
}
