package jsonmap

import (
	"reflect"
	"unsafe"

	"github.com/davecgh/go-spew/spew"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/viant/jsonmap/descriptor"
	"github.com/viant/jsonmap/value"
)

// Mapper materializes typed go values from JSON text, it is immutable and safe for concurrent use
type Mapper struct {
	options Options
}

// New creates a mapper
func New(opts ...Option) *Mapper {
	return &Mapper{options: resolveOptions(opts)}
}

// Options returns mapper options
func (m *Mapper) Options() Options {
	return m.options
}

// Map decodes text and materializes *T for an object document or []*T for an array document,
// rType is T or *T for a struct type T
func (m *Mapper) Map(text string, rType reflect.Type) (interface{}, error) {
	shape := value.ClassifyShape(text)
	doc, err := value.Decode(text)
	if err != nil {
		return nil, newMapError(OpDecode, err)
	}
	if shape == value.ShapeArray {
		return m.mapArray(doc, rType)
	}
	return m.MapOne(doc, rType)
}

// MapValue materializes an already decoded document, dispatching on its kind
func (m *Mapper) MapValue(doc value.Value, rType reflect.Type) (interface{}, error) {
	if doc.Kind() == value.KindArray {
		return m.mapArray(doc, rType)
	}
	return m.MapOne(doc, rType)
}

// MapOne materializes a single *T from a JSON object
func (m *Mapper) MapOne(obj value.Value, rType reflect.Type) (interface{}, error) {
	descr, err := m.resolve(rType)
	if err != nil {
		return nil, err
	}
	if obj.Kind() != value.KindObject {
		return nil, newMapError(OpConvert, errors.Wrapf(ErrShapeMismatch, "expected object, got %s", obj.Kind()))
	}
	ptr := reflect.New(descr.Type)
	if err = m.populate(ptr.UnsafePointer(), descr, obj, 1); err != nil {
		return nil, newMapError(OpConvert, err)
	}
	result := ptr.Interface()
	m.trace(value.ShapeObject, descr.Type, 1, result)
	return result, nil
}

// MapInto populates caller supplied struct pointer from a JSON object, fields absent from obj keep their values,
// dest is left untouched when mapping fails
func (m *Mapper) MapInto(obj value.Value, dest interface{}) error {
	rValue := reflect.ValueOf(dest)
	if !rValue.IsValid() || rValue.Kind() != reflect.Ptr || rValue.IsNil() {
		return newMapError(OpAssign, errors.Wrapf(ErrReflection, "expected non nil struct pointer, got %T", dest))
	}
	descr, err := m.resolve(rValue.Type())
	if err != nil {
		return err
	}
	if obj.Kind() != value.KindObject {
		return newMapError(OpConvert, errors.Wrapf(ErrShapeMismatch, "expected object, got %s", obj.Kind()))
	}
	staged := reflect.New(descr.Type)
	staged.Elem().Set(rValue.Elem())
	if err = m.populate(staged.UnsafePointer(), descr, obj, 1); err != nil {
		return newMapError(OpConvert, err)
	}
	rValue.Elem().Set(staged.Elem())
	m.trace(value.ShapeObject, descr.Type, 1, dest)
	return nil
}

func (m *Mapper) mapArray(doc value.Value, rType reflect.Type) (interface{}, error) {
	descr, err := m.resolve(rType)
	if err != nil {
		return nil, err
	}
	if doc.Kind() != value.KindArray {
		return nil, newMapError(OpConvert, errors.Wrapf(ErrShapeMismatch, "expected array, got %s", doc.Kind()))
	}
	size := doc.Len()
	itemType := reflect.PtrTo(descr.Type)
	result := reflect.MakeSlice(reflect.SliceOf(itemType), size, size)
	for i := 0; i < size; i++ {
		item, _ := doc.Index(i)
		if item.Kind() != value.KindObject {
			err = errors.Wrapf(ErrShapeMismatch, "expected object, got %s", item.Kind())
			return nil, newMapError(OpConvert, atIndex(err, OpConvert, i))
		}
		ptr := reflect.New(descr.Type)
		if err = m.populate(ptr.UnsafePointer(), descr, item, 1); err != nil {
			return nil, newMapError(OpConvert, atIndex(err, OpConvert, i))
		}
		result.Index(i).Set(ptr)
	}
	ret := result.Interface()
	m.trace(value.ShapeArray, descr.Type, size, ret)
	return ret, nil
}

func (m *Mapper) resolve(rType reflect.Type) (*descriptor.Type, error) {
	descr, err := m.options.Resolver.Resolve(rType)
	if err != nil {
		return nil, newMapError(OpResolve, err)
	}
	return descr, nil
}

// populate assigns every field found in obj, declared name takes precedence over alias, null counts as absent
// for assignment but still flags presence
func (m *Mapper) populate(structPtr unsafe.Pointer, descr *descriptor.Type, obj value.Value, depth int) error {
	if depth > m.options.MaxDepth {
		return errors.Wrapf(ErrDepthLimit, "depth %d exceeds limit %d", depth, m.options.MaxDepth)
	}
	descr.Detach(structPtr)
	for _, field := range descr.Fields {
		key, item, ok := lookup(obj, field)
		if !ok {
			continue
		}
		if descr.Marker != nil {
			descr.Marker.Set(structPtr, field)
		}
		if item.IsNull() {
			continue
		}
		if err := m.convert(field.Pointer(structPtr), &field.Target, item, depth); err != nil {
			return atField(err, OpConvert, key)
		}
	}
	return nil
}

// lookup returns first non null value matching field keys, or null when keys are present with null only
func lookup(obj value.Value, field *descriptor.Field) (string, value.Value, bool) {
	nullKey := ""
	for _, key := range field.Keys() {
		item, ok := obj.Get(key)
		if !ok {
			continue
		}
		if !item.IsNull() {
			return key, item, true
		}
		if nullKey == "" {
			nullKey = key
		}
	}
	if nullKey != "" {
		return nullKey, value.Value{}, true
	}
	return "", value.Value{}, false
}

func (m *Mapper) trace(shape value.Shape, rType reflect.Type, count int, result interface{}) {
	if glog.V(2) {
		glog.Infof("jsonmap: mapped %s into %s, items: %d", shape, rType.String(), count)
	}
	if glog.V(4) {
		glog.Infof("jsonmap: result %s", spew.Sdump(result))
	}
}
