package jsonmap

import (
	"reflect"

	"github.com/pkg/errors"
	"github.com/viant/jsonmap/value"
)

var defaultMapper = New()

// Default returns shared mapper with default options
func Default() *Mapper {
	return defaultMapper
}

func mapperFor(opts []Option) *Mapper {
	if len(opts) == 0 {
		return defaultMapper
	}
	return New(opts...)
}

// Result holds mapping outcome of a document, One is set for an object document, Many for an array document
type Result[T any] struct {
	Shape value.Shape
	One   *T
	Many  []*T
}

// All returns materialized instances regardless of document shape
func (r *Result[T]) All() []*T {
	if r.Shape == value.ShapeArray {
		return r.Many
	}
	if r.One == nil {
		return nil
	}
	return []*T{r.One}
}

// Map maps JSON text into T or a sequence of T depending on the top level shape
func Map[T any](text string, opts ...Option) (*Result[T], error) {
	rType, err := structType[T]()
	if err != nil {
		return nil, err
	}
	out, err := mapperFor(opts).Map(text, rType)
	if err != nil {
		return nil, err
	}
	switch actual := out.(type) {
	case *T:
		return &Result[T]{Shape: value.ShapeObject, One: actual}, nil
	case []*T:
		return &Result[T]{Shape: value.ShapeArray, Many: actual}, nil
	}
	return nil, newMapError(OpAssign, errors.Wrapf(ErrReflection, "unexpected result type %T", out))
}

// MapSlice maps JSON text into a sequence of T, an object document yields a single element
func MapSlice[T any](text string, opts ...Option) ([]*T, error) {
	result, err := Map[T](text, opts...)
	if err != nil {
		return nil, err
	}
	return result.All(), nil
}

// MapOne maps decoded JSON object into T
func MapOne[T any](obj value.Value, opts ...Option) (*T, error) {
	ret := new(T)
	if _, err := structType[T](); err != nil {
		return nil, err
	}
	if err := mapperFor(opts).MapInto(obj, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

func structType[T any]() (reflect.Type, error) {
	rType := reflect.TypeOf((*T)(nil)).Elem()
	if rType.Kind() != reflect.Struct {
		return nil, newMapError(OpResolve, errors.Wrapf(ErrReflection, "%s is not a struct type", rType.String()))
	}
	return rType, nil
}
