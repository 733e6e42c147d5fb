package jsonmap

import (
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/viant/jsonmap/descriptor"
	"github.com/viant/jsonmap/value"
	"github.com/viant/jsonmap/visitor"
	"github.com/viant/xunsafe"
)

// convert writes JSON value into memory described by target, null values are skipped,
// pointer targets are replaced only after their value converted
func (m *Mapper) convert(ptr unsafe.Pointer, target *descriptor.Target, v value.Value, depth int) error {
	if v.IsNull() {
		return nil
	}
	if target.Ptr {
		if err := m.precheck(target, v); err != nil {
			return err
		}
		holder := reflect.NewAt(target.Type, ptr).Elem()
		staged := reflect.New(target.Base)
		if !holder.IsNil() {
			staged.Elem().Set(holder.Elem())
		}
		if err := m.assign(staged.UnsafePointer(), target, v, depth); err != nil {
			return err
		}
		holder.Set(staged)
		return nil
	}
	return m.assign(ptr, target, v, depth)
}

// assign writes non null value into memory of target base type
func (m *Mapper) assign(ptr unsafe.Pointer, target *descriptor.Target, v value.Value, depth int) error {
	switch target.Kind {
	case descriptor.KindBool:
		return m.setBool(ptr, target, v)
	case descriptor.KindInt:
		return m.setInt(ptr, target, v)
	case descriptor.KindUint:
		return m.setUint(ptr, target, v)
	case descriptor.KindFloat:
		return m.setFloat(ptr, target, v)
	case descriptor.KindString:
		return m.setString(ptr, target, v)
	case descriptor.KindAny:
		var generic interface{}
		if m.options.UseNumber {
			generic = v.NumberInterface()
		} else {
			generic = v.Interface()
		}
		reflect.NewAt(target.Base, ptr).Elem().Set(reflect.ValueOf(generic))
		return nil
	case descriptor.KindValue:
		*(*value.Value)(ptr) = v
		return nil
	case descriptor.KindTemporal:
		return setTime(ptr, target, v)
	case descriptor.KindNested:
		if v.Kind() != value.KindObject {
			return errors.Wrapf(ErrShapeMismatch, "expected object for %s, got %s", target.Base.String(), v.Kind())
		}
		return m.populate(ptr, target.Nested, v, depth+1)
	case descriptor.KindArray:
		return m.setArray(ptr, target, v, depth)
	case descriptor.KindObject:
		return m.setMap(ptr, target, v, depth)
	}
	return errors.Wrapf(ErrReflection, "unsupported target %s", target.Type.String())
}

// precheck rejects structurally incompatible values before pointer allocation
func (m *Mapper) precheck(target *descriptor.Target, v value.Value) error {
	switch target.Kind {
	case descriptor.KindNested:
		if v.Kind() != value.KindObject {
			return errors.Wrapf(ErrShapeMismatch, "expected object for %s, got %s", target.Base.String(), v.Kind())
		}
	case descriptor.KindArray:
		if v.Kind() != value.KindArray {
			return mismatch(target, v)
		}
	case descriptor.KindObject:
		if v.Kind() != value.KindObject {
			return mismatch(target, v)
		}
	}
	return nil
}

func (m *Mapper) setBool(ptr unsafe.Pointer, target *descriptor.Target, v value.Value) error {
	switch v.Kind() {
	case value.KindBool:
		*xunsafe.AsBoolPtr(ptr) = v.Bool()
		return nil
	case value.KindString:
		if m.options.Mode == ModeCompat {
			switch strings.ToLower(strings.TrimSpace(v.Text())) {
			case "true":
				*xunsafe.AsBoolPtr(ptr) = true
				return nil
			case "false":
				*xunsafe.AsBoolPtr(ptr) = false
				return nil
			}
		}
	}
	return mismatch(target, v)
}

func (m *Mapper) setString(ptr unsafe.Pointer, target *descriptor.Target, v value.Value) error {
	switch v.Kind() {
	case value.KindString:
		*xunsafe.AsStringPtr(ptr) = v.Text()
		return nil
	case value.KindNumber:
		if m.options.Mode == ModeCompat {
			*xunsafe.AsStringPtr(ptr) = v.Number()
			return nil
		}
	case value.KindBool:
		if m.options.Mode == ModeCompat {
			*xunsafe.AsStringPtr(ptr) = strconv.FormatBool(v.Bool())
			return nil
		}
	}
	return mismatch(target, v)
}

func (m *Mapper) setInt(ptr unsafe.Pointer, target *descriptor.Target, v value.Value) error {
	number, err := m.number(target, v)
	if err != nil {
		return err
	}
	if m.options.Mode == ModeStrict && !number.IsIntegral() {
		return errors.Wrapf(ErrTypeMismatch, "expected integer for %s, got %s", target.Base.String(), number.Number())
	}
	i, err := number.Int64()
	if err != nil {
		return errors.Wrapf(ErrTypeMismatch, "%v", err)
	}
	switch target.Base.Kind() {
	case reflect.Int:
		if strconv.IntSize == 32 && (i < math.MinInt32 || i > math.MaxInt32) {
			return overflow(target, number)
		}
		*xunsafe.AsIntPtr(ptr) = int(i)
	case reflect.Int8:
		if i < math.MinInt8 || i > math.MaxInt8 {
			return overflow(target, number)
		}
		*xunsafe.AsInt8Ptr(ptr) = int8(i)
	case reflect.Int16:
		if i < math.MinInt16 || i > math.MaxInt16 {
			return overflow(target, number)
		}
		*xunsafe.AsInt16Ptr(ptr) = int16(i)
	case reflect.Int32:
		if i < math.MinInt32 || i > math.MaxInt32 {
			return overflow(target, number)
		}
		*xunsafe.AsInt32Ptr(ptr) = int32(i)
	default:
		*xunsafe.AsInt64Ptr(ptr) = i
	}
	return nil
}

func (m *Mapper) setUint(ptr unsafe.Pointer, target *descriptor.Target, v value.Value) error {
	number, err := m.number(target, v)
	if err != nil {
		return err
	}
	if m.options.Mode == ModeStrict && !number.IsIntegral() {
		return errors.Wrapf(ErrTypeMismatch, "expected integer for %s, got %s", target.Base.String(), number.Number())
	}
	u, err := number.Uint64()
	if err != nil {
		return errors.Wrapf(ErrTypeMismatch, "%v", err)
	}
	switch target.Base.Kind() {
	case reflect.Uint:
		if strconv.IntSize == 32 && u > math.MaxUint32 {
			return overflow(target, number)
		}
		*xunsafe.AsUintPtr(ptr) = uint(u)
	case reflect.Uint8:
		if u > math.MaxUint8 {
			return overflow(target, number)
		}
		*xunsafe.AsUint8Ptr(ptr) = uint8(u)
	case reflect.Uint16:
		if u > math.MaxUint16 {
			return overflow(target, number)
		}
		*xunsafe.AsUint16Ptr(ptr) = uint16(u)
	case reflect.Uint32:
		if u > math.MaxUint32 {
			return overflow(target, number)
		}
		*xunsafe.AsUint32Ptr(ptr) = uint32(u)
	default:
		*xunsafe.AsUint64Ptr(ptr) = u
	}
	return nil
}

func (m *Mapper) setFloat(ptr unsafe.Pointer, target *descriptor.Target, v value.Value) error {
	number, err := m.number(target, v)
	if err != nil {
		return err
	}
	f, err := number.Float64()
	if err != nil {
		return errors.Wrapf(ErrTypeMismatch, "%v", err)
	}
	if target.Base.Kind() == reflect.Float32 {
		if math.Abs(f) > math.MaxFloat32 {
			return overflow(target, number)
		}
		*xunsafe.AsFloat32Ptr(ptr) = float32(f)
		return nil
	}
	*xunsafe.AsFloat64Ptr(ptr) = f
	return nil
}

// number returns numeric value, in compat mode numeric strings are accepted
func (m *Mapper) number(target *descriptor.Target, v value.Value) (value.Value, error) {
	switch v.Kind() {
	case value.KindNumber:
		return v, nil
	case value.KindString:
		if m.options.Mode != ModeCompat {
			break
		}
		literal := strings.TrimSpace(v.Text())
		f, err := strconv.ParseFloat(literal, 64)
		if err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
			return value.NewNumber(literal), nil
		}
	}
	return value.Value{}, mismatch(target, v)
}

func setTime(ptr unsafe.Pointer, target *descriptor.Target, v value.Value) error {
	if v.Kind() != value.KindString {
		return errors.Wrapf(ErrBadTemporal, "expected string, got %s", v.Kind())
	}
	layout := target.Layout
	if layout == "" {
		layout = time.RFC3339Nano
	}
	ts, err := time.Parse(layout, v.Text())
	if err != nil {
		return errors.Wrapf(ErrBadTemporal, "%q: %v", v.Text(), err)
	}
	*xunsafe.AsTimePtr(ptr) = ts
	return nil
}

func (m *Mapper) setArray(ptr unsafe.Pointer, target *descriptor.Target, v value.Value, depth int) error {
	if v.Kind() != value.KindArray {
		return mismatch(target, v)
	}
	holder := reflect.NewAt(target.Base, ptr).Elem()
	limit := -1
	if target.Base.Kind() == reflect.Array {
		limit = holder.Len()
	} else {
		holder.Set(reflect.MakeSlice(target.Base, v.Len(), v.Len()))
	}
	visit, err := visitor.ArrayOf(v, limit)
	if err != nil {
		return mismatch(target, v)
	}
	return visit(func(index int, item value.Value) (bool, error) {
		itemPtr := holder.Index(index).Addr().UnsafePointer()
		if err := m.convert(itemPtr, target.Elem, item, depth); err != nil {
			return false, atIndex(err, OpConvert, index)
		}
		return true, nil
	})
}

func (m *Mapper) setMap(ptr unsafe.Pointer, target *descriptor.Target, v value.Value, depth int) error {
	visit, err := visitor.ObjectOf(v)
	if err != nil {
		return mismatch(target, v)
	}
	result := reflect.MakeMapWithSize(target.Base, v.Len())
	keyType := target.Base.Key()
	elemType := target.Base.Elem()
	err = visit(func(key string, item value.Value) (bool, error) {
		elem := reflect.New(elemType)
		if err := m.convert(elem.UnsafePointer(), target.Elem, item, depth); err != nil {
			return false, atField(err, OpConvert, key)
		}
		result.SetMapIndex(reflect.ValueOf(key).Convert(keyType), elem.Elem())
		return true, nil
	})
	if err != nil {
		return err
	}
	reflect.NewAt(target.Base, ptr).Elem().Set(result)
	return nil
}

func mismatch(target *descriptor.Target, v value.Value) error {
	return errors.Wrapf(ErrTypeMismatch, "can not convert %s into %s", v.Kind(), target.Type.String())
}

func overflow(target *descriptor.Target, number value.Value) error {
	return errors.Wrapf(ErrTypeMismatch, "number %s overflows %s", number.Number(), target.Base.String())
}
