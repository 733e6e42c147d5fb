package value

import (
	stdjson "encoding/json"
	"math"
	"sort"
	"strconv"

	"github.com/pkg/errors"
)

// ErrNotNumber is returned when a numeric accessor is used on a non numeric value
var ErrNotNumber = errors.New("value is not a number")

// Value represents an immutable decoded JSON value
type Value struct {
	kind    Kind
	boolean bool
	text    string //string content or number literal
	items   []Value
	fields  map[string]Value
}

// Null returns JSON null
func Null() Value {
	return Value{}
}

// NewBool creates a boolean value
func NewBool(b bool) Value {
	return Value{kind: KindBool, boolean: b}
}

// NewString creates a string value
func NewString(s string) Value {
	return Value{kind: KindString, text: s}
}

// NewNumber creates a number value from its literal text
func NewNumber(literal string) Value {
	return Value{kind: KindNumber, text: literal}
}

// NewFloat creates a number value
func NewFloat(f float64) Value {
	return Value{kind: KindNumber, text: strconv.FormatFloat(f, 'g', -1, 64)}
}

// NewInt creates a number value
func NewInt(i int64) Value {
	return Value{kind: KindNumber, text: strconv.FormatInt(i, 10)}
}

// NewArray creates an array value, items are copied
func NewArray(items ...Value) Value {
	cp := make([]Value, len(items))
	copy(cp, items)
	return Value{kind: KindArray, items: cp}
}

// NewObject creates an object value, fields are copied
func NewObject(fields map[string]Value) Value {
	cp := make(map[string]Value, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return Value{kind: KindObject, fields: cp}
}

// Kind returns value kind
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull returns true for JSON null
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// Bool returns boolean content, false for non bool value
func (v Value) Bool() bool {
	return v.kind == KindBool && v.boolean
}

// Text returns string content, empty for non string value
func (v Value) Text() string {
	if v.kind != KindString {
		return ""
	}
	return v.text
}

// Number returns number literal, empty for non number value
func (v Value) Number() string {
	if v.kind != KindNumber {
		return ""
	}
	return v.text
}

// Float64 returns number as float64
func (v Value) Float64() (float64, error) {
	if v.kind != KindNumber {
		return 0, errors.Wrapf(ErrNotNumber, "got %v", v.kind)
	}
	return strconv.ParseFloat(v.text, 64)
}

// IsIntegral returns true if number has no fractional part
func (v Value) IsIntegral() bool {
	if v.kind != KindNumber {
		return false
	}
	if _, err := strconv.ParseInt(v.text, 10, 64); err == nil {
		return true
	}
	f, err := strconv.ParseFloat(v.text, 64)
	return err == nil && f == math.Trunc(f)
}

// Int64 returns number as int64, fractions are truncated
func (v Value) Int64() (int64, error) {
	if v.kind != KindNumber {
		return 0, errors.Wrapf(ErrNotNumber, "got %v", v.kind)
	}
	if i, err := strconv.ParseInt(v.text, 10, 64); err == nil {
		return i, nil
	}
	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		return 0, err
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return 0, errors.Errorf("number %s out of int64 range", v.text)
	}
	return int64(f), nil
}

// Uint64 returns number as uint64, fractions are truncated
func (v Value) Uint64() (uint64, error) {
	if v.kind != KindNumber {
		return 0, errors.Wrapf(ErrNotNumber, "got %v", v.kind)
	}
	if u, err := strconv.ParseUint(v.text, 10, 64); err == nil {
		return u, nil
	}
	f, err := strconv.ParseFloat(v.text, 64)
	if err != nil {
		return 0, err
	}
	if f < 0 || f >= math.MaxUint64 {
		return 0, errors.Errorf("number %s out of uint64 range", v.text)
	}
	return uint64(f), nil
}

// Len returns number of array items or object fields
func (v Value) Len() int {
	switch v.kind {
	case KindArray:
		return len(v.items)
	case KindObject:
		return len(v.fields)
	}
	return 0
}

// Array returns a copy of array items, nil for non array value
func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}
	cp := make([]Value, len(v.items))
	copy(cp, v.items)
	return cp
}

// Index returns array item at index
func (v Value) Index(i int) (Value, bool) {
	if v.kind != KindArray || i < 0 || i >= len(v.items) {
		return Value{}, false
	}
	return v.items[i], true
}

// Object returns a copy of object fields, nil for non object value
func (v Value) Object() map[string]Value {
	if v.kind != KindObject {
		return nil
	}
	cp := make(map[string]Value, len(v.fields))
	for k, item := range v.fields {
		cp[k] = item
	}
	return cp
}

// Get returns object field value
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Value{}, false
	}
	ret, ok := v.fields[key]
	return ret, ok
}

// Keys returns sorted object keys
func (v Value) Keys() []string {
	if v.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(v.fields))
	for k := range v.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Interface returns generic go representation with float64 numbers
func (v Value) Interface() interface{} {
	return v.asInterface(false)
}

// NumberInterface returns generic go representation with encoding/json.Number numbers
func (v Value) NumberInterface() interface{} {
	return v.asInterface(true)
}

func (v Value) asInterface(useNumber bool) interface{} {
	switch v.kind {
	case KindBool:
		return v.boolean
	case KindString:
		return v.text
	case KindNumber:
		if useNumber {
			return stdjson.Number(v.text)
		}
		f, _ := strconv.ParseFloat(v.text, 64)
		return f
	case KindArray:
		ret := make([]interface{}, len(v.items))
		for i, item := range v.items {
			ret[i] = item.asInterface(useNumber)
		}
		return ret
	case KindObject:
		ret := make(map[string]interface{}, len(v.fields))
		for k, item := range v.fields {
			ret[k] = item.asInterface(useNumber)
		}
		return ret
	}
	return nil
}

// String returns compact JSON text
func (v Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(data)
}
