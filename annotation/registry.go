package annotation

import (
	"reflect"
	"sync"
)

type fieldKey struct {
	rType reflect.Type
	field string
}

var registry = struct {
	sync.RWMutex
	texts map[fieldKey]string
}{texts: map[fieldKey]string{}}

// Register registers annotation text for a struct field, it is meant to be called from init,
// before the owner type is first resolved.
func Register(rType reflect.Type, field string, text string) {
	rType = ensureStruct(rType)
	if rType == nil {
		return
	}
	registry.Lock()
	registry.texts[fieldKey{rType: rType, field: field}] = text
	registry.Unlock()
}

// Lookup returns registered annotation text for a struct field
func Lookup(rType reflect.Type, field string) (string, bool) {
	rType = ensureStruct(rType)
	if rType == nil {
		return "", false
	}
	registry.RLock()
	text, ok := registry.texts[fieldKey{rType: rType, field: field}]
	registry.RUnlock()
	return text, ok
}

// Field returns annotation text for a struct field, struct tag takes precedence over registered text
func Field(owner reflect.Type, field reflect.StructField) (string, bool) {
	if text, ok := field.Tag.Lookup(TagName); ok {
		return text, true
	}
	return Lookup(owner, field.Name)
}

func ensureStruct(t reflect.Type) reflect.Type {
	for t != nil && t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	return t
}
