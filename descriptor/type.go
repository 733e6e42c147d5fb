package descriptor

import (
	"reflect"
	"unsafe"

	"github.com/viant/xunsafe"
)

type (
	// Type describes mappable fields of a struct type in declaration order
	Type struct {
		Type   reflect.Type
		Fields []*Field
		Marker *Marker //nil when type has no presence holder
		index  map[string]int
		shared bool //has embedded struct pointers or a pointer presence holder
	}

	// Field describes a single mappable struct field
	Field struct {
		Name   string //declared name
		Alias  string //empty when no alias was declared
		GoName string
		Index  int
		Target
		chain []*xunsafe.Field
	}

	// Target describes conversion target of a field or collection element
	Target struct {
		Kind   Kind
		Type   reflect.Type //declared type
		Base   reflect.Type //declared type without pointer
		Ptr    bool
		Elem   *Target //array or object element
		Nested *Type
		Layout string //temporal layout, RFC3339 when empty
	}
)

// Lookup returns field by go field name
func (t *Type) Lookup(goName string) *Field {
	pos, ok := t.index[goName]
	if !ok {
		return nil
	}
	return t.Fields[pos]
}

// HasAlias returns true if field declared an alias
func (f *Field) HasAlias() bool {
	return f.Alias != ""
}

// Keys returns JSON keys in resolution order
func (f *Field) Keys() []string {
	if f.Alias == "" || f.Alias == f.Name {
		return []string{f.Name}
	}
	return []string{f.Name, f.Alias}
}

// XField returns leaf xunsafe field
func (f *Field) XField() *xunsafe.Field {
	return f.chain[len(f.chain)-1]
}

// Pointer returns field pointer for supplied struct pointer, embedded struct pointers are allocated when nil
func (f *Field) Pointer(structPtr unsafe.Pointer) unsafe.Pointer {
	current := structPtr
	last := len(f.chain) - 1
	for i, xField := range f.chain {
		ptr := xField.Pointer(current)
		if i == last {
			return ptr
		}
		if xField.Type.Kind() == reflect.Ptr {
			next := (*unsafe.Pointer)(ptr)
			if *next == nil {
				*next = reflect.New(xField.Type.Elem()).UnsafePointer()
			}
			current = *next
			continue
		}
		current = ptr
	}
	return current
}

// Detach replaces embedded struct pointers and presence holder pointer reachable from structPtr with shallow copies,
// so writes through field pointers do not reach memory shared with another value
func (t *Type) Detach(structPtr unsafe.Pointer) {
	if !t.shared {
		return
	}
	if t.Marker != nil {
		t.Marker.detach(structPtr)
	}
	detached := map[unsafe.Pointer]bool{}
	for _, field := range t.Fields {
		current := structPtr
		for _, xField := range field.chain[:len(field.chain)-1] {
			ptr := xField.Pointer(current)
			if xField.Type.Kind() != reflect.Ptr {
				current = ptr
				continue
			}
			holder := reflect.NewAt(xField.Type, ptr).Elem()
			if holder.IsNil() {
				break
			}
			if !detached[ptr] {
				clone := reflect.New(xField.Type.Elem())
				clone.Elem().Set(holder.Elem())
				holder.Set(clone)
				detached[ptr] = true
			}
			current = holder.UnsafePointer()
		}
	}
}

// Path returns go field path
func (f *Field) Path() string {
	ret := ""
	for i, xField := range f.chain {
		if i > 0 {
			ret += "."
		}
		ret += xField.Name
	}
	return ret
}

func (t *Target) setLayout(layout string) {
	if layout == "" {
		return
	}
	for current := t; current != nil; current = current.Elem {
		if current.Kind == KindTemporal {
			current.Layout = layout
		}
	}
}
