package descriptor

import (
	"reflect"
	"strings"
	"unsafe"

	"github.com/pkg/errors"
	"github.com/viant/xunsafe"
)

const (
	// SetMarkerTag marks a struct field holding per field presence flags
	SetMarkerTag = "setMarker"
	// PresenceMarkerTag is an alternative presence holder tag
	PresenceMarkerTag = "presenceMarker"
)

// Marker records which fields were present in a mapped JSON object
type Marker struct {
	holder *xunsafe.Field
	flags  []*xunsafe.Field //indexed by Field.Index, nil when field has no flag
}

// IsSetMarker returns true if struct tag declares a presence holder
func IsSetMarker(tag reflect.StructTag) bool {
	for _, name := range []string{SetMarkerTag, PresenceMarkerTag} {
		if v, ok := tag.Lookup(name); ok && !strings.EqualFold(v, "false") {
			return true
		}
	}
	return false
}

func newMarker(owner *Type, sf reflect.StructField) (*Marker, error) {
	holderType := sf.Type
	if holderType.Kind() == reflect.Ptr {
		holderType = holderType.Elem()
	}
	if holderType.Kind() != reflect.Struct {
		return nil, errors.Wrapf(ErrReflection, "marker %s: expected struct, got %s", sf.Name, sf.Type.String())
	}
	ret := &Marker{holder: xunsafe.NewField(sf), flags: make([]*xunsafe.Field, len(owner.Fields))}
	for i := 0; i < holderType.NumField(); i++ {
		flag := holderType.Field(i)
		if flag.Type.Kind() != reflect.Bool {
			return nil, errors.Wrapf(ErrReflection, "marker %s.%s: expected bool, got %s", sf.Name, flag.Name, flag.Type.String())
		}
		field := owner.Lookup(flag.Name)
		if field == nil {
			return nil, errors.Wrapf(ErrReflection, "marker %s.%s has no corresponding field", sf.Name, flag.Name)
		}
		ret.flags[field.Index] = xunsafe.NewField(flag)
	}
	return ret, nil
}

// Set flags field as present, nil holder pointer is allocated
func (m *Marker) Set(structPtr unsafe.Pointer, field *Field) {
	if field.Index >= len(m.flags) || m.flags[field.Index] == nil {
		return
	}
	holderPtr := m.holder.Pointer(structPtr)
	if m.holder.Type.Kind() == reflect.Ptr {
		holderPtr = xunsafe.SafeDerefPointer(holderPtr, m.holder.Type)
	}
	*xunsafe.AsBoolPtr(m.flags[field.Index].Pointer(holderPtr)) = true
}

func (m *Marker) detach(structPtr unsafe.Pointer) {
	if m.holder.Type.Kind() != reflect.Ptr {
		return
	}
	holder := reflect.NewAt(m.holder.Type, m.holder.Pointer(structPtr)).Elem()
	if holder.IsNil() {
		return
	}
	clone := reflect.New(m.holder.Type.Elem())
	clone.Elem().Set(holder.Elem())
	holder.Set(clone)
}

// IsSet returns true if field was flagged as present, all fields count as present when holder is nil
func (m *Marker) IsSet(structPtr unsafe.Pointer, field *Field) bool {
	holderPtr := m.holder.Pointer(structPtr)
	if m.holder.Type.Kind() == reflect.Ptr {
		if holderPtr = *(*unsafe.Pointer)(holderPtr); holderPtr == nil {
			return true
		}
	}
	if field.Index >= len(m.flags) || m.flags[field.Index] == nil {
		return false
	}
	return *xunsafe.AsBoolPtr(m.flags[field.Index].Pointer(holderPtr))
}
