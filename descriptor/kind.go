package descriptor

// Kind defines how a decoded value is converted into a field value, it is fixed when the descriptor is built
type Kind uint8

const (
	KindUndefined Kind = iota
	KindBool
	KindInt
	KindUint
	KindFloat
	KindString
	KindAny    //interface{} field, receives generic go representation
	KindArray  //slice or array, converted element by element
	KindObject //map with string key, converted entry by entry
	KindTemporal
	KindValue //value.Value field, receives decoded tree as is
	KindNested
)

// String returns kind name
func (k Kind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindUint:
		return "uint"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindAny:
		return "any"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindTemporal:
		return "temporal"
	case KindValue:
		return "value"
	case KindNested:
		return "nested"
	}
	return "undefined"
}

// IsBuiltin returns true for kinds that do not need a nested descriptor
func (k Kind) IsBuiltin() bool {
	switch k {
	case KindBool, KindInt, KindUint, KindFloat, KindString, KindAny, KindArray, KindObject:
		return true
	}
	return false
}
