package value

// Kind represents decoded JSON value kind
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns kind name
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	}
	return "unknown"
}

// Shape represents top level document shape
type Shape uint8

const (
	ShapeObject Shape = iota
	ShapeArray
)

func (s Shape) String() string {
	if s == ShapeArray {
		return "array"
	}
	return "object"
}

// ClassifyShape returns ShapeArray when the first non whitespace character is '[', ShapeObject otherwise.
// It does not validate the document.
func ClassifyShape(text string) Shape {
	pos := skipWhitespace(text, 0)
	if pos < len(text) && text[pos] == '[' {
		return ShapeArray
	}
	return ShapeObject
}

func skipWhitespace(text string, pos int) int {
	for pos < len(text) {
		switch text[pos] {
		case ' ', '\n', '\r', '\t', '\v', 0:
			pos++
		default:
			return pos
		}
	}
	return pos
}
