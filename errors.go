package jsonmap

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/viant/jsonmap/descriptor"
	"github.com/viant/jsonmap/value"
)

// Operations reported by MapError
const (
	OpDecode  = "decode"
	OpResolve = "resolve"
	OpConvert = "convert"
	OpAssign  = "assign"
)

var (
	// ErrDecode is returned for malformed JSON text
	ErrDecode = value.ErrMalformed
	// ErrReflection is returned when target type can not be introspected or instantiated
	ErrReflection = descriptor.ErrReflection
	// ErrBadTemporal is returned when temporal text can not be parsed
	ErrBadTemporal = errors.New("invalid temporal value")
	// ErrShapeMismatch is returned when nested field value is not a JSON object
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrTypeMismatch is returned when JSON value kind can not be converted into field type
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrDepthLimit is returned when object nesting exceeds configured depth
	ErrDepthLimit = errors.New("depth limit exceeded")
)

// MapError is the single error kind returned by mapping operations
type MapError struct {
	Op      string `json:"op"`
	Path    string `json:"path"`
	Message string `json:"message"`
	Err     error  `json:"err"`
}

func (e *MapError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("jsonmap: %s failed at %s: %s", e.Op, e.Path, e.Message)
	}
	return fmt.Sprintf("jsonmap: %s failed: %s", e.Op, e.Message)
}

// Unwrap returns the underlying error
func (e *MapError) Unwrap() error {
	return e.Err
}

// Is matches other MapError by operation and cause or any error in cause chain
func (e *MapError) Is(target error) bool {
	if target == nil {
		return false
	}
	if other, ok := target.(*MapError); ok {
		return e.Op == other.Op && (other.Err == nil || errors.Is(e.Err, other.Err))
	}
	return errors.Is(e.Err, target)
}

// segment is a single path component, index is used when field is empty
type segment struct {
	field string
	index int
}

// pathError carries failing value location while it propagates up, innermost segment first
type pathError struct {
	op       string
	segments []segment
	err      error
}

func (e *pathError) Error() string { return e.err.Error() }

func (e *pathError) Unwrap() error { return e.err }

func (e *pathError) path() string {
	builder := strings.Builder{}
	for i := len(e.segments) - 1; i >= 0; i-- {
		seg := e.segments[i]
		if seg.field == "" {
			builder.WriteByte('[')
			builder.WriteString(strconv.Itoa(seg.index))
			builder.WriteByte(']')
			continue
		}
		if builder.Len() > 0 {
			builder.WriteByte('.')
		}
		builder.WriteString(seg.field)
	}
	return builder.String()
}

func atField(err error, op string, field string) error {
	return at(err, op, segment{field: field})
}

func atIndex(err error, op string, index int) error {
	return at(err, op, segment{index: index})
}

func at(err error, op string, seg segment) error {
	if err == nil {
		return nil
	}
	if pErr, ok := err.(*pathError); ok {
		pErr.segments = append(pErr.segments, seg)
		return pErr
	}
	return &pathError{op: op, segments: []segment{seg}, err: err}
}

// newMapError wraps any lower level error into MapError
func newMapError(op string, err error) *MapError {
	if mErr, ok := err.(*MapError); ok {
		return mErr
	}
	ret := &MapError{Op: op, Err: err}
	if pErr, ok := err.(*pathError); ok {
		ret.Op = pErr.op
		ret.Path = pErr.path()
		ret.Err = pErr.err
	}
	ret.Message = ret.Err.Error()
	return ret
}
