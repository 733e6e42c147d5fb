package visitor

import (
	"fmt"

	"github.com/viant/jsonmap/value"
)

// ArrayOf returns visitor over at most limit array elements, negative limit visits all elements
func ArrayOf(v value.Value, limit int) (Visitor[int, value.Value], error) {
	if v.Kind() != value.KindArray {
		return nil, fmt.Errorf("expected array, got %s", v.Kind())
	}
	size := v.Len()
	if limit >= 0 && limit < size {
		size = limit
	}
	return func(f func(index int, element value.Value) (bool, error)) error {
		for i := 0; i < size; i++ {
			element, _ := v.Index(i)
			next, err := f(i, element)
			if err != nil {
				return err
			}
			if !next {
				break
			}
		}
		return nil
	}, nil
}
