package visitor

import (
	"fmt"

	"github.com/viant/jsonmap/value"
)

// ObjectOf returns visitor over object members in sorted key order
func ObjectOf(v value.Value) (Visitor[string, value.Value], error) {
	if v.Kind() != value.KindObject {
		return nil, fmt.Errorf("expected object, got %s", v.Kind())
	}
	return func(f func(key string, element value.Value) (bool, error)) error {
		for _, key := range v.Keys() {
			element, _ := v.Get(key)
			next, err := f(key, element)
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
