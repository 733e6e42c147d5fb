package value

import (
	"bytes"
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// ErrMalformed is returned when text is not well-formed JSON
var ErrMalformed = errors.New("malformed JSON")

// Decode decodes JSON text into a Value
func Decode(text string) (Value, error) {
	return DecodeBytes([]byte(text))
}

// DecodeBytes decodes JSON data into a Value
func DecodeBytes(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, errors.Wrap(ErrMalformed, "empty input")
	}
	var discard interface{}
	if err := json.Unmarshal(data, &discard); err != nil {
		return Value{}, errors.Wrap(ErrMalformed, err.Error())
	}
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var decoded interface{}
	if err := decoder.Decode(&decoded); err != nil {
		if err == io.EOF {
			return Value{}, errors.Wrap(ErrMalformed, "empty input")
		}
		return Value{}, errors.Wrap(ErrMalformed, err.Error())
	}
	var trailing interface{}
	if err := decoder.Decode(&trailing); err != io.EOF {
		return Value{}, errors.Wrap(ErrMalformed, "unexpected data after top-level value")
	}
	return FromInterface(decoded)
}

// FromInterface converts generic decoded go value into a Value
func FromInterface(v interface{}) (Value, error) {
	switch actual := v.(type) {
	case nil:
		return Null(), nil
	case bool:
		return NewBool(actual), nil
	case string:
		return NewString(actual), nil
	case json.Number:
		if !validNumber(string(actual)) {
			return Value{}, errors.Wrapf(ErrMalformed, "invalid number literal %q", string(actual))
		}
		return NewNumber(string(actual)), nil
	case float64:
		return NewFloat(actual), nil
	case float32:
		return NewFloat(float64(actual)), nil
	case int:
		return NewInt(int64(actual)), nil
	case int64:
		return NewInt(actual), nil
	case []interface{}:
		items := make([]Value, len(actual))
		for i, item := range actual {
			converted, err := FromInterface(item)
			if err != nil {
				return Value{}, err
			}
			items[i] = converted
		}
		return Value{kind: KindArray, items: items}, nil
	case map[string]interface{}:
		fields := make(map[string]Value, len(actual))
		for k, item := range actual {
			converted, err := FromInterface(item)
			if err != nil {
				return Value{}, err
			}
			fields[k] = converted
		}
		return Value{kind: KindObject, fields: fields}, nil
	case Value:
		return actual, nil
	}
	return Value{}, fmt.Errorf("unsupported decoded type %T", v)
}

// validNumber checks literal against JSON number grammar: [-] int [frac] [exp],
// int has no leading zeros, frac and exp need at least one digit
func validNumber(literal string) bool {
	i, n := 0, len(literal)
	if i < n && literal[i] == '-' {
		i++
	}
	switch {
	case i < n && literal[i] == '0':
		i++
	case i < n && literal[i] >= '1' && literal[i] <= '9':
		i = skipDigits(literal, i)
	default:
		return false
	}
	if i < n && literal[i] == '.' {
		start := i + 1
		if i = skipDigits(literal, start); i == start {
			return false
		}
	}
	if i < n && (literal[i] == 'e' || literal[i] == 'E') {
		i++
		if i < n && (literal[i] == '+' || literal[i] == '-') {
			i++
		}
		start := i
		if i = skipDigits(literal, start); i == start {
			return false
		}
	}
	return i == n
}

func skipDigits(literal string, i int) int {
	for i < len(literal) && literal[i] >= '0' && literal[i] <= '9' {
		i++
	}
	return i
}
