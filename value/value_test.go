package value

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyShape(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expect      Shape
	}{
		{description: "object", input: `{"id":"1"}`, expect: ShapeObject},
		{description: "array", input: `[{"id":"1"}]`, expect: ShapeArray},
		{description: "leading whitespace", input: " \n\t [1]", expect: ShapeArray},
		{description: "scalar is not array", input: `"["`, expect: ShapeObject},
		{description: "empty", input: "", expect: ShapeObject},
		{description: "malformed array prefix", input: "[{", expect: ShapeArray},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, ClassifyShape(testCase.input), testCase.description)
	}
}

func TestDecode(t *testing.T) {
	var testCases = []struct {
		description string
		input       string
		expectKind  Kind
		expectErr   bool
		check       func(t *testing.T, v Value)
	}{
		{
			description: "object",
			input:       `{"id":"1","rank":2,"active":true,"tags":["a","b"],"platform":null}`,
			expectKind:  KindObject,
			check: func(t *testing.T, v Value) {
				id, ok := v.Get("id")
				require.True(t, ok)
				assert.Equal(t, "1", id.Text())
				rank, _ := v.Get("rank")
				i, err := rank.Int64()
				require.NoError(t, err)
				assert.EqualValues(t, 2, i)
				active, _ := v.Get("active")
				assert.True(t, active.Bool())
				tags, _ := v.Get("tags")
				assert.Equal(t, 2, tags.Len())
				platform, ok := v.Get("platform")
				assert.True(t, ok)
				assert.True(t, platform.IsNull())
				assert.Equal(t, []string{"active", "id", "platform", "rank", "tags"}, v.Keys())
			},
		},
		{
			description: "array keeps order",
			input:       `[{"id":"1"},{"id":"2"},{"id":"3"}]`,
			expectKind:  KindArray,
			check: func(t *testing.T, v Value) {
				items := v.Array()
				require.Len(t, items, 3)
				for i, expect := range []string{"1", "2", "3"} {
					id, _ := items[i].Get("id")
					assert.Equal(t, expect, id.Text())
				}
			},
		},
		{
			description: "large integer keeps precision",
			input:       `{"id":9007199254740993}`,
			expectKind:  KindObject,
			check: func(t *testing.T, v Value) {
				id, _ := v.Get("id")
				assert.Equal(t, "9007199254740993", id.Number())
				i, err := id.Int64()
				require.NoError(t, err)
				assert.EqualValues(t, int64(9007199254740993), i)
			},
		},
		{description: "unterminated object", input: `{"id":"1"`, expectErr: true},
		{description: "trailing data", input: `{"id":"1"} {"id":"2"}`, expectErr: true},
		{description: "empty input", input: ` `, expectErr: true},
		{description: "bare word", input: `rank`, expectErr: true},
		{description: "truncated true", input: `tru`, expectErr: true},
		{description: "truncated null", input: `nul`, expectErr: true},
		{description: "leading zero", input: `{"a":01}`, expectErr: true},
		{description: "trailing dot", input: `{"a":1.}`, expectErr: true},
		{description: "missing exponent digits", input: `[1e]`, expectErr: true},
		{description: "lone minus", input: `[-]`, expectErr: true},
		{description: "nested leading zero", input: `{"quote":{"USD":[00.5]}}`, expectErr: true},
	}
	for _, testCase := range testCases {
		v, err := Decode(testCase.input)
		if testCase.expectErr {
			require.Error(t, err, testCase.description)
			assert.True(t, errors.Is(err, ErrMalformed), testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Equal(t, testCase.expectKind, v.Kind(), testCase.description)
		if testCase.check != nil {
			testCase.check(t, v)
		}
	}
}

func TestValue_Immutable(t *testing.T) {
	v, err := Decode(`{"tags":["a","b"],"quote":{"USD":1}}`)
	require.NoError(t, err)

	tags, _ := v.Get("tags")
	items := tags.Array()
	items[0] = NewString("mutated")
	first, _ := tags.Index(0)
	assert.Equal(t, "a", first.Text())

	fields := v.Object()
	delete(fields, "quote")
	_, ok := v.Get("quote")
	assert.True(t, ok)
}

func TestValue_Numbers(t *testing.T) {
	v := NewNumber("12.75")
	assert.False(t, v.IsIntegral())
	i, err := v.Int64()
	require.NoError(t, err)
	assert.EqualValues(t, 12, i)
	f, err := v.Float64()
	require.NoError(t, err)
	assert.Equal(t, 12.75, f)

	assert.True(t, NewNumber("1e3").IsIntegral())
	_, err = NewString("1").Float64()
	assert.True(t, errors.Is(err, ErrNotNumber))

	_, err = NewNumber("-1").Uint64()
	assert.Error(t, err)
}

func TestValue_IntegerRange(t *testing.T) {
	var testCases = []struct {
		description string
		literal     string
		unsigned    bool
		expectErr   bool
	}{
		{description: "max int64", literal: "9223372036854775807"},
		{description: "min int64", literal: "-9223372036854775808"},
		{description: "2^63 as int64", literal: "9223372036854775808", expectErr: true},
		{description: "2^63 as float int64", literal: "9.223372036854775808e18", expectErr: true},
		{description: "max uint64", literal: "18446744073709551615", unsigned: true},
		{description: "2^64 as uint64", literal: "18446744073709551616", unsigned: true, expectErr: true},
		{description: "2^64 as float uint64", literal: "1.8446744073709551616e19", unsigned: true, expectErr: true},
	}
	for _, testCase := range testCases {
		var err error
		if testCase.unsigned {
			_, err = NewNumber(testCase.literal).Uint64()
		} else {
			_, err = NewNumber(testCase.literal).Int64()
		}
		if testCase.expectErr {
			assert.Error(t, err, testCase.description)
			continue
		}
		assert.NoError(t, err, testCase.description)
	}
}

func TestValidNumber(t *testing.T) {
	for _, literal := range []string{"0", "-0", "7", "-12.5", "0.25", "1e3", "1E+10", "12e-3", "9223372036854775808"} {
		assert.True(t, validNumber(literal), literal)
	}
	for _, literal := range []string{"", "-", "01", "-01", "1.", ".5", "1e", "1e+", "+1", "0x10", "1.2.3", "Infinity"} {
		assert.False(t, validNumber(literal), literal)
	}
}

func TestValue_Interface(t *testing.T) {
	v, err := Decode(`{"a":[1,"x",true,null],"b":{"c":2.5}}`)
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{
		"a": []interface{}{float64(1), "x", true, nil},
		"b": map[string]interface{}{"c": 2.5},
	}, v.Interface())
}

func TestValue_MarshalJSON(t *testing.T) {
	input := `{"b":[1,"x\"y",true,null,{"z":[]}],"a":{"c":9007199254740993}}`
	v, err := Decode(input)
	require.NoError(t, err)
	data, err := v.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, input, string(data))
	assert.Equal(t, `{"a":{"c":9007199254740993},"b":[1,"x\"y",true,null,{"z":[]}]}`, v.String())

	var decoded Value
	require.NoError(t, decoded.UnmarshalJSON(data))
	assert.Equal(t, KindObject, decoded.Kind())
	assert.Equal(t, "null", Null().String())
}
