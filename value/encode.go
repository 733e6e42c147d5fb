package value

import (
	"strconv"

	"github.com/francoispqt/gojay"
	"github.com/goccy/go-json"
)

var nullLiteral = gojay.EmbeddedJSON("null")

type objectEncoder struct{ value Value }

func (o objectEncoder) MarshalJSONObject(enc *gojay.Encoder) {
	for _, key := range o.value.Keys() {
		item := o.value.fields[key]
		switch item.kind {
		case KindNull:
			enc.AddEmbeddedJSONKey(key, &nullLiteral)
		case KindBool:
			enc.BoolKey(key, item.boolean)
		case KindNumber:
			literal := gojay.EmbeddedJSON(item.text)
			enc.AddEmbeddedJSONKey(key, &literal)
		case KindString:
			enc.StringKey(key, item.text)
		case KindArray:
			enc.ArrayKey(key, arrayEncoder{value: item})
		case KindObject:
			enc.ObjectKey(key, objectEncoder{value: item})
		}
	}
}

func (o objectEncoder) IsNil() bool { return false }

type arrayEncoder struct{ value Value }

func (a arrayEncoder) MarshalJSONArray(enc *gojay.Encoder) {
	for _, item := range a.value.items {
		switch item.kind {
		case KindNull:
			enc.AddEmbeddedJSON(&nullLiteral)
		case KindBool:
			enc.Bool(item.boolean)
		case KindNumber:
			literal := gojay.EmbeddedJSON(item.text)
			enc.AddEmbeddedJSON(&literal)
		case KindString:
			enc.String(item.text)
		case KindArray:
			enc.Array(arrayEncoder{value: item})
		case KindObject:
			enc.Object(objectEncoder{value: item})
		}
	}
}

func (a arrayEncoder) IsNil() bool { return false }

// MarshalJSON encodes value as compact JSON, object keys are sorted
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindObject:
		return gojay.MarshalJSONObject(objectEncoder{value: v})
	case KindArray:
		return gojay.MarshalJSONArray(arrayEncoder{value: v})
	case KindBool:
		return []byte(strconv.FormatBool(v.boolean)), nil
	case KindNumber:
		return []byte(v.text), nil
	case KindString:
		return json.Marshal(v.text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes JSON data into value
func (v *Value) UnmarshalJSON(data []byte) error {
	decoded, err := DecodeBytes(data)
	if err != nil {
		return err
	}
	*v = decoded
	return nil
}
