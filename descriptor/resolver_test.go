package descriptor

import (
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonmap/annotation"
	"github.com/viant/jsonmap/value"
	"github.com/viant/tagly/format/text"
)

type quote struct {
	Price     float64 `annotation:"@name price_usd"`
	UpdatedAt time.Time
}

type asset struct {
	ID       int
	Name     string
	Rank     int `annotation:"@name cmc_rank"`
	Pairs    *int
	Supply   float64 `json:"supply"`
	Tags     []string
	Quote    quote
	Quotes   map[string]*quote
	Platform value.Value
	Extra    interface{}
	Skip     string `json:"-"`
	Hidden   string `format:"ignore=true"`
	Symbol   string `format:"name=ticker"`
	internal string
}

type node struct {
	Name     string
	Children []node
}

type ticker struct {
	Symbol string
	Price  float64
}

type selfRef struct {
	Name string
	Next *selfRef
}

type Audit struct {
	CreatedBy string
}

type withEmbedded struct {
	*Audit
	Name string
}

func TestResolver_Resolve(t *testing.T) {
	descriptor, err := Resolve(reflect.TypeOf(&asset{}))
	require.NoError(t, err)
	assert.Equal(t, reflect.TypeOf(asset{}), descriptor.Type)

	var testCases = []struct {
		goName string
		name   string
		alias  string
		kind   Kind
		ptr    bool
	}{
		{goName: "ID", name: "id", kind: KindInt},
		{goName: "Name", name: "name", kind: KindString},
		{goName: "Rank", name: "rank", alias: "cmc_rank", kind: KindInt},
		{goName: "Pairs", name: "pairs", kind: KindInt, ptr: true},
		{goName: "Supply", name: "supply", kind: KindFloat},
		{goName: "Tags", name: "tags", kind: KindArray},
		{goName: "Quote", name: "quote", kind: KindNested},
		{goName: "Quotes", name: "quotes", kind: KindObject},
		{goName: "Platform", name: "platform", kind: KindValue},
		{goName: "Extra", name: "extra", kind: KindAny},
		{goName: "Symbol", name: "ticker", kind: KindString},
	}
	require.Equal(t, len(testCases), len(descriptor.Fields))
	for i, testCase := range testCases {
		field := descriptor.Fields[i]
		assert.Equal(t, testCase.goName, field.GoName, testCase.goName)
		assert.Equal(t, testCase.name, field.Name, testCase.goName)
		assert.Equal(t, testCase.alias, field.Alias, testCase.goName)
		assert.Equal(t, testCase.kind, field.Kind, testCase.goName)
		assert.Equal(t, testCase.ptr, field.Ptr, testCase.goName)
		assert.Equal(t, i, field.Index, testCase.goName)
		assert.Same(t, field, descriptor.Lookup(testCase.goName), testCase.goName)
	}
	assert.Nil(t, descriptor.Lookup("Skip"))
	assert.Nil(t, descriptor.Lookup("Hidden"))
	assert.Nil(t, descriptor.Lookup("internal"))

	rank := descriptor.Lookup("Rank")
	assert.True(t, rank.HasAlias())
	assert.Equal(t, []string{"rank", "cmc_rank"}, rank.Keys())

	nested := descriptor.Lookup("Quote").Nested
	require.NotNil(t, nested)
	assert.Equal(t, "price_usd", nested.Lookup("Price").Alias)
	assert.Equal(t, KindTemporal, nested.Lookup("UpdatedAt").Kind)

	quotes := descriptor.Lookup("Quotes")
	require.NotNil(t, quotes.Elem)
	assert.Equal(t, KindNested, quotes.Elem.Kind)
	assert.True(t, quotes.Elem.Ptr)
	assert.Same(t, nested, quotes.Elem.Nested)
}

func TestResolver_Deterministic(t *testing.T) {
	first, err := Resolve(reflect.TypeOf(asset{}))
	require.NoError(t, err)
	second, err := Resolve(reflect.TypeOf(&asset{}))
	require.NoError(t, err)
	assert.Same(t, first, second)

	var wg sync.WaitGroup
	results := make([]*Type, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], _ = NewResolver().Resolve(reflect.TypeOf(ticker{}))
		}(i)
	}
	wg.Wait()
	for _, result := range results {
		require.NotNil(t, result)
		assert.Same(t, results[0], result)
	}
}

func TestResolver_CaseFormat(t *testing.T) {
	type sample struct {
		UserName string
		Nick     string `json:"nickName"`
		ID       int
	}
	resolver := NewResolver(WithCaseFormat(text.CaseFormatLowerUnderscore))
	assert.Equal(t, text.CaseFormatLowerUnderscore, resolver.CaseFormat())
	descriptor, err := resolver.Resolve(reflect.TypeOf(sample{}))
	require.NoError(t, err)
	assert.Equal(t, "user_name", descriptor.Lookup("UserName").Name)
	assert.Equal(t, "nickName", descriptor.Lookup("Nick").Name)
	assert.Equal(t, "id", descriptor.Lookup("ID").Name)

	camel, err := Resolve(reflect.TypeOf(sample{}))
	require.NoError(t, err)
	assert.NotSame(t, descriptor, camel)
	assert.Equal(t, "userName", camel.Lookup("UserName").Name)
}

func TestResolver_Errors(t *testing.T) {
	type withChan struct {
		C chan int
	}
	type withFunc struct {
		F func()
	}
	type withIntMap struct {
		M map[int]string
	}
	type withDoublePtr struct {
		P **int
	}
	type withReader struct {
		R interface{ Read([]byte) (int, error) }
	}
	var testCases = []struct {
		description string
		rType       reflect.Type
	}{
		{description: "nil type"},
		{description: "non struct", rType: reflect.TypeOf(1)},
		{description: "temporal", rType: reflect.TypeOf(time.Time{})},
		{description: "recursive", rType: reflect.TypeOf(selfRef{})},
		{description: "recursive through slice", rType: reflect.TypeOf(node{})},
		{description: "chan", rType: reflect.TypeOf(withChan{})},
		{description: "func", rType: reflect.TypeOf(withFunc{})},
		{description: "int map key", rType: reflect.TypeOf(withIntMap{})},
		{description: "double pointer", rType: reflect.TypeOf(withDoublePtr{})},
		{description: "non empty interface", rType: reflect.TypeOf(withReader{})},
	}
	for _, testCase := range testCases {
		_, err := Resolve(testCase.rType)
		require.Error(t, err, testCase.description)
		assert.True(t, errors.Is(err, ErrReflection), testCase.description)
	}
}

func TestResolver_Recursive_NotCached(t *testing.T) {
	_, err := Resolve(reflect.TypeOf(selfRef{}))
	require.Error(t, err)
	_, ok := cache.Load(cacheKey{rType: reflect.TypeOf(selfRef{}), caseFormat: text.CaseFormatLowerCamel})
	assert.False(t, ok)
}

func TestResolver_Embedded(t *testing.T) {
	descriptor, err := Resolve(reflect.TypeOf(withEmbedded{}))
	require.NoError(t, err)
	require.Len(t, descriptor.Fields, 2)
	field := descriptor.Fields[0]
	assert.Equal(t, "createdBy", field.Name)
	assert.Equal(t, "Audit.CreatedBy", field.Path())

	holder := &withEmbedded{}
	ptr := field.Pointer(reflect.ValueOf(holder).UnsafePointer())
	*(*string)(ptr) = "bob"
	require.NotNil(t, holder.Audit)
	assert.Equal(t, "bob", holder.CreatedBy)
}

func TestResolver_RegisteredAnnotation(t *testing.T) {
	type listing struct {
		Pairs int
	}
	annotation.Register(reflect.TypeOf(listing{}), "Pairs", "/**\n * @name num_market_pairs\n */")
	descriptor, err := Resolve(reflect.TypeOf(listing{}))
	require.NoError(t, err)
	assert.Equal(t, "num_market_pairs", descriptor.Lookup("Pairs").Alias)
}

func TestResolver_TimeLayout(t *testing.T) {
	type event struct {
		At   time.Time   `format:"timeLayout=2006-01-02"`
		Log  []time.Time `format:"dateFormat=YYYY-MM-DD"`
		Seen time.Time
	}
	descriptor, err := Resolve(reflect.TypeOf(event{}))
	require.NoError(t, err)
	assert.Equal(t, "2006-01-02", descriptor.Lookup("At").Layout)
	assert.Equal(t, "2006-01-02", descriptor.Lookup("Log").Elem.Layout)
	assert.Equal(t, "", descriptor.Lookup("Seen").Layout)
}

func BenchmarkResolve(b *testing.B) {
	rType := reflect.TypeOf(asset{})
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		if _, err := Resolve(rType); err != nil {
			b.Fatal(err)
		}
	}
}
