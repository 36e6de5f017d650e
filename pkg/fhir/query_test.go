package fhir_test

import (
	"testing"

	"github.com/medwire-io/fhir-client/pkg/fhir"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchParams_With(t *testing.T) {
	t.Parallel()

	params := fhir.NewSearchParams().
		With("name", "smith").
		WithInt("_count", 50).
		WithBool("active", true)

	assert.Equal(t, []string{"name", "_count", "active"}, params.Keys())
	assert.Equal(t, []string{"smith"}, params.Values("name"))
	assert.Equal(t, []string{"50"}, params.Values("_count"))
	assert.Equal(t, []string{"true"}, params.Values("active"))
	assert.False(t, params.IsList("name"))
}

func TestSearchParams_ScalarBecomesList(t *testing.T) {
	t.Parallel()

	params := fhir.NewSearchParams().With("status", "active")
	assert.False(t, params.IsList("status"))

	// A second value for the same key promotes it to a list; the key
	// keeps its original position.
	params.With("status", "completed")
	assert.True(t, params.IsList("status"))
	assert.Equal(t, []string{"active", "completed"}, params.Values("status"))
	assert.Equal(t, []string{"status"}, params.Keys())
}

func TestSearchParams_MultiValueIsList(t *testing.T) {
	t.Parallel()

	params := fhir.NewSearchParams().With("code", "a", "b")
	assert.True(t, params.IsList("code"))
	assert.Equal(t, []string{"a", "b"}, params.Values("code"))
}

func TestSearchParams_Encode(t *testing.T) {
	t.Parallel()

	params := fhir.NewSearchParams().
		With("name", "smith").
		With("status", "active", "completed").
		With("name", "jones")

	// Keys encode in insertion order, repeated keys as repeated pairs.
	assert.Equal(t, "name=smith&name=jones&status=active&status=completed", params.Encode())
}

func TestSearchParams_EncodeEscapes(t *testing.T) {
	t.Parallel()

	params := fhir.NewSearchParams().With("name:contains", "van der berg")
	assert.Equal(t, "name%3Acontains=van+der+berg", params.Encode())
}

func TestSearchParams_Clone(t *testing.T) {
	t.Parallel()

	original := fhir.NewSearchParams().With("status", "active", "completed")
	clone := original.Clone()

	clone.With("status", "draft").With("name", "smith")

	// The original is untouched by mutations of the clone.
	assert.Equal(t, []string{"active", "completed"}, original.Values("status"))
	assert.False(t, original.Has("name"))
	assert.Equal(t, []string{"active", "completed", "draft"}, clone.Values("status"))
}

func TestSearchParams_NilReceiver(t *testing.T) {
	t.Parallel()

	var params *fhir.SearchParams

	assert.Equal(t, 0, params.Len())
	assert.Nil(t, params.Keys())
	assert.Nil(t, params.Values("x"))
	assert.False(t, params.Has("x"))
	assert.False(t, params.IsList("x"))
	assert.Empty(t, params.Encode())
	assert.Empty(t, params.URLValues())
	assert.NotNil(t, params.Clone())
}

func TestParseQuery(t *testing.T) {
	t.Parallel()

	params, err := fhir.ParseQuery("name=smith&status=active&status=completed&_count=10")
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "status", "_count"}, params.Keys())
	assert.Equal(t, []string{"active", "completed"}, params.Values("status"))
	assert.True(t, params.IsList("status"))
	assert.False(t, params.IsList("name"))
}

func TestParseQuery_Empty(t *testing.T) {
	t.Parallel()

	params, err := fhir.ParseQuery("")
	require.NoError(t, err)
	assert.Equal(t, 0, params.Len())
}

func TestParseQuery_Escaped(t *testing.T) {
	t.Parallel()

	params, err := fhir.ParseQuery("name%3Acontains=van+der+berg&empty=")
	require.NoError(t, err)

	assert.Equal(t, []string{"van der berg"}, params.Values("name:contains"))
	assert.Equal(t, []string{""}, params.Values("empty"))
}

func TestParseQuery_Invalid(t *testing.T) {
	t.Parallel()

	_, err := fhir.ParseQuery("name=%zz")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parsing query value")
}

func TestMergeQuery_Disjoint(t *testing.T) {
	t.Parallel()

	params := fhir.NewSearchParams().With("_count", "10")

	merged, err := fhir.MergeQuery("name=smith", params)
	require.NoError(t, err)

	// Query-derived keys come first, explicit parameters after.
	assert.Equal(t, []string{"name", "_count"}, merged.Keys())
	assert.Equal(t, "name=smith&_count=10", merged.Encode())
}

func TestMergeQuery_CollidingKeyBecomesList(t *testing.T) {
	t.Parallel()

	params := fhir.NewSearchParams().With("status", "active")

	merged, err := fhir.MergeQuery("status=active", params)
	require.NoError(t, err)

	// Same single value on both sides still merges into a two-element
	// list, query side first.
	assert.True(t, merged.IsList("status"))
	assert.Equal(t, []string{"active", "active"}, merged.Values("status"))
}

func TestMergeQuery_OrderWithinKey(t *testing.T) {
	t.Parallel()

	params := fhir.NewSearchParams().With("code", "c", "d")

	merged, err := fhir.MergeQuery("code=a&code=b", params)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, merged.Values("code"))
}

func TestMergeQuery_DoesNotMutateInputs(t *testing.T) {
	t.Parallel()

	params := fhir.NewSearchParams().With("status", "active")

	_, err := fhir.MergeQuery("status=draft", params)
	require.NoError(t, err)

	assert.Equal(t, []string{"active"}, params.Values("status"))
	assert.False(t, params.IsList("status"))
}

func TestMergeQuery_NilParams(t *testing.T) {
	t.Parallel()

	merged, err := fhir.MergeQuery("name=smith", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"smith"}, merged.Values("name"))
}

func TestMergeQuery_Associative(t *testing.T) {
	t.Parallel()

	// Merging in two steps equals merging all at once.
	first := fhir.NewSearchParams().With("a", "1")
	second := fhir.NewSearchParams().With("b", "2")

	step1, err := fhir.MergeQuery("q=x", first)
	require.NoError(t, err)

	step2, err := fhir.MergeQuery(step1.Encode(), second)
	require.NoError(t, err)

	combined := fhir.NewSearchParams().With("a", "1").With("b", "2")
	allAtOnce, err := fhir.MergeQuery("q=x", combined)
	require.NoError(t, err)

	assert.Equal(t, allAtOnce.Encode(), step2.Encode())
}

func TestSearchParams_URLValues(t *testing.T) {
	t.Parallel()

	params := fhir.NewSearchParams().With("status", "active", "completed")
	values := params.URLValues()

	assert.Equal(t, []string{"active", "completed"}, values["status"])

	// Mutating the returned values must not touch the set.
	values["status"][0] = "draft"
	assert.Equal(t, []string{"active", "completed"}, params.Values("status"))
}
