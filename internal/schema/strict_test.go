package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSchema() *Node {
	n := Object(map[string]*Node{
		"path":   String("file path"),
		"offset": Integer("starting line"),
		"tags": Array(
			String("a tag"),
		),
		"options": Object(map[string]*Node{
			"depth":  Integer("recursion depth"),
			"follow": Boolean("follow links"),
		}, "depth"),
	}, "path")
	n.MetaSchema = "http://json-schema.org/draft-07/schema#"
	n.Properties["path"].Pattern = `^[^\0]+$`
	n.Properties["path"].Format = "uri-reference"
	n.Properties["offset"].Default = 0
	return n
}

func TestStrict_RequiresAllProperties(t *testing.T) {
	s := Strict(sampleSchema())

	assert.ElementsMatch(t, []string{"offset", "options", "path", "tags"}, s.Required)
	require.NotNil(t, s.AdditionalProperties)
	assert.False(t, *s.AdditionalProperties)
}

func TestStrict_WidensOptionalsToNull(t *testing.T) {
	s := Strict(sampleSchema())

	// path was declared required: stays a single type.
	assert.Equal(t, "string", s.Properties["path"].Type)
	assert.Empty(t, s.Properties["path"].Types)

	// offset was optional: widened to [integer, null].
	assert.ElementsMatch(t, []string{"integer", "null"}, s.Properties["offset"].Types)

	// options was optional: object nodes widen through Nullable.
	assert.True(t, s.Properties["options"].Nullable)
}

func TestStrict_RecursesIntoNestedObjects(t *testing.T) {
	s := Strict(sampleSchema())
	opts := s.Properties["options"]

	assert.ElementsMatch(t, []string{"depth", "follow"}, opts.Required)
	require.NotNil(t, opts.AdditionalProperties)
	assert.False(t, *opts.AdditionalProperties)

	// depth was required inside options: not widened.
	assert.Equal(t, "integer", opts.Properties["depth"].Type)
	// follow was optional: widened.
	assert.ElementsMatch(t, []string{"boolean", "null"}, opts.Properties["follow"].Types)
}

func TestStrict_StripsSoftKeywords(t *testing.T) {
	s := Strict(sampleSchema())

	assert.Empty(t, s.Properties["path"].Pattern)
	assert.Empty(t, s.Properties["path"].Format)
	assert.Nil(t, s.Properties["offset"].Default)
	assert.Empty(t, s.MetaSchema)
}

func TestStrict_KeepsDescriptionsAndEnums(t *testing.T) {
	n := Object(map[string]*Node{
		"mode": String("operating mode").WithEnum("fast", "safe"),
	}, "mode")

	s := Strict(n)
	assert.Equal(t, "operating mode", s.Properties["mode"].Description)
	assert.Equal(t, []any{"fast", "safe"}, s.Properties["mode"].Enum)
}

func TestStrict_UnionGainsNullVariant(t *testing.T) {
	n := Object(map[string]*Node{
		"value": Union(String("text"), Integer("number")),
	})

	s := Strict(n)
	variants := s.Properties["value"].Variants
	require.Len(t, variants, 3)
	assert.Equal(t, "null", variants[2].Type)
}

func TestStrict_UnionWithNullUnchanged(t *testing.T) {
	n := Object(map[string]*Node{
		"value": Union(String("text"), Null()),
	})

	s := Strict(n)
	assert.Len(t, s.Properties["value"].Variants, 2)
}

func TestStrict_Idempotent(t *testing.T) {
	once := Strict(sampleSchema())
	twice := Strict(once)

	assert.Equal(t, once.JSON(), twice.JSON())
}

func TestStrict_DoesNotModifyInput(t *testing.T) {
	original := sampleSchema()
	before := original.JSON()

	_ = Strict(original)

	assert.Equal(t, before, original.JSON())
}

func TestStrict_Nil(t *testing.T) {
	assert.Nil(t, Strict(nil))
	assert.Nil(t, Loose(nil))
}

func TestLoose_KeepsOptionalityAndSoftKeywords(t *testing.T) {
	l := Loose(sampleSchema())

	assert.Equal(t, []string{"path"}, l.Required)
	assert.Equal(t, "uri-reference", l.Properties["path"].Format)
	assert.Equal(t, 0, l.Properties["offset"].Default)
	assert.Empty(t, l.MetaSchema)
}

func TestLoose_StripsAdditionalProperties(t *testing.T) {
	f := false
	n := sampleSchema()
	n.AdditionalProperties = &f
	n.Properties["options"].AdditionalProperties = &f

	l := Loose(n)
	assert.Nil(t, l.AdditionalProperties)
	assert.Nil(t, l.Properties["options"].AdditionalProperties)
}

func TestJSON_NullableObjectType(t *testing.T) {
	s := Strict(sampleSchema())
	rendered := s.Properties["options"].JSON()

	assert.Equal(t, []any{"object", "null"}, rendered["type"])
}

func TestJSON_RequiredSorted(t *testing.T) {
	s := Strict(sampleSchema())
	rendered := s.JSON()

	assert.Equal(t, []string{"offset", "options", "path", "tags"}, rendered["required"])
}
