package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillhq/quill/pkg/models"
)

func TestCanonicalizeProject(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		want  string
		found bool
	}{
		{name: "Short alias", raw: "eng", want: "Engineering", found: true},
		{name: "Canonical name", raw: "Engineering", want: "Engineering", found: true},
		{name: "Project key", raw: "ENG", want: "Engineering", found: true},
		{name: "Mixed case with whitespace", raw: "  ProDuct ", want: "Product", found: true},
		{name: "Demo alias", raw: "sandbox", want: "Demo", found: true},
		{name: "Unknown project", raw: "warehouse", found: false},
		{name: "Empty", raw: "", found: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Canonicalize(models.FieldProject, tt.raw)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestCanonicalizeTypeAndPriority(t *testing.T) {
	tests := []struct {
		field models.Field
		raw   string
		want  string
	}{
		{models.FieldType, "bug", TypeBug},
		{models.FieldType, "defect", TypeBug},
		{models.FieldType, "feature", TypeStory},
		{models.FieldType, "EPIC", TypeEpic},
		{models.FieldPriority, "urgent", PriorityHighest},
		{models.FieldPriority, "critical", PriorityHighest},
		{models.FieldPriority, "normal", PriorityMedium},
		{models.FieldPriority, "minor", PriorityLow},
	}

	for _, tt := range tests {
		got, ok := Canonicalize(tt.field, tt.raw)
		require.True(t, ok, "expected %q to canonicalize for %s", tt.raw, tt.field)
		assert.Equal(t, tt.want, got)
	}
}

// Canonicalizing an already canonical value must be a fixed point.
func TestCanonicalizeIdempotent(t *testing.T) {
	samples := map[models.Field][]string{
		models.FieldType:     {"bug", "chore", "story", "epic"},
		models.FieldPriority: {"trivial", "low", "normal", "major", "blocker"},
		models.FieldProject:  {"eng", "prod", "demo"},
	}

	for field, raws := range samples {
		for _, raw := range raws {
			once, ok := Canonicalize(field, raw)
			require.True(t, ok)
			twice, ok := Canonicalize(field, once)
			require.True(t, ok)
			assert.Equal(t, once, twice)
		}
	}
}

func TestCanonicalizeFreeTextPassthrough(t *testing.T) {
	got, ok := Canonicalize(models.FieldTitle, "  anything at all ")
	assert.True(t, ok)
	assert.Equal(t, "  anything at all ", got)
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid(models.FieldType, TypeBug))
	assert.False(t, IsValid(models.FieldType, "bug"), "aliases are not canonical")
	assert.False(t, IsValid(models.FieldPriority, "Banana"))
	assert.True(t, IsValid(models.FieldDescription, "free text is always valid"))
}

func TestDefaults(t *testing.T) {
	for _, field := range []models.Field{models.FieldType, models.FieldProject, models.FieldPriority} {
		value, ok := Default(field)
		require.True(t, ok)
		assert.True(t, IsValid(field, value), "default for %s must be canonical", field)
	}

	_, ok := Default(models.FieldTitle)
	assert.False(t, ok, "free-text fields have no default")
}

func TestProjectKey(t *testing.T) {
	key, ok := ProjectKey("Engineering")
	require.True(t, ok)
	assert.Equal(t, "ENG", key)

	_, ok = ProjectKey("eng")
	assert.False(t, ok, "keys are looked up by canonical name only")
}

func TestValuesCoverEnumFields(t *testing.T) {
	assert.Len(t, Values(models.FieldType), 4)
	assert.Len(t, Values(models.FieldPriority), 5)
	assert.NotEmpty(t, Values(models.FieldProject))
	assert.Nil(t, Values(models.FieldTitle))
}
