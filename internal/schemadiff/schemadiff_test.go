package schemadiff

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeverityMax(t *testing.T) {
	tests := []struct {
		a, b     Severity
		expected Severity
	}{
		{SeverityTrivial, SeverityDangerous, SeverityDangerous},
		{SeverityBreaking, SeverityDangerous, SeverityBreaking},
		{SeverityDangerous, SeverityTrivial, SeverityDangerous},
		{"", "", SeverityTrivial},
		{"", SeverityBreaking, SeverityBreaking},
		{"CATASTROPHIC", SeverityTrivial, SeverityBreaking},
		{SeverityDangerous, "SEVERE", SeverityBreaking},
	}

	for _, tt := range tests {
		if got := tt.a.Max(tt.b); got != tt.expected {
			t.Errorf("%q.Max(%q) = %q, want %q", tt.a, tt.b, got, tt.expected)
		}
	}
}

func TestResult_UnknownSeverityIsBreaking(t *testing.T) {
	r := Result{ContentTypeChanges: []ContentTypeChange{{
		Type:     ChangeUpdated,
		Severity: SeverityTrivial,
		Name:     "Post",
		FieldChanges: []FieldChange{{
			Type:     ChangeUpdated,
			Severity: "CRITICAL",
			Name:     "title",
		}},
	}}}

	assert.Equal(t, SeverityBreaking, r.MaxSeverity())
	assert.True(t, r.HasBreaking())
}

func TestResult_Empty(t *testing.T) {
	var r Result
	assert.True(t, r.IsEmpty())
	assert.Equal(t, SeverityTrivial, r.MaxSeverity())
	assert.False(t, r.HasBreaking())
}

func TestResult_NestedBreakingChange(t *testing.T) {
	// The top level says trivial, a validation attribute deep below is breaking
	r := Result{ContentTypeChanges: []ContentTypeChange{
		{Type: ChangeUpdated, Severity: SeverityTrivial, Name: "Post"},
		{
			Type:     ChangeUpdated,
			Severity: SeverityTrivial,
			Name:     "Author",
			FieldChanges: []FieldChange{{
				Type:     ChangeUpdated,
				Severity: SeverityTrivial,
				Name:     "name",
				ValidationChanges: []ValidationChange{{
					Type:     ChangeUpdated,
					Severity: SeverityTrivial,
					Name:     "MAX_LENGTH",
					AttributeChanges: []AttributeChange{{
						Type:     ChangeUpdated,
						Severity: SeverityBreaking,
						Name:     "lengthMax",
					}},
				}},
			}},
		},
	}}

	assert.Equal(t, SeverityBreaking, r.MaxSeverity())
	assert.True(t, r.HasBreaking())
	assert.Equal(t, map[Severity]int{SeverityTrivial: 1, SeverityBreaking: 1}, r.Count())
}

func TestResult_DangerousEnumValue(t *testing.T) {
	r := Result{ContentTypeChanges: []ContentTypeChange{{
		Type:     ChangeUpdated,
		Severity: SeverityTrivial,
		Name:     "Color",
		EnumValueChanges: []EnumValueChange{
			{Type: ChangeDeleted, Severity: SeverityDangerous, Name: "red"},
		},
	}}}

	assert.Equal(t, SeverityDangerous, r.MaxSeverity())
	assert.False(t, r.HasBreaking())
}

func TestResult_DecodesBackendPayload(t *testing.T) {
	payload := `{
  "contentTypeChanges": [{
    "type": "UPDATED",
    "severity": "DANGEROUS",
    "name": "Post",
    "description": null,
    "attributeChanges": [{"type": "UPDATED", "severity": "TRIVIAL", "name": "name", "from": "Post", "to": "Article", "description": null}],
    "fieldChanges": [{"type": "DELETED", "severity": "DANGEROUS", "name": "legacy", "attributeChanges": null, "validationChanges": null}]
  }]
}`

	var r Result
	require.NoError(t, json.Unmarshal([]byte(payload), &r))
	require.Len(t, r.ContentTypeChanges, 1)

	ct := r.ContentTypeChanges[0]
	assert.Equal(t, ChangeUpdated, ct.Type)
	require.Len(t, ct.AttributeChanges, 1)
	assert.Equal(t, "Post", *ct.AttributeChanges[0].From)
	assert.Equal(t, "Article", *ct.AttributeChanges[0].To)
	assert.Equal(t, ChangeDeleted, ct.FieldChanges[0].Type)
	assert.Equal(t, SeverityDangerous, r.MaxSeverity())
}
