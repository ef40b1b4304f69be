// Package schemadiff models the schema change tree the backend returns when
// it compares a new schema against the project's current one.
package schemadiff

// ChangeType says what happened to a schema element
type ChangeType string

const (
	ChangeCreated ChangeType = "CREATED"
	ChangeUpdated ChangeType = "UPDATED"
	ChangeDeleted ChangeType = "DELETED"
)

// Severity classifies how risky a change is
type Severity string

const (
	SeverityTrivial   Severity = "TRIVIAL"
	SeverityDangerous Severity = "DANGEROUS"
	SeverityBreaking  Severity = "BREAKING"
)

// Effective returns the severity a change is treated with. A missing
// severity is trivial; a value this client does not know is breaking, so
// the gate refuses it.
func (s Severity) Effective() Severity {
	switch s {
	case SeverityTrivial, SeverityDangerous, SeverityBreaking:
		return s
	case "":
		return SeverityTrivial
	default:
		return SeverityBreaking
	}
}

func (s Severity) rank() int {
	switch s.Effective() {
	case SeverityBreaking:
		return 2
	case SeverityDangerous:
		return 1
	default:
		return 0
	}
}

// Max returns the more severe of s and other, both taken as Effective
func (s Severity) Max(other Severity) Severity {
	if other.rank() > s.rank() {
		return other.Effective()
	}
	return s.Effective()
}

// AttributeChange is a change of a single attribute value
type AttributeChange struct {
	Type        ChangeType `json:"type"`
	Severity    Severity   `json:"severity"`
	Name        string     `json:"name"`
	From        *string    `json:"from,omitempty"`
	To          *string    `json:"to,omitempty"`
	Description string     `json:"description,omitempty"`
}

// ValidationChange is a change of a field validation
type ValidationChange struct {
	Type             ChangeType        `json:"type"`
	Severity         Severity          `json:"severity"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	AttributeChanges []AttributeChange `json:"attributeChanges,omitempty"`
}

// FieldChange is a change of a content type field
type FieldChange struct {
	Type              ChangeType         `json:"type"`
	Severity          Severity           `json:"severity"`
	Name              string             `json:"name"`
	Description       string             `json:"description,omitempty"`
	AttributeChanges  []AttributeChange  `json:"attributeChanges,omitempty"`
	ValidationChanges []ValidationChange `json:"validationChanges,omitempty"`
}

// EnumValueChange is a change of a hashmap key
type EnumValueChange struct {
	Type             ChangeType        `json:"type"`
	Severity         Severity          `json:"severity"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	AttributeChanges []AttributeChange `json:"attributeChanges,omitempty"`
}

// UnionMemberChange is a change of a union member
type UnionMemberChange struct {
	Type             ChangeType        `json:"type"`
	Severity         Severity          `json:"severity"`
	Name             string            `json:"name"`
	Description      string            `json:"description,omitempty"`
	AttributeChanges []AttributeChange `json:"attributeChanges,omitempty"`
}

// ContentTypeChange is a change of one content type and everything below it
type ContentTypeChange struct {
	Type               ChangeType          `json:"type"`
	Severity           Severity            `json:"severity"`
	Name               string              `json:"name"`
	Description        string              `json:"description,omitempty"`
	AttributeChanges   []AttributeChange   `json:"attributeChanges,omitempty"`
	FieldChanges       []FieldChange       `json:"fieldChanges,omitempty"`
	EnumValueChanges   []EnumValueChange   `json:"enumValueChanges,omitempty"`
	UnionMemberChanges []UnionMemberChange `json:"unionMemberChanges,omitempty"`
}

// Result is the full change tree
type Result struct {
	ContentTypeChanges []ContentTypeChange `json:"contentTypeChanges"`
}

// IsEmpty reports whether there is nothing to apply
func (r Result) IsEmpty() bool {
	return len(r.ContentTypeChanges) == 0
}

// MaxSeverity returns the highest severity found anywhere in the tree
func (r Result) MaxSeverity() Severity {
	highest := SeverityTrivial
	for _, ct := range r.ContentTypeChanges {
		highest = highest.Max(ct.MaxSeverity())
	}
	return highest
}

// HasBreaking reports whether any node of the tree is breaking
func (r Result) HasBreaking() bool {
	return r.MaxSeverity() == SeverityBreaking
}

// MaxSeverity returns the highest severity of the change and its children
func (c ContentTypeChange) MaxSeverity() Severity {
	highest := c.Severity.Max(attributesSeverity(c.AttributeChanges))
	for _, f := range c.FieldChanges {
		highest = highest.Max(f.MaxSeverity())
	}
	for _, e := range c.EnumValueChanges {
		highest = highest.Max(e.Severity).Max(attributesSeverity(e.AttributeChanges))
	}
	for _, u := range c.UnionMemberChanges {
		highest = highest.Max(u.Severity).Max(attributesSeverity(u.AttributeChanges))
	}
	return highest
}

// MaxSeverity returns the highest severity of the change and its children
func (f FieldChange) MaxSeverity() Severity {
	highest := f.Severity.Max(attributesSeverity(f.AttributeChanges))
	for _, v := range f.ValidationChanges {
		highest = highest.Max(v.Severity).Max(attributesSeverity(v.AttributeChanges))
	}
	return highest
}

func attributesSeverity(changes []AttributeChange) Severity {
	highest := SeverityTrivial
	for _, a := range changes {
		highest = highest.Max(a.Severity)
	}
	return highest
}

// Count returns the number of content type changes per severity
func (r Result) Count() map[Severity]int {
	counts := make(map[Severity]int)
	for _, ct := range r.ContentTypeChanges {
		counts[ct.MaxSeverity()]++
	}
	return counts
}
