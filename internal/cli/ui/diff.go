package ui

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/mozaik-cms/mozaik/internal/schemadiff"
)

// DiffPrinter renders a schema change tree, one line per change and two
// spaces of indentation per level
type DiffPrinter struct {
	writer  io.Writer
	noColor bool
}

// NewDiffPrinter creates a printer writing to w
func NewDiffPrinter(w io.Writer, noColor bool) *DiffPrinter {
	return &DiffPrinter{writer: w, noColor: noColor}
}

// Print writes the change tree followed by a verdict on its severity
func (p *DiffPrinter) Print(diff *schemadiff.Result) {
	if diff == nil || diff.IsEmpty() {
		fmt.Fprintln(p.writer, Info("No changes found.", p.noColor))
		return
	}

	var b strings.Builder
	b.WriteString("Found the following changes:\n\n")
	for _, ct := range diff.ContentTypeChanges {
		p.contentType(&b, ct)
		b.WriteString("\n")
	}
	fmt.Fprint(p.writer, b.String())

	switch diff.MaxSeverity() {
	case schemadiff.SeverityBreaking:
		fmt.Fprint(p.writer, Notice{Message: "The schema can not be applied as it has breaking changes."}.Render(p.noColor))
	case schemadiff.SeverityDangerous:
		fmt.Fprint(p.writer, Warning("Some of the changes might be dangerous, please double check the schema before applying.", nil, p.noColor))
	}
}

func (p *DiffPrinter) contentType(b *strings.Builder, c schemadiff.ContentTypeChange) {
	p.line(b, 0, c.Severity, fmt.Sprintf("%s Content type %q", marker(c.Type), c.Name), c.Description)
	if c.Type == schemadiff.ChangeDeleted {
		return
	}
	p.attributes(b, 1, c.AttributeChanges)
	for _, f := range c.FieldChanges {
		p.field(b, f)
	}
	for _, e := range c.EnumValueChanges {
		p.line(b, 1, e.Severity, fmt.Sprintf("%s Enum value %q", marker(e.Type), e.Name), e.Description)
		if e.Type != schemadiff.ChangeDeleted {
			p.attributes(b, 2, e.AttributeChanges)
		}
	}
	for _, u := range c.UnionMemberChanges {
		p.line(b, 1, u.Severity, fmt.Sprintf("%s Union member %q", marker(u.Type), u.Name), u.Description)
		if u.Type != schemadiff.ChangeDeleted {
			p.attributes(b, 2, u.AttributeChanges)
		}
	}
}

func (p *DiffPrinter) field(b *strings.Builder, f schemadiff.FieldChange) {
	p.line(b, 1, f.Severity, fmt.Sprintf("%s Field %q", marker(f.Type), f.Name), f.Description)
	if f.Type == schemadiff.ChangeDeleted {
		return
	}
	p.attributes(b, 2, f.AttributeChanges)
	for _, v := range f.ValidationChanges {
		p.line(b, 2, v.Severity, fmt.Sprintf("%s Validation %q", marker(v.Type), v.Name), v.Description)
		if v.Type != schemadiff.ChangeDeleted {
			p.attributes(b, 3, v.AttributeChanges)
		}
	}
}

func (p *DiffPrinter) attributes(b *strings.Builder, depth int, changes []schemadiff.AttributeChange) {
	for _, a := range changes {
		value := quote(a.To)
		if a.From != nil {
			value = quote(a.From) + " -> " + quote(a.To)
		}
		p.line(b, depth, a.Severity, fmt.Sprintf("%s %s: %s", marker(a.Type), a.Name, value), a.Description)
	}
}

// line writes text colored by severity; breaking and dangerous changes get
// their description as a highlighted badge
func (p *DiffPrinter) line(b *strings.Builder, depth int, severity schemadiff.Severity, text, description string) {
	var textColor, badge *color.Color
	switch severity.Effective() {
	case schemadiff.SeverityBreaking:
		textColor = color.New(color.FgRed)
		badge = color.New(color.BgRed, color.FgWhite)
	case schemadiff.SeverityDangerous:
		textColor = color.New(color.FgYellow)
		badge = color.New(color.BgYellow, color.FgBlack)
	default:
		textColor = color.New(color.FgWhite)
	}
	if p.noColor {
		textColor.DisableColor()
		if badge != nil {
			badge.DisableColor()
		}
	}

	b.WriteString(strings.Repeat("  ", depth))
	b.WriteString(textColor.Sprint(text))
	if badge != nil && description != "" {
		b.WriteString(" " + badge.Sprintf(" %s ", description))
	}
	b.WriteString("\n")
}

func marker(t schemadiff.ChangeType) string {
	switch t {
	case schemadiff.ChangeCreated:
		return "(+)"
	case schemadiff.ChangeUpdated:
		return "(~)"
	case schemadiff.ChangeDeleted:
		return "(-)"
	default:
		return "   "
	}
}

func quote(s *string) string {
	if s == nil {
		return `""`
	}
	data, _ := json.Marshal(*s)
	return string(data)
}
