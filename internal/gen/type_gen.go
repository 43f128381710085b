package gen

import (
	"strconv"
	"strings"

	"type-duplicate/internal/synth"
)

// wireField is one field of the JSON form of a companion record. Companion
// fields are unexported, so the wire struct mirrors them with exported names.
type wireField struct {
	// Field is the companion field name.
	Field string
	// Name is the exported wire struct field name.
	Name string
	Type string
	// Key is the JSON object key.
	Key string
}

func wireFields(d synth.DerivedType) []wireField {
	fields := make([]wireField, 0, len(d.Fields))
	for _, f := range d.Fields {
		fields = append(fields, wireField{
			Field: f.Name,
			Name:  upperFirst(f.Name),
			Type:  f.Type,
			Key:   f.Name,
		})
	}

	return fields
}

// debugFormat returns the quoted format of the debug form, e.g.
// "SomeStructBson { a: %v, b: %v }".
func debugFormat(d synth.DerivedType) string {
	if len(d.Fields) == 0 {
		return strconv.Quote(d.Name + " {}")
	}

	parts := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		parts = append(parts, f.Name+": %v")
	}

	return strconv.Quote(d.Name + " { " + strings.Join(parts, ", ") + " }")
}

// fieldValues returns the comma separated companion fields read from recv.
func fieldValues(recv string, d synth.DerivedType) string {
	values := make([]string, 0, len(d.Fields))
	for _, f := range d.Fields {
		values = append(values, recv+"."+f.Name)
	}

	return strings.Join(values, ", ")
}

func upperFirst(s string) string {
	if s == "" {
		return ""
	}

	return strings.ToUpper(s[:1]) + s[1:]
}
