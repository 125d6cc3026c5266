package delegate

import "strings"

// ---------------------------------------------------------------------------
// Source rendering
// ---------------------------------------------------------------------------

// Render emits facade source text for one definition: doc comment lines,
// one spec line per signature clause, then the forwarding function.
func (d Definition) Render() string {
	var sb strings.Builder

	for _, line := range strings.Split(d.Doc, "\n") {
		sb.WriteString("## ")
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	for _, clause := range d.Clauses {
		sb.WriteString("spec ")
		sb.WriteString(clause.String())
		sb.WriteByte('\n')
	}

	sb.WriteString("fn ")
	sb.WriteString(d.Name)
	sb.WriteByte('(')
	sb.WriteString(strings.Join(d.Params, ", "))
	sb.WriteString(") {\n")
	sb.WriteString("  ")
	sb.WriteString(d.Target)
	sb.WriteByte('.')
	sb.WriteString(d.TargetName)
	sb.WriteByte('(')
	sb.WriteString(strings.Join(d.Args, ", "))
	sb.WriteString(")\n}\n")

	return sb.String()
}

// RenderSource emits a complete generated source file for a batch of
// definitions, with a marker header so the file is recognizably
// machine-written.
func RenderSource(defs []Definition) string {
	var sb strings.Builder
	sb.WriteString("# Code generated by facade gen. DO NOT EDIT.\n")

	for _, d := range defs {
		sb.WriteByte('\n')
		sb.WriteString(d.Render())
	}
	return sb.String()
}
