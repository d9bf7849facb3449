package plantuml

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Builder collects PlantUML lines with indentation and stable element aliases.
type Builder struct {
	lines   []string
	depth   int
	aliases map[string]string
	used    map[string]bool
}

// NewBuilder returns a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		aliases: make(map[string]string),
		used:    make(map[string]bool),
	}
}

// Line appends one formatted line at the current depth.
func (b *Builder) Line(format string, args ...any) {
	b.lines = append(b.lines, strings.Repeat("  ", b.depth)+fmt.Sprintf(format, args...))
}

// Open appends a line ending in "{" and indents what follows.
func (b *Builder) Open(format string, args ...any) {
	b.Line(format+" {", args...)
	b.depth++
}

// Close ends the innermost block opened with Open.
func (b *Builder) Close() {
	if b.depth > 0 {
		b.depth--
	}
	b.Line("}")
}

// Blank appends an empty line.
func (b *Builder) Blank() {
	b.lines = append(b.lines, "")
}

// Alias returns the PlantUML identifier for an element id, unique within this builder.
func (b *Builder) Alias(id string) string {
	if a, ok := b.aliases[id]; ok {
		return a
	}
	base := SanitizeName(id)
	alias := base
	for n := 2; b.used[alias]; n++ {
		alias = base + "_" + strconv.Itoa(n)
	}
	b.aliases[id] = alias
	b.used[alias] = true
	return alias
}

// Build returns the complete source wrapped in @startuml/@enduml.
func (b *Builder) Build() string {
	var sb strings.Builder
	sb.WriteString("@startuml\n")
	for _, l := range b.lines {
		sb.WriteString(l)
		sb.WriteString("\n")
	}
	sb.WriteString("@enduml\n")
	return sb.String()
}

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9_]`)

// SanitizeName converts an element id to a PlantUML-safe alias (e.g. "1" -> e_1, "orders-api" -> e_orders_api).
func SanitizeName(id string) string {
	return "e_" + unsafeChars.ReplaceAllString(id, "_")
}

// Quote renders s as a PlantUML string literal argument.
func Quote(s string) string {
	s = strings.ReplaceAll(s, `"`, "'")
	s = strings.ReplaceAll(s, "\r\n", `\n`)
	s = strings.ReplaceAll(s, "\n", `\n`)
	return `"` + s + `"`
}
