package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Branch glyphs for text output.
const (
	glyphBranch = "├─ "
	glyphLast   = "└─ "
	glyphPipe   = "│  "
	glyphSpace  = "   "
)

// Palette styles the tokens of a text line. The zero value renders plain text.
type Palette struct {
	// Enabled switches styling on. Disabled palettes ignore the styles below.
	Enabled bool

	Glyph   lipgloss.Style
	Name    lipgloss.Style
	Version lipgloss.Style
	Range   lipgloss.Style
}

// NewPalette returns an enabled palette whose styles render through r, so
// the color profile follows r's output rather than the process stdout.
func NewPalette(r *lipgloss.Renderer) Palette {
	return Palette{
		Enabled: true,
		Glyph:   r.NewStyle().Foreground(lipgloss.Color("240")),
		Name:    r.NewStyle().Foreground(lipgloss.Color("6")).Bold(true),
		Version: r.NewStyle().Foreground(lipgloss.Color("2")),
		Range:   r.NewStyle().Foreground(lipgloss.Color("3")),
	}
}

func (p Palette) render(s lipgloss.Style, text string) string {
	if !p.Enabled {
		return text
	}
	return s.Render(text)
}

// label renders "name@version (via range)", or "name (via range)" when the
// version is unknown.
func (p Palette) label(n *Node) string {
	var b strings.Builder
	b.WriteString(p.render(p.Name, n.descriptor.Name))
	if n.version != "" {
		b.WriteString(p.render(p.Version, "@"+n.version))
	}
	b.WriteString(" ")
	b.WriteString(p.render(p.Range, "(via "+n.descriptor.Range+")"))
	return b.String()
}

// WriteText writes the forest as an indented tree, one node per line.
func (f Forest) WriteText(w io.Writer, p Palette) error {
	var buf bytes.Buffer
	writeLevel(&buf, f, "", p)
	_, err := w.Write(buf.Bytes())
	return err
}

// ToText returns the text rendering of the forest.
func (f Forest) ToText(p Palette) string {
	var buf bytes.Buffer
	writeLevel(&buf, f, "", p)
	return buf.String()
}

func writeLevel(buf *bytes.Buffer, nodes []*Node, prefix string, p Palette) {
	for i, n := range nodes {
		last := i == len(nodes)-1

		connector, indent := glyphBranch, glyphPipe
		if last {
			connector, indent = glyphLast, glyphSpace
		}

		buf.WriteString(prefix)
		buf.WriteString(p.render(p.Glyph, connector))
		buf.WriteString(p.label(n))
		buf.WriteString("\n")

		writeLevel(buf, n.children, prefix+p.render(p.Glyph, indent), p)
	}
}

// JSONNode is the JSON shape of one node.
type JSONNode struct {
	Descriptor string     `json:"descriptor"`
	Version    string     `json:"version"`
	Children   []JSONNode `json:"children,omitempty"`
}

// JSONNodes converts the forest to its JSON shape.
func (f Forest) JSONNodes() []JSONNode {
	return toJSONNodes(f)
}

func toJSONNodes(nodes []*Node) []JSONNode {
	out := make([]JSONNode, 0, len(nodes))
	for _, n := range nodes {
		jn := JSONNode{
			Descriptor: n.descriptor.String(),
			Version:    n.version,
		}
		if len(n.children) > 0 {
			jn.Children = toJSONNodes(n.children)
		}
		out = append(out, jn)
	}
	return out
}

// ToJSON outputs the forest as an indented JSON array. Output is never
// styled; ranges such as ">=1.0.0 <2.0.0" are written without HTML escaping.
func (f Forest) ToJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f.JSONNodes()); err != nil {
		return nil, fmt.Errorf("encoding forest: %w", err)
	}
	return buf.Bytes(), nil
}

// ToDOT outputs the forest in Graphviz DOT format. Every node gets its own
// vertex, so a descriptor reached through two branches appears twice.
func (f Forest) ToDOT() string {
	var buf bytes.Buffer

	buf.WriteString("digraph why {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box];\n\n")

	ids := make(map[*Node]int)
	f.Walk(func(n *Node, _ int) bool {
		id := len(ids)
		ids[n] = id
		label := n.descriptor.Name
		if n.version != "" {
			label += "@" + n.version
		}
		label += "\n(via " + n.descriptor.Range + ")"
		fmt.Fprintf(&buf, "  n%d [label=%q];\n", id, label)
		return true
	})

	buf.WriteString("\n")

	f.Walk(func(n *Node, _ int) bool {
		for _, c := range n.children {
			fmt.Fprintf(&buf, "  n%d -> n%d;\n", ids[n], ids[c])
		}
		return true
	})

	buf.WriteString("}\n")
	return buf.String()
}
