// Package diagram draws the encoding of a chart spec: which dataset fields
// feed which chart channels.
package diagram

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-graphviz"
	"github.com/junkd0g/dataexplorer/internal/chart"
	"github.com/pkg/errors"
)

// ColorScheme defines node colors for each layer of the diagram.
var ColorScheme = map[string]string{
	"field":   "#4ECDC4", // Dataset columns
	"channel": "#4A90D9", // Visual channels
	"chart":   "#9B59B6", // Chart node
}

// Format is a diagram output format.
type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

// FormatForPath picks SVG for ".svg" paths and PNG otherwise.
func FormatForPath(path string) Format {
	if strings.HasSuffix(strings.ToLower(path), ".svg") {
		return SVG
	}
	return PNG
}

// Render draws the encoding diagram of spec in format to w.
func Render(ctx context.Context, spec chart.Spec, format Format, w io.Writer) error {
	g, err := graphviz.New(ctx)
	if err != nil {
		return fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer g.Close()

	graph, err := graphviz.ParseBytes([]byte(GenerateDOT(spec)))
	if err != nil {
		return fmt.Errorf("failed to parse DOT: %w", err)
	}
	defer graph.Close()

	gvFormat := graphviz.PNG
	if format == SVG {
		gvFormat = graphviz.SVG
	}

	if err := g.Render(ctx, graph, gvFormat, w); err != nil {
		return fmt.Errorf("failed to render graph: %w", err)
	}
	return nil
}

// Generate renders the diagram of spec and saves it to outputPath. The
// format follows the file extension.
func Generate(ctx context.Context, spec chart.Spec, outputPath string) error {
	var buf bytes.Buffer
	if err := Render(ctx, spec, FormatForPath(outputPath), &buf); err != nil {
		return err
	}
	if err := writeFileBytes(outputPath, buf.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write output")
	}
	return nil
}

// GenerateDOT creates a left-to-right DOT graph of fields, channels and the
// chart they produce.
func GenerateDOT(spec chart.Spec) string {
	var sb strings.Builder

	sb.WriteString("digraph Encoding {\n")
	sb.WriteString("  rankdir=LR;\n")
	sb.WriteString(fmt.Sprintf("  label=\"%s\";\n", escape(spec.Title)))
	sb.WriteString("  labelloc=t;\n")
	sb.WriteString("  fontsize=20;\n")
	sb.WriteString("  fontname=\"Helvetica-Bold\";\n")
	sb.WriteString("  pad=0.4;\n")
	sb.WriteString("  nodesep=0.5;\n")
	sb.WriteString("  ranksep=1.0;\n\n")

	sb.WriteString("  node [fontname=\"Helvetica\", fontsize=13, margin=\"0.25,0.15\", penwidth=2];\n")
	sb.WriteString("  edge [fontname=\"Helvetica\", fontsize=10, penwidth=2, color=\"#555555\"];\n\n")

	channels := spec.Channels()

	// Fields in first-use order.
	var fields []string
	seen := make(map[string]bool)
	for _, c := range channels {
		if !seen[c.Field] {
			seen[c.Field] = true
			fields = append(fields, c.Field)
		}
	}

	sb.WriteString("  subgraph cluster_fields {\n")
	sb.WriteString("    label=\"Dataset\";\n")
	sb.WriteString("    style=\"rounded,filled\";\n")
	sb.WriteString("    fillcolor=\"#FAFAFA\";\n")
	sb.WriteString("    color=\"#CCCCCC\";\n")
	for _, f := range fields {
		sb.WriteString(fmt.Sprintf("    field_%s [shape=box, style=\"rounded,filled\", fillcolor=\"%s\", label=\"%s\", fontcolor=\"white\"];\n",
			sanitizeName(f), ColorScheme["field"], escape(f)))
	}
	sb.WriteString("  }\n\n")

	sb.WriteString("  subgraph cluster_channels {\n")
	sb.WriteString("    label=\"Channels\";\n")
	sb.WriteString("    style=\"rounded,filled\";\n")
	sb.WriteString("    fillcolor=\"#FAFAFA\";\n")
	sb.WriteString("    color=\"#CCCCCC\";\n")
	for _, c := range channels {
		label := c.Name
		if c.Name == "color" {
			label = fmt.Sprintf("color\\n%s %s", spec.Color.Mode, spec.Color.Palette)
		}
		sb.WriteString(fmt.Sprintf("    channel_%s [shape=ellipse, style=filled, fillcolor=\"%s\", label=\"%s\", fontcolor=\"white\"];\n",
			sanitizeName(c.Name), ColorScheme["channel"], label))
	}
	sb.WriteString("  }\n\n")

	sb.WriteString(fmt.Sprintf("  chart [shape=box3d, style=filled, fillcolor=\"%s\", label=\"%s\", fontcolor=\"white\"];\n\n",
		ColorScheme["chart"], spec.Kind.Label()))

	sb.WriteString("  // Bindings\n")
	for _, c := range channels {
		sb.WriteString(fmt.Sprintf("  field_%s -> channel_%s;\n", sanitizeName(c.Field), sanitizeName(c.Name)))
	}
	for _, c := range channels {
		sb.WriteString(fmt.Sprintf("  channel_%s -> chart;\n", sanitizeName(c.Name)))
	}

	sb.WriteString("}\n")

	return sb.String()
}

func sanitizeName(name string) string {
	s := strings.ReplaceAll(name, "-", "_")
	s = strings.ReplaceAll(s, ".", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}

func escape(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func writeFileBytes(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
