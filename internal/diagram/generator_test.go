package diagram

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/junkd0g/dataexplorer/internal/chart"
	"github.com/junkd0g/dataexplorer/internal/dataset"
)

func buildSpec(t *testing.T, kind chart.Kind) chart.Spec {
	t.Helper()
	spec, err := chart.Build(dataset.Generate(dataset.DefaultSeed), kind)
	if err != nil {
		t.Fatalf("Failed to build %s spec: %v", kind, err)
	}
	return spec
}

func TestGenerateDOTScatter(t *testing.T) {
	dot := GenerateDOT(buildSpec(t, chart.Scatter))

	for _, want := range []string{
		"field_Category -> channel_x;",
		"field_Value -> channel_y;",
		"field_Performance -> channel_size;",
		"field_Performance -> channel_color;",
		"channel_size -> chart;",
		`label="Scatter Plot"`,
		"continuous Plasma",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}

	// Performance feeds two channels but is declared once.
	if n := strings.Count(dot, "field_Performance [shape=box"); n != 1 {
		t.Errorf("Expected one Performance node, got %d", n)
	}
}

func TestGenerateDOTPie(t *testing.T) {
	dot := GenerateDOT(buildSpec(t, chart.Pie))

	if !strings.Contains(dot, "field_Value -> channel_values;") {
		t.Errorf("Pie DOT should bind Value to values:\n%s", dot)
	}
	if strings.Contains(dot, "channel_x") {
		t.Errorf("Pie DOT should not have an x channel:\n%s", dot)
	}
}

func TestRenderSVG(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(context.Background(), buildSpec(t, chart.Bar), SVG, &buf); err != nil {
		t.Fatalf("Failed to render: %v", err)
	}
	if !strings.Contains(buf.String(), "<svg") {
		t.Fatalf("Expected SVG output, got %d bytes", buf.Len())
	}
}

func TestGenerate(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "encoding.png")

	if err := Generate(context.Background(), buildSpec(t, chart.Pie), outputPath); err != nil {
		t.Fatalf("Failed to generate diagram: %v", err)
	}

	if _, err := os.Stat(outputPath); os.IsNotExist(err) {
		t.Fatal("Diagram file was not created")
	}
}

func TestFormatForPath(t *testing.T) {
	if FormatForPath("a/b.SVG") != SVG {
		t.Error("Expected SVG for .SVG")
	}
	if FormatForPath("a/b.png") != PNG || FormatForPath("noext") != PNG {
		t.Error("Expected PNG default")
	}
}
