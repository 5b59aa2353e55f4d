package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/orbit/pkg/pipeline"
)

const layoutSuffix = ".layout"

// basePath derives the output path without extension. An empty output
// strips the extension (and a ".layout" infix) from input; a known format
// extension is stripped from output.
func basePath(output, input string) string {
	if output == "" {
		base := strings.TrimSuffix(input, filepath.Ext(input))
		return strings.TrimSuffix(base, layoutSuffix)
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(strings.TrimSuffix(output, ext), layoutSuffix)
	}
	return output
}

// extension returns the file extension for a format; layout JSON gets
// ".layout.json" so it is not mistaken for a graph file.
func extension(format string) string {
	if format == pipeline.FormatJSON {
		return layoutSuffix + ".json"
	}
	return "." + format
}

// outputPaths maps each format to its destination. A single format honors
// output verbatim.
func outputPaths(formats []string, input, output string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}
	base := basePath(output, input)
	for _, f := range formats {
		paths[f] = base + extension(f)
	}
	return paths
}

// writeArtifacts writes each artifact in format order and prints the paths.
func writeArtifacts(artifacts map[string][]byte, formats []string, input, output string) ([]string, error) {
	paths := outputPaths(formats, input, output)
	written := make([]string, 0, len(formats))
	for _, f := range formats {
		path := paths[f]
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return written, fmt.Errorf("create %s: %w", dir, err)
			}
		}
		if err := os.WriteFile(path, artifacts[f], 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}
