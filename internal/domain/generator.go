package domain

import (
	"fmt"
	"strings"

	m "wpreview.dev/pkg/wpreview/internal/model"
)

// Generator turns scanned preview declarations into the content of the
// scaffold's aggregation file.
type Generator interface {
	// Generate produces the aggregation file content. It is a pure function:
	// identical input yields byte-identical output.
	Generate(manifest m.ProjectManifest, decls []m.PreviewDeclaration) []byte
}

type generator struct{}

// NewGenerator constructs a Generator.
func NewGenerator() Generator {
	return &generator{}
}

const generatedHeader = `// Generated by wpreview. Do not edit.
//
// ignore_for_file: directives_ordering, unused_import

import 'widget_preview.dart';
`

func (g *generator) Generate(manifest m.ProjectManifest, decls []m.PreviewDeclaration) []byte {
	var b strings.Builder

	b.WriteString(generatedHeader)

	aliases := assignAliases(decls)

	// Imports in alias order, which is first-discovery order of the modules.
	ordered := make([]m.Path, 0, len(aliases))
	seen := make(map[m.Path]bool, len(aliases))

	for _, decl := range decls {
		if seen[decl.Module] {
			continue
		}

		seen[decl.Module] = true

		ordered = append(ordered, decl.Module)
	}

	if len(ordered) > 0 {
		b.WriteString("\n")

		for _, module := range ordered {
			fmt.Fprintf(&b, "import '%s' as %s;\n", importURI(manifest.Name, module), aliases[module])
		}
	}

	b.WriteString("\nList<WidgetPreview> previews() => [")

	if len(decls) == 0 {
		b.WriteString("];\n")
		return []byte(b.String())
	}

	b.WriteString("\n")

	for _, decl := range decls {
		fmt.Fprintf(&b, "  %s.%s(),\n", aliases[decl.Module], decl.Symbol)
	}

	b.WriteString("];\n")

	return []byte(b.String())
}

// assignAliases maps each distinct module to _i1, _i2, ... in first-occurrence
// order of the declaration sequence.
func assignAliases(decls []m.PreviewDeclaration) map[m.Path]string {
	aliases := make(map[m.Path]string)

	next := 1

	for _, decl := range decls {
		if _, ok := aliases[decl.Module]; ok {
			continue
		}

		aliases[decl.Module] = fmt.Sprintf("_i%d", next)
		next++
	}

	return aliases
}

// importURI converts a project-relative module path into a package: import.
// Modules under lib/ are addressable as package:<name>/<path-under-lib>.
func importURI(name string, module m.Path) string {
	rel := strings.TrimPrefix(string(module), SourceDirName+"/")

	return fmt.Sprintf("package:%s/%s", name, rel)
}
