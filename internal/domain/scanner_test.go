package domain

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wpreview.dev/pkg/wpreview/internal/adapter"
	m "wpreview.dev/pkg/wpreview/internal/model"
)

func newScannerUnderTest(exclude ...string) Scanner {
	compiled := make([]*regexp.Regexp, 0, len(exclude))
	for _, pattern := range exclude {
		compiled = append(compiled, regexp.MustCompile(pattern))
	}

	return NewScanner(adapter.NewLocalSourceFSAdapter(), compiled)
}

func TestScanner_FindsAnnotatedDeclarations(t *testing.T) {
	root := newTestProject(t, "demo")
	writeProjectFile(t, root, "lib/button.dart", `
import 'package:flutter/widgets.dart';

@Preview(name: 'primary button')
Widget primaryButton() => const Text('ok');

Widget notAPreview() => const Text('no');

@Preview()
Widget secondaryButton() => const Text('alt');
`)

	decls, err := newScannerUnderTest().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, []m.PreviewDeclaration{
		{Module: "lib/button.dart", Symbol: "primaryButton"},
		{Module: "lib/button.dart", Symbol: "secondaryButton"},
	}, decls)
}

func TestScanner_EmptyProjectIsSuccess(t *testing.T) {
	root := newTestProject(t, "demo")
	writeProjectFile(t, root, "lib/plain.dart", "Widget plain() => const Text('x');\n")

	decls, err := newScannerUnderTest().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestScanner_NoLibDirectoryIsSuccess(t *testing.T) {
	root := newTestProject(t, "demo")

	decls, err := newScannerUnderTest().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestScanner_ToleratesInvalidSurroundingCode(t *testing.T) {
	root := newTestProject(t, "demo")
	writeProjectFile(t, root, "lib/broken.dart", `
this is not valid dart at all }{;

@Preview()
Widget stillFound() => const Text('ok');

more garbage ((
`)

	decls, err := newScannerUnderTest().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	require.Len(t, decls, 1)
	assert.Equal(t, "stillFound", decls[0].Symbol)
}

func TestScanner_MarkerWithoutDeclarationIsSkipped(t *testing.T) {
	root := newTestProject(t, "demo")
	writeProjectFile(t, root, "lib/stray.dart", "@Preview()\nint x = 3;\n")

	decls, err := newScannerUnderTest().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)
	assert.Empty(t, decls)
}

func TestScanner_DeterministicOrderAcrossFiles(t *testing.T) {
	root := newTestProject(t, "demo")
	// Written in non-lexicographic order on purpose.
	writeProjectFile(t, root, "lib/z_last.dart", "@Preview()\nWidget last() => x;\n")
	writeProjectFile(t, root, "lib/a_first.dart", "@Preview()\nWidget first() => x;\n")
	writeProjectFile(t, root, "lib/nested/mid.dart", "@Preview()\nWidget mid() => x;\n")

	decls, err := newScannerUnderTest().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, []m.PreviewDeclaration{
		{Module: "lib/a_first.dart", Symbol: "first"},
		{Module: "lib/nested/mid.dart", Symbol: "mid"},
		{Module: "lib/z_last.dart", Symbol: "last"},
	}, decls)
}

func TestScanner_DuplicatesCollapse(t *testing.T) {
	root := newTestProject(t, "demo")
	writeProjectFile(t, root, "lib/dup.dart", `
@Preview()
Widget twice() => x;

@Preview(name: 'again')
Widget twice() => x;
`)

	decls, err := newScannerUnderTest().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	assert.Equal(t, []m.PreviewDeclaration{
		{Module: "lib/dup.dart", Symbol: "twice"},
	}, decls)
}

func TestScanner_SkipsHiddenDirectoriesAndNonDartFiles(t *testing.T) {
	root := newTestProject(t, "demo")
	writeProjectFile(t, root, "lib/.hidden/sneaky.dart", "@Preview()\nWidget sneaky() => x;\n")
	writeProjectFile(t, root, "lib/readme.md", "@Preview()\nWidget doc() => x;\n")
	writeProjectFile(t, root, "lib/real.dart", "@Preview()\nWidget real() => x;\n")

	decls, err := newScannerUnderTest().Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	require.Len(t, decls, 1)
	assert.Equal(t, "real", decls[0].Symbol)
}

func TestScanner_ExcludePatterns(t *testing.T) {
	root := newTestProject(t, "demo")
	writeProjectFile(t, root, "lib/keep.dart", "@Preview()\nWidget keep() => x;\n")
	writeProjectFile(t, root, "lib/skip_me.dart", "@Preview()\nWidget skipMe() => x;\n")

	decls, err := newScannerUnderTest("skip_").Scan(context.Background(), m.Path(root))
	require.NoError(t, err)

	require.Len(t, decls, 1)
	assert.Equal(t, "keep", decls[0].Symbol)
}

func TestMatchPreviewSymbols(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    []string
	}{
		{"bare marker", "@Preview\nWidget a() {}", []string{"a"}},
		{"marker with args", "@Preview(name: 'x')\nWidget a() {}", []string{"a"}},
		{"nested args", "@Preview(size: Size(100, 200))\nWidget a() {}", []string{"a"}},
		{"no return type", "@Preview()\na() => b;", []string{"a"}},
		{"static modifier", "@Preview()\nstatic Widget a() {}", []string{"a"}},
		{"unbalanced args", "@Preview(oops\nWidget a() {}", nil},
		{"marker on class", "@Preview()\nclass Foo {}", nil},
		{"multiple markers", "@Preview()\nWidget a() {}\n@Preview()\nWidget b() {}", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchPreviewSymbols(tt.content))
		})
	}
}
