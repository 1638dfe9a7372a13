package domain

import (
	"context"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"wpreview.dev/pkg/wpreview/internal/adapter"
	m "wpreview.dev/pkg/wpreview/internal/model"
)

// SourceDirName is the conventional source directory scanned for previews.
const SourceDirName = "lib"

// Scanner discovers marker-annotated preview declarations in a project.
type Scanner interface {
	// Scan walks the project's lib/ tree and returns every @Preview
	// declaration it finds, deduplicated, in deterministic order. Zero
	// declarations is a valid result, not an error.
	Scan(ctx context.Context, root m.Path) ([]m.PreviewDeclaration, error)
}

type scanner struct {
	fs      adapter.SourceFSAdapter
	exclude []*regexp.Regexp
}

// NewScanner constructs a Scanner. The exclude patterns filter out files
// whose project-relative path matches any of them.
func NewScanner(fs adapter.SourceFSAdapter, exclude []*regexp.Regexp) Scanner {
	return &scanner{fs: fs, exclude: exclude}
}

// markerRe locates the preview marker token. Matching is textual on purpose:
// fixture files may be invalid Dart everywhere except the marker region.
var markerRe = regexp.MustCompile(`@Preview\b`)

// declHeaderRe matches a callable declaration header: an optional return type
// followed by the function name and an opening parenthesis.
var declHeaderRe = regexp.MustCompile(`^\s*(?:[A-Za-z_$][\w$<>,.\s]*\s)?([A-Za-z_$][\w$]*)\s*\(`)

func (s *scanner) Scan(ctx context.Context, root m.Path) ([]m.PreviewDeclaration, error) {
	libDir := s.fs.JoinPath(string(root), SourceDirName)

	if _, err := s.fs.FileInfo(libDir); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}

		return nil, &m.ScanError{Cause: err}
	}

	files, err := s.enumerate(root, libDir)
	if err != nil {
		return nil, &m.ScanError{Cause: err}
	}

	// Lexicographic order makes alias numbering reproducible regardless of
	// the platform's directory iteration order.
	sort.Strings(files)

	var decls []m.PreviewDeclaration

	seen := make(map[m.PreviewDeclaration]bool)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, &m.ScanError{Cause: err}
		}

		content, err := s.fs.ReadFile(m.Path(file))
		if err != nil {
			return nil, &m.ScanError{Cause: err}
		}

		module, err := s.fs.RelPath(root, m.Path(file))
		if err != nil {
			return nil, &m.ScanError{Cause: err}
		}

		module = m.Path(filepath.ToSlash(string(module)))

		for _, symbol := range matchPreviewSymbols(string(content)) {
			decl := m.PreviewDeclaration{Module: module, Symbol: symbol}
			if seen[decl] {
				continue
			}

			seen[decl] = true

			decls = append(decls, decl)
		}
	}

	return decls, nil
}

// enumerate collects every .dart file under libDir, skipping hidden
// directories (which keeps the scaffold subtree out of the scan) and files
// excluded by user patterns.
func (s *scanner) enumerate(root, libDir m.Path) ([]string, error) {
	var files []string

	err := s.fs.Walk(libDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if path != string(libDir) && strings.HasPrefix(filepath.Base(path), ".") {
				return filepath.SkipDir
			}

			return nil
		}

		if filepath.Ext(path) != ".dart" {
			return nil
		}

		rel, err := s.fs.RelPath(root, m.Path(path))
		if err != nil {
			return err
		}

		if s.excluded(filepath.ToSlash(string(rel))) {
			return nil
		}

		files = append(files, path)

		return nil
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

func (s *scanner) excluded(rel string) bool {
	for _, re := range s.exclude {
		if re.MatchString(rel) {
			return true
		}
	}

	return false
}

// matchPreviewSymbols finds every function declaration immediately preceded
// by a @Preview marker. The marker may carry a (possibly nested) argument
// list. Surrounding code does not need to be valid Dart.
func matchPreviewSymbols(content string) []string {
	var symbols []string

	for _, loc := range markerRe.FindAllStringIndex(content, -1) {
		rest := content[loc[1]:]

		rest = skipMarkerArguments(rest)

		match := declHeaderRe.FindStringSubmatch(rest)
		if match == nil {
			continue
		}

		symbols = append(symbols, match[1])
	}

	return symbols
}

// skipMarkerArguments consumes an optional balanced parenthesized argument
// list directly after the marker token.
func skipMarkerArguments(rest string) string {
	trimmed := strings.TrimLeft(rest, " \t\r\n")
	if !strings.HasPrefix(trimmed, "(") {
		return rest
	}

	depth := 0

	for i, r := range trimmed {
		switch r {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return trimmed[i+1:]
			}
		}
	}

	// Unbalanced argument list; treat the marker as unusable.
	return ""
}
