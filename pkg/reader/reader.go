// Package reader finds documentation sources and splits them into annotated
// blocks.
//
// JavaScript files contribute one block per /** ... */ comment that carries
// an @ngdoc tag. Files ending in .ngdoc or .uidoc are a single block each.
//
// Usage:
//
//	r := reader.New("/path/to/project", log)
//	blocks, err := r.Section("api", []string{"src/**/*.js"})
//	for _, b := range blocks {
//		d := ngdoc.New(b.Text, b.File, b.StartLine, b.EndLine, opts)
//		d.Section = b.Section
//	}
package reader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/gobwas/glob"
	"github.com/sirupsen/logrus"
)

var (
	// ErrUnsupportedFile is returned for a file whose extension has no block format
	ErrUnsupportedFile = errors.New("unsupported documentation file")

	// ErrNoPatterns is returned when a section lists no source patterns
	ErrNoPatterns = errors.New("no source patterns")
)

var (
	lineBreak     = regexp.MustCompile(`\r?\n`)
	commentStart  = regexp.MustCompile(`^\s*/\*\*\s*(.*)$`)
	commentEnd    = regexp.MustCompile(`\*/`)
	commentGutter = regexp.MustCompile(`^\s*\*\s?`)
	ngdocTag      = regexp.MustCompile(`@ngdoc`)
)

// Block is the raw text of one documentation entity and where it came from
type Block struct {
	Text      string
	File      string
	Section   string
	StartLine int
	EndLine   int
}

// Reader resolves section patterns below a root directory
type Reader struct {
	root string
	log  logrus.FieldLogger
}

// New creates a reader for files below root
func New(root string, log logrus.FieldLogger) *Reader {
	if log == nil {
		log = logrus.New()
	}
	return &Reader{root: root, log: log}
}

// Section reads every file matching patterns and returns its blocks tagged
// with section. Files are visited pattern by pattern, in lexical order within
// a pattern; a file matched by several patterns is read once.
func (r *Reader) Section(section string, patterns []string) ([]Block, error) {
	files, err := r.Find(patterns)
	if err != nil {
		return nil, err
	}

	var blocks []Block
	for _, file := range files {
		found, err := ReadFile(filepath.Join(r.root, file), file)
		if err != nil {
			if errors.Is(err, ErrUnsupportedFile) {
				r.log.WithField("file", file).Debug("skipping file without a block format")
				continue
			}
			return nil, err
		}
		for i := range found {
			found[i].Section = section
		}
		r.log.WithFields(logrus.Fields{
			"section": section,
			"file":    file,
			"blocks":  len(found),
		}).Debug("read documentation source")
		blocks = append(blocks, found...)
	}
	return blocks, nil
}

// Find returns the slash separated paths below the root matching patterns.
// "*" stays within one path segment, "**" crosses segments.
func (r *Reader) Find(patterns []string) ([]string, error) {
	if len(patterns) == 0 {
		return nil, ErrNoPatterns
	}

	matchers := make([][]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		var alts []glob.Glob
		for _, alt := range expandPattern(filepath.ToSlash(p)) {
			g, err := glob.Compile(alt, '/')
			if err != nil {
				return nil, fmt.Errorf("invalid source pattern %q: %w", p, err)
			}
			alts = append(alts, g)
		}
		matchers = append(matchers, alts)
	}

	var all []string
	err := filepath.WalkDir(r.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(r.root, path)
		if err != nil {
			return err
		}
		all = append(all, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", r.root, err)
	}

	seen := make(map[string]bool)
	var files []string
	for _, alts := range matchers {
		for _, f := range all {
			if !seen[f] && matchAny(alts, f) {
				seen[f] = true
				files = append(files, f)
			}
		}
	}
	return files, nil
}

// expandPattern adds the variant of p where each "/**/" matches no directory
// at all, so "src/**/*.js" also matches "src/a.js"
func expandPattern(p string) []string {
	if !strings.Contains(p, "/**/") {
		return []string{p}
	}
	return []string{p, strings.ReplaceAll(p, "/**/", "/")}
}

func matchAny(globs []glob.Glob, name string) bool {
	for _, g := range globs {
		if g.Match(name) {
			return true
		}
	}
	return false
}

// ReadFile reads the blocks of one file. name is the path recorded in the
// blocks, usually relative to the project root.
func ReadFile(path, name string) ([]Block, error) {
	var parse func(content, file string) []Block
	switch strings.ToLower(filepath.Ext(path)) {
	case ".js":
		parse = ParseJS
	case ".ngdoc", ".uidoc":
		parse = func(content, file string) []Block {
			return []Block{ParseDoc(content, file)}
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFile, name)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file: %w", err)
	}
	return parse(string(data), name), nil
}

// ParseDoc turns a whole documentation file into a single block
func ParseDoc(content, file string) Block {
	return Block{
		Text:      content,
		File:      file,
		StartLine: 1,
		EndLine:   len(lineBreak.Split(content, -1)),
	}
}

// ParseJS extracts the /** ... */ comments of a script that contain @ngdoc.
// The comment gutter ("  * ") is stripped from every line. StartLine is the
// line holding "/**" and EndLine the one holding "*/", both 1-based.
func ParseJS(content, file string) []Block {
	var (
		blocks []Block
		text   []string
		start  int
		inDoc  bool
	)

	for i, line := range lineBreak.Split(content, -1) {
		lineNumber := i + 1

		if !inDoc {
			if m := commentStart.FindStringSubmatch(line); m != nil {
				line = m[1]
				inDoc = true
				text = text[:0]
				start = lineNumber
			}
		}

		if inDoc && commentEnd.MatchString(line) {
			body := strings.TrimPrefix(strings.Join(text, "\n"), "\n")
			if ngdocTag.MatchString(body) {
				blocks = append(blocks, Block{
					Text:      body,
					File:      file,
					StartLine: start,
					EndLine:   lineNumber,
				})
			}
			inDoc = false
		}

		if inDoc {
			text = append(text, commentGutter.ReplaceAllString(line, ""))
		}
	}
	return blocks
}
