package content

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var errInvalidUTF8 = errors.New("content is not valid UTF-8")

// Block is one document of a collection. Err is set when the file could not
// be read; Body is empty in that case.
type Block struct {
	Name string
	Body string
	Err  error
}

// Text renders the block as a heading line followed by the body, or by an
// inline error annotation when the read failed.
func (b Block) Text() string {
	if b.Err != nil {
		return fmt.Sprintf("## %s\n[Error reading file: %v]", b.Name, b.Err)
	}
	return "## " + b.Name + "\n" + b.Body
}

// ReadDocument reads the whole file at path as text. A missing path yields an
// ErrNotFound error; any other failure yields ErrReadFailure.
func ReadDocument(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", notFound(path)
		}
		return "", readFailure(path, err)
	}
	if info.IsDir() {
		return "", readFailure(path, errors.New("is a directory"))
	}
	return decodeFile(path)
}

// decodeFile honours a UTF-8 or UTF-16 byte order mark and otherwise expects
// UTF-8.
func decodeFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", readFailure(path, err)
	}
	defer f.Close()

	r := transform.NewReader(f, unicode.BOMOverride(transform.Nop))
	data, err := io.ReadAll(r)
	if err != nil {
		return "", readFailure(path, err)
	}
	if !utf8.Valid(data) {
		return "", readFailure(path, errInvalidUTF8)
	}
	return string(data), nil
}

// ReadCollection reads every file in dir matching NewsletterPattern, sorted
// by file name. A file that fails to read becomes a Block carrying the error;
// the remaining files are still read. Only a missing dir is an error.
func ReadCollection(dir string) ([]Block, error) {
	names, err := matchFiles(dir, NewsletterPattern)
	if err != nil {
		return nil, err
	}

	blocks := make([]Block, 0, len(names))
	for _, name := range names {
		body, err := ReadDocument(filepath.Join(dir, name))
		blocks = append(blocks, Block{Name: name, Body: body, Err: err})
	}
	return blocks, nil
}

// RenderCollection joins block texts with a blank line between them.
func RenderCollection(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		parts = append(parts, b.Text())
	}
	return strings.Join(parts, "\n\n")
}

func matchFiles(dir, pattern string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, notFound(dir)
		}
		return nil, readFailure(dir, err)
	}
	if !info.IsDir() {
		return nil, notFound(dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, readFailure(dir, err)
	}

	var names []string
	for _, entry := range entries {
		// Hidden files (editor drafts, .DS_Store) never match.
		if entry.IsDir() || strings.HasPrefix(entry.Name(), ".") {
			continue
		}
		ok, err := filepath.Match(pattern, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pattern, err)
		}
		if ok {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
