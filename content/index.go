package content

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Entry summarises one document of a collection.
type Entry struct {
	Name  string
	Title string
	Date  string
	Err   error
}

// String renders the entry as a single list line.
func (e Entry) String() string {
	if e.Err != nil {
		return fmt.Sprintf("- %s [Error reading file: %v]", e.Name, e.Err)
	}
	line := "- " + e.Name
	if e.Date != "" {
		line += " (" + e.Date + ")"
	}
	if e.Title != "" {
		line += ": " + e.Title
	}
	return line
}

type entryMeta struct {
	Title string `yaml:"title" toml:"title" json:"title"`
	Date  string `yaml:"date" toml:"date" json:"date"`
}

// IndexCollection lists the documents in dir with their title and date. The
// title comes from frontmatter, falling back to the first markdown heading.
// Per-file failures are recorded on the entry like ReadCollection does.
func IndexCollection(dir string) ([]Entry, error) {
	names, err := matchFiles(dir, NewsletterPattern)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	entries := make([]Entry, 0, len(names))
	for _, name := range names {
		entry := Entry{Name: name}
		doc, err := ReadDocument(filepath.Join(dir, name))
		if err != nil {
			entry.Err = err
			entries = append(entries, entry)
			continue
		}

		var meta entryMeta
		body, err := frontmatter.Parse(strings.NewReader(doc), &meta)
		if err != nil {
			// Malformed frontmatter is treated as plain markdown.
			body = []byte(doc)
		}
		entry.Title = strings.TrimSpace(meta.Title)
		entry.Date = strings.TrimSpace(meta.Date)
		if entry.Title == "" {
			entry.Title = firstHeading(md, body)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func firstHeading(md goldmark.Markdown, source []byte) string {
	root := md.Parser().Parse(text.NewReader(source))

	var title string
	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		var buf bytes.Buffer
		lines := heading.Lines()
		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			buf.Write(segment.Value(source))
		}
		title = strings.TrimSpace(buf.String())
		return ast.WalkStop, nil
	})
	return title
}
