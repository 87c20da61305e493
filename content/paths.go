// Package content locates and reads the markdown documents used to prime
// the newsletter agent.
package content

import (
	"os"
	"path/filepath"
)

const (
	// PrimaryDirName is the expected content directory under the project root.
	PrimaryDirName = "markdown-files"
	// AlternateDirName is the misspelled name some existing layouts use.
	AlternateDirName = "markdown-flies"

	GuidelinesFile = "Editorial Guidelines.md"
	BriefingFile   = "Briefing.md"
	NewslettersDir = "past_newsletter"

	// NewsletterPattern selects files inside the newsletters directory.
	NewsletterPattern = "*.md"
)

// Layout describes where content lives relative to a project root.
type Layout struct {
	ProjectRoot    string
	DirNames       []string
	GuidelinesFile string
	BriefingFile   string
	NewslettersDir string
}

// DefaultLayout returns the standard layout rooted at projectRoot.
func DefaultLayout(projectRoot string) Layout {
	return Layout{
		ProjectRoot:    projectRoot,
		DirNames:       []string{PrimaryDirName, AlternateDirName},
		GuidelinesFile: GuidelinesFile,
		BriefingFile:   BriefingFile,
		NewslettersDir: NewslettersDir,
	}
}

// Paths holds the resolved locations of every document. It is built once at
// startup and shared read-only.
type Paths struct {
	Root        string
	Guidelines  string
	Briefing    string
	Newsletters string
}

// Resolve computes Paths for the layout. Empty fields fall back to defaults.
func (l Layout) Resolve() *Paths {
	def := DefaultLayout(l.ProjectRoot)
	if len(l.DirNames) == 0 {
		l.DirNames = def.DirNames
	}
	if l.GuidelinesFile == "" {
		l.GuidelinesFile = def.GuidelinesFile
	}
	if l.BriefingFile == "" {
		l.BriefingFile = def.BriefingFile
	}
	if l.NewslettersDir == "" {
		l.NewslettersDir = def.NewslettersDir
	}

	root := ResolveRoot(l.ProjectRoot, l.DirNames...)
	return &Paths{
		Root:        root,
		Guidelines:  filepath.Join(root, l.GuidelinesFile),
		Briefing:    filepath.Join(root, l.BriefingFile),
		Newsletters: filepath.Join(root, l.NewslettersDir),
	}
}

// ResolveRoot returns the first candidate under projectRoot that exists as a
// directory. When none exists the first candidate is returned, so later
// errors point at the expected location.
func ResolveRoot(projectRoot string, candidates ...string) string {
	if len(candidates) == 0 {
		candidates = []string{PrimaryDirName, AlternateDirName}
	}
	for _, name := range candidates {
		path := filepath.Join(projectRoot, name)
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return path
		}
	}
	return filepath.Join(projectRoot, candidates[0])
}

// FindProjectRoot returns the first of roots that holds one of the candidate
// content directories, or roots[0] when none does.
func FindProjectRoot(roots []string, candidates ...string) string {
	if len(roots) == 0 {
		return "."
	}
	if len(candidates) == 0 {
		candidates = []string{PrimaryDirName, AlternateDirName}
	}
	for _, root := range roots {
		for _, name := range candidates {
			if info, err := os.Stat(filepath.Join(root, name)); err == nil && info.IsDir() {
				return root
			}
		}
	}
	return roots[0]
}
