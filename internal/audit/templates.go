// Package audit scans templates for layout classes that are not direction
// aware and for translation keys missing from the translation files.
package audit

import (
	"bufio"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/gotrs-io/gotrs-rtl/internal/direction"
)

// templateExtensions lists the file types FindTemplates picks up.
var templateExtensions = []string{".pongo2", ".html", ".tmpl"}

// FindTemplates recursively finds template files under dir, sorted by path.
func FindTemplates(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range templateExtensions {
			if strings.HasSuffix(path, ext) {
				files = append(files, path)
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

// classAttr matches class="..." and class='...'.
var classAttr = regexp.MustCompile(`\bclass\s*=\s*(?:"([^"]*)"|'([^']*)')`)

// ClassFinding is a physical class used in a template.
type ClassFinding struct {
	File       string `json:"file"`
	Line       int    `json:"line"`
	Class      string `json:"class"`
	Suggestion string `json:"suggestion"`
}

// LintClasses reports classes in files that the adapter would rewrite for
// left-to-right layouts. The suggestion is the LTR logical replacement.
func LintClasses(files []string, adapter *direction.Adapter) ([]ClassFinding, error) {
	var findings []ClassFinding
	err := scanLines(files, func(file string, line int, text string) {
		for _, m := range classAttr.FindAllStringSubmatch(text, -1) {
			value := m[1]
			if value == "" {
				value = m[2]
			}
			for _, class := range adapter.PhysicalClasses(value) {
				findings = append(findings, ClassFinding{
					File:       file,
					Line:       line,
					Class:      class,
					Suggestion: adapter.AdaptClass(class),
				})
			}
		}
	})
	return findings, err
}

// translationPatterns match translation calls in pongo2 templates.
var translationPatterns = []*regexp.Regexp{
	// {{ t("key") }} and t("key", arg) inside other tags
	regexp.MustCompile(`\bt\s*\(\s*"([^"]+)"`),
	// t('key')
	regexp.MustCompile(`\bt\s*\(\s*'([^']+)'`),
}

// KeyUse is one occurrence of a translation key.
type KeyUse struct {
	Key  string `json:"key"`
	File string `json:"file"`
	Line int    `json:"line"`
}

// ExtractKeys returns the first use of every translation key in files.
// Dynamic keys ending in "." (built with ~ in templates) are skipped.
func ExtractKeys(files []string) ([]KeyUse, error) {
	seen := make(map[string]bool)
	var uses []KeyUse
	err := scanLines(files, func(file string, line int, text string) {
		for _, pattern := range translationPatterns {
			for _, m := range pattern.FindAllStringSubmatch(text, -1) {
				key := m[1]
				if strings.HasSuffix(key, ".") || seen[key] {
					continue
				}
				seen[key] = true
				uses = append(uses, KeyUse{Key: key, File: file, Line: line})
			}
		}
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(uses, func(i, j int) bool { return uses[i].Key < uses[j].Key })
	return uses, nil
}

func scanLines(files []string, fn func(file string, line int, text string)) error {
	for _, file := range files {
		if err := scanFile(file, fn); err != nil {
			return err
		}
	}
	return nil
}

func scanFile(file string, fn func(file string, line int, text string)) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		fn(file, lineNum, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read %s: %w", file, err)
	}
	return nil
}
