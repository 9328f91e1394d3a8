package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/jot/pkg/adapters/fs"
	"github.com/aretw0/jot/pkg/core"
)

// DefaultImportPattern matches every Markdown file below the import root.
const DefaultImportPattern = "**/*.md"

const maxSlugLen = 40

// ImportResult reports what an Import did.
type ImportResult struct {
	Imported []core.Note
	// Skipped lists files whose note id is already stored.
	Skipped []string
}

// Import adds every Markdown file under root matching pattern (doublestar
// syntax, relative to root) as a note. Files without frontmatter get a new
// id and take their title from the file name.
//
// Import stops at the first unreadable or malformed file. Notes added
// before the failure stay stored.
func Import(ctx context.Context, svc *core.Service, root, pattern string) (ImportResult, error) {
	var result ImportResult
	if pattern == "" {
		pattern = DefaultImportPattern
	}

	matches, err := doublestar.Glob(os.DirFS(root), pattern, doublestar.WithFilesOnly())
	if err != nil {
		return result, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	for _, rel := range matches {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return result, fmt.Errorf("read %s: %w", rel, err)
		}

		title := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
		n, err := fs.UnmarshalMarkdown(data, title)
		if err != nil {
			return result, fmt.Errorf("parse %s: %w", rel, err)
		}

		if err := svc.AddNote(ctx, n); err != nil {
			if errors.Is(err, core.ErrDuplicateID) {
				result.Skipped = append(result.Skipped, rel)
				continue
			}
			return result, fmt.Errorf("import %s: %w", rel, err)
		}
		result.Imported = append(result.Imported, n)
	}

	return result, nil
}

// Export writes every stored note to dir as <short-id>-<slug>.md and
// returns the written paths. The directory is created if needed and
// existing files with the same name are overwritten.
func Export(ctx context.Context, svc *core.Service, dir string) ([]string, error) {
	notes, err := svc.ListNotes(ctx)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create export dir: %w", err)
	}

	written := make([]string, 0, len(notes))
	for _, n := range notes {
		data, err := fs.MarshalMarkdown(n)
		if err != nil {
			return written, fmt.Errorf("render %s: %w", n.ID, err)
		}

		target := filepath.Join(dir, ExportFilename(n))
		if err := os.WriteFile(target, data, 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", target, err)
		}
		written = append(written, target)
	}

	return written, nil
}

// ExportFilename returns the file name Export uses for n.
func ExportFilename(n core.Note) string {
	if s := slugify(n.Title); s != "" {
		return n.ShortID() + "-" + s + ".md"
	}
	return n.ShortID() + ".md"
}

func slugify(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			dash = false
		case !dash && b.Len() > 0:
			b.WriteByte('-')
			dash = true
		}
	}

	s := strings.TrimSuffix(b.String(), "-")
	if runes := []rune(s); len(runes) > maxSlugLen {
		s = strings.TrimSuffix(string(runes[:maxSlugLen]), "-")
	}
	return s
}
