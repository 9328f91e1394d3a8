package fs

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/core"
)

var frontmatterDelim = []byte("---")

type frontmatter struct {
	ID        string `yaml:"id"`
	Title     string `yaml:"title"`
	CreatedAt string `yaml:"created_at"`
}

// MarshalMarkdown renders a note as a Markdown file: id, title and
// created_at in YAML frontmatter, the content verbatim as the body.
func MarshalMarkdown(n core.Note) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(frontmatterDelim)
	buf.WriteByte('\n')

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(frontmatter{
		ID:        n.ID,
		Title:     n.Title,
		CreatedAt: n.CreatedAt.Format(core.TimeLayout),
	}); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}

	buf.Write(frontmatterDelim)
	buf.WriteByte('\n')
	buf.WriteString(n.Content)
	return buf.Bytes(), nil
}

// UnmarshalMarkdown parses a Markdown note. Fields absent from the
// frontmatter (or a file without frontmatter) get fresh values: a new id,
// the current time, and fallbackTitle as title.
func UnmarshalMarkdown(data []byte, fallbackTitle string) (core.Note, error) {
	meta, body, err := splitFrontmatter(data)
	if err != nil {
		return core.Note{}, err
	}

	rec := core.Record{}
	if len(meta) > 0 {
		var fields map[string]any
		if err := yaml.Unmarshal(meta, &fields); err != nil {
			return core.Note{}, fmt.Errorf("%w: failed to parse frontmatter: %v", core.ErrMalformedRecord, err)
		}
		for k, v := range fields {
			if t, ok := v.(time.Time); ok {
				v = t.Format(core.TimeLayout)
			}
			rec[k] = v
		}
	}

	defaults := core.NewNote(fallbackTitle, "").Record()
	for _, key := range []string{core.FieldID, core.FieldTitle, core.FieldCreatedAt} {
		if _, ok := rec[key]; !ok {
			rec[key] = defaults[key]
		}
	}
	rec[core.FieldContent] = string(body)

	return core.NoteFromRecord(rec)
}

// splitFrontmatter separates a leading "---" delimited YAML block from the
// body. Without an opening delimiter the whole input is body.
func splitFrontmatter(data []byte) (meta, body []byte, err error) {
	if bytes.HasPrefix(data, []byte("---\r\n")) {
		data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
	}
	if !bytes.HasPrefix(data, []byte("---\n")) {
		return nil, data, nil
	}

	rest := data[len("---\n"):]
	for offset := 0; offset <= len(rest); {
		end := bytes.IndexByte(rest[offset:], '\n')
		var line []byte
		next := len(rest) + 1
		if end < 0 {
			line = rest[offset:]
		} else {
			line = rest[offset : offset+end]
			next = offset + end + 1
		}

		if bytes.Equal(line, frontmatterDelim) {
			meta = rest[:offset]
			if next <= len(rest) {
				body = rest[next:]
			}
			return meta, body, nil
		}
		offset = next
	}

	return nil, nil, errors.New("frontmatter started but no closing delimiter found")
}
