package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jot/pkg/core"
)

// Codec defines how a whole note collection is read from and written to bytes.
type Codec interface {
	// Decode parses a collection into raw records. Record validation is left
	// to core.NoteFromRecord.
	Decode(data []byte) ([]core.Record, error)
	// Encode serializes the collection in order.
	Encode(notes []core.Note) ([]byte, error)
	// Name identifies the format (e.g. "json").
	Name() string
}

// DefaultCodecs returns the standard set of codecs keyed by file extension.
func DefaultCodecs() map[string]Codec {
	return map[string]Codec{
		".json": JSONCodec{},
		".yaml": YAMLCodec{},
		".yml":  YAMLCodec{},
	}
}

// CodecFor picks the codec for a store file. An explicit format ("json",
// "yaml", "yml") wins; otherwise the extension decides, falling back to JSON.
func CodecFor(path, format string) (Codec, error) {
	codecs := DefaultCodecs()
	if format != "" {
		c, ok := codecs["."+strings.TrimPrefix(strings.ToLower(format), ".")]
		if !ok {
			return nil, fmt.Errorf("unsupported format: %s", format)
		}
		return c, nil
	}
	if c, ok := codecs[strings.ToLower(filepath.Ext(path))]; ok {
		return c, nil
	}
	return JSONCodec{}, nil
}

// wireNote fixes the field order of persisted records.
type wireNote struct {
	ID        string `json:"id" yaml:"id"`
	Title     string `json:"title" yaml:"title"`
	Content   string `json:"content" yaml:"content"`
	CreatedAt string `json:"created_at" yaml:"created_at"`
}

func toWire(notes []core.Note) []wireNote {
	out := make([]wireNote, 0, len(notes))
	for _, n := range notes {
		out = append(out, wireNote{
			ID:        n.ID,
			Title:     n.Title,
			Content:   n.Content,
			CreatedAt: n.CreatedAt.Format(core.TimeLayout),
		})
	}
	return out
}

// --- JSON Codec ---

// JSONCodec stores the collection as an indented JSON array.
type JSONCodec struct{}

func (JSONCodec) Name() string { return "json" }

func (JSONCodec) Decode(data []byte) ([]core.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var payload []map[string]any
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}

	records := make([]core.Record, len(payload))
	for i, item := range payload {
		records[i] = core.Record(item)
	}
	return records, nil
}

func (JSONCodec) Encode(notes []core.Note) ([]byte, error) {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(toWire(notes)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- YAML Codec ---

// YAMLCodec stores the collection as a YAML sequence of mappings.
type YAMLCodec struct{}

func (YAMLCodec) Name() string { return "yaml" }

func (YAMLCodec) Decode(data []byte) ([]core.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}

	var payload []map[string]any
	if err := yaml.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	records := make([]core.Record, len(payload))
	for i, item := range payload {
		records[i] = normalizeYAML(item)
	}
	return records, nil
}

func (YAMLCodec) Encode(notes []core.Note) ([]byte, error) {
	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(toWire(notes)); err != nil {
		return nil, err
	}
	if err := encoder.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// normalizeYAML turns explicitly tagged timestamps back into their text form
// so hand-edited files stay readable as note records.
func normalizeYAML(item map[string]any) core.Record {
	if item == nil {
		return nil
	}
	r := make(core.Record, len(item))
	for k, v := range item {
		if t, ok := v.(time.Time); ok {
			v = t.Format(core.TimeLayout)
		}
		r[k] = v
	}
	return r
}
