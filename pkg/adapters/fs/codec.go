package fs

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aretw0/daynotes/pkg/core"
	"gopkg.in/yaml.v3"
)

// SavedAtLayout is the local, second-precision timestamp written to meta.saved_at.
const SavedAtLayout = "2006-01-02T15:04:05"

// Serializer defines how to read and write a snapshot in a specific file format.
type Serializer interface {
	// Parse reads from r and validates the payload into a snapshot.
	Parse(r io.Reader) (Decoded, error)
	// Serialize converts the snapshot to bytes.
	Serialize(snap core.Snapshot) ([]byte, error)
}

// Decoded is a validated snapshot plus the entries dropped while validating it.
type Decoded struct {
	Snapshot core.Snapshot
	Dropped  []string
}

// DefaultSerializers returns the supported formats keyed by extension.
// JSON is the on-disk format; YAML is offered for export.
func DefaultSerializers() map[string]Serializer {
	return map[string]Serializer{
		".json": NewJSONSerializer(),
		".yaml": NewYAMLSerializer(),
		".yml":  NewYAMLSerializer(),
	}
}

// SerializerFor resolves a format name ("json", "yaml", ".yml", ...) to a Serializer.
func SerializerFor(format string) (Serializer, error) {
	ext := strings.ToLower(format)
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	s, ok := DefaultSerializers()[ext]
	if !ok {
		return nil, fmt.Errorf("unsupported format %q", format)
	}
	return s, nil
}

// Encode serializes a snapshot in the on-disk JSON layout.
func Encode(snap core.Snapshot) ([]byte, error) {
	return NewJSONSerializer().Serialize(snap)
}

// Decode validates on-disk JSON into a snapshot. Malformed input yields an
// error wrapping core.ErrMalformedSnapshot.
func Decode(data []byte) (Decoded, error) {
	return NewJSONSerializer().Parse(bytes.NewReader(data))
}

type rangePayload struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

type metaPayload struct {
	SavedAt string       `json:"saved_at" yaml:"saved_at"`
	Range   rangePayload `json:"range" yaml:"range"`
	App     string       `json:"app" yaml:"app"`
	Version string       `json:"version" yaml:"version"`
}

type snapshotPayload struct {
	Meta  metaPayload       `json:"meta" yaml:"meta"`
	Notes map[string]string `json:"notes" yaml:"notes"`
}

func toPayload(snap core.Snapshot) snapshotPayload {
	notes := make(map[string]string, snap.Len())
	for d, text := range snap.Notes() {
		notes[d.String()] = text
	}
	p := snapshotPayload{
		Meta: metaPayload{
			App:     snap.Meta.App,
			Version: snap.Meta.Version,
		},
		Notes: notes,
	}
	if !snap.Meta.SavedAt.IsZero() {
		p.Meta.SavedAt = snap.Meta.SavedAt.Local().Format(SavedAtLayout)
	}
	if !snap.Meta.Range.Start.IsZero() {
		p.Meta.Range.Start = snap.Meta.Range.Start.String()
	}
	if !snap.Meta.Range.End.IsZero() {
		p.Meta.Range.End = snap.Meta.Range.End.String()
	}
	return p
}

// fromPayload converts the raw payload into a snapshot. Meta is informational
// so unparsable meta fields are left zero; notes are held to the store rules.
func fromPayload(p snapshotPayload) Decoded {
	var dec Decoded
	notes := make(map[core.Day]string, len(p.Notes))
	for key, text := range p.Notes {
		day, err := core.ParseDay(key)
		if err != nil {
			dec.Dropped = append(dec.Dropped, fmt.Sprintf("invalid day key %q", key))
			continue
		}
		text = strings.TrimSpace(text)
		if text == "" {
			dec.Dropped = append(dec.Dropped, fmt.Sprintf("empty note for %s", day))
			continue
		}
		notes[day] = text
	}

	meta := core.Meta{App: p.Meta.App, Version: p.Meta.Version}
	if t, err := parseSavedAt(p.Meta.SavedAt); err == nil {
		meta.SavedAt = t
	}
	start, errStart := core.ParseDay(p.Meta.Range.Start)
	end, errEnd := core.ParseDay(p.Meta.Range.End)
	if errStart == nil && errEnd == nil {
		if r, err := core.NewRange(start, end); err == nil {
			meta.Range = r
		}
	}

	dec.Snapshot = core.NewSnapshot(notes, meta)
	return dec
}

func parseSavedAt(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(SavedAtLayout, s, time.Local); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func malformed(format string, args ...any) error {
	return fmt.Errorf("%w: %s", core.ErrMalformedSnapshot, fmt.Sprintf(format, args...))
}

// --- JSON Serializer ---

// JSONSerializer handles the on-disk JSON layout.
type JSONSerializer struct{}

// NewJSONSerializer creates a new JSON serializer.
func NewJSONSerializer() *JSONSerializer {
	return &JSONSerializer{}
}

func (s *JSONSerializer) Parse(r io.Reader) (Decoded, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Decoded{}, err
	}

	// Top level first, so a bad meta block cannot take the notes down with it.
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return Decoded{}, malformed("invalid json: %v", err)
	}
	if top == nil {
		return Decoded{}, malformed("top level is not an object")
	}

	var p snapshotPayload
	if raw, ok := top["notes"]; ok {
		if err := json.Unmarshal(raw, &p.Notes); err != nil {
			return Decoded{}, malformed("notes is not an object of strings: %v", err)
		}
	}
	if raw, ok := top["meta"]; ok {
		_ = json.Unmarshal(raw, &p.Meta)
	}

	return fromPayload(p), nil
}

func (s *JSONSerializer) Serialize(snap core.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toPayload(snap)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// --- YAML Serializer ---

// YAMLSerializer reads and writes the same layout as YAML.
type YAMLSerializer struct{}

// NewYAMLSerializer creates a new YAML serializer.
func NewYAMLSerializer() *YAMLSerializer {
	return &YAMLSerializer{}
}

func (s *YAMLSerializer) Parse(r io.Reader) (Decoded, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Decoded{}, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return Decoded{}, malformed("empty document")
	}

	var top struct {
		Meta  yaml.Node `yaml:"meta"`
		Notes yaml.Node `yaml:"notes"`
	}
	if err := yaml.Unmarshal(data, &top); err != nil {
		return Decoded{}, malformed("invalid yaml: %v", err)
	}

	var p snapshotPayload
	if !top.Notes.IsZero() && top.Notes.Tag != "!!null" {
		if top.Notes.Kind != yaml.MappingNode {
			return Decoded{}, malformed("notes is not a mapping")
		}
		if err := top.Notes.Decode(&p.Notes); err != nil {
			return Decoded{}, malformed("notes is not a mapping of strings: %v", err)
		}
	}
	if !top.Meta.IsZero() {
		_ = top.Meta.Decode(&p.Meta)
	}

	return fromPayload(p), nil
}

func (s *YAMLSerializer) Serialize(snap core.Snapshot) ([]byte, error) {
	return yaml.Marshal(toPayload(snap))
}
