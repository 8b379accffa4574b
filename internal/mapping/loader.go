package mapping

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is the only mapping schema version understood by the loader.
const SchemaVersion = "1"

// LoadFile loads and parses a YAML mapping file from the given path.
func LoadFile(path string) (*MappingFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping file %s: %w", path, err)
	}
	defer f.Close()

	mf, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return mf, nil
}

// Parse parses YAML data into a MappingFile.
func Parse(data []byte) (*MappingFile, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads one mapping document. Unknown keys are rejected so that a
// misspelled option never silently falls back to its default.
func Decode(r io.Reader) (*MappingFile, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var mf MappingFile
	if err := dec.Decode(&mf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty mapping document")
		}

		return nil, fmt.Errorf("failed to parse mapping YAML: %w", err)
	}

	applyDefaults(&mf)

	if mf.Version != SchemaVersion {
		return nil, fmt.Errorf("unsupported mapping version %q (want %q)", mf.Version, SchemaVersion)
	}

	return &mf, nil
}

func applyDefaults(mf *MappingFile) {
	if mf.Version == "" {
		mf.Version = SchemaVersion
	}

	for i := range mf.Types {
		tm := &mf.Types[i]
		if tm.XMLName == "" {
			tm.XMLName = defaultXMLName(tm.Type)
		}
	}
}

// Marshal serializes a MappingFile to YAML with two-space indentation, the
// layout the loader tests and examples use.
func Marshal(mf *MappingFile) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(mf); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// WriteFile writes a MappingFile to the given path.
func WriteFile(mf *MappingFile, path string) error {
	data, err := Marshal(mf)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write mapping file %s: %w", path, err)
	}

	return nil
}
