package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrNotFound is returned by Load when the task file does not exist.
var ErrNotFound = errors.New("task file not found")

// Format is a task file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks the encoding from the file extension.
// Unknown extensions use JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Options controls how task files are decoded.
type Options struct {
	// Schema checks the document shape. Nil uses the embedded schema.
	Schema *Schema
}

// Load reads the task file at path into a new store.
func Load(path string) (*Store, error) {
	return LoadWithOptions(path, Options{})
}

// LoadWithOptions is Load with a caller-supplied schema.
func LoadWithOptions(path string, opts Options) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	schema := opts.Schema
	if schema == nil {
		schema, err = DefaultSchema()
		if err != nil {
			return nil, err
		}
	}

	tasks, err := Decode(data, FormatForPath(path), schema)
	if err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	return NewStore(tasks...), nil
}

// Decode converts raw file content to tasks. The content is checked against
// schema before it is mapped onto Task values.
func Decode(data []byte, format Format, schema *Schema) ([]Task, error) {
	jsonData, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	var doc interface{}
	if err := json.Unmarshal(jsonData, &doc); err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, err
	}

	var tasks []Task
	if err := json.Unmarshal(jsonData, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// toJSON normalizes YAML content to JSON so both encodings share one
// validation path.
func toJSON(data []byte, format Format) ([]byte, error) {
	if format != FormatYAML {
		return data, nil
	}

	var doc interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	out, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("convert yaml: %w", err)
	}
	return out, nil
}

// Encode serializes tasks in the given format.
func Encode(tasks []Task, format Format) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}

	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(tasks); err != nil {
			return nil, err
		}
		if err := enc.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		data, err := json.MarshalIndent(tasks, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
}

// Save writes every task in s to path, replacing the file.
// The content goes to a temporary file in the same directory first and is
// renamed over path, so a failed save leaves the previous file intact.
func Save(path string, s *Store) error {
	data, err := Encode(s.Tasks(), FormatForPath(path))
	if err != nil {
		return fmt.Errorf("marshal task file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write task file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write task file: %w", err)
	}
	return nil
}
