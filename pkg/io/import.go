package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/contentstack/pkg/errors"
	"github.com/matzehuels/contentstack/pkg/layout"
	"github.com/matzehuels/contentstack/pkg/state"
)

// Format is a snapshot or event log encoding.
type Format string

// Supported input formats.
const (
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// DetectFormat picks the format from the extension of path.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat,
		"unsupported file extension %q (must be .json, .toml, .yaml or .yml)", filepath.Ext(path))
}

// ReadState decodes a snapshot from r.
//
// Decoding starts from [state.Initial], so fields the snapshot omits keep
// their initial value. The layout is validated before ReadState returns.
func ReadState(r io.Reader, f Format) (state.State, error) {
	st := state.Initial()
	if err := decode(r, f, &st); err != nil {
		return state.State{}, err
	}
	if err := layout.Validate(st.Layout); err != nil {
		return state.State{}, err
	}
	return st, nil
}

// ImportState reads the snapshot file at path.
func ImportState(path string) (state.State, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return state.State{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		return state.State{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	st, err := ReadState(file, f)
	if err != nil {
		return state.State{}, fmt.Errorf("%s: %w", path, err)
	}
	return st, nil
}

// ReadEvents decodes an event log from r.
func ReadEvents(r io.Reader, f Format) ([]state.Event, error) {
	raw, err := normalize(r, f)
	if err != nil {
		return nil, err
	}

	var envs []state.Envelope
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &envs)
	} else {
		var doc struct {
			Events []state.Envelope `json:"events"`
		}
		err = json.Unmarshal(trimmed, &doc)
		envs = doc.Events
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidEvent, err, "decode event log")
	}

	events := make([]state.Event, 0, len(envs))
	for i, env := range envs {
		ev, err := state.DecodeEnvelope(env)
		if err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

// ImportEvents reads the event log file at path.
func ImportEvents(path string) ([]state.Event, error) {
	f, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	events, err := ReadEvents(file, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return events, nil
}

// decode reads r in format f into v using v's JSON tags.
func decode(r io.Reader, f Format, v any) error {
	raw, err := normalize(r, f)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s", f)
	}
	return nil
}

// normalize converts the input to JSON. TOML and YAML documents are decoded
// generically and re-encoded, which lets every format share the JSON tags.
func normalize(r io.Reader, f Format) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}

	var generic any
	switch f {
	case FormatJSON:
		return data, nil
	case FormatTOML:
		m := map[string]any{}
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode toml")
		}
		generic = m
	case FormatYAML:
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode yaml")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", f)
	}

	out, err := json.Marshal(generic)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "normalize %s", f)
	}
	return out, nil
}
