package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/contentstack/pkg/layout"
	"github.com/matzehuels/contentstack/pkg/state"
)

// WriteState encodes st as indented JSON. The output can be re-imported with
// [ReadState].
func WriteState(st state.State, w io.Writer) error {
	return writeJSON(st, w)
}

// ExportState writes st to a JSON file at path.
func ExportState(st state.State, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteState(st, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteTree encodes a render tree as indented JSON.
func WriteTree(tree layout.RenderTree, w io.Writer) error {
	return writeJSON(tree, w)
}

// WriteEvents encodes events as a JSON array of envelopes.
func WriteEvents(events []state.Event, w io.Writer) error {
	envs := make([]state.Envelope, len(events))
	for i, ev := range events {
		env, err := state.EncodeEvent(ev)
		if err != nil {
			return err
		}
		envs[i] = env
	}
	return writeJSON(envs, w)
}

func writeJSON(v any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
