package io

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"io/fs"
	"os"

	"github.com/matzehuels/arborheat/pkg/errors"
	"github.com/matzehuels/arborheat/pkg/scene"
)

// ReadJSON decodes a saved scene from r.
//
// Unknown fields are rejected so that files from other tools fail loudly
// instead of rendering as an empty figure. The decoded scene is validated
// with [scene.Scene.Validate]; any failure is an INVALID_FORMAT error.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*scene.Scene, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var s scene.Scene
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode scene")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// ImportJSON reads a saved scene from the file at path.
//
// A missing file is a FILE_NOT_FOUND error. Decoding and validation
// failures are reported as for [ReadJSON], with the path added.
func ImportJSON(path string) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "scene %s not found", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "open %s", path)
	}
	defer f.Close()

	s, err := ReadJSON(f)
	if err != nil {
		return nil, errors.Wrap(errors.GetCode(err), err, "load %s", path)
	}
	return s, nil
}
