package io

import (
	"encoding/json"
	"errors"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	tocerr "github.com/matzehuels/tocview/pkg/errors"
	"github.com/matzehuels/tocview/pkg/toc"
)

// Decode reads raw diagram data from r in format f. It checks the encoding
// only; see [Read] for a decoded and indexed graph.
//
// Decode does not close r.
func Decode(r io.Reader, f Format) (toc.Data, error) {
	var d diagram
	var err error
	switch f {
	case FormatJSON:
		err = json.NewDecoder(r).Decode(&d)
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&d)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatTOML:
		_, err = toml.NewDecoder(r).Decode(&d)
	default:
		return toc.Data{}, tocerr.New(tocerr.ErrCodeUnsupported, "unsupported diagram format: %q", f)
	}
	if err != nil {
		return toc.Data{}, tocerr.Wrap(tocerr.ErrCodeInvalidFormat, err, "decode %s", f)
	}
	return d.toData(), nil
}

// Read decodes a diagram from r and indexes it into a [toc.Graph].
//
// Read returns an INVALID_FORMAT error if the input cannot be decoded and an
// INVALID_GRAPH error if a node ID is empty or reused. The underlying
// [toc.ErrInvalidNodeID] or [toc.ErrDuplicateNodeID] stays reachable through
// errors.Is.
func Read(r io.Reader, f Format) (*toc.Graph, error) {
	d, err := Decode(r, f)
	if err != nil {
		return nil, err
	}
	return Build(d)
}

// Build indexes d, mapping graph errors to INVALID_GRAPH.
func Build(d toc.Data) (*toc.Graph, error) {
	g, err := toc.New(d)
	if err != nil {
		return nil, tocerr.Wrap(tocerr.ErrCodeInvalidGraph, err, "invalid diagram")
	}
	return g, nil
}

// ImportData reads the file at path without indexing it. The format is
// chosen from the file extension.
func ImportData(path string) (toc.Data, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return toc.Data{}, err
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return toc.Data{}, tocerr.Wrap(tocerr.ErrCodeFileNotFound, err, "open %s", path)
		}
		return toc.Data{}, tocerr.Wrap(tocerr.ErrCodeInternal, err, "open %s", path)
	}
	defer file.Close()

	d, err := Decode(file, f)
	if err != nil {
		return toc.Data{}, tocerr.Wrap(tocerr.GetCode(err), err, "%s", path)
	}
	return d, nil
}

// Import reads the file at path and returns the indexed graph.
func Import(path string) (*toc.Graph, error) {
	d, err := ImportData(path)
	if err != nil {
		return nil, err
	}
	g, err := toc.New(d)
	if err != nil {
		return nil, tocerr.Wrap(tocerr.ErrCodeInvalidGraph, err, "%s", path)
	}
	return g, nil
}
