package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	tocerr "github.com/matzehuels/tocview/pkg/errors"
	"github.com/matzehuels/tocview/pkg/toc"
)

// Write encodes d to w in format f. The output can be read back with
// [Decode] or [Read].
func Write(w io.Writer, d toc.Data, f Format) error {
	out := fromData(d)
	var err error
	switch f {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(out)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(out); err == nil {
			err = enc.Close()
		}
	case FormatTOML:
		err = toml.NewEncoder(w).Encode(out)
	default:
		return tocerr.New(tocerr.ErrCodeUnsupported, "unsupported diagram format: %q", f)
	}
	if err != nil {
		return tocerr.Wrap(tocerr.ErrCodeInternal, err, "encode %s", f)
	}
	return nil
}

// Export writes d to a file at path, choosing the format from the file
// extension.
func Export(d toc.Data, path string) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	file, err := os.Create(path)
	if err != nil {
		return tocerr.Wrap(tocerr.ErrCodeInternal, err, "create %s", path)
	}
	if err := Write(file, d, f); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}
