package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	props "github.com/goliatone/go-props"
	"github.com/goliatone/go-props/internal/hydrate"
	"github.com/goliatone/go-props/pkg/fits"
	"github.com/goliatone/go-props/pkg/yamlio"
)

type format string

const (
	formatFITS format = "fits"
	formatYAML format = "yaml"
	formatJSON format = "json"
)

var errUnknownFormat = errors.New("unknown format")

func parseFormat(name string) (format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "fits", "fit", "fts", "hdr":
		return formatFITS, nil
	case "yaml", "yml":
		return formatYAML, nil
	case "json":
		return formatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", errUnknownFormat, name)
	}
}

// detectFormat prefers an explicit override and falls back to the file
// extension.
func detectFormat(path, override string) (format, error) {
	if override != "" {
		return parseFormat(override)
	}
	ext := filepath.Ext(path)
	if ext == "" {
		return "", fmt.Errorf("%w: cannot detect format of %q, use --from or --to", errUnknownFormat, path)
	}
	return parseFormat(ext)
}

func (a *app) load(path string) (*props.List, error) {
	f, err := detectFormat(path, a.flags.from)
	if err != nil {
		return nil, err
	}
	var r io.Reader = os.Stdin
	if path != "-" {
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		r = file
	}
	list, err := decode(r, f, path, a.listOptions(path)...)
	if err != nil {
		return nil, err
	}
	if a.logger != nil {
		a.logger.Info("loaded header", "path", path, "format", f, "entries", list.Len())
	}
	return list, nil
}

func decode(r io.Reader, f format, source string, opts ...props.Option) (*props.List, error) {
	switch f {
	case formatFITS:
		return fits.Decode(r, opts...)
	case formatYAML:
		return yamlio.Decode(r, opts...)
	case formatJSON:
		decoder := hydrate.NewDecoder(hydrate.WithTimes(), hydrate.WithListOptions(opts...))
		return decoder.Decode(hydrate.Context{Source: source}, r)
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, f)
	}
}

func encode(w io.Writer, f format, list *props.List) error {
	switch f {
	case formatFITS:
		return fits.Encode(w, list)
	case formatYAML:
		return yamlio.Encode(w, list)
	case formatJSON:
		return hydrate.Encode(w, list)
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, f)
	}
}
