// Package encoding provides the output formats of the toolhost CLI.
package encoding

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/effective-security/toolhost/pkg/llmutils"
	"gopkg.in/yaml.v3"
)

type Format = string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	// FormatText prints strings and fmt.Stringer values as is,
	// other values as YAML.
	FormatText Format = "text"
)

// FormatDefault is the default format of the CLI output.
var FormatDefault = FormatText

// Formats returns the supported formats.
func Formats() []Format {
	return []Format{FormatJSON, FormatYAML, FormatTOML, FormatText}
}

// ErrUnsupportedFormat is returned for unknown formats.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Marshal encodes the value in the format.
func Marshal(format Format, v any) ([]byte, error) {
	switch strings.ToLower(format) {
	case FormatJSON:
		return json.MarshalIndent(v, "", "  ")
	case FormatYAML:
		return yaml.Marshal(v)
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(v); err != nil {
			return nil, errors.Wrap(err, "failed to encode TOML")
		}
		return buf.Bytes(), nil
	case FormatText, "":
		switch val := v.(type) {
		case string:
			return []byte(val), nil
		case fmt.Stringer:
			return []byte(val.String()), nil
		}
		return yaml.Marshal(v)
	}
	return nil, errors.Wrapf(ErrUnsupportedFormat, "format %q", format)
}

// Unmarshal decodes the data in the format, surrounding backticks are trimmed.
func Unmarshal(format Format, data []byte, v any) error {
	data = llmutils.BytesTrimBackticks(data)
	var err error
	switch strings.ToLower(format) {
	case FormatJSON:
		err = json.Unmarshal(data, v)
	case FormatYAML, FormatText, "":
		err = yaml.Unmarshal(data, v)
	case FormatTOML:
		err = toml.Unmarshal(data, v)
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "format %q", format)
	}
	if err != nil {
		return errors.Wrapf(err, "failed to decode %s", format)
	}
	return nil
}

// Write encodes the value in the format, and ends the output with a new line.
func Write(w io.Writer, format Format, v any) error {
	bs, err := Marshal(format, v)
	if err != nil {
		return err
	}
	if len(bs) == 0 || bs[len(bs)-1] != '\n' {
		bs = append(bs, '\n')
	}
	_, err = w.Write(bs)
	return errors.WithStack(err)
}
