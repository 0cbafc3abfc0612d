package elements

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fxamacker/cbor/v2"
	"github.com/holiman/uint256"
	"gopkg.in/yaml.v3"

	"github.com/alphabill-org/rbtree/internal/logger"
)

var log = logger.CreateForPackage()

// Format of an input file.
type Format string

const (
	// FormatText is one element per line, blank lines and lines starting with "#" are skipped.
	FormatText Format = "text"
	// FormatYAML is a top level YAML sequence.
	FormatYAML Format = "yaml"
	// FormatCBOR is a CBOR array.
	FormatCBOR Format = "cbor"
)

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatYAML, FormatCBOR:
		return f, nil
	case "yml":
		return FormatYAML, nil
	case "txt":
		return FormatText, nil
	}
	return "", fmt.Errorf("unknown input format %q", s)
}

// FormatFromPath picks the format by file extension, text is the default.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".cbor":
		return FormatCBOR
	}
	return FormatText
}

// decodeList decodes a list of elements. Text lines are handed to parseLine, structured
// formats are decoded into a list of R and every item is handed to convert.
func decodeList[R, T any](r io.Reader, format Format, parseLine func(string) (T, error), convert func(R) (T, error)) ([]T, error) {
	if format == FormatText {
		return decodeLines(r, parseLine)
	}
	var raw []R
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&raw)
	case FormatCBOR:
		err = cbor.NewDecoder(r).Decode(&raw)
	default:
		return nil, fmt.Errorf("unknown input format %q", format)
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding %s input: %w", format, err)
	}
	items := make([]T, 0, len(raw))
	for i, v := range raw {
		item, err := convert(v)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func decodeLines[T any](r io.Reader, parseLine func(string) (T, error)) ([]T, error) {
	var items []T
	scanner := bufio.NewScanner(r)
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		item, err := parseLine(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		items = append(items, item)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading text input: %w", err)
	}
	return items, nil
}

func DecodeVectors(r io.Reader, format Format) ([]Vector, error) {
	return decodeList(r, format, ParseVector, func(v []float64) (Vector, error) {
		if err := Vector(v).Validate(); err != nil {
			return nil, err
		}
		return v, nil
	})
}

func DecodeWords(r io.Reader, format Format) ([]string, error) {
	return decodeList(r, format,
		func(s string) (string, error) { return s, nil },
		func(s string) (string, error) { return s, nil },
	)
}

// DecodeUnitIDs decodes hex encoded identifiers, in CBOR input as text strings.
func DecodeUnitIDs(r io.Reader, format Format) ([]*uint256.Int, error) {
	return decodeList(r, format, ParseUnitID, ParseUnitID)
}

func LoadVectors(path string, format Format) ([]Vector, error) {
	return loadFile(path, format, DecodeVectors)
}

func LoadWords(path string, format Format) ([]string, error) {
	return loadFile(path, format, DecodeWords)
}

func LoadUnitIDs(path string, format Format) ([]*uint256.Int, error) {
	return loadFile(path, format, DecodeUnitIDs)
}

// loadFile decodes the file, empty format means it is detected from the file extension.
func loadFile[T any](path string, format Format, decode func(io.Reader, Format) ([]T, error)) ([]T, error) {
	if format == "" {
		format = FormatFromPath(path)
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	items, err := decode(f, format)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	log.Debug("loaded %d items from %s (%s)", len(items), path, format)
	return items, nil
}
