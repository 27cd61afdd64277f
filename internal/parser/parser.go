package parser

import (
	"encoding/json"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/wsnode/internal/errors" // Custom errors package
	"github.com/mcncl/wsnode/internal/models"
)

// Format identifies the syntax of a resource document
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath infers the document format from a file extension
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", errors.NewInputError(fmt.Sprintf("cannot infer format of '%s'", path), errors.ErrUnsupportedFormat)
	}
}

// Parse reads one resource document from reader
func Parse(reader io.Reader, format Format) (models.Document, error) {
	var (
		doc models.Document
		err error
	)
	switch format {
	case FormatJSON:
		doc, err = parseJSON(reader)
	case FormatYAML:
		doc, err = parseYAML(reader)
	default:
		return models.Document{}, errors.NewInputError(fmt.Sprintf("unknown format '%s'", format), errors.ErrUnsupportedFormat)
	}
	if err != nil {
		return models.Document{}, err
	}

	if doc.Definition == nil {
		return models.Document{}, errors.NewParsingError("document has no definition", errors.ErrInvalidDocument)
	}
	if err := doc.Definition.Normalize(); err != nil {
		return models.Document{}, errors.NewDefinitionError("invalid resource definition", err)
	}
	for i, record := range doc.Records {
		doc.Records[i] = normalizeValue(record).(models.JSONObject)
	}

	return doc, nil
}

func parseJSON(reader io.Reader) (models.Document, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Ensure numbers are read as json.Number

	var doc models.Document
	if err := decoder.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		if stderrors.As(err, &syntaxError) {
			return models.Document{}, errors.NewParsingError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidDocument,
			)
		}
		if stderrors.As(err, &unmarshalTypeError) {
			return models.Document{}, errors.NewParsingError(
				fmt.Sprintf("JSON type error at offset %d for field %s", unmarshalTypeError.Offset, unmarshalTypeError.Field),
				errors.ErrInvalidDocument,
			)
		}
		return models.Document{}, errors.NewParsingError("failed to decode JSON", err)
	}

	// A second value after the document is an error; trailing whitespace is not.
	if decoder.More() {
		var trailing interface{}
		if err := decoder.Decode(&trailing); err != nil {
			if !stderrors.Is(err, io.EOF) {
				return models.Document{}, errors.NewParsingError("invalid trailing data after document", err)
			}
		} else {
			return models.Document{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleDocuments)
		}
	}

	return doc, nil
}

func parseYAML(reader io.Reader) (models.Document, error) {
	decoder := yaml.NewDecoder(reader)

	var doc models.Document
	if err := decoder.Decode(&doc); err != nil {
		if stderrors.Is(err, io.EOF) {
			return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		return models.Document{}, errors.NewParsingError("YAML syntax error: "+err.Error(), errors.ErrInvalidDocument)
	}

	var trailing interface{}
	if err := decoder.Decode(&trailing); err == nil {
		return models.Document{}, errors.NewParsingError("multiple YAML documents found", errors.ErrMultipleDocuments)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Document{}, errors.NewParsingError("invalid trailing data after document", err)
	}

	return doc, nil
}

// normalizeValue converts decoded values into model types. YAML mappings with
// non-string keys are re-keyed by their text form.
func normalizeValue(val models.JSONValue) models.JSONValue {
	switch v := val.(type) {
	case map[string]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[key] = normalizeValue(value)
		}
		return obj
	case map[interface{}]interface{}:
		obj := make(models.JSONObject, len(v))
		for key, value := range v {
			obj[fmt.Sprint(key)] = normalizeValue(value)
		}
		return obj
	case []interface{}:
		arr := make(models.JSONArray, len(v))
		for i, value := range v {
			arr[i] = normalizeValue(value)
		}
		return arr
	default:
		return v // Primitives (string, numbers, bool, nil) are returned as is
	}
}

// ParseString parses a resource document from a string
func ParseString(input string, format Format) (models.Document, error) {
	if strings.TrimSpace(input) == "" {
		return models.Document{}, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	return Parse(strings.NewReader(input), format)
}

// ParseFile parses a resource document from a file path, inferring its format
func ParseFile(filePath string) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	format, err := FormatFromPath(filePath)
	if err != nil {
		return models.Document{}, err
	}

	file, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.Size() == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	return Parse(file, format)
}
