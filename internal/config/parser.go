package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/alexisbeaulieu97/taxon/internal/taxonomy"
	taxonerrors "github.com/alexisbeaulieu97/taxon/pkg/errors"
)

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// ParseFile loads a taxonomy document from disk and validates it.
func ParseFile(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, taxonerrors.NewParseError(path, 0, err)
	}
	return Parse(data, path)
}

// Parse decodes and validates a taxonomy document. JSON documents are
// accepted since JSON is a subset of YAML.
func Parse(data []byte, origin string) (*Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, taxonerrors.NewParseError(origin, 0, errors.New("document is empty"))
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, taxonerrors.NewParseError(origin, extractLine(err), err)
	}
	doc.origin = origin

	if err := ValidateDocument(&doc); err != nil {
		return nil, err
	}

	return &doc, nil
}

// LoadTree parses data and returns its tree in one step.
func LoadTree(data []byte, origin string) (*Document, *taxonomy.Tree, error) {
	doc, err := Parse(data, origin)
	if err != nil {
		return nil, nil, err
	}
	tree, err := doc.Tree()
	if err != nil {
		return nil, nil, err
	}
	return doc, tree, nil
}

func extractLine(err error) int {
	if err == nil {
		return 0
	}

	matches := yamlLineRegex.FindStringSubmatch(err.Error())
	if len(matches) != 2 {
		return 0
	}

	var line int
	_, scanErr := fmt.Sscanf(matches[1], "%d", &line)
	if scanErr != nil {
		return 0
	}

	return line
}
