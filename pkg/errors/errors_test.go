package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseErrorWrapsUnderlying(t *testing.T) {
	t.Parallel()

	underlying := fmt.Errorf("mapping values are not allowed")
	err := NewParseError("taxonomy.yaml", 12, underlying)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	require.Equal(t, "taxonomy.yaml", parseErr.Path)
	require.Equal(t, 12, parseErr.Line)
	require.True(t, stdErrors.Is(err, underlying))
	require.Equal(t, "parse error: taxonomy.yaml:12: mapping values are not allowed", err.Error())
}

func TestParseErrorWithoutLine(t *testing.T) {
	t.Parallel()

	err := NewParseError("remote", 0, stdErrors.New("empty document"))
	require.Equal(t, "parse error: remote: empty document", err.Error())
}

func TestValidationErrorIncludesField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("categories.Technology.count", "must be zero or greater", nil)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "categories.Technology.count", validationErr.Field)
	require.Contains(t, err.Error(), "must be zero or greater")

	bare := NewValidationError("", "document is nil", nil)
	require.Equal(t, "validation error: document is nil", bare.Error())
}

func TestSourceErrorIncludesSourceName(t *testing.T) {
	t.Parallel()

	underlying := stdErrors.New("connection refused")
	err := NewSourceError("https://example.com/taxonomy.yaml", underlying)

	var sourceErr *SourceError
	require.ErrorAs(t, err, &sourceErr)
	require.Equal(t, "https://example.com/taxonomy.yaml", sourceErr.Source)
	require.True(t, stdErrors.Is(err, underlying))
	require.Contains(t, err.Error(), "connection refused")
}

func TestPathErrorCopiesPath(t *testing.T) {
	t.Parallel()

	path := []string{"Technology", "Quantum"}
	err := NewPathError(path)
	path[1] = "mutated"

	var pathErr *PathError
	require.ErrorAs(t, err, &pathErr)
	require.Equal(t, []string{"Technology", "Quantum"}, pathErr.Path)
	require.Equal(t, "unknown category: Technology / Quantum", err.Error())
	require.Equal(t, "unknown category: empty path", NewPathError(nil).Error())
}

func TestNilReceivers(t *testing.T) {
	t.Parallel()

	var parseErr *ParseError
	var validationErr *ValidationError
	var sourceErr *SourceError
	var pathErr *PathError

	require.Empty(t, parseErr.Error())
	require.Nil(t, parseErr.Unwrap())
	require.Empty(t, validationErr.Error())
	require.Nil(t, validationErr.Unwrap())
	require.Empty(t, sourceErr.Error())
	require.Nil(t, sourceErr.Unwrap())
	require.Empty(t, pathErr.Error())
}
