package billboard

import (
	"encoding/json"

	"github.com/pkg/errors"
)

// The upstream feed is a JS file, not JSON: a fixed 15-byte assignment
// prefix, the JSON payload, and a closing byte.
const (
	wrapperPrefixLen = 15
	wrapperSuffixLen = 1
)

// ErrParse marks a payload whose sliced region is not well-formed JSON.
var ErrParse = errors.New("billboard payload is not valid JSON")

// Parse strips the non-JSON wrapper from the raw feed text and decodes the
// remainder. Only JSON well-formedness is validated, not the wrapper bytes
// themselves, so wrapper drift upstream surfaces as an explicit error
// instead of silently corrupted output.
func Parse(raw []byte) (*Document, error) {
	if len(raw) <= wrapperPrefixLen+wrapperSuffixLen {
		return nil, errors.Wrap(ErrParse, "payload shorter than wrapper")
	}
	sliced := raw[wrapperPrefixLen : len(raw)-wrapperSuffixLen]

	var doc Document
	if err := json.Unmarshal(sliced, &doc); err != nil {
		return nil, errors.Wrap(ErrParse, err.Error())
	}
	return &doc, nil
}
