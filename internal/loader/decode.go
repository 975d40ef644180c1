package loader

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadFile reads a file with automatic encoding detection.
// It returns the UTF-8 content and the name of the encoding that produced it.
func ReadFile(path string, hints []string) (string, string, error) {
	rawBytes, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read file: %w", err)
	}

	content, enc, err := Decode(rawBytes, hints)
	if err != nil {
		return "", "", &ParseError{Path: path, Err: err}
	}
	return content, enc, nil
}

// Decode converts raw bytes to UTF-8 text.
// Valid UTF-8 (BOM stripped) wins; otherwise each non-UTF-8 hint is tried in order.
func Decode(rawBytes []byte, hints []string) (string, string, error) {
	if utf8.Valid(rawBytes) {
		return string(bytes.TrimPrefix(rawBytes, utf8BOM)), "utf-8", nil
	}

	for _, hint := range hints {
		if isUTF8Name(hint) {
			continue
		}
		enc, err := htmlindex.Get(hint)
		if err != nil {
			// Unknown label, try the next one
			continue
		}
		decodedBytes, _, err := transform.Bytes(enc.NewDecoder(), rawBytes)
		if err != nil || !utf8.Valid(decodedBytes) {
			continue
		}
		name, err := htmlindex.Name(enc)
		if err != nil {
			name = strings.ToLower(hint)
		}
		return string(decodedBytes), name, nil
	}

	return "", "", fmt.Errorf("%w: not UTF-8 and no usable encoding in %v", ErrEncoding, hints)
}

func isUTF8Name(name string) bool {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "utf-8", "utf8", "unicode-1-1-utf-8":
		return true
	}
	return false
}
