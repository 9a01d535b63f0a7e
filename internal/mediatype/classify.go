// Package mediatype decides how the contents of a module should be parsed
// given where it came from. Classification is a pure table lookup and is safe
// to call from any number of goroutines.
package mediatype

import "github.com/esdeno/mediatype/internal/specifier"

// Decides which source wins when both the file extension and a content type
// hint produce a media type. Neither policy lets a hint that maps to
// "Unknown" override a recognized extension.
type Precedence uint8

const (
	// Transport metadata wins over a possibly-stale file name
	PreferHint Precedence = iota

	// The hint is only consulted when the extension isn't recognized
	PreferExtension
)

func (p Precedence) String() string {
	switch p {
	case PreferHint:
		return "hint"
	case PreferExtension:
		return "extension"
	default:
		return "unknown"
	}
}

// Combines the two candidate results for a non-data specifier
func Resolve(fromExtension MediaType, fromHint MediaType, precedence Precedence) MediaType {
	switch precedence {
	case PreferExtension:
		if fromExtension != Unknown {
			return fromExtension
		}
		return fromHint

	default:
		if fromHint != Unknown {
			return fromHint
		}
		return fromExtension
	}
}

// The content type hint is optional and may be empty. It's ignored for data
// URLs because the type they declare is authoritative.
func Classify(spec specifier.Specifier, contentType string, precedence Precedence) MediaType {
	if spec.IsDataURL() {
		return FromContentType(spec.MIMEType)
	}

	fromExtension := FromExtension(spec.FinalSegment())
	if contentType == "" {
		return fromExtension
	}
	return Resolve(fromExtension, FromContentType(contentType), precedence)
}

// This is the same as "Classify" with no hint and the default precedence
func FromSpecifier(spec specifier.Specifier) MediaType {
	return Classify(spec, "", PreferHint)
}
