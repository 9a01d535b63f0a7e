// Package specifier turns raw module specifier text into the parts that media
// type classification looks at. Only syntax is checked here. Nothing is
// resolved or fetched.
package specifier

import (
	"fmt"
	"net/url"
	"strings"
)

type Specifier struct {
	// The original text, kept for error messages
	Raw string

	// Always lowercase (e.g. "file", "https", "data", "npm")
	Scheme string

	// For hierarchical URLs this is the URL path with its escapes left alone,
	// so "mod%2Ets" doesn't end in ".ts". For opaque URLs such as
	// "npm:preact@10/hooks" this is the opaque part. The query and fragment
	// are never included.
	Path string

	// Only set for the "data" scheme: the declared type before the first
	// comma with any ";base64" suffix removed
	MIMEType string
}

func (s Specifier) IsDataURL() bool {
	return s.Scheme == "data"
}

// Returns the text after the last slash in the path
func (s Specifier) FinalSegment() string {
	path := s.Path
	if slash := strings.LastIndexByte(path, '/'); slash != -1 {
		path = path[slash+1:]
	}
	return path
}

type ParseError struct {
	Text   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid specifier %q: %s", e.Text, e.Reason)
}

func Parse(raw string) (Specifier, error) {
	if strings.TrimSpace(raw) == "" {
		return Specifier{}, &ParseError{Text: raw, Reason: "the specifier is empty"}
	}

	parsed, err := url.Parse(escapeStrayPercents(raw))
	if err != nil {
		reason := err.Error()
		if urlErr, ok := err.(*url.Error); ok {
			reason = urlErr.Err.Error()
		}
		return Specifier{}, &ParseError{Text: raw, Reason: reason}
	}

	if parsed.Scheme == "" {
		return Specifier{}, &ParseError{Text: raw, Reason: "missing scheme (relative specifiers must be resolved first)"}
	}

	spec := Specifier{
		Raw:    raw,
		Scheme: parsed.Scheme,
	}

	if spec.IsDataURL() {
		// Go through the raw text instead of "parsed.Opaque" so that a fragment
		// after the data doesn't get in the way of finding the comma
		if dataURL, ok := ParseDataURL(raw); ok {
			spec.MIMEType = dataURL.MIMEType()
		}
		return spec, nil
	}

	if parsed.Opaque != "" {
		spec.Path = parsed.Opaque
	} else {
		spec.Path = parsed.EscapedPath()
	}
	return spec, nil
}

// Go's URL parser rejects a "%" that doesn't start an escape sequence while
// browsers keep it as a literal character. Such a "%" becomes "%25" here.
func escapeStrayPercents(text string) string {
	if strings.IndexByte(text, '%') == -1 {
		return text
	}

	sb := strings.Builder{}
	for i := 0; i < len(text); i++ {
		c := text[i]
		if c == '%' && (i+2 >= len(text) || !isHex(text[i+1]) || !isHex(text[i+2])) {
			sb.WriteString("%25")
			continue
		}
		sb.WriteByte(c)
	}
	return sb.String()
}

func isHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
