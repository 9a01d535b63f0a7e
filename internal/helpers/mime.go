package helpers

import "strings"

// Returns the lowercase "type/subtype" part of a MIME type with any parameters
// such as ";charset=utf-8" removed. The result is empty if the text doesn't
// have exactly one slash with something on both sides of it.
func MIMETypeEssence(text string) string {
	if semicolon := strings.IndexByte(text, ';'); semicolon != -1 {
		text = text[:semicolon]
	}
	text = strings.TrimSpace(text)

	slash := strings.IndexByte(text, '/')
	if slash <= 0 || slash == len(text)-1 || strings.IndexByte(text[slash+1:], '/') != -1 {
		return ""
	}
	if strings.ContainsAny(text, " \t") {
		return ""
	}
	return strings.ToLower(text)
}

// These content types say nothing about the content and must never override
// information derived from somewhere else
var genericMIMETypes = map[string]bool{
	"application/octet-stream": true,
	"text/plain":               true,
}

func IsGenericMIMEType(essence string) bool {
	return genericMIMETypes[essence]
}
