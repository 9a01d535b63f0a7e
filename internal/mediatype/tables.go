package mediatype

import (
	"strings"

	"github.com/esdeno/mediatype/internal/helpers"
)

// Keys include the leading dot and are matched exactly. The compound entries
// have two dots and are always tried before the single suffix.
var extensionToMediaType = map[string]MediaType{
	".ts":          TypeScript,
	".mts":         Mts,
	".cts":         Cts,
	".tsx":         Tsx,
	".d.ts":        Dts,
	".d.mts":       Dmts,
	".d.cts":       Dcts,
	".js":          JavaScript,
	".mjs":         Mjs,
	".cjs":         Cjs,
	".jsx":         Jsx,
	".json":        Json,
	".wasm":        Wasm,
	".tsbuildinfo": TsBuildInfo,
	".map":         SourceMap,
}

// Keys are "type/subtype" essences with parameters already stripped
var mimeToMediaType = map[string]MediaType{
	"application/typescript":   TypeScript,
	"text/typescript":          TypeScript,
	"video/mp2t":               TypeScript,
	"video/vnd.dlna.mpeg-tts":  TypeScript,
	"application/x-typescript": TypeScript,

	"application/javascript":   JavaScript,
	"text/javascript":          JavaScript,
	"application/ecmascript":   JavaScript,
	"text/ecmascript":          JavaScript,
	"application/x-javascript": JavaScript,
	"application/node":         JavaScript,

	"text/jsx": Jsx,
	"text/tsx": Tsx,

	"application/json": Json,
	"text/json":        Json,

	"application/wasm": Wasm,
}

// Looks at the last path segment only. Anything before the last slash can't
// affect the result, so "/a.d/b.ts" is still "TypeScript".
func FromExtension(path string) MediaType {
	if slash := strings.LastIndexByte(path, '/'); slash != -1 {
		path = path[slash+1:]
	}

	lastDot := strings.LastIndexByte(path, '.')
	if lastDot == -1 {
		return Unknown
	}

	// Check for a compound extension such as ".d.ts" first
	if secondDot := strings.LastIndexByte(path[:lastDot], '.'); secondDot != -1 {
		if mt, ok := extensionToMediaType[path[secondDot:]]; ok {
			return mt
		}
	}

	if mt, ok := extensionToMediaType[path[lastDot:]]; ok {
		return mt
	}
	return Unknown
}

// The content type may carry parameters. Missing, malformed, generic, and
// unrecognized content types are all "Unknown".
func FromContentType(contentType string) MediaType {
	essence := helpers.MIMETypeEssence(contentType)
	if essence == "" || helpers.IsGenericMIMEType(essence) {
		return Unknown
	}
	return mimeToMediaType[essence]
}
