// This API exposes media type classification to Go code. The same behavior is
// available from the command line, from the "--service" stdio protocol, and
// from the WebAssembly build, all of which are built on top of this package.
package api

import (
	"context"

	"github.com/esdeno/mediatype/internal/specifier"
)

type Precedence uint8

const (
	PrecedenceDefault Precedence = iota
	PrecedenceHint
	PrecedenceExtension
)

// Accepts the same names as the "--precedence" flag: "hint" or "extension"
func ParsePrecedence(text string) (Precedence, error) {
	return parsePrecedenceImpl(text)
}

// The format that Node's resolution algorithm reports for a file inside a
// package. It decides the media type of files such as "index.js" whose
// extension alone is ambiguous.
type ModuleFormat uint8

const (
	FormatNone ModuleFormat = iota
	FormatCommonJS
	FormatModule
	FormatJSON
	FormatWasm
)

// Accepts "commonjs", "module", "json", or "wasm"
func ParseModuleFormat(text string) (ModuleFormat, error) {
	return parseModuleFormatImpl(text)
}

type Message struct {
	Text      string
	Specifier string
	Notes     []string
}

// Returned when the specifier text isn't a valid absolute URL. This is never
// returned for a valid specifier whose media type isn't recognized.
type ParseError = specifier.ParseError

////////////////////////////////////////////////////////////////////////////////
// FromSpecifier API

// Returns the name of the media type (e.g. "TypeScript" or "Unknown"). This
// uses the default precedence and no content type hint.
func FromSpecifier(specifier string) (string, error) {
	return fromSpecifierImpl(specifier)
}

////////////////////////////////////////////////////////////////////////////////
// Classify API

type ClassifyOptions struct {
	// An optional MIME type such as the "Content-Type" header of the response
	// that the module was loaded from. This is ignored for "data:" URLs.
	ContentType string

	// When set, this replaces both the extension and the content type. Like
	// the content type, it's ignored for "data:" URLs.
	Format ModuleFormat

	Precedence Precedence
}

type ClassifyResult struct {
	Errors   []Message
	Warnings []Message

	Specifier string
	MediaType string

	// The esbuild loader to use for the contents: "js", "jsx", "ts", "tsx",
	// "json", or "default"
	Loader string
}

func Classify(specifier string, options ClassifyOptions) ClassifyResult {
	return classifyImpl(specifier, options)
}

////////////////////////////////////////////////////////////////////////////////
// ClassifyBatch API

type ClassifyInput struct {
	Specifier   string
	ContentType string
	Format      ModuleFormat
}

type BatchOptions struct {
	Precedence Precedence

	// Zero means one worker per available CPU
	Workers int
}

// Results are in the same order as the inputs. Invalid specifiers are
// reported in the "Errors" field of their own result, so the only error
// returned here comes from the context.
func ClassifyBatch(ctx context.Context, inputs []ClassifyInput, options BatchOptions) ([]ClassifyResult, error) {
	return classifyBatchImpl(ctx, inputs, options)
}
