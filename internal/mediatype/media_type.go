package mediatype

import "strings"

// How the contents of a module should be parsed. This is a closed set and the
// zero value is "Unknown".
type MediaType uint8

const (
	Unknown MediaType = iota
	JavaScript
	Mjs
	Cjs
	Jsx
	TypeScript
	Mts
	Cts
	Tsx
	Dts
	Dmts
	Dcts
	Json
	Wasm
	TsBuildInfo
	SourceMap
)

// These are the names that cross process and language boundaries. Note that
// "JSX" and "TSX" are all caps because that's what existing plugin code
// switches on.
var mediaTypeNames = [...]string{
	Unknown:     "Unknown",
	JavaScript:  "JavaScript",
	Mjs:         "Mjs",
	Cjs:         "Cjs",
	Jsx:         "JSX",
	TypeScript:  "TypeScript",
	Mts:         "Mts",
	Cts:         "Cts",
	Tsx:         "TSX",
	Dts:         "Dts",
	Dmts:        "Dmts",
	Dcts:        "Dcts",
	Json:        "Json",
	Wasm:        "Wasm",
	TsBuildInfo: "TsBuildInfo",
	SourceMap:   "SourceMap",
}

func (mt MediaType) String() string {
	if int(mt) < len(mediaTypeNames) {
		return mediaTypeNames[mt]
	}
	return mediaTypeNames[Unknown]
}

// All media types in declaration order, "Unknown" last
var All = []MediaType{
	JavaScript, Mjs, Cjs, Jsx,
	TypeScript, Mts, Cts, Tsx,
	Dts, Dmts, Dcts,
	Json, Wasm, TsBuildInfo, SourceMap,
	Unknown,
}

// This is the reverse of "String" for things like config files that name a
// media type. It's case-insensitive so that both "JSX" and "Jsx" work.
func ParseName(text string) (MediaType, bool) {
	for i, name := range mediaTypeNames {
		if strings.EqualFold(name, text) {
			return MediaType(i), true
		}
	}
	return Unknown, false
}

// This corresponds to the "loader" setting of esbuild
type Loader uint8

const (
	LoaderDefault Loader = iota
	LoaderJS
	LoaderJSX
	LoaderTS
	LoaderTSX
	LoaderJSON
)

var loaderNames = [...]string{
	LoaderDefault: "default",
	LoaderJS:      "js",
	LoaderJSX:     "jsx",
	LoaderTS:      "ts",
	LoaderTSX:     "tsx",
	LoaderJSON:    "json",
}

func (loader Loader) String() string {
	if int(loader) < len(loaderNames) {
		return loaderNames[loader]
	}
	return loaderNames[LoaderDefault]
}

// Declaration files are loaded with the TypeScript loader, which produces an
// empty module for them. Anything esbuild can't parse as code gets "default"
// so esbuild picks based on the file extension itself.
func (mt MediaType) Loader() Loader {
	switch mt {
	case JavaScript, Mjs, Cjs:
		return LoaderJS
	case TypeScript, Mts, Cts, Dts, Dmts, Dcts:
		return LoaderTS
	case Jsx:
		return LoaderJSX
	case Tsx:
		return LoaderTSX
	case Json:
		return LoaderJSON
	default:
		return LoaderDefault
	}
}

// Maps the module format that Node's resolution algorithm reports for a file
// inside a package (i.e. "commonjs" when the nearest "package.json" file has
// no "type" field)
func FromModuleFormat(format string) MediaType {
	switch format {
	case "commonjs":
		return Cjs
	case "module":
		return Mjs
	case "json":
		return Json
	case "wasm":
		return Wasm
	default:
		return Unknown
	}
}
