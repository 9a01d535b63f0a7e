package api_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/esdeno/mediatype/pkg/api"
)

func TestFromSpecifier(t *testing.T) {
	check := func(raw string, expected string) {
		t.Helper()
		observed, err := api.FromSpecifier(raw)
		require.NoError(t, err)
		assert.Equal(t, expected, observed, raw)
	}

	check("file:///a/b/mod.ts", "TypeScript")
	check("file:///a/b/mod.d.mts", "Dmts")
	check("https://example.com/x.json?v=2", "Json")
	check("data:application/wasm;base64,AGFzbQ==", "Wasm")
	check("https://example.com/noext", "Unknown")
	check("https://example.com/app.jsx", "JSX")
	check("https://example.com/app.tsx", "TSX")
	check("npm:preact@10.0.0/hooks/dist/hooks.mjs", "Mjs")
	check("jsr:@std/path@1.0.0/mod.ts", "TypeScript")

	// Stray percent signs are literal characters and escapes aren't decoded
	check("https://example.com/%zz.ts", "TypeScript")
	check("data:text/javascript,x#%zz", "JavaScript")
	check("https://example.com/mod%2Ets", "Unknown")
}

func TestFromSpecifierParseError(t *testing.T) {
	observed, err := api.FromSpecifier("not a url")
	require.Error(t, err)
	assert.Equal(t, "", observed)

	var parseErr *api.ParseError
	require.True(t, errors.As(err, &parseErr))
	assert.Equal(t, "not a url", parseErr.Text)
}

func TestClassify(t *testing.T) {
	result := api.Classify("https://x/y.css", api.ClassifyOptions{ContentType: "application/javascript"})
	assert.Empty(t, result.Errors)
	assert.Equal(t, "https://x/y.css", result.Specifier)
	assert.Equal(t, "JavaScript", result.MediaType)
	assert.Equal(t, "js", result.Loader)

	result = api.Classify("https://x/y.ts", api.ClassifyOptions{ContentType: "application/javascript"})
	assert.Equal(t, "JavaScript", result.MediaType)

	result = api.Classify("https://x/y.ts", api.ClassifyOptions{
		ContentType: "application/javascript",
		Precedence:  api.PrecedenceExtension,
	})
	assert.Equal(t, "TypeScript", result.MediaType)
	assert.Equal(t, "ts", result.Loader)

	result = api.Classify("https://x/y.d.ts", api.ClassifyOptions{ContentType: "application/octet-stream"})
	assert.Equal(t, "Dts", result.MediaType)
	assert.Equal(t, "ts", result.Loader)

	result = api.Classify("data:application/json,{}", api.ClassifyOptions{ContentType: "text/typescript"})
	assert.Equal(t, "Json", result.MediaType)
	assert.Equal(t, "json", result.Loader)

	result = api.Classify("https://example.com/noext", api.ClassifyOptions{})
	assert.Empty(t, result.Errors)
	assert.Equal(t, "Unknown", result.MediaType)
	assert.Equal(t, "default", result.Loader)
}

func TestClassifyModuleFormat(t *testing.T) {
	check := func(raw string, format api.ModuleFormat, expected string) {
		t.Helper()
		result := api.Classify(raw, api.ClassifyOptions{Format: format, ContentType: "application/typescript"})
		assert.Empty(t, result.Errors)
		assert.Equal(t, expected, result.MediaType, raw)
	}

	check("file:///node_modules/pkg/index.js", api.FormatCommonJS, "Cjs")
	check("file:///node_modules/pkg/index.js", api.FormatModule, "Mjs")
	check("file:///node_modules/pkg/package.json", api.FormatJSON, "Json")
	check("file:///node_modules/pkg/lib.wasm", api.FormatWasm, "Wasm")
	check("file:///node_modules/pkg/index.js", api.FormatNone, "TypeScript")
	check("data:application/json,{}", api.FormatModule, "Json")
}

func TestClassifyWarnings(t *testing.T) {
	result := api.Classify("data:application/json,{}", api.ClassifyOptions{ContentType: "text/typescript", Format: api.FormatModule})
	assert.Empty(t, result.Errors)
	require.Len(t, result.Warnings, 2)
	assert.Equal(t, "data:application/json,{}", result.Warnings[0].Specifier)
	assert.Contains(t, result.Warnings[0].Text, "content type is ignored")
	assert.Contains(t, result.Warnings[1].Text, "module format is ignored")

	result = api.Classify("https://x/y.ts", api.ClassifyOptions{ContentType: "text/typescript"})
	assert.Empty(t, result.Warnings)
}

func TestParseModuleFormat(t *testing.T) {
	check := func(text string, expected api.ModuleFormat) {
		t.Helper()
		format, err := api.ParseModuleFormat(text)
		require.NoError(t, err)
		assert.Equal(t, expected, format)
	}

	check("commonjs", api.FormatCommonJS)
	check("module", api.FormatModule)
	check("json", api.FormatJSON)
	check("wasm", api.FormatWasm)

	_, err := api.ParseModuleFormat("esm")
	assert.EqualError(t, err, `invalid module format: "esm" (valid: commonjs, module, json, wasm)`)
}

func TestClassifyParseError(t *testing.T) {
	result := api.Classify("./mod.ts", api.ClassifyOptions{ContentType: "application/typescript"})
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "./mod.ts", result.Errors[0].Specifier)
	assert.Contains(t, result.Errors[0].Text, `invalid specifier "./mod.ts"`)
	assert.Equal(t, []string{"Only absolute specifiers can be classified"}, result.Errors[0].Notes)
	assert.Equal(t, "", result.MediaType)
	assert.Equal(t, "", result.Loader)
}

func TestClassifyBatch(t *testing.T) {
	var inputs []api.ClassifyInput
	var expected []string
	for i := 0; i < 50; i++ {
		switch i % 5 {
		case 0:
			inputs = append(inputs, api.ClassifyInput{Specifier: fmt.Sprintf("file:///src/mod%d.ts", i)})
			expected = append(expected, "TypeScript")
		case 1:
			inputs = append(inputs, api.ClassifyInput{Specifier: fmt.Sprintf("file:///src/mod%d.d.cts", i)})
			expected = append(expected, "Dcts")
		case 2:
			inputs = append(inputs, api.ClassifyInput{Specifier: fmt.Sprintf("https://esm.sh/pkg%d", i), ContentType: "application/javascript; charset=utf-8"})
			expected = append(expected, "JavaScript")
		case 3:
			inputs = append(inputs, api.ClassifyInput{Specifier: fmt.Sprintf("file:///node_modules/pkg%d/index.js", i), Format: api.FormatCommonJS})
			expected = append(expected, "Cjs")
		case 4:
			inputs = append(inputs, api.ClassifyInput{Specifier: fmt.Sprintf("mod%d.ts", i)})
			expected = append(expected, "")
		}
	}

	results, err := api.ClassifyBatch(context.Background(), inputs, api.BatchOptions{Workers: 3})
	require.NoError(t, err)
	require.Len(t, results, len(inputs))

	for i, result := range results {
		assert.Equal(t, inputs[i].Specifier, result.Specifier)
		assert.Equal(t, expected[i], result.MediaType, inputs[i].Specifier)
		if expected[i] == "" {
			assert.Len(t, result.Errors, 1)
		} else {
			assert.Empty(t, result.Errors)
		}
	}
}

func TestClassifyBatchCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := api.ClassifyBatch(ctx, []api.ClassifyInput{{Specifier: "file:///mod.ts"}}, api.BatchOptions{})
	require.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, results)
}

func TestClassifyBatchEmpty(t *testing.T) {
	results, err := api.ClassifyBatch(context.Background(), nil, api.BatchOptions{})
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestParsePrecedence(t *testing.T) {
	precedence, err := api.ParsePrecedence("hint")
	require.NoError(t, err)
	assert.Equal(t, api.PrecedenceHint, precedence)

	precedence, err = api.ParsePrecedence("extension")
	require.NoError(t, err)
	assert.Equal(t, api.PrecedenceExtension, precedence)

	_, err = api.ParsePrecedence("")
	assert.EqualError(t, err, `invalid precedence: "" (valid: hint, extension)`)
}
