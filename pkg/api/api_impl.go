package api

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/esdeno/mediatype/internal/config"
	"github.com/esdeno/mediatype/internal/logger"
	"github.com/esdeno/mediatype/internal/mediatype"
	"github.com/esdeno/mediatype/internal/specifier"
)

func validatePrecedence(value Precedence) mediatype.Precedence {
	switch value {
	case PrecedenceDefault, PrecedenceHint:
		return mediatype.PreferHint
	case PrecedenceExtension:
		return mediatype.PreferExtension
	default:
		panic("Invalid precedence")
	}
}

func validateModuleFormat(value ModuleFormat) string {
	switch value {
	case FormatNone:
		return ""
	case FormatCommonJS:
		return "commonjs"
	case FormatModule:
		return "module"
	case FormatJSON:
		return "json"
	case FormatWasm:
		return "wasm"
	default:
		panic("Invalid module format")
	}
}

func parseModuleFormatImpl(text string) (ModuleFormat, error) {
	switch text {
	case "commonjs":
		return FormatCommonJS, nil
	case "module":
		return FormatModule, nil
	case "json":
		return FormatJSON, nil
	case "wasm":
		return FormatWasm, nil
	default:
		return FormatNone, fmt.Errorf("invalid module format: %q (valid: commonjs, module, json, wasm)", text)
	}
}

func parsePrecedenceImpl(text string) (Precedence, error) {
	precedence, err := config.ParsePrecedence(text)
	if err != nil {
		return PrecedenceDefault, err
	}
	if precedence == mediatype.PreferExtension {
		return PrecedenceExtension, nil
	}
	return PrecedenceHint, nil
}

func convertMessages(msgs []logger.Msg) []Message {
	var result []Message
	for _, msg := range msgs {
		result = append(result, Message{
			Text:      msg.Text,
			Specifier: msg.Subject,
			Notes:     msg.Notes,
		})
	}
	return result
}

func fromSpecifierImpl(raw string) (string, error) {
	spec, err := specifier.Parse(raw)
	if err != nil {
		return "", err
	}
	return mediatype.FromSpecifier(spec).String(), nil
}

func classifyImpl(raw string, options ClassifyOptions) ClassifyResult {
	input := ClassifyInput{Specifier: raw, ContentType: options.ContentType, Format: options.Format}
	return classifyOne(input, validatePrecedence(options.Precedence))
}

// A parse failure is logged and leaves "MediaType" empty instead of being
// folded into the "Unknown" media type
func classifyOne(input ClassifyInput, precedence mediatype.Precedence) ClassifyResult {
	raw := input.Specifier
	result := ClassifyResult{Specifier: raw}
	format := validateModuleFormat(input.Format)
	log := logger.NewDeferLog()

	spec, err := specifier.Parse(raw)
	if err != nil {
		log.AddErrorWithNotes(raw, err.Error(), []string{"Only absolute specifiers can be classified"})
		result.Errors = convertMessages(log.Done())
		return result
	}

	mt := mediatype.Classify(spec, input.ContentType, precedence)
	if spec.IsDataURL() {
		if input.ContentType != "" {
			log.AddWarning(raw, fmt.Sprintf("The content type is ignored for %q because data URLs declare their own", raw))
		}
		if format != "" {
			log.AddWarning(raw, fmt.Sprintf("The module format is ignored for %q because data URLs declare their own type", raw))
		}
	} else if format != "" {
		mt = mediatype.FromModuleFormat(format)
	}

	result.Warnings = convertMessages(log.Done())
	result.MediaType = mt.String()
	result.Loader = mt.Loader().String()
	return result
}

func classifyBatchImpl(ctx context.Context, inputs []ClassifyInput, options BatchOptions) ([]ClassifyResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	precedence := validatePrecedence(options.Precedence)
	workers := config.Options{Workers: options.Workers}.EffectiveWorkers()

	results := make([]ClassifyResult, len(inputs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, input := range inputs {
		i, input := i, input
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = classifyOne(input, precedence)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
