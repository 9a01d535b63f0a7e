package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/esdeno/mediatype/internal/config"
	"github.com/esdeno/mediatype/internal/exitcode"
	"github.com/esdeno/mediatype/internal/logger"
	"github.com/esdeno/mediatype/internal/mediatype"
	"github.com/esdeno/mediatype/pkg/api"
)

const longHelp = `mediatype - Classify module specifiers the way a bundler loads them.

Each specifier must be an absolute URL such as "file:///src/mod.ts",
"https://deno.land/x/mod.d.ts", "npm:preact@10/hooks.mjs", or a "data:" URL.
Specifiers are read from stdin, one per line, when none are given.

The result is one of: JavaScript, Mjs, Cjs, JSX, TypeScript, Mts, Cts, TSX,
Dts, Dmts, Dcts, Json, Wasm, TsBuildInfo, SourceMap, Unknown.`

const examples = `  # Prints "Dts"
  mediatype file:///types/mod.d.ts

  # The content type wins over the extension by default
  mediatype --content-type=application/javascript https://example.com/mod.css

  # Print the esbuild loader too
  mediatype --loader https://example.com/app.tsx https://example.com/data.json

  # A file inside an npm package whose "package.json" says "type": "module"
  mediatype --format=module file:///node_modules/pkg/index.js

  # Fail unless every specifier is TypeScript
  mediatype --expect=TypeScript file:///src/a.ts file:///src/b.mts`

type flagValues struct {
	contentType string
	format      string
	expect      string
	precedence  string
	configFile  string
	logLevel    string
	color       string
	errorLimit  int
	workers     int
	loader      bool
}

type runContext struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	flags  flagValues
}

func runImpl(osArgs []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	rc := &runContext{stdin: stdin, stdout: stdout, stderr: stderr}
	cmd := newRootCommand(rc)

	// Cobra falls back to "os.Args" for a nil slice
	if osArgs == nil {
		osArgs = []string{}
	}
	cmd.SetArgs(osArgs)

	// Failed specifiers have already been logged individually. Anything else
	// may have happened before the log options were parsed.
	err := cmd.Execute()
	if err != nil && !errors.Is(err, errFailedSpecifiers) {
		logger.PrintMessageToWriter(stderr, terminalInfoFor(stderr), osArgs, logger.Msg{Kind: logger.Error, Text: err.Error()})
	}
	return exitcode.Get(err)
}

func newRootCommand(rc *runContext) *cobra.Command {
	root := &cobra.Command{
		Use:           "mediatype [specifiers...]",
		Short:         "Classify module specifiers into media types",
		Long:          longHelp,
		Example:       examples,
		Version:       Version,
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return rc.runClassify(cmd, args)
		},
	}
	root.SetIn(rc.stdin)
	root.SetOut(rc.stdout)
	root.SetErr(rc.stderr)
	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return exitcode.UsageError(err)
	})

	flags := root.Flags()
	flags.StringVar(&rc.flags.contentType, "content-type", "", "Content type hint applied to every specifier (ignored for data: URLs)")
	flags.StringVar(&rc.flags.format, "format", "", "Module format from package resolution: commonjs, module, json, or wasm (overrides the extension)")
	flags.StringVar(&rc.flags.expect, "expect", "", "Fail for any specifier that isn't classified as this media type")
	flags.StringVar(&rc.flags.precedence, "precedence", "hint", "Which wins when both are recognized: hint or extension")
	flags.StringVar(&rc.flags.configFile, "config", "", "Read options from this YAML file")
	flags.StringVar(&rc.flags.logLevel, "log-level", "info", "Disable logging: info, warning, error, or silent")
	flags.StringVar(&rc.flags.color, "color", "", "Force use of color terminal escapes: true or false")
	flags.IntVar(&rc.flags.errorLimit, "error-limit", config.DefaultErrorLimit, "Stop logging after this many errors (0 is no limit)")
	flags.IntVar(&rc.flags.workers, "workers", 0, "Number of specifiers classified in parallel (default one per CPU)")
	flags.BoolVar(&rc.flags.loader, "loader", false, "Also print the esbuild loader for each result")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), Version)
		},
	})

	return root
}

// Flags that were set explicitly override the config file, which overrides
// the defaults
func (rc *runContext) resolveOptions(cmd *cobra.Command) (config.Options, error) {
	options := config.Default()
	flags := cmd.Flags()

	if rc.flags.configFile != "" {
		if err := options.ApplyFile(rc.flags.configFile); err != nil {
			return options, exitcode.UsageError(err)
		}
	}

	if flags.Changed("precedence") {
		precedence, err := config.ParsePrecedence(rc.flags.precedence)
		if err != nil {
			return options, exitcode.UsageError(err)
		}
		options.Precedence = precedence
	}

	if flags.Changed("log-level") {
		level, err := config.ParseLogLevel(rc.flags.logLevel)
		if err != nil {
			return options, exitcode.UsageError(err)
		}
		options.LogLevel = level
	}

	if flags.Changed("color") {
		switch rc.flags.color {
		case "true":
			options.Color = logger.ColorAlways
		case "false":
			options.Color = logger.ColorNever
		default:
			return options, exitcode.UsageError(fmt.Errorf("invalid color: %q (valid: true, false)", rc.flags.color))
		}
	}

	if flags.Changed("error-limit") {
		if rc.flags.errorLimit < 0 {
			return options, exitcode.UsageError(fmt.Errorf("invalid error limit: %d", rc.flags.errorLimit))
		}
		options.ErrorLimit = rc.flags.errorLimit
	}

	if flags.Changed("workers") {
		if rc.flags.workers < 0 {
			return options, exitcode.UsageError(fmt.Errorf("invalid worker count: %d", rc.flags.workers))
		}
		options.Workers = rc.flags.workers
	}

	return options, nil
}

func terminalInfoFor(out io.Writer) logger.TerminalInfo {
	if file, ok := out.(*os.File); ok {
		return logger.GetTerminalInfo(file)
	}
	return logger.TerminalInfo{}
}

func newLog(out io.Writer, options config.Options) logger.Log {
	return logger.NewWriterLog(out, terminalInfoFor(out), logger.StderrOptions{
		ErrorLimit: options.ErrorLimit,
		Color:      options.Color,
		LogLevel:   options.LogLevel,
	})
}

func readSpecifiers(in io.Reader) ([]string, error) {
	var specifiers []string
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			specifiers = append(specifiers, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("could not read from stdin: %w", err)
	}
	return specifiers, nil
}

func toAPIPrecedence(precedence mediatype.Precedence) api.Precedence {
	if precedence == mediatype.PreferExtension {
		return api.PrecedenceExtension
	}
	return api.PrecedenceHint
}

var errFailedSpecifiers = errors.New("some specifiers were invalid or not the expected media type")

func (rc *runContext) runClassify(cmd *cobra.Command, args []string) error {
	options, err := rc.resolveOptions(cmd)
	if err != nil {
		return err
	}

	format := api.FormatNone
	if rc.flags.format != "" {
		if format, err = api.ParseModuleFormat(rc.flags.format); err != nil {
			return exitcode.UsageError(err)
		}
	}

	expect := ""
	if rc.flags.expect != "" {
		mt, ok := mediatype.ParseName(rc.flags.expect)
		if !ok {
			names := make([]string, len(mediatype.All))
			for i, valid := range mediatype.All {
				names[i] = valid.String()
			}
			return exitcode.UsageError(fmt.Errorf("invalid media type: %q (valid: %s)", rc.flags.expect, strings.Join(names, ", ")))
		}
		expect = mt.String()
	}

	specifiers := args
	if len(specifiers) == 0 {
		if specifiers, err = readSpecifiers(cmd.InOrStdin()); err != nil {
			return err
		}
		if len(specifiers) == 0 {
			return exitcode.UsageError(errors.New("no specifiers were provided"))
		}
	}

	inputs := make([]api.ClassifyInput, len(specifiers))
	for i, specifier := range specifiers {
		inputs[i] = api.ClassifyInput{Specifier: specifier, ContentType: rc.flags.contentType, Format: format}
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	results, err := api.ClassifyBatch(ctx, inputs, api.BatchOptions{
		Precedence: toAPIPrecedence(options.Precedence),
		Workers:    options.Workers,
	})
	if err != nil {
		return err
	}

	log := newLog(rc.stderr, options)
	out := bufio.NewWriter(cmd.OutOrStdout())
	for _, result := range results {
		if len(result.Errors) > 0 {
			for _, msg := range result.Errors {
				log.AddErrorWithNotes(msg.Specifier, msg.Text, msg.Notes)
			}
			continue
		}
		for _, msg := range result.Warnings {
			log.AddWarning(msg.Specifier, msg.Text)
		}
		if expect != "" && result.MediaType != expect {
			log.AddError(result.Specifier, fmt.Sprintf("expected %q to be %s but it is %s", result.Specifier, expect, result.MediaType))
		}

		var columns []string
		if len(results) > 1 || rc.flags.loader {
			columns = append(columns, result.Specifier)
		}
		columns = append(columns, result.MediaType)
		if rc.flags.loader {
			columns = append(columns, result.Loader)
		}
		fmt.Fprintln(out, strings.Join(columns, "\t"))
	}
	if err := out.Flush(); err != nil {
		return fmt.Errorf("could not write to stdout: %w", err)
	}

	if log.HasErrors() {
		log.Done()
		return errFailedSpecifiers
	}
	log.Done()
	return nil
}
