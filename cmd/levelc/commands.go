package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/funvibe/levelc/internal/config"
	"github.com/funvibe/levelc/internal/logger"
	"github.com/funvibe/levelc/pkg/levelc"
)

// errReported marks failures whose message has already been printed.
var errReported = errors.New("reported")

type options struct {
	configPath string
	logLevel   zapcore.Level

	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

var stageDescriptions = map[levelc.Stage]string{
	levelc.StageInline:  "Inline calls to user-defined functions",
	levelc.StageFlatten: "Extract nested applications into temporaries",
	levelc.StageLower:   "Inline, then flatten, down to Level 0 statements",
	levelc.StageEmit:    "Render Level 0 statements as an XML Variables document",
	levelc.StageBuild:   "Lower and render as XML in one run",
}

func newRootCommand(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	opts := &options{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:           "levelc",
		Short:         "Lower function-oriented DSL programs to flat Level 0 form",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(stderr, "Usage: levelc <stage> <input_file> <output_file>")
			return errReported
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "path to levelc.yaml (default: search from the input directory upwards)")
	logger.LevelVar(flags, &opts.logLevel, "log-level", zapcore.WarnLevel, "log level: debug, info, warn, error")

	for _, stage := range levelc.Stages {
		root.AddCommand(newStageCommand(stage, opts))
	}
	return root
}

func newStageCommand(stage levelc.Stage, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   string(stage) + " <input_file> <output_file>",
		Short: stageDescriptions[stage],
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				fmt.Fprintf(opts.stderr, "Usage: levelc %s <input_file> <output_file>\n", stage)
				return errReported
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStage(stage, args[0], args[1], opts)
		},
	}
}

func runStage(stage levelc.Stage, inputPath, outputPath string, opts *options) error {
	log := logger.New(opts.stderr, opts.logLevel)
	defer log.Sync()

	source, err := readInput(inputPath, opts.stdin)
	if err != nil {
		fmt.Fprintf(opts.stderr, "Error opening input file: %s\n", err)
		return errReported
	}

	cfg, cfgPath, err := loadConfig(opts.configPath, inputPath)
	if err != nil {
		fmt.Fprintf(opts.stderr, "Error: %s\n", err)
		return errReported
	}
	if cfgPath != "" {
		log.Debug("using config", zap.String("path", cfgPath))
	}

	res, err := levelc.New(cfg, log).Run(stage, inputPath, source)
	if err != nil {
		if res == nil {
			fmt.Fprintf(opts.stderr, "Error: %s\n", err)
			return errReported
		}
		reportDiagnostics(opts.stderr, res)
		return errReported
	}

	if err := os.WriteFile(outputPath, []byte(res.Output), 0644); err != nil {
		fmt.Fprintf(opts.stderr, "Error opening output file: %s\n", err)
		return errReported
	}

	log.Info("conversion complete",
		zap.String("run", res.RunID.String()),
		zap.String("input", inputPath),
		zap.String("output", outputPath),
		zap.Int("generated_names", res.Generator().Issued()),
	)
	fmt.Fprintf(opts.stdout, "Conversion complete. Check %s for the result.\n", outputPath)
	return nil
}

// readInput reads the source file, or stdin when path is "-".
func readInput(path string, stdin io.Reader) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// loadConfig uses the explicit path if given, otherwise the nearest
// levelc.yaml above the input, otherwise the defaults.
func loadConfig(explicit, inputPath string) (*levelc.Config, string, error) {
	if explicit != "" {
		cfg, err := levelc.LoadConfig(explicit)
		return cfg, explicit, err
	}

	dir := "."
	if inputPath != "-" {
		dir = filepath.Dir(inputPath)
	}
	found, err := config.FindConfig(dir)
	if err != nil {
		return nil, "", err
	}
	if found == "" {
		return levelc.DefaultConfig(), "", nil
	}
	cfg, err := levelc.LoadConfig(found)
	return cfg, found, err
}

func reportDiagnostics(w io.Writer, res *levelc.Result) {
	color := useColor(w)
	fmt.Fprintln(w, "Compilation failed with errors:")
	for _, diag := range res.Errors {
		if color {
			fmt.Fprintf(w, "- \x1b[31m%s\x1b[0m\n", diag.Error())
		} else {
			fmt.Fprintf(w, "- %s\n", diag.Error())
		}
	}
}

// useColor reports whether w is a terminal and NO_COLOR is unset.
func useColor(w io.Writer) bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
