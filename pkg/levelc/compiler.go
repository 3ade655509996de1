package levelc

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/funvibe/levelc/internal/config"
	"github.com/funvibe/levelc/internal/emitter"
	"github.com/funvibe/levelc/internal/flattener"
	"github.com/funvibe/levelc/internal/functions"
	"github.com/funvibe/levelc/internal/inliner"
	"github.com/funvibe/levelc/internal/pipeline"
	"github.com/funvibe/levelc/internal/prettyprinter"
	"github.com/funvibe/levelc/internal/reader"
)

// Config is the levelc.yaml project configuration.
type Config = config.Config

// LoadConfig reads a levelc.yaml file.
func LoadConfig(path string) (*Config, error) {
	return config.LoadConfig(path)
}

// DefaultConfig returns the configuration used without a levelc.yaml.
func DefaultConfig() *Config {
	return config.Default()
}

// Stage selects how far a compilation lowers its input.
type Stage string

const (
	// StageInline inlines user functions (Level 1 → Level 1 without calls to user functions).
	StageInline Stage = "inline"
	// StageFlatten un-nests applications of user functions (Level 2 → Level 1).
	StageFlatten Stage = "flatten"
	// StageLower runs inlining followed by flattening.
	StageLower Stage = "lower"
	// StageEmit renders a Level 0 program as XML.
	StageEmit Stage = "emit"
	// StageBuild lowers and emits in one run.
	StageBuild Stage = "build"
)

// Stages lists every stage in pipeline order.
var Stages = []Stage{StageInline, StageFlatten, StageLower, StageEmit, StageBuild}

// Processors returns the pipeline for stage.
func (s Stage) Processors() ([]pipeline.Processor, error) {
	switch s {
	case StageInline:
		return []pipeline.Processor{
			&reader.ReaderProcessor{},
			&functions.TableProcessor{},
			&inliner.InlinerProcessor{},
			&prettyprinter.PrinterProcessor{},
		}, nil
	case StageFlatten:
		return []pipeline.Processor{
			&reader.ReaderProcessor{},
			&functions.TableProcessor{},
			&flattener.FlattenerProcessor{},
			&prettyprinter.PrinterProcessor{},
		}, nil
	case StageLower:
		return []pipeline.Processor{
			&reader.ReaderProcessor{},
			&functions.TableProcessor{},
			&inliner.InlinerProcessor{},
			&flattener.FlattenerProcessor{},
			&prettyprinter.PrinterProcessor{},
		}, nil
	case StageEmit:
		return []pipeline.Processor{
			&reader.ReaderProcessor{},
			&emitter.EmitterProcessor{},
		}, nil
	case StageBuild:
		return []pipeline.Processor{
			&reader.ReaderProcessor{},
			&functions.TableProcessor{},
			&inliner.InlinerProcessor{},
			&flattener.FlattenerProcessor{},
			&emitter.EmitterProcessor{},
		}, nil
	}
	return nil, fmt.Errorf("unknown stage %q", s)
}

// Compiler runs lowering pipelines. It holds no per-run state, so one
// Compiler may be used from several goroutines.
type Compiler struct {
	config *Config
	logger *zap.Logger
}

// New creates a compiler. A nil config means the defaults; a nil logger
// discards log output.
func New(cfg *Config, logger *zap.Logger) *Compiler {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Compiler{config: cfg, logger: logger}
}

// Result is the outcome of one run.
type Result struct {
	*pipeline.PipelineContext
}

// Run lowers source through stage. file is used in diagnostics only.
// The returned Result is non-nil even when err is not, so callers can
// inspect the individual diagnostics.
func (c *Compiler) Run(stage Stage, file, source string) (*Result, error) {
	processors, err := stage.Processors()
	if err != nil {
		return nil, err
	}

	ctx := pipeline.NewPipelineContextWithConfig(source, c.config)
	ctx.FilePath = file
	ctx.Logger = c.logger.With(
		zap.String("run", ctx.RunID.String()),
		zap.String("stage", string(stage)),
	)

	ctx = pipeline.New(processors...).Run(ctx)
	return &Result{ctx}, ctx.Err()
}

func (c *Compiler) output(stage Stage, source string) (string, error) {
	res, err := c.Run(stage, "", source)
	if err != nil {
		return "", err
	}
	return res.Output, nil
}

// Inline returns source with every call to a user function inlined.
func (c *Compiler) Inline(source string) (string, error) {
	return c.output(StageInline, source)
}

// Flatten returns source with nested applications of user functions
// extracted into temporaries.
func (c *Compiler) Flatten(source string) (string, error) {
	return c.output(StageFlatten, source)
}

// Lower inlines and then flattens source.
func (c *Compiler) Lower(source string) (string, error) {
	return c.output(StageLower, source)
}

// Emit renders a Level 0 program as an XML document.
func (c *Compiler) Emit(source string) (string, error) {
	return c.output(StageEmit, source)
}

// Build lowers source and renders the result as an XML document.
func (c *Compiler) Build(source string) (string, error) {
	return c.output(StageBuild, source)
}
