package pipeline

import (
	"github.com/google/uuid"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/funvibe/levelc/internal/ast"
	"github.com/funvibe/levelc/internal/config"
	"github.com/funvibe/levelc/internal/diagnostics"
	"github.com/funvibe/levelc/internal/dummy"
)

// PipelineContext carries the state of one compilation run through the
// stages. Nothing in it is shared between runs.
type PipelineContext struct {
	RunID      uuid.UUID
	SourceCode string
	FilePath   string
	Config     *config.Config
	Logger     *zap.Logger

	// Statements is the working statement sequence; each stage replaces it.
	Statements []ast.Statement
	// Functions is set by the function table builder.
	Functions *ast.FunctionTable
	// Dummies is the run's fresh-name generator, shared by the inliner
	// and the flattener.
	Dummies *dummy.Generator

	// Output is the rendered result of the final stage.
	Output string

	Errors []*diagnostics.DiagnosticError
}

// NewPipelineContext creates a context with the default configuration.
func NewPipelineContext(source string) *PipelineContext {
	return NewPipelineContextWithConfig(source, config.Default())
}

// NewPipelineContextWithConfig creates a context for one run.
func NewPipelineContextWithConfig(source string, cfg *config.Config) *PipelineContext {
	if cfg == nil {
		cfg = config.Default()
	}
	return &PipelineContext{
		RunID:      uuid.New(),
		SourceCode: source,
		Config:     cfg,
		Logger:     zap.NewNop(),
		Dummies:    dummy.NewGenerator(cfg.Dummy.Prefix, cfg.DummyStart()),
	}
}

// AddError records a fatal diagnostic.
func (ctx *PipelineContext) AddError(err *diagnostics.DiagnosticError) {
	if err.File == "" {
		err.File = ctx.FilePath
	}
	ctx.Log().Debug("diagnostic",
		zap.String("kind", err.Kind()),
		zap.String("code", string(err.Code)),
		zap.Int("line", err.Token.Line),
		zap.String("message", err.Message),
	)
	ctx.Errors = append(ctx.Errors, err)
}

// Failed reports whether a fatal diagnostic has been recorded.
func (ctx *PipelineContext) Failed() bool {
	return len(ctx.Errors) > 0
}

// Err combines all diagnostics into one error, or returns nil.
func (ctx *PipelineContext) Err() error {
	var err error
	for _, e := range ctx.Errors {
		err = multierr.Append(err, e)
	}
	return err
}

// Log returns the context logger, never nil.
func (ctx *PipelineContext) Log() *zap.Logger {
	if ctx.Logger == nil {
		ctx.Logger = zap.NewNop()
	}
	return ctx.Logger
}

// Settings returns the run configuration, falling back to the defaults.
func (ctx *PipelineContext) Settings() *config.Config {
	if ctx.Config == nil {
		ctx.Config = config.Default()
	}
	return ctx.Config
}

// Generator returns the run's fresh-name generator, creating it on first use.
func (ctx *PipelineContext) Generator() *dummy.Generator {
	if ctx.Dummies == nil {
		cfg := ctx.Settings()
		ctx.Dummies = dummy.NewGenerator(cfg.Dummy.Prefix, cfg.DummyStart())
	}
	return ctx.Dummies
}
