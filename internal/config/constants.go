package config

const SourceFileExt = ".lvl"

// SourceFileExtensions are all recognized source file extensions
var SourceFileExtensions = []string{SourceFileExt}

// ConfigFileNames are the project config names searched by FindConfig, in order.
var ConfigFileNames = []string{"levelc.yaml", "levelc.yml"}

// Keywords of the block grammar
const (
	FunctionKeyword = "function"
	EndKeyword      = "end"
)

// Defaults for generated names
const (
	DefaultDummyPrefix = "dummy"
	DefaultDummyStart  = 1
	DefaultPasses      = 1
)

// Defaults for the emitted Level 0 document
const (
	DefaultRootElement   = "Variables"
	DefaultSetterElement = "Setter"
	DefaultActivator     = "1"
)
