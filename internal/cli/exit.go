package cli

import "github.com/reoring/yamlschema"

// Process exit codes. Each failure kind gets its own code so scripts can
// tell a missing file from a failed validation.
const (
	ExitOK              = 0
	ExitError           = 1
	ExitSourceNotFound  = 3
	ExitParse           = 4
	ExitSchemaStructure = 5
	ExitReference       = 6
	ExitValidation      = 7
	ExitWrite           = 8
	ExitConfig          = 9
)

// ExitCode maps the result of a run to the process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	switch yamlschema.KindOf(err) {
	case yamlschema.KindSourceNotFound:
		return ExitSourceNotFound
	case yamlschema.KindParse:
		return ExitParse
	case yamlschema.KindSchemaStructure:
		return ExitSchemaStructure
	case yamlschema.KindReference:
		return ExitReference
	case yamlschema.KindValidation:
		return ExitValidation
	case yamlschema.KindWrite:
		return ExitWrite
	case yamlschema.KindConfig:
		return ExitConfig
	default:
		return ExitError
	}
}
