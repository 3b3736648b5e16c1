package domain

// BuildResult is the settled content of a route build.
//
// A result with Valid set to false is the absence value produced when a build
// failed and the failure was suppressed. Callers must check Valid before using Code.
type BuildResult struct {
	Code  string
	Valid bool
}

// Compiled wraps successfully bundled code.
func Compiled(code string) BuildResult {
	return BuildResult{Code: code, Valid: true}
}

// Suppressed returns the absence value of a failed build.
func Suppressed() BuildResult {
	return BuildResult{}
}

// BuildFailure describes a failed route build for diagnostic reporting.
type BuildFailure struct {
	Err         error
	ProjectRoot string
	FilePath    string
}
