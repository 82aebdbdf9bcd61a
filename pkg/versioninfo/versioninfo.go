// Package versioninfo stamps every stage's output with the tool version,
// backend model versions, and (optionally) a git-describe string, matching
// the teacher's `ts`/version-field habit and the original language
// identifier's `language_identifier_version` reproducibility field.
package versioninfo

// ToolVersion is the semantic version of this build of the LID core,
// embedded in every Stage1Record, CollectionStats, Stage2Record, and
// diagnostics sidecar.
const ToolVersion = "impresso-lid-core/1.0.0"

// Info bundles the version metadata one run stamps onto its output.
type Info struct {
	ToolVersion   string
	GitDescribe   string
	ModelVersions map[string]string
}

// New builds an Info, defaulting ToolVersion and falling back to an
// "unknown" git-describe when the caller didn't pass one via
// --git-describe.
func New(gitDescribe string, modelVersions map[string]string) Info {
	if gitDescribe == "" {
		gitDescribe = "unknown"
	}
	if modelVersions == nil {
		modelVersions = map[string]string{}
	}
	return Info{
		ToolVersion:   ToolVersion,
		GitDescribe:   gitDescribe,
		ModelVersions: modelVersions,
	}
}
