package cmd

import "fmt"

var (
	GitTag    string // semver(branch)
	GitBranch string // branch
	GitCommit string // patch
	BuildDate string // time

	version = "1.0.0"
)

func Version() string {

	fullVersion := version

	if GitTag != "" {
		fullVersion += "@" + GitTag
	}

	if BuildDate != "" {
		fullVersion += fmt.Sprintf("-%s", BuildDate)
	}

	if GitCommit != "" {
		fullVersion += fmt.Sprintf("-%s", GitCommit)
	}

	return fullVersion
}
