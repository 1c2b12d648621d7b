package version

import "fmt"

const (
	Version           = "0.1.0"
	VersionPrerelease = "" // "-dev", "-beta", "-rc1", etc. (include dash)
)

var (
	Name      = "sbool"
	GitCommit string

	HumanVersion = humanVersion()
)

func humanVersion() string {
	v := fmt.Sprintf("%s v%s%s", Name, Version, VersionPrerelease)
	if GitCommit != "" {
		v += fmt.Sprintf(" (%s)", GitCommit)
	}
	return v
}
