package version

import (
	"encoding/json"
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Build describes the running binary. Tag and branch are set through ldflags,
// the rest is read from the build info embedded by the go tool.
type Build struct {
	Name      string `json:"name,omitempty"`
	Version   string `json:"version"`
	Tag       string `json:"tag,omitempty"`
	Branch    string `json:"branch,omitempty"`
	Source    string `json:"source,omitempty"`
	Hash      string `json:"hash,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	Modified  bool   `json:"modified,omitempty"`
	Compiler  string `json:"compiler"`
	Platform  string `json:"platform"`
}

///////////////////////////////////////////////////////////////////////////////
// GLOBALS

var (
	GitTag    string
	GitBranch string
)

var build = sync.OnceValue(readBuild)

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// Metadata returns the build metadata for the named executable
func Metadata(execName string) Build {
	b := build()
	b.Name = execName
	return b
}

// Version returns the tag, branch or abbreviated revision, or "dev"
func Version() string {
	return build().Version
}

// UserAgent returns the User-Agent header value sent with API requests,
// for example "twc/v1.0.0 (linux/amd64; go1.25.0)"
func UserAgent(execName string) string {
	b := Metadata(execName)
	return fmt.Sprintf("%s/%s (%s; %s)", b.Name, b.Version, b.Platform, b.Compiler)
}

// JSON returns build metadata for the named executable
func JSON(execName string) []byte {
	data, err := json.MarshalIndent(Metadata(execName), "", "  ")
	if err != nil {
		panic(err)
	}
	return data
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func readBuild() Build {
	b := Build{
		Tag:      GitTag,
		Branch:   GitBranch,
		Compiler: runtime.Version(),
		Platform: runtime.GOOS + "/" + runtime.GOARCH,
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		b.Source = info.Main.Path
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				b.Hash = s.Value
			case "vcs.time":
				b.BuildTime = s.Value
			case "vcs.modified":
				b.Modified = s.Value == "true"
			}
		}
	}

	switch {
	case b.Tag != "":
		b.Version = b.Tag
	case b.Branch != "":
		b.Version = b.Branch
	case len(b.Hash) >= 12:
		b.Version = b.Hash[:12]
	default:
		b.Version = "dev"
	}
	return b
}
