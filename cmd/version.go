package cmd

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Version is set via ldflags at build time. The server reports it on
// /healthz and in every scene socket's hello message.
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the nodescape version and build details",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("%s %s\n", brand.Sprint("nodescape"), Version)
		detail("go", runtime.Version())
		detail("platform", runtime.GOOS+"/"+runtime.GOARCH)
		if rev := vcsRevision(); rev != "" {
			detail("revision", rev)
		}
	},
}

// vcsRevision returns the commit the binary was built from, if recorded.
func vcsRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" {
			if len(s.Value) > 12 {
				return s.Value[:12]
			}
			return s.Value
		}
	}
	return ""
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
