// Command trackmeta inspects ID3v2 metadata, cover art and accent colors.
package main

import (
	"github.com/GiGurra/boa/pkg/boa"
	"github.com/spf13/cobra"

	"github.com/simonhull/trackmeta"
)

func main() {
	boa.CmdT[boa.NoParams]{
		Use:     "trackmeta",
		Short:   "Read track titles, artists and cover art",
		Version: appVersion(),
		SubCmds: []*cobra.Command{
			InspectCmd(),
			ScanCmd(),
			CoverCmd(),
			WatchCmd(),
		},
	}.Run()
}

func appVersion() string {
	info := trackmeta.GetVersionInfo()
	if info.GitCommit == "unknown" {
		return info.Version
	}
	return info.Version + " (" + info.GitCommit + ", " + info.BuildTime + ")"
}
