package cmd

import (
	"runtime"

	"github.com/huangsam/outlier/internal/complexity"
	"github.com/spf13/cobra"
)

// versionCmd shows the verbose version for diagnostic purposes.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of outlier.",
	Long: `Display version information including build details.

Shows:
- Release version
- Git commit hash
- Build timestamp
- Go runtime version
- Whether the tree-sitter analyzer (needed for CCN) is compiled in`,
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("outlier CLI\n")
		cmd.Printf("  Version: %s\n", version)
		cmd.Printf("  Commit:  %s\n", commit)
		cmd.Printf("  Built:   %s\n", date)
		cmd.Printf("  Runtime: %s\n", runtime.Version())
		cmd.Printf("  CCN:     %t\n", complexity.IsAvailable())
	},
}
