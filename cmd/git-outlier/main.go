// main is the entry point for the outlier CLI installed as a git add-on,
// so that "git outlier" works once the binary is on PATH.
package main

import (
	"github.com/huangsam/outlier/cmd"
	"github.com/huangsam/outlier/internal/contract"
	"github.com/huangsam/outlier/internal/history"
)

func main() {
	err := cmd.Execute()
	history.CloseStores()
	if err != nil {
		contract.LogFatal("Cannot run git-outlier", err)
	}
}
