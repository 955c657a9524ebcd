// cmd/optibench/main.go
package main

import (
	optibench "github.com/optibench/optibench/internal/commands"
)

// Build-time variables injected via -ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var (
	setVersionInfo = optibench.SetVersionInfo
	executeCmd     = optibench.Execute
)

// main starts the optibench CLI application by delegating to the cobra root
// command. It does not take any arguments and does not return a value.
func main() {
	setVersionInfo(version, commit, date)
	executeCmd()
}
