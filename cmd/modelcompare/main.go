// cmd/modelcompare/main.go
package main

import (
	cmd "github.com/mwiater/modelcompare/internal/cli"
)

// main starts the modelcompare CLI application by delegating to the
// cobra root command defined in the internal/cli package.
func main() {
	cmd.Execute()
}
