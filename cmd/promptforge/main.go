// cmd/promptforge/main.go
package main

import (
	cmd "github.com/nerrospl/promptforge/internal/commands"
)

// main starts the promptforge CLI application by delegating to the
// cobra root command defined in the commands package.
func main() {
	cmd.Execute()
}
