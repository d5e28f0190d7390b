// Command journal is a private, local journaling tool.
package main

import "github.com/mesh-intelligence/journal/internal/cli"

func main() {
	cli.Execute()
}
