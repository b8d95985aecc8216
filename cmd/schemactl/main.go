// schemactl is a terminal client for the schema designer server.
package main

import (
	"os"

	"schema-designer-backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
