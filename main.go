// =============================================================================
// Broadchains Report Parser - Main Entry Point
// =============================================================================
//
// CLI entry point. All commands live in the cmd package:
//
//   broadchains process    - Process report files from the input directory
//   broadchains validate   - Validate the configuration without processing
//   broadchains version    - Display version information
//
// =============================================================================

package main

import (
	"github.com/vonage-tools/broadchains-parser/cmd"
)

func main() {
	cmd.Execute()
}
