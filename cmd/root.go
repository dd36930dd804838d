package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/docwire/docwire/cmd/echo"
	"github.com/docwire/docwire/cmd/ping"
)

const (
	Version = "0.3.1"
)

var (

	// RootCmd represents the base command when called without any subcommands
	RootCmd = &cobra.Command{
		Use:   "docwire",
		Short: "client transport for the binary document-database wire protocol",
		Long: fmt.Sprintf(`docwire (v%s)

Client-side connection transport for a binary document-database wire
protocol: framing, reply correlation and connection lifecycle, with
diagnostic tooling for measuring round trips.`, Version),
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of docwire",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("docwire v%s\n", Version)
		},
	}
)

func init() {
	// Add Commands
	RootCmd.AddCommand(ping.PingCmd)
	RootCmd.AddCommand(echo.EchoCmd)
	RootCmd.AddCommand(versionCmd)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
