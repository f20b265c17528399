package cmd

import (
	"fmt"
	"log"
	"os"

	"VinylFM/server"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "vinylfm",
	Short: "VinylFM is a personal vinyl collection tracker.",
	Run: func(cmd *cobra.Command, args []string) {
		log.Println("Starting VinylFM server...")
		server.Start()
	},
}

// Execute executes the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
