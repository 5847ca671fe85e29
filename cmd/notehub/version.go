package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/notehub"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of notehub",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("notehub version %s\n", strings.TrimSpace(notehub.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
