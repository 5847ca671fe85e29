package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/notehub/pkg/config"
)

var initForce bool

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a notehub.yaml in the current directory",
	Long:  `Write a commented notehub.yaml with the default settings. Fill in the token or set NOTEHUB_TOKEN.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cwd, err := os.Getwd()
		if err != nil {
			fatal("Failed to get CWD", err)
		}

		path := filepath.Join(cwd, config.FileName)
		if err := config.WriteTemplate(path, initForce); err != nil {
			fatal("Failed to write config", err)
		}
		fmt.Println("Wrote", path)
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing file")
}
