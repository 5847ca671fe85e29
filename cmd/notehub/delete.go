package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notehub"
	"github.com/aretw0/notehub/pkg/notify"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(notehub.WithNotifier(notify.Func(func(n notify.Notification) {
			fmt.Println(n.String())
		})))

		note, err := client.Mutations.Delete(context.Background(), args[0])
		if err != nil {
			os.Exit(1)
		}
		fmt.Printf("Deleted %s: %s\n", note.ID, note.Title)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
