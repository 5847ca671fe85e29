package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/notehub"
	"github.com/aretw0/notehub/pkg/core"
	"github.com/aretw0/notehub/pkg/form"
	"github.com/aretw0/notehub/pkg/notify"
)

var (
	createTitle   string
	createContent string
	createTag     string
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a note",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		client, _ := newClient(notehub.WithNotifier(notify.Func(func(n notify.Notification) {
			fmt.Println(n.String())
		})))

		f := form.New()
		for _, kv := range [][2]string{
			{form.FieldTitle, createTitle},
			{form.FieldContent, createContent},
			{form.FieldTag, createTag},
		} {
			if err := f.Set(kv[0], kv[1]); err != nil {
				fatal("Error filling form", err)
			}
		}

		note, err := f.Submit(context.Background(), client.Mutations)
		if errors.Is(err, form.ErrInvalid) {
			errs := f.Errors()
			for _, field := range []string{form.FieldTitle, form.FieldContent, form.FieldTag} {
				if msg, ok := errs[field]; ok {
					fmt.Fprintf(os.Stderr, "%s: %s\n", field, msg)
				}
			}
			os.Exit(1)
		}
		if err != nil {
			// The notifier already printed the failure.
			os.Exit(1)
		}

		fmt.Printf("Note %s: %s [%s]\n", note.ID, note.Title, note.Tag)
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.Flags().StringVar(&createTitle, "title", "", "Title (3 to 50 characters)")
	createCmd.Flags().StringVar(&createContent, "content", "", "Content (up to 500 characters)")
	createCmd.Flags().StringVar(&createTag, "tag", string(core.TagTodo), "Tag: Todo, Work, Personal, Meeting or Shopping")
}
