package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/aretw0/notehub/pkg/core"
	"github.com/aretw0/notehub/pkg/query"
	"github.com/aretw0/notehub/pkg/view"
)

var (
	listJSON   bool
	listPage   int
	listSearch string
	listMatch  string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List one page of notes",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if listMatch != "" && !doublestar.ValidatePattern(listMatch) {
			fatal("Invalid --match pattern", fmt.Errorf("%q", listMatch))
		}

		client, _ := newClient()
		page, err := client.Service.List(context.Background(), listPage, listSearch)
		if err != nil {
			fatal("Error listing notes", err)
		}

		// Filter the displayed copy; the fetched page is left alone.
		shown := page
		if listMatch != "" {
			shown.Notes = nil
			for _, note := range page.Notes {
				if ok, _ := doublestar.Match(listMatch, note.Title); ok {
					shown.Notes = append(shown.Notes, note)
				}
			}
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(shown); err != nil {
				fatal("Error encoding JSON", err)
			}
			return
		}

		screen := view.Screen{
			Search: listSearch,
			List: query.State{
				Key:    query.Key{Page: listPage, Search: listSearch},
				Input:  listSearch,
				Status: query.StatusSuccess,
				Data:   &shown,
			},
		}
		if err := view.Render(os.Stdout, screen); err != nil {
			fatal("Error rendering notes", err)
		}
		fmt.Printf("page %d of %d, %d notes in total\n", page.Page, page.TotalPages, page.TotalItems)
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().IntVar(&listPage, "page", 1, "Page to fetch ("+fmt.Sprint(core.PerPage)+" notes per page)")
	listCmd.Flags().StringVar(&listSearch, "search", "", "Server side search text")
	listCmd.Flags().StringVar(&listMatch, "match", "", "Glob on the title applied to the fetched page (e.g. \"Buy*\")")
}
