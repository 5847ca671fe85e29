// Package notehub is the Composition Root for the NoteHub client.
//
// It connects the note domain (pkg/core) with the REST adapter
// (pkg/adapters/remote) and the synchronization layer on top of it:
//
//   - pkg/query keeps a paginated, searched and debounced list in step with
//     the API through a shared cache keyed by (page, search).
//   - pkg/mutation creates and deletes notes and invalidates every cached
//     list result after a success.
//   - pkg/form validates the creation form.
//   - pkg/view composes all of it into a text screen and an interactive shell.
//
// Usage:
//
//	cfg, err := notehub.LoadConfig("")
//	client, err := notehub.New(cfg, notehub.WithLogger(logger))
//
//	list := client.NewListQuery()
//	list.Start(ctx)
//	list.SetSearch("milk")
//
//	_, err = client.Mutations.Create(ctx, core.CreateNoteParams{
//		Title: "Buy milk",
//		Tag:   core.TagShopping,
//	})
package notehub
