package form_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notehub/internal/notetest"
	"github.com/aretw0/notehub/pkg/core"
	"github.com/aretw0/notehub/pkg/form"
)

func TestForm_ShortTitleBlocksSubmit(t *testing.T) {
	repo := notetest.New()
	f := form.New()
	require.NoError(t, f.Set(form.FieldTitle, "ab"))

	_, err := f.Submit(context.Background(), repo)
	require.ErrorIs(t, err, form.ErrInvalid)

	assert.Equal(t, "Must be at least 3 characters", f.Errors()[form.FieldTitle])
	assert.Empty(t, repo.Creates(), "submission is blocked")
	assert.Equal(t, "ab", f.Values().Title)
}

func TestForm_Schema(t *testing.T) {
	cases := []struct {
		name   string
		values form.Values
		field  string
		msg    string
	}{
		{"missing title", form.Values{Tag: core.TagTodo}, form.FieldTitle, "Required"},
		{"long title", form.Values{Title: strings.Repeat("x", 51), Tag: core.TagTodo}, form.FieldTitle, "Must be 50 characters or less"},
		{"long content", form.Values{Title: "abc", Content: strings.Repeat("y", 501), Tag: core.TagTodo}, form.FieldContent, "Must be 500 characters or less"},
		{"missing tag", form.Values{Title: "abc"}, form.FieldTag, "Required"},
		{"unknown tag", form.Values{Title: "abc", Tag: "Urgent"}, form.FieldTag, "Must be one of: Todo, Work, Personal, Meeting, Shopping"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := form.New()
			require.NoError(t, f.Set(form.FieldTitle, tc.values.Title))
			require.NoError(t, f.Set(form.FieldContent, tc.values.Content))
			require.NoError(t, f.Set(form.FieldTag, string(tc.values.Tag)))

			errs := f.Validate()
			require.NotNil(t, errs)
			assert.Equal(t, tc.msg, errs[tc.field])
			assert.Len(t, errs, 1)
		})
	}
}

func TestForm_BoundaryLengthsPass(t *testing.T) {
	f := form.New()
	require.NoError(t, f.Set(form.FieldTitle, "abc"))
	require.NoError(t, f.Set(form.FieldContent, strings.Repeat("é", 500)))
	assert.Nil(t, f.Validate())

	require.NoError(t, f.Set(form.FieldTitle, strings.Repeat("t", 50)))
	assert.Nil(t, f.Validate())
}

func TestForm_FieldValidationOnBlurAndChange(t *testing.T) {
	f := form.New()

	require.NoError(t, f.Set(form.FieldTitle, "a"))
	assert.Empty(t, f.Errors(), "untouched fields are not validated on change")

	f.Blur(form.FieldTitle)
	assert.Equal(t, "Must be at least 3 characters", f.Errors()[form.FieldTitle])
	assert.NotContains(t, f.Errors(), form.FieldContent)

	require.NoError(t, f.Set(form.FieldTitle, "abcd"))
	assert.Empty(t, f.Errors(), "touched field is revalidated on change")

	assert.Error(t, f.Set("colour", "red"))
}

func TestForm_SubmitResetsOnlyAfterSuccess(t *testing.T) {
	repo := notetest.New()
	repo.SetFail(func(op string) error { return notetest.HTTPError(op, 500) })

	f := form.New()
	require.NoError(t, f.Set(form.FieldTitle, "Buy milk"))
	require.NoError(t, f.Set(form.FieldTag, "shopping"))

	_, err := f.Submit(context.Background(), repo)
	require.Error(t, err)
	assert.NotErrorIs(t, err, form.ErrInvalid)
	assert.Equal(t, "Buy milk", f.Values().Title, "values survive a failed create")

	repo.SetFail(nil)
	note, err := f.Submit(context.Background(), repo)
	require.NoError(t, err)
	assert.Equal(t, core.TagShopping, note.Tag)
	assert.Equal(t, form.Initial(), f.Values())
	assert.Empty(t, f.Errors())

	assert.Equal(t, []core.CreateNoteParams{
		{Title: "Buy milk", Content: "", Tag: core.TagShopping},
		{Title: "Buy milk", Content: "", Tag: core.TagShopping},
	}, repo.Creates())
}
