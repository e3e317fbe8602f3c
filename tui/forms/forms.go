// Package forms provides huh-based forms for the editor.
package forms

import (
	"fmt"

	"github.com/charmbracelet/huh"
)

// VideoOption is one catalog entry offered by a picker.
type VideoOption struct {
	ID    int
	Label string
}

// NewConfirmRemoveLaneForm asks before removing a lane that still holds
// clips. policy names what happens to them.
func NewConfirmRemoveLaneForm(lane, clips int, policy string, confirm *bool) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Remove lane %d?", lane+1)).
				Description(fmt.Sprintf("It holds %d clip(s); policy: %s.", clips, policy)).
				Affirmative("Remove").
				Negative("Keep").
				Value(confirm),
		),
	).WithTheme(Theme())
}

// NewVideoPickerForm lets the user choose one video from the catalog.
func NewVideoPickerForm(videos []VideoOption, id *int) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Open video").
				Options(videoOptions(videos)...).
				Value(id),
		),
	).WithTheme(Theme())
}

func videoOptions(videos []VideoOption) []huh.Option[int] {
	opts := make([]huh.Option[int], len(videos))
	for i, v := range videos {
		opts[i] = huh.NewOption(v.Label, v.ID)
	}
	return opts
}
