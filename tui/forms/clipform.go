package forms

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/user/splice-cli/pkg/timeutil"
)

// NoVideo is the picker value for a clip without a source video.
const NoVideo = -1

// ClipFormResult holds the values of a completed add-clip form.
type ClipFormResult struct {
	VideoID int
	Lane    int
	// Length is a duration in seconds, M:SS or H:MM:SS. Empty means the
	// video's own duration.
	Length string
}

// Seconds returns the requested clip length, falling back to fallback when
// Length is empty.
func (r *ClipFormResult) Seconds(fallback float64) (float64, error) {
	s := strings.TrimSpace(r.Length)
	if s == "" {
		if fallback <= 0 {
			return 0, errors.New("length is required for a clip without a video")
		}
		return fallback, nil
	}
	secs, err := timeutil.ParseTimeToSeconds(s)
	if err != nil {
		return 0, err
	}
	if secs <= 0 {
		return 0, errors.New("length must be positive")
	}
	return secs, nil
}

// NewClipForm builds the add-clip form. lanes is the current lane count;
// the lane field defaults to result.Lane.
func NewClipForm(videos []VideoOption, lanes int, result *ClipFormResult) *huh.Form {
	laneOpts := make([]huh.Option[int], lanes)
	for i := range laneOpts {
		laneOpts[i] = huh.NewOption(fmt.Sprintf("Lane %d", i+1), i)
	}
	videoOpts := append([]huh.Option[int]{huh.NewOption("(none)", NoVideo)}, videoOptions(videos)...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("Add Clip"),

			huh.NewSelect[int]().
				Title("Video").
				Options(videoOpts...).
				Value(&result.VideoID),

			huh.NewSelect[int]().
				Title("Lane").
				Options(laneOpts...).
				Value(&result.Lane),

			huh.NewInput().
				Title("Length").
				Description("Seconds, M:SS or H:MM:SS. Empty uses the video length.").
				Value(&result.Length).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					secs, err := timeutil.ParseTimeToSeconds(strings.TrimSpace(s))
					if err != nil {
						return err
					}
					if secs <= 0 {
						return errors.New("length must be positive")
					}
					return nil
				}),
		),
	).WithTheme(Theme())
}
