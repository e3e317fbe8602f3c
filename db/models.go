package db

import "time"

// Video represents a row in the videos table.
type Video struct {
	ID          int64
	Path        string
	Filename    string
	Extension   string
	TotalFrames int
	FPS         float64
	Width       int
	Height      int
	LastFrame   int
	CreatedAt   time.Time
}
