package timeline

import (
	"fmt"
	"strings"
)

// OverlapPolicy decides what happens when a committed position would overlap
// another clip in the same lane.
type OverlapPolicy int

const (
	// OverlapAllow commits the position regardless of overlap.
	OverlapAllow OverlapPolicy = iota
	// OverlapReject refuses the commit; the clip keeps its lane and start.
	OverlapReject
	// OverlapResolve moves the clip to the nearest free edge of the clip it
	// collides with, refusing the commit when neither edge is free.
	OverlapResolve
)

// String returns the policy's config name.
func (p OverlapPolicy) String() string {
	switch p {
	case OverlapReject:
		return "reject"
	case OverlapResolve:
		return "resolve"
	default:
		return "allow"
	}
}

// ParseOverlapPolicy parses allow, reject or resolve.
func ParseOverlapPolicy(s string) (OverlapPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "allow":
		return OverlapAllow, nil
	case "reject":
		return OverlapReject, nil
	case "resolve":
		return OverlapResolve, nil
	}
	return OverlapAllow, fmt.Errorf("timeline: unknown overlap policy %q", s)
}

// LaneRemovalPolicy decides what happens to the clips of a removed lane.
type LaneRemovalPolicy int

const (
	// RemoveDeleteClips discards the lane together with its clips.
	RemoveDeleteClips LaneRemovalPolicy = iota
	// RemoveRejectOccupied refuses to remove a lane that still holds clips.
	RemoveRejectOccupied
	// RemoveReassignClips moves the clips to the lane above before removal.
	RemoveReassignClips
)

// String returns the policy's config name.
func (p LaneRemovalPolicy) String() string {
	switch p {
	case RemoveRejectOccupied:
		return "reject"
	case RemoveReassignClips:
		return "reassign"
	default:
		return "delete"
	}
}

// ParseLaneRemovalPolicy parses delete, reject or reassign.
func ParseLaneRemovalPolicy(s string) (LaneRemovalPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "delete":
		return RemoveDeleteClips, nil
	case "reject":
		return RemoveRejectOccupied, nil
	case "reassign":
		return RemoveReassignClips, nil
	}
	return RemoveDeleteClips, fmt.Errorf("timeline: unknown lane removal policy %q", s)
}

// SnapScope limits which clips a dragged clip can snap to.
type SnapScope int

const (
	// SnapAllLanes considers clips in every lane.
	SnapAllLanes SnapScope = iota
	// SnapSameLane considers only clips in the dragged clip's target lane.
	SnapSameLane
)

// Config holds the engine's geometry and policies. Distances named Pixels are
// screen pixels; they are converted to frames through the current zoom.
type Config struct {
	TrackFPS         float64
	MaxDurationHours float64
	LaneOffset       float64
	LaneHeight       float64
	ViewportWidth    float64
	BaseSnapPixels   float64
	BaseUnsnapPixels float64
	// ClipMargin scales a new clip's length when fitting it to the viewport.
	ClipMargin float64
	// MinTickPixels is the smallest spacing between ruler ticks.
	MinTickPixels float64

	Overlap     OverlapPolicy
	LaneRemoval LaneRemovalPolicy
	SnapScope   SnapScope
}

// DefaultConfig returns a 30 fps, ten hour timeline with 50 pixel lanes.
func DefaultConfig() Config {
	return Config{
		TrackFPS:         30,
		MaxDurationHours: 10,
		LaneOffset:       10,
		LaneHeight:       50,
		ViewportWidth:    1000,
		BaseSnapPixels:   10,
		BaseUnsnapPixels: 10,
		ClipMargin:       1.25,
		MinTickPixels:    80,
	}
}

// MaxFrames returns the timeline length in frames.
func (c Config) MaxFrames() int {
	return int(c.TrackFPS * 60 * 60 * c.MaxDurationHours)
}

func (c Config) validate() error {
	switch {
	case c.TrackFPS <= 0:
		return fmt.Errorf("timeline: track fps must be positive, got %g", c.TrackFPS)
	case c.MaxFrames() < 2:
		return fmt.Errorf("timeline: timeline too short (%d frames)", c.MaxFrames())
	case c.LaneHeight <= 0:
		return fmt.Errorf("timeline: lane height must be positive, got %g", c.LaneHeight)
	case c.ViewportWidth <= 0:
		return fmt.Errorf("timeline: viewport width must be positive, got %g", c.ViewportWidth)
	case c.ClipMargin <= 0:
		return fmt.Errorf("timeline: clip margin must be positive, got %g", c.ClipMargin)
	}
	return nil
}
