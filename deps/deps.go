package deps

import (
	"fmt"
	"os/exec"
)

// FfmpegInstallURL is where ffmpeg and ffprobe builds are published.
const FfmpegInstallURL = "https://ffmpeg.org/download.html"

// DependencyError describes a missing external tool.
type DependencyError struct {
	Name       string
	Path       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	if e.Path != "" && e.Path != e.Name {
		return fmt.Sprintf("%s not found at %s. Install from: %s", e.Name, e.Path, e.InstallURL)
	}
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Tool is an external binary the editor shells out to.
type Tool struct {
	Name string
	// Path is the configured binary, a bare name looked up in PATH or a file path.
	Path string
}

// Check resolves the tool and returns its absolute location.
func (t Tool) Check() (string, error) {
	path := t.Path
	if path == "" {
		path = t.Name
	}
	resolved, err := exec.LookPath(path)
	if err != nil {
		return "", &DependencyError{Name: t.Name, Path: path, InstallURL: FfmpegInstallURL}
	}
	return resolved, nil
}

// CheckFfmpeg checks that the ffmpeg binary at path (or in PATH) is usable.
func CheckFfmpeg(path string) error {
	_, err := Tool{Name: "ffmpeg", Path: path}.Check()
	return err
}

// CheckFfprobe checks that the ffprobe binary at path (or in PATH) is usable.
func CheckFfprobe(path string) error {
	_, err := Tool{Name: "ffprobe", Path: path}.Check()
	return err
}

// CheckAll checks every tool and returns an error for each missing one.
func CheckAll(tools ...Tool) []error {
	var errs []error
	for _, t := range tools {
		if _, err := t.Check(); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}
