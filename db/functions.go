package db

import (
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// UpsertVideo inserts a video or refreshes the probe metadata of an existing
// row with the same path, and returns the row id. last_frame is preserved.
func UpsertVideo(db *sql.DB, v Video) (int64, error) {
	filename := v.Filename
	if filename == "" {
		filename = filepath.Base(v.Path)
	}
	ext := v.Extension
	if ext == "" {
		ext = strings.TrimPrefix(filepath.Ext(v.Path), ".")
	}
	var id int64
	err := db.QueryRow(UpsertVideoSQL, v.Path, filename, ext, v.TotalFrames, v.FPS, v.Width, v.Height).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("upsert video: %w", err)
	}
	return id, nil
}

// SelectVideos returns all videos in insertion order.
func SelectVideos(db *sql.DB) ([]Video, error) {
	rows, err := db.Query(SelectVideosSQL)
	if err != nil {
		return nil, fmt.Errorf("select videos: %w", err)
	}
	defer rows.Close()

	var videos []Video
	for rows.Next() {
		v, err := scanVideo(rows)
		if err != nil {
			return nil, err
		}
		videos = append(videos, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate videos: %w", err)
	}
	return videos, nil
}

// SelectVideoByPath returns the video stored for path, or nil if there is none.
func SelectVideoByPath(db *sql.DB, path string) (*Video, error) {
	v, err := scanVideo(db.QueryRow(SelectVideoByPathSQL, path))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return v, err
}

// UpdateVideoLastFrame records the last frame shown for the video at path.
func UpdateVideoLastFrame(db *sql.DB, path string, frame int) error {
	res, err := db.Exec(UpdateVideoLastFrameSQL, frame, path)
	if err != nil {
		return fmt.Errorf("update video last frame: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update video last frame: no video at %s", path)
	}
	return nil
}

// DeleteVideo removes the video stored for path.
func DeleteVideo(db *sql.DB, path string) error {
	if _, err := db.Exec(DeleteVideoSQL, path); err != nil {
		return fmt.Errorf("delete video: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVideo(row rowScanner) (*Video, error) {
	var v Video
	var created timestamp
	err := row.Scan(&v.ID, &v.Path, &v.Filename, &v.Extension, &v.TotalFrames, &v.FPS, &v.Width, &v.Height, &v.LastFrame, &created)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan video: %w", err)
	}
	v.CreatedAt = created.Time
	return &v, nil
}

// timestamp scans CURRENT_TIMESTAMP columns whether the driver hands them
// over as time.Time or as text.
type timestamp struct {
	time.Time
}

func (ts *timestamp) Scan(v any) error {
	switch x := v.(type) {
	case nil:
		ts.Time = time.Time{}
	case time.Time:
		ts.Time = x
	case string:
		return ts.parse(x)
	case []byte:
		return ts.parse(string(x))
	default:
		return fmt.Errorf("scan timestamp: unsupported type %T", v)
	}
	return nil
}

func (ts *timestamp) parse(s string) error {
	for _, layout := range []string{time.DateTime, time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t
			return nil
		}
	}
	return fmt.Errorf("scan timestamp: cannot parse %q", s)
}
