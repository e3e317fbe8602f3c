package db

import (
	"database/sql"
	"strings"

	"github.com/user/splice-cli/catalog"
)

// CatalogStore persists a catalog in the videos table.
type CatalogStore struct {
	db *sql.DB
}

// NewCatalogStore returns a catalog.Store backed by db.
func NewCatalogStore(db *sql.DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// SaveVideo implements catalog.Store.
func (s *CatalogStore) SaveVideo(v catalog.Video) error {
	_, err := UpsertVideo(s.db, Video{
		Path:        v.Path,
		TotalFrames: v.TotalFrames,
		FPS:         v.FPS,
		Width:       v.Width,
		Height:      v.Height,
	})
	return err
}

// LoadVideos implements catalog.Store.
func (s *CatalogStore) LoadVideos() ([]catalog.Video, error) {
	rows, err := SelectVideos(s.db)
	if err != nil {
		return nil, err
	}
	out := make([]catalog.Video, 0, len(rows))
	for _, r := range rows {
		v := catalog.Video{
			Path:        r.Path,
			Name:        strings.TrimSuffix(r.Filename, "."+r.Extension),
			TotalFrames: r.TotalFrames,
			FPS:         r.FPS,
			Width:       r.Width,
			Height:      r.Height,
			LastFrame:   r.LastFrame,
		}
		if r.FPS > 0 {
			v.DurationSeconds = float64(r.TotalFrames) / r.FPS
		}
		out = append(out, v)
	}
	return out, nil
}

// SaveLastFrame implements catalog.Store.
func (s *CatalogStore) SaveLastFrame(path string, frame int) error {
	return UpdateVideoLastFrame(s.db, path, frame)
}
