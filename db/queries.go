package db

import (
	_ "embed"
)

// Schema

//go:embed sql/create_tables.sql
var CreateTablesSQL string

// Video queries

//go:embed sql/upsert_video.sql
var UpsertVideoSQL string

//go:embed sql/select_videos.sql
var SelectVideosSQL string

//go:embed sql/select_video_by_path.sql
var SelectVideoByPathSQL string

//go:embed sql/update_video_last_frame.sql
var UpdateVideoLastFrameSQL string

//go:embed sql/delete_video.sql
var DeleteVideoSQL string
