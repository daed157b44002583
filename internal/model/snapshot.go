package model

// LikeRecord is the on-disk form of an article's like state. Users is sorted
// before writing and Count always equals len(Users).
type LikeRecord struct {
	Count int      `json:"count"`
	Users []string `json:"users"`
}

// Snapshot is the persistence envelope for the whole engagement overlay.
// The key names match snapshots written by earlier deployments and must not
// change.
type Snapshot struct {
	Users        []Account             `json:"users"`
	LikesDB      map[string]LikeRecord `json:"likesDB"`
	ArticleStore map[string]Article    `json:"articleStore"`
	CommentsDB   map[string][]Comment  `json:"commentsDB"`
}
