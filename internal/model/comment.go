package model

// MaxCommentLength bounds comment text, counted in runes after trimming.
const MaxCommentLength = 300

// Comment is a single persisted comment. LikedBy is written to disk as a
// sorted username array; Likes mirrors len(LikedBy) and is kept only for
// snapshot compatibility.
type Comment struct {
	ID        string   `json:"id"`
	Username  string   `json:"username"`
	Text      string   `json:"text"`
	CreatedAt string   `json:"createdAt"`
	LikedBy   []string `json:"likedBy"`
	Likes     int      `json:"likes"`
}

var NilComment = Comment{}

// CommentView annotates a comment for one reader: the current like count and
// whether that reader is in the voter set.
type CommentView struct {
	Comment
	Likes int  `json:"likes"`
	Liked bool `json:"liked"`
}
