package models

// Comment lists are append-only on both ideas and publications.
type Comment struct {
	Author    string `json:"autor"`
	Text      string `json:"texto"`
	Timestamp string `json:"data"`
}

// SlideComment is a comment pinned to one slide of a carousel, 1-based.
type SlideComment struct {
	Slide int `json:"slide"`
	Comment
}
