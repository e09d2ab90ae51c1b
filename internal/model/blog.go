package model

import "time"

// BlogPost represents an article published on the storefront blog.
type BlogPost struct {
	ID       int64     `json:"id,string"`
	Title    string    `json:"title"`
	Excerpt  string    `json:"excerpt"`
	Body     string    `json:"body"`
	Author   string    `json:"author"`
	Category string    `json:"category"`
	Date     time.Time `json:"date"`
}
