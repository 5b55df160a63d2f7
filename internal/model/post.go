package model

import "time"

// Post is a reply within a Topic.
//
// AuthorName follows the same snapshot policy as Topic.AuthorName.
// Posts are destroyed with their parent topic (ON DELETE CASCADE).
type Post struct {
	ID         string    `json:"id"         db:"id"`
	TopicID    string    `json:"topicId"    db:"topic_id"`
	AuthorName string    `json:"authorName" db:"author_name"`
	Content    string    `json:"content"    db:"content"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`
}
