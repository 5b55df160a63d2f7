package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/campushub/internal/apperror"
	"github.com/sakif/campushub/internal/model"
	"github.com/sakif/campushub/internal/repository"
)

// compile-time check that *DB implements repository.ForumRepository
var _ repository.ForumRepository = (*DB)(nil)

// CreateTopic inserts a new topic, generating its ID and timestamp.
func (db *DB) CreateTopic(ctx context.Context, topic *model.Topic) error {
	topic.ID = xid.New().String()
	topic.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO topics (id, title, category, author_name, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		topic.ID,
		topic.Title,
		topic.Category,
		topic.AuthorName,
		topic.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting topic %q: %w", topic.Title, err)
	}
	return nil
}

// GetTopic returns the topic with the given ID, or apperror.ErrNotFound.
func (db *DB) GetTopic(ctx context.Context, id string) (*model.Topic, error) {
	var t model.Topic
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, category, author_name, created_at FROM topics WHERE id = ?`,
		id,
	).Scan(&t.ID, &t.Title, &t.Category, &t.AuthorName, &t.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("topic", id)
		}
		return nil, fmt.Errorf("sqlite: getting topic %s: %w", id, err)
	}
	return &t, nil
}

// ListTopics returns all topics newest-first, each with its reply count.
func (db *DB) ListTopics(ctx context.Context) ([]model.Topic, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT t.id, t.title, t.category, t.author_name, t.created_at,
		        (SELECT COUNT(*) FROM posts p WHERE p.topic_id = t.id)
		 FROM topics t
		 ORDER BY t.created_at DESC, t.id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing topics: %w", err)
	}
	defer rows.Close()

	var topics []model.Topic
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.Title, &t.Category, &t.AuthorName, &t.CreatedAt, &t.PostCount); err != nil {
			return nil, fmt.Errorf("sqlite: scanning topic: %w", err)
		}
		topics = append(topics, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: listing topics: %w", err)
	}
	return topics, nil
}

// DeleteTopic removes a topic; the posts FK cascade removes its posts.
// Returns apperror.ErrNotFound if no row was deleted.
func (db *DB) DeleteTopic(ctx context.Context, id string) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM topics WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting topic %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: deleting topic %s: %w", id, err)
	}
	if n == 0 {
		return apperror.NotFound("topic", id)
	}
	return nil
}

// CreatePost inserts a reply. The topic must exist; the FK rejects
// orphan posts, which surfaces as an error rather than a dangling row.
func (db *DB) CreatePost(ctx context.Context, post *model.Post) error {
	post.ID = xid.New().String()
	post.CreatedAt = time.Now().UTC()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO posts (id, topic_id, author_name, content, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		post.ID,
		post.TopicID,
		post.AuthorName,
		post.Content,
		post.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: inserting post (topic=%s): %w", post.TopicID, err)
	}
	return nil
}

// ListPostsByTopic returns a topic's posts oldest-first (thread order).
func (db *DB) ListPostsByTopic(ctx context.Context, topicID string) ([]model.Post, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, topic_id, author_name, content, created_at
		 FROM posts WHERE topic_id = ?
		 ORDER BY created_at ASC, id ASC`,
		topicID,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing posts for topic %s: %w", topicID, err)
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		if err := rows.Scan(&p.ID, &p.TopicID, &p.AuthorName, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("sqlite: scanning post: %w", err)
		}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: listing posts for topic %s: %w", topicID, err)
	}
	return posts, nil
}

// CountTopicsByAuthor counts topics whose author_name equals the given
// string, case-insensitively. An empty author matches nothing: the
// leaderboard treats a blank name as "no match", and short-circuiting
// here keeps that invariant out of the SQL.
func (db *DB) CountTopicsByAuthor(ctx context.Context, author string) (int, error) {
	return db.countByAuthor(ctx, "topics", author)
}

// CountPostsByAuthor counts posts by author_name, case-insensitively.
func (db *DB) CountPostsByAuthor(ctx context.Context, author string) (int, error) {
	return db.countByAuthor(ctx, "posts", author)
}

func (db *DB) countByAuthor(ctx context.Context, table, author string) (int, error) {
	if author == "" {
		return 0, nil
	}
	var count int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM `+table+` WHERE author_name = ? COLLATE NOCASE`,
		author,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("sqlite: counting %s by author %q: %w", table, author, err)
	}
	return count, nil
}
