package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/campushub/internal/apperror"
	"github.com/sakif/campushub/internal/model"
	"github.com/sakif/campushub/internal/repository"
)

const (
	MaxTitleLength   = 200
	MaxContentLength = 10000
)

// ForumService handles topic and post creation plus the read paths
// the forum pages render from.
//
// Creation is gated on an established identity: the author comes in as
// a *model.Account resolved from the session, never from the form, so
// the author_name snapshot cannot be forged by tampering with the
// submission.
type ForumService struct {
	forum  repository.ForumRepository
	logger *slog.Logger
}

func NewForumService(forum repository.ForumRepository, logger *slog.Logger) *ForumService {
	return &ForumService{
		forum:  forum,
		logger: logger,
	}
}

// CreateTopic validates and creates a discussion thread.
//
// The category must be one of the enumerated set; an invalid value
// fails validation rather than being coerced to the default. Only a
// missing category defaults to "general".
func (s *ForumService) CreateTopic(ctx context.Context, author *model.Account, title, category string) (*model.Topic, error) {
	if author == nil {
		return nil, apperror.Unauthorized("log in to start a topic")
	}

	ve := apperror.ValidationErrors{}

	title = strings.TrimSpace(title)
	if title == "" {
		ve.Add("title", "title is required")
	} else if len(title) > MaxTitleLength {
		ve.Add("title", fmt.Sprintf("title must be %d characters or less", MaxTitleLength))
	}

	if category == "" {
		category = model.DefaultCategory
	} else if !model.ValidCategory(category) {
		ve.Add("category", "choose a valid category")
	}

	if len(ve) > 0 {
		return nil, ve
	}

	topic := &model.Topic{
		Title:      title,
		Category:   category,
		AuthorName: author.DisplayName(),
	}
	if err := s.forum.CreateTopic(ctx, topic); err != nil {
		s.logger.Error("failed to create topic",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating topic: %w", err)
	}

	s.logger.Info("topic created",
		slog.String("id", topic.ID),
		slog.String("category", topic.Category),
		slog.String("author", topic.AuthorName),
	)

	return topic, nil
}

// CreatePost validates and creates a reply on an existing topic.
// Returns apperror.ErrNotFound when the topic does not exist.
func (s *ForumService) CreatePost(ctx context.Context, author *model.Account, topicID, content string) (*model.Post, error) {
	if author == nil {
		return nil, apperror.Unauthorized("log in to reply")
	}

	// The topic must exist before anything is written.
	if _, err := s.forum.GetTopic(ctx, topicID); err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		ve := apperror.ValidationErrors{}
		ve.Add("content", "reply content is required")
		return nil, ve
	}
	if len(content) > MaxContentLength {
		ve := apperror.ValidationErrors{}
		ve.Add("content", fmt.Sprintf("reply must be %d characters or less", MaxContentLength))
		return nil, ve
	}

	post := &model.Post{
		TopicID:    topicID,
		AuthorName: author.DisplayName(),
		Content:    content,
	}
	if err := s.forum.CreatePost(ctx, post); err != nil {
		s.logger.Error("failed to create post",
			slog.String("topicID", topicID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating post: %w", err)
	}

	s.logger.Info("post created",
		slog.String("id", post.ID),
		slog.String("topicID", topicID),
		slog.String("author", post.AuthorName),
	)

	return post, nil
}

// ListTopics returns all topics newest-first with reply counts.
func (s *ForumService) ListTopics(ctx context.Context) ([]model.Topic, error) {
	topics, err := s.forum.ListTopics(ctx)
	if err != nil {
		s.logger.Error("failed to list topics", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing topics: %w", err)
	}
	return topics, nil
}

// GetTopicWithPosts returns a topic and its thread, oldest post first.
// Returns apperror.ErrNotFound when the topic does not exist.
func (s *ForumService) GetTopicWithPosts(ctx context.Context, topicID string) (*model.Topic, []model.Post, error) {
	topic, err := s.forum.GetTopic(ctx, topicID)
	if err != nil {
		return nil, nil, err
	}

	posts, err := s.forum.ListPostsByTopic(ctx, topicID)
	if err != nil {
		s.logger.Error("failed to list posts",
			slog.String("topicID", topicID),
			slog.String("error", err.Error()),
		)
		return nil, nil, fmt.Errorf("listing posts for topic %s: %w", topicID, err)
	}

	return topic, posts, nil
}
