// Package repository declares the storage interfaces implemented by the
// sqlite package. Services depend on these interfaces, never on the
// concrete database type, so tests can substitute in-memory fakes.
package repository

import (
	"context"

	"github.com/sakif/campushub/internal/model"
)

// RegistrationRepository stores membership applications.
//
// Registrations are append-only. CreateRegistration must enforce the
// email uniqueness constraint and return apperror.ErrConflict (wrapped)
// when a duplicate loses the race; ListRegistrations must return rows
// in creation order, which the leaderboard relies on for its tie-break.
type RegistrationRepository interface {
	CreateRegistration(ctx context.Context, reg *model.Registration) error
	GetRegistrationByEmail(ctx context.Context, email string) (*model.Registration, error)
	ListRegistrations(ctx context.Context) ([]model.Registration, error)
}

// AccountRepository stores login-capable identities keyed by email.
type AccountRepository interface {
	CreateAccount(ctx context.Context, acct *model.Account) error
	GetAccountByEmail(ctx context.Context, email string) (*model.Account, error)
	GetAccountByID(ctx context.Context, id string) (*model.Account, error)
}

// ForumRepository stores topics and their posts.
//
// CountTopicsByAuthor and CountPostsByAuthor match author_name
// case-insensitively against the given string; they are the primitive
// the leaderboard's name-or-email matching is built on.
type ForumRepository interface {
	CreateTopic(ctx context.Context, topic *model.Topic) error
	GetTopic(ctx context.Context, id string) (*model.Topic, error)
	ListTopics(ctx context.Context) ([]model.Topic, error)
	DeleteTopic(ctx context.Context, id string) error

	CreatePost(ctx context.Context, post *model.Post) error
	ListPostsByTopic(ctx context.Context, topicID string) ([]model.Post, error)

	CountTopicsByAuthor(ctx context.Context, author string) (int, error)
	CountPostsByAuthor(ctx context.Context, author string) (int, error)
}
