package service

// In-memory fakes for the repository interfaces. Fakes (not a mock
// framework) keep these tests dependency-free and easy to read.

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/sakif/campushub/internal/apperror"
	"github.com/sakif/campushub/internal/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

type fakeRegistrationRepo struct {
	regs      []model.Registration // insertion order
	createErr error                // non-nil simulates a storage failure
	nextID    int
}

func newFakeRegistrationRepo() *fakeRegistrationRepo {
	return &fakeRegistrationRepo{nextID: 1}
}

func (f *fakeRegistrationRepo) CreateRegistration(ctx context.Context, reg *model.Registration) error {
	if f.createErr != nil {
		return f.createErr
	}
	for i := range f.regs {
		if f.regs[i].Email == reg.Email {
			return apperror.Conflict("registration", reg.Email)
		}
	}
	reg.ID = fmt.Sprintf("reg-%d", f.nextID)
	f.nextID++
	if reg.CreatedAt.IsZero() {
		reg.CreatedAt = time.Now().UTC()
	}
	f.regs = append(f.regs, *reg)
	return nil
}

func (f *fakeRegistrationRepo) GetRegistrationByEmail(ctx context.Context, email string) (*model.Registration, error) {
	for i := range f.regs {
		if f.regs[i].Email == email {
			reg := f.regs[i]
			return &reg, nil
		}
	}
	return nil, apperror.NotFound("registration", email)
}

func (f *fakeRegistrationRepo) ListRegistrations(ctx context.Context) ([]model.Registration, error) {
	out := make([]model.Registration, len(f.regs))
	copy(out, f.regs)
	return out, nil
}

type fakeAccountRepo struct {
	byEmail   map[string]*model.Account
	byID      map[string]*model.Account
	createErr error
	nextID    int
}

func newFakeAccountRepo() *fakeAccountRepo {
	return &fakeAccountRepo{
		byEmail: make(map[string]*model.Account),
		byID:    make(map[string]*model.Account),
		nextID:  1,
	}
}

func (f *fakeAccountRepo) CreateAccount(ctx context.Context, acct *model.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, exists := f.byEmail[acct.Email]; exists {
		return apperror.Conflict("account", acct.Email)
	}
	acct.ID = fmt.Sprintf("acct-%d", f.nextID)
	f.nextID++
	now := time.Now().UTC()
	acct.CreatedAt = now
	acct.UpdatedAt = now
	stored := *acct
	f.byEmail[acct.Email] = &stored
	f.byID[acct.ID] = &stored
	return nil
}

func (f *fakeAccountRepo) GetAccountByEmail(ctx context.Context, email string) (*model.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, apperror.NotFound("account", email)
	}
	acct := *a
	return &acct, nil
}

func (f *fakeAccountRepo) GetAccountByID(ctx context.Context, id string) (*model.Account, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, apperror.NotFound("account", id)
	}
	acct := *a
	return &acct, nil
}

type fakeForumRepo struct {
	topics []model.Topic
	posts  []model.Post
	nextID int
}

func newFakeForumRepo() *fakeForumRepo {
	return &fakeForumRepo{nextID: 1}
}

func (f *fakeForumRepo) CreateTopic(ctx context.Context, topic *model.Topic) error {
	topic.ID = fmt.Sprintf("topic-%d", f.nextID)
	f.nextID++
	topic.CreatedAt = time.Now().UTC()
	f.topics = append(f.topics, *topic)
	return nil
}

func (f *fakeForumRepo) GetTopic(ctx context.Context, id string) (*model.Topic, error) {
	for i := range f.topics {
		if f.topics[i].ID == id {
			t := f.topics[i]
			return &t, nil
		}
	}
	return nil, apperror.NotFound("topic", id)
}

func (f *fakeForumRepo) ListTopics(ctx context.Context) ([]model.Topic, error) {
	out := make([]model.Topic, len(f.topics))
	copy(out, f.topics)
	return out, nil
}

func (f *fakeForumRepo) DeleteTopic(ctx context.Context, id string) error {
	for i := range f.topics {
		if f.topics[i].ID == id {
			f.topics = append(f.topics[:i], f.topics[i+1:]...)
			var kept []model.Post
			for _, p := range f.posts {
				if p.TopicID != id {
					kept = append(kept, p)
				}
			}
			f.posts = kept
			return nil
		}
	}
	return apperror.NotFound("topic", id)
}

func (f *fakeForumRepo) CreatePost(ctx context.Context, post *model.Post) error {
	post.ID = fmt.Sprintf("post-%d", f.nextID)
	f.nextID++
	post.CreatedAt = time.Now().UTC()
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakeForumRepo) ListPostsByTopic(ctx context.Context, topicID string) ([]model.Post, error) {
	var out []model.Post
	for _, p := range f.posts {
		if p.TopicID == topicID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeForumRepo) CountTopicsByAuthor(ctx context.Context, author string) (int, error) {
	if author == "" {
		return 0, nil
	}
	n := 0
	for _, t := range f.topics {
		if strings.EqualFold(t.AuthorName, author) {
			n++
		}
	}
	return n, nil
}

func (f *fakeForumRepo) CountPostsByAuthor(ctx context.Context, author string) (int, error) {
	if author == "" {
		return 0, nil
	}
	n := 0
	for _, p := range f.posts {
		if strings.EqualFold(p.AuthorName, author) {
			n++
		}
	}
	return n, nil
}
