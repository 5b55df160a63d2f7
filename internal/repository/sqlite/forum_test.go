package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/campushub/internal/apperror"
	"github.com/sakif/campushub/internal/model"
)

func createTestTopic(t *testing.T, db *DB, title, category, author string) *model.Topic {
	t.Helper()
	topic := &model.Topic{Title: title, Category: category, AuthorName: author}
	if err := db.CreateTopic(context.Background(), topic); err != nil {
		t.Fatalf("failed to create test topic: %v", err)
	}
	return topic
}

func createTestPost(t *testing.T, db *DB, topicID, author, content string) *model.Post {
	t.Helper()
	post := &model.Post{TopicID: topicID, AuthorName: author, Content: content}
	if err := db.CreatePost(context.Background(), post); err != nil {
		t.Fatalf("failed to create test post: %v", err)
	}
	return post
}

func TestTopicCreateAndGet(t *testing.T) {
	db := newTestDB(t)

	created := createTestTopic(t, db, "Welcome thread", model.CategoryGeneral, "Ann Lee")
	if created.ID == "" {
		t.Error("CreateTopic() did not set topic.ID")
	}
	if created.CreatedAt.IsZero() {
		t.Error("CreateTopic() did not set topic.CreatedAt")
	}

	found, err := db.GetTopic(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("GetTopic() error = %v", err)
	}
	if found.Title != "Welcome thread" {
		t.Errorf("Title = %q, want %q", found.Title, "Welcome thread")
	}
	if found.Category != model.CategoryGeneral {
		t.Errorf("Category = %q, want %q", found.Category, model.CategoryGeneral)
	}
	if found.AuthorName != "Ann Lee" {
		t.Errorf("AuthorName = %q, want %q", found.AuthorName, "Ann Lee")
	}
}

func TestTopicGet_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetTopic(context.Background(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetTopic() error = %v, want ErrNotFound", err)
	}
}

func TestTopicList_NewestFirstWithCounts(t *testing.T) {
	db := newTestDB(t)

	first := createTestTopic(t, db, "First", model.CategoryGeneral, "Ann Lee")
	second := createTestTopic(t, db, "Second", model.CategoryTech, "Bo Roe")
	createTestPost(t, db, first.ID, "Bo Roe", "reply one")
	createTestPost(t, db, first.ID, "Cy Poe", "reply two")

	topics, err := db.ListTopics(context.Background())
	if err != nil {
		t.Fatalf("ListTopics() error = %v", err)
	}
	if len(topics) != 2 {
		t.Fatalf("len(topics) = %d, want 2", len(topics))
	}
	if topics[0].ID != second.ID {
		t.Errorf("topics[0].ID = %q, want newest topic %q", topics[0].ID, second.ID)
	}
	if topics[0].PostCount != 0 {
		t.Errorf("topics[0].PostCount = %d, want 0", topics[0].PostCount)
	}
	if topics[1].PostCount != 2 {
		t.Errorf("topics[1].PostCount = %d, want 2", topics[1].PostCount)
	}
}

func TestTopicDelete_CascadesToPosts(t *testing.T) {
	db := newTestDB(t)

	topic := createTestTopic(t, db, "Doomed", model.CategoryGeneral, "Ann Lee")
	createTestPost(t, db, topic.ID, "Bo Roe", "reply")

	if err := db.DeleteTopic(context.Background(), topic.ID); err != nil {
		t.Fatalf("DeleteTopic() error = %v", err)
	}

	if _, err := db.GetTopic(context.Background(), topic.ID); !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("GetTopic() after delete error = %v, want ErrNotFound", err)
	}
	posts, err := db.ListPostsByTopic(context.Background(), topic.ID)
	if err != nil {
		t.Fatalf("ListPostsByTopic() error = %v", err)
	}
	if len(posts) != 0 {
		t.Errorf("len(posts) = %d, want 0 after cascade", len(posts))
	}
}

func TestTopicDelete_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.DeleteTopic(context.Background(), "missing")
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Fatalf("DeleteTopic() error = %v, want ErrNotFound", err)
	}
}

func TestPostList_ThreadOrder(t *testing.T) {
	db := newTestDB(t)

	topic := createTestTopic(t, db, "Thread", model.CategoryGeneral, "Ann Lee")
	createTestPost(t, db, topic.ID, "Ann Lee", "first")
	createTestPost(t, db, topic.ID, "Bo Roe", "second")
	createTestPost(t, db, topic.ID, "Ann Lee", "third")

	posts, err := db.ListPostsByTopic(context.Background(), topic.ID)
	if err != nil {
		t.Fatalf("ListPostsByTopic() error = %v", err)
	}
	if len(posts) != 3 {
		t.Fatalf("len(posts) = %d, want 3", len(posts))
	}
	want := []string{"first", "second", "third"}
	for i, content := range want {
		if posts[i].Content != content {
			t.Errorf("posts[%d].Content = %q, want %q", i, posts[i].Content, content)
		}
	}
}

func TestPostCreate_RejectsMissingTopic(t *testing.T) {
	db := newTestDB(t)

	post := &model.Post{TopicID: "missing", AuthorName: "Ann Lee", Content: "orphan"}
	if err := db.CreatePost(context.Background(), post); err == nil {
		t.Fatal("CreatePost() with missing topic should fail the foreign key")
	}
}

func TestCountPostsByAuthor_CaseInsensitive(t *testing.T) {
	db := newTestDB(t)

	topic := createTestTopic(t, db, "Thread", model.CategoryGeneral, "Ann Lee")
	createTestPost(t, db, topic.ID, "Ann Lee", "one")
	createTestPost(t, db, topic.ID, "ANN LEE", "two")
	createTestPost(t, db, topic.ID, "ann lee", "three")
	createTestPost(t, db, topic.ID, "Bo Roe", "other")

	n, err := db.CountPostsByAuthor(context.Background(), "ann LEE")
	if err != nil {
		t.Fatalf("CountPostsByAuthor() error = %v", err)
	}
	if n != 3 {
		t.Errorf("CountPostsByAuthor() = %d, want 3", n)
	}
}

func TestCountTopicsByAuthor(t *testing.T) {
	db := newTestDB(t)

	createTestTopic(t, db, "One", model.CategoryGeneral, "Ann Lee")
	createTestTopic(t, db, "Two", model.CategoryTech, "ann lee")
	createTestTopic(t, db, "Three", model.CategoryGeneral, "Bo Roe")

	n, err := db.CountTopicsByAuthor(context.Background(), "Ann Lee")
	if err != nil {
		t.Fatalf("CountTopicsByAuthor() error = %v", err)
	}
	if n != 2 {
		t.Errorf("CountTopicsByAuthor() = %d, want 2", n)
	}
}

func TestCountByAuthor_EmptyAuthorMatchesNothing(t *testing.T) {
	db := newTestDB(t)

	topic := createTestTopic(t, db, "Thread", model.CategoryGeneral, "")
	createTestPost(t, db, topic.ID, "", "anonymous")

	n, err := db.CountPostsByAuthor(context.Background(), "")
	if err != nil {
		t.Fatalf("CountPostsByAuthor() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CountPostsByAuthor(\"\") = %d, want 0", n)
	}
	n, err = db.CountTopicsByAuthor(context.Background(), "")
	if err != nil {
		t.Fatalf("CountTopicsByAuthor() error = %v", err)
	}
	if n != 0 {
		t.Errorf("CountTopicsByAuthor(\"\") = %d, want 0", n)
	}
}
