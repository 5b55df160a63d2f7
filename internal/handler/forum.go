package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/sakif/campushub/internal/apperror"
	"github.com/sakif/campushub/internal/model"
	"github.com/sakif/campushub/internal/service"
	"github.com/sakif/campushub/internal/session"
)

// ForumHandler serves the topic list (with inline topic creation) and
// the topic detail page (with inline replies).
//
// Reading is open to everyone; creating anything requires an
// established session. The author name stamped onto new topics and
// posts comes from the session identity, never from the form.
type ForumHandler struct {
	forum    *service.ForumService
	identity *service.IdentityService
	sessions *session.Manager
	render   *Renderer
	logger   *slog.Logger
}

func NewForumHandler(
	forum *service.ForumService,
	identity *service.IdentityService,
	sessions *session.Manager,
	render *Renderer,
	logger *slog.Logger,
) *ForumHandler {
	return &ForumHandler{
		forum:    forum,
		identity: identity,
		sessions: sessions,
		render:   render,
		logger:   logger,
	}
}

type topicForm struct {
	Title    string
	Category string
}

type forumPage struct {
	basePage
	Topics     []model.Topic
	Categories []struct{ Value, Label string }
	Form       topicForm
	Errors     apperror.ValidationErrors
}

type topicPage struct {
	basePage
	Topic   *model.Topic
	Posts   []model.Post
	Content string
	Errors  apperror.ValidationErrors
}

func categoryOptions() []struct{ Value, Label string } {
	opts := make([]struct{ Value, Label string }, 0, len(model.CategoryLabels))
	for _, cl := range model.CategoryLabels {
		opts = append(opts, struct{ Value, Label string }{cl.Value, cl.Label})
	}
	return opts
}

// HandleForum lists all topics with the inline creation form.
//
// HTTP: GET /forum/
func (h *ForumHandler) HandleForum(w http.ResponseWriter, r *http.Request) {
	h.renderForum(w, r, topicForm{}, nil)
}

func (h *ForumHandler) renderForum(w http.ResponseWriter, r *http.Request, form topicForm, ve apperror.ValidationErrors) {
	topics, err := h.forum.ListTopics(r.Context())
	if err != nil {
		h.logger.Error("failed to load forum", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render.render(w, "forum.html", forumPage{
		basePage:   h.render.base(r.Context(), "Forum", "forum"),
		Topics:     topics,
		Categories: categoryOptions(),
		Form:       form,
		Errors:     ve,
	})
}

// HandleCreateTopic creates a topic from the inline form.
//
// HTTP: POST /forum/  (session required)
func (h *ForumHandler) HandleCreateTopic(w http.ResponseWriter, r *http.Request) {
	acct, err := h.identity.CurrentAccount(r.Context())
	if err != nil {
		redirectUnauthorized(w, r, h.sessions, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	form := topicForm{
		Title:    r.PostFormValue("title"),
		Category: r.PostFormValue("category"),
	}

	if _, err := h.forum.CreateTopic(r.Context(), acct, form.Title, form.Category); err != nil {
		var ve apperror.ValidationErrors
		if errors.As(err, &ve) {
			h.renderForum(w, r, form, ve)
			return
		}
		h.logger.Error("failed to create topic", slog.String("error", err.Error()))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.sessions.Flash(r.Context(), "Topic created.")
	http.Redirect(w, r, "/forum/", http.StatusSeeOther)
}

// HandleTopic shows a topic's thread with the inline reply form.
//
// HTTP: GET /topic/{id}/
func (h *ForumHandler) HandleTopic(w http.ResponseWriter, r *http.Request) {
	h.renderTopic(w, r, "", nil)
}

func (h *ForumHandler) renderTopic(w http.ResponseWriter, r *http.Request, content string, ve apperror.ValidationErrors) {
	id := r.PathValue("id")

	topic, posts, err := h.forum.GetTopicWithPosts(r.Context(), id)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			h.sessions.Flash(r.Context(), "That topic doesn't exist.")
			http.Redirect(w, r, "/forum/", http.StatusSeeOther)
			return
		}
		h.logger.Error("failed to load topic",
			slog.String("topicID", id),
			slog.String("error", err.Error()),
		)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	h.render.render(w, "topic.html", topicPage{
		basePage: h.render.base(r.Context(), topic.Title, "forum"),
		Topic:    topic,
		Posts:    posts,
		Content:  content,
		Errors:   ve,
	})
}

// HandleCreatePost creates a reply on a topic.
//
// HTTP: POST /topic/{id}/  (session required)
func (h *ForumHandler) HandleCreatePost(w http.ResponseWriter, r *http.Request) {
	acct, err := h.identity.CurrentAccount(r.Context())
	if err != nil {
		redirectUnauthorized(w, r, h.sessions, err)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Failed to parse form", http.StatusBadRequest)
		return
	}
	id := r.PathValue("id")
	content := r.PostFormValue("content")

	if _, err := h.forum.CreatePost(r.Context(), acct, id, content); err != nil {
		var ve apperror.ValidationErrors
		switch {
		case errors.As(err, &ve):
			h.renderTopic(w, r, content, ve)
		case errors.Is(err, apperror.ErrNotFound):
			h.sessions.Flash(r.Context(), "That topic doesn't exist.")
			http.Redirect(w, r, "/forum/", http.StatusSeeOther)
		default:
			h.logger.Error("failed to create post",
				slog.String("topicID", id),
				slog.String("error", err.Error()),
			)
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	http.Redirect(w, r, "/topic/"+id+"/", http.StatusSeeOther)
}
