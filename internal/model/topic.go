package model

import "time"

// Topic categories. The set is fixed; anything else fails validation
// rather than being coerced to the default.
const (
	CategoryGeneral  = "general"
	CategoryTech     = "tech"
	CategoryStudy    = "study"
	CategoryGames    = "games"
	CategorySecurity = "security"

	DefaultCategory = CategoryGeneral
)

// CategoryLabels maps each category value to its display name, in
// presentation order.
var CategoryLabels = []struct {
	Value string
	Label string
}{
	{CategoryGeneral, "General Discussion"},
	{CategoryTech, "Technical Help"},
	{CategoryStudy, "Study Groups"},
	{CategoryGames, "Game Development"},
	{CategorySecurity, "Cybersecurity"},
}

// ValidCategory reports whether c is one of the enumerated categories.
func ValidCategory(c string) bool {
	for _, cl := range CategoryLabels {
		if cl.Value == c {
			return true
		}
	}
	return false
}

// CategoryLabel returns the display name for a category value, or the
// value itself if it is unknown (unknown values never reach storage,
// but templates should not crash on them either).
func CategoryLabel(c string) string {
	for _, cl := range CategoryLabels {
		if cl.Value == c {
			return cl.Label
		}
	}
	return c
}

// Topic is a forum discussion thread.
//
// AuthorName is a free-text snapshot of the creator's display name at
// creation time, not a reference to an account. Renaming a member does
// not rewrite past authorship, which is why the leaderboard matches by
// string equality rather than by key.
type Topic struct {
	ID         string    `json:"id"         db:"id"`
	Title      string    `json:"title"      db:"title"`
	Category   string    `json:"category"   db:"category"`
	AuthorName string    `json:"authorName" db:"author_name"`
	CreatedAt  time.Time `json:"createdAt"  db:"created_at"`

	// PostCount is populated by listing queries; it is not a column.
	PostCount int `json:"postCount" db:"-"`
}
