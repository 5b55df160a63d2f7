package model

import "time"

// MemberStats is one row of the members leaderboard: a registration
// joined against the forum by author-string matching.
//
// PostCount and TopicCount each come from a single match strategy
// (full name, or email as a fallback when the name matched nothing);
// the two are never summed within one count.
type MemberStats struct {
	DisplayName   string    `json:"displayName"`
	Email         string    `json:"email"`
	Joined        time.Time `json:"joined"`
	PostCount     int       `json:"postCount"`
	TopicCount    int       `json:"topicCount"`
	Contributions int       `json:"contributions"` // PostCount + TopicCount
}
