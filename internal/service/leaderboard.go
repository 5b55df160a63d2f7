package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/sakif/campushub/internal/model"
	"github.com/sakif/campushub/internal/repository"
)

// TopContributorCount is the length of the top-contributors strip.
const TopContributorCount = 5

// LeaderboardService computes per-member contribution counts and
// rankings.
//
// Topics and posts carry author-name snapshots, not account keys, so
// the join is by string matching: a member's posts are those whose
// author_name equals their full name (case-insensitive), and, only
// when that matches nothing, those whose author_name equals their
// email. The two strategies chain, they never sum.
type LeaderboardService struct {
	regs   repository.RegistrationRepository
	forum  repository.ForumRepository
	logger *slog.Logger
}

func NewLeaderboardService(
	regs repository.RegistrationRepository,
	forum repository.ForumRepository,
	logger *slog.Logger,
) *LeaderboardService {
	return &LeaderboardService{
		regs:   regs,
		forum:  forum,
		logger: logger,
	}
}

// Leaderboard is the members page's data: every member ranked by
// contributions, plus the top-five prefix.
type Leaderboard struct {
	Members []model.MemberStats
	Top     []model.MemberStats // first TopContributorCount of Members
}

// Compute builds the leaderboard from all registrations.
//
// Ordering: contributions descending, with registration creation order
// as the tie-break (the repository lists registrations in creation
// order and the sort is stable, so ties keep that order).
func (s *LeaderboardService) Compute(ctx context.Context) (*Leaderboard, error) {
	regs, err := s.regs.ListRegistrations(ctx)
	if err != nil {
		s.logger.Error("failed to list registrations", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing registrations: %w", err)
	}

	members := make([]model.MemberStats, 0, len(regs))
	for i := range regs {
		reg := &regs[i]

		postCount, err := s.countWithFallback(ctx, s.forum.CountPostsByAuthor, reg)
		if err != nil {
			return nil, fmt.Errorf("counting posts for %s: %w", reg.Email, err)
		}
		topicCount, err := s.countWithFallback(ctx, s.forum.CountTopicsByAuthor, reg)
		if err != nil {
			return nil, fmt.Errorf("counting topics for %s: %w", reg.Email, err)
		}

		members = append(members, model.MemberStats{
			DisplayName:   reg.DisplayName(),
			Email:         reg.Email,
			Joined:        reg.CreatedAt,
			PostCount:     postCount,
			TopicCount:    topicCount,
			Contributions: postCount + topicCount,
		})
	}

	// Stable sort: equal contribution counts keep creation order.
	sort.SliceStable(members, func(i, j int) bool {
		return members[i].Contributions > members[j].Contributions
	})

	top := members
	if len(top) > TopContributorCount {
		top = top[:TopContributorCount]
	}

	return &Leaderboard{Members: members, Top: top}, nil
}

// countWithFallback counts by the member's full name and, if that
// matched nothing and the name is non-empty, by their email instead.
// A member whose name genuinely authored zero items is therefore
// indistinguishable from one whose items were authored under their
// email. The fallback chains, it never double counts.
func (s *LeaderboardService) countWithFallback(
	ctx context.Context,
	count func(context.Context, string) (int, error),
	reg *model.Registration,
) (int, error) {
	fullName := reg.FullName()

	n, err := count(ctx, fullName)
	if err != nil {
		return 0, err
	}
	if n == 0 && fullName != "" {
		return count(ctx, reg.Email)
	}
	return n, nil
}
