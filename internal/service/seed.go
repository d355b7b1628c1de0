package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/questions-db/internal/model"
)

// SeedResult lists what Seed created.
type SeedResult struct {
	Users     []model.User     `json:"users"`
	Questions []model.Question `json:"questions"`
	Replies   []model.Reply    `json:"replies"`
}

// Seed fills an empty database with a small demo forum: three users, two
// questions, a short reply thread, follows and likes.
func (s *ForumService) Seed(ctx context.Context) (*SeedResult, error) {
	res := &SeedResult{}

	for _, name := range [][2]string{{"Ada", "Lovelace"}, {"Charles", "Babbage"}, {"Grace", "Hopper"}} {
		u, err := s.Register(ctx, name[0], name[1])
		if err != nil {
			return nil, err
		}
		res.Users = append(res.Users, u)
	}
	ada, charles, grace := res.Users[0], res.Users[1], res.Users[2]

	why, err := s.Ask(ctx, ada.ID, "Why?", "Why does the engine weave algebraic patterns?")
	if err != nil {
		return nil, err
	}
	bug, err := s.Ask(ctx, grace.ID, "What is a bug?", "Found a moth in relay 70.")
	if err != nil {
		return nil, err
	}
	res.Questions = append(res.Questions, why, bug)

	root, err := s.Answer(ctx, charles.ID, why.ID, nil, "Because of the Jacquard cards.")
	if err != nil {
		return nil, err
	}
	nested, err := s.Answer(ctx, ada.ID, why.ID, model.ParentIDOf(root.ID), "As a loom weaves flowers and leaves.")
	if err != nil {
		return nil, err
	}
	other, err := s.Answer(ctx, ada.ID, bug.ID, nil, "A most literal defect.")
	if err != nil {
		return nil, err
	}
	res.Replies = append(res.Replies, root, nested, other)

	for _, step := range []struct {
		follow     bool
		userID     int64
		questionID int64
	}{
		{true, charles.ID, why.ID},
		{true, grace.ID, why.ID},
		{true, ada.ID, bug.ID},
		{false, charles.ID, why.ID},
		{false, grace.ID, why.ID},
		{false, ada.ID, bug.ID},
	} {
		if step.follow {
			_, err = s.Follow(ctx, step.userID, step.questionID)
		} else {
			_, err = s.Like(ctx, step.userID, step.questionID)
		}
		if err != nil {
			return nil, fmt.Errorf("service: seeding: %w", err)
		}
	}

	s.logger.Info("database seeded",
		slog.Int("users", len(res.Users)),
		slog.Int("questions", len(res.Questions)),
		slog.Int("replies", len(res.Replies)),
	)
	return res, nil
}
