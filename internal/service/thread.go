package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/questions-db/internal/apperror"
	"github.com/sakif/questions-db/internal/model"
)

// ReplyNode is one reply with its nested replies.
type ReplyNode struct {
	Reply    model.Reply  `json:"reply"`
	Children []*ReplyNode `json:"children"`
}

// Thread is a question with its full reply tree.
type Thread struct {
	Question model.Question `json:"question"`
	Replies  []*ReplyNode   `json:"replies"`
}

// Size returns the number of replies in the thread at every depth.
func (t *Thread) Size() int {
	n := 0
	var walk func([]*ReplyNode)
	walk = func(nodes []*ReplyNode) {
		for _, node := range nodes {
			n++
			walk(node.Children)
		}
	}
	walk(t.Replies)
	return n
}

// Thread loads a question and every reply under it.
//
// The store returns one level of replies per call, so the tree is built
// breadth-first: top-level replies first, then ChildReplies for each node.
// A reply is visited at most once, so a parent_id cycle written by hand
// cannot loop forever.
func (s *ForumService) Thread(ctx context.Context, questionID int64) (*Thread, error) {
	q, found, err := s.repos.Questions.FindByID(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("service: loading question %d: %w", questionID, err)
	}
	if !found {
		return nil, apperror.NotFound("question", questionID)
	}

	roots, err := s.repos.Replies.TopLevel(ctx, questionID)
	if err != nil {
		return nil, fmt.Errorf("service: loading replies for question %d: %w", questionID, err)
	}

	thread := &Thread{Question: q, Replies: make([]*ReplyNode, 0, len(roots))}
	seen := make(map[int64]bool, len(roots))
	queue := make([]*ReplyNode, 0, len(roots))
	for _, r := range roots {
		node := &ReplyNode{Reply: r, Children: []*ReplyNode{}}
		seen[r.ID] = true
		thread.Replies = append(thread.Replies, node)
		queue = append(queue, node)
	}

	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]

		children, err := s.repos.Replies.ChildReplies(ctx, node.Reply)
		if err != nil {
			return nil, fmt.Errorf("service: loading children of reply %d: %w", node.Reply.ID, err)
		}
		for _, c := range children {
			if seen[c.ID] {
				s.logger.Warn("reply visited twice, skipping",
					slog.Int64("reply_id", c.ID),
					slog.Int64("question_id", questionID),
				)
				continue
			}
			seen[c.ID] = true
			child := &ReplyNode{Reply: c, Children: []*ReplyNode{}}
			node.Children = append(node.Children, child)
			queue = append(queue, child)
		}
	}

	s.logger.Debug("thread loaded",
		slog.Int64("question_id", questionID),
		slog.Int("replies", len(seen)),
	)
	return thread, nil
}
