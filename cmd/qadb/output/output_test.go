package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sakif/questions-db/internal/model"
	"github.com/sakif/questions-db/internal/service"
)

func TestThread(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	thread := &service.Thread{
		Question: model.Question{ID: 1, Title: "Why?"},
		Replies: []*service.ReplyNode{
			{
				Reply: model.Reply{ID: 1, Body: "root", AuthorID: 2},
				Children: []*service.ReplyNode{
					{Reply: model.Reply{ID: 2, Body: "nested", AuthorID: 1}},
				},
			},
			{Reply: model.Reply{ID: 3, Body: "second", AuthorID: 9}},
		},
	}
	p.Thread(thread, map[int64]string{1: "Ada Lovelace", 2: "Charles Babbage"})

	out := buf.String()
	assert.Contains(t, out, "Why? (#1)")
	assert.Contains(t, out, "Charles Babbage: root")
	assert.Contains(t, out, "Ada Lovelace: nested")
	assert.Contains(t, out, "user #9: second")

	// The nested reply is indented deeper than its parent.
	lines := strings.Split(out, "\n")
	indent := func(substr string) int {
		for _, l := range lines {
			if i := strings.Index(l, substr); i >= 0 {
				return i
			}
		}
		t.Fatalf("%q not in output:\n%s", substr, out)
		return -1
	}
	assert.Greater(t, indent("Ada Lovelace"), indent("Charles Babbage"))
}

func TestRanking(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)

	p.Ranking(service.ByLikes, nil)
	assert.Contains(t, buf.String(), "(no likes yet)")

	buf.Reset()
	p.Ranking(service.ByFollows, []model.RankedQuestion{
		{Question: model.Question{ID: 4, Title: "Popular"}, Count: 7},
		{Question: model.Question{ID: 2, Title: "Quiet"}, Count: 1},
	})
	out := buf.String()
	assert.Contains(t, out, "follows")
	assert.Contains(t, out, "Popular")
	assert.Less(t, strings.Index(out, "Popular"), strings.Index(out, "Quiet"))
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(&buf).JSON(model.User{ID: 1, FName: "Ada", LName: "Lovelace"}))
	assert.JSONEq(t, `{"id":1,"fname":"Ada","lname":"Lovelace"}`, buf.String())
}

func TestEmptyLists(t *testing.T) {
	var buf bytes.Buffer
	p := New(&buf)
	p.Users(nil)
	p.Questions(nil)
	assert.Equal(t, 2, strings.Count(buf.String(), "(none)"))
}
