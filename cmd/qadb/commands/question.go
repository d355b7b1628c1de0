package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sakif/questions-db/internal/apperror"
	"github.com/sakif/questions-db/internal/model"
	"github.com/sakif/questions-db/internal/service"
)

func (a *app) questionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "question",
		Short: "Look up and rank questions",
	}
	cmd.AddCommand(a.questionShowCmd(), a.questionTopCmd())
	return cmd
}

// questionDetail is the --json shape of "question show".
type questionDetail struct {
	Question  model.Question `json:"question"`
	Author    *model.User    `json:"author"`
	Likes     int64          `json:"likes"`
	Follows   int64          `json:"follows"`
	Followers []model.User   `json:"followers"`
	Likers    []model.User   `json:"likers"`
	Replies   int            `json:"replies"`
}

func (a *app) questionShowCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "show [question-id]",
		Short: "Show a question with its author, followers and likers",
		Example: `  qadb question show 1
  qadb question show --title "Why?"`,
		Args: cobra.MaximumNArgs(1),
		RunE: a.run(func(cmd *cobra.Command, s *session, args []string) error {
			ctx := cmd.Context()
			questions := s.db.Questions()

			var q model.Question
			switch {
			case title != "":
				var found bool
				var err error
				q, found, err = questions.FindByTitle(ctx, title)
				if err != nil {
					return err
				}
				if !found {
					return apperror.NotFoundBy("question", title)
				}
			case len(args) == 1:
				id, err := parseID("question-id", args[0])
				if err != nil {
					return err
				}
				if q, err = questions.Get(ctx, id); err != nil {
					return err
				}
			default:
				return apperror.ValidationFailed("question-id", "give a question id or --title")
			}

			d := questionDetail{Question: q}
			author, found, err := questions.Author(ctx, q)
			if err != nil {
				return err
			}
			if found {
				d.Author = &author
			}
			if d.Likes, err = questions.NumLikes(ctx, q); err != nil {
				return err
			}
			if d.Follows, err = questions.NumFollowers(ctx, q); err != nil {
				return err
			}
			if d.Followers, err = questions.Followers(ctx, q); err != nil {
				return err
			}
			if d.Likers, err = questions.Likers(ctx, q); err != nil {
				return err
			}
			replies, err := questions.Replies(ctx, q)
			if err != nil {
				return err
			}
			d.Replies = len(replies)

			if s.json {
				return s.out.JSON(d)
			}

			s.out.Section(fmt.Sprintf("%s (#%d)", q.Title, q.ID))
			if d.Author != nil {
				s.out.Field("Asked by", d.Author.FullName())
			}
			s.out.Field("Body", q.Body)
			s.out.Field("Likes", d.Likes)
			s.out.Field("Follows", d.Follows)
			s.out.Field("Replies", d.Replies)
			s.out.Section("Followers")
			s.out.Users(d.Followers)
			s.out.Section("Liked by")
			s.out.Users(d.Likers)
			return nil
		}),
	}

	cmd.Flags().StringVar(&title, "title", "", "Find the question by exact title instead of id")
	return cmd
}

func (a *app) questionTopCmd() *cobra.Command {
	var (
		by string
		n  int
	)

	cmd := &cobra.Command{
		Use:   "top",
		Short: "Rank questions by likes or follows",
		Long: `List the n questions with the most likes (or follows), highest first.
Questions with none are left out; ties come back in database order.`,
		Example: `  qadb question top
  qadb question top --by follows -n 3`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, s *session, _ []string) error {
			ranking := service.Ranking(by)
			ranked, err := s.forum.Leaderboard(cmd.Context(), ranking, n)
			if err != nil {
				return err
			}
			if s.json {
				return s.out.JSON(ranked)
			}
			s.out.Section(fmt.Sprintf("Top %d by %s", n, by))
			s.out.Ranking(ranking, ranked)
			return nil
		}),
	}

	cmd.Flags().StringVar(&by, "by", string(service.ByLikes), "What to rank by: likes or follows")
	cmd.Flags().IntVarP(&n, "limit", "n", 5, "How many questions to list")
	return cmd
}
