package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sakif/questions-db/internal/apperror"
	"github.com/sakif/questions-db/internal/model"
)

func (a *app) userCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Look up users",
	}
	cmd.AddCommand(a.userShowCmd(), a.userKarmaCmd())
	return cmd
}

// userProfile is the --json shape of "user show".
type userProfile struct {
	User      model.User       `json:"user"`
	Karma     float64          `json:"karma"`
	Questions []model.Question `json:"questions"`
	Replies   []model.Reply    `json:"replies"`
	Following []model.Question `json:"following"`
	Liked     []model.Question `json:"liked"`
}

func (a *app) userShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <user-id>",
		Short: "Show a user with their questions, replies, follows and likes",
		Example: `  qadb user show 1
  qadb user show 1 --json`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, s *session, args []string) error {
			ctx := cmd.Context()
			userID, err := parseID("user-id", args[0])
			if err != nil {
				return err
			}

			users := s.db.Users()
			u, err := users.Get(ctx, userID)
			if err != nil {
				return err
			}

			p := userProfile{User: u}
			if p.Questions, err = users.AuthoredQuestions(ctx, u.ID); err != nil {
				return err
			}
			if p.Replies, err = users.AuthoredReplies(ctx, u.ID); err != nil {
				return err
			}
			if p.Following, err = users.FollowedQuestions(ctx, u.ID); err != nil {
				return err
			}
			if p.Liked, err = users.LikedQuestions(ctx, u.ID); err != nil {
				return err
			}
			if p.Karma, err = users.AverageKarma(ctx, u.ID); err != nil {
				return err
			}

			if s.json {
				return s.out.JSON(p)
			}

			s.out.Section(fmt.Sprintf("%s (#%d)", u.FullName(), u.ID))
			s.out.Field("Karma", fmt.Sprintf("%.2f", p.Karma))
			s.out.Field("Replies", len(p.Replies))
			s.out.Section("Asked")
			s.out.Questions(p.Questions)
			s.out.Section("Following")
			s.out.Questions(p.Following)
			s.out.Section("Liked")
			s.out.Questions(p.Liked)
			return nil
		}),
	}
}

func (a *app) userKarmaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "karma <first-name> <last-name>",
		Short: "Show a user's average karma",
		Long: `Average karma is the number of questions the user asked divided by the
number of likes those questions received. A user without likes has 0.`,
		Example: `  qadb user karma Ada Lovelace`,
		Args:    cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, s *session, args []string) error {
			u, karma, err := s.forum.Karma(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			if s.json {
				return s.out.JSON(map[string]any{"user": u, "karma": karma})
			}
			s.out.Info("%s (#%d) has average karma %.2f", u.FullName(), u.ID, karma)
			return nil
		}),
	}
}

func parseID(name, arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id < 1 {
		return 0, apperror.ValidationFailed(name, fmt.Sprintf("%s must be a positive integer, got %q", name, arg))
	}
	return id, nil
}
