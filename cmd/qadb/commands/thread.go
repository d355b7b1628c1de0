package commands

import (
	"github.com/spf13/cobra"
)

func (a *app) threadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "thread <question-id>",
		Short: "Print a question with all of its replies as a tree",
		Example: `  qadb thread 1
  qadb thread 1 --json`,
		Args: cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, s *session, args []string) error {
			ctx := cmd.Context()
			questionID, err := parseID("question-id", args[0])
			if err != nil {
				return err
			}

			thread, err := s.forum.Thread(ctx, questionID)
			if err != nil {
				return err
			}
			if s.json {
				return s.out.JSON(thread)
			}

			// Author names for the tree labels.
			users, err := s.db.Users().All(ctx)
			if err != nil {
				return err
			}
			names := make(map[int64]string, len(users))
			for _, u := range users {
				names[u.ID] = u.FullName()
			}

			s.out.Thread(thread, names)
			s.out.Muted("%d replies", thread.Size())
			return nil
		}),
	}
}
