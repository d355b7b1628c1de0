package commands

import (
	"github.com/spf13/cobra"
)

func (a *app) seedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Fill an empty database with demo data",
		Long: `Create the schema, then add three users, two questions, a short reply
thread, follows and likes. A database that already has users is left alone.

Examples:
  qadb seed
  qadb seed --json`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, s *session, _ []string) error {
			ctx := cmd.Context()
			if err := s.db.CreateSchema(ctx); err != nil {
				return err
			}

			n, err := s.db.Users().Count(ctx)
			if err != nil {
				return err
			}
			if n > 0 {
				if s.json {
					return s.out.JSON(map[string]any{"status": "skipped", "users": n})
				}
				s.out.Warning("Database already has %d users; not seeding", n)
				return nil
			}

			res, err := s.forum.Seed(ctx)
			if err != nil {
				return err
			}
			if s.json {
				return s.out.JSON(res)
			}

			s.out.Success("Seeded %d users, %d questions and %d replies",
				len(res.Users), len(res.Questions), len(res.Replies))
			s.out.Section("Users")
			s.out.Users(res.Users)
			s.out.Section("Questions")
			s.out.Questions(res.Questions)
			return nil
		}),
	}
}
