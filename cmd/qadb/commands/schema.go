package commands

import (
	"github.com/spf13/cobra"
)

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the tables if they do not exist",
		Long: `Create the users, questions, replies, questions_follows and question_likes
tables and their indexes. Running it again on an existing database is a no-op.

Examples:
  qadb schema
  qadb schema --driver pgx --dsn postgres://localhost:5432/qadb`,
		Args: cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, s *session, _ []string) error {
			if err := s.db.CreateSchema(cmd.Context()); err != nil {
				return err
			}
			if s.json {
				return s.out.JSON(map[string]string{"status": "ok", "driver": s.db.Driver()})
			}
			s.out.Success("Schema ready (%s)", s.db.Driver())
			return nil
		}),
	}
}
