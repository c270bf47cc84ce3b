package cmd

import (
	"fmt"

	"examportal/backend/seed"
	"examportal/backend/store"
	"examportal/backend/utils"

	"github.com/spf13/cobra"
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the configured admin account if it does not exist",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer utils.CloseDB(db)

		admin, created, err := seed.EnsureAdmin(cmd.Context(), store.NewUsers(db), cfg)
		if err != nil {
			return fmt.Errorf("creating admin: %w", err)
		}

		out := cmd.OutOrStdout()
		if !created {
			fmt.Fprintf(out, "Admin already exists: %s\n", admin.Email)
			return nil
		}
		fmt.Fprintf(out, "Admin account created: %s\n", admin.Email)
		fmt.Fprintln(out, "Please change the password after your first login.")
		return nil
	},
}

var checkAdminCmd = &cobra.Command{
	Use:   "check-admin",
	Short: "Report the configured admin account, creating it when missing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer utils.CloseDB(db)

		admin, created, err := seed.EnsureAdmin(cmd.Context(), store.NewUsers(db), cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if created {
			fmt.Fprintf(out, "Admin not found, created %s\n", admin.Email)
			return nil
		}
		fmt.Fprintf(out, "Admin found:\n  Email: %s\n  Role: %s\n  Password hash set: %t\n",
			admin.Email, admin.Role, admin.Password != "")
		return nil
	},
}

var seedCurriculumCmd = &cobra.Command{
	Use:   "seed-curriculum",
	Short: "Load exams, subjects, topics and quizzes from a YAML file",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")

		// Parse before touching the database.
		file, err := seed.Load(path)
		if err != nil {
			return err
		}

		_, _, db, err := bootstrap()
		if err != nil {
			return err
		}
		defer utils.CloseDB(db)

		res, err := seed.Apply(cmd.Context(), db, file)
		if err != nil {
			return fmt.Errorf("seeding curriculum: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exams created: %d, skipped: %d; subjects: %d, topics: %d, quizzes: %d\n",
			res.ExamsCreated, res.ExamsSkipped, res.Subjects, res.Topics, res.Quizzes)
		return nil
	},
}

func init() {
	seedCurriculumCmd.Flags().String("file", "curriculum.yaml", "Path to the curriculum YAML file")
}
