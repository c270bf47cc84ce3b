package cmd

import (
	"log"
	"os"

	"examportal/backend/config"
	"examportal/backend/utils"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var rootCmd = &cobra.Command{
	Use:   "examportal",
	Short: "Exam Priority Portal backend",
	Long:  "REST backend that steers students to high-priority exam topics, serves quizzes and tracks progress.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServer(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedAdminCmd)
	rootCmd.AddCommand(checkAdminCmd)
	rootCmd.AddCommand(seedCurriculumCmd)
}

// bootstrap loads the configuration, builds the logger and opens the database.
func bootstrap() (*config.Config, *log.Logger, *gorm.DB, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, nil, err
	}

	logger := utils.InitLogger(utils.LoggerConfig{
		Format:       cfg.LogFormat,
		Output:       os.Stdout,
		EnableColors: cfg.LogFormat != "json",
	})

	db, err := utils.InitDB(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, logger, db, nil
}
