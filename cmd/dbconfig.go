package cmd

import (
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/spf13/cobra"

	"todo-api/secrets"
)

var dbConfigOut string

// dbConfigCmd uses the default AWS credential chain (~/.aws/config,
// ~/.aws/credentials, or the AWS_* variables from .aws.env).
var dbConfigCmd = &cobra.Command{
	Use:   "db-config",
	Short: "Fetch database credentials from SSM Parameter Store into a dotenv file",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return err
		}
		if err := secrets.WriteDBEnv(ctx, ssm.NewFromConfig(awsCfg), dbConfigOut); err != nil {
			return err
		}
		slog.Info("wrote database config", "file", dbConfigOut)
		return nil
	},
}

func init() {
	dbConfigCmd.Flags().StringVar(&dbConfigOut, "out", ".db.env", "dotenv file to write")
}
