package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	flagFormat  string
	flagNoColor bool
	flagAPIURL  string
)

var rootCmd = &cobra.Command{
	Use:   "userdeck",
	Short: "Account console for the userdeck platform",
	Long: `userdeck is the command-line console for a userdeck account: log in,
inspect and edit your profile, and (with an admin role) manage the
accounts of other users.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// ExecuteContext runs the root command with the given context.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "o", "text", "output format: text, json, yaml")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().StringVar(&flagAPIURL, "api-url", "", "override the API base URL")
}
