package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		if flagFormat == "text" {
			fmt.Printf("%-12s %s\n", "API URL:", app.cfg.APIURL)
			fmt.Printf("%-12s %s\n", "Timeout:", app.cfg.Timeout)
			fmt.Printf("%-12s %s\n", "Log level:", app.cfg.LogLevel)
			fmt.Printf("%-12s %s\n", "Home:", app.cfg.Home())
			return nil
		}

		f, err := formatter()
		if err != nil {
			return err
		}
		return f.Format(map[string]string{
			"api_url":   app.cfg.APIURL,
			"timeout":   app.cfg.Timeout.String(),
			"log_level": app.cfg.LogLevel,
			"home":      app.cfg.Home(),
		})
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check connectivity to the API host",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}

		start := time.Now()
		if err := app.client.Health(cmd.Context()); err != nil {
			return err
		}
		fmt.Printf("API reachable at %s (%s)\n", app.cfg.APIURL, time.Since(start).Round(time.Millisecond))

		if app.store.IsAuthenticated() {
			fmt.Println("Session: present")
		} else {
			fmt.Println("Session: none")
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(doctorCmd)
}
