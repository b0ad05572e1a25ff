package main

import (
	"github.com/spf13/cobra"

	"github.com/okian/dss/internal/cli"
)

var checkCmd = &cobra.Command{
	Use:   "check --url http://localhost:9080 (--countries a,b | --file data.csv)",
	Short: "Check a running server's payloads",
	Long: `Check calls a running dss server and verifies weights, score bounds, rank
order and chart shapes. With --file it also compares the server ranking with
the local engine.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("url", cli.DefaultBaseURL, "base URL of the server")
	checkCmd.Flags().StringSliceP("countries", "c", nil, "countries for /api/indicators")
	checkCmd.Flags().StringP("file", "f", "", "file for /api/upload")
	checkCmd.Flags().Duration("timeout", cli.DefaultTimeout, "HTTP request timeout")
	checkCmd.Flags().Int("retries", cli.DefaultRetries, "health probe retries")
	checkCmd.Flags().BoolP("verbose", "v", false, "print every violation")
	checkCmd.MarkFlagsOneRequired("countries", "file")
	checkCmd.MarkFlagsMutuallyExclusive("countries", "file")
}

func runCheck(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()
	cfg := &cli.Config{Year: yearFlag(cmd)}
	cfg.BaseURL, _ = flags.GetString("url")
	cfg.Countries, _ = flags.GetStringSlice("countries")
	cfg.File, _ = flags.GetString("file")
	cfg.Timeout, _ = flags.GetDuration("timeout")
	cfg.Retries, _ = flags.GetInt("retries")
	cfg.Verbose, _ = flags.GetBool("verbose")

	_, err := cli.Run(cmd.Context(), cfg, cmd.OutOrStdout())
	return err
}
