package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	service "github.com/okian/dss/internal/app"
	"github.com/okian/dss/internal/report"
)

var compareCmd = &cobra.Command{
	Use:   "compare --file data.csv",
	Short: "Score a local CSV or JSON file",
	Long:  `Compare parses a CSV or JSON upload the same way the server does and ranks its countries.`,
	Args:  cobra.NoArgs,
	RunE:  runCompare,
}

func init() {
	compareCmd.Flags().StringP("file", "f", "", "CSV or JSON file to score")
	_ = compareCmd.MarkFlagRequired("file")
}

func runCompare(cmd *cobra.Command, _ []string) error {
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}

	path, _ := cmd.Flags().GetString("file")
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	payload, err := service.New().CompareUpload(cmd.Context(), data, filepath.Base(path), "", yearFlag(cmd))
	if err != nil {
		return err
	}
	return report.Write(cmd.OutOrStdout(), payload, format)
}
