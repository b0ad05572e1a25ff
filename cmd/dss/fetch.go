package main

import (
	"github.com/spf13/cobra"

	service "github.com/okian/dss/internal/app"
	"github.com/okian/dss/internal/report"
	"github.com/okian/dss/pkg/logger"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch --countries Colombia,Chile",
	Short: "Fetch World Bank indicators and rank the countries",
	Long: `Fetch resolves each country name, downloads usage, bandwidth and fixed
broadband series from the World Bank API and ranks the result. Upstream and
cache settings come from DSS_CONFIG and DSS_* variables.`,
	Args: cobra.NoArgs,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().StringSliceP("countries", "c", nil, "comma separated country names or ISO-3 codes")
	_ = fetchCmd.MarkFlagRequired("countries")
}

func runFetch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	format, err := outputFormat(cmd)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	names, _ := cmd.Flags().GetStringSlice("countries")

	svc := service.New(
		service.WithLogger(logger.Named("service")),
		service.WithMaxCountries(cfg.MaxCountries),
		service.WithUpstream(cfg.WDIBaseURL, cfg.UpstreamTimeout(), cfg.UpstreamRetries, cfg.BreakerFailures),
		service.WithFetchConcurrency(cfg.FetchConcurrency),
		service.WithCache(cfg.CacheBackend, cfg.CacheSize, cfg.CacheTTL()),
		service.WithRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB),
	)
	if err := svc.Start(ctx); err != nil {
		return err
	}
	defer svc.Stop()

	payload, err := svc.Compare(ctx, names, yearFlag(cmd))
	if err != nil {
		return err
	}

	if res := payload.Meta.Resolved; res != nil {
		for _, code := range res.Resolved {
			logger.Get().Info(ctx, "resolved country",
				logger.String("iso3", code),
				logger.String("year", res.PerCountryYear[code]),
				logger.String("speedSource", res.SpeedSource[code]))
		}
	}
	return report.Write(cmd.OutOrStdout(), payload, format)
}
