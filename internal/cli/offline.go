package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hinewai/pathmap/pkg/status"
)

func (c *CLI) offlineCommand() *cobra.Command {
	var (
		url     string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "offline",
		Short: "List offline nodes reported by the monitoring dashboard",
		Long: `Offline scrapes the monitoring dashboard and prints every node it
currently reports as offline. Responses are cached briefly so repeated
invocations do not hammer the dashboard.`,
		Example: `  pathmap offline --url https://dashboard.example/status
  pathmap offline --url https://dashboard.example/status --no-cache`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" {
				cfg, err := c.loadConfig()
				if err != nil {
					return err
				}
				url = cfg.OfflineURL
			}
			if url == "" {
				return fmt.Errorf("dashboard URL is required (--url or pathmap.toml)")
			}
			return c.runOffline(cmd.Context(), url, noCache)
		},
	}

	cmd.Flags().StringVarP(&url, "url", "u", "", "monitoring dashboard URL")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the response cache")

	return cmd
}

func (c *CLI) runOffline(ctx context.Context, url string, noCache bool) error {
	cache := c.newCache(noCache)
	defer cache.Close()

	fetcher := status.NewDashboard(url, cache)

	spinner := newSpinnerWithContext(ctx, "querying dashboard...")
	spinner.Start()
	nodes, err := fetcher.Fetch(ctx)
	if err != nil {
		if spinner.Cancelled() {
			spinner.Stop()
			return ctx.Err()
		}
		spinner.StopWithError("dashboard query failed")
		return err
	}
	spinner.Stop()

	if len(nodes) == 0 {
		printSuccess("all nodes online")
		return nil
	}

	printWarning("%d nodes offline", len(nodes))
	for _, node := range nodes {
		printDetail("%s (%s)", node.Name, node.ID)
	}
	return nil
}
