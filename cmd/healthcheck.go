package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/router/consts"
)

// healthcheckCommand ヘルスチェックコマンド
func healthcheckCommand() *cobra.Command {
	var (
		host    string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "healthcheck",
		Short: "Check that the tracker server answers ping",
		Run: func(_ *cobra.Command, _ []string) {
			logger := getCLILogger()
			defer logger.Sync()

			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()
			version, err := checkHealth(ctx, http.DefaultClient, fmt.Sprintf("http://%s:%d/api/ping", host, c.Port))
			if err != nil {
				logger.Fatal("healthcheck failed", zap.Error(err))
			}
			logger.Debug("healthy", zap.String("version", version))
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&host, "host", "localhost", "tracker server host")
	flags.DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")
	return cmd
}

// checkHealth pingエンドポイントを叩き、サーバーが返したバージョンを返します
func checkHealth(ctx context.Context, client *http.Client, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	res, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", res.StatusCode)
	}
	return res.Header.Get(consts.HeaderVersion), nil
}
