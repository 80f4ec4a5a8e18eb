package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ventas-crm/tracker/client"
	"github.com/ventas-crm/tracker/model"
	"github.com/ventas-crm/tracker/protocol"
)

// trackCommand 位置情報を定期送信する模擬クライアントコマンド
func trackCommand() *cobra.Command {
	var (
		wsURL    string
		token    string
		interval time.Duration
		jitter   time.Duration
		lat      float64
		lon      float64
		step     float64
	)

	cmd := cobra.Command{
		Use:   "track",
		Short: "Connect as a client and report simulated locations",
		Run: func(cmd *cobra.Command, args []string) {
			logger := getCLILogger()
			defer logger.Sync()

			identity, err := client.DecodeToken(token)
			if err != nil {
				logger.Fatal("failed to decode token", zap.Error(err))
			}
			logger.Info("identity decoded", zap.Int("userID", identity.UserID), zap.Stringer("role", identity.Role))

			a := client.NewAdapter(client.Config{
				URL:      wsURL,
				Identity: identity,
				Logger:   logger,
			}, client.Handlers{
				OnConnect: func(ack protocol.ConnectAck) {
					logger.Info("connected", zap.String("id", ack.ID), zap.Bool("authenticated", ack.Authenticated))
				},
				OnError: func(message string) {
					logger.Warn("server error", zap.String("message", message))
				},
				OnConnectError: func(err error) {
					logger.Warn("connect error", zap.Error(err))
				},
				OnConnectedUsers: func(counts model.ConnectedUsers) {
					logger.Info("connected users", zap.Int("total", counts.Total), zap.Int("employees", counts.Employees), zap.Int("admins", counts.Admins))
				},
				OnLocation: func(reading model.LocationReading, all []model.LocationReading) {
					logger.Info("location", zap.Int("userID", reading.UserID), zap.Float64("lat", reading.Latitude), zap.Float64("lon", reading.Longitude), zap.Int("tracked", len(all)))
				},
				OnSellerNotification: func(d model.DiscountDecision) {
					logger.Info("discount decision", zap.Int("customerID", d.CustomerID), zap.String("status", string(d.Status)))
				},
				OnCustomersUpdated: func(body protocol.CustomersUpdatedBody) {
					logger.Info("customers updated", zap.Int("customerID", body.CustomerID))
				},
			})

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			a.Open(ctx)
			defer a.Close()

			walk := client.NewRandomWalk(lat, lon, step, time.Now().UnixNano())
			_ = client.RunReporter(ctx, a, walk, interval, jitter, logger)
			logger.Info("stopped")
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&wsURL, "url", "ws://localhost:3000/api/ws", "websocket endpoint")
	flags.StringVar(&token, "token", "", "CRM session token")
	flags.DurationVar(&interval, "interval", 5*time.Second, "report interval")
	flags.DurationVar(&jitter, "jitter", 500*time.Millisecond, "report interval jitter (stdev)")
	flags.Float64Var(&lat, "lat", 19.4326, "initial latitude")
	flags.Float64Var(&lon, "lon", -99.1332, "initial longitude")
	flags.Float64Var(&step, "step", 0.0005, "max movement per report in degrees")
	_ = cmd.MarkFlagRequired("token")

	return &cmd
}
