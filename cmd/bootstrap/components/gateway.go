package components

import (
	"log/slog"

	"parkflow/internal/infra/gateway"
	"parkflow/internal/pkg/clock"
	"parkflow/internal/pkg/config"
	"parkflow/internal/pkg/retry"
	"parkflow/internal/usecase/shared"

	"go.uber.org/fx"
)

var GatewayModule = fx.Module("gateway",
	fx.Provide(
		NewPaymentGateway,
	),
)

func NewPaymentGateway(cfg config.Config, store shared.ChargeStore, clk clock.Clock, logger *slog.Logger) shared.PaymentGateway {
	g := cfg.Gateway
	client := gateway.NewQRISClient(g.BaseURL, g.ServerKey, g.Timeout, logger)
	retrier := retry.New(retry.Policy{
		Attempts:  g.RetryAttempts,
		BaseDelay: g.RetryBaseDelay,
		MaxDelay:  g.RetryMaxDelay,
		Jitter:    g.RetryJitter,
	}, logger)
	breaker := gateway.NewBreaker(g.BreakerFailures, g.BreakerCooldown, clk)

	return gateway.NewAdapter(client, store, retrier, breaker, clk, logger, gateway.Options{
		ServerKey:    g.ServerKey,
		Currency:     g.Currency,
		PendingBatch: cfg.Reconcile.BatchSize,
	})
}
