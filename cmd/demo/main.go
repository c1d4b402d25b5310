// Command demo sends one payment per supported method, either to a running
// payment router or through an in-process controller.
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"payment-router/config"
	"payment-router/latency"
	"payment-router/logging"
	"payment-router/models"
	"payment-router/processor"
	"payment-router/sample"
	"payment-router/service"
)

func main() {
	target := flag.String("target", "http://localhost:8081", "payment router base URL")
	rounds := flag.Int("n", 1, "number of rounds; each round covers every payment method")
	local := flag.Bool("local", false, "process payments in-process instead of over HTTP")
	seed := flag.Uint64("seed", uint64(time.Now().UnixNano()), "sample data seed")
	flag.Parse()

	cfg := config.Load()
	if err := logging.InitLogger(cfg.LogLevel, ""); err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer logging.Sync()

	send := httpSender(*target)
	if *local {
		send = localSender(cfg)
	}

	gen := sample.NewGenerator(*seed)
	for i := 0; i < *rounds; i++ {
		reqs, err := gen.Round()
		if err != nil {
			logging.Fatal("Failed to build sample requests", zap.Error(err))
		}

		for _, req := range reqs {
			logging.Info("Sending payment request", zap.Int("round", i+1))
			outcome, err := send(context.Background(), req)
			if err != nil {
				logging.Error("Payment request failed", zap.Error(err))
				continue
			}
			logging.Info("Payment request processed",
				zap.String("transaction_id", outcome.TransactionID),
				zap.String("method", outcome.Method),
				zap.String("value", outcome.Value.String()),
			)
		}
	}
}

type sender func(context.Context, *models.PaymentRequest) (*models.PaymentOutcome, error)

func localSender(cfg *config.Config) sender {
	rt := processor.NewRuntime(
		processor.WithDelayer(latency.Timer{}),
		processor.WithStepDelay(cfg.StepDelay),
	)
	controller := service.NewPaymentController(service.NewPaymentService(otel.Tracer("demo")), rt)
	return controller.Handle
}

func httpSender(target string) sender {
	client := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
		Timeout:   30 * time.Second,
	}

	return func(ctx context.Context, req *models.PaymentRequest) (*models.PaymentOutcome, error) {
		body, err := json.Marshal(req)
		if err != nil {
			return nil, err
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, target+"/api/payments", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := client.Do(httpReq)
		if err != nil {
			return nil, fmt.Errorf("failed to call payment router: %w", err)
		}
		defer resp.Body.Close()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}

		if resp.StatusCode != http.StatusOK {
			var errResp models.ErrorResponse
			if err := json.Unmarshal(data, &errResp); err == nil && errResp.Code != "" {
				return nil, fmt.Errorf("payment router returned status %d: %s (%s)", resp.StatusCode, errResp.Error, errResp.Code)
			}
			return nil, fmt.Errorf("payment router returned status %d", resp.StatusCode)
		}

		var outcome models.PaymentOutcome
		if err := json.Unmarshal(data, &outcome); err != nil {
			return nil, err
		}
		return &outcome, nil
	}
}
