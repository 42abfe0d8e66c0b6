// The outreach binary executes first-touch contact on behalf of the SDR:
// AI phone calls through ElevenLabs and outreach email over SMTP. Both
// channels degrade to simulation when their credentials are absent, so the
// demo pipeline runs without external accounts.
package main

import (
	"context"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/sernur/SalesShortcut/internal/a2a"
	"github.com/sernur/SalesShortcut/internal/config"
	"github.com/sernur/SalesShortcut/internal/infrastructure/llm"
	"github.com/sernur/SalesShortcut/internal/logging"
	"github.com/sernur/SalesShortcut/internal/pkg/outreach/application/usecase"
	"github.com/sernur/SalesShortcut/internal/pkg/outreach/elevenlabs"
	"github.com/sernur/SalesShortcut/internal/pkg/outreach/presentation/agent"
	"github.com/sernur/SalesShortcut/internal/service"
)

func main() {
	flags := service.ParseFlags(config.DefaultOutreachPort)
	logger := logging.New("outreach")
	defer func() { _ = logger.Sync() }()

	var gen llm.Generator
	if g, err := llm.NewGeminiFromEnv(context.Background()); err != nil {
		logger.Warn("drafting and classification run on templates", zap.Error(err))
	} else {
		gen = g
	}

	var dialer usecase.Dialer
	if d, err := elevenlabs.NewFromEnv(); err != nil {
		logger.Warn("calls will be simulated", zap.Error(err))
	} else {
		dialer = d
	}

	callUC := usecase.NewMakeCallUseCase(dialer, gen, logger)
	emailUC := usecase.NewSendEmailUseCase(newMailer(logger), gen, fromAddress(), logger)

	r := gin.Default()
	a2a.RegisterRoutes(r, "outreach", agent.NewExecutor(callUC, emailUC), logger)

	if err := service.Serve(r, flags, logger); err != nil {
		logger.Fatal("outreach stopped", zap.Error(err))
	}
}

func fromAddress() string {
	if v := os.Getenv("SMTP_FROM"); v != "" {
		return v
	}
	return os.Getenv("SMTP_USERNAME")
}

// newMailer wires SMTP from SMTP_HOST/SMTP_PORT/SMTP_USERNAME/SMTP_PASSWORD.
func newMailer(logger *zap.Logger) usecase.MailSender {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		logger.Warn("emails will be simulated, SMTP_HOST not set")
		return nil
	}
	port := 587
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			port = i
		}
	}
	return gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
}
