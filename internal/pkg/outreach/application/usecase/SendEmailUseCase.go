package usecase

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/sernur/SalesShortcut/internal/infrastructure/llm"
)

// MailSender delivers a composed message. *gomail.Dialer satisfies it.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Email types the SDR and lead manager may request.
const (
	EmailTypeOutreach      = "outreach"
	EmailTypeFollowUp      = "follow_up"
	EmailTypeMeetingInvite = "meeting_invite"
)

// SendEmailInput describes one email. When Body is empty a body is drafted
// from the objective and the type template.
type SendEmailInput struct {
	BusinessID string
	Name       string
	City       string
	To         string
	Subject    string
	Body       string
	Objective  string
	EmailType  string
}

// EmailResult is what the caller gets back.
type EmailResult struct {
	Outcome   string `json:"outcome"`
	Subject   string `json:"subject"`
	Simulated bool   `json:"simulated"`
}

type emailTemplate struct {
	subject string
	body    string
}

// Templates personalize on {name} and {city}.
var emailTemplates = map[string]emailTemplate{
	EmailTypeOutreach: {
		subject: "A website for {name}",
		body: "Hi {name},\n\nWe noticed {name} in {city} does not have a website yet. " +
			"We build affordable sites for local businesses and would love to show you a free demo.\n\n" +
			"Would you be open to a quick call this week?\n\nBest regards,\nSalesShortcut",
	},
	EmailTypeFollowUp: {
		subject: "Following up on your website demo",
		body: "Hi {name},\n\nJust following up on our earlier conversation about a website for {name}. " +
			"The demo is ready whenever you are.\n\nBest regards,\nSalesShortcut",
	},
	EmailTypeMeetingInvite: {
		subject: "Scheduling our meeting",
		body: "Hi {name},\n\nThanks for your interest! I would like to schedule a short meeting to walk " +
			"through the website demo for {name}. A calendar invitation follows separately.\n\nBest regards,\nSalesShortcut",
	},
}

// SendEmailUseCase composes and delivers outreach email. Without SMTP the
// send is simulated; without a model the drafting falls back to templates.
type SendEmailUseCase struct {
	Mail   MailSender
	LLM    llm.Generator
	From   string
	Logger *zap.Logger
}

func NewSendEmailUseCase(mail MailSender, gen llm.Generator, from string, logger *zap.Logger) *SendEmailUseCase {
	return &SendEmailUseCase{Mail: mail, LLM: gen, From: from, Logger: logger}
}

// Execute composes the message and sends it.
func (uc *SendEmailUseCase) Execute(ctx context.Context, in SendEmailInput) (*EmailResult, error) {
	if in.To == "" {
		return nil, fmt.Errorf("usecase: email %s: recipient is required", in.BusinessID)
	}

	subject, body := uc.compose(ctx, in)

	if uc.Mail == nil {
		uc.Logger.Info("email simulated, no SMTP configured",
			zap.String("business_id", in.BusinessID),
			zap.String("to", in.To),
			zap.String("subject", subject),
		)
		return &EmailResult{Outcome: "sent", Subject: subject, Simulated: true}, nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", uc.From)
	m.SetHeader("To", in.To)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := uc.Mail.DialAndSend(m); err != nil {
		return nil, fmt.Errorf("usecase: send email to %s: %w", in.To, err)
	}
	uc.Logger.Info("email sent", zap.String("business_id", in.BusinessID), zap.String("to", in.To))
	return &EmailResult{Outcome: "sent", Subject: subject}, nil
}

// compose resolves the subject and body: explicit input wins, then a model
// draft from the objective, then the type template.
func (uc *SendEmailUseCase) compose(ctx context.Context, in SendEmailInput) (string, string) {
	tpl, ok := emailTemplates[in.EmailType]
	if !ok {
		tpl = emailTemplates[EmailTypeOutreach]
	}

	subject := in.Subject
	if subject == "" {
		subject = personalize(tpl.subject, in)
	}

	if in.Body != "" {
		return subject, personalize(in.Body, in)
	}

	if uc.LLM != nil && in.Objective != "" {
		prompt := fmt.Sprintf(
			"Write a short, friendly plain-text sales email to %s, a local business in %s. Goal: %s. "+
				"No subject line, no markdown, at most 120 words, signed 'SalesShortcut'.",
			in.Name, in.City, in.Objective,
		)
		if draft, err := uc.LLM.Generate(ctx, prompt); err == nil {
			return subject, draft
		} else {
			uc.Logger.Warn("email drafting fell back to template", zap.Error(err))
		}
	}

	return subject, personalize(tpl.body, in)
}

func personalize(text string, in SendEmailInput) string {
	r := strings.NewReplacer("{name}", in.Name, "{city}", in.City)
	return r.Replace(text)
}
