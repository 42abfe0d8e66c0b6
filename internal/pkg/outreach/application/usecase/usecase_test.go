package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/sernur/SalesShortcut/internal/pkg/outreach/elevenlabs"
	"github.com/sernur/SalesShortcut/internal/pkg/outreach/phone"
)

type fakeDialer struct {
	conv     *elevenlabs.Conversation
	startErr error
	waitErr  error
	toNumber string
	prompt   string
}

func (d *fakeDialer) StartCall(_ context.Context, req elevenlabs.CallRequest) (string, error) {
	if d.startErr != nil {
		return "", d.startErr
	}
	d.toNumber = req.ToNumber
	d.prompt = req.Prompt
	return "conv-1", nil
}

func (d *fakeDialer) WaitForConversation(context.Context, string) (*elevenlabs.Conversation, error) {
	return d.conv, d.waitErr
}

type fakeLLM struct {
	answer string
	err    error
	prompt string
}

func (f *fakeLLM) Generate(_ context.Context, prompt string) (string, error) {
	f.prompt = prompt
	return f.answer, f.err
}

func callInput() MakeCallInput {
	return MakeCallInput{
		BusinessID: "biz-1",
		Name:       "Joe's Diner",
		City:       "Boise",
		Phone:      "(555) 123-4567",
		Objective:  "pitch a demo website",
	}
}

func TestMakeCall_RejectsBadNumber(t *testing.T) {
	uc := NewMakeCallUseCase(nil, nil, zap.NewNop())
	in := callInput()
	in.Phone = "0123"

	_, err := uc.Execute(context.Background(), in)
	assert.ErrorIs(t, err, phone.ErrInvalid)
}

func TestMakeCall_SimulatesWithoutDialer(t *testing.T) {
	uc := NewMakeCallUseCase(nil, nil, zap.NewNop())

	result, err := uc.Execute(context.Background(), callInput())
	require.NoError(t, err)
	assert.True(t, result.Simulated)
	assert.Equal(t, OutcomeInterested, result.Outcome)
	assert.NotEmpty(t, result.Transcript)
}

func TestMakeCall_ClassifiesTranscript(t *testing.T) {
	dialer := &fakeDialer{conv: &elevenlabs.Conversation{
		Status: "done",
		Transcript: []elevenlabs.TranscriptTurn{
			{Role: "agent", Message: "Would you like a free demo website?"},
			{Role: "user", Message: "No thanks, we are fine without one."},
		},
	}}
	llm := &fakeLLM{answer: "not_interested"}
	uc := NewMakeCallUseCase(dialer, llm, zap.NewNop())

	result, err := uc.Execute(context.Background(), callInput())
	require.NoError(t, err)
	assert.Equal(t, "+15551234567", dialer.toNumber, "number is normalized before dialing")
	assert.Contains(t, dialer.prompt, "Joe's Diner")
	assert.Equal(t, OutcomeNotInterested, result.Outcome)
	assert.False(t, result.Simulated)
}

func TestMakeCall_SimulatesOnProviderFailure(t *testing.T) {
	t.Run("dial error", func(t *testing.T) {
		dialer := &fakeDialer{startErr: errors.New("telephony is down")}
		uc := NewMakeCallUseCase(dialer, nil, zap.NewNop())

		result, err := uc.Execute(context.Background(), callInput())
		require.NoError(t, err)
		assert.True(t, result.Simulated)
		assert.Equal(t, OutcomeInterested, result.Outcome)
	})

	t.Run("wait error", func(t *testing.T) {
		dialer := &fakeDialer{waitErr: errors.New("conversation lost")}
		uc := NewMakeCallUseCase(dialer, nil, zap.NewNop())

		result, err := uc.Execute(context.Background(), callInput())
		require.NoError(t, err)
		assert.True(t, result.Simulated)
	})
}

func TestMakeCall_FailedCallIsNoAnswer(t *testing.T) {
	dialer := &fakeDialer{conv: &elevenlabs.Conversation{Status: "failed"}}
	uc := NewMakeCallUseCase(dialer, nil, zap.NewNop())

	result, err := uc.Execute(context.Background(), callInput())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoAnswer, result.Outcome)
}

func TestClassify_HeuristicsOrderNotInterestedFirst(t *testing.T) {
	uc := NewMakeCallUseCase(nil, nil, zap.NewNop())
	assert.Equal(t, OutcomeNotInterested, uc.classify(context.Background(), "user: I am not interested."))
	assert.Equal(t, OutcomeInterested, uc.classify(context.Background(), "user: yes, very interested!"))
	assert.Equal(t, OutcomeNoAnswer, uc.classify(context.Background(), "user: [silence]"))
}

type fakeMailer struct {
	sent []*gomail.Message
	err  error
}

func (m *fakeMailer) DialAndSend(msgs ...*gomail.Message) error {
	m.sent = append(m.sent, msgs...)
	return m.err
}

func emailInput() SendEmailInput {
	return SendEmailInput{
		BusinessID: "biz-1",
		Name:       "Joe's Diner",
		City:       "Boise",
		To:         "joe@example.com",
		EmailType:  EmailTypeOutreach,
	}
}

func TestSendEmail_RequiresRecipient(t *testing.T) {
	uc := NewSendEmailUseCase(nil, nil, "sales@example.com", zap.NewNop())
	in := emailInput()
	in.To = ""

	_, err := uc.Execute(context.Background(), in)
	assert.Error(t, err)
}

func TestSendEmail_TemplatePersonalization(t *testing.T) {
	mailer := &fakeMailer{}
	uc := NewSendEmailUseCase(mailer, nil, "sales@example.com", zap.NewNop())

	result, err := uc.Execute(context.Background(), emailInput())
	require.NoError(t, err)
	assert.Equal(t, "A website for Joe's Diner", result.Subject)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, []string{"joe@example.com"}, mailer.sent[0].GetHeader("To"))
}

func TestSendEmail_ModelDraftFromObjective(t *testing.T) {
	llm := &fakeLLM{answer: "Hi Joe, quick note about a free demo website. SalesShortcut"}
	uc := NewSendEmailUseCase(&fakeMailer{}, llm, "sales@example.com", zap.NewNop())

	in := emailInput()
	in.Objective = "offer a free website demo"
	_, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Contains(t, llm.prompt, "Joe's Diner")
	assert.Contains(t, llm.prompt, "offer a free website demo")
}

func TestSendEmail_SimulatesWithoutSMTP(t *testing.T) {
	uc := NewSendEmailUseCase(nil, nil, "sales@example.com", zap.NewNop())

	result, err := uc.Execute(context.Background(), emailInput())
	require.NoError(t, err)
	assert.True(t, result.Simulated)
}

func TestSendEmail_UnknownTypeFallsBackToOutreach(t *testing.T) {
	uc := NewSendEmailUseCase(nil, nil, "sales@example.com", zap.NewNop())
	in := emailInput()
	in.EmailType = "newsletter"

	result, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, "A website for Joe's Diner", result.Subject)
}
