package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/aeroxpay/credit-service/internal/domain/model"
)

// ---------------------------------------------------------------------------
// Model Composer – LLM-backed customer text with a deterministic fallback
// ---------------------------------------------------------------------------

// ModelComposerConfig holds configuration for the model-backed composer.
type ModelComposerConfig struct {
	APIKey    string
	Model     string
	MaxTokens int64
}

// TextClient is the minimal text-generation surface the composer needs.
// This enables testing with fake implementations.
type TextClient interface {
	Generate(ctx context.Context, system, prompt string) (string, error)
}

// NewTextClient creates a TextClient backed by the Anthropic SDK.
func NewTextClient(cfg ModelComposerConfig) TextClient {
	return &sdkTextClient{
		client:    sdk.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:     cfg.Model,
		maxTokens: cfg.MaxTokens,
	}
}

type sdkTextClient struct {
	client    sdk.Client
	model     string
	maxTokens int64
}

func (c *sdkTextClient) Generate(ctx context.Context, system, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, sdk.MessageNewParams{
		Model:     sdk.Model(c.model),
		MaxTokens: c.maxTokens,
		System:    []sdk.TextBlockParam{{Text: system}},
		Messages:  []sdk.MessageParam{sdk.NewUserMessage(sdk.NewTextBlock(prompt))},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", model.ErrMessageGeneration, err)
	}
	for _, block := range msg.Content {
		if block.Type == "text" && block.Text != "" {
			return block.Text, nil
		}
	}
	return "", fmt.Errorf("%w: response contains no text block", model.ErrMessageGeneration)
}

// ModelComposer renders customer messages with a language model, falling back
// to the template composer on any failure. Structure and every numeric term
// come from the computed results; the model only provides phrasing, so a
// fallback changes tone, never substance.
type ModelComposer struct {
	client   TextClient
	fallback *TemplateComposer
	logger   *slog.Logger
}

// NewModelComposer creates the composer. The fallback is mandatory.
func NewModelComposer(client TextClient, fallback *TemplateComposer, logger *slog.Logger) *ModelComposer {
	return &ModelComposer{
		client:   client,
		fallback: fallback,
		logger:   logger,
	}
}

const composerSystemPrompt = `You write short WhatsApp-style messages for a B2B travel payments platform negotiating booking credit terms. Use every numeric figure from the input exactly as given. Never invent amounts, dates, percentages or terms. Keep it under 120 words, warm and professional.`

// ComposeOptionsMessage renders the options message.
// It implements port.MessageComposer.
func (c *ModelComposer) ComposeOptionsMessage(
	ctx context.Context,
	req model.BookingRequest,
	scores model.ScorePacket,
	options []model.TermOption,
) (model.CustomerMessage, error) {
	template, err := c.fallback.ComposeOptionsMessage(ctx, req, scores, options)
	if err != nil {
		return model.CustomerMessage{}, err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Rewrite the following credit options message. Keep every option letter, amount and day count exactly as written.\n\n%s", template.Body)

	body, err := c.client.Generate(ctx, composerSystemPrompt, b.String())
	if err != nil {
		c.logger.Warn("model composer failed, using template", "error", err)
		return template, nil
	}
	return model.CustomerMessage{
		Subject:    template.Subject,
		Body:       body,
		CTAButtons: template.CTAButtons,
	}, nil
}

// ComposeNegotiationReply renders one negotiation turn reply.
// It implements port.MessageComposer.
func (c *ModelComposer) ComposeNegotiationReply(
	ctx context.Context,
	session model.NegotiationSession,
	turn model.TurnRecord,
) (string, error) {
	template, err := c.fallback.ComposeNegotiationReply(ctx, session, turn)
	if err != nil {
		return "", err
	}

	prompt := fmt.Sprintf(
		"The customer wrote: %q\n\nRewrite our reply below in a natural conversational tone. Keep every amount and day count exactly as written.\n\n%s",
		turn.CustomerMessage, template,
	)
	reply, err := c.client.Generate(ctx, composerSystemPrompt, prompt)
	if err != nil {
		c.logger.Warn("model composer failed, using template", "error", err)
		return template, nil
	}
	return reply, nil
}
