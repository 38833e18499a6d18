package adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/aeroxpay/credit-service/internal/domain/model"
	"github.com/aeroxpay/credit-service/internal/domain/valueobject"
)

// ---------------------------------------------------------------------------
// Template Composer – deterministic customer-facing text
// ---------------------------------------------------------------------------

// TemplateComposer renders customer messages from fixed templates. It never
// fails, which makes it both the standalone composer and the fallback behind
// the model-backed one. Every number in the output is taken verbatim from
// the structures passed in.
type TemplateComposer struct{}

// NewTemplateComposer creates the composer.
func NewTemplateComposer() *TemplateComposer {
	return &TemplateComposer{}
}

// ComposeOptionsMessage renders the options message.
// It implements port.MessageComposer.
func (c *TemplateComposer) ComposeOptionsMessage(
	_ context.Context,
	req model.BookingRequest,
	_ model.ScorePacket,
	options []model.TermOption,
) (model.CustomerMessage, error) {
	name := req.CompanyName()
	if name == "" {
		name = req.CompanyID()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s, we reviewed your booking of ₹%s", name, req.BookingAmount().StringFixed(2))
	if req.Route() != "" {
		fmt.Fprintf(&b, " for %s", req.Route())
	}
	b.WriteString(". We can proceed with one of the following arrangements:\n")

	buttons := make([]string, 0, len(options)+1)
	for _, opt := range options {
		fmt.Fprintf(&b, "\nOption %s: %s", opt.ID, opt.Description)
		buttons = append(buttons, fmt.Sprintf("Choose %s", opt.ID))
	}
	b.WriteString("\n\nReply with your preferred option, or tell us what works for you.")
	buttons = append(buttons, "Talk to support")

	return model.CustomerMessage{
		Subject:    fmt.Sprintf("Credit options for your ₹%s booking", req.BookingAmount().StringFixed(0)),
		Body:       b.String(),
		CTAButtons: buttons,
	}, nil
}

// ComposeNegotiationReply renders one negotiation turn reply.
// It implements port.MessageComposer.
func (c *TemplateComposer) ComposeNegotiationReply(
	_ context.Context,
	session model.NegotiationSession,
	turn model.TurnRecord,
) (string, error) {
	switch {
	case session.State().Equal(valueobject.SessionStateAgreed) && turn.Offer != nil:
		return fmt.Sprintf(
			"Great, we have a deal: ₹%s upfront with settlement in %d days for an approved amount of ₹%s. You will receive the confirmation shortly.",
			turn.Offer.UpfrontAmount.StringFixed(2),
			turn.Offer.SettlementDays,
			turn.Offer.ApprovedAmount.StringFixed(2),
		), nil

	case turn.Escalate && turn.Offer != nil:
		return fmt.Sprintf(
			"This is the closest we can get: ₹%s upfront with settlement in %d days. We have looped in our credit desk (ref %s) to take it from here.",
			turn.Offer.UpfrontAmount.StringFixed(2),
			turn.Offer.SettlementDays,
			sessionRef(session),
		), nil

	case turn.Escalate:
		return fmt.Sprintf(
			"We could not find terms matching your constraints within our risk limits. Our credit desk (ref %s) will reach out to work this out personally.",
			sessionRef(session),
		), nil

	case turn.Offer != nil && turn.Offer.UpfrontAmount.IsZero():
		return fmt.Sprintf(
			"How about settlement in %d days with no upfront payment? That works within our risk limits for the full ₹%s.",
			turn.Offer.SettlementDays,
			turn.Offer.ApprovedAmount.StringFixed(2),
		), nil

	case turn.Offer != nil:
		return fmt.Sprintf(
			"How about ₹%s upfront with settlement in %d days? That keeps the full ₹%s approved.",
			turn.Offer.UpfrontAmount.StringFixed(2),
			turn.Offer.SettlementDays,
			turn.Offer.ApprovedAmount.StringFixed(2),
		), nil

	default:
		return "Thanks, give us a moment to review your request.", nil
	}
}

// sessionRef derives a short human-readable reference from the session ID.
func sessionRef(session model.NegotiationSession) string {
	id := session.ID()
	if len(id) > 8 {
		id = id[:8]
	}
	return strings.ToUpper(id)
}
