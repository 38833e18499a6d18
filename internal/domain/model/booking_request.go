package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ---------------------------------------------------------------------------
// BookingRequest aggregate root
// ---------------------------------------------------------------------------

// BookingRequest is an immutable credit/booking request. It is never mutated
// after submission; negotiation state lives in NegotiationSession.
type BookingRequest struct {
	id                 string
	companyID          string
	companyName        string
	bookingAmount      decimal.Decimal
	currentOutstanding decimal.Decimal
	creditLimit        decimal.Decimal
	route              string
	bookingDate        time.Time
	settlementDays     int
	createdAt          time.Time
}

// NewBookingRequest validates and creates a booking request.
// settlementDays is the request's standard settlement horizon; zero selects
// the 30-day standard terms.
func NewBookingRequest(
	companyID, companyName string,
	bookingAmount, currentOutstanding, creditLimit decimal.Decimal,
	route string,
	bookingDate time.Time,
	settlementDays int,
	now time.Time,
) (BookingRequest, error) {
	if companyID == "" {
		return BookingRequest{}, fmt.Errorf("%w: company ID is required", ErrInvalidInput)
	}
	if bookingAmount.LessThanOrEqual(decimal.Zero) {
		return BookingRequest{}, fmt.Errorf("%w: booking amount must be positive", ErrInvalidInput)
	}
	if currentOutstanding.IsNegative() {
		return BookingRequest{}, fmt.Errorf("%w: outstanding balance must not be negative", ErrInvalidInput)
	}
	if creditLimit.IsNegative() {
		return BookingRequest{}, fmt.Errorf("%w: credit limit must not be negative", ErrInvalidInput)
	}
	if settlementDays < 0 {
		return BookingRequest{}, fmt.Errorf("%w: settlement days must not be negative", ErrInvalidInput)
	}
	if settlementDays == 0 {
		settlementDays = StandardHorizonDays
	}

	return BookingRequest{
		id:                 uuid.New().String(),
		companyID:          companyID,
		companyName:        companyName,
		bookingAmount:      bookingAmount,
		currentOutstanding: currentOutstanding,
		creditLimit:        creditLimit,
		route:              route,
		bookingDate:        bookingDate,
		settlementDays:     settlementDays,
		createdAt:          now,
	}, nil
}

// ReconstructBookingRequest rebuilds a request from external data without
// re-generating its identifier.
func ReconstructBookingRequest(
	id, companyID, companyName string,
	bookingAmount, currentOutstanding, creditLimit decimal.Decimal,
	route string,
	bookingDate time.Time,
	settlementDays int,
	createdAt time.Time,
) BookingRequest {
	return BookingRequest{
		id:                 id,
		companyID:          companyID,
		companyName:        companyName,
		bookingAmount:      bookingAmount,
		currentOutstanding: currentOutstanding,
		creditLimit:        creditLimit,
		route:              route,
		bookingDate:        bookingDate,
		settlementDays:     settlementDays,
		createdAt:          createdAt,
	}
}

// ID returns the request identifier.
func (r BookingRequest) ID() string { return r.id }

// CompanyID returns the counterparty identifier.
func (r BookingRequest) CompanyID() string { return r.companyID }

// CompanyName returns the counterparty display name.
func (r BookingRequest) CompanyName() string { return r.companyName }

// BookingAmount returns the requested amount.
func (r BookingRequest) BookingAmount() decimal.Decimal { return r.bookingAmount }

// CurrentOutstanding returns the pre-existing outstanding balance.
func (r BookingRequest) CurrentOutstanding() decimal.Decimal { return r.currentOutstanding }

// CreditLimit returns the counterparty's pre-existing credit limit.
func (r BookingRequest) CreditLimit() decimal.Decimal { return r.creditLimit }

// Route returns the booked route.
func (r BookingRequest) Route() string { return r.route }

// BookingDate returns the travel/booking date.
func (r BookingRequest) BookingDate() time.Time { return r.bookingDate }

// SettlementDays returns the request's standard settlement horizon.
func (r BookingRequest) SettlementDays() int { return r.settlementDays }

// CreatedAt returns the submission time.
func (r BookingRequest) CreatedAt() time.Time { return r.createdAt }
