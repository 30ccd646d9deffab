// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package subscription

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Event is a decoded billing-provider lifecycle event. The payload is a
// tagged variant per event kind; unknown kinds decode to Unknown so they
// are an explicitly handled case rather than a silent drop or a crash.
type Event struct {
	ID      string
	Created int64
	Payload Payload
}

type Payload interface {
	isPayload()
	Kind() string
}

// CheckoutCompleted: the customer finished checkout; an incomplete
// subscription becomes trialing or active.
type CheckoutCompleted struct {
	SubscriptionID string    `json:"subscription_id" validate:"required"`
	OrganizationID string    `json:"organization_id" validate:"required"`
	PlanType       string    `json:"plan_type" validate:"required"`
	Trial          bool      `json:"trial"`
	PeriodEnd      time.Time `json:"period_end"`
}

type SubscriptionCreated struct {
	SubscriptionID string    `json:"subscription_id" validate:"required"`
	OrganizationID string    `json:"organization_id" validate:"required"`
	PlanType       string    `json:"plan_type" validate:"required"`
	Status         string    `json:"status" validate:"required"`
	PeriodEnd      time.Time `json:"period_end"`
}

type SubscriptionUpdated struct {
	SubscriptionID string    `json:"subscription_id" validate:"required"`
	PlanType       string    `json:"plan_type"`
	Status         string    `json:"status" validate:"required"`
	PeriodEnd      time.Time `json:"period_end"`
}

type SubscriptionDeleted struct {
	SubscriptionID string `json:"subscription_id" validate:"required"`
}

type InvoicePaid struct {
	SubscriptionID string    `json:"subscription_id" validate:"required"`
	PeriodEnd      time.Time `json:"period_end"`
}

type InvoicePaymentFailed struct {
	SubscriptionID string `json:"subscription_id" validate:"required"`
	// Final marks the last dunning attempt; the subscription cancels.
	Final bool `json:"final"`
}

type Unknown struct {
	Type string
}

func (CheckoutCompleted) isPayload()    {}
func (SubscriptionCreated) isPayload()  {}
func (SubscriptionUpdated) isPayload()  {}
func (SubscriptionDeleted) isPayload()  {}
func (InvoicePaid) isPayload()          {}
func (InvoicePaymentFailed) isPayload() {}
func (Unknown) isPayload()              {}

func (CheckoutCompleted) Kind() string    { return "checkout.completed" }
func (SubscriptionCreated) Kind() string  { return "subscription.created" }
func (SubscriptionUpdated) Kind() string  { return "subscription.updated" }
func (SubscriptionDeleted) Kind() string  { return "subscription.deleted" }
func (InvoicePaid) Kind() string          { return "invoice.paid" }
func (InvoicePaymentFailed) Kind() string { return "invoice.payment_failed" }
func (u Unknown) Kind() string            { return u.Type }

type envelope struct {
	ID      string          `json:"id" validate:"required"`
	Type    string          `json:"type" validate:"required"`
	Created int64           `json:"created" validate:"required,gt=0"`
	Data    json.RawMessage `json:"data"`
}

var validate = validator.New()

// DecodeEvent parses and validates a raw webhook body into an Event.
func DecodeEvent(body []byte) (*Event, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("malformed event envelope: %w", err)
	}
	if err := validate.Struct(&env); err != nil {
		return nil, fmt.Errorf("invalid event envelope: %w", err)
	}

	payload, err := decodePayload(env.Type, env.Data)
	if err != nil {
		return nil, err
	}

	return &Event{
		ID:      env.ID,
		Created: env.Created,
		Payload: payload,
	}, nil
}

func decodePayload(eventType string, data json.RawMessage) (Payload, error) {
	var p Payload
	switch eventType {
	case "checkout.completed":
		p = &CheckoutCompleted{}
	case "subscription.created":
		p = &SubscriptionCreated{}
	case "subscription.updated":
		p = &SubscriptionUpdated{}
	case "subscription.deleted":
		p = &SubscriptionDeleted{}
	case "invoice.paid":
		p = &InvoicePaid{}
	case "invoice.payment_failed":
		p = &InvoicePaymentFailed{}
	default:
		return Unknown{Type: eventType}, nil
	}

	if err := json.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("malformed %s payload: %w", eventType, err)
	}
	if err := validate.Struct(p); err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", eventType, err)
	}

	return deref(p), nil
}

// deref unwraps the pointer used for unmarshalling so payloads are
// compared and switched on by value.
func deref(p Payload) Payload {
	switch v := p.(type) {
	case *CheckoutCompleted:
		return *v
	case *SubscriptionCreated:
		return *v
	case *SubscriptionUpdated:
		return *v
	case *SubscriptionDeleted:
		return *v
	case *InvoicePaid:
		return *v
	case *InvoicePaymentFailed:
		return *v
	default:
		return p
	}
}
