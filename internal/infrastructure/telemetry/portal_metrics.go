package telemetry

import (
	"context"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// PortalMetrics bundles the business-level instruments the portal reports:
// alumni registrations, donations, event signups and post views.
type PortalMetrics struct {
	alumniRegistrations *Counter
	donationsCreated    *Counter
	donationsPaid       *Counter
	donationAmount      *Histogram
	eventRegistrations  *Counter
	postViews           *Counter
	paymentWebhooks     *Counter
}

// NewPortalMetrics creates all portal instruments on the given meter.
func NewPortalMetrics(meter metric.Meter) (*PortalMetrics, error) {
	alumniRegistrations, err := NewCounter(meter,
		"ikada.alumni.registrations",
		"Number of alumni registration submissions", "{registration}")
	if err != nil {
		return nil, err
	}

	donationsCreated, err := NewCounter(meter,
		"ikada.donations.created",
		"Number of donations created", "{donation}")
	if err != nil {
		return nil, err
	}

	donationsPaid, err := NewCounter(meter,
		"ikada.donations.paid",
		"Number of donations settled", "{donation}")
	if err != nil {
		return nil, err
	}

	donationAmount, err := NewHistogram(meter, HistogramOpts{
		Name:        "ikada.donations.amount",
		Description: "Settled donation amounts in IDR",
		Unit:        "{IDR}",
		Boundaries:  []float64{10_000, 50_000, 100_000, 500_000, 1_000_000, 5_000_000, 10_000_000},
	})
	if err != nil {
		return nil, err
	}

	eventRegistrations, err := NewCounter(meter,
		"ikada.events.registrations",
		"Number of event registrations", "{registration}")
	if err != nil {
		return nil, err
	}

	postViews, err := NewCounter(meter,
		"ikada.posts.views",
		"Number of post reads", "{view}")
	if err != nil {
		return nil, err
	}

	paymentWebhooks, err := NewCounter(meter,
		"ikada.payments.webhooks",
		"Number of payment gateway notifications processed", "{notification}")
	if err != nil {
		return nil, err
	}

	return &PortalMetrics{
		alumniRegistrations: alumniRegistrations,
		donationsCreated:    donationsCreated,
		donationsPaid:       donationsPaid,
		donationAmount:      donationAmount,
		eventRegistrations:  eventRegistrations,
		postViews:           postViews,
		paymentWebhooks:     paymentWebhooks,
	}, nil
}

// RecordAlumniRegistration counts one registration submission.
func (m *PortalMetrics) RecordAlumniRegistration(ctx context.Context, syubiyahID string) {
	m.alumniRegistrations.Inc(ctx, AttrSyubiyahID.String(syubiyahID))
}

// RecordDonationCreated counts one new donation.
func (m *PortalMetrics) RecordDonationCreated(ctx context.Context, programID, method string) {
	m.donationsCreated.Inc(ctx,
		AttrProgramID.String(programID),
		AttrPaymentMethod.String(method),
	)
}

// RecordDonationPaid counts a settlement and records its amount.
func (m *PortalMetrics) RecordDonationPaid(ctx context.Context, programID string, amount decimal.Decimal) {
	attrs := []attribute.KeyValue{AttrProgramID.String(programID)}
	m.donationsPaid.Inc(ctx, attrs...)
	amt, _ := amount.Float64()
	m.donationAmount.Record(ctx, amt, attrs...)
}

// RecordEventRegistration counts one event signup.
func (m *PortalMetrics) RecordEventRegistration(ctx context.Context, eventID string) {
	m.eventRegistrations.Inc(ctx, AttrEventID.String(eventID))
}

// RecordPostView counts one post read.
func (m *PortalMetrics) RecordPostView(ctx context.Context) {
	m.postViews.Inc(ctx)
}

// RecordPaymentWebhook counts one gateway notification by outcome.
func (m *PortalMetrics) RecordPaymentWebhook(ctx context.Context, status string) {
	m.paymentWebhooks.Inc(ctx, AttrPaymentStatus.String(status))
}
