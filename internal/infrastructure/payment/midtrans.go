package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/midtrans/midtrans-go"
	"github.com/midtrans/midtrans-go/snap"
	"go.uber.org/zap"

	appdonation "github.com/ikada/backend/internal/application/donation"
	"github.com/ikada/backend/internal/domain/donation"
	"github.com/ikada/backend/internal/infrastructure/config"
)

// MidtransGateway creates Snap transactions for online donations and
// verifies the signature key on payment notifications.
type MidtransGateway struct {
	client    snap.Client
	serverKey string
	finishURL string
	expiry    int64
	logger    *zap.Logger
}

var _ appdonation.SnapGateway = (*MidtransGateway)(nil)

// NewMidtransGateway builds a gateway from configuration. The sandbox
// environment is used unless production is explicitly enabled.
func NewMidtransGateway(cfg config.MidtransConfig, logger *zap.Logger) *MidtransGateway {
	env := midtrans.Sandbox
	if cfg.Production {
		env = midtrans.Production
	}

	g := &MidtransGateway{
		serverKey: cfg.ServerKey,
		finishURL: cfg.FinishURL,
		expiry:    int64(cfg.ExpiryMinute),
		logger:    logger,
	}
	g.client.New(cfg.ServerKey, env)
	return g
}

// CreateTransaction registers the donation with Snap and returns the
// payment token the frontend embeds in the Snap widget.
func (g *MidtransGateway) CreateTransaction(ctx context.Context, don *donation.Donation) (string, error) {
	itemName := "Donasi"
	if don.Program != nil {
		itemName = "Donasi " + don.Program.Title
	}

	// Midtrans rejects requests where item prices do not sum to the
	// gross amount, so the donation is sent as a single item.
	req := &snap.Request{
		TransactionDetails: midtrans.TransactionDetails{
			OrderID:  don.OrderID,
			GrossAmt: don.Amount.IntPart(),
		},
		Items: &[]midtrans.ItemDetails{
			{
				ID:    don.ID.String(),
				Name:  itemName,
				Price: don.Amount.IntPart(),
				Qty:   1,
			},
		},
		CustomerDetail: &midtrans.CustomerDetails{
			FName: don.DonorName,
			Email: don.DonorEmail,
		},
		EnabledPayments: snap.AllSnapPaymentType,
	}
	if g.finishURL != "" {
		req.Callbacks = &snap.Callbacks{Finish: g.finishURL}
	}
	if g.expiry > 0 {
		req.Expiry = &snap.ExpiryDetails{
			Unit:     "minute",
			Duration: g.expiry,
		}
	}

	resp, midErr := g.client.CreateTransaction(req)
	if midErr != nil {
		g.logger.Error("snap transaction failed",
			zap.String("order_id", don.OrderID),
			zap.Error(midErr))
		return "", fmt.Errorf("create snap transaction for %s: %w", don.OrderID, midErr)
	}

	g.logger.Info("snap transaction created",
		zap.String("order_id", don.OrderID),
		zap.String("redirect_url", resp.RedirectURL))
	return resp.Token, nil
}

// VerifySignature recomputes the notification signature from the order
// fields and the server key. Notifications that fail this check must be
// discarded.
func (g *MidtransGateway) VerifySignature(n appdonation.PaymentNotification) bool {
	sum := sha512.Sum512([]byte(n.OrderID + n.StatusCode + n.GrossAmount + g.serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(n.SignatureKey)) == 1
}
