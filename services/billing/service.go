package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"agentlinker/config"
	"agentlinker/models"
	"agentlinker/utils"

	agentRepo "agentlinker/database/repository/agent"

	"github.com/stripe/stripe-go/v76"
	checkoutSession "github.com/stripe/stripe-go/v76/checkout/session"
	"go.uber.org/zap"
)

// Service moves agents between subscription tiers. Checkout happens on
// Stripe-hosted pages; tier changes land through webhook events only, so the
// agent record is always driven by what Stripe says, not by redirects.
type Service struct {
	Agents agentRepo.AgentRepository
}

// NewService constructs the billing service.
func NewService(agents agentRepo.AgentRepository) *Service {
	return &Service{Agents: agents}
}

func priceForTier(tier string) (string, error) {
	switch tier {
	case models.TierPro:
		return config.AppConfig.StripePriceIDPro, nil
	case models.TierElite:
		return config.AppConfig.StripePriceIDElite, nil
	default:
		return "", fmt.Errorf("no purchasable price for tier %q", tier)
	}
}

// CreateCheckoutSession opens a Stripe checkout for upgrading the agent to
// the requested tier and returns the hosted payment URL.
func (s *Service) CreateCheckoutSession(ctx context.Context, agentID, tier string) (string, error) {
	agent, err := s.Agents.GetByID(ctx, agentID)
	if err != nil {
		return "", fmt.Errorf("failed to resolve agent: %w", err)
	}
	priceID, err := priceForTier(tier)
	if err != nil {
		return "", err
	}

	params := &stripe.CheckoutSessionParams{
		Mode: stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{Price: stripe.String(priceID), Quantity: stripe.Int64(1)},
		},
		SuccessURL:        stripe.String(config.AppConfig.BillingSuccessURL),
		CancelURL:         stripe.String(config.AppConfig.BillingCancelURL),
		ClientReferenceID: stripe.String(agent.ID),
	}
	if agent.StripeCustomerID != "" {
		params.Customer = stripe.String(agent.StripeCustomerID)
	} else {
		params.CustomerEmail = stripe.String(agent.Email)
	}
	params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
		Metadata: map[string]string{"agentId": agent.ID, "tier": tier},
	}

	sess, err := checkoutSession.New(params)
	if err != nil {
		return "", fmt.Errorf("failed to create checkout session: %w", err)
	}
	return sess.URL, nil
}

// HandleEvent applies one verified Stripe webhook event to the agent record.
// Unknown event types are ignored so the webhook endpoint can subscribe
// broadly without breaking.
func (s *Service) HandleEvent(ctx context.Context, event stripe.Event) error {
	switch event.Type {
	case "checkout.session.completed":
		var sess stripe.CheckoutSession
		if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
			return fmt.Errorf("failed to parse checkout session: %w", err)
		}
		return s.handleCheckoutCompleted(ctx, sess)
	case "customer.subscription.created", "customer.subscription.updated":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("failed to parse subscription: %w", err)
		}
		return s.handleSubscriptionChanged(ctx, sub)
	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
			return fmt.Errorf("failed to parse subscription: %w", err)
		}
		return s.handleSubscriptionDeleted(ctx, sub)
	default:
		utils.GetLogger().Debug("ignoring stripe event", zap.String("type", string(event.Type)))
		return nil
	}
}

// handleCheckoutCompleted links the Stripe customer to the agent as soon as
// checkout finishes. The tier itself arrives with the subscription events.
func (s *Service) handleCheckoutCompleted(ctx context.Context, sess stripe.CheckoutSession) error {
	agentID := sess.ClientReferenceID
	if agentID == "" || sess.Customer == nil {
		return nil
	}
	return s.Agents.UpdateFields(ctx, agentID, map[string]interface{}{
		"stripeCustomerId": sess.Customer.ID,
	})
}

func (s *Service) handleSubscriptionChanged(ctx context.Context, sub stripe.Subscription) error {
	agent, err := s.agentForSubscription(ctx, sub)
	if err != nil {
		return err
	}

	tier := sub.Metadata["tier"]
	if tier == "" {
		tier = tierForPrice(sub)
	}
	fields := map[string]interface{}{
		"stripeSubscriptionId": sub.ID,
		"subscriptionStatus":   string(sub.Status),
		"currentPeriodEnd":     time.Unix(sub.CurrentPeriodEnd, 0).UTC(),
	}
	// Only an active or trialing subscription grants the paid tier.
	switch sub.Status {
	case stripe.SubscriptionStatusActive, stripe.SubscriptionStatusTrialing:
		if tier != "" {
			fields["tier"] = tier
		}
	case stripe.SubscriptionStatusCanceled, stripe.SubscriptionStatusUnpaid, stripe.SubscriptionStatusIncompleteExpired:
		fields["tier"] = models.TierFree
	}

	if err := s.Agents.UpdateFields(ctx, agent.ID, fields); err != nil {
		return err
	}
	utils.GetLogger().Info("applied subscription change",
		zap.String("agentID", agent.ID),
		zap.String("status", string(sub.Status)))
	return nil
}

func (s *Service) handleSubscriptionDeleted(ctx context.Context, sub stripe.Subscription) error {
	agent, err := s.agentForSubscription(ctx, sub)
	if err != nil {
		return err
	}
	return s.Agents.UpdateFields(ctx, agent.ID, map[string]interface{}{
		"tier":               models.TierFree,
		"subscriptionStatus": string(stripe.SubscriptionStatusCanceled),
	})
}

func (s *Service) agentForSubscription(ctx context.Context, sub stripe.Subscription) (*models.Agent, error) {
	if agentID := sub.Metadata["agentId"]; agentID != "" {
		return s.Agents.GetByID(ctx, agentID)
	}
	if sub.Customer != nil {
		return s.Agents.GetByStripeCustomerID(ctx, sub.Customer.ID)
	}
	return nil, fmt.Errorf("subscription %s carries no agent reference", sub.ID)
}

func tierForPrice(sub stripe.Subscription) string {
	if sub.Items == nil || len(sub.Items.Data) == 0 || sub.Items.Data[0].Price == nil {
		return ""
	}
	switch sub.Items.Data[0].Price.ID {
	case config.AppConfig.StripePriceIDPro:
		return models.TierPro
	case config.AppConfig.StripePriceIDElite:
		return models.TierElite
	}
	return ""
}
