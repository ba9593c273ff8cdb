package stripewebhooks

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"staffms/config"
	"staffms/internal/domain/plans"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v75"
	"github.com/stripe/stripe-go/v75/webhook"
	"gorm.io/gorm"
)

const maxBodyBytes = 65536

type Handler struct {
	DB      *gorm.DB
	Catalog *plans.Catalog
	Log     *slog.Logger
}

func NewHandler(db *gorm.DB, catalog *plans.Catalog, log *slog.Logger) *Handler {
	return &Handler{DB: db, Catalog: catalog, Log: log}
}

func (h *Handler) StripeWebhook(c *gin.Context) {
	// Follow-up calls (checkoutsession.Get, subscription.Get) need the key.
	stripe.Key = config.STRIPE_SECRET_KEY
	if stripe.Key == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_SECRET_KEY not configured"})
		return
	}

	endpointSecret := config.STRIPE_WEBHOOK_SECRET
	if endpointSecret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "STRIPE_WEBHOOK_SECRET not configured"})
		return
	}

	payload, err := readStripeBody(c, maxBodyBytes)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Error reading request body"})
		return
	}

	event, err := webhook.ConstructEventWithOptions(
		payload,
		c.GetHeader("Stripe-Signature"),
		endpointSecret,
		webhook.ConstructEventOptions{IgnoreAPIVersionMismatch: true},
	)
	if err != nil {
		h.Log.Warn("stripe signature verification failed", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Signature verification failed"})
		return
	}

	h.dispatch(c, event)
}

func (h *Handler) dispatch(c *gin.Context, event stripe.Event) {
	log := h.Log.With("event_id", event.ID, "event_type", event.Type)

	var err error
	switch event.Type {
	case "checkout.session.completed":
		var session stripe.CheckoutSession
		if jerr := json.Unmarshal(event.Data.Raw, &session); jerr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse session"})
			return
		}
		err = h.handleCheckoutSessionCompleted(&session)

	case "customer.subscription.updated":
		var sub stripe.Subscription
		if jerr := json.Unmarshal(event.Data.Raw, &sub); jerr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse subscription"})
			return
		}
		err = h.handleSubscriptionUpdated(&sub)

	case "customer.subscription.deleted":
		var sub stripe.Subscription
		if jerr := json.Unmarshal(event.Data.Raw, &sub); jerr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to parse subscription"})
			return
		}
		err = h.handleSubscriptionDeleted(&sub)

	default:
		// Acknowledge unknown events to avoid retries.
		c.JSON(http.StatusOK, gin.H{"status": "ignored"})
		return
	}

	if err != nil {
		log.Error("stripe event failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	log.Info("stripe event processed")
	c.JSON(http.StatusOK, gin.H{"status": "received"})
}

func readStripeBody(c *gin.Context, maxBytes int64) ([]byte, error) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	return io.ReadAll(c.Request.Body)
}
