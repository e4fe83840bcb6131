package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"foodcourt-be/internal/config"
	"foodcourt-be/internal/logger"

	"go.uber.org/zap"
)

const graphBaseURL = "https://graph.facebook.com"

type whatsappGateway struct {
	baseURL       string
	version       string
	phoneNumberID string
	accessToken   string
	templateName  string
	adminPhone    string
	httpClient    *http.Client
}

// NewWhatsAppGateway builds a Notifier over the WhatsApp Cloud API.
func NewWhatsAppGateway(cfg *config.Config) Notifier {
	if cfg.WAAccessToken == "" {
		logger.L().Warn("WhatsApp access token is empty")
	}

	return &whatsappGateway{
		baseURL:       graphBaseURL,
		version:       cfg.WAVersion,
		phoneNumberID: cfg.WAPhoneNumberID,
		accessToken:   cfg.WAAccessToken,
		templateName:  cfg.WATemplateName,
		adminPhone:    cfg.AdminPhone,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// SendOTP delivers the code through the pre-approved template message.
func (g *whatsappGateway) SendOTP(ctx context.Context, mobile, code string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "whatsapp"),
		zap.String("method", "SendOTP"),
		zap.String("mobile", mobile),
	)

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                mobile,
		"type":              "template",
		"template": map[string]any{
			"name":     g.templateName,
			"language": map[string]any{"code": "en_US"},
			"components": []map[string]any{{
				"type": "body",
				"parameters": []map[string]any{
					{"type": "text", "text": code},
				},
			}},
		},
	}

	if err := g.post(ctx, payload); err != nil {
		log.Error("failed to send OTP message", zap.Error(err))
		return err
	}

	log.Info("OTP message sent")
	return nil
}

// SendOrderAlert sends a free-text order summary to the admin number. Free
// text only reaches numbers with an open 24h conversation window.
func (g *whatsappGateway) SendOrderAlert(ctx context.Context, alert OrderAlert) error {
	log := logger.FromCtx(ctx).With(
		zap.String("gateway", "whatsapp"),
		zap.String("method", "SendOrderAlert"),
		zap.Uint("order_id", alert.OrderID),
	)

	payload := map[string]any{
		"messaging_product": "whatsapp",
		"recipient_type":    "individual",
		"to":                g.adminPhone,
		"type":              "text",
		"text":              map[string]any{"body": buildOrderMessage(alert)},
	}

	if err := g.post(ctx, payload); err != nil {
		log.Error("failed to send order alert", zap.Error(err))
		return err
	}

	log.Info("order alert sent")
	return nil
}

func (g *whatsappGateway) post(ctx context.Context, payload any) error {
	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/%s/%s/messages", g.baseURL, g.version, g.phoneNumberID)

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonBody))
	if err != nil {
		return err
	}
	req.Header.Add("Authorization", "Bearer "+g.accessToken)
	req.Header.Add("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read whatsapp response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("whatsapp error: %s", string(bodyBytes))
	}

	return nil
}

func buildOrderMessage(alert OrderAlert) string {
	var items strings.Builder
	for i, item := range alert.Items {
		fmt.Fprintf(&items, "%d. %s x%d - %d", i+1, item.Name, item.Qty, item.Price)
		if len(item.Addons) > 0 {
			names := make([]string, 0, len(item.Addons))
			for _, a := range item.Addons {
				names = append(names, a.Name)
			}
			fmt.Fprintf(&items, "\n   Add-ons: %s", strings.Join(names, ", "))
		}
		items.WriteByte('\n')
	}

	address := alert.AddressText
	if address == "" {
		address = "Address details provided"
	}

	return fmt.Sprintf(
		"*New Order Received!*\n--------------------------\n"+
			"*Order ID:* #%d\n*Customer:* %s\n*Mobile:* %s\n*Alt Contact:* %s\n\n"+
			"*Address:* %s\n\n*Items:*\n%s\n*Total Amount:* %d\n"+
			"--------------------------\n_Please check the dashboard to confirm._",
		alert.OrderID,
		alert.CustomerName,
		alert.Mobile,
		alert.Contact,
		address,
		items.String(),
		alert.Total,
	)
}
