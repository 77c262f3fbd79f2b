package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// WhatsAppConfig holds the Evolution API connection settings.
type WhatsAppConfig struct {
	APIURL   string
	Instance string
	APIKey   string
}

type whatsAppGateway struct {
	cfg        WhatsAppConfig
	httpClient *http.Client
	log        *zap.Logger
}

// NewWhatsAppGateway builds a Gateway backed by the Evolution WhatsApp API.
func NewWhatsAppGateway(cfg WhatsAppConfig, log *zap.Logger) Gateway {
	if cfg.APIKey == "" {
		log.Warn("Evolution API key is empty")
	}

	return &whatsAppGateway{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		log: log,
	}
}

func (g *whatsAppGateway) SendOrderConfirmation(ctx context.Context, phone string, orderID uint, total decimal.Decimal) error {
	message := fmt.Sprintf(
		"Pedido #%d confirmado!\n\n"+
			"Valor total: R$ %s\n\n"+
			"Agradecemos sua compra! Em breve você receberá mais informações sobre o status do seu pedido.",
		orderID, total.StringFixed(2),
	)
	return g.sendMessage(ctx, phone, message)
}

func (g *whatsAppGateway) SendStatusUpdate(ctx context.Context, phone string, orderID uint, status string) error {
	message := fmt.Sprintf(
		"Atualização do Pedido #%d\n\n"+
			"Status atual: %s\n\n"+
			"Para mais informações, acesse nosso sistema.",
		orderID, status,
	)
	return g.sendMessage(ctx, phone, message)
}

func (g *whatsAppGateway) sendMessage(ctx context.Context, phone, message string) error {
	log := g.log.With(
		zap.String("gateway", "whatsapp"),
		zap.String("phone", phone),
	)

	body := map[string]string{
		"number":  phone,
		"message": message,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/message/text/%s", g.cfg.APIURL, g.cfg.Instance)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("failed creating request", zap.Error(err))
		return err
	}

	req.Header.Set("apikey", g.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("evolution request failed", zap.Error(err))
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read evolution response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Error("evolution returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", respBody),
		)
		return fmt.Errorf("evolution error: %s", string(respBody))
	}

	log.Debug("whatsapp message sent")
	return nil
}
