package notify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWhatsAppGateway_SendOrderConfirmation(t *testing.T) {
	var (
		gotPath   string
		gotAPIKey string
		gotBody   map[string]string
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("apikey")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	gw := NewWhatsAppGateway(WhatsAppConfig{
		APIURL:   srv.URL,
		Instance: "loja01",
		APIKey:   "evo-key",
	}, zap.NewNop())

	err := gw.SendOrderConfirmation(context.Background(), "5511999990000", 100, decimal.RequireFromString("30.00"))
	require.NoError(t, err)

	assert.Equal(t, "/message/text/loja01", gotPath)
	assert.Equal(t, "evo-key", gotAPIKey)
	assert.Equal(t, "5511999990000", gotBody["number"])
	assert.Contains(t, gotBody["message"], "Pedido #100")
	assert.Contains(t, gotBody["message"], "R$ 30.00")
}

func TestWhatsAppGateway_SendStatusUpdate(t *testing.T) {
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	gw := NewWhatsAppGateway(WhatsAppConfig{APIURL: srv.URL, Instance: "loja01"}, zap.NewNop())

	err := gw.SendStatusUpdate(context.Background(), "5511999990000", 100, "CONFIRMED")
	require.NoError(t, err)

	assert.Contains(t, gotBody["message"], "Pedido #100")
	assert.Contains(t, gotBody["message"], "CONFIRMED")
}

func TestWhatsAppGateway_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"instance offline"}`, http.StatusBadGateway)
	}))
	defer srv.Close()

	gw := NewWhatsAppGateway(WhatsAppConfig{APIURL: srv.URL, Instance: "loja01"}, zap.NewNop())

	err := gw.SendStatusUpdate(context.Background(), "5511999990000", 100, "READY")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "instance offline")
}
