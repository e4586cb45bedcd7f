package transport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-coin-analyzer/internal/config"
	apperrors "go-coin-analyzer/internal/errors"
	"go-coin-analyzer/internal/intake"
	"go-coin-analyzer/internal/service"
	"go-coin-analyzer/internal/transport"
)

type stubProvider struct {
	reply string
	err   error
}

func (s *stubProvider) AnalyzeImage(ctx context.Context, img *intake.UploadedImage) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubProvider) Name() string { return "stub" }

func testConfig() *config.Config {
	return &config.Config{
		Host:            "127.0.0.1",
		Port:            "8080",
		RequestTimeout:  5 * time.Second,
		ProviderTimeout: 5 * time.Second,
		MaxUploadSize:   10 * 1024 * 1024,
		Provider:        config.ProviderOpenAI,
	}
}

func newTestHandler(p *stubProvider) http.Handler {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()
	svc := service.NewCoinAnalysisService(p, cfg.ProviderTimeout)
	return transport.NewHandler(svc, cfg)
}

func uploadRequest(t *testing.T, includeImage bool, data []byte) *http.Request {
	t.Helper()
	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	if includeImage {
		h := textproto.MIMEHeader{}
		h.Set("Content-Disposition", `form-data; name="image"; filename="coin.jpg"`)
		h.Set("Content-Type", "image/jpeg")
		part, err := w.CreatePart(h)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	} else {
		require.NoError(t, w.WriteField("note", "forgot the image"))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/analyze-coin", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

var jpegData = append([]byte{0xFF, 0xD8, 0xFF, 0xE0}, bytes.Repeat([]byte{0x11}, 128)...)

func TestAnalyzeCoin_QuarterScenario(t *testing.T) {
	handler := newTestHandler(&stubProvider{
		reply: `{"isCoin":true,"coinType":"Quarter Dollar","country":"United States","countryFlag":"🇺🇸","denomination":"25 Cents","year":2020,"confidence":95,"material":"Copper-Nickel","value":0.25,"currency":"USD"}`,
	})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, uploadRequest(t, true, jpegData))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, true, body["isCoin"])
	assert.Equal(t, "Quarter Dollar", body["coinType"])
	assert.Equal(t, "United States", body["country"])
	assert.Equal(t, "2020", body["year"], "numeric year must be normalized to a string")
	assert.Equal(t, float64(95), body["confidence"])
	assert.Equal(t, 0.25, body["value"])
	assert.Equal(t, "USD", body["currency"])
}

func TestAnalyzeCoin_NotACoinScenario(t *testing.T) {
	handler := newTestHandler(&stubProvider{
		reply: `{"isCoin":false,"actualObject":"a dog"}`,
	})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, uploadRequest(t, true, jpegData))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, map[string]any{"isCoin": false, "actualObject": "a dog"}, body,
		"coin-only fields must be absent from non-coin responses")
}

func TestAnalyzeCoin_MissingImageField(t *testing.T) {
	handler := newTestHandler(&stubProvider{reply: `{}`})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, uploadRequest(t, false, nil))

	require.Equal(t, http.StatusBadRequest, w.Code)

	var body transport.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
	assert.Empty(t, body.Details)
}

func TestAnalyzeCoin_ProviderUnavailable(t *testing.T) {
	handler := newTestHandler(&stubProvider{
		err: apperrors.NewProviderUnavailableError("openai request failed", errors.New("dial tcp: connection refused")),
	})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, uploadRequest(t, true, jpegData))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body transport.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "failed to analyze coin", body.Error)
	assert.Contains(t, body.Details, "provider_unavailable")
}

func TestAnalyzeCoin_MalformedProviderText(t *testing.T) {
	handler := newTestHandler(&stubProvider{reply: "not json at all"})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, uploadRequest(t, true, jpegData))

	require.Equal(t, http.StatusInternalServerError, w.Code)

	var body transport.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Contains(t, body.Details, "malformed_response")
}

func TestAnalyzeCoin_UnsupportedUploadType(t *testing.T) {
	handler := newTestHandler(&stubProvider{reply: `{}`})

	buf := &bytes.Buffer{}
	w := multipart.NewWriter(buf)
	h := textproto.MIMEHeader{}
	h.Set("Content-Disposition", `form-data; name="image"; filename="doc.pdf"`)
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte("%PDF-1.4"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest("POST", "/api/analyze-coin", buf)
	req.Header.Set("Content-Type", w.FormDataContentType())

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHealthCheck(t *testing.T) {
	handler := newTestHandler(&stubProvider{})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "available")
}

func TestListCurrencies(t *testing.T) {
	handler := newTestHandler(&stubProvider{})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/currencies", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Currencies []struct {
			Code string  `json:"code"`
			Rate float64 `json:"rate"`
		} `json:"currencies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Len(t, body.Currencies, 10)
	assert.Equal(t, "USD", body.Currencies[0].Code)
	assert.Equal(t, float64(1), body.Currencies[0].Rate)
}

func TestConvertCurrency(t *testing.T) {
	handler := newTestHandler(&stubProvider{})

	tests := []struct {
		name       string
		query      string
		wantStatus int
		wantTo     string
		wantAmount float64
	}{
		{
			name:       "usd to eur",
			query:      "amount=0.25&from=USD&to=EUR",
			wantStatus: http.StatusOK,
			wantTo:     "EUR",
			wantAmount: 0.23,
		},
		{
			name:       "unknown source defaults to usd",
			query:      "amount=1&from=XYZ&to=EUR",
			wantStatus: http.StatusOK,
			wantTo:     "EUR",
			wantAmount: 0.92,
		},
		{
			name:       "missing amount",
			query:      "from=USD&to=EUR",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "non-numeric amount",
			query:      "amount=lots&from=USD&to=EUR",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/convert?"+tt.query, nil))
			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}

			var body transport.ConversionResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantTo, body.To)
			assert.InDelta(t, tt.wantAmount, body.ConvertedAmount, 1e-9)
		})
	}
}
