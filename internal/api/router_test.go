package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/databanq/dqscore/internal/api/handlers"
	"github.com/databanq/dqscore/internal/pipeline"
	"github.com/databanq/dqscore/pkg/config"
	"github.com/databanq/dqscore/pkg/logger"
	"github.com/databanq/dqscore/pkg/redis"
)

func testRouter(t *testing.T) http.Handler {
	t.Helper()

	runner, err := pipeline.New(config.QualityConfig{
		PenaltyBase:         100,
		PenaltyPerViolation: 5,
		BalanceTolerance:    1,
		GateWorkers:         1,
	}, logger.NewNop())
	require.NoError(t, err)

	redisClient, err := redis.New(&config.Config{}) // disabled
	require.NoError(t, err)
	cache := redis.NewCache(redisClient, "test")

	handler := handlers.NewQualityHandler(runner, nil, cache, logger.NewNop())
	return NewRouter(handler, logger.NewNop())
}

func TestHealthEndpoint(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestCheckEndpoint(t *testing.T) {
	router := testRouter(t)

	payload := `{
		"source": "unit",
		"rows": [{
			"txn_id": "T1",
			"txn_datetime": "2025-12-10 10:00:00",
			"account_number": "XXXXXX9999",
			"customer_id": "CUST01",
			"customer_name": "Test User",
			"age": "30",
			"gender": "M",
			"monthly_income": "50000",
			"total_balance_before": "80000",
			"total_balance_after": "75000",
			"txn_type": "CARD",
			"amount": "5000",
			"merchant_id": "MERCH1",
			"merchant_name": "Test Store",
			"merchant_category": "GROCERY",
			"merchant_city": "Mumbai",
			"merchant_country": "IN",
			"is_fraud": "0"
		}]
	}`

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/quality/check", strings.NewReader(payload)))

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Report struct {
			BatchID    string  `json:"batch_id"`
			Source     string  `json:"source"`
			TotalRows  int     `json:"total_rows"`
			FailedRows int     `json:"failed_rows"`
			FinalDQS   float64 `json:"final_dqs"`
		} `json:"report"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Report.BatchID)
	assert.Equal(t, "unit", body.Report.Source)
	assert.Equal(t, 1, body.Report.TotalRows)
	assert.Equal(t, 0, body.Report.FailedRows)
	assert.Equal(t, 100.0, body.Report.FinalDQS)
}

func TestCheckEndpoint_BadBody(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("POST", "/api/quality/check", strings.NewReader("not json")))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLatestEndpoint_NoStore(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/quality/reports/latest", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetByIDEndpoint_NoStore(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/api/quality/reports/abc123", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUnknownMethod(t *testing.T) {
	router := testRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("DELETE", "/api/quality/check", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
