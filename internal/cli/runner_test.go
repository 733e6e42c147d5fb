package cli

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonmap/config"
)

func loadListing(t *testing.T) []byte {
	data, err := os.ReadFile("../../model/testdata/listing.json")
	require.NoError(t, err)
	return data
}

func TestRunner_Run(t *testing.T) {
	var testCases = []struct {
		description string
		envelope    bool
		limit       int
		input       func(t *testing.T) []byte
		expectItems int
		expectLines int
		expect      []string
		expectErr   string
	}{
		{
			description: "listing envelope",
			envelope:    true,
			limit:       10,
			input:       loadListing,
			expectItems: 3,
			expectLines: 3,
			expect:      []string{"BTC", "60,123.45", "1,183,830,000,000", "-1.50%", "ETH", "USDT"},
		},
		{
			description: "report limit",
			envelope:    true,
			limit:       1,
			input:       loadListing,
			expectItems: 3,
			expectLines: 1,
			expect:      []string{"BTC"},
		},
		{
			description: "bare array",
			limit:       10,
			input: func(t *testing.T) []byte {
				return []byte(`[{"id":2,"symbol":"ETH","cmc_rank":2},{"id":1,"symbol":"BTC","cmc_rank":1}]`)
			},
			expectItems: 2,
			expectLines: 2,
		},
		{
			description: "bare object",
			limit:       10,
			input: func(t *testing.T) []byte {
				return []byte(`{"id":1,"symbol":"BTC","cmc_rank":1,"quote":{"USD":{"price":1.5}}}`)
			},
			expectItems: 1,
			expectLines: 1,
			expect:      []string{"BTC", "1.5"},
		},
		{
			description: "status error",
			envelope:    true,
			limit:       10,
			input: func(t *testing.T) []byte {
				return []byte(`{"status":{"error_code":1002,"error_message":"API key missing"},"data":[]}`)
			},
			expectErr: "1002",
		},
		{
			description: "malformed input",
			limit:       10,
			input: func(t *testing.T) []byte {
				return []byte(`{"id":`)
			},
			expectErr: "decode",
		},
	}
	for _, testCase := range testCases {
		cfg := config.Default()
		cfg.Mapping.Envelope = testCase.envelope
		cfg.Report.Limit = testCase.limit
		out := &bytes.Buffer{}
		summary, err := New(cfg, out).Run(context.Background(), testCase.input(t))
		if testCase.expectErr != "" {
			require.Error(t, err, testCase.description)
			assert.Contains(t, err.Error(), testCase.expectErr, testCase.description)
			continue
		}
		require.NoError(t, err, testCase.description)
		assert.Len(t, summary.Items, testCase.expectItems, testCase.description)
		assert.False(t, summary.Persisted, testCase.description)
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		assert.Len(t, lines, testCase.expectLines, testCase.description)
		assert.True(t, strings.Contains(lines[0], "BTC"), testCase.description)
		for _, fragment := range testCase.expect {
			assert.Contains(t, out.String(), fragment, testCase.description)
		}
	}
}

func TestRunner_Persist(t *testing.T) {
	var testCases = []struct {
		description string
		op          string
		expectSQL   string
	}{
		{description: "insert", op: config.OpInsert, expectSQL: "INSERT INTO crypto_data"},
		{description: "update", op: config.OpUpdate, expectSQL: "ON DUPLICATE KEY UPDATE"},
	}
	for _, testCase := range testCases {
		db, mock, err := sqlmock.New()
		require.NoError(t, err, testCase.description)
		mock.ExpectBegin()
		mock.ExpectExec(testCase.expectSQL).WillReturnResult(sqlmock.NewResult(0, 3))
		mock.ExpectCommit()

		cfg := config.Default()
		cfg.Mapping.Envelope = true
		cfg.Store.Op = testCase.op
		cfg.Store.DSN = "root@/crypto"
		summary, err := New(cfg, &bytes.Buffer{}, WithDB(db)).Run(context.Background(), loadListing(t))
		require.NoError(t, err, testCase.description)
		assert.True(t, summary.Persisted, testCase.description)
		assert.NoError(t, mock.ExpectationsWereMet(), testCase.description)
		_ = db.Close()
	}
}

func TestRunner_InvalidLanguage(t *testing.T) {
	cfg := config.Default()
	cfg.Mapping.Envelope = true
	cfg.Report.Language = "??"
	_, err := New(cfg, &bytes.Buffer{}).Run(context.Background(), loadListing(t))
	assert.Error(t, err)
}
