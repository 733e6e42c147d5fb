package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/jsonmap"
	"github.com/viant/jsonmap/value"
)

func loadListing(t *testing.T) string {
	data, err := os.ReadFile(filepath.Join("testdata", "listing.json"))
	require.NoError(t, err)
	return string(data)
}

func TestListing_Map(t *testing.T) {
	result, err := jsonmap.Map[Listing](loadListing(t))
	require.NoError(t, err)
	require.NotNil(t, result.One)
	listing := result.One

	assert.Equal(t, 1, listing.Status.CreditCount)
	assert.Equal(t, 12, listing.Status.Elapsed)
	assert.Nil(t, listing.Status.ErrorMessage)
	assert.Equal(t, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC), listing.Status.Timestamp)

	items := listing.Items()
	require.Len(t, items, 3)
	btc := items[0]
	assert.Equal(t, 1, btc.ID)
	assert.Equal(t, "BTC", btc.Symbol)
	assert.Equal(t, 1, btc.Rank)
	assert.Equal(t, 11000, btc.NumMarketPairs)
	require.NotNil(t, btc.MaxSupply)
	assert.Equal(t, 21000000.0, *btc.MaxSupply)
	assert.Equal(t, time.Date(2010, 7, 13, 0, 0, 0, 0, time.UTC), btc.DateAdded)
	assert.Equal(t, []string{"mineable", "pow", "sha-256"}, btc.Tags)
	assert.True(t, btc.Platform.IsNull())
	assert.Nil(t, btc.SelfReportedMarketCap)
	assert.Equal(t, 60123.45, btc.Quote.USD.Price)
	assert.Equal(t, 31000000000.5, btc.Quote.USD.Volume24h)
	assert.Equal(t, -1.5, btc.Quote.USD.PercentChange24h)
	assert.Equal(t, 52.1, btc.Quote.USD.MarketCapDominance)

	eth := items[1]
	assert.Nil(t, eth.MaxSupply)
	assert.Equal(t, 2, eth.Rank)

	usdt := items[2]
	assert.Equal(t, value.KindObject, usdt.Platform.Kind())
	address, ok := usdt.Platform.Get("token_address")
	require.True(t, ok)
	assert.Equal(t, "0xdac17f958d2ee523a2206206994597c13d831ec7", address.Text())
}

func TestCrypto_DeclaredNameWins(t *testing.T) {
	crypto, err := jsonmap.MapSlice[Crypto](`[{"id": 5, "rank": 7, "cmc_rank": 9, "numMarketPairs": 3}]`)
	require.NoError(t, err)
	require.Len(t, crypto, 1)
	assert.Equal(t, 7, crypto[0].Rank)
	assert.Equal(t, 3, crypto[0].NumMarketPairs)
}

func TestCrypto_Row(t *testing.T) {
	supply := 21.0
	ts := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	crypto := &Crypto{
		ID:          1,
		Name:        "Bitcoin",
		Symbol:      "BTC",
		Slug:        "bitcoin",
		Rank:        1,
		MaxSupply:   &supply,
		LastUpdated: ts,
		Tags:        []string{"a", "b"},
		Quote:       Quote{USD: Price{Price: 2, LastUpdated: ts}},
	}
	row := crypto.Row()
	require.Len(t, row, len(CryptoColumns))
	assert.Equal(t, 1, crypto.Key())
	assert.Equal(t, 1, row[0])
	assert.Equal(t, "Bitcoin", row[1])
	assert.Equal(t, 21.0, row[8])
	assert.Equal(t, ts, row[9])
	assert.Nil(t, row[10])
	assert.Equal(t, "a,b", row[11])
	assert.Nil(t, row[12])
	assert.Equal(t, 2.0, row[14])
	assert.Equal(t, ts, row[23])
}
