package model

import (
	"database/sql"
	"strings"
	"time"
)

// CryptoTable is the crypto_data table name
const CryptoTable = "crypto_data"

// CryptoKey is the crypto_data primary key column
const CryptoKey = "id"

// CryptoColumns lists crypto_data columns in Row order
var CryptoColumns = []string{
	"id",
	"name",
	"symbol",
	"slug",
	"cmc_rank",
	"num_market_pairs",
	"circulating_supply",
	"total_supply",
	"max_supply",
	"last_updated",
	"date_added",
	"tags",
	"self_reported_circulating_supply",
	"self_reported_market_cap",
	"price",
	"volume_24h",
	"volume_change_24h",
	"percent_change_1h",
	"percent_change_24h",
	"percent_change_7d",
	"market_cap",
	"market_cap_dominance",
	"fully_diluted_market_cap",
	"last_updated_price",
}

const tagSeparator = ","

// Key returns primary key value
func (c *Crypto) Key() interface{} {
	return c.ID
}

// Row returns column values in CryptoColumns order
func (c *Crypto) Row() []interface{} {
	usd := &c.Quote.USD
	return []interface{}{
		c.ID,
		c.Name,
		c.Symbol,
		c.Slug,
		c.Rank,
		c.NumMarketPairs,
		c.CirculatingSupply,
		c.TotalSupply,
		nullFloat(c.MaxSupply),
		nullTime(c.LastUpdated),
		nullTime(c.DateAdded),
		strings.Join(c.Tags, tagSeparator),
		nullFloat(c.SelfReportedCirculatingSupply),
		nullFloat(c.SelfReportedMarketCap),
		usd.Price,
		usd.Volume24h,
		usd.VolumeChange24h,
		usd.PercentChange1h,
		usd.PercentChange24h,
		usd.PercentChange7d,
		usd.MarketCap,
		usd.MarketCapDominance,
		usd.FullyDilutedMarketCap,
		nullTime(usd.LastUpdated),
	}
}

// Scan reads a row produced by selecting CryptoColumns
func (c *Crypto) Scan(scan func(dest ...interface{}) error) error {
	var (
		tags        sql.NullString
		lastUpdated sql.NullTime
		dateAdded   sql.NullTime
		priceTime   sql.NullTime
	)
	usd := &c.Quote.USD
	err := scan(
		&c.ID,
		&c.Name,
		&c.Symbol,
		&c.Slug,
		&c.Rank,
		&c.NumMarketPairs,
		&c.CirculatingSupply,
		&c.TotalSupply,
		&c.MaxSupply,
		&lastUpdated,
		&dateAdded,
		&tags,
		&c.SelfReportedCirculatingSupply,
		&c.SelfReportedMarketCap,
		&usd.Price,
		&usd.Volume24h,
		&usd.VolumeChange24h,
		&usd.PercentChange1h,
		&usd.PercentChange24h,
		&usd.PercentChange7d,
		&usd.MarketCap,
		&usd.MarketCapDominance,
		&usd.FullyDilutedMarketCap,
		&priceTime,
	)
	if err != nil {
		return err
	}
	c.LastUpdated = lastUpdated.Time
	c.DateAdded = dateAdded.Time
	usd.LastUpdated = priceTime.Time
	c.Tags = nil
	if tags.Valid && tags.String != "" {
		c.Tags = strings.Split(tags.String, tagSeparator)
	}
	return nil
}

func nullFloat(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

func nullTime(ts time.Time) interface{} {
	if ts.IsZero() {
		return nil
	}
	return ts
}
