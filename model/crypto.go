package model

import (
	"time"

	"github.com/viant/jsonmap/value"
)

//go:generate go run ../cmd/annotgen -dir . -out annotation_gen.go

type (
	// Crypto represents a single crypto currency listing entry
	Crypto struct {
		ID     int
		Name   string
		Symbol string
		Slug   string
		// Rank is the market cap rank
		// @name cmc_rank
		Rank int
		// @name num_market_pairs
		NumMarketPairs int
		// @name circulating_supply
		CirculatingSupply float64
		// @name total_supply
		TotalSupply float64
		// @name max_supply
		MaxSupply *float64
		// @name last_updated
		LastUpdated time.Time
		// @name date_added
		DateAdded time.Time
		Tags      []string
		Platform  value.Value
		// @name self_reported_circulating_supply
		SelfReportedCirculatingSupply *float64
		// @name self_reported_market_cap
		SelfReportedMarketCap *float64
		Quote                 Quote
	}

	// Quote groups prices by convert currency
	Quote struct {
		USD Price `json:"USD"`
	}

	// Price represents market data in a single currency
	Price struct {
		Price float64
		// @name volume_24h
		Volume24h float64
		// @name volume_change_24h
		VolumeChange24h float64
		// @name percent_change_1h
		PercentChange1h float64
		// @name percent_change_24h
		PercentChange24h float64
		// @name percent_change_7d
		PercentChange7d float64
		// @name market_cap
		MarketCap float64
		// @name market_cap_dominance
		MarketCapDominance float64
		// @name fully_diluted_market_cap
		FullyDilutedMarketCap float64
		// @name last_updated
		LastUpdated time.Time
	}

	// Status represents listing response status
	Status struct {
		Timestamp time.Time
		// @name error_code
		ErrorCode int
		// @name error_message
		ErrorMessage *string
		Elapsed      int
		// @name credit_count
		CreditCount int
		Notice      *string
	}

	// Listing represents listing response envelope
	Listing struct {
		Status Status
		Data   []Crypto
	}
)

// Items returns pointers to listing entries
func (l *Listing) Items() []*Crypto {
	ret := make([]*Crypto, len(l.Data))
	for i := range l.Data {
		ret[i] = &l.Data[i]
	}
	return ret
}
