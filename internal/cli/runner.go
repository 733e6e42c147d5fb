// Package cli implements the jsonmap command
package cli

import (
	"context"
	"database/sql"
	"io"
	"reflect"
	"sort"

	_ "github.com/go-sql-driver/mysql"
	"github.com/golang/glog"
	"github.com/pkg/errors"
	"github.com/viant/jsonmap"
	"github.com/viant/jsonmap/config"
	"github.com/viant/jsonmap/model"
	"github.com/viant/jsonmap/store"
	"github.com/viant/tagly/format/text"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Summary represents run outcome
type Summary struct {
	Items     []*model.Crypto
	Persisted bool
}

// Runner maps listing documents and optionally persists them
type Runner struct {
	cfg    *config.Config
	mapper *jsonmap.Mapper
	db     *sql.DB
	out    io.Writer
}

// Option runner option
type Option func(r *Runner)

// WithDB sets database used for persistence instead of opening one from config
func WithDB(db *sql.DB) Option {
	return func(r *Runner) {
		r.db = db
	}
}

// New creates a runner
func New(cfg *config.Config, out io.Writer, opts ...Option) *Runner {
	ret := &Runner{cfg: cfg, out: out}
	for _, opt := range opts {
		opt(ret)
	}
	ret.mapper = jsonmap.New(
		jsonmap.WithMode(jsonmap.ParseMode(cfg.Mapping.Mode)),
		jsonmap.WithCaseFormat(text.NewCaseFormat(cfg.Mapping.CaseFormat)),
		jsonmap.WithUseNumber(cfg.Mapping.UseNumber),
		jsonmap.WithMaxDepth(cfg.Mapping.MaxDepth),
	)
	return ret
}

// Run maps input, prints summary and persists items when configured
func (r *Runner) Run(ctx context.Context, input []byte) (*Summary, error) {
	items, err := r.mapItems(string(input))
	if err != nil {
		return nil, err
	}
	glog.V(1).Infof("jsonmap: mapped %d items", len(items))
	summary := &Summary{Items: items}
	if err = r.report(items); err != nil {
		return nil, err
	}
	if !r.cfg.Persist() {
		return summary, nil
	}
	if summary.Persisted, err = r.persist(ctx, items); err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *Runner) mapItems(input string) ([]*model.Crypto, error) {
	if !r.cfg.Mapping.Envelope {
		out, err := r.mapper.Map(input, reflect.TypeOf(model.Crypto{}))
		if err != nil {
			return nil, err
		}
		if one, ok := out.(*model.Crypto); ok {
			return []*model.Crypto{one}, nil
		}
		return out.([]*model.Crypto), nil
	}
	out, err := r.mapper.Map(input, reflect.TypeOf(model.Listing{}))
	if err != nil {
		return nil, err
	}
	listing, ok := out.(*model.Listing)
	if !ok {
		return nil, errors.New("expected listing object, got array")
	}
	if code := listing.Status.ErrorCode; code != 0 {
		msg := ""
		if listing.Status.ErrorMessage != nil {
			msg = *listing.Status.ErrorMessage
		}
		return nil, errors.Errorf("listing status error %d: %s", code, msg)
	}
	return listing.Items(), nil
}

func (r *Runner) report(items []*model.Crypto) error {
	ranked := make([]*model.Crypto, len(items))
	copy(ranked, items)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rank < ranked[j].Rank
	})
	limit := r.cfg.Report.Limit
	if limit > 0 && limit < len(ranked) {
		ranked = ranked[:limit]
	}
	tag, err := language.Parse(r.cfg.Report.Language)
	if err != nil {
		return errors.Wrapf(err, "invalid report language %s", r.cfg.Report.Language)
	}
	p := message.NewPrinter(tag)
	for _, item := range ranked {
		usd := item.Quote.USD
		price := p.Sprintf("%v", number.Decimal(usd.Price, number.MaxFractionDigits(2)))
		marketCap := p.Sprintf("%v", number.Decimal(usd.MarketCap, number.MaxFractionDigits(0)))
		change := p.Sprintf("%v", number.Decimal(usd.PercentChange24h, number.MinFractionDigits(2), number.MaxFractionDigits(2)))
		if _, err = p.Fprintf(r.out, "%4d  %-8s %16s %22s %8s%%\n", item.Rank, item.Symbol, price, marketCap, change); err != nil {
			return err
		}
	}
	return nil
}

func (r *Runner) persist(ctx context.Context, items []*model.Crypto) (bool, error) {
	db := r.db
	if db == nil {
		var err error
		if db, err = sql.Open(r.cfg.Store.Driver, r.cfg.Store.DSN); err != nil {
			return false, errors.Wrapf(err, "failed to open %s", r.cfg.Store.Driver)
		}
		defer db.Close()
	}
	table := store.Table{Name: r.cfg.Store.Table, Key: model.CryptoKey, Columns: model.CryptoColumns}
	srv, err := store.New[model.Crypto](db, table, store.WithBatchSize(r.cfg.Store.BatchSize))
	if err != nil {
		return false, err
	}
	if r.cfg.Store.Op == config.OpUpdate {
		return srv.Update(ctx, items...)
	}
	return srv.Insert(ctx, items...)
}
