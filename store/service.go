// Package store persists mapped entities into a relational table
package store

import (
	"context"
	"database/sql"
	"strings"

	"github.com/golang/glog"
	"github.com/pkg/errors"
)

// DefaultLimit is used by Select when limit is not positive
const DefaultLimit = 50

// Entity represents a flat table row
type Entity interface {
	Key() interface{}
	Row() []interface{}
	Scan(scan func(dest ...interface{}) error) error
}

// Table describes target table
type Table struct {
	Name    string
	Key     string
	Columns []string
}

// Service provides insert, select, upsert and delete for entities of type T
type Service[T any, PT interface {
	*T
	Entity
}] struct {
	db        *sql.DB
	table     Table
	batchSize int
}

// New creates a service
func New[T any, PT interface {
	*T
	Entity
}](db *sql.DB, table Table, opts ...Option) (*Service[T, PT], error) {
	if db == nil {
		return nil, errors.New("db was nil")
	}
	if table.Name == "" || table.Key == "" || len(table.Columns) == 0 {
		return nil, errors.Errorf("invalid table definition: %+v", table)
	}
	cfg := &options{}
	Options(opts).Apply(cfg)
	return &Service[T, PT]{db: db, table: table, batchSize: cfg.batchSize}, nil
}

// Table returns table definition
func (s *Service[T, PT]) Table() Table {
	return s.table
}

// Insert inserts items with multi row insert statements
func (s *Service[T, PT]) Insert(ctx context.Context, items ...*T) (bool, error) {
	return s.write(ctx, "", items)
}

// Update inserts items, overwriting every non key column on primary key conflict
func (s *Service[T, PT]) Update(ctx context.Context, items ...*T) (bool, error) {
	return s.write(ctx, s.upsertClause(), items)
}

// Select reads a page of rows
func (s *Service[T, PT]) Select(ctx context.Context, limit, offset int) ([]*T, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	SQL := "SELECT " + strings.Join(s.table.Columns, ", ") + " FROM " + s.table.Name + " LIMIT ? OFFSET ?"
	if glog.V(2) {
		glog.Infof("store: %s [%d %d]", SQL, limit, offset)
	}
	rows, err := s.db.QueryContext(ctx, SQL, limit, offset)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to select from %s", s.table.Name)
	}
	defer rows.Close()
	var ret []*T
	for rows.Next() {
		item := new(T)
		if err = PT(item).Scan(rows.Scan); err != nil {
			return nil, errors.Wrapf(err, "failed to scan %s row", s.table.Name)
		}
		ret = append(ret, item)
	}
	if err = rows.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read %s rows", s.table.Name)
	}
	return ret, nil
}

// Delete deletes rows by key
func (s *Service[T, PT]) Delete(ctx context.Context, ids ...int) (bool, error) {
	if len(ids) == 0 {
		return false, nil
	}
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	SQL := "DELETE FROM " + s.table.Name + " WHERE " + s.table.Key + " IN (" + placeholders(len(ids)) + ")"
	if glog.V(2) {
		glog.Infof("store: %s %v", SQL, args)
	}
	if _, err := s.db.ExecContext(ctx, SQL, args...); err != nil {
		return false, errors.Wrapf(err, "failed to delete from %s", s.table.Name)
	}
	return true, nil
}

func (s *Service[T, PT]) write(ctx context.Context, suffix string, items []*T) (bool, error) {
	if len(items) == 0 {
		return false, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, errors.Wrap(err, "failed to begin transaction")
	}
	for _, batch := range s.batches(items) {
		SQL, args, err := s.insertSQL(batch, suffix)
		if err != nil {
			_ = tx.Rollback()
			return false, err
		}
		if glog.V(2) {
			glog.Infof("store: %s, rows: %d", SQL, len(batch))
		}
		if _, err = tx.ExecContext(ctx, SQL, args...); err != nil {
			_ = tx.Rollback()
			return false, errors.Wrapf(err, "failed to write into %s", s.table.Name)
		}
	}
	if err = tx.Commit(); err != nil {
		return false, errors.Wrap(err, "failed to commit")
	}
	return true, nil
}

func (s *Service[T, PT]) batches(items []*T) [][]*T {
	size := s.batchSize
	if size <= 0 || size >= len(items) {
		return [][]*T{items}
	}
	var ret [][]*T
	for start := 0; start < len(items); start += size {
		end := start + size
		if end > len(items) {
			end = len(items)
		}
		ret = append(ret, items[start:end])
	}
	return ret
}

func (s *Service[T, PT]) insertSQL(items []*T, suffix string) (string, []interface{}, error) {
	columns := len(s.table.Columns)
	row := "(" + placeholders(columns) + ")"
	builder := strings.Builder{}
	builder.WriteString("INSERT INTO ")
	builder.WriteString(s.table.Name)
	builder.WriteString(" (")
	builder.WriteString(strings.Join(s.table.Columns, ", "))
	builder.WriteString(") VALUES ")
	args := make([]interface{}, 0, columns*len(items))
	for i, item := range items {
		values := PT(item).Row()
		if len(values) != columns {
			return "", nil, errors.Errorf("%s row has %d values, expected %d", s.table.Name, len(values), columns)
		}
		if i > 0 {
			builder.WriteString(", ")
		}
		builder.WriteString(row)
		args = append(args, values...)
	}
	builder.WriteString(suffix)
	return builder.String(), args, nil
}

func (s *Service[T, PT]) upsertClause() string {
	var assignments []string
	for _, column := range s.table.Columns {
		if column == s.table.Key {
			continue
		}
		assignments = append(assignments, column+" = VALUES("+column+")")
	}
	return " ON DUPLICATE KEY UPDATE " + strings.Join(assignments, ", ")
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat("?, ", n-1) + "?"
}
