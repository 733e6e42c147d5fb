package store

type options struct {
	batchSize int
}

//Option service option
type Option func(o *options)

//Options represents service options
type Options []Option

//Apply applies options
func (o Options) Apply(opts *options) {
	for _, opt := range o {
		opt(opts)
	}
}

//WithBatchSize limits number of rows written by a single statement
func WithBatchSize(size int) Option {
	return func(o *options) {
		o.batchSize = size
	}
}
