package descriptor

import "github.com/viant/tagly/format/text"

//Option resolver option
type Option func(r *Resolver)

//Options represents resolver options
type Options []Option

//Apply applies options
func (o Options) Apply(r *Resolver) {
	if len(o) == 0 {
		return
	}
	for _, opt := range o {
		opt(r)
	}
}

//WithCaseFormat sets case format used to derive declared name from go field name
func WithCaseFormat(caseFormat text.CaseFormat) Option {
	return func(r *Resolver) {
		r.caseFormat = caseFormat
	}
}
