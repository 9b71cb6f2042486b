package libsmf

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Configures a call to Decode, DecodeFile or Read.
type Option func(*options)

type options struct {
	log    logrus.FieldLogger
	strict bool
}

// Returns a logger that drops everything, used when no logger is given.
func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	l.SetLevel(logrus.PanicLevel)
	return l
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = discardLogger()
	}
	return o
}

// Sets the logger that receives the decoder's diagnostics. The header summary
// is logged at debug level, anomalies as warnings, and skipped tracks as
// errors. By default nothing is logged.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.log = l
	}
}

// If strict is true, a track that fails to decode fails the whole file
// instead of being skipped.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.strict = strict
	}
}

// Logs an anomaly as a warning.
func (o *options) warn(a Anomaly) {
	o.log.WithFields(logrus.Fields{
		"track":  a.Track,
		"offset": a.Offset,
	}).Warn(a.String())
}
