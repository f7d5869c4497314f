package xlog

import (
	"context"
	"encoding/json"
	"io"

	"github.com/rs/zerolog"
)

// Loggers are tagged with a "domain" naming what they log about, e.g.
// whales-names
// watch
// watch.manifest
const (
	DomainFieldName = "dom"
)

// Domain is a named logger.
type Domain struct {
	name        string
	encodedName []byte // JSON escaped name
	output      io.Writer
	logger      Logger
}

// Implement zerolog.Hook
func (d *Domain) Run(e *Event, level Level, msg string) {
	e.Timestamp()
	if e.Enabled() {
		e.RawJSON(DomainFieldName, d.encodedName)
	}
}

// WithDomain attaches the logger of the domain to the context.
func WithDomain(ctx context.Context, d *Domain) context.Context {
	return d.logger.WithContext(ctx)
}

// NewDomain creates a new domain writing to w, or to the default output.
func NewDomain(name string, w ...io.Writer) *Domain {
	if len(w) == 0 {
		w = append(w, DefaultWriter{})
	}
	return newDomain(name, zerolog.MultiLevelWriter(w...))
}
func newDomain(name string, w io.Writer) *Domain {
	dom := &Domain{name: name, output: w}
	dom.encodedName, _ = json.Marshal(name)
	dom.logger = zerolog.New(w).Hook(dom)
	return dom
}

func (d *Domain) Logger() *Logger { return &d.logger }

// Sub creates a child domain named parent.name sharing the same output.
func (d *Domain) Sub(name string) *Domain {
	sub := newDomain(d.name+"."+name, d.output)
	sub.logger = sub.logger.Level(d.logger.GetLevel())
	return sub
}
