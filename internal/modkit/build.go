package modkit

import (
	"net/http"

	"parachute/internal/modkit/httpkit"
	str "parachute/internal/platform/strings"
)

// Built is a plain struct with the fields modules care about
type Built struct {
	Name      string
	Prefix    string
	Mw        []func(http.Handler) http.Handler
	Ports     any
	BodyLimit int64
	Workers   int

	// router hooks set via options and exposed to modules
	Subrouter func(httpkit.Router) httpkit.Router
	Register  func(httpkit.Router)
}

// Build applies Option funcs to an internal buildCfg and returns a plain struct
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	if c.subrouter == nil {
		c.subrouter = func(r httpkit.Router) httpkit.Router { return r }
	}
	if c.register == nil {
		c.register = func(httpkit.Router) {}
	}
	return Built{
		Name:      c.name,
		Prefix:    c.prefix,
		Mw:        append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:     c.ports,
		BodyLimit: c.bodyLimit,
		Workers:   c.workers,
		Subrouter: c.subrouter,
		Register:  c.register,
	}
}

// Base implements Module on top of a Built. Modules embed it and set Routes
type Base struct {
	Built

	// Routes attaches the module's own endpoints; Register runs after it
	Routes func(httpkit.Router)
}

// NewBase builds defaults followed by caller options into a Base
func NewBase(defaults []Option, opts ...Option) Base {
	return Base{Built: Build(append(defaults, opts...)...)}
}

// MountRoutes mounts Routes and Register under the module prefix with its middlewares
func (b *Base) MountRoutes(r httpkit.Router) {
	httpkit.MountUnder(r, b.Prefix(), b.Mw, func(rr httpkit.Router) {
		rr = b.Subrouter(rr)
		if b.Routes != nil {
			b.Routes(rr)
		}
		b.Register(rr)
	})
}

// Name returns the module name, panicking when none was configured
func (b *Base) Name() string { return str.MustString(b.Built.Name, "module name") }

// Prefix returns the normalized module route prefix
func (b *Base) Prefix() string { return str.MustPrefix(b.Built.Prefix) }

// Ports returns the module ports
func (b *Base) Ports() any { return b.Built.Ports }
