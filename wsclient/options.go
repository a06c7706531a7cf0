package wsclient

type options struct {
	cfg       Config
	logger    Logger
	spawner   Spawner
	transport Transport
}

// Option configures a Conn at construction.
type Option struct {
	f func(*options)
}

func newOptions(opts ...Option) *options {
	o := &options{
		cfg:     DefaultConfig(),
		logger:  noopLogger{},
		spawner: goSpawner{},
	}
	for _, opt := range opts {
		if opt.f != nil {
			opt.f(o)
		}
	}
	if o.transport == nil {
		o.transport = NewTransport(o.cfg)
	}
	return o
}

// WithConfig replaces DefaultConfig().
func WithConfig(cfg Config) Option {
	return Option{f: func(o *options) {
		o.cfg = cfg
	}}
}

func WithLogger(l Logger) Option {
	return Option{f: func(o *options) {
		if l != nil {
			o.logger = l
		}
	}}
}

// WithSpawner overrides how handshake and close workers are started.
func WithSpawner(s Spawner) Option {
	return Option{f: func(o *options) {
		if s != nil {
			o.spawner = s
		}
	}}
}

// WithTransport overrides the transport selected by Config.Transport.
func WithTransport(t Transport) Option {
	return Option{f: func(o *options) {
		o.transport = t
	}}
}

type closeArgs struct {
	code      uint16
	hasCode   bool
	reason    string
	hasReason bool
}

// CloseOption supplies an optional argument to Conn.Close.
type CloseOption func(*closeArgs)

// WithCode sets the close code. It must be 1000 or within 3000-4999.
func WithCode(code uint16) CloseOption {
	return func(a *closeArgs) {
		a.code = code
		a.hasCode = true
	}
}

// WithReason sets the close reason, at most 123 bytes.
func WithReason(reason string) CloseOption {
	return func(a *closeArgs) {
		a.reason = reason
		a.hasReason = true
	}
}
