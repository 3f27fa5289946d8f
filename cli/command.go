package cli

import (
	"io"
	"os"
	"sync"

	"github.com/libcommon/taskkit/errors"
	"github.com/libcommon/taskkit/logging"
	"github.com/libcommon/taskkit/task"
)

var (
	loggerMu sync.RWMutex
	logger   = logging.New().WithComponent("cli")
)

// SetLogger replaces the logger used for dispatch events. Passing nil
// silences logging.
func SetLogger(l *logging.Logger) {
	loggerMu.Lock()
	defer loggerMu.Unlock()
	if l == nil {
		l = logging.New()
		l.SetOutput(io.Discard)
	}
	logger = l
}

func activeLogger() *logging.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// Command is a task that can be bound to a command line interface.
type Command interface {
	task.Task

	// CommandName returns the label the command is invoked by. Must be
	// non-empty.
	CommandName() string
	// Description returns the command's help text. Must be non-empty.
	Description() string
	// Aliases returns alternative labels, or nil.
	Aliases() []string
	// Configure declares the command's options and positionals on its
	// parser.
	Configure(p *Parser)
}

// Factory constructs a fresh Command instance for each dispatch.
type Factory func() Command

// bind wraps a factory in the standard dispatch handler: construct the
// task, merge the argument bag into it, run it.
func bind(f Factory) Handler {
	return func(args Args) (task.Result, error) {
		t := f()
		activeLogger().CommandDispatch(args.StringOr(DefaultSubcommandDest, t.CommandName()), task.Name(t))
		if err := task.Merge(t, args); err != nil {
			return nil, err
		}
		return task.Run(t)
	}
}

// NewParser builds a standalone parser for a single command, with the
// command's arguments declared and its dispatch handler bound. Fails
// with MISSING_COMMAND when the command has no name or description.
func NewParser(f Factory) (*Parser, error) {
	proto := f()
	if proto.CommandName() == "" || proto.Description() == "" {
		return nil, errors.MissingCommand(task.Name(proto))
	}
	p := New(proto.CommandName(), proto.Description())
	proto.Configure(p)
	p.SetHandler(bind(f))
	return p, nil
}

type runConfig struct {
	known  bool
	parser *Parser
}

// RunOption adjusts how RunCommand parses and dispatches.
type RunOption func(*runConfig)

// KnownArgs parses leniently: unknown options and surplus arguments are
// ignored instead of failing.
func KnownArgs() RunOption {
	return func(c *runConfig) { c.known = true }
}

// WithParser dispatches through a pre-built parser, typically the root
// of a command tree, instead of building one from the factory.
func WithParser(p *Parser) RunOption {
	return func(c *runConfig) { c.parser = p }
}

// RunCommand is the entry point for a command line program: it parses
// argv (os.Args[1:] when nil), merges the argument bag into a fresh
// task, and runs it. Parse failures are returned before any task is
// constructed.
func RunCommand(f Factory, argv []string, opts ...RunOption) (task.Result, error) {
	var cfg runConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	p := cfg.parser
	if p == nil {
		var err error
		p, err = NewParser(f)
		if err != nil {
			return nil, err
		}
	}
	if argv == nil {
		argv = os.Args[1:]
	}
	return dispatch(p, argv, cfg.known)
}

// Dispatch parses argv with p and invokes the handler of the deepest
// parser reached.
func Dispatch(p *Parser, argv []string) (task.Result, error) {
	return dispatch(p, argv, false)
}

// DispatchKnown is Dispatch in lenient parse mode.
func DispatchKnown(p *Parser, argv []string) (task.Result, error) {
	return dispatch(p, argv, true)
}

func dispatch(p *Parser, argv []string, known bool) (task.Result, error) {
	var (
		args Args
		h    Handler
		err  error
	)
	if known {
		args, h, err = p.ParseKnown(argv)
	} else {
		args, h, err = p.Parse(argv)
	}
	if err != nil {
		return nil, err
	}
	if h == nil {
		return nil, errors.MissingArgument("command", errors.WithCommand(p.Prog()))
	}
	return h(args)
}
