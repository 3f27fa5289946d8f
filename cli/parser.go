package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/libcommon/taskkit/errors"
	"github.com/libcommon/taskkit/task"
)

// DefaultSubcommandDest is the argument bag key that records which
// subcommand label the user typed. Nested levels share the key, so the
// deepest invoked level wins.
const DefaultSubcommandDest = "subcommand"

// Handler consumes a parsed argument bag and produces a task result.
type Handler func(args Args) (task.Result, error)

type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindInt
)

type option struct {
	name string // as declared, e.g. "fresh-water"
	dest string // bag key, dashes replaced by underscores
	help string
	kind valueKind
	def  interface{}
}

type positional struct {
	name string
	dest string
	help string
}

type subparsers struct {
	dest      string
	order     []string           // canonical labels in registration order
	commands  map[string]*Parser // canonical label to child parser
	canonical map[string]string  // label or alias to canonical label
	aliases   map[string][]string
	help      map[string]string
}

// Parser parses option and positional arguments and dispatches nested
// subcommands. Build one with New, declare arguments, then call Parse.
type Parser struct {
	prog        string
	description string
	options     []*option
	positionals []*positional
	sub         *subparsers
	handler     Handler
	output      io.Writer
	parent      *Parser
}

// New creates a parser for the named program.
func New(prog, description string) *Parser {
	return &Parser{prog: prog, description: description}
}

// Prog returns the program or subcommand name the parser was built with.
func (p *Parser) Prog() string { return p.prog }

// Description returns the parser's help description.
func (p *Parser) Description() string { return p.description }

// SetOutput redirects help output. The default is os.Stdout.
func (p *Parser) SetOutput(w io.Writer) { p.output = w }

// out resolves the help writer lazily through the parent chain, so
// redirecting the root after the tree is built reaches every level.
func (p *Parser) out() io.Writer {
	if p.output != nil {
		return p.output
	}
	if p.parent != nil {
		return p.parent.out()
	}
	return os.Stdout
}

// SetHandler binds the handler invoked when this parser is the deepest
// level reached by Parse.
func (p *Parser) SetHandler(h Handler) { p.handler = h }

func dest(name string) string {
	return strings.ReplaceAll(strings.TrimLeft(name, "-"), "-", "_")
}

// StringOption declares a string option. The flag is "--name"; its value
// lands in the bag under the dashes-to-underscores destination.
func (p *Parser) StringOption(name, defaultVal, help string) {
	p.options = append(p.options, &option{name: name, dest: dest(name), help: help, kind: kindString, def: defaultVal})
}

// BoolOption declares a flag that is true when present.
func (p *Parser) BoolOption(name string, defaultVal bool, help string) {
	p.options = append(p.options, &option{name: name, dest: dest(name), help: help, kind: kindBool, def: defaultVal})
}

// IntOption declares an integer option.
func (p *Parser) IntOption(name string, defaultVal int, help string) {
	p.options = append(p.options, &option{name: name, dest: dest(name), help: help, kind: kindInt, def: defaultVal})
}

// Positional declares a required positional argument. Positionals are
// filled in declaration order.
func (p *Parser) Positional(name, help string) {
	p.positionals = append(p.positionals, &positional{name: name, dest: dest(name), help: help})
}

func (p *Parser) lookupOption(name string) *option {
	d := dest(name)
	for _, o := range p.options {
		if o.dest == d {
			return o
		}
	}
	return nil
}

// Subparsers enables subcommand dispatch on this parser, recording the
// invoked label in the bag under destKey. An empty destKey means
// DefaultSubcommandDest. Calling it again is a no-op.
func (p *Parser) Subparsers(destKey string) {
	if p.sub != nil {
		return
	}
	if destKey == "" {
		destKey = DefaultSubcommandDest
	}
	p.sub = &subparsers{
		dest:      destKey,
		commands:  make(map[string]*Parser),
		canonical: make(map[string]string),
		aliases:   make(map[string][]string),
		help:      make(map[string]string),
	}
}

// AddCommand registers a subcommand under the given label and aliases and
// returns its parser. Registering a label or alias twice fails with
// DUPLICATE_COMMAND.
func (p *Parser) AddCommand(label string, aliases []string, help string) (*Parser, error) {
	if label == "" {
		return nil, errors.InvalidConfig("subcommand label must not be empty")
	}
	p.Subparsers("")
	names := append([]string{label}, aliases...)
	for _, n := range names {
		if _, taken := p.sub.canonical[n]; taken {
			return nil, errors.DuplicateCommand(n)
		}
	}
	child := New(p.prog+" "+label, help)
	child.parent = p
	p.sub.order = append(p.sub.order, label)
	p.sub.commands[label] = child
	p.sub.aliases[label] = aliases
	p.sub.help[label] = help
	for _, n := range names {
		p.sub.canonical[n] = label
	}
	return child, nil
}

// HasSubcommands reports whether any subcommand has been registered.
func (p *Parser) HasSubcommands() bool {
	return p.sub != nil && len(p.sub.order) > 0
}

// HasSubcommand reports whether the label or alias is registered.
func (p *Parser) HasSubcommand(label string) bool {
	return p.Subcommand(label) != nil
}

// Subcommand returns the parser registered for a label or alias, or nil.
func (p *Parser) Subcommand(label string) *Parser {
	if p.sub == nil {
		return nil
	}
	canon, ok := p.sub.canonical[label]
	if !ok {
		return nil
	}
	return p.sub.commands[canon]
}

// Subcommands returns the registered canonical labels in order.
func (p *Parser) Subcommands() []string {
	if p.sub == nil {
		return nil
	}
	return append([]string(nil), p.sub.order...)
}

// Parse walks argv, filling the bag with defaults, option values,
// positionals, and subcommand labels. It returns the bag and the handler
// of the deepest parser reached. Unknown options, unknown commands,
// missing positionals, and bad values all fail with usage errors;
// --help prints usage and fails with HELP_REQUESTED.
func (p *Parser) Parse(argv []string) (Args, Handler, error) {
	return p.parse(argv, false)
}

// ParseKnown is Parse in lenient mode: unknown options and surplus
// positionals are skipped instead of failing, and trailing missing
// positionals are left unset.
func (p *Parser) ParseKnown(argv []string) (Args, Handler, error) {
	return p.parse(argv, true)
}

func (p *Parser) parse(argv []string, known bool) (Args, Handler, error) {
	args := make(Args)
	h, err := p.parseInto(args, argv, known)
	if err != nil {
		return nil, nil, err
	}
	return args, h, nil
}

func (p *Parser) parseInto(args Args, argv []string, known bool) (Handler, error) {
	for _, o := range p.options {
		args[o.dest] = o.def
	}
	posIdx := 0
	for i := 0; i < len(argv); i++ {
		tok := argv[i]
		if tok == "--help" || tok == "-h" {
			fmt.Fprint(p.out(), p.Usage())
			return nil, errors.FromCode(errors.ErrCodeHelpRequested, errors.WithCommand(p.prog))
		}
		if len(tok) > 1 && strings.HasPrefix(tok, "-") && !numericToken(tok) {
			name, inline, hasInline := strings.Cut(tok, "=")
			o := p.lookupOption(name)
			if o == nil {
				if known {
					continue
				}
				return nil, errors.UnknownArgument(name, errors.WithCommand(p.prog))
			}
			if o.kind == kindBool {
				val := true
				if hasInline {
					v, err := strconv.ParseBool(inline)
					if err != nil {
						return nil, errors.InvalidArgument(o.name, inline, errors.WithCommand(p.prog))
					}
					val = v
				}
				args[o.dest] = val
				continue
			}
			raw := inline
			if !hasInline {
				i++
				if i >= len(argv) {
					return nil, errors.MissingArgument(o.name, errors.WithCommand(p.prog))
				}
				raw = argv[i]
			}
			if o.kind == kindInt {
				n, err := strconv.Atoi(raw)
				if err != nil {
					return nil, errors.InvalidArgument(o.name, raw, errors.WithCommand(p.prog))
				}
				args[o.dest] = n
			} else {
				args[o.dest] = raw
			}
			continue
		}
		if posIdx < len(p.positionals) {
			args[p.positionals[posIdx].dest] = tok
			posIdx++
			continue
		}
		if p.sub != nil {
			child := p.Subcommand(tok)
			if child == nil {
				return nil, errors.UnknownCommand(tok, errors.WithCommand(p.prog))
			}
			// Record the label exactly as typed; deeper levels overwrite.
			args[p.sub.dest] = tok
			h, err := child.parseInto(args, argv[i+1:], known)
			if err != nil {
				return nil, err
			}
			if h == nil {
				h = p.handler
			}
			return h, nil
		}
		if known {
			continue
		}
		return nil, errors.UnknownArgument(tok, errors.WithCommand(p.prog))
	}
	if !known && posIdx < len(p.positionals) {
		return nil, errors.MissingArgument(p.positionals[posIdx].name, errors.WithCommand(p.prog))
	}
	return p.handler, nil
}

// numericToken reports whether tok is a negative number. Such tokens are
// positional values, not options.
func numericToken(tok string) bool {
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

// Usage renders a help page for this parser level.
func (p *Parser) Usage() string {
	var b strings.Builder
	fmt.Fprintf(&b, "usage: %s", p.prog)
	if len(p.options) > 0 {
		b.WriteString(" [options]")
	}
	for _, pos := range p.positionals {
		fmt.Fprintf(&b, " <%s>", pos.name)
	}
	if p.HasSubcommands() {
		b.WriteString(" <command> ...")
	}
	b.WriteString("\n")
	if p.description != "" {
		fmt.Fprintf(&b, "\n%s\n", p.description)
	}
	if len(p.positionals) > 0 {
		b.WriteString("\narguments:\n")
		for _, pos := range p.positionals {
			fmt.Fprintf(&b, "  %-22s %s\n", pos.name, pos.help)
		}
	}
	if len(p.options) > 0 {
		b.WriteString("\noptions:\n")
		for _, o := range p.options {
			fmt.Fprintf(&b, "  --%-20s %s\n", o.name, o.help)
		}
	}
	if p.HasSubcommands() {
		b.WriteString("\ncommands:\n")
		for _, label := range p.sub.order {
			name := label
			if al := p.sub.aliases[label]; len(al) > 0 {
				name = label + " (" + strings.Join(al, ", ") + ")"
			}
			fmt.Fprintf(&b, "  %-22s %s\n", name, p.sub.help[label])
		}
	}
	return b.String()
}

// IsHelp reports whether err came from a --help/-h request.
func IsHelp(err error) bool {
	return errors.Code(err) == errors.ErrCodeHelpRequested
}
