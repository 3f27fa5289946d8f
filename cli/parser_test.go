package cli

import (
	"strings"
	"testing"

	taskerrors "github.com/libcommon/taskkit/errors"
	"github.com/libcommon/taskkit/task"
)

func TestParseOptions(t *testing.T) {
	p := New("prog", "Test program")
	p.StringOption("color", "plain", "Output color")
	p.IntOption("max-lines", 0, "Line limit")
	p.BoolOption("verbose", false, "Verbose output")
	p.Positional("path", "Input path")

	args, _, err := p.Parse([]string{"--color", "red", "--max-lines=25", "--verbose", "notes.txt"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := args.StringOr("color", ""); got != "red" {
		t.Errorf("color = %q, want red", got)
	}
	// Dashes in option names become underscores in the bag.
	if got := args.IntOr("max_lines", -1); got != 25 {
		t.Errorf("max_lines = %d, want 25", got)
	}
	if !args.BoolOr("verbose", false) {
		t.Error("verbose = false, want true")
	}
	if got := args.StringOr("path", ""); got != "notes.txt" {
		t.Errorf("path = %q, want notes.txt", got)
	}
}

func TestParseDefaults(t *testing.T) {
	p := New("prog", "Test program")
	p.StringOption("color", "plain", "Output color")
	p.IntOption("max-lines", 10, "Line limit")

	args, _, err := p.Parse(nil)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := args.StringOr("color", ""); got != "plain" {
		t.Errorf("color = %q, want plain", got)
	}
	if got := args.IntOr("max_lines", -1); got != 10 {
		t.Errorf("max_lines = %d, want 10", got)
	}
}

func TestParseErrors(t *testing.T) {
	newParser := func() *Parser {
		p := New("prog", "Test program")
		p.IntOption("max-lines", 0, "Line limit")
		p.Positional("path", "Input path")
		return p
	}

	tests := []struct {
		name string
		argv []string
		code taskerrors.ErrorCode
	}{
		{"unknown option", []string{"notes.txt", "--nope"}, taskerrors.ErrCodeUnknownArgument},
		{"missing positional", []string{"--max-lines", "5"}, taskerrors.ErrCodeMissingArgument},
		{"missing option value", []string{"notes.txt", "--max-lines"}, taskerrors.ErrCodeMissingArgument},
		{"bad int value", []string{"notes.txt", "--max-lines", "many"}, taskerrors.ErrCodeInvalidArgument},
		{"surplus positional", []string{"notes.txt", "extra"}, taskerrors.ErrCodeUnknownArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := newParser().Parse(tt.argv)
			if err == nil {
				t.Fatal("expected parse error")
			}
			if taskerrors.Code(err) != tt.code {
				t.Errorf("error code = %v, want %v", taskerrors.Code(err), tt.code)
			}
		})
	}
}

func TestParseNegativeNumberPositional(t *testing.T) {
	p := New("prog", "Test program")
	p.Positional("offset", "Line offset")
	p.IntOption("max-lines", 0, "Line limit")

	args, _, err := p.Parse([]string{"-5", "--max-lines", "-3"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	// A lone negative number is a value, not an option.
	if got := args.StringOr("offset", ""); got != "-5" {
		t.Errorf("offset = %q, want -5", got)
	}
	if got := args.IntOr("max_lines", 0); got != -3 {
		t.Errorf("max_lines = %d, want -3", got)
	}
}

func TestParseKnownLenient(t *testing.T) {
	p := New("prog", "Test program")
	p.Positional("genus", "Genus")
	p.Positional("species", "Species")

	args, _, err := p.ParseKnown([]string{"Lumbricus", "terrestris", "--found-on", "land"})
	if err != nil {
		t.Fatalf("ParseKnown failed: %v", err)
	}
	if got := args.StringOr("genus", ""); got != "Lumbricus" {
		t.Errorf("genus = %q, want Lumbricus", got)
	}
	if got := args.StringOr("species", ""); got != "terrestris" {
		t.Errorf("species = %q, want terrestris", got)
	}
	if args.Has("found_on") {
		t.Error("unknown option must not land in the bag")
	}
}

func TestParseHelp(t *testing.T) {
	var buf strings.Builder
	p := New("prog", "Counts lines")
	p.SetOutput(&buf)
	p.Positional("path", "Input path")
	p.StringOption("color", "plain", "Output color")

	_, _, err := p.Parse([]string{"--help"})
	if err == nil {
		t.Fatal("expected help error")
	}
	if !IsHelp(err) {
		t.Errorf("IsHelp(%v) = false, want true", err)
	}
	usage := buf.String()
	for _, want := range []string{"usage: prog", "Counts lines", "path", "--color"} {
		if !strings.Contains(usage, want) {
			t.Errorf("usage output missing %q:\n%s", want, usage)
		}
	}
}

func TestSubcommandHelpFollowsRootOutput(t *testing.T) {
	p := New("animals", "CLI for animals")
	if _, err := p.AddCommand("worms", nil, "Segmented worms"); err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}

	// Redirect after the subcommand exists; help typed at the subcommand
	// level must land in the same writer.
	var buf strings.Builder
	p.SetOutput(&buf)

	_, _, err := p.Parse([]string{"worms", "--help"})
	if !IsHelp(err) {
		t.Fatalf("error = %v, want help request", err)
	}
	if !strings.Contains(buf.String(), "usage: animals worms") {
		t.Errorf("subcommand usage not redirected:\n%s", buf.String())
	}
}

func TestSubcommandDispatch(t *testing.T) {
	p := New("animals", "CLI for animals")
	group, err := p.AddCommand("invertebrates", []string{"i"}, "Invertebrate animals")
	if err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}
	leaf, err := group.AddCommand("arthropods", nil, "Arthropods")
	if err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}
	leaf.Positional("genus", "Genus")
	leaf.Positional("species", "Species")

	var invoked Args
	leaf.SetHandler(func(args Args) (task.Result, error) {
		invoked = args
		return nil, nil
	})

	args, h, err := p.Parse([]string{"i", "arthropods", "Neotibicen", "linnei"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if h == nil {
		t.Fatal("handler not returned")
	}
	if _, err := h(args); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if invoked == nil {
		t.Fatal("leaf handler never invoked")
	}
	// The deepest level wins; the group's alias "i" is overwritten.
	if got := args.StringOr("subcommand", ""); got != "arthropods" {
		t.Errorf("subcommand = %q, want arthropods", got)
	}
	if got := args.StringOr("genus", ""); got != "Neotibicen" {
		t.Errorf("genus = %q, want Neotibicen", got)
	}
	if got := args.StringOr("species", ""); got != "linnei" {
		t.Errorf("species = %q, want linnei", got)
	}
}

func TestSubcommandAliasRecordedAsTyped(t *testing.T) {
	p := New("animals", "CLI for animals")
	if _, err := p.AddCommand("invertebrates", []string{"i"}, "Invertebrate animals"); err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}

	args, _, err := p.Parse([]string{"i"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := args.StringOr("subcommand", ""); got != "i" {
		t.Errorf("subcommand = %q, want the alias as typed", got)
	}
}

func TestSubcommandCustomDest(t *testing.T) {
	p := New("animals", "CLI for animals")
	p.Subparsers("phylum")
	if _, err := p.AddCommand("annelida", nil, "Segmented worms"); err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}

	args, _, err := p.Parse([]string{"annelida"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := args.StringOr("phylum", ""); got != "annelida" {
		t.Errorf("phylum = %q, want annelida", got)
	}
}

func TestUnknownCommand(t *testing.T) {
	p := New("animals", "CLI for animals")
	if _, err := p.AddCommand("invertebrates", nil, "Invertebrate animals"); err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}

	_, _, err := p.Parse([]string{"vertebrates"})
	if err == nil {
		t.Fatal("expected error for unknown command")
	}
	if taskerrors.Code(err) != taskerrors.ErrCodeUnknownCommand {
		t.Errorf("error code = %v, want UNKNOWN_COMMAND", taskerrors.Code(err))
	}
}

func TestAddCommandDuplicate(t *testing.T) {
	p := New("animals", "CLI for animals")
	if _, err := p.AddCommand("worms", []string{"w"}, "Worms"); err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}

	if _, err := p.AddCommand("worms", nil, "Worms again"); taskerrors.Code(err) != taskerrors.ErrCodeDuplicateCommand {
		t.Errorf("duplicate label error = %v, want DUPLICATE_COMMAND", err)
	}
	if _, err := p.AddCommand("wrigglers", []string{"w"}, "Alias clash"); taskerrors.Code(err) != taskerrors.ErrCodeDuplicateCommand {
		t.Errorf("duplicate alias error = %v, want DUPLICATE_COMMAND", err)
	}
}

func TestHandlerFallsBackToParent(t *testing.T) {
	p := New("animals", "CLI for animals")
	var rootRan bool
	p.SetHandler(func(args Args) (task.Result, error) {
		rootRan = true
		return nil, nil
	})
	if _, err := p.AddCommand("invertebrates", nil, "Invertebrate animals"); err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}

	args, h, err := p.Parse([]string{"invertebrates"})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if h == nil {
		t.Fatal("expected fallback to the root handler")
	}
	if _, err := h(args); err != nil {
		t.Fatalf("handler failed: %v", err)
	}
	if !rootRan {
		t.Error("root handler never ran")
	}
}

func TestIntrospection(t *testing.T) {
	p := New("animals", "CLI for animals")
	if p.HasSubcommands() {
		t.Error("HasSubcommands() = true before any registration")
	}
	if _, err := p.AddCommand("worms", []string{"w"}, "Worms"); err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}
	if _, err := p.AddCommand("arthropods", nil, "Arthropods"); err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}

	if !p.HasSubcommands() {
		t.Error("HasSubcommands() = false")
	}
	if !p.HasSubcommand("worms") || !p.HasSubcommand("w") {
		t.Error("HasSubcommand must resolve labels and aliases")
	}
	if p.HasSubcommand("fish") {
		t.Error("HasSubcommand(fish) = true")
	}
	if sub := p.Subcommand("w"); sub == nil || sub.Description() != "Worms" {
		t.Errorf("Subcommand(w) = %v, want the worms parser", sub)
	}
	want := []string{"worms", "arthropods"}
	got := p.Subcommands()
	if len(got) != len(want) || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("Subcommands() = %v, want %v", got, want)
	}
}

func TestUsageListsCommands(t *testing.T) {
	p := New("animals", "CLI for animals")
	if _, err := p.AddCommand("worms", []string{"w"}, "Segmented worms"); err != nil {
		t.Fatalf("AddCommand failed: %v", err)
	}

	usage := p.Usage()
	for _, want := range []string{"<command>", "worms (w)", "Segmented worms"} {
		if !strings.Contains(usage, want) {
			t.Errorf("usage missing %q:\n%s", want, usage)
		}
	}
}
