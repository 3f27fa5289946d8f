// Package cli maps command line arguments onto tasks and assembles
// hierarchical subcommand trees.
//
// A task becomes a command by implementing Command: it names itself,
// describes itself, optionally declares aliases, and configures its
// positional and option arguments on a Parser. Dispatch is always the
// same: construct the task, merge the parsed argument bag into it, run it.
//
// # Single Command
//
//	type CountLinesTask struct {
//	    task.Base
//	    InputPath string
//	}
//
//	func (t *CountLinesTask) CommandName() string  { return "linecount" }
//	func (t *CountLinesTask) Description() string  { return "Count lines in a file" }
//	func (t *CountLinesTask) Aliases() []string    { return nil }
//	func (t *CountLinesTask) Configure(p *cli.Parser) {
//	    p.Positional("input_path", "Path to input file")
//	}
//
//	res, err := cli.RunCommand(func() cli.Command { return &CountLinesTask{} }, nil)
//
// # Command Trees
//
// A Config is a rose tree of entries. Each entry either binds a task
// (leaf) or names a group label with children:
//
//	cfg := cli.Config{
//	    {Command: "invertebrates", Aliases: []string{"i"}, Help: "Invertebrate animals", Children: cli.Config{
//	        {Task: newWormsTask},
//	        {Task: newArthropodsTask},
//	    }},
//	}
//	root, err := cli.Build(cli.New("animals", "CLI for animals"), cfg)
//	res, err := cli.Dispatch(root, os.Args[1:])
//
// The invoked label is recorded in the argument bag under the subparser
// destination (default "subcommand"), exactly as the user typed it, with
// the deepest level winning.
package cli
