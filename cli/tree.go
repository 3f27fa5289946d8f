package cli

import (
	"github.com/libcommon/taskkit/errors"
	"github.com/libcommon/taskkit/task"
)

// Config declares a command tree as an ordered list of entries, each a
// leaf task or a named group with children.
type Config []Entry

// Entry is one node of a command tree. Exactly one of Task or Command
// must be set: Task binds a leaf subcommand whose label, aliases, and
// help come from the command itself; Command names a grouping label
// whose subcommands are the entry's children.
type Entry struct {
	// Task constructs the command bound to this node.
	Task Factory
	// Command is the grouping label for a node with no bound task.
	Command string
	// Aliases lists alternative labels for a group node.
	Aliases []string
	// Help is the description shown for a group node.
	Help string
	// Children are the nested subcommands.
	Children Config
}

// Build attaches the command tree described by cfg to root, depth first,
// and returns root. Leaf entries get the standard dispatch handler
// bound; group entries parse through to their children. Malformed
// entries fail with INVALID_CONFIG, commands without a name or
// description with MISSING_COMMAND, and clashing labels or aliases with
// DUPLICATE_COMMAND.
func Build(root *Parser, cfg Config) (*Parser, error) {
	for _, e := range cfg {
		child, err := attach(root, e)
		if err != nil {
			return nil, err
		}
		if len(e.Children) > 0 {
			if _, err := Build(child, e.Children); err != nil {
				return nil, err
			}
		}
	}
	return root, nil
}

func attach(root *Parser, e Entry) (*Parser, error) {
	switch {
	case e.Task != nil && e.Command != "":
		return nil, errors.InvalidConfig("tree entry sets both Task and Command")
	case e.Task != nil:
		proto := e.Task()
		if proto.CommandName() == "" || proto.Description() == "" {
			return nil, errors.MissingCommand(task.Name(proto))
		}
		child, err := root.AddCommand(proto.CommandName(), proto.Aliases(), proto.Description())
		if err != nil {
			return nil, err
		}
		proto.Configure(child)
		child.SetHandler(bind(e.Task))
		return child, nil
	case e.Command != "":
		return root.AddCommand(e.Command, e.Aliases, e.Help)
	default:
		return nil, errors.InvalidConfig("tree entry sets neither Task nor Command")
	}
}
