package pass

import (
	"fmt"

	"svdata-hq/svast/pkg/svast/concrete"
)

// RenameIdentifier returns an internal pass that replaces every
// Identifier whose text is from with one whose text is to. Both must be
// valid identifiers.
func RenameIdentifier(from, to string) (Pass, error) {
	if err := concrete.ValidateIdentifier(from); err != nil {
		return nil, fmt.Errorf("rename from: %w", err)
	}
	if err := concrete.ValidateIdentifier(to); err != nil {
		return nil, fmt.Errorf("rename to: %w", err)
	}

	name := fmt.Sprintf("rename(%s->%s)", from, to)
	return Internal(name, func(tree concrete.Node) (concrete.Node, error) {
		return concrete.Transform(tree, func(n concrete.Node) (concrete.Node, error) {
			if id, ok := n.(*concrete.Identifier); ok && id.Text() == from {
				return concrete.NewIdentifier(to), nil
			}
			return nil, nil
		})
	}), nil
}
