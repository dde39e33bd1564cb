package sexy

import "fmt"

// Match checks actual against pattern. In a pattern, _ matches any one
// datum and ... inside a list matches zero or more items. The error names
// the path of the first mismatch, like "root[2][1]".
func Match(pattern, actual *Node) error {
	if err := match(pattern, actual, "root"); err != nil {
		return fmt.Errorf("%w\n  pattern: %s\n  actual:  %s", err, pattern, actual)
	}
	return nil
}

func match(pattern, actual *Node, path string) error {
	if pattern.IsWildcard() {
		return nil
	}
	if pattern.Type == NodeEllipsis {
		return fmt.Errorf("at %s: ... is only allowed inside a list", path)
	}
	if pattern.Type != actual.Type {
		return fmt.Errorf("at %s: expected %s %s, got %s %s", path, pattern.Type, pattern, actual.Type, actual)
	}
	if pattern.Type != NodeList {
		if pattern.Text != actual.Text {
			return fmt.Errorf("at %s: expected %s, got %s", path, pattern, actual)
		}
		return nil
	}
	return matchItems(pattern.Items, actual.Items, 0, path)
}

// matchItems matches patterns against items, where items[0] is at index
// offset of the enclosing list. An ellipsis tries the shortest run first.
func matchItems(patterns, items []*Node, offset int, path string) error {
	for i, pattern := range patterns {
		if pattern.Type == NodeEllipsis {
			rest := patterns[i+1:]
			var lastErr error
			for skip := 0; skip <= len(items)-i; skip++ {
				lastErr = matchItems(rest, items[i+skip:], offset+i+skip, path)
				if lastErr == nil {
					return nil
				}
			}
			return lastErr
		}
		if i >= len(items) {
			return fmt.Errorf("at %s: expected %s at index %d, but the list has only %d items", path, pattern, offset+i, offset+len(items))
		}
		if err := match(pattern, items[i], fmt.Sprintf("%s[%d]", path, offset+i)); err != nil {
			return err
		}
	}
	if len(items) > len(patterns) {
		return fmt.Errorf("at %s: unexpected extra item %s at index %d", path, items[len(patterns)], offset+len(patterns))
	}
	return nil
}
