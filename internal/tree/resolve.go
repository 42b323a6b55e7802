package tree

import "strings"

// Resolve translates a path into the NodeID it names, relative to the
// cursor. A leading "/" makes the path absolute. Empty and "." segments are
// skipped, ".." moves to the parent and is clamped at the root, and any
// other segment must name an existing child. Resolution is a pure read.
func (t *Tree) Resolve(path string) (NodeID, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, err := t.resolveLocked(OpResolve, path, t.cursor)
	if err != nil {
		return InvalidID, err
	}
	return n.id, nil
}

// ResolveFrom is Resolve with an explicit starting directory instead of the
// cursor.
func (t *Tree) ResolveFrom(path string, start NodeID) (NodeID, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	s, ok := t.load(start)
	if !ok {
		return InvalidID, opError(OpResolve, path, ErrNotFound)
	}
	if s.kind != KindDirectory {
		return InvalidID, opError(OpResolve, path, ErrNotADirectory)
	}
	n, err := t.resolveLocked(OpResolve, path, start)
	if err != nil {
		return InvalidID, err
	}
	return n.id, nil
}

// resolveLocked walks path segment by segment from start (or the root for
// absolute paths) and returns the final node. It fails with ErrNotFound on
// the first segment that does not name a child; files have no children, so
// descending through a file fails the same way. Caller holds the lock.
func (t *Tree) resolveLocked(op, path string, start NodeID) (*node, error) {
	cur, ok := t.load(start)
	if !ok {
		return nil, opError(op, path, ErrNotFound)
	}
	if strings.HasPrefix(path, "/") {
		root, _ := t.load(t.root)
		cur = root
	}
	for _, segment := range strings.Split(path, "/") {
		switch segment {
		case "", ".":
			// no-op
		case "..":
			if cur.isRoot() {
				continue // clamped, never an error
			}
			parent, ok := t.load(cur.parent)
			if !ok {
				return nil, opError(op, path, ErrNotFound)
			}
			cur = parent
		default:
			child, ok := t.findChildLocked(cur, segment)
			if !ok {
				return nil, opError(op, path, ErrNotFound)
			}
			cur = child
		}
	}
	return cur, nil
}
