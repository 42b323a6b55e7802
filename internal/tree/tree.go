package tree

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/puzpuzpuz/xsync/v3"
)

// DefaultFileSuffixes are the file-name suffixes Touch accepts when the
// tree is built with New.
var DefaultFileSuffixes = []string{".txt"}

// Tree is the whole namespace: an arena of nodes addressed by NodeID, a
// distinguished root directory and a cursor used to resolve relative paths.
//
// Every operation takes the tree-wide lock, so a Tree is safe for
// concurrent callers even though the simulated filesystem itself has no
// notion of concurrent access. Operations validate all preconditions before
// mutating anything; a failed call never leaves a partial change behind.
type Tree struct {
	mu       sync.RWMutex
	nodes    *xsync.MapOf[uint64, *node] // arena: NodeID -> node
	lastID   atomic.Uint64             // last NodeID assigned
	root     NodeID
	cursor   NodeID // current directory; always a live directory node
	suffixes []string
}

// New creates a tree holding only the root directory, accepting the
// default text-file suffixes for Touch.
func New() *Tree {
	return NewWithSuffixes(DefaultFileSuffixes)
}

// NewWithSuffixes creates a tree that accepts the given file-name suffixes
// for Touch. An empty slice falls back to the defaults.
func NewWithSuffixes(suffixes []string) *Tree {
	if len(suffixes) == 0 {
		suffixes = DefaultFileSuffixes
	}
	t := &Tree{
		nodes:    xsync.NewMapOf[uint64, *node](),
		suffixes: append([]string(nil), suffixes...),
	}
	root := t.alloc("", KindDirectory, InvalidID)
	t.root = root.id
	t.cursor = root.id
	return t
}

// Root returns the root directory's NodeID.
func (t *Tree) Root() NodeID {
	return t.root
}

// Cursor returns the current directory's NodeID.
func (t *Tree) Cursor() NodeID {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.cursor
}

// alloc creates a node, registers it in the arena and returns it.
// Caller must hold the write lock (or be inside construction).
func (t *Tree) alloc(name string, kind NodeKind, parent NodeID) *node {
	n := &node{
		id:     NodeID(t.lastID.Add(1)),
		name:   name,
		kind:   kind,
		parent: parent,
	}
	t.nodes.Store(uint64(n.id), n)
	return n
}

func (t *Tree) load(id NodeID) (*node, bool) {
	return t.nodes.Load(uint64(id))
}

// findChildLocked scans dir's ordered children for an exact name match.
func (t *Tree) findChildLocked(dir *node, name string) (*node, bool) {
	for _, cid := range dir.children {
		if child, ok := t.load(cid); ok && child.name == name {
			return child, true
		}
	}
	return nil, false
}

// unlinkChildLocked removes id from dir's children slice, preserving the
// order of the remaining siblings.
func (t *Tree) unlinkChildLocked(dir *node, id NodeID) {
	for i, cid := range dir.children {
		if cid == id {
			dir.children = append(dir.children[:i], dir.children[i+1:]...)
			return
		}
	}
}

// validName rejects names that could not round-trip through the resolver.
func validName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.Contains(name, "/")
}

// Stat returns the name and kind of a live node.
func (t *Tree) Stat(id NodeID) (DirEntry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	n, ok := t.load(id)
	if !ok {
		return DirEntry{}, opError(OpStat, "", ErrNotFound)
	}
	return DirEntry{Name: n.name, Kind: n.kind}, nil
}

// ListChildren returns the ordered (name, kind) entries of a directory.
func (t *Tree) ListChildren(dir NodeID) ([]DirEntry, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	d, ok := t.load(dir)
	if !ok {
		return nil, opError(OpList, "", ErrNotFound)
	}
	if d.kind != KindDirectory {
		return nil, opError(OpList, d.name, ErrNotADirectory)
	}
	entries := make([]DirEntry, 0, len(d.children))
	for _, cid := range d.children {
		if child, ok := t.load(cid); ok {
			entries = append(entries, DirEntry{Name: child.name, Kind: child.kind})
		}
	}
	return entries, nil
}

// CurrentPath renders the absolute path from root to the cursor, joined by
// "/". The root itself renders as "/".
func (t *Tree) CurrentPath() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.pathLocked(t.cursor)
}

func (t *Tree) pathLocked(id NodeID) string {
	var parts []string
	for {
		n, ok := t.load(id)
		if !ok || n.isRoot() {
			break
		}
		parts = append(parts, n.name)
		id = n.parent
	}
	if len(parts) == 0 {
		return "/"
	}
	// parts were collected leaf-first
	var sb strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		sb.WriteByte('/')
		sb.WriteString(parts[i])
	}
	return sb.String()
}

// Mkdir creates an empty directory named name under dir.
func (t *Tree) Mkdir(dir NodeID, name string) (NodeID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, ok := t.load(dir)
	if !ok {
		return InvalidID, opError(OpMkdir, name, ErrNotFound)
	}
	if d.kind != KindDirectory {
		return InvalidID, opError(OpMkdir, d.name, ErrNotADirectory)
	}
	if !validName(name) {
		return InvalidID, opError(OpMkdir, name, ErrInvalidArgument)
	}
	if _, exists := t.findChildLocked(d, name); exists {
		return InvalidID, opError(OpMkdir, name, ErrDuplicateName)
	}

	child := t.alloc(name, KindDirectory, d.id)
	d.children = append(d.children, child.id)
	return child.id, nil
}

// Touch creates an empty file named name under dir. The name must end in
// one of the tree's recognized text-file suffixes.
func (t *Tree) Touch(dir NodeID, name string) (NodeID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	d, ok := t.load(dir)
	if !ok {
		return InvalidID, opError(OpTouch, name, ErrNotFound)
	}
	if d.kind != KindDirectory {
		return InvalidID, opError(OpTouch, d.name, ErrNotADirectory)
	}
	if !validName(name) || !t.recognizedSuffix(name) {
		return InvalidID, opError(OpTouch, name, ErrInvalidArgument)
	}
	if _, exists := t.findChildLocked(d, name); exists {
		return InvalidID, opError(OpTouch, name, ErrDuplicateName)
	}

	child := t.alloc(name, KindFile, d.id)
	child.content = []string{}
	d.children = append(d.children, child.id)
	return child.id, nil
}

func (t *Tree) recognizedSuffix(name string) bool {
	for _, suffix := range t.suffixes {
		if strings.HasSuffix(name, suffix) && len(name) > len(suffix) {
			return true
		}
	}
	return false
}

// Cd moves the cursor to the directory the path resolves to.
func (t *Tree) Cd(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	target, err := t.resolveLocked(OpCd, path, t.cursor)
	if err != nil {
		return err
	}
	if target.kind != KindDirectory {
		return opError(OpCd, path, ErrNotADirectory)
	}
	t.cursor = target.id
	return nil
}

// Remove detaches the node at path from its parent and discards the whole
// subtree; the removed IDs no longer resolve. If the cursor was inside the
// removed subtree it is reset to the removed node's former parent, so the
// cursor always points at a live directory.
func (t *Tree) Remove(path string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	target, err := t.resolveLocked(OpRemove, path, t.cursor)
	if err != nil {
		return err
	}
	if target.isRoot() {
		return opError(OpRemove, path, ErrRootProtected)
	}

	parent, ok := t.load(target.parent)
	if !ok {
		return opError(OpRemove, path, ErrNotFound)
	}

	if t.isSelfOrDescendantLocked(target.id, t.cursor) {
		t.cursor = parent.id
	}

	t.unlinkChildLocked(parent, target.id)
	t.releaseSubtreeLocked(target)
	return nil
}

// releaseSubtreeLocked deletes a detached node and all its descendants from
// the arena. Order does not matter; the subtree is already unreachable.
func (t *Tree) releaseSubtreeLocked(n *node) {
	for _, cid := range n.children {
		if child, ok := t.load(cid); ok {
			t.releaseSubtreeLocked(child)
		}
	}
	t.nodes.Delete(uint64(n.id))
}

// isSelfOrDescendantLocked reports whether id is ancestor itself or lies
// anywhere inside ancestor's subtree.
func (t *Tree) isSelfOrDescendantLocked(ancestor, id NodeID) bool {
	for id != InvalidID {
		if id == ancestor {
			return true
		}
		n, ok := t.load(id)
		if !ok {
			return false
		}
		id = n.parent
	}
	return false
}

// Rename changes the name of the node at path in place. The root cannot be
// renamed, and no sibling may already bear newName.
func (t *Tree) Rename(path, newName string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	target, err := t.resolveLocked(OpRename, path, t.cursor)
	if err != nil {
		return err
	}
	if target.isRoot() {
		return opError(OpRename, path, ErrRootProtected)
	}
	if !validName(newName) {
		return opError(OpRename, newName, ErrInvalidArgument)
	}

	parent, _ := t.load(target.parent)
	if sibling, exists := t.findChildLocked(parent, newName); exists && sibling.id != target.id {
		return opError(OpRename, newName, ErrDuplicateName)
	}
	target.name = newName
	return nil
}

// destination is the outcome of resolving a copy/move destination spec:
// either an existing directory (keep the source's name) or a resolvable
// parent directory plus a new name.
type destination struct {
	parent *node
	name   string // "" means keep the source's own name
}

// resolveDestLocked implements the shared cp/mv destination rule. If spec
// resolves to an existing directory the subject lands there under its own
// name; if spec resolves to a file that is an error; if spec does not
// resolve it is split on the last "/" into an existing parent directory and
// a fresh name.
func (t *Tree) resolveDestLocked(op, spec string) (destination, error) {
	if target, err := t.resolveLocked(op, spec, t.cursor); err == nil {
		if target.kind != KindDirectory {
			return destination{}, opError(op, spec, ErrNotADirectory)
		}
		return destination{parent: target}, nil
	}

	parentPath, name := ".", spec
	if idx := strings.LastIndex(spec, "/"); idx >= 0 {
		parentPath, name = spec[:idx], spec[idx+1:]
		if parentPath == "" {
			parentPath = "/"
		}
	}
	if !validName(name) {
		return destination{}, opError(op, spec, ErrInvalidArgument)
	}
	parent, err := t.resolveLocked(op, parentPath, t.cursor)
	if err != nil {
		return destination{}, err
	}
	if parent.kind != KindDirectory {
		return destination{}, opError(op, parentPath, ErrNotADirectory)
	}
	return destination{parent: parent, name: name}, nil
}

// Copy deep-clones the node at srcPath into the destination. The clone gets
// fresh identities for every node and independently owned content; mutating
// either side afterwards never affects the other. It returns the clone's ID.
func (t *Tree) Copy(srcPath, destSpec string) (NodeID, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	src, err := t.resolveLocked(OpCopy, srcPath, t.cursor)
	if err != nil {
		return InvalidID, err
	}
	dest, err := t.resolveDestLocked(OpCopy, destSpec)
	if err != nil {
		return InvalidID, err
	}
	name := dest.name
	if name == "" {
		name = src.name
	}
	// copying the root under its empty name would create an unresolvable node
	if !validName(name) {
		return InvalidID, opError(OpCopy, destSpec, ErrInvalidArgument)
	}
	if _, exists := t.findChildLocked(dest.parent, name); exists {
		return InvalidID, opError(OpCopy, name, ErrDuplicateName)
	}

	clone := t.cloneSubtreeLocked(src, dest.parent.id, name)
	dest.parent.children = append(dest.parent.children, clone.id)
	return clone.id, nil
}

// cloneSubtreeLocked allocates an independent deep copy of src under
// parent, preserving relative structure, kinds and content.
func (t *Tree) cloneSubtreeLocked(src *node, parent NodeID, name string) *node {
	clone := t.alloc(name, src.kind, parent)
	if src.kind == KindFile {
		clone.content = append([]string{}, src.content...)
	}
	for _, cid := range src.children {
		child, ok := t.load(cid)
		if !ok {
			continue
		}
		childClone := t.cloneSubtreeLocked(child, clone.id, child.name)
		clone.children = append(clone.children, childClone.id)
	}
	return clone
}

// Move detaches the node at srcPath from its parent and reattaches it under
// the destination, keeping its identity, children and content. A name-only
// destination spec also renames it. The root cannot be moved, and a
// directory cannot be moved into itself or one of its own descendants.
func (t *Tree) Move(srcPath, destSpec string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	src, err := t.resolveLocked(OpMove, srcPath, t.cursor)
	if err != nil {
		return err
	}
	if src.isRoot() {
		return opError(OpMove, srcPath, ErrRootProtected)
	}
	dest, err := t.resolveDestLocked(OpMove, destSpec)
	if err != nil {
		return err
	}
	// Reparenting under the moved subtree would orphan it in a cycle.
	if t.isSelfOrDescendantLocked(src.id, dest.parent.id) {
		return opError(OpMove, destSpec, ErrInvalidArgument)
	}
	name := dest.name
	if name == "" {
		name = src.name
	}
	if sibling, exists := t.findChildLocked(dest.parent, name); exists && sibling.id != src.id {
		return opError(OpMove, name, ErrDuplicateName)
	}

	oldParent, ok := t.load(src.parent)
	if !ok {
		return opError(OpMove, srcPath, ErrNotFound)
	}
	t.unlinkChildLocked(oldParent, src.id)
	src.parent = dest.parent.id
	src.name = name
	dest.parent.children = append(dest.parent.children, src.id)
	return nil
}
