package tree

// NodeID is the stable arena identity of a node. IDs are assigned once at
// allocation and never reused within a session; a removed subtree's IDs
// simply stop resolving.
type NodeID uint64

// InvalidID is the zero NodeID. It is never allocated and doubles as the
// root's parent reference.
const InvalidID NodeID = 0

// NodeKind discriminates directories from files
type NodeKind int

const (
	KindUnknown NodeKind = iota
	KindDirectory
	KindFile
)

func (k NodeKind) String() string {
	switch k {
	case KindDirectory:
		return "directory"
	case KindFile:
		return "file"
	default:
		return "unknown"
	}
}

// DirEntry is the read-only listing view of a node
type DirEntry struct {
	Name string
	Kind NodeKind
}

// node is an arena entry. The parent field is a non-owning back-reference
// used only for ".." traversal and path rendering; ownership flows strictly
// through the children slice. Children keep insertion order.
type node struct {
	id       NodeID
	name     string // unique among siblings; "" only for the root
	kind     NodeKind
	parent   NodeID   // InvalidID only for the root
	children []NodeID // directories only
	content  []string // files only
}

func (n *node) isRoot() bool {
	return n.parent == InvalidID
}
