package tree

// fileLocked loads id and checks it is a live file node.
func (t *Tree) fileLocked(op string, id NodeID) (*node, error) {
	n, ok := t.load(id)
	if !ok {
		return nil, opError(op, "", ErrNotFound)
	}
	if n.kind != KindFile {
		return nil, opError(op, n.name, ErrNotAFile)
	}
	return n, nil
}

// SetContent replaces the file's entire line sequence. The stored lines are
// an independent copy of the argument.
func (t *Tree) SetContent(file NodeID, lines []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, err := t.fileLocked(OpSetContent, file)
	if err != nil {
		return err
	}
	n.content = append([]string{}, lines...)
	return nil
}

// AppendLines appends lines to the end of the file, preserving existing
// order.
func (t *Tree) AppendLines(file NodeID, lines []string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, err := t.fileLocked(OpAppend, file)
	if err != nil {
		return err
	}
	n.content = append(n.content, lines...)
	return nil
}

// EditLine replaces the text of a single line. Line numbers are 1-indexed;
// anything outside [1, line count] is ErrInvalidArgument and leaves the
// content untouched.
func (t *Tree) EditLine(file NodeID, lineNumber int, text string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, err := t.fileLocked(OpEditLine, file)
	if err != nil {
		return err
	}
	if lineNumber < 1 || lineNumber > len(n.content) {
		return opError(OpEditLine, n.name, ErrInvalidArgument)
	}
	n.content[lineNumber-1] = text
	return nil
}

// DeleteLine removes a single 1-indexed line, shifting subsequent lines up.
func (t *Tree) DeleteLine(file NodeID, lineNumber int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	n, err := t.fileLocked(OpDeleteLine, file)
	if err != nil {
		return err
	}
	if lineNumber < 1 || lineNumber > len(n.content) {
		return opError(OpDeleteLine, n.name, ErrInvalidArgument)
	}
	i := lineNumber - 1
	n.content = append(n.content[:i], n.content[i+1:]...)
	return nil
}

// ReadContent returns an independent copy of the file's lines.
func (t *Tree) ReadContent(file NodeID) ([]string, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	n, err := t.fileLocked(OpRead, file)
	if err != nil {
		return nil, err
	}
	return append([]string{}, n.content...), nil
}
