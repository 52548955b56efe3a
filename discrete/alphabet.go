package discrete

// alphabet maps between string labels and their integer IDs.
// It is read-only once built.
type alphabet struct {
	toID  map[string]int
	toStr []string
}

// newAlphabet builds an alphabet from labels in order. table names the
// alphabet in errors ("states" or "observations").
func newAlphabet(table string, labels []string) (*alphabet, error) {
	a := &alphabet{
		toID:  make(map[string]int, len(labels)),
		toStr: make([]string, 0, len(labels)),
	}
	for i, s := range labels {
		if s == "" {
			return nil, &LabelError{Table: table, Index: i, Label: s, Reason: "empty label"}
		}
		if prev, ok := a.toID[s]; ok {
			return nil, &LabelError{Table: table, Index: i, Label: s, Reason: "duplicate of index", Other: prev}
		}
		a.toID[s] = len(a.toStr)
		a.toStr = append(a.toStr, s)
	}
	return a, nil
}

// Get returns the ID for a string, or -1 if not found.
func (a *alphabet) Get(s string) int {
	if id, ok := a.toID[s]; ok {
		return id
	}
	return -1
}

// Label returns the string for an ID.
func (a *alphabet) Label(id int) string {
	return a.toStr[id]
}

// Size returns the number of entries.
func (a *alphabet) Size() int {
	return len(a.toStr)
}

// Labels returns a copy of the labels in ID order.
func (a *alphabet) Labels() []string {
	out := make([]string, len(a.toStr))
	copy(out, a.toStr)
	return out
}
