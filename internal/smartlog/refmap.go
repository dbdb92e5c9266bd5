package smartlog

// RefMap answers which reference names point at a commit. It also carries the
// current checkout position so the renderer can mark it.
type RefMap struct {
	headID string
	trunk  string
	labels map[string][]string
}

func NewRefMap(headID string) *RefMap {
	return &RefMap{headID: headID, labels: map[string][]string{}}
}

// Add registers a display name for the commit it points at. Names are kept in
// insertion order; registering the same name twice for a commit is a no-op.
func (m *RefMap) Add(name, id string) {
	if name == "" || id == "" {
		return
	}
	for _, existing := range m.labels[id] {
		if existing == name {
			return
		}
	}
	m.labels[id] = append(m.labels[id], name)
}

// Labels returns the names registered for a commit, nil when there are none.
func (m *RefMap) Labels(id string) []string {
	return m.labels[id]
}

// IsHead reports whether id is the current checkout position.
func (m *RefMap) IsHead(id string) bool {
	return id != "" && id == m.headID
}

// MarkTrunk records which label is the trunk so the renderer can set it
// apart from ordinary branch labels.
func (m *RefMap) MarkTrunk(name string) {
	m.trunk = name
}

func (m *RefMap) IsTrunk(name string) bool {
	return name != "" && name == m.trunk
}
