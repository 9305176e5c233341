// Package staging buffers keyed entries until they are committed as a whole,
// so a reader that fails halfway never leaves a partially filled table.
package staging

type node[K comparable, V any] struct {
	key   K
	value V
}

type Stage[K comparable, V any] struct {
	Index map[K]int
	Nodes []node[K, V]
}

func NewStage[K comparable, V any](initialCapacity int) *Stage[K, V] {
	return &Stage[K, V]{
		Index: make(map[K]int, initialCapacity),
		Nodes: make([]node[K, V], 0, initialCapacity),
	}
}

func (s *Stage[K, V]) Len() int {
	return len(s.Nodes)
}

// Add stages value under key. It returns false, leaving the stage unchanged,
// when key is already staged.
func (s *Stage[K, V]) Add(key K, value V) bool {
	if _, prs := s.Index[key]; prs {
		return false
	}
	s.Index[key] = len(s.Nodes)
	s.Nodes = append(s.Nodes, node[K, V]{key: key, value: value})
	return true
}

// CommitTo copies every staged entry into permanent, in insertion order.
// Later entries overwrite existing keys in permanent.
func (s *Stage[K, V]) CommitTo(permanent map[K]V) {
	for _, n := range s.Nodes {
		permanent[n.key] = n.value
	}
}
