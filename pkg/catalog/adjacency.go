package catalog

// Adjacency is a symmetric boolean matrix over vertex indices.
type Adjacency [][]bool

// BuildEdgeAdjacency marks every consecutive vertex pair of every face
// loop, including the wrap-around pair, as adjacent. The matrix is sized
// one past the largest index that appears in faces.
func BuildEdgeAdjacency(faces [][]int) Adjacency {
	size := 0
	for _, f := range faces {
		for _, v := range f {
			if v+1 > size {
				size = v + 1
			}
		}
	}

	m := make(Adjacency, size)
	for i := range m {
		m[i] = make([]bool, size)
	}

	for _, f := range faces {
		if len(f) == 0 {
			continue
		}
		last := f[len(f)-1]
		for _, v := range f {
			m[last][v] = true
			m[v][last] = true
			last = v
		}
	}
	return m
}

// Size returns the number of vertices the matrix covers.
func (a Adjacency) Size() int { return len(a) }

// Adjacent reports whether vertices i and j share an edge.
func (a Adjacency) Adjacent(i, j int) bool {
	if i < 0 || j < 0 || i >= len(a) || j >= len(a) {
		return false
	}
	return a[i][j]
}

// Edges returns every unordered adjacent pair (i < j) in row order.
func (a Adjacency) Edges() [][2]int {
	var edges [][2]int
	for i := range a {
		for j := i + 1; j < len(a); j++ {
			if a[i][j] {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return edges
}

// Count returns the number of unordered edges.
func (a Adjacency) Count() int {
	n := 0
	for i := range a {
		for j := i + 1; j < len(a); j++ {
			if a[i][j] {
				n++
			}
		}
	}
	return n
}
