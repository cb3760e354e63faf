package feedback

// Roles tracks which of the two feedback textures is currently the read
// source and which is the write target. The two entries are always a
// permutation of {0,1}; swapping exchanges the labels, never the data.
type Roles [2]int

func NewRoles() Roles {
	return Roles{0, 1}
}

// Read returns the index of the texture holding the latest feedback state.
func (r Roles) Read() int {
	return r[0]
}

// Write returns the index of the texture the next dispatch writes to.
func (r Roles) Write() int {
	return r[1]
}

// Swap exchanges the read and write labels. Called after every pingPong
// dispatch so the freshly written texture becomes the next read source.
func (r *Roles) Swap() {
	r[0], r[1] = r[1], r[0]
}
