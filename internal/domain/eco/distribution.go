package eco

// Distribution holds one frequency slot per ECO index. A zero slot means the
// code does not occur in the population.
type Distribution []float64

// NewDistribution counts each code and scales the counts by the size of the
// key space.
func NewDistribution(codes []Code) Distribution {
	d := make(Distribution, Space)
	for _, c := range codes {
		d[c.Index()]++
	}
	for i := range d {
		d[i] /= Space
	}
	return d
}

// Observed returns the number of codes present in the population.
func (d Distribution) Observed() int {
	n := 0
	for _, v := range d {
		if v != 0 {
			n++
		}
	}
	return n
}

// At returns the slot value for c.
func (d Distribution) At(c Code) float64 {
	return d[c.Index()]
}
