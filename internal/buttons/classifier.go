package buttons

// Range maps an inclusive span of raw analog samples to a button
type Range struct {
	Button ButtonId
	Min    int
	Max    int
}

func (r Range) Contains(sample int) bool {
	return sample >= r.Min && sample <= r.Max
}

// DefaultRanges is the threshold table of the stock resistor ladder, in scan order
var DefaultRanges = []Range{
	{Button: None, Min: -1, Max: 20},
	{Button: Left, Min: 120, Max: 130},
	{Button: Up, Min: 280, Max: 300},
	{Button: Down, Min: 440, Max: 450},
	{Button: Right, Min: 650, Max: 660},
	{Button: Commit, Min: 900, Max: 920},
}

type Classifier struct {
	ranges []Range
}

func NewClassifier(ranges []Range) *Classifier {
	table := make([]Range, len(ranges))
	copy(table, ranges)
	return &Classifier{ranges: table}
}

// Classify returns the button of the first range containing sample, or Unknown.
// If ranges overlap, the lowest index wins.
func (c *Classifier) Classify(sample int) ButtonId {
	for _, r := range c.ranges {
		if r.Contains(sample) {
			return r.Button
		}
	}
	return Unknown
}

func (c *Classifier) Ranges() []Range {
	result := make([]Range, len(c.ranges))
	copy(result, c.ranges)
	return result
}

// Overlaps returns all pairs of range indices that share at least one sample
func Overlaps(ranges []Range) [][2]int {
	var result [][2]int
	for i := 0; i < len(ranges); i++ {
		for j := i + 1; j < len(ranges); j++ {
			if ranges[i].Min <= ranges[j].Max && ranges[j].Min <= ranges[i].Max {
				result = append(result, [2]int{i, j})
			}
		}
	}
	return result
}
