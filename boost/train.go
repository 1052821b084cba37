// Package boost trains gradient-boosted regression tree ensembles with squared loss.
//
// Features are discretised into at most Options.Bins thresholds once, before training. Every
// round fits a tree to the current residuals, growing it leaf-wise: the leaf whose best split
// most reduces the squared error is split first, until the tree has Options.Leaves leaves or
// no split leaves Options.MinLeaf examples on both sides. Missing values (NaN) are routed to
// whichever side of a split yields the larger gain, or to the more populated side when no
// training example was missing.
package boost

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gopkg.in/cheggaaa/pb.v1"
	"math"
	"math/rand"
	"sort"
)

// Ensemble is a trained additive model: Base plus the sum of every tree's prediction.
type Ensemble struct {
	Base  float64
	Width int
	Trees []Tree
}

// Predict scores one feature vector.
func (e *Ensemble) Predict(x []float64) (float64, error) {
	if len(x) != e.Width {
		return 0, errors.Errorf("boost: expected %d features, got %d", e.Width, len(x))
	}
	s := e.Base
	for _, t := range e.Trees {
		s += t.Predict(x)
	}
	return s, nil
}

func (o Options) validate() error {
	switch {
	case o.Trees < 1:
		return errors.Errorf("boost: number of trees must be positive, got %d", o.Trees)
	case o.Leaves < 2:
		return errors.Errorf("boost: a tree needs at least 2 leaves, got %d", o.Leaves)
	case o.MinLeaf < 1:
		return errors.Errorf("boost: minimum leaf size must be positive, got %d", o.MinLeaf)
	case o.LearningRate <= 0 || math.IsNaN(o.LearningRate):
		return errors.Errorf("boost: learning rate must be positive, got %v", o.LearningRate)
	case o.Bins < 1 || o.Bins >= missing:
		return errors.Errorf("boost: bins must be in [1,%d), got %d", missing, o.Bins)
	case !(o.RowFraction > 0 && o.RowFraction <= 1):
		return errors.Errorf("boost: row fraction must be in (0,1], got %v", o.RowFraction)
	case !(o.FeatureFraction > 0 && o.FeatureFraction <= 1):
		return errors.Errorf("boost: feature fraction must be in (0,1], got %v", o.FeatureFraction)
	}
	return nil
}

// Train fits an ensemble to the rows of x and the labels y.
func Train(x [][]float64, y []float64, options ...Option) (*Ensemble, error) {
	o := Apply(options...)
	if err := o.validate(); err != nil {
		return nil, err
	}
	n := len(x)
	if n == 0 {
		return nil, errors.New("boost: no training examples")
	}
	if len(y) != n {
		return nil, errors.Errorf("boost: %d rows but %d labels", n, len(y))
	}
	p := len(x[0])
	if p == 0 {
		return nil, errors.New("boost: rows have no features")
	}
	for i := range x {
		if len(x[i]) != p {
			return nil, errors.Errorf("boost: row %d has %d features, expected %d", i, len(x[i]), p)
		}
	}
	if floats.HasNaN(y) {
		return nil, errors.New("boost: labels contain missing values")
	}
	for i, v := range y {
		if math.IsInf(v, 0) {
			return nil, errors.Errorf("boost: label %d is infinite", i)
		}
	}

	data := newBinned(x, o.Bins)
	e := &Ensemble{
		Base:  stat.Mean(y, nil),
		Width: p,
	}

	pred := make([]float64, n)
	for i := range pred {
		pred[i] = e.Base
	}
	residual := make([]float64, n)
	rnd := rand.New(rand.NewSource(o.Seed))

	var bar *pb.ProgressBar
	if o.progress != nil {
		bar = pb.New(o.Trees)
		bar.Output = o.progress
		bar.Start()
	}

	for t := 0; t < o.Trees; t++ {
		floats.SubTo(residual, y, pred)
		rows := sample(rnd, n, o.RowFraction)
		features := sample(rnd, p, o.FeatureFraction)

		tree := grow(data, residual, rows, features, o)
		e.Trees = append(e.Trees, tree)
		for i := range pred {
			pred[i] += tree.Predict(x[i])
		}
		if bar != nil {
			bar.Increment()
		}
	}
	if bar != nil {
		bar.Finish()
	}
	return e, nil
}

// sample draws a sorted subset of [0,n) of the given fraction. A fraction of one draws
// nothing from rnd.
func sample(rnd *rand.Rand, n int, fraction float64) []int {
	if fraction >= 1 {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}
	k := int(fraction * float64(n))
	if k < 1 {
		k = 1
	}
	picked := rnd.Perm(n)[:k]
	sort.Ints(picked)
	return picked
}

// minGain ignores splits whose gain is floating-point noise.
const minGain = 1e-12

type split struct {
	gain        float64
	feature     int
	bin         int // rows in bins <= bin go left.
	missingLeft bool
}

type leaf struct {
	rows   []int
	parent int
	left   bool
	split  split
}

func grow(data binned, r []float64, rows []int, features []int, o Options) Tree {
	var tree Tree
	root := &leaf{rows: rows, parent: -1}
	root.split = bestSplit(data, r, rows, features, o.MinLeaf)
	leaves := []*leaf{root}

	for len(leaves) < o.Leaves {
		best := -1
		for i, l := range leaves {
			if l.split.gain > 0 && (best < 0 || l.split.gain > leaves[best].split.gain) {
				best = i
			}
		}
		if best < 0 {
			break
		}

		l := leaves[best]
		s := l.split
		node := len(tree.Nodes)
		tree.Nodes = append(tree.Nodes, Node{
			Feature:     s.feature,
			Threshold:   data.binners[s.feature].thresholds[s.bin],
			DefaultLeft: s.missingLeft,
		})
		attach(&tree, l.parent, l.left, node)

		column := data.columns[s.feature]
		var lrows, rrows []int
		for _, i := range l.rows {
			b := column[i]
			if (b == missing && s.missingLeft) || (b != missing && int(b) <= s.bin) {
				lrows = append(lrows, i)
			} else {
				rrows = append(rrows, i)
			}
		}

		left := &leaf{rows: lrows, parent: node, left: true}
		left.split = bestSplit(data, r, lrows, features, o.MinLeaf)
		right := &leaf{rows: rrows, parent: node, left: false}
		right.split = bestSplit(data, r, rrows, features, o.MinLeaf)
		leaves[best] = left
		leaves = append(leaves, right)
	}

	tree.Leaves = make([]float64, len(leaves))
	for i, l := range leaves {
		tree.Leaves[i] = o.LearningRate * mean(r, l.rows)
		attach(&tree, l.parent, l.left, ^i)
	}
	return tree
}

func attach(t *Tree, parent int, left bool, child int) {
	if parent < 0 {
		return
	}
	if left {
		t.Nodes[parent].Left = child
	} else {
		t.Nodes[parent].Right = child
	}
}

func mean(r []float64, rows []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	s := 0.0
	for _, i := range rows {
		s += r[i]
	}
	return s / float64(len(rows))
}

// bestSplit finds the split of rows maximising the reduction in squared error,
// sum_l^2/n_l + sum_r^2/n_r - sum^2/n. A zero gain means the rows cannot be split.
func bestSplit(data binned, r []float64, rows []int, features []int, minLeaf int) split {
	var best split
	n := len(rows)
	if n < 2*minLeaf {
		return best
	}
	total := 0.0
	for _, i := range rows {
		total += r[i]
	}
	parent := total * total / float64(n)

	for _, j := range features {
		b := data.binners[j]
		size := b.size()
		if size < 2 {
			continue
		}
		counts := make([]int, size)
		sums := make([]float64, size)
		var mCount int
		var mSum float64
		column := data.columns[j]
		for _, i := range rows {
			bin := column[i]
			if bin == missing {
				mCount++
				mSum += r[i]
				continue
			}
			counts[bin]++
			sums[bin] += r[i]
		}

		var lc int
		var ls float64
		for s := 0; s < size-1; s++ {
			lc += counts[s]
			ls += sums[s]
			if counts[s] == 0 {
				continue
			}
			choices := [2]bool{true, false}
			tries := choices[:]
			if mCount == 0 {
				tries = []bool{lc >= n-lc}
			}
			for _, missingLeft := range tries {
				cl, sl := lc, ls
				if missingLeft {
					cl += mCount
					sl += mSum
				}
				cr, sr := n-cl, total-sl
				if cl < minLeaf || cr < minLeaf {
					continue
				}
				gain := sl*sl/float64(cl) + sr*sr/float64(cr) - parent
				if gain > best.gain && gain > minGain {
					best = split{
						gain:        gain,
						feature:     j,
						bin:         s,
						missingLeft: missingLeft,
					}
				}
			}
		}
	}
	return best
}
