package boost

import "io"

// Options are the hyper-parameters of a boosted ensemble.
type Options struct {
	Trees           int     // number of boosting rounds.
	Leaves          int     // maximum leaves per tree.
	MinLeaf         int     // minimum training examples in a leaf.
	LearningRate    float64 // shrinkage applied to every leaf value.
	Bins            int     // maximum distinct thresholds considered per feature.
	Seed            int64   // seed for row and feature subsampling.
	RowFraction     float64 // fraction of rows sampled per tree, in (0,1].
	FeatureFraction float64 // fraction of features sampled per tree, in (0,1].

	progress io.Writer
}

// Option configures training.
type Option func(*Options)

// Defaults are the FastTree regression defaults.
func Defaults() Options {
	return Options{
		Trees:           100,
		Leaves:          20,
		MinLeaf:         10,
		LearningRate:    0.2,
		Bins:            255,
		Seed:            0,
		RowFraction:     1,
		FeatureFraction: 1,
	}
}

// Trees sets the number of boosting rounds.
func Trees(n int) Option {
	return func(o *Options) {
		o.Trees = n
	}
}

// Leaves sets the maximum number of leaves per tree.
func Leaves(n int) Option {
	return func(o *Options) {
		o.Leaves = n
	}
}

// MinLeaf sets the minimum number of examples per leaf.
func MinLeaf(n int) Option {
	return func(o *Options) {
		o.MinLeaf = n
	}
}

// LearningRate sets the shrinkage.
func LearningRate(rate float64) Option {
	return func(o *Options) {
		o.LearningRate = rate
	}
}

// Bins sets the maximum number of thresholds per feature.
func Bins(n int) Option {
	return func(o *Options) {
		o.Bins = n
	}
}

// Seed sets the seed of the subsampling source.
func Seed(seed int64) Option {
	return func(o *Options) {
		o.Seed = seed
	}
}

// RowFraction sets the fraction of rows each tree is grown on.
func RowFraction(f float64) Option {
	return func(o *Options) {
		o.RowFraction = f
	}
}

// FeatureFraction sets the fraction of features each tree may split on.
func FeatureFraction(f float64) Option {
	return func(o *Options) {
		o.FeatureFraction = f
	}
}

// Progress draws a progress bar of the boosting rounds on w.
func Progress(w io.Writer) Option {
	return func(o *Options) {
		o.progress = w
	}
}

// Apply returns the defaults modified by options.
func Apply(options ...Option) Options {
	o := Defaults()
	for _, option := range options {
		option(&o)
	}
	return o
}
