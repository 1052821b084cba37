// Package config reads the fare pipeline settings from a .properties file.
//
// Recognised keys, with their defaults:
//
//	data.train             Data/taxi-fare-train.csv
//	data.test              Data/taxi-fare-test.csv
//	data.separator         ,
//	data.header            true
//	model.path             Data/Model.zip
//	trainer.trees          100
//	trainer.leaves         20
//	trainer.min_leaf       10
//	trainer.learning_rate  0.2
//	trainer.bins           255
//	trainer.seed           0
//	predict.cache          128
package config

import (
	"github.com/ProfessorX0227/fare/boost"
	"github.com/ProfessorX0227/fare/fault"
	"github.com/ProfessorX0227/fare/table"
	"github.com/magiconair/properties"
	"github.com/pkg/errors"
	"os"
	"strconv"
	"unicode/utf8"
)

// Config holds every setting of a pipeline run. Paths are relative to the working directory.
type Config struct {
	TrainPath string
	TestPath  string
	ModelPath string
	Separator rune
	Header    bool
	Trainer   boost.Options
	CacheSize int
}

// Default is the configuration used when no file is given.
func Default() Config {
	return Config{
		TrainPath: "Data/taxi-fare-train.csv",
		TestPath:  "Data/taxi-fare-test.csv",
		ModelPath: "Data/Model.zip",
		Separator: ',',
		Header:    true,
		Trainer:   boost.Defaults(),
		CacheSize: 128,
	}
}

// Load reads the configuration at path. A missing file is a fault.IO error, an invalid one a
// fault.Config error.
func Load(path string) (Config, error) {
	const op = "config.Load"
	if _, err := os.Stat(path); err != nil {
		return Config{}, fault.Wrap(fault.IO, op, err)
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return Config{}, fault.Wrap(fault.Config, op, err)
	}
	return Parse(p)
}

// Parse overlays the keys set in p on the defaults.
func Parse(p *properties.Properties) (Config, error) {
	const op = "config.Parse"
	c := Default()
	var err error
	str := func(key string, dst *string) {
		if v, ok := p.Get(key); ok && err == nil {
			if len(v) == 0 {
				err = errors.Errorf("%s must not be empty", key)
				return
			}
			*dst = v
		}
	}
	integer := func(key string, dst *int) {
		if v, ok := p.Get(key); ok && err == nil {
			var n int64
			n, err = strconv.ParseInt(v, 10, 0)
			err = errors.Wrap(err, key)
			*dst = int(n)
		}
	}

	str("data.train", &c.TrainPath)
	str("data.test", &c.TestPath)
	str("model.path", &c.ModelPath)
	if v, ok := p.Get("data.separator"); ok && err == nil {
		r, size := utf8.DecodeRuneInString(v)
		if size == 0 || size != len(v) || r == utf8.RuneError || r == '"' || r == '\r' || r == '\n' {
			err = errors.Errorf("data.separator must be a single character, got %q", v)
		}
		c.Separator = r
	}
	if v, ok := p.Get("data.header"); ok && err == nil {
		c.Header, err = strconv.ParseBool(v)
		err = errors.Wrap(err, "data.header")
	}
	integer("trainer.trees", &c.Trainer.Trees)
	integer("trainer.leaves", &c.Trainer.Leaves)
	integer("trainer.min_leaf", &c.Trainer.MinLeaf)
	integer("trainer.bins", &c.Trainer.Bins)
	integer("predict.cache", &c.CacheSize)
	if v, ok := p.Get("trainer.learning_rate"); ok && err == nil {
		c.Trainer.LearningRate, err = strconv.ParseFloat(v, 64)
		err = errors.Wrap(err, "trainer.learning_rate")
	}
	if v, ok := p.Get("trainer.seed"); ok && err == nil {
		c.Trainer.Seed, err = strconv.ParseInt(v, 10, 64)
		err = errors.Wrap(err, "trainer.seed")
	}
	if err != nil {
		return Config{}, fault.Wrap(fault.Config, op, err)
	}
	if c.CacheSize < 1 {
		return Config{}, fault.New(fault.Config, op, "predict.cache must be positive, got %d", c.CacheSize)
	}
	return c, nil
}

// TrainerOptions returns the trainer settings as options for boost.Train.
func (c Config) TrainerOptions() []boost.Option {
	t := c.Trainer
	return []boost.Option{
		boost.Trees(t.Trees),
		boost.Leaves(t.Leaves),
		boost.MinLeaf(t.MinLeaf),
		boost.LearningRate(t.LearningRate),
		boost.Bins(t.Bins),
		boost.Seed(t.Seed),
		boost.RowFraction(t.RowFraction),
		boost.FeatureFraction(t.FeatureFraction),
	}
}

// LoaderOptions returns the data file settings as options for table.Load.
func (c Config) LoaderOptions() []func(*table.Loader) {
	return []func(*table.Loader){
		table.Separator(c.Separator),
		table.HasHeader(c.Header),
	}
}
