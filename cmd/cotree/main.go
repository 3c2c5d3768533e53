package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/tardani95/ppl-sub000/Trees/CoTree"
	"github.com/urfave/cli/v2"
)

type config struct {
	Densities CoTree.Densities `toml:"densities"`
}

var (
	logLevelFlag = &cli.StringFlag{
		Name:  "log-level",
		Usage: "logrus level of the tree's structural events (debug shows grow, shrink and rebalances)",
		Value: "info",
	}
	configFlag = &cli.StringFlag{
		Name:  "config",
		Usage: "TOML file with a [densities] table",
	}
	nFlag = &cli.UintFlag{
		Name:  "n",
		Usage: "number of keys inserted",
		Value: 1000000,
	}
	stepsFlag = &cli.UintFlag{
		Name:  "steps",
		Usage: "number of erase ratios measured",
		Value: 50,
	}
	seedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "seed of the key generator",
	}
)

var app = &cli.App{
	Name:   "cotree",
	Usage:  "measure and inspect compact ordered trees",
	Flags:  []cli.Flag{logLevelFlag, configFlag},
	Before: setup,
	Commands: []*cli.Command{
		{
			Name:   "measure",
			Usage:  "time erasing a growing share of the keys of a tree, followed by lookups",
			Flags:  []cli.Flag{nFlag, stepsFlag, seedFlag},
			Action: measure,
		},
		{
			Name:      "dump",
			Usage:     "build a tree from a dense vector and print it",
			ArgsUsage: "v0 v1 ...",
			Action:    dump,
		},
	},
}

var densities = CoTree.DefaultDensities

func setup(ctx *cli.Context) error {
	lvl, err := logrus.ParseLevel(ctx.String(logLevelFlag.Name))
	if err != nil {
		return err
	}
	CoTree.Log.SetLevel(lvl)
	if path := ctx.String(configFlag.Name); path != "" {
		cfg := config{Densities: densities}
		if _, err = toml.DecodeFile(path, &cfg); err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		if err = cfg.Densities.Validate(); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		densities = cfg.Densities
		CoTree.Log.WithFields(logrus.Fields{
			"max": densities.MaxPercent, "min": densities.MinPercent, "minLeaf": densities.MinLeafPercent,
		}).Info("densities loaded")
	}
	return nil
}

func newTree() *CoTree.Tree[int, uint32] {
	u, err := CoTree.NewWith[int, uint32](densities)
	if err != nil {
		//validated in setup.
		panic(err)
	}
	return u
}

func measure(ctx *cli.Context) error {
	n, steps := uint32(ctx.Uint(nFlag.Name)), uint32(ctx.Uint(stepsFlag.Name))
	if n == 0 || steps < 2 {
		return fmt.Errorf("need n>0 and steps>1, got n=%d steps=%d", n, steps)
	}
	r := rand.New(rand.NewSource(ctx.Int64(seedFlag.Name)))
	keys := make([]uint32, n)
	var found int
	var cs []float64
	for i := uint32(1); i < steps; i++ {
		u := newTree()
		for j := range keys {
			keys[j] = uint32(r.Int31())
			u.Insert(keys[j], j)
		}
		rmv := n / steps * i
		start := time.Now()
		for _, k := range keys[:rmv] {
			u.Erase(k)
		}
		for _, k := range keys[rmv:] {
			if u.Has(k) {
				found++
			}
		}
		for range rmv {
			if u.Has(uint32(r.Int31())) {
				found++
			}
		}
		c := float64(time.Since(start).Microseconds()) / 1000
		cs = append(cs, c)
		if err := u.Check(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
		CoTree.Log.WithFields(logrus.Fields{
			"step": i, "erased": rmv, "size": u.Size(), "reserved": u.Reserved(), "ms": c,
		}).Info("measured")
	}
	var sum float64
	for _, c := range cs {
		sum += c
	}
	avg := sum / float64(len(cs))
	sum = 0
	for _, c := range cs {
		sum += (c - avg) * (c - avg)
	}
	CoTree.Log.WithFields(logrus.Fields{
		"average": avg, "stddev": math.Sqrt(sum / float64(len(cs))), "found": found,
	}).Info("ms/op")
	return nil
}

func dump(ctx *cli.Context) error {
	vs := make([]int, ctx.NArg())
	for i, a := range ctx.Args().Slice() {
		v, err := strconv.Atoi(a)
		if err != nil {
			return fmt.Errorf("argument %d: %w", i, err)
		}
		vs[i] = v
	}
	u := newTree()
	u.MoveFrom(CoTree.FromDense[int, uint32](vs))
	return u.Dump(ctx.App.Writer)
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
