// Command hades252 hashes inputs with the Hades252 sponge and prints the
// permutation's parameters.
package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap/zapcore"

	"github.com/aerius-labs/hades252-go/field"
	"github.com/aerius-labs/hades252-go/hades"
	"github.com/aerius-labs/hades252-go/internal/log"
	"github.com/aerius-labs/hades252-go/internal/prf"
	"github.com/aerius-labs/hades252-go/sponge"
)

// results go to output, logs go to logOutput
var (
	output    io.Writer = os.Stdout
	logOutput io.Writer = os.Stderr
)

// Automatically set through -ldflags
var (
	version   = "master"
	gitCommit = "none"
)

var configFlag = &cli.StringFlag{
	Name:  "config",
	Usage: "Read settings from the given TOML file.",
}

var maxInputsFlag = &cli.IntFlag{
	Name:  "max-inputs",
	Usage: "Maximum number of elements a single hash absorbs.",
}

var logLevelFlag = &cli.StringFlag{
	Name:  "log-level",
	Usage: "Log verbosity: debug, info, warn or error.",
}

var jsonLogFlag = &cli.BoolFlag{
	Name:  "json-log",
	Usage: "Write logs as JSON.",
}

var seedFlag = &cli.StringFlag{
	Name:  "seed",
	Usage: "Derive the input state from this seed instead of using the zero state.",
}

var roundFlag = &cli.IntFlag{
	Name:  "round",
	Usage: "Print only the constants of this round.",
}

var checkFlag = &cli.BoolFlag{
	Name:  "check",
	Usage: "Verify that every square submatrix is non-singular.",
}

// CLI returns the hades252 application
func CLI() *cli.App {
	app := cli.NewApp()
	app.Name = "hades252"
	app.Usage = "Hades252 permutation and sponge hash"
	app.Version = fmt.Sprintf("%s (commit %s)", version, gitCommit)
	app.Writer = output
	app.ErrWriter = logOutput
	app.Flags = []cli.Flag{configFlag, maxInputsFlag, logLevelFlag, jsonLogFlag}
	app.Commands = []*cli.Command{
		{
			Name:      "hash",
			Usage:     "Hash the given inputs in order and print the digest.",
			ArgsUsage: "msg:<text> | uint:<n> | elem:<64 hex chars> ...",
			Action:    hashCmd,
		},
		{
			Name:   "permute",
			Usage:  "Apply the permutation to a state and print the result.",
			Flags:  []cli.Flag{seedFlag},
			Action: permuteCmd,
		},
		{
			Name:   "constants",
			Usage:  "Print the round constants.",
			Flags:  []cli.Flag{roundFlag},
			Action: constantsCmd,
		},
		{
			Name:   "mds",
			Usage:  "Print the MDS matrix.",
			Flags:  []cli.Flag{checkFlag},
			Action: mdsCmd,
		},
		{
			Name:   "params",
			Usage:  "Print the parameter set.",
			Action: paramsCmd,
		},
	}
	return app
}

func setup(c *cli.Context) (*Config, log.Logger, error) {
	conf, err := loadConfig(c)
	if err != nil {
		return nil, nil, err
	}
	lvl, err := log.ParseLevel(conf.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	l := log.New(zapcore.AddSync(logOutput), lvl, conf.JSONLog).Named(c.Command.Name)
	return conf, l, nil
}

// parseInput decodes one positional argument of the hash command
func parseInput(arg string) (kind string, value string, err error) {
	kind, value, ok := strings.Cut(arg, ":")
	if !ok {
		return "", "", fmt.Errorf("input %q has no kind prefix", arg)
	}
	switch kind {
	case "msg", "uint", "elem":
		return kind, value, nil
	default:
		return "", "", fmt.Errorf("input %q has unknown kind %q", arg, kind)
	}
}

func hashCmd(c *cli.Context) error {
	conf, l, err := setup(c)
	if err != nil {
		return err
	}
	if c.NArg() == 0 {
		l.Warnw("no inputs given, hashing the empty sequence")
	}

	h := sponge.New(sponge.WithMaxInputs(conf.MaxInputs))
	for i, arg := range c.Args().Slice() {
		kind, value, err := parseInput(arg)
		if err != nil {
			return err
		}
		switch kind {
		case "msg":
			err = h.InputMessage([]byte(value))
		case "uint":
			var n uint64
			n, err = strconv.ParseUint(value, 10, 64)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			err = h.Input(field.NewElement(n))
		case "elem":
			var b []byte
			b, err = hex.DecodeString(value)
			if err != nil {
				return fmt.Errorf("input %d: %w", i, err)
			}
			err = h.InputBytes(b)
		}
		if err != nil {
			return fmt.Errorf("input %d: %w", i, err)
		}
		l.Debugw("absorbed input", "index", i, "kind", kind, "buffered", h.Buffered())
	}

	digest, err := h.Result()
	if err != nil {
		return err
	}
	l.Debugw("finalized", "inputs", h.Count())
	fmt.Fprintln(output, hex.EncodeToString(digest))
	return nil
}

func permuteCmd(c *cli.Context) error {
	_, l, err := setup(c)
	if err != nil {
		return err
	}

	var state hades.State
	if seed := c.String(seedFlag.Name); seed != "" {
		copy(state[:], prf.NewShakeToField([]byte(seed)).Elements(hades.Width))
		l.Debugw("derived state from seed", "seed", seed)
	}
	hades.New().Permute(&state)
	for i := range state {
		fmt.Fprintf(output, "%d %x\n", i, field.ToBytes(state[i]))
	}
	return nil
}

func constantsCmd(c *cli.Context) error {
	if _, _, err := setup(c); err != nil {
		return err
	}

	schedule := hades.Schedule()
	round := c.Int(roundFlag.Name)
	first, last := 0, hades.TotalRounds-1
	if c.IsSet(roundFlag.Name) {
		first, last = round, round
	}
	for r := first; r <= last; r++ {
		constants, err := hades.RoundConstantsAt(r)
		if err != nil {
			return err
		}
		for i, k := range constants {
			fmt.Fprintf(output, "%d %s %d %x\n", r, schedule[r], i, field.ToBytes(k))
		}
	}
	return nil
}

// errNotMDS is returned by mds --check on failure
var errNotMDS = errors.New("matrix has a singular square submatrix")

func mdsCmd(c *cli.Context) error {
	_, l, err := setup(c)
	if err != nil {
		return err
	}

	m := hades.MDS()
	for i := range m {
		row := make([]string, len(m[i]))
		for j := range m[i] {
			row[j] = field.ToBigInt(m[i][j]).String()
		}
		fmt.Fprintln(output, strings.Join(row, " "))
	}
	if c.Bool(checkFlag.Name) {
		if !hades.IsMDS(m) {
			return errNotMDS
		}
		l.Infow("MDS property verified", "width", hades.Width)
	}
	return nil
}

func paramsCmd(c *cli.Context) error {
	if _, _, err := setup(c); err != nil {
		return err
	}
	fmt.Fprintf(output, "width = %d\n", hades.Width)
	fmt.Fprintf(output, "rate = %d\n", hades.Rate)
	fmt.Fprintf(output, "capacity = %d\n", hades.Capacity)
	fmt.Fprintf(output, "full_rounds = %d\n", hades.FullRounds)
	fmt.Fprintf(output, "partial_rounds = %d\n", hades.PartialRounds)
	fmt.Fprintf(output, "total_rounds = %d\n", hades.TotalRounds)
	fmt.Fprintf(output, "round_constants = %d\n", hades.NumConstants)
	fmt.Fprintf(output, "seed = %q\n", hades.Seed)
	fmt.Fprintf(output, "modulus = %s\n", field.Modulus)
	return nil
}
