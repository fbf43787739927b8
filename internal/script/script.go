// Package script reads line-based command scripts that drive an engine
// without a UI:
//
//	# comment
//	init 120 80
//	set virus_replicate_chance 0.1
//	paint 60 10 4 process
//	step 200
//	reset
package script

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"entropy/internal/sims/entropy"
)

// ErrSyntax is wrapped by every parse error.
var ErrSyntax = errors.New("script: syntax error")

// Op names a script command.
type Op string

const (
	OpInit  Op = "init"
	OpPaint Op = "paint"
	OpReset Op = "reset"
	OpStep  Op = "step"
	OpSet   Op = "set"
)

// Command is one parsed script line.
type Command struct {
	Op   Op
	Line int

	W, H     int
	X, Y, R  int
	Material entropy.Material
	Steps    int
	Key      string
	Value    float64
}

// Script is an ordered list of commands.
type Script []Command

// Steps returns the total number of ticks the script runs.
func (s Script) Steps() int {
	total := 0
	for _, c := range s {
		if c.Op == OpStep {
			total += c.Steps
		}
	}
	return total
}

// Load parses the script file at path.
func Load(path string) (Script, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads a script. Blank lines and lines starting with '#' are skipped.
func Parse(r io.Reader) (Script, error) {
	scanner := bufio.NewScanner(r)
	var out Script
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		cmd, err := parseLine(fields)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrSyntax, line, err)
		}
		cmd.Line = line
		out = append(out, cmd)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func parseLine(fields []string) (Command, error) {
	op := Op(strings.ToLower(fields[0]))
	args := fields[1:]
	cmd := Command{Op: op}
	switch op {
	case OpInit:
		ints, err := parseInts(args, 2)
		if err != nil {
			return cmd, err
		}
		cmd.W, cmd.H = ints[0], ints[1]
	case OpPaint:
		if len(args) != 4 {
			return cmd, fmt.Errorf("paint wants x y radius material, got %d args", len(args))
		}
		ints, err := parseInts(args[:3], 3)
		if err != nil {
			return cmd, err
		}
		m, err := entropy.ParseMaterial(args[3])
		if err != nil {
			return cmd, err
		}
		cmd.X, cmd.Y, cmd.R, cmd.Material = ints[0], ints[1], ints[2], m
	case OpReset:
		if len(args) != 0 {
			return cmd, fmt.Errorf("reset takes no args")
		}
	case OpStep:
		cmd.Steps = 1
		if len(args) > 0 {
			ints, err := parseInts(args, 1)
			if err != nil {
				return cmd, err
			}
			if ints[0] < 0 {
				return cmd, fmt.Errorf("negative step count %d", ints[0])
			}
			cmd.Steps = ints[0]
		}
	case OpSet:
		if len(args) != 2 {
			return cmd, fmt.Errorf("set wants key value, got %d args", len(args))
		}
		v, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return cmd, err
		}
		cmd.Key, cmd.Value = args[0], v
	default:
		return cmd, fmt.Errorf("unknown command %q", fields[0])
	}
	return cmd, nil
}

func parseInts(args []string, n int) ([]int, error) {
	if len(args) != n {
		return nil, fmt.Errorf("want %d integer args, got %d", n, len(args))
	}
	out := make([]int, n)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
