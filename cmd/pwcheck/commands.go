package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"archject/internal/buildinfo"
	"archject/internal/i18n"
	"archject/internal/security/password"
)

type report struct {
	Index int `json:"index" yaml:"index"`

	password.StrengthResult `yaml:",inline"`

	StrongEnough bool `json:"strong_enough" yaml:"strong_enough"`
	MeetsMinimum bool `json:"meets_minimum" yaml:"meets_minimum"`
}

func evaluateCmd(args []string, s streams) int {
	fs := flag.NewFlagSet("evaluate", flag.ContinueOnError)
	fs.SetOutput(s.err)
	format := fs.String("format", "text", "Output format: text, json or yaml")
	lang := fs.String("lang", "en", "Label language: en or pt-BR")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	tag, ok := i18n.ParseTag(*lang)
	if !ok {
		fmt.Fprintf(s.err, "unsupported language: %s\n", *lang)
		return exitError
	}

	passwords := fs.Args()
	if len(passwords) == 0 {
		lines, err := readLines(s.in)
		if err != nil {
			fmt.Fprintf(s.err, "read stdin: %v\n", err)
			return exitError
		}
		passwords = lines
	}
	if len(passwords) == 0 {
		fmt.Fprintln(s.err, "no passwords to evaluate")
		return exitError
	}

	reports := buildReports(tag, passwords)
	if err := writeReports(s.out, *format, reports); err != nil {
		fmt.Fprintf(s.err, "%v\n", err)
		return exitError
	}

	for _, r := range reports {
		if !r.MeetsMinimum {
			return exitPolicy
		}
	}
	return exitOK
}

func buildReports(tag language.Tag, passwords []string) []report {
	out := make([]report, 0, len(passwords))
	for i, p := range passwords {
		out = append(out, report{
			Index:          i + 1,
			StrengthResult: i18n.Localize(tag, password.Evaluate(p)),
			StrongEnough:   password.IsStrongEnough(p),
			MeetsMinimum:   password.MeetsMinimumRequirements(p),
		})
	}
	return out
}

func writeReports(w io.Writer, format string, reports []report) error {
	switch strings.ToLower(format) {
	case "text":
		for _, r := range reports {
			fmt.Fprintf(w, "#%d %s (score %d, strength %d/4)\n", r.Index, r.Label, r.Score, r.Strength)
			for _, c := range r.Checks {
				mark := " "
				if c.Met {
					mark = "x"
				}
				fmt.Fprintf(w, "  [%s] %s\n", mark, c.Label)
			}
		}
		return nil
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(reports); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// maxLineBytes caps a single stdin line; longer lines fail with
// bufio.ErrTooLong.
const maxLineBytes = 1 << 20

func readLines(r io.Reader) ([]string, error) {
	if r == nil {
		return nil, nil
	}
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSuffix(scanner.Text(), "\r"))
	}
	return lines, scanner.Err()
}

func hashCmd(args []string, s streams) int {
	fs := flag.NewFlagSet("hash", flag.ContinueOnError)
	fs.SetOutput(s.err)
	cost := fs.Int("cost", 12, "bcrypt cost")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitError
	}

	var plain string
	switch fs.NArg() {
	case 0:
		// Reading from stdin keeps the password out of shell history.
		lines, err := readLines(s.in)
		if err != nil || len(lines) == 0 {
			fmt.Fprintln(s.err, "usage: pwcheck hash [-cost n] <password>")
			return exitError
		}
		plain = lines[0]
	case 1:
		plain = fs.Arg(0)
	default:
		fmt.Fprintln(s.err, "usage: pwcheck hash [-cost n] <password>")
		return exitError
	}

	encoded, err := password.HashWithCost(plain, *cost)
	if err != nil {
		fmt.Fprintf(s.err, "hash: %v\n", err)
		return exitError
	}
	fmt.Fprintln(s.out, encoded)
	return exitOK
}

func verifyCmd(args []string, s streams) int {
	if len(args) != 2 {
		fmt.Fprintln(s.err, "usage: pwcheck verify <password> <hash>")
		return exitError
	}
	if !password.Verify(args[0], args[1]) {
		fmt.Fprintln(s.out, "mismatch")
		return exitError
	}
	fmt.Fprintln(s.out, "ok")
	return exitOK
}

func versionCmd(s streams) int {
	fmt.Fprintf(s.out, "pwcheck %s (commit %s, built %s)\n", buildinfo.Version, buildinfo.Commit, buildinfo.BuildTime)
	return exitOK
}
