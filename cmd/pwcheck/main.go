// Command pwcheck evaluates passwords against the Archject password policy
// and produces bcrypt hashes for seed accounts.
package main

import (
	"fmt"
	"io"
	"os"
)

const (
	exitOK     = 0
	exitError  = 1
	exitPolicy = 2
)

type streams struct {
	in  io.Reader
	out io.Writer
	err io.Writer
}

func main() {
	os.Exit(run(os.Args, streams{in: os.Stdin, out: os.Stdout, err: os.Stderr}))
}

// run is separated from main so tests can drive it with in-memory streams.
func run(args []string, s streams) int {
	if len(args) < 2 {
		printUsage(s.err)
		return exitError
	}

	switch args[1] {
	case "evaluate":
		return evaluateCmd(args[2:], s)
	case "hash":
		return hashCmd(args[2:], s)
	case "verify":
		return verifyCmd(args[2:], s)
	case "version":
		return versionCmd(s)
	case "help", "-h", "--help":
		printUsage(s.out)
		return exitOK
	default:
		fmt.Fprintf(s.err, "Unknown command: %s\n", args[1])
		fmt.Fprintln(s.err, "Run 'pwcheck help' for usage.")
		return exitError
	}
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `pwcheck - Archject password policy tool

Usage:
  pwcheck <command> [options]

Commands:
  evaluate    Score passwords (arguments, or one per stdin line)
  hash        Print a bcrypt hash for a password meeting the minimum policy
  verify      Check a password against a bcrypt hash
  version     Show version information

Exit codes:
  0  success
  1  usage or runtime error
  2  evaluate: at least one password fails the minimum policy
`)
}
