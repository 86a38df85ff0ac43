// crashdec decodes a GPU devcoredump, echoing the report with the
// binary payloads decoded and the hung command stream reconstructed
// inline.
package main

import (
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/niej/envytools/internal/crashdec"
	"github.com/niej/envytools/internal/pager"
)

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: crashdec [-achmsv] [-f FILE]")
	fmt.Fprintln(w, fs.FlagUsages())
}

func run() int {
	fs := flag.NewFlagSet("crashdec", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	allregs := fs.BoolP("allregs", "a", false, "dump all registers, not just the interesting ones")
	color := fs.BoolP("color", "c", false, "use colors even when output is not a terminal")
	file := fs.StringP("file", "f", "", "read dump from FILE instead of stdin")
	help := fs.BoolP("help", "h", false, "show this message")
	markers := fs.BoolP("markers", "m", false, "decode CP_NOP tile/marker packets")
	summary := fs.BoolP("summary", "s", false, "print summary mode (much less output)")
	verbose := fs.BoolP("verbose", "v", false, "dump more verbose output, including contents of all buffers")

	if err := fs.Parse(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "crashdec: %v\n", err)
		usage(os.Stderr, fs)
		return 2
	}
	if *help || fs.NArg() > 0 {
		usage(os.Stderr, fs)
		return 2
	}

	in := io.Reader(os.Stdin)
	if *file != "" {
		f, err := os.Open(*file)
		if err != nil {
			fmt.Fprintf(os.Stderr, "crashdec: %v\n", err)
			return 1
		}
		defer f.Close()
		in = f
	}

	interactive := term.IsTerminal(int(os.Stdout.Fd()))

	out := io.Writer(os.Stdout)
	var pg *pager.Pager
	if interactive {
		var err error
		if pg, err = pager.Open(); err == nil {
			out = pg.Writer()
		}
	}

	opts := crashdec.Options{
		Verbose:       *verbose,
		AllRegs:       *allregs,
		Summary:       *summary,
		DecodeMarkers: *markers,
		Color:         *color || interactive,
	}

	err := crashdec.New(in, out, opts).Run()
	if pg != nil {
		pg.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "crashdec: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run())
}
