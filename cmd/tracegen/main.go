// Command tracegen writes synthetic memory access traces for simvirtual,
// optionally compressed with lz4 or snappy.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sibexico/PageSim/paging"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tracegen", flag.ContinueOnError)
	fs.SetOutput(stderr)

	wc := paging.DefaultWorkloadConfig()
	var (
		output      string
		compression string
		addrKB      uint
		stride      uint
	)
	fs.StringVar(&wc.Pattern, "pattern", wc.Pattern, "access pattern: sequential, uniform, locality")
	fs.IntVar(&wc.Accesses, "n", wc.Accesses, "number of accesses")
	fs.UintVar(&addrKB, "space-kb", uint(wc.AddressSpace/1024), "virtual address space in KB")
	fs.UintVar(&stride, "stride", uint(wc.Stride), "address step for the sequential pattern")
	fs.Float64Var(&wc.WriteRatio, "writes", wc.WriteRatio, "fraction of write accesses")
	fs.Float64Var(&wc.HotFraction, "hot-fraction", wc.HotFraction, "locality: hot share of the address space")
	fs.Float64Var(&wc.HotRatio, "hot-ratio", wc.HotRatio, "locality: share of accesses to the hot region")
	fs.Uint64Var(&wc.Seed, "seed", wc.Seed, "random seed")
	fs.StringVar(&output, "o", "", "output file (default: stdout)")
	fs.StringVar(&compression, "compression", "none", "output compression: none, lz4, snappy")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if addrKB == 0 || addrKB > 4*1024*1024-1 {
		fmt.Fprintln(stderr, "Error: -space-kb must be between 1 and 4194303")
		return 1
	}
	wc.AddressSpace = uint32(addrKB * 1024)
	wc.Stride = uint32(stride)

	ct, err := paging.ParseCompression(compression)
	if err != nil || ct == paging.CompressionAuto {
		fmt.Fprintf(stderr, "Error: invalid compression %q (must be none, lz4, or snappy)\n", compression)
		return 1
	}

	var buf bytes.Buffer
	if err := paging.WriteWorkload(&buf, wc); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	if output == "" {
		if _, err := paging.CompressTrace(stdout, &buf, ct); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	file, err := os.Create(output)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	_, err = paging.CompressTrace(file, &buf, ct)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
