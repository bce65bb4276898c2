package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/sirupsen/logrus"

	iqfit "github.com/busecoban/the-iq-fit-solver-v4"
)

func main() {

	workers := flag.Int("workers", runtime.NumCPU(), "The number of search workers")
	outFile := flag.String("out", "solutions.txt", "The file to write solutions to")
	perWorker := flag.Bool("per-worker", false, "Print each worker's solution count")
	verbose := flag.Bool("verbose", false, "Enable debug logging")

	profile := flag.Bool("profile", false, "Profile the solver")
	profileFile := flag.String("profile-file", "cpu.pprof", "The file to write the CPU profile to")
	memoryProfileFile := flag.String("memory-profile-file", "mem.pprof", "The file to write the memory profile to")

	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	var mf *os.File
	if *profile {
		f, err := os.Create(*profileFile)
		if err != nil {
			fmt.Println("Error creating profile file:", err)
			os.Exit(1)
		}
		defer f.Close()

		mf, err = os.Create(*memoryProfileFile)
		if err != nil {
			fmt.Println("Error creating memory profile file:", err)
			os.Exit(1)
		}
		defer mf.Close()

		if err := pprof.StartCPUProfile(f); err != nil {
			fmt.Println("Error starting CPU profile:", err)
			os.Exit(1)
		}
		defer pprof.StopCPUProfile()
	}

	fmt.Println("Workers:", *workers)

	res, err := iqfit.Enumerate(*workers)
	if err != nil {
		fmt.Println("Error enumerating solutions:", err)
		os.Exit(1)
	}

	exitCode := 0
	out, err := os.Create(*outFile)
	if err != nil {
		fmt.Println("Error creating solutions file:", err)
		exitCode = 1
	} else {
		err := res.WriteSolutions(out)
		if cerr := out.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			fmt.Println("Error writing solutions file:", err)
			exitCode = 1
		} else {
			fmt.Println("Wrote", *outFile)
		}
	}

	if *perWorker {
		for id, n := range res.PerWorker {
			fmt.Printf("Worker %d: %d solutions\n", id, n)
		}
	}

	fmt.Println("Total solutions:", res.Total)
	fmt.Println("Elapsed:", res.Elapsed)

	if mf != nil {
		pprof.WriteHeapProfile(mf)
	}

	if exitCode != 0 {
		// Deferred cleanup does not run past os.Exit.
		pprof.StopCPUProfile()
		os.Exit(exitCode)
	}
}
