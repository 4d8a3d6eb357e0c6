package main

import (
	"flag"
	"os"
	"path"
	"runtime/pprof"
	"runtime/trace"

	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"

	"github.com/fernandosanchezjr/zcashbench/bench"
	"github.com/fernandosanchezjr/zcashbench/chainparams"
	"github.com/fernandosanchezjr/zcashbench/config"
	"github.com/fernandosanchezjr/zcashbench/joinsplit"
	"github.com/fernandosanchezjr/zcashbench/logging"
	"github.com/fernandosanchezjr/zcashbench/utils"
)

var cpuProfile bool
var tracing bool
var benchmarkName string
var threads int
var network string

func init() {
	flag.BoolVar(&cpuProfile, "cpu-profile", cpuProfile, "enable cpu profiling")
	flag.BoolVar(&tracing, "trace", tracing, "enable tracing")
	flag.StringVar(&benchmarkName, "benchmark", "",
		"benchmark to run: sleep, parameterloading, createjoinsplit, verifyjoinsplit, "+
			"solveequihash, verifyequihash, largetx")
	flag.IntVar(&threads, "threads", 0, "concurrency degree for solveequihash")
	flag.StringVar(&network, "network", "", "network parameters to use")
}

// loadProofParams loads the serialized keys from the params folder, or
// generates and writes a fresh pair on first run.
func loadProofParams(paramsDir string) *joinsplit.Params {
	pkPath := path.Join(paramsDir, joinsplit.ProvingKeyFile)
	vkPath := path.Join(paramsDir, joinsplit.VerifyingKeyFile)
	params := joinsplit.Unopened()
	if err := params.LoadVerifyingKey(vkPath); err == nil {
		params.SetProvingKeyPath(pkPath)
		if err := params.LoadProvingKey(); err == nil {
			return params
		}
	} else if !os.IsNotExist(err) {
		log.WithError(err).Fatal("Error loading verifying key")
	}
	log.Info("Generating proof system parameters")
	params, err := joinsplit.Setup()
	if err != nil {
		log.WithError(err).Fatal("Proof system setup failed")
	}
	if err := params.WriteKeys(pkPath, vkPath); err != nil {
		log.WithError(err).Fatal("Error writing key files")
	}
	return params
}

func report(name string, elapsed float64) {
	log.WithField("seconds", elapsed).Info(name)
}

func runBenchmark(h *bench.Harness, name string, threads int) {
	switch name {
	case "sleep":
		report(name, h.Sleep())
	case "parameterloading":
		elapsed, err := h.ParameterLoading()
		if err != nil {
			log.WithError(err).Fatal("Parameter loading failed")
		}
		report(name, elapsed)
	case "createjoinsplit":
		elapsed, _, err := h.CreateJoinSplit()
		if err != nil {
			log.WithError(err).Fatal("Joinsplit construction failed")
		}
		report(name, elapsed)
	case "verifyjoinsplit":
		_, desc, err := h.CreateJoinSplit()
		if err != nil {
			log.WithError(err).Fatal("Joinsplit construction failed")
		}
		elapsed, err := h.VerifyJoinSplit(desc)
		if err != nil {
			log.WithError(err).Fatal("Joinsplit verification failed")
		}
		report(name, elapsed)
	case "solveequihash":
		if threads > 0 {
			results, err := h.SolveEquihashThreaded(threads)
			if err != nil {
				log.WithError(err).Fatal("Threaded solve failed")
			}
			for i, elapsed := range results {
				log.WithFields(log.Fields{
					"completed": i + 1,
					"seconds":   elapsed,
				}).Info(name)
			}
		} else {
			elapsed, err := h.SolveEquihash()
			if err != nil {
				log.WithError(err).Fatal("Solve failed")
			}
			report(name, elapsed)
		}
	case "verifyequihash":
		elapsed, err := h.VerifyEquihash()
		if err != nil {
			log.WithError(err).Fatal("Equihash verification failed")
		}
		report(name, elapsed)
	case "largetx":
		log.WithField("inputs", humanize.Comma(bench.LargeTxInputs)).
			Info("Building synthetic transaction")
		elapsed, err := h.LargeTransaction()
		if err != nil {
			log.WithError(err).Fatal("Large transaction benchmark failed")
		}
		report(name, elapsed)
	default:
		log.Fatal("Unknown benchmark: ", name)
	}
}

func main() {
	flag.Parse()
	logging.SetupLogger()
	if cpuProfile {
		f, err := os.Create("zcashbench.prof")
		if err != nil {
			panic(err)
		}
		if err = pprof.StartCPUProfile(f); err != nil {
			panic(err)
		}
		defer pprof.StopCPUProfile()
	}
	if tracing {
		f, err := os.Create("zcashbench.trace")
		if err != nil {
			panic(err)
		}
		if err := trace.Start(f); err != nil {
			panic(err)
		}
		defer trace.Stop()
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}
	if network == "" {
		network = cfg.Network
	}
	if benchmarkName == "" {
		benchmarkName = cfg.Benchmark
	}
	if threads == 0 {
		threads = cfg.Threads
	}
	chain, err := chainparams.Lookup(network)
	if err != nil {
		log.Fatal(err)
	}
	paramsDir := utils.GetParamsFolder()
	harness := bench.NewHarness(chain, loadProofParams(paramsDir), paramsDir)
	log.WithFields(log.Fields{
		"network":   chain.Name,
		"benchmark": benchmarkName,
	}).Info("Starting benchmark")
	runBenchmark(harness, benchmarkName, threads)
}
