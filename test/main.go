//go:build noos

package main

import (
	"flag"
	"os"
	"reflect"
	"runtime"
	"testing"

	"github.com/clktmr/semihosting/hostio"
	semitesting "github.com/clktmr/semihosting/testing"

	"github.com/clktmr/semihosting/test/hostio_test"
)

func init() {
	if err := semitesting.MountConsole(hostio.Default); err != nil {
		panic(err)
	}
}

var tests = []testing.InternalTest{
	newInternalTest(hostio_test.TestConsole),
	newInternalTest(hostio_test.TestFileRoundTrip),
	newInternalTest(hostio_test.TestOpenMissing),
	newInternalTest(hostio_test.TestClock),
	newInternalTest(hostio_test.TestCommandLine),
}

var benchmarks = []testing.InternalBenchmark{
	newInternalBenchmark(hostio_test.BenchmarkWriteC),
	newInternalBenchmark(hostio_test.BenchmarkWrite),
}

// testing.Main would exit on its own, so the tests are run directly to
// report the result to the host.
func main() {
	os.Args = append(os.Args[:1], "-test.v", "-test.bench=.")
	testing.Init()
	flag.Parse()

	code := 0
	if !testing.RunTests(matchAll, tests) {
		code = 1
	}
	testing.RunBenchmarks(matchAll, benchmarks)
	hostio.Exit(code)
	os.Exit(code)
}

func matchAll(_ string, _ string) (bool, error) { return true, nil }

func newInternalTest(testFn func(*testing.T)) testing.InternalTest {
	return testing.InternalTest{
		Name: runtime.FuncForPC(reflect.ValueOf(testFn).Pointer()).Name(),
		F:    testFn,
	}
}

func newInternalBenchmark(testFn func(*testing.B)) testing.InternalBenchmark {
	return testing.InternalBenchmark{
		Name: runtime.FuncForPC(reflect.ValueOf(testFn).Pointer()).Name(),
		F:    testFn,
	}
}
