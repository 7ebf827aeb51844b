package testutil

// SampleManifest lists five exercises over three chapters. ch1-ex2 is
// compile-only; the rest default to test mode.
const SampleManifest = `[[exercises]]
name = "ch1-ex1"
path = "exercises/ch1/ex1.seq"
mode = "test"

[[exercises]]
name = "ch1-ex2"
path = "exercises/ch1/ex2.seq"
mode = "compile"

[[exercises]]
name = "ch2-ex1"
path = "exercises/ch2/ex1.seq"

[[exercises]]
name = "ch2-ex2"
path = "exercises/ch2/ex2.seq"

[[exercises]]
name = "ch3-ex1"
path = "exercises/ch3/ex1.seq"
`

// SampleExercisePaths are the course-relative paths in SampleManifest, in order.
var SampleExercisePaths = []string{
	"exercises/ch1/ex1.seq",
	"exercises/ch1/ex2.seq",
	"exercises/ch2/ex1.seq",
	"exercises/ch2/ex2.seq",
	"exercises/ch3/ex1.seq",
}

// NotDoneSource is an exercise that still carries the marker line.
const NotDoneSource = `# Exercise 1.1: Stack basics
# Push 2 and 3, then add them.
# I AM NOT DONE

: main ( -- Int ) 2 3 i.+ ;
`

// PassingSource is an exercise with the marker removed.
const PassingSource = `# Exercise 1.1: Stack basics
# Push 2 and 3, then add them.

: main ( -- Int ) 2 3 i.+ ;
`

// PassingTestOutput is runner output with no failure markers.
const PassingTestOutput = "test add ... ok\ntest sub ... ok\n3 passed, 0 failed\n"

// FailingTestOutput is runner output reporting a failed test.
const FailingTestOutput = "test add ... ok\ntest foo ... FAILED\n1 passed, 1 failed\n"

// PanicTestOutput is runner output for a test that crashed.
const PanicTestOutput = "test add ... ok\nthread 'main' panicked at stack underflow\n"
