// Package testutil provides shared test helpers for sicplings.
//
// # Fixtures
//
// fixtures.go holds sample course content:
//
//   - SampleManifest - a three-chapter exercise manifest
//   - NotDoneSource, PassingSource - exercise file bodies
//   - PassingTestOutput, FailingTestOutput, PanicTestOutput - test runner output
//
// # Course directories
//
// env.go builds course layouts on disk:
//
//   - SetupCourse(t, manifest) - temp course root with exercises/info.toml
//   - WriteExercise(t, root, rel, content) - writes an exercise file
//   - WriteHint(t, root, chapter, stem, content) - writes a hint file
//   - Touch(t, path, mtime) - sets a file's modification time
//
// # Fake toolchain
//
// toolchain.go provides FakeToolchain, a scripted toolchain.Toolchain that
// counts invocations per step and path.
//
// # Assertions and contexts
//
//   - AssertStatus(t, want, got) - compares exercise statuses by name
//   - ContextWithTestDeadline(t, fallback) - context bounded by the test deadline
//
// # Usage
//
//	func TestSomething(t *testing.T) {
//	    root := testutil.SetupCourse(t, testutil.SampleManifest)
//	    path := testutil.WriteExercise(t, root, "exercises/ch1/ex1.seq", testutil.NotDoneSource)
//	    tc := testutil.NewFakeToolchain()
//	    // ... run test ...
//	    assert.Zero(t, tc.CompileCalls(path))
//	}
package testutil
