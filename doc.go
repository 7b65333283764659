// Package ffharness prepares the runtime environment of a browser under a
// fuzzing harness and synchronizes harness teardown with the browser.
//
// It covers three jobs:
//
//   - building the environment the browser is launched with, including
//     merged ASAN/LSAN/UBSAN runtime options (PrepareEnvironment);
//   - creating and cleaning up profile directories (CreateProfile,
//     RemoveStaleProfiles, CheckPrefs);
//   - waiting until the browser's process tree no longer holds files open,
//     so logs can be read or directories removed safely (WaitOnFiles).
//
// Launching the browser, delivering signals and interpreting sanitizer
// reports are left to the caller.
//
// # Basic Usage
//
//	import "github.com/giantswarm/ffharness"
//
//	prof, err := ffharness.CreateProfile(ctx,
//	    ffharness.WithPrefs("prefs.js"),
//	    ffharness.WithExtensions("fuzzpriv.xpi"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer prof.Remove()
//
//	env, err := ffharness.PrepareEnvironment(buildDir, "/tmp/logs/ffp_asan",
//	    ffharness.WithEnv("MOZ_GDB_SLEEP", "5"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	cmd := exec.CommandContext(ctx, filepath.Join(buildDir, "firefox"), "-profile", prof.Path())
//	cmd.Env = ffharness.EnvironList(env)
//	// start, run and stop the browser...
//
//	if !ffharness.WaitOnFiles(ctx, cmd.Process.Pid, logFiles) {
//	    log.Print("browser still holds log files open")
//	}
//
// # Sanitizer Options
//
// Options inherited from the caller's environment win over harness defaults,
// except log_path, which always points at the harness log prefix. Option
// strings must not contain whitespace; PrepareEnvironment panics if an
// inherited one does.
package ffharness
