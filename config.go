package ffharness

import (
	"github.com/giantswarm/ffharness/internal/environ"
	"github.com/giantswarm/ffharness/internal/process"
	"github.com/giantswarm/ffharness/internal/profile"
)

// waitConfig wraps process.WaitConfig via embedding, keeping internal types
// out of the public API signature.
type waitConfig struct {
	process.WaitConfig
}

// envConfig wraps environ.Config. base replaces os.Environ() when set.
type envConfig struct {
	environ.Config
	base    []string
	hasBase bool
}

// profileConfig wraps profile.Config.
type profileConfig struct {
	profile.Config
}

// defaultWaitConfig returns a waitConfig populated with the defaults. Both
// WaitOnFiles and test helpers use it.
func defaultWaitConfig() waitConfig {
	return waitConfig{process.WaitConfig{
		Interval:  DefaultPollInterval,
		Timeout:   DefaultWaitTimeout,
		Recursive: DefaultRecursive,
	}}
}

func defaultEnvConfig(targetDir, logPrefix string) envConfig {
	return envConfig{Config: environ.Config{
		TargetDir: targetDir,
		LogPrefix: logPrefix,
	}}
}

func defaultProfileConfig() profileConfig {
	return profileConfig{}
}
