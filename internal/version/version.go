package version

// Set with -ldflags at build time.
var (
	Version   = "dev"
	GitCommit = "unknown"
)
