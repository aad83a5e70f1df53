package version

// Set via -ldflags "-X github.com/thetatoken/txverify/version.Version=..." at build time.
var (
	Version   = "0.1.0"
	GitHash   = "unknown"
	Timestamp = "unknown"
)
