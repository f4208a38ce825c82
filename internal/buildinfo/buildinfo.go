// Package buildinfo carries values stamped at link time:
//
//	go build -ldflags "-X archject/internal/buildinfo.Version=v1.2.0 -X archject/internal/buildinfo.Commit=$(git rev-parse --short HEAD)"
package buildinfo

var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)
