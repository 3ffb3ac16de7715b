// Package version holds the gwmodule build version, reported by both
// cmd/gwmoduled and cmd/gwmodulectl.
package version

import "fmt"

var Version = "0.1.0"

func JSON() []byte {
	return []byte(fmt.Sprintf(`{"version": "%s"}`, Version))
}
