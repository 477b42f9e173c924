// Package codec implements the binary deserializer and serializer that
// drive a spec.DecodeField/spec.EncodeField list against a
// wire.Reader/wire.Writer.
package codec

import (
	"os"
	"strconv"
)

// Config controls decode-time behavior left as an implementation choice:
// a package-level struct plus an explicit setter and env-var override for
// test harnesses.
type Config struct {
	// DispatchArrayThreshold is the max_tag cutoff below which Unmarshal
	// builds a flat dispatch array instead of a tag->field map. Default 1024.
	DispatchArrayThreshold int32
}

var config = Config{DispatchArrayThreshold: 1024}

// SetConfig replaces the package-level Config.
func SetConfig(c Config) { config = c }

// GetConfig returns the current package-level Config.
func GetConfig() Config { return config }

func init() {
	if v := os.Getenv("PROTOC_PLUGIN_GO_DISPATCH_THRESHOLD"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil && n > 0 {
			config.DispatchArrayThreshold = int32(n)
		}
	}
}
