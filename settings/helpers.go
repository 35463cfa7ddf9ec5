package settings

import (
	"math"
	"time"

	"github.com/ordishs/gocore"
)

func getString(key, defaultValue string) string {
	if value, found := gocore.Config().Get(key); found {
		return value
	}

	return defaultValue
}

func getInt(key string, defaultValue int) int {
	if value, found := gocore.Config().GetInt(key); found {
		return value
	}

	return defaultValue
}

func getBool(key string, defaultValue bool) bool {
	return gocore.Config().GetBool(key, defaultValue)
}

// getSeconds reads a whole number of seconds.
func getSeconds(key string, defaultSeconds int) time.Duration {
	return time.Duration(getInt(key, defaultSeconds)) * time.Second
}

// getNonceLimit reads an upper nonce bound; 0, negative or out of range values
// mean the whole uint32 space.
func getNonceLimit(key string) uint32 {
	n := getInt(key, 0)
	if n <= 0 || uint64(n) > math.MaxUint32 {
		return math.MaxUint32
	}

	return uint32(n)
}
