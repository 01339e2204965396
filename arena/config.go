package arena

import s "github.com/bnclabs/gosettings"

// MmapThreshold is the default boundary, in bytes, deciding whether an
// Allocate request is served from the heap or from an independent
// mapping. Requests whose aligned total (payload plus header stride)
// meet or exceed this value go to mmap.
const MmapThreshold = int64(131072) // 128KiB

// Defaultsettings for a new Arena.
//
// "mmap.threshold" (int64, default: MmapThreshold)
//		Requests whose aligned size plus header stride is at or above
//		this value bypass the heap and are served by an independent
//		anonymous mapping.
//
// "prealloc" (bool, default: true)
//		Reserve a single heap block whose footprint equals
//		"mmap.threshold" on the first
//		heap-bound allocation, instead of extending the break exactly
//		to size on every first call.
func Defaultsettings() s.Settings {
	return s.Settings{
		"mmap.threshold": MmapThreshold,
		"prealloc":       true,
	}
}
