package timing

import "time"

// Resolve merges observed durations into the inventory. The result has
// exactly the inventory's key set: an override replaces the default where
// its key exists in the inventory, and is dropped where it does not.
// Historical records may reference files renamed or deleted since the last
// run; such stale entries must never introduce keys the inventory does not
// have. Neither input map is mutated.
func Resolve(inventory, overrides map[string]time.Duration) map[string]time.Duration {
	resolved := make(map[string]time.Duration, len(inventory))
	for name, weight := range inventory {
		resolved[name] = weight
	}
	for name, weight := range overrides {
		if _, ok := resolved[name]; ok {
			resolved[name] = weight
		}
	}
	return resolved
}
