package config

import "time"

const (
	// DefaultWeight is the cost assumed for a test file with no historical timing
	DefaultWeight = 1000 * time.Millisecond
	// DefaultBranch is the branch whose prior runs supply historical timings
	DefaultBranch = "master"
	// DefaultAPIBaseURL is the CI provider REST API endpoint
	DefaultAPIBaseURL = "https://circleci.com/api/v1.1"
	// DefaultNodes is the default number of buckets to produce
	DefaultNodes = 1
	// DefaultFetchConcurrency bounds parallel artifact downloads
	DefaultFetchConcurrency = 4
	// DefaultBuildLimit is how many recent builds to inspect for artifacts
	DefaultBuildLimit = 10
)

// Distribution modes accepted by the --mode flag.
const (
	ModeCopy   = "copy"
	ModeDelete = "delete"
)

// DefaultTestExtensions are the file extensions recognized as test files
// when scraping timings out of console output.
var DefaultTestExtensions = []string{".js", ".jsx", ".ts", ".tsx", ".mjs"}

// DefaultPathsToIgnore are the default directories to skip when scanning for tests
var DefaultPathsToIgnore = []string{
	"node_modules",
}
