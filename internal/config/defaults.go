package config

const (
	// DefaultProjectPath is the default project path
	DefaultProjectPath = "."
	// DefaultDocument is tested when no document is given
	DefaultDocument = "README.md"
	// DefaultDocumentPattern selects markdown files when scanning directories
	DefaultDocumentPattern = "*.md"
	// DefaultOutputJSONFile is the default output JSON file name
	DefaultOutputJSONFile = "results.json"
	// DefaultOutputJSONDir is the default output directory
	DefaultOutputJSONDir = ".mdtest"
	// DefaultLogLevel is the default log level
	DefaultLogLevel = "info"
	// DefaultTempDirPattern names the per-section working directories
	DefaultTempDirPattern = "mdtest-*"
	// ResultsDSNEnv may hold the MySQL DSN for storing results
	ResultsDSNEnv = "MDTEST_RESULTS_DSN"
)

// DefaultPathsToIgnore are the default directories to ignore when scanning for documents
var DefaultPathsToIgnore = []string{
	"vendor",
	"node_modules",
	"testdata",
	"target",
	"dist",
}
