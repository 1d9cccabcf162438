package schema

import (
	"errors"
	"fmt"
)

// Custom string types for type safety.
type (
	// Metric represents a named complexity metric.
	Metric string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the run archive.
	DatabaseBackend string

	// GitBackend represents the implementation used to read the change log.
	GitBackend string
)

// AxisRole selects one of the two numeric fields of a MetricPoint.
type AxisRole int

// All axis roles supported.
const (
	AxisChurn AxisRole = iota
	AxisComplexity
)

// String implements fmt.Stringer.
func (a AxisRole) String() string {
	switch a {
	case AxisChurn:
		return "Churn"
	case AxisComplexity:
		return "Complexity"
	default:
		return fmt.Sprintf("AxisRole(%d)", int(a))
	}
}

// All complexity metrics supported.
const (
	CCNMetric  Metric = "CCN" // default
	NLOCMetric Metric = "NLOC"
)

// ErrUnknownMetric is returned when a metric identifier is neither CCN nor NLOC.
var ErrUnknownMetric = errors.New("unknown complexity metric")

// Select returns the score of fc under this metric.
func (m Metric) Select(fc FileComplexity) (int, error) {
	switch m {
	case CCNMetric:
		return fc.CCN, nil
	case NLOCMetric:
		return fc.NLOC, nil
	default:
		return 0, fmt.Errorf("%w %q: must be CCN or NLOC", ErrUnknownMetric, string(m))
	}
}

// All output modes supported.
const (
	TextOut    OutputMode = "text" // default
	TableOut   OutputMode = "table"
	JSONOut    OutputMode = "json"
	CSVOut     OutputMode = "csv"
	ParquetOut OutputMode = "parquet"
	HTMLOut    OutputMode = "html"
)

// All archive backends supported.
const (
	NoneBackend       DatabaseBackend = "none" // default
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
)

// All git backends supported.
const (
	ExecGitBackend  GitBackend = "exec" // default
	GoGitGitBackend GitBackend = "go-git"
)

// ValidMetrics lists all valid complexity metrics.
var ValidMetrics = map[Metric]struct{}{
	CCNMetric:  {},
	NLOCMetric: {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TextOut:    {},
	TableOut:   {},
	JSONOut:    {},
	CSVOut:     {},
	ParquetOut: {},
	HTMLOut:    {},
}

// ValidDatabaseBackends lists all valid archive backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	NoneBackend:       {},
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
}

// ValidGitBackends lists all valid git backends.
var ValidGitBackends = map[GitBackend]struct{}{
	ExecGitBackend:  {},
	GoGitGitBackend: {},
}

// Plot defaults.
const (
	DefaultPlotWidth  = 70
	DefaultPlotHeight = 30
)
