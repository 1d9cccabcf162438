package outwriter

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/huangsam/outlier/schema"
)

var csvHeader = []string{"path", "churn", "complexity", "x", "y", "outlier"}

// writeCSVReport prints one row per correlated file.
func writeCSVReport(w io.Writer, res *schema.AnalysisResult) error {
	return writeCSVWithHeader(w, csvHeader, func(cw *csv.Writer) error {
		for _, f := range res.Files {
			if err := cw.Write([]string{
				f.Path,
				strconv.Itoa(f.Churn),
				strconv.Itoa(f.Complexity),
				strconv.Itoa(f.X),
				strconv.Itoa(f.Y),
				strconv.FormatBool(f.Outlier),
			}); err != nil {
				return err
			}
		}
		return nil
	})
}
