package cleaner

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/jmylchreest/tabclean/pkg/table"
)

// ZScoreLimit is the absolute z-score above which a value is an outlier.
const ZScoreLimit = 3.0

// OutlierRemover drops rows that are z-score outliers on any numeric column.
type OutlierRemover struct{}

// NewOutlierRemover creates the remove_outliers stage.
func NewOutlierRemover() *OutlierRemover {
	return &OutlierRemover{}
}

// Clean tests every Number column. Missing cells are never outliers and a
// column with zero spread is skipped.
func (c *OutlierRemover) Clean(t *table.Table) (string, error) {
	keep := make([]bool, t.NumRows())
	for i := range keep {
		keep[i] = true
	}

	for _, col := range t.Columns() {
		if col.Kind != table.Number {
			continue
		}
		mean, std, ok := meanStd(col.Values)
		if !ok {
			continue
		}
		for i, v := range col.Values {
			if v.IsNull() {
				continue
			}
			if math.Abs(v.Num-mean)/std > ZScoreLimit {
				keep[i] = false
			}
		}
	}

	removed := t.Retain(keep)
	return fmt.Sprintf("Removed %d outlier rows.", removed), nil
}

// Name returns the stage identifier.
func (c *OutlierRemover) Name() string {
	return string(StageRemoveOutliers)
}

// meanStd returns the mean and population standard deviation of the
// non-missing values. ok is false when the deviation is zero or undefined.
func meanStd(values []table.Value) (mean, std float64, ok bool) {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !v.IsNull() {
			xs = append(xs, v.Num)
		}
	}
	if len(xs) == 0 {
		return 0, 0, false
	}

	mean, std = stat.PopMeanStdDev(xs, nil)
	if std == 0 || math.IsNaN(std) || math.IsInf(std, 0) {
		return mean, std, false
	}
	return mean, std, true
}
