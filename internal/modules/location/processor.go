package location

import (
	"fmt"
	"math"
)

// Preprocess standardises latitude, longitude, rating and price level to zero
// mean and unit variance over this batch. Row order and every Record field are
// preserved. A column with zero variance scales to 0.
func Preprocess(records []Record) (*Table, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 records, got %d", ErrInsufficientData, len(records))
	}

	n := float64(len(records))
	var mean, std Features
	for _, r := range records {
		f := r.features()
		for c := range f {
			mean[c] += f[c]
		}
	}
	for c := range mean {
		mean[c] /= n
	}
	for _, r := range records {
		f := r.features()
		for c := range f {
			d := f[c] - mean[c]
			std[c] += d * d
		}
	}

	t := &Table{
		Rows:  make([]Row, len(records)),
		Stats: make(map[Column]ColumnStats, len(NumericColumns)),
	}
	for c, col := range NumericColumns {
		std[c] = math.Sqrt(std[c] / n)
		t.Stats[col] = ColumnStats{Mean: mean[c], Std: std[c]}
		if std[c] < 1e-12 {
			std[c] = 1
		}
	}

	for i, r := range records {
		f := r.features()
		var scaled Features
		for c := range f {
			scaled[c] = (f[c] - mean[c]) / std[c]
		}
		r.Categories = append([]string(nil), r.Categories...)
		t.Rows[i] = Row{Record: r, Scaled: scaled}
	}
	return t, nil
}
