package extract

import "fmt"

var molt = []string{"", "k", "M", "G"}

func sizeNorm[T int | int32 | int64](s T) string {
	var sz = float64(s)
	var i = 0

	for sz > 1000 && i < len(molt)-1 {
		sz /= 1000.0
		i++
	}

	return fmt.Sprintf("%.3f %sB", sz, molt[i])
}
