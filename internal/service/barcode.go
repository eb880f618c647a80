package service

import (
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"github.com/tawseel-next/internal/constants"
)

const barcodeMaxAttempts = 8

// BarcodeGenerator issues order and delegate-sheet barcodes
type BarcodeGenerator struct {
	now  func() time.Time
	intn func(n int) int
}

// NewBarcodeGenerator uses the wall clock and math/rand
func NewBarcodeGenerator() *BarcodeGenerator {
	return &BarcodeGenerator{now: time.Now, intn: rand.Intn}
}

// OrderBarcode "ORD" + epoch millis + 0..999
func (g *BarcodeGenerator) OrderBarcode() string {
	return fmt.Sprintf("%s%d%d", constants.OrderBarcodePrefix, g.now().UnixMilli(), g.intn(1000))
}

// SheetBarcode driver id padded to two digits + last 8 digits of epoch millis shifted by offset
func (g *BarcodeGenerator) SheetBarcode(driverID uint, offset int) string {
	millis := strconv.FormatInt(g.now().UnixMilli()+int64(offset), 10)
	if len(millis) > 8 {
		millis = millis[len(millis)-8:]
	}
	return fmt.Sprintf("%02d%s", driverID, millis)
}

// uniqueBarcode retries next until exists reports the candidate free
func uniqueBarcode(next func(attempt int) string, exists func(code string) (bool, error)) (string, error) {
	for attempt := 0; attempt < barcodeMaxAttempts; attempt++ {
		candidate := next(attempt)
		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", ErrBarcodeGenerateFailed
}
