package seed

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rogerio-castellano/product-catalog/internal/models"
)

var requiredColumns = []string{"name", "price"}

// ParseCSV reads fixture products from CSV with a header row. Columns are
// matched case-insensitively; name and price are required, description,
// image and countinstock are optional.
func ParseCSV(r io.Reader) ([]models.Product, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	headers, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("invalid CSV header: %w", err)
	}

	index := map[string]int{}
	for i, h := range headers {
		index[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("CSV header is missing column %q", col)
		}
	}

	field := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var products []models.Product
	for line := 2; ; line++ {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("CSV read error: %w", err)
		}

		price, err := strconv.ParseFloat(field(record, "price"), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid price %q", line, field(record, "price"))
		}

		stock := 0
		if s := field(record, "countinstock"); s != "" {
			if stock, err = strconv.Atoi(s); err != nil {
				return nil, fmt.Errorf("line %d: invalid countInStock %q", line, s)
			}
		}

		products = append(products, models.Product{
			Name:         field(record, "name"),
			Price:        price,
			Description:  field(record, "description"),
			Image:        field(record, "image"),
			CountInStock: stock,
		})
	}
	return products, nil
}
