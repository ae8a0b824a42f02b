package analytics

import (
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// BucketCategories groups sale lines by category name, summing subtotal and
// quantity and counting distinct sales. Lines without a category are
// skipped. The caller is expected to pass lines of completed sales only.
func BucketCategories(lines []SaleLineRecord, limit int) []CategoryBucket {
	type acc struct {
		bucket CategoryBucket
		sales  map[uuid.UUID]struct{}
	}

	byName := make(map[string]*acc)
	for _, line := range lines {
		if line.CategoryName == nil {
			continue
		}
		name := *line.CategoryName

		a, ok := byName[name]
		if !ok {
			a = &acc{
				bucket: CategoryBucket{Category: name, TotalRevenue: decimal.Zero},
				sales:  make(map[uuid.UUID]struct{}),
			}
			byName[name] = a
		}
		a.bucket.TotalRevenue = a.bucket.TotalRevenue.Add(line.Subtotal)
		a.bucket.TotalQuantity += line.Quantity
		a.sales[line.SaleID] = struct{}{}
	}

	buckets := make([]CategoryBucket, 0, len(byName))
	for _, a := range byName {
		a.bucket.SaleCount = len(a.sales)
		buckets = append(buckets, a.bucket)
	}

	sort.Slice(buckets, func(i, j int) bool {
		if c := buckets[i].TotalRevenue.Cmp(buckets[j].TotalRevenue); c != 0 {
			return c > 0
		}
		return buckets[i].Category < buckets[j].Category
	})

	return truncate(buckets, limit)
}

// BucketCustomers groups completed sales by customer, summing totals and
// counting purchases. Sales without a customer are skipped.
func BucketCustomers(sales []SaleRecord, limit int) []CustomerBucket {
	byID := make(map[uuid.UUID]*CustomerBucket)
	for _, sale := range sales {
		if sale.Status != SaleStatusCompleted || sale.CustomerID == nil {
			continue
		}

		b, ok := byID[*sale.CustomerID]
		if !ok {
			b = &CustomerBucket{
				CustomerID: *sale.CustomerID,
				Name:       strings.TrimSpace(sale.CustomerFirstName + " " + sale.CustomerLastName),
				Email:      sale.CustomerEmail,
				TotalSpend: decimal.Zero,
			}
			byID[*sale.CustomerID] = b
		}
		b.TotalSpend = b.TotalSpend.Add(sale.Total)
		b.PurchaseCount++
	}

	buckets := make([]CustomerBucket, 0, len(byID))
	for _, b := range byID {
		buckets = append(buckets, *b)
	}

	sort.Slice(buckets, func(i, j int) bool {
		if c := buckets[i].TotalSpend.Cmp(buckets[j].TotalSpend); c != 0 {
			return c > 0
		}
		if buckets[i].Name != buckets[j].Name {
			return buckets[i].Name < buckets[j].Name
		}
		return buckets[i].CustomerID.String() < buckets[j].CustomerID.String()
	})

	return truncate(buckets, limit)
}

// RankProducts orders normalized products by revenue, keeps the top `limit`
// and derives the average revenue per unit (0 when no units were sold)
func RankProducts(products []ProductPerformance, limit int) []ProductRankEntry {
	sorted := make([]ProductPerformance, len(products))
	copy(sorted, products)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Revenue > sorted[j].Revenue
	})
	sorted = truncate(sorted, limit)

	ranked := make([]ProductRankEntry, len(sorted))
	for i, p := range sorted {
		ranked[i] = ProductRankEntry{
			Rank:           i + 1,
			Name:           p.Name,
			Units:          p.Units,
			Revenue:        p.Revenue,
			AveragePerUnit: AveragePerUnit(p.Revenue, p.Units),
		}
	}
	return ranked
}

// AveragePerUnit returns total/units, or 0 when units is not positive
func AveragePerUnit(total float64, units int64) float64 {
	if units <= 0 {
		return 0
	}
	return total / float64(units)
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
