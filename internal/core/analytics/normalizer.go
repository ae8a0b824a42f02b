package analytics

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Payload keys of the dashboard-statistics collaborator
const (
	KeySuccess      = "success"
	KeyStats        = "stats"
	KeyMonthlySales = "ventas_mensuales"
	KeyTopProducts  = "top_products"  // public convention, top level
	KeyProductsTop  = "productos_top" // internal convention, under stats
)

// headlineKeys fixes the order and labels of the headline table
var headlineKeys = []struct {
	key   string
	label string
	money bool
}{
	{"ventas_mes", "Ventas del Mes", true},
	{"total_pedidos", "Total Pedidos", false},
	{"nuevos_clientes", "Nuevos Clientes", false},
	{"productos_activos", "Productos Activos", false},
}

// productKeys lists, per canonical field, the public key and its internal fallback
var productKeys = struct {
	name, units, revenue [2]string
}{
	name:    [2]string{"name", "nombre"},
	units:   [2]string{"sales", "cantidad"},
	revenue: [2]string{"revenue", "total"},
}

// NormalizeDashboardPayload collapses the loosely-typed statistics payload
// into DashboardData. Nothing past this function sees the raw map.
func NormalizeDashboardPayload(payload map[string]interface{}) DashboardData {
	var data DashboardData

	stats, _ := payload[KeyStats].(map[string]interface{})
	if !truthy(payload[KeySuccess]) || len(stats) == 0 {
		return data
	}
	data.HasStats = true

	for _, hk := range headlineKeys {
		raw, ok := stats[hk.key].(map[string]interface{})
		if !ok || len(raw) == 0 {
			continue
		}
		change := ToFloat64(raw["change"])
		trend, _ := raw["trend"].(string)
		if trend == "" {
			trend = TrendDirection(change)
		}
		data.Headline = append(data.Headline, HeadlineMetric{
			Key:    hk.key,
			Label:  hk.label,
			Value:  ToFloat64(raw["value"]),
			Change: change,
			Trend:  trend,
			Money:  hk.money,
		})
	}

	if monthly, ok := stats[KeyMonthlySales].(map[string]interface{}); ok {
		labels := toStrings(monthly["labels"])
		values := toFloats(monthly["values"])
		data.Monthly = MonthlySeries(labels, values)
	}

	rawProducts := toSlice(payload[KeyTopProducts])
	if len(rawProducts) == 0 {
		rawProducts = toSlice(stats[KeyProductsTop])
	}
	data.Products = NormalizeProducts(rawProducts)

	return data
}

// NormalizeProducts maps product entries of either naming convention to
// ProductPerformance. Entries that are not objects are ignored.
func NormalizeProducts(raw []interface{}) []ProductPerformance {
	products := make([]ProductPerformance, 0, len(raw))
	for _, item := range raw {
		entry, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		products = append(products, NormalizeProduct(entry))
	}
	return products
}

// NormalizeProduct prefers the public key, then the internal key, then a
// default. A public key holding an empty or zero value falls through.
func NormalizeProduct(entry map[string]interface{}) ProductPerformance {
	name := "N/A"
	if v := firstTruthy(entry, productKeys.name); v != nil {
		name = fmt.Sprint(v)
	}

	return ProductPerformance{
		Name:    name,
		Units:   int64(math.Round(ToFloat64(firstTruthy(entry, productKeys.units)))),
		Revenue: ToFloat64(firstTruthy(entry, productKeys.revenue)),
	}
}

func firstTruthy(entry map[string]interface{}, keys [2]string) interface{} {
	for _, k := range keys {
		if v, ok := entry[k]; ok && truthy(v) {
			return v
		}
	}
	return nil
}

func truthy(value interface{}) bool {
	switch v := value.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case map[string]interface{}:
		return len(v) > 0
	case []interface{}:
		return len(v) > 0
	default:
		return ToFloat64(v) != 0
	}
}

// ToFloat64 converts the numeric shapes a decoded payload may carry
func ToFloat64(value interface{}) float64 {
	switch v := value.(type) {
	case nil:
		return 0
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case json.Number:
		f, _ := v.Float64()
		return f
	case decimal.Decimal:
		return v.InexactFloat64()
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		return f
	case []byte:
		return ToFloat64(string(v))
	default:
		return 0
	}
}

func toSlice(value interface{}) []interface{} {
	switch v := value.(type) {
	case []interface{}:
		return v
	case []map[string]interface{}:
		out := make([]interface{}, len(v))
		for i := range v {
			out[i] = v[i]
		}
		return out
	default:
		return nil
	}
}

func toStrings(value interface{}) []string {
	switch v := value.(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, len(v))
		for i, item := range v {
			out[i] = fmt.Sprint(item)
		}
		return out
	default:
		return nil
	}
}

func toFloats(value interface{}) []float64 {
	switch v := value.(type) {
	case []float64:
		return v
	case []interface{}:
		out := make([]float64, len(v))
		for i, item := range v {
			out[i] = ToFloat64(item)
		}
		return out
	default:
		return nil
	}
}
