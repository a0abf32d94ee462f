package output

import (
	"encoding/json"
	"fmt"

	"github.com/stocksight/stocksight/pkg/application/dto"
	"github.com/stocksight/stocksight/pkg/domain/services"
)

// Config holds configuration for output generation
type Config struct {
	Format string
}

// Render writes the dashboard result to stdout in the specified format
func Render(result *dto.DashboardResult, config Config) error {
	switch config.Format {
	case "", "text":
		return renderTextOutput(result)
	case "json":
		return renderJSONOutput(result)
	default:
		return fmt.Errorf("unsupported output format: %s", config.Format)
	}
}

// renderTextOutput creates human-readable text output
func renderTextOutput(result *dto.DashboardResult) error {
	fmt.Printf("📊 Inventory Dashboard (%s)\n", result.Period)
	fmt.Printf("===========================\n\n")

	fmt.Printf("Window: %s → %s (%s buckets)\n",
		result.Window.Start.Format("2006-01-02"),
		result.Window.End.Format("2006-01-02"),
		result.Granularity)
	fmt.Printf("Generated: %s\n\n", result.GeneratedAt.Format("2006-01-02 15:04:05"))

	fmt.Printf("Products: %d\n", result.KPIs.ProductCount)
	fmt.Printf("Stock on hand: %d units, valued %s\n",
		result.KPIs.TotalStockQty, result.KPIs.TotalStockValue.StringFixed(2))
	fmt.Printf("Inflow: %d units (%s)  Outflow: %d units (%s)\n",
		result.KPIs.InflowQty, result.KPIs.ReceiptValue.StringFixed(2),
		result.KPIs.OutflowQty, result.KPIs.StockOutValue.StringFixed(2))
	fmt.Printf("Net period value: %s\n\n", result.KPIs.NetValue.StringFixed(2))

	fmt.Printf("📈 Trends vs previous window:\n")
	fmt.Printf("  Inflow qty: %s\n", formatTrend(result.Trends.InflowQty))
	fmt.Printf("  Outflow qty: %s\n", formatTrend(result.Trends.OutflowQty))
	fmt.Printf("  Net value: %s\n\n", formatTrend(result.Trends.NetValue))

	if len(result.Buckets) > 0 {
		fmt.Printf("📦 Movements per %s:\n", result.Granularity)
		fmt.Printf("%-12s %-10s %-10s\n", "Bucket", "Inflow", "Outflow")
		fmt.Printf("%-12s %-10s %-10s\n", "------------", "----------", "----------")
		for _, bucket := range result.Buckets {
			fmt.Printf("%-12s %-10d %-10d\n", bucket.Key, bucket.InflowQty, bucket.OutflowQty)
		}
		fmt.Println()
	}

	if len(result.TopOutboundByQty) > 0 {
		fmt.Printf("🏆 Top outbound products:\n")
		fmt.Printf("%-30s %-10s\n", "Product (by qty)", "Units")
		fmt.Printf("%-30s %-10s\n", "------------------------------", "----------")
		for _, entry := range result.TopOutboundByQty {
			fmt.Printf("%-30s %-10s\n", entry.Key, entry.Total.StringFixed(0))
		}
		fmt.Println()
		fmt.Printf("%-30s %-10s\n", "Product (by value)", "Value")
		fmt.Printf("%-30s %-10s\n", "------------------------------", "----------")
		for _, entry := range result.TopOutboundByValue {
			fmt.Printf("%-30s %-10s\n", entry.Key, entry.Total.StringFixed(2))
		}
		fmt.Println()
	}

	if result.Variance != nil {
		fmt.Printf("🔍 Last physical count (#%d by %s on %s):\n",
			result.Variance.CountID, result.Variance.Agent,
			result.Variance.CountedAt.Format("2006-01-02"))
		fmt.Printf("  Surplus: %d  Missing: %d  Conforming: %d\n\n",
			result.Variance.Positive, result.Variance.Negative, result.Variance.Conforming)
	}

	if result.MaintenanceDegraded {
		fmt.Printf("⚠️  Maintenance records unavailable, feed shows stock alerts only\n\n")
	}

	fmt.Printf("🔔 Alerts (%d unread, %d read):\n",
		len(result.ReadState.Unread), len(result.ReadState.Read))
	if len(result.Feed) == 0 {
		fmt.Printf("  none\n")
	} else {
		fmt.Printf("%-10s %-10s %-22s %s\n", "ID", "Severity", "Kind", "Message")
		fmt.Printf("%-10s %-10s %-22s %s\n", "----------", "----------", "----------------------", "-------")
		for _, alert := range result.Feed {
			fmt.Printf("%-10d %-10s %-22s %s\n",
				alert.ID.Numeric(), alert.Severity, alert.Kind, alert.Message)
		}
	}

	return nil
}

// renderJSONOutput creates JSON output
func renderJSONOutput(result *dto.DashboardResult) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(jsonData))
	return nil
}

func formatTrend(t services.Trend) string {
	arrow := "▼"
	if t.Direction == services.TrendUp {
		arrow = "▲"
	}
	return fmt.Sprintf("%s %.1f%%", arrow, t.Percent)
}
