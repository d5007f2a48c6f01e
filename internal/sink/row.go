package sink

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/dmarrero/whalewatch/internal/model"
)

// RowHeaders is the fixed durable-log schema. The header row is provisioned
// lazily when missing.
var RowHeaders = []string{
	"Date", "Time", "Source", "Asset", "Action",
	"NotionalUSD", "Size", "Price", "Exchange", "UID",
}

// BuildRow renders one event as a log row matching RowHeaders.
func BuildRow(ev model.Event, uid string) []string {
	at := ev.OccurredAt.UTC()
	return []string{
		at.Format("2006-01-02"),
		at.Format("15:04:05"),
		ev.Source.String(),
		ev.Asset,
		ev.Action,
		ev.NotionalUSD.String(),
		ev.Size.String(),
		ev.Price.String(),
		ev.Exchange,
		uid,
	}
}

var usdPrinter = message.NewPrinter(language.English)

// fmtUSD formats a dollar amount with thousands separators, keeping more
// precision the smaller the amount.
func fmtUSD(d decimal.Decimal) string {
	f, _ := d.Float64()
	switch abs := math.Abs(f); {
	case abs >= 1000:
		return usdPrinter.Sprintf("$%.0f", f)
	case abs < 1:
		return usdPrinter.Sprintf("$%.4f", f)
	default:
		return usdPrinter.Sprintf("$%.2f", f)
	}
}

// shortenURL compresses the address tail of an explorer URL for display,
// e.g. .../0x9abc...fc4.
func shortenURL(url string) string {
	i := strings.LastIndex(url, "/")
	if i < 0 {
		return url
	}
	base, addr := url[:i], url[i+1:]
	if len(addr) <= 8 {
		return url
	}
	return base + "/" + addr[:3] + "..." + addr[len(addr)-3:]
}
