// Package store persists named record collections as JSON payloads behind a
// minimal key-value contract, with an in-memory and a sqlite implementation.
package store

// Fixed collection names known to the dashboard.
const (
	CollectionROI     = "roi_data"
	CollectionSales   = "sales_data"
	CollectionCost    = "cost_data"
	CollectionRevenue = "revenue_data"
)

// Collections lists every name a bulk clear must remove.
var Collections = []string{CollectionROI, CollectionSales, CollectionCost, CollectionRevenue}

// KV is the persistence contract: whole-collection overwrite on Set,
// nil payload (no error) when a collection is absent.
type KV interface {
	Set(name string, payload []byte) error
	Get(name string) ([]byte, error)
	Delete(name string) error
	Close() error
}
