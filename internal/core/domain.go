// Package core holds the typed domain records and the derived views computed
// from them: the projected-items timeline and the budget chart summaries.
package core

const (
	// Kinds are the named record collections in the backing store.
	KindBudgetItems    = "budget_items"
	KindIdeasItems     = "ideas_items"
	KindInventoryItems = "inventory_items"
	KindMoviesGames    = "movies_games"
	KindNeedsItems     = "needs_items"
	KindTools          = "tools"
)

// Kinds lists every collection the API serves.
var Kinds = []string{
	KindBudgetItems,
	KindIdeasItems,
	KindInventoryItems,
	KindMoviesGames,
	KindNeedsItems,
	KindTools,
}

type (
	BudgetType    string
	InventoryType string
	MediaType     string
)

const (
	BudgetMonthly BudgetType = "monthly"
	BudgetOneTime BudgetType = "one-time"

	InventoryConsumable    InventoryType = "consumable"
	InventoryNonConsumable InventoryType = "non-consumable"

	MediaVHS  MediaType = "VHS"
	MediaDVD  MediaType = "DVD"
	MediaGame MediaType = "Game"
)

// BudgetItem is a recurring or one-time planned expense.
type BudgetItem struct {
	ID          string
	Name        string
	Type        BudgetType
	Cost        float64
	PaymentDate *string // YYYY-MM-DD, one-time items only
	CreatedAt   string
}

// IdeasItem is a free-form wishlist entry.
type IdeasItem struct {
	ID          string
	Description string
	Price       *float64
	Notes       *string
	CreatedAt   string
}

// InventoryItem is a thing the cabin owns. Consumable items carry a
// replacement date saying when they should be restocked.
type InventoryItem struct {
	ID              string
	Name            string
	Type            InventoryType
	Quantity        *int
	State           *string
	ReplacementDate *string // YYYY-MM-DD
	CreatedAt       string
}

// MovieGameItem is shelf media. Players applies to games only.
type MovieGameItem struct {
	ID        string
	Name      string
	Type      MediaType
	Players   *string
	CreatedAt string
}

// NeedsItem is something the cabin is missing.
type NeedsItem struct {
	ID          string
	Description string
	Price       *float64
	Quantity    int
	CreatedAt   string
}

// ToolItem is a tool in the shed.
type ToolItem struct {
	ID         string
	Name       string
	Quantity   int
	Electric   bool
	Consumable bool
	CreatedAt  string
}
