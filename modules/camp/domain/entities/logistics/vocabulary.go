package logistics

import "github.com/iota-uz/camp-sdk/pkg/transform"

type TicketType string

const (
	TicketMain          TicketType = "MAIN"
	TicketDirectedGroup TicketType = "DIRECTED_GROUP"
	TicketLowIncome     TicketType = "LOW_INCOME"
	TicketSteward       TicketType = "STEWARD"
	TicketVehiclePass   TicketType = "VEHICLE_PASS"
	TicketOther         TicketType = "OTHER"
)

type PassType string

const (
	PassEarlyArrival PassType = "EARLY_ARRIVAL"
	PassWorkAccess   PassType = "WORK_ACCESS"
	PassOther        PassType = "OTHER"
)

type InventoryCategory string

const (
	InventoryKitchen    InventoryCategory = "KITCHEN"
	InventoryShade      InventoryCategory = "SHADE"
	InventoryPower      InventoryCategory = "POWER"
	InventoryLighting   InventoryCategory = "LIGHTING"
	InventoryTools      InventoryCategory = "TOOLS"
	InventoryWater      InventoryCategory = "WATER"
	InventoryShelter    InventoryCategory = "SHELTER"
	InventorySanitation InventoryCategory = "SANITATION"
	InventoryArt        InventoryCategory = "ART"
	InventoryOther      InventoryCategory = "OTHER"
)

var ticketTypes = transform.NewVocabulary("ticket type", TicketOther,
	map[string]TicketType{
		"":   TicketMain,
		"dg": TicketDirectedGroup,
		"vp": TicketVehiclePass,
	},
	transform.Rule[TicketType]{Match: transform.Contains("vehicle", "parking"), Result: TicketVehiclePass},
	transform.Rule[TicketType]{Match: transform.Contains("directed", "dgs"), Result: TicketDirectedGroup},
	transform.Rule[TicketType]{Match: transform.Contains("low income", "low-income", "fomo"), Result: TicketLowIncome},
	transform.Rule[TicketType]{Match: transform.Contains("steward"), Result: TicketSteward},
	transform.Rule[TicketType]{Match: transform.Contains("main", "general", "public", "ticket", "standard"), Result: TicketMain},
)

var passTypes = transform.NewVocabulary("pass type", PassOther,
	map[string]PassType{
		"":    PassEarlyArrival,
		"ea":  PassEarlyArrival,
		"wap": PassWorkAccess,
	},
	transform.Rule[PassType]{Match: transform.Contains("work access", "wap"), Result: PassWorkAccess},
	transform.Rule[PassType]{Match: transform.Contains("early"), Result: PassEarlyArrival},
	transform.Rule[PassType]{Match: transform.Word("ea"), Result: PassEarlyArrival},
)

var inventoryCategories = transform.NewVocabulary("inventory category", InventoryOther,
	map[string]InventoryCategory{
		"kitchen": InventoryKitchen,
		"shade":   InventoryShade,
		"power":   InventoryPower,
		"tools":   InventoryTools,
		"water":   InventoryWater,
	},
	transform.Rule[InventoryCategory]{Match: transform.Contains("kitchen", "cook", "food"), Result: InventoryKitchen},
	transform.Rule[InventoryCategory]{Match: transform.Contains("shade", "tarp"), Result: InventoryShade},
	transform.Rule[InventoryCategory]{Match: transform.Contains("light"), Result: InventoryLighting},
	transform.Rule[InventoryCategory]{Match: transform.Contains("power", "electric", "generator", "solar"), Result: InventoryPower},
	transform.Rule[InventoryCategory]{Match: transform.Contains("tool", "hardware"), Result: InventoryTools},
	transform.Rule[InventoryCategory]{Match: transform.Contains("sanitat", "shower", "grey water", "gray water", "toilet"), Result: InventorySanitation},
	transform.Rule[InventoryCategory]{Match: transform.Contains("water"), Result: InventoryWater},
	transform.Rule[InventoryCategory]{Match: transform.Contains("shelter", "structure", "dome", "yurt", "tent"), Result: InventoryShelter},
	transform.Rule[InventoryCategory]{Match: transform.Word("art", "decor", "decorations"), Result: InventoryArt},
)

// ParseTicketType treats an empty cell as a main ticket.
func ParseTicketType(s string) TicketType { return ticketTypes.Normalize(s) }

func ParsePassType(s string) PassType { return passTypes.Normalize(s) }

func ParseInventoryCategory(s string) InventoryCategory { return inventoryCategories.Normalize(s) }

// LookupInventoryCategory reports false when the header names no known
// category.
func LookupInventoryCategory(s string) (InventoryCategory, bool) { return inventoryCategories.Lookup(s) }
