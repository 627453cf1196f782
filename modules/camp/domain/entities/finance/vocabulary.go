package finance

import "github.com/iota-uz/camp-sdk/pkg/transform"

type PaymentType string

const (
	PaymentDues          PaymentType = "DUES"
	PaymentGrid          PaymentType = "GRID"
	PaymentDonation      PaymentType = "DONATION"
	PaymentTicket        PaymentType = "TICKET"
	PaymentReimbursement PaymentType = "REIMBURSEMENT"
	PaymentOther         PaymentType = "OTHER"
)

type PaymentMethod string

const (
	MethodVenmo  PaymentMethod = "VENMO"
	MethodZelle  PaymentMethod = "ZELLE"
	MethodPayPal PaymentMethod = "PAYPAL"
	MethodCash   PaymentMethod = "CASH"
	MethodCheck  PaymentMethod = "CHECK"
	MethodCard   PaymentMethod = "CARD"
	MethodBank   PaymentMethod = "BANK_TRANSFER"
	MethodOther  PaymentMethod = "OTHER"
)

type BudgetCategory string

const (
	CategoryFood          BudgetCategory = "FOOD"
	CategoryWater         BudgetCategory = "WATER"
	CategoryIce           BudgetCategory = "ICE"
	CategoryFuel          BudgetCategory = "FUEL"
	CategoryPower         BudgetCategory = "POWER"
	CategoryShade         BudgetCategory = "SHADE"
	CategoryStructure     BudgetCategory = "STRUCTURE"
	CategoryKitchen       BudgetCategory = "KITCHEN"
	CategorySanitation    BudgetCategory = "SANITATION"
	CategoryTransport     BudgetCategory = "TRANSPORT"
	CategoryArt           BudgetCategory = "ART"
	CategoryFees          BudgetCategory = "FEES"
	CategorySupplies      BudgetCategory = "SUPPLIES"
	CategoryUncategorized BudgetCategory = "UNCATEGORIZED"
)

var paymentTypes = transform.NewVocabulary("payment type", PaymentOther,
	map[string]PaymentType{
		"":     PaymentDues,
		"dues": PaymentDues,
		"grid": PaymentGrid,
	},
	transform.Rule[PaymentType]{Match: transform.Contains("reimb", "refund"), Result: PaymentReimbursement},
	transform.Rule[PaymentType]{Match: transform.Contains("grid", "power", "electric"), Result: PaymentGrid},
	transform.Rule[PaymentType]{Match: transform.Word("amp", "amps"), Result: PaymentGrid},
	transform.Rule[PaymentType]{Match: transform.Contains("due", "camp fee", "membership"), Result: PaymentDues},
	transform.Rule[PaymentType]{Match: transform.Contains("donat", "gift"), Result: PaymentDonation},
	transform.Rule[PaymentType]{Match: transform.Word("tip", "tips"), Result: PaymentDonation},
	transform.Rule[PaymentType]{Match: transform.Contains("ticket"), Result: PaymentTicket},
)

var paymentMethods = transform.NewVocabulary("payment method", MethodOther,
	map[string]PaymentMethod{
		"cc": MethodCard,
	},
	transform.Rule[PaymentMethod]{Match: transform.Contains("venmo"), Result: MethodVenmo},
	transform.Rule[PaymentMethod]{Match: transform.Contains("zelle"), Result: MethodZelle},
	transform.Rule[PaymentMethod]{Match: transform.Contains("paypal", "pay pal"), Result: MethodPayPal},
	transform.Rule[PaymentMethod]{Match: transform.Contains("cash"), Result: MethodCash},
	transform.Rule[PaymentMethod]{Match: transform.Contains("check", "cheque"), Result: MethodCheck},
	transform.Rule[PaymentMethod]{Match: transform.Contains("card", "credit", "debit", "stripe", "square"), Result: MethodCard},
	transform.Rule[PaymentMethod]{Match: transform.Contains("wire", "transfer", "bank"), Result: MethodBank},
	transform.Rule[PaymentMethod]{Match: transform.Word("ach"), Result: MethodBank},
)

// Order matters: sanitation before water ("grey water"), food before fees
// ("coffee").
var budgetCategories = transform.NewVocabulary("budget category", CategoryUncategorized,
	map[string]BudgetCategory{
		"food":       CategoryFood,
		"groceries":  CategoryFood,
		"water":      CategoryWater,
		"ice":        CategoryIce,
		"fuel":       CategoryFuel,
		"power":      CategoryPower,
		"shade":      CategoryShade,
		"kitchen":    CategoryKitchen,
		"sanitation": CategorySanitation,
		"transport":  CategoryTransport,
		"art":        CategoryArt,
		"fees":       CategoryFees,
		"supplies":   CategorySupplies,
	},
	transform.Rule[BudgetCategory]{Match: transform.Contains("grocer", "food", "meal", "snack", "coffee", "produce", "costco"), Result: CategoryFood},
	transform.Rule[BudgetCategory]{Match: transform.Contains("porta", "potty", "toilet", "grey water", "gray water", "sanitat", "trash", "hand wash"), Result: CategorySanitation},
	transform.Rule[BudgetCategory]{Match: transform.Contains("water"), Result: CategoryWater},
	transform.Rule[BudgetCategory]{Match: transform.Word("ice"), Result: CategoryIce},
	transform.Rule[BudgetCategory]{Match: transform.Word("gas", "diesel", "propane", "fuel", "gasoline"), Result: CategoryFuel},
	transform.Rule[BudgetCategory]{Match: transform.Contains("generator", "solar", "electric", "power", "batter", "cable"), Result: CategoryPower},
	transform.Rule[BudgetCategory]{Match: transform.Contains("shade", "tarp", "aluminet"), Result: CategoryShade},
	transform.Rule[BudgetCategory]{Match: transform.Contains("lumber", "rebar", "struct", "dome", "build"), Result: CategoryStructure},
	transform.Rule[BudgetCategory]{Match: transform.Contains("kitchen", "stove", "cookware", "dishes"), Result: CategoryKitchen},
	transform.Rule[BudgetCategory]{Match: transform.Contains("truck", "rental", "uhaul", "u-haul", "trailer", "transport", "shipping"), Result: CategoryTransport},
	transform.Rule[BudgetCategory]{Match: transform.Word("art", "decor", "decorations", "lighting", "lights"), Result: CategoryArt},
	transform.Rule[BudgetCategory]{Match: transform.Contains("fee", "permit", "license", "insurance"), Result: CategoryFees},
	transform.Rule[BudgetCategory]{Match: transform.Contains("supplies", "tools", "hardware", "misc"), Result: CategorySupplies},
)

// ParsePaymentType maps the ledger's type column; blank rows are dues.
func ParsePaymentType(s string) PaymentType { return paymentTypes.Normalize(s) }

func ParsePaymentMethod(s string) PaymentMethod { return paymentMethods.Normalize(s) }

// LookupBudgetCategory reports false for descriptions no rule recognizes.
func LookupBudgetCategory(s string) (BudgetCategory, bool) { return budgetCategories.Lookup(s) }

// ParseBudgetCategory falls back to UNCATEGORIZED.
func ParseBudgetCategory(s string) BudgetCategory { return budgetCategories.Normalize(s) }
