package member

import "github.com/iota-uz/camp-sdk/pkg/transform"

type Gender string

const (
	GenderUnspecified Gender = "UNSPECIFIED"
	GenderFemale      Gender = "FEMALE"
	GenderMale        Gender = "MALE"
	GenderNonBinary   Gender = "NON_BINARY"
	GenderOther       Gender = "OTHER"
)

type HousingType string

const (
	HousingNone      HousingType = "NONE"
	HousingTent      HousingType = "TENT"
	HousingShiftpod  HousingType = "SHIFTPOD"
	HousingHexayurt  HousingType = "HEXAYURT"
	HousingYurt      HousingType = "YURT"
	HousingRV        HousingType = "RV"
	HousingVehicle   HousingType = "VEHICLE"
	HousingStructure HousingType = "STRUCTURE"
	HousingOther     HousingType = "OTHER"
)

type GridTier string

const (
	GridNone GridTier = "NONE"
	Grid15A  GridTier = "15A"
	Grid30A  GridTier = "30A"
	Grid50A  GridTier = "50A"
)

type EnrollmentStatus string

const (
	StatusPending    EnrollmentStatus = "PENDING"
	StatusConfirmed  EnrollmentStatus = "CONFIRMED"
	StatusWaitlisted EnrollmentStatus = "WAITLISTED"
	StatusCancelled  EnrollmentStatus = "CANCELLED"
)

type PreApproval string

const (
	PreApprovalNone     PreApproval = "NONE"
	PreApprovalPending  PreApproval = "PENDING"
	PreApprovalApproved PreApproval = "APPROVED"
	PreApprovalDenied   PreApproval = "DENIED"
)

var genders = transform.NewVocabulary("gender", GenderOther,
	map[string]Gender{
		"":                  GenderUnspecified,
		"prefer not to say": GenderUnspecified,
		"f":                 GenderFemale,
		"w":                 GenderFemale,
		"m":                 GenderMale,
		"nb":                GenderNonBinary,
		"enby":              GenderNonBinary,
	},
	transform.Rule[Gender]{Match: transform.Contains("non-bin", "nonbin", "non bin", "genderqueer", "fluid", "they"), Result: GenderNonBinary},
	transform.Rule[Gender]{Match: transform.Contains("female", "woman", "women", "girl"), Result: GenderFemale},
	transform.Rule[Gender]{Match: transform.Word("male", "man", "men", "guy", "boy"), Result: GenderMale},
)

var housingTypes = transform.NewVocabulary("housing type", HousingOther,
	map[string]HousingType{
		"":     HousingNone,
		"none": HousingNone,
		"n/a":  HousingNone,
		"-":    HousingNone,
	},
	transform.Rule[HousingType]{Match: transform.Contains("shiftpod", "shift pod"), Result: HousingShiftpod},
	transform.Rule[HousingType]{Match: transform.Contains("hexa"), Result: HousingHexayurt},
	transform.Rule[HousingType]{Match: transform.Contains("yurt"), Result: HousingYurt},
	transform.Rule[HousingType]{Match: transform.Contains("camper", "trailer", "motorhome", "motor home", "airstream"), Result: HousingRV},
	transform.Rule[HousingType]{Match: transform.Word("rv"), Result: HousingRV},
	transform.Rule[HousingType]{Match: transform.Contains("tent"), Result: HousingTent},
	transform.Rule[HousingType]{Match: transform.Word("car", "van", "truck", "vehicle", "suv"), Result: HousingVehicle},
	transform.Rule[HousingType]{Match: transform.Contains("dome", "structure", "container", "shade"), Result: HousingStructure},
)

var gridTiers = transform.NewVocabulary("grid power", GridNone,
	map[string]GridTier{
		"yes": Grid15A,
		"y":   Grid15A,
	},
	transform.Rule[GridTier]{Match: transform.HasPrefix("no", "n/a"), Result: GridNone},
	transform.Rule[GridTier]{Match: transform.Contains("50"), Result: Grid50A},
	transform.Rule[GridTier]{Match: transform.Contains("30"), Result: Grid30A},
	transform.Rule[GridTier]{Match: transform.Contains("15", "20", "basic", "small", "low"), Result: Grid15A},
)

var enrollmentStatuses = transform.NewVocabulary("enrollment status", StatusPending,
	map[string]EnrollmentStatus{
		"yes":  StatusConfirmed,
		"y":    StatusConfirmed,
		"x":    StatusConfirmed,
		"✓":    StatusConfirmed,
		"✔":    StatusConfirmed,
		"true": StatusConfirmed,
	},
	transform.Rule[EnrollmentStatus]{Match: transform.Contains("cancel", "drop", "withdr", "not coming"), Result: StatusCancelled},
	transform.Rule[EnrollmentStatus]{Match: transform.Contains("wait"), Result: StatusWaitlisted},
	transform.Rule[EnrollmentStatus]{Match: transform.Contains("confirm", "yes", "paid"), Result: StatusConfirmed},
)

var preApprovals = transform.NewVocabulary("pre-approval", PreApprovalNone,
	map[string]PreApproval{
		"yes": PreApprovalApproved,
		"y":   PreApprovalApproved,
		"ok":  PreApprovalApproved,
	},
	transform.Rule[PreApproval]{Match: transform.Contains("not approved", "unapproved", "denied", "declin", "reject"), Result: PreApprovalDenied},
	transform.Rule[PreApproval]{Match: transform.Contains("pend", "wait", "review", "applied", "submitted"), Result: PreApprovalPending},
	transform.Rule[PreApproval]{Match: transform.Contains("approv"), Result: PreApprovalApproved},
)

// ParseGender maps free text; an empty cell is UNSPECIFIED, unrecognized text
// OTHER.
func ParseGender(s string) Gender { return genders.Normalize(s) }

func ParseHousingType(s string) HousingType { return housingTypes.Normalize(s) }

func ParseGridTier(s string) GridTier { return gridTiers.Normalize(s) }

func ParseEnrollmentStatus(s string) EnrollmentStatus { return enrollmentStatuses.Normalize(s) }

func ParsePreApproval(s string) PreApproval { return preApprovals.Normalize(s) }
