package roster

import "protocol-tracker/internal/domain"

var protocolsMain1 = []domain.Protocol{
	"DARKNESS", "FIRE", "PSYCHIC", "DEATH", "GRAVITY",
	"WATER", "LIFE", "PLAGUE", "LIGHT", "SPEED",
	"SPIRIT", "METAL",
}

var protocolsAux1 = []domain.Protocol{
	"HATE", "LOVE", "APATHY",
}

const (
	SetV1    = "V1"
	SetV1Aux = "V1_AUX"
)

// Sets are cumulative: each newer set is the previous one plus its additions.
var Sets = map[string][]domain.Protocol{
	SetV1:    protocolsMain1,
	SetV1Aux: concat(protocolsMain1, protocolsAux1),
}

// Latest is the newest set and therefore the full protocol universe.
const Latest = SetV1Aux

func All() []domain.Protocol {
	return Sets[Latest]
}

var abbr = map[domain.Protocol]string{
	"DARKNESS": "DAR",
	"FIRE":     "FIR",
	"HATE":     "HAT",
	"PSYCHIC":  "PSY",
	"DEATH":    "DEA",
	"GRAVITY":  "GRA",
	"WATER":    "WAT",
	"LIFE":     "LIF",
	"LOVE":     "LOV",
	"PLAGUE":   "PLA",
	"LIGHT":    "LIG",
	"SPEED":    "SPE",
	"SPIRIT":   "SPI",
	"APATHY":   "APA",
	"METAL":    "MET",
}

// Abbr returns the display abbreviation, falling back to the first three letters.
func Abbr(p domain.Protocol) string {
	if a, ok := abbr[p]; ok {
		return a
	}
	if len(p) <= 3 {
		return string(p)
	}
	return string(p[:3])
}

const RatioV1 = "V1"

var WeightSets = map[string]domain.WeightTable{
	RatioV1: {
		"DARKNESS": 5,
		"FIRE":     5,
		"HATE":     5,
		"PSYCHIC":  5,
		"DEATH":    3,
		"GRAVITY":  3,
		"WATER":    3,
		"LIFE":     2,
		"LOVE":     2,
		"PLAGUE":   2,
		"LIGHT":    1,
		"SPEED":    1,
		"SPIRIT":   1,
		"APATHY":   0,
		"METAL":    0,
	},
}

func concat(sets ...[]domain.Protocol) []domain.Protocol {
	var out []domain.Protocol
	for _, s := range sets {
		out = append(out, s...)
	}
	return out
}
