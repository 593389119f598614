package knowledge

// manufacturers is the set of recognised pharmaceutical manufacturers for
// the South African market, uppercased.
var manufacturers = map[string]struct{}{
	"ASPEN PHARMACARE":     {},
	"ADCOCK INGRAM":        {},
	"SANDOZ":               {},
	"CIPLA":                {},
	"MYLAN":                {},
	"PHARMA DYNAMICS":      {},
	"AUSTELL":              {},
	"DR REDDYS":            {},
	"RANBAXY":              {},
	"NOVARTIS":             {},
	"PFIZER":               {},
	"SANOFI":               {},
	"GLAXOSMITHKLINE":      {},
	"ASTRAZENECA":          {},
	"MSD":                  {},
	"BOEHRINGER INGELHEIM": {},
	"ELI LILLY":            {},
	"NOVO NORDISK":         {},
	"ABBOTT":               {},
	"BAYER":                {},
	"ROCHE":                {},
	"SERVIER":              {},
	"TAKEDA":               {},
	"SUN PHARMA":           {},
	"ZYDUS":                {},
	"FRESENIUS KABI":       {},
	"BIOTECH LABORATORIES": {},
}

// KnownManufacturer reports whether the name is on the recognised
// manufacturer list. Matching is exact on the uppercased, trimmed name.
func KnownManufacturer(name string) bool {
	_, ok := manufacturers[normaliseKey(name)]
	return ok
}
