package knowledge

// ICD10Entry describes a diagnosis code.
type ICD10Entry struct {
	Description string
	Category    string
}

// icd10Codes maps base codes (letter plus two digits) to their description
// and chapter category. Decimal suffixes are dropped before lookup.
var icd10Codes = map[string]ICD10Entry{
	"A15": {"Respiratory tuberculosis", "Infectious diseases"},
	"B20": {"Human immunodeficiency virus disease", "Infectious diseases"},
	"C50": {"Malignant neoplasm of breast", "Neoplasms"},
	"C61": {"Malignant neoplasm of prostate", "Neoplasms"},
	"D50": {"Iron deficiency anaemia", "Blood disorders"},
	"D64": {"Anaemia, unspecified", "Blood disorders"},
	"E03": {"Hypothyroidism", "Endocrine and metabolic"},
	"E05": {"Thyrotoxicosis", "Endocrine and metabolic"},
	"E10": {"Type 1 diabetes mellitus", "Endocrine and metabolic"},
	"E11": {"Type 2 diabetes mellitus", "Endocrine and metabolic"},
	"E66": {"Obesity", "Endocrine and metabolic"},
	"E78": {"Disorders of lipoprotein metabolism", "Endocrine and metabolic"},
	"F20": {"Schizophrenia", "Mental and behavioural"},
	"F31": {"Bipolar affective disorder", "Mental and behavioural"},
	"F32": {"Depressive episode", "Mental and behavioural"},
	"F33": {"Recurrent depressive disorder", "Mental and behavioural"},
	"F41": {"Anxiety disorders", "Mental and behavioural"},
	"F90": {"Hyperkinetic disorders", "Mental and behavioural"},
	"G40": {"Epilepsy", "Nervous system"},
	"G43": {"Migraine", "Nervous system"},
	"H40": {"Glaucoma", "Eye and adnexa"},
	"I10": {"Essential (primary) hypertension", "Circulatory system"},
	"I20": {"Angina pectoris", "Circulatory system"},
	"I21": {"Acute myocardial infarction", "Circulatory system"},
	"I25": {"Chronic ischaemic heart disease", "Circulatory system"},
	"I48": {"Atrial fibrillation and flutter", "Circulatory system"},
	"I50": {"Heart failure", "Circulatory system"},
	"I63": {"Cerebral infarction", "Circulatory system"},
	"J44": {"Chronic obstructive pulmonary disease", "Respiratory system"},
	"J45": {"Asthma", "Respiratory system"},
	"K21": {"Gastro-oesophageal reflux disease", "Digestive system"},
	"K25": {"Gastric ulcer", "Digestive system"},
	"L40": {"Psoriasis", "Skin and subcutaneous tissue"},
	"M06": {"Rheumatoid arthritis", "Musculoskeletal system"},
	"M19": {"Osteoarthritis", "Musculoskeletal system"},
	"M81": {"Osteoporosis without pathological fracture", "Musculoskeletal system"},
	"N18": {"Chronic kidney disease", "Genitourinary system"},
	"N40": {"Benign prostatic hyperplasia", "Genitourinary system"},
	"R51": {"Headache", "Symptoms and signs"},
}

// ICD10Lookup resolves a base diagnosis code to its description and
// category.
func ICD10Lookup(code string) (ICD10Entry, bool) {
	e, ok := icd10Codes[normaliseKey(code)]
	return e, ok
}
