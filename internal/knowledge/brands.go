package knowledge

// Entry is a single brand-to-generic mapping.
type Entry struct {
	Generic  string
	Category string
}

// Medication categories used across the knowledge base.
const (
	CategoryInsulin          = "insulin"
	CategoryDiabetes         = "diabetes"
	CategoryCardiovascular   = "cardiovascular"
	CategoryAnalgesic        = "analgesic"
	CategoryAntibiotic       = "antibiotic"
	CategoryPsychiatric      = "psychiatric"
	CategoryRespiratory      = "respiratory"
	CategoryGastrointestinal = "gastrointestinal"
	CategoryEndocrine        = "endocrine"
)

// brandGenerics maps uppercased brand names to their generic equivalents.
// The South African trade names (Panado, Xanor, Ridaq, Purbac, ...) matter
// here; imported brands are included where they circulate locally.
var brandGenerics = map[string]Entry{
	// Insulins
	"LANTUS":     {"Insulin glargine", CategoryInsulin},
	"BASAGLAR":   {"Insulin glargine", CategoryInsulin},
	"TOUJEO":     {"Insulin glargine", CategoryInsulin},
	"LEVEMIR":    {"Insulin detemir", CategoryInsulin},
	"TRESIBA":    {"Insulin degludec", CategoryInsulin},
	"NOVORAPID":  {"Insulin aspart", CategoryInsulin},
	"FIASP":      {"Insulin aspart", CategoryInsulin},
	"HUMALOG":    {"Insulin lispro", CategoryInsulin},
	"APIDRA":     {"Insulin glulisine", CategoryInsulin},
	"ACTRAPID":   {"Human insulin", CategoryInsulin},
	"HUMULIN":    {"Human insulin", CategoryInsulin},
	"PROTAPHANE": {"Isophane insulin", CategoryInsulin},
	"MIXTARD":    {"Biphasic human insulin", CategoryInsulin},
	"NOVOMIX":    {"Biphasic insulin aspart", CategoryInsulin},
	"RYZODEG":    {"Insulin degludec/insulin aspart", CategoryInsulin},

	// Oral diabetes agents
	"GLUCOPHAGE": {"Metformin", CategoryDiabetes},
	"GLUCOVANCE": {"Metformin/glibenclamide", CategoryDiabetes},
	"DIAMICRON":  {"Gliclazide", CategoryDiabetes},
	"AMARYL":     {"Glimepiride", CategoryDiabetes},
	"DAONIL":     {"Glibenclamide", CategoryDiabetes},
	"JANUVIA":    {"Sitagliptin", CategoryDiabetes},
	"GALVUS":     {"Vildagliptin", CategoryDiabetes},
	"ONGLYZA":    {"Saxagliptin", CategoryDiabetes},
	"FORXIGA":    {"Dapagliflozin", CategoryDiabetes},
	"JARDIANCE":  {"Empagliflozin", CategoryDiabetes},
	"VICTOZA":    {"Liraglutide", CategoryDiabetes},
	"OZEMPIC":    {"Semaglutide", CategoryDiabetes},
	"TRULICITY":  {"Dulaglutide", CategoryDiabetes},
	"ACTOS":      {"Pioglitazone", CategoryDiabetes},

	// Cardiovascular
	"PLAVIX":    {"Clopidogrel", CategoryCardiovascular},
	"ECOTRIN":   {"Aspirin", CategoryCardiovascular},
	"XARELTO":   {"Rivaroxaban", CategoryCardiovascular},
	"ELIQUIS":   {"Apixaban", CategoryCardiovascular},
	"PRADAXA":   {"Dabigatran", CategoryCardiovascular},
	"COUMADIN":  {"Warfarin", CategoryCardiovascular},
	"LANOXIN":   {"Digoxin", CategoryCardiovascular},
	"TENORMIN":  {"Atenolol", CategoryCardiovascular},
	"CARLOC":    {"Carvedilol", CategoryCardiovascular},
	"INDERAL":   {"Propranolol", CategoryCardiovascular},
	"COZAAR":    {"Losartan", CategoryCardiovascular},
	"ATACAND":   {"Candesartan", CategoryCardiovascular},
	"DIOVAN":    {"Valsartan", CategoryCardiovascular},
	"MICARDIS":  {"Telmisartan", CategoryCardiovascular},
	"TRITACE":   {"Ramipril", CategoryCardiovascular},
	"RENITEC":   {"Enalapril", CategoryCardiovascular},
	"CAPOTEN":   {"Captopril", CategoryCardiovascular},
	"COVERSYL":  {"Perindopril", CategoryCardiovascular},
	"ZESTRIL":   {"Lisinopril", CategoryCardiovascular},
	"NORVASC":   {"Amlodipine", CategoryCardiovascular},
	"AMLOC":     {"Amlodipine", CategoryCardiovascular},
	"ADALAT":    {"Nifedipine", CategoryCardiovascular},
	"ISOPTIN":   {"Verapamil", CategoryCardiovascular},
	"LASIX":     {"Furosemide", CategoryCardiovascular},
	"RIDAQ":     {"Hydrochlorothiazide", CategoryCardiovascular},
	"ALDACTONE": {"Spironolactone", CategoryCardiovascular},
	"LIPITOR":   {"Atorvastatin", CategoryCardiovascular},
	"CRESTOR":   {"Rosuvastatin", CategoryCardiovascular},
	"ZOCOR":     {"Simvastatin", CategoryCardiovascular},
	"LIPANTHYL": {"Fenofibrate", CategoryCardiovascular},

	// Analgesics and anti-inflammatories
	"PANADO":   {"Paracetamol", CategoryAnalgesic},
	"TYLENOL":  {"Paracetamol", CategoryAnalgesic},
	"DISPRIN":  {"Aspirin", CategoryAnalgesic},
	"MYPRODOL": {"Ibuprofen/paracetamol/codeine", CategoryAnalgesic},
	"NUROFEN":  {"Ibuprofen", CategoryAnalgesic},
	"BRUFEN":   {"Ibuprofen", CategoryAnalgesic},
	"VOLTAREN": {"Diclofenac", CategoryAnalgesic},
	"CATAFLAM": {"Diclofenac", CategoryAnalgesic},
	"CELEBREX": {"Celecoxib", CategoryAnalgesic},
	"ARCOXIA":  {"Etoricoxib", CategoryAnalgesic},
	"TRAMACET": {"Tramadol/paracetamol", CategoryAnalgesic},
	"TRAMAL":   {"Tramadol", CategoryAnalgesic},
	"STILPANE": {"Paracetamol/codeine", CategoryAnalgesic},
	"SYNDOL":   {"Paracetamol/codeine", CategoryAnalgesic},
	"MOBIC":    {"Meloxicam", CategoryAnalgesic},
	"NAPROSYN": {"Naproxen", CategoryAnalgesic},

	// Antibiotics
	"AUGMENTIN":  {"Amoxicillin/clavulanic acid", CategoryAntibiotic},
	"AMOXIL":     {"Amoxicillin", CategoryAntibiotic},
	"ZINNAT":     {"Cefuroxime", CategoryAntibiotic},
	"KLACID":     {"Clarithromycin", CategoryAntibiotic},
	"ZITHROMAX":  {"Azithromycin", CategoryAntibiotic},
	"CIPROBAY":   {"Ciprofloxacin", CategoryAntibiotic},
	"TAVANIC":    {"Levofloxacin", CategoryAntibiotic},
	"FLAGYL":     {"Metronidazole", CategoryAntibiotic},
	"BACTRIM":    {"Co-trimoxazole", CategoryAntibiotic},
	"PURBAC":     {"Co-trimoxazole", CategoryAntibiotic},
	"VIBRAMYCIN": {"Doxycycline", CategoryAntibiotic},
	"DOXYCYL":    {"Doxycycline", CategoryAntibiotic},
	"KEFLEX":     {"Cefalexin", CategoryAntibiotic},
	"ROCEPHIN":   {"Ceftriaxone", CategoryAntibiotic},

	// Psychiatric and neurological
	"PROZAC":     {"Fluoxetine", CategoryPsychiatric},
	"NUZAK":      {"Fluoxetine", CategoryPsychiatric},
	"ZOLOFT":     {"Sertraline", CategoryPsychiatric},
	"CIPRALEX":   {"Escitalopram", CategoryPsychiatric},
	"LEXAMIL":    {"Escitalopram", CategoryPsychiatric},
	"CILIFT":     {"Citalopram", CategoryPsychiatric},
	"EFFEXOR":    {"Venlafaxine", CategoryPsychiatric},
	"CYMBALTA":   {"Duloxetine", CategoryPsychiatric},
	"WELLBUTRIN": {"Bupropion", CategoryPsychiatric},
	"ZYBAN":      {"Bupropion", CategoryPsychiatric},
	"SEROQUEL":   {"Quetiapine", CategoryPsychiatric},
	"RISPERDAL":  {"Risperidone", CategoryPsychiatric},
	"ZYPREXA":    {"Olanzapine", CategoryPsychiatric},
	"ABILIFY":    {"Aripiprazole", CategoryPsychiatric},
	"EPILIM":     {"Sodium valproate", CategoryPsychiatric},
	"LAMICTIN":   {"Lamotrigine", CategoryPsychiatric},
	"TEGRETOL":   {"Carbamazepine", CategoryPsychiatric},
	"RIVOTRIL":   {"Clonazepam", CategoryPsychiatric},
	"URBANOL":    {"Clobazam", CategoryPsychiatric},
	"ATIVAN":     {"Lorazepam", CategoryPsychiatric},
	"XANOR":      {"Alprazolam", CategoryPsychiatric},
	"VALIUM":     {"Diazepam", CategoryPsychiatric},
	"STILNOX":    {"Zolpidem", CategoryPsychiatric},
	"DORMICUM":   {"Midazolam", CategoryPsychiatric},
	"CONCERTA":   {"Methylphenidate", CategoryPsychiatric},
	"RITALIN":    {"Methylphenidate", CategoryPsychiatric},

	// Respiratory
	"VENTOLIN":  {"Salbutamol", CategoryRespiratory},
	"ASTHAVENT": {"Salbutamol", CategoryRespiratory},
	"SYMBICORT": {"Budesonide/formoterol", CategoryRespiratory},
	"SERETIDE":  {"Fluticasone/salmeterol", CategoryRespiratory},
	"FLIXOTIDE": {"Fluticasone", CategoryRespiratory},
	"PULMICORT": {"Budesonide", CategoryRespiratory},
	"SINGULAIR": {"Montelukast", CategoryRespiratory},
	"ATROVENT":  {"Ipratropium", CategoryRespiratory},
	"SPIRIVA":   {"Tiotropium", CategoryRespiratory},

	// Gastrointestinal
	"NEXIUM":  {"Esomeprazole", CategoryGastrointestinal},
	"LOSEC":   {"Omeprazole", CategoryGastrointestinal},
	"ZANTAC":  {"Ranitidine", CategoryGastrointestinal},
	"PARIET":  {"Rabeprazole", CategoryGastrointestinal},
	"TOPZOLE": {"Pantoprazole", CategoryGastrointestinal},

	// Thyroid
	"ELTROXIN": {"Levothyroxine", CategoryEndocrine},
	"EUTHYROX": {"Levothyroxine", CategoryEndocrine},
}
