package interaction

// pairRule is one drug-drug interaction. Drug names are generic; pair order
// is not significant for matching but is preserved in findings.
type pairRule struct {
	DrugA          string
	DrugB          string
	Severity       Severity
	Description    string
	Recommendation string
}

// conditionRule flags a drug against a patient condition.
type conditionRule struct {
	Drug           string
	Condition      string
	Severity       Severity
	Description    string
	Recommendation string
}

var interactionRules = []pairRule{
	{
		DrugA: "Warfarin", DrugB: "Aspirin", Severity: SeverityHigh,
		Description:    "Combined anticoagulant and antiplatelet effect markedly increases bleeding risk",
		Recommendation: "Avoid combination where possible; if co-prescribed, monitor INR closely and watch for signs of bleeding",
	},
	{
		DrugA: "Warfarin", DrugB: "Ibuprofen", Severity: SeverityHigh,
		Description:    "NSAID use with warfarin increases risk of gastrointestinal bleeding",
		Recommendation: "Prefer paracetamol for analgesia; monitor INR if NSAID is unavoidable",
	},
	{
		DrugA: "Warfarin", DrugB: "Fluconazole", Severity: SeverityHigh,
		Description:    "Fluconazole inhibits warfarin metabolism and can raise INR sharply",
		Recommendation: "Reduce warfarin dose and recheck INR within 3 to 5 days",
	},
	{
		DrugA: "Warfarin", DrugB: "Ciprofloxacin", Severity: SeverityModerate,
		Description:    "Ciprofloxacin may potentiate warfarin anticoagulation",
		Recommendation: "Monitor INR during and after the antibiotic course",
	},
	{
		DrugA: "Aspirin", DrugB: "Ibuprofen", Severity: SeverityModerate,
		Description:    "Ibuprofen can blunt the antiplatelet effect of low-dose aspirin",
		Recommendation: "Take aspirin at least 30 minutes before ibuprofen, or use an alternative analgesic",
	},
	{
		DrugA: "Methotrexate", DrugB: "Trimethoprim/sulfamethoxazole", Severity: SeverityContraindicated,
		Description:    "Both drugs are folate antagonists; combined use can cause severe myelosuppression",
		Recommendation: "Do not co-prescribe; choose a non-sulfonamide antibiotic",
	},
	{
		DrugA: "Lisinopril", DrugB: "Spironolactone", Severity: SeverityHigh,
		Description:    "ACE inhibitor with potassium-sparing diuretic risks hyperkalaemia",
		Recommendation: "Check serum potassium within one week of starting the combination",
	},
	{
		DrugA: "Enalapril", DrugB: "Spironolactone", Severity: SeverityHigh,
		Description:    "ACE inhibitor with potassium-sparing diuretic risks hyperkalaemia",
		Recommendation: "Check serum potassium within one week of starting the combination",
	},
	{
		DrugA: "Digoxin", DrugB: "Furosemide", Severity: SeverityModerate,
		Description:    "Diuretic-induced hypokalaemia predisposes to digoxin toxicity",
		Recommendation: "Monitor potassium and digoxin levels; consider potassium supplementation",
	},
	{
		DrugA: "Digoxin", DrugB: "Amiodarone", Severity: SeverityHigh,
		Description:    "Amiodarone raises digoxin levels and can precipitate toxicity",
		Recommendation: "Halve the digoxin dose when starting amiodarone and monitor levels",
	},
	{
		DrugA: "Simvastatin", DrugB: "Amiodarone", Severity: SeverityHigh,
		Description:    "Amiodarone inhibits simvastatin metabolism, raising myopathy risk",
		Recommendation: "Limit simvastatin to 20mg daily or switch to a non-interacting statin",
	},
	{
		DrugA: "Simvastatin", DrugB: "Clarithromycin", Severity: SeverityContraindicated,
		Description:    "Strong CYP3A4 inhibition greatly increases risk of rhabdomyolysis",
		Recommendation: "Suspend the statin for the duration of the antibiotic course",
	},
	{
		DrugA: "Atorvastatin", DrugB: "Clarithromycin", Severity: SeverityHigh,
		Description:    "CYP3A4 inhibition raises atorvastatin exposure and myopathy risk",
		Recommendation: "Suspend or reduce the statin during the antibiotic course",
	},
	{
		DrugA: "Sertraline", DrugB: "Tramadol", Severity: SeverityHigh,
		Description:    "SSRI with tramadol increases risk of serotonin syndrome and seizures",
		Recommendation: "Use the lowest effective tramadol dose and watch for agitation, tremor or fever",
	},
	{
		DrugA: "Fluoxetine", DrugB: "Tramadol", Severity: SeverityHigh,
		Description:    "SSRI with tramadol increases risk of serotonin syndrome and seizures",
		Recommendation: "Use the lowest effective tramadol dose and watch for agitation, tremor or fever",
	},
	{
		DrugA: "Alprazolam", DrugB: "Tramadol", Severity: SeverityHigh,
		Description:    "Combined central nervous system depression with risk of respiratory depression",
		Recommendation: "Avoid the combination; if unavoidable, use minimum doses and counsel on sedation",
	},
	{
		DrugA: "Sildenafil", DrugB: "Isosorbide mononitrate", Severity: SeverityContraindicated,
		Description:    "Nitrates with phosphodiesterase inhibitors cause profound hypotension",
		Recommendation: "Do not co-prescribe under any circumstances",
	},
	{
		DrugA: "Clopidogrel", DrugB: "Omeprazole", Severity: SeverityModerate,
		Description:    "Omeprazole reduces activation of clopidogrel and may blunt its effect",
		Recommendation: "Prefer pantoprazole when acid suppression is required",
	},
	{
		DrugA: "Ciprofloxacin", DrugB: "Theophylline", Severity: SeverityHigh,
		Description:    "Ciprofloxacin inhibits theophylline clearance, risking toxicity",
		Recommendation: "Reduce theophylline dose and monitor levels during the course",
	},
	{
		DrugA: "Insulin glargine", DrugB: "Atenolol", Severity: SeverityModerate,
		Description:    "Beta-blockers can mask the warning signs of hypoglycaemia",
		Recommendation: "Advise the patient on non-adrenergic hypoglycaemia symptoms; monitor glucose",
	},
	{
		DrugA: "Metformin", DrugB: "Hydrochlorothiazide", Severity: SeverityLow,
		Description:    "Thiazides can raise blood glucose and weaken glycaemic control",
		Recommendation: "Review glycaemic control after starting the diuretic",
	},
	{
		DrugA: "Amlodipine", DrugB: "Simvastatin", Severity: SeverityModerate,
		Description:    "Amlodipine raises simvastatin exposure",
		Recommendation: "Limit simvastatin to 20mg daily with amlodipine",
	},
}

var contraindicationRules = []conditionRule{
	{
		Drug: "Aspirin", Condition: "peptic ulcer", Severity: SeverityContraindicated,
		Description:    "Aspirin can precipitate bleeding from an active peptic ulcer",
		Recommendation: "Use paracetamol for analgesia; review antiplatelet need with gastroprotection",
	},
	{
		Drug: "Ibuprofen", Condition: "peptic ulcer", Severity: SeverityHigh,
		Description:    "NSAIDs aggravate peptic ulcer disease and risk bleeding",
		Recommendation: "Avoid NSAIDs; if essential, co-prescribe a proton pump inhibitor",
	},
	{
		Drug: "Ibuprofen", Condition: "chronic kidney disease", Severity: SeverityHigh,
		Description:    "NSAIDs reduce renal perfusion and can worsen kidney function",
		Recommendation: "Avoid NSAIDs in renal impairment; use paracetamol",
	},
	{
		Drug: "Metformin", Condition: "chronic kidney disease", Severity: SeverityContraindicated,
		Description:    "Metformin accumulates in renal impairment with risk of lactic acidosis",
		Recommendation: "Stop metformin in severe renal impairment; switch glucose-lowering therapy",
	},
	{
		Drug: "Metformin", Condition: "heart failure", Severity: SeverityModerate,
		Description:    "Decompensated heart failure raises the risk of lactic acidosis on metformin",
		Recommendation: "Review metformin during acute decompensation",
	},
	{
		Drug: "Atenolol", Condition: "asthma", Severity: SeverityContraindicated,
		Description:    "Beta-blockade can provoke severe bronchospasm in asthma",
		Recommendation: "Use a cardioselective alternative only under specialist guidance",
	},
	{
		Drug: "Propranolol", Condition: "asthma", Severity: SeverityContraindicated,
		Description:    "Non-selective beta-blockade can provoke severe bronchospasm in asthma",
		Recommendation: "Do not prescribe; select a different antihypertensive class",
	},
	{
		Drug: "Warfarin", Condition: "pregnancy", Severity: SeverityContraindicated,
		Description:    "Warfarin is teratogenic, particularly in the first trimester",
		Recommendation: "Switch to low molecular weight heparin under specialist care",
	},
	{
		Drug: "Atorvastatin", Condition: "pregnancy", Severity: SeverityContraindicated,
		Description:    "Statins are contraindicated in pregnancy",
		Recommendation: "Stop the statin; resume after delivery and breastfeeding",
	},
	{
		Drug: "Atorvastatin", Condition: "liver disease", Severity: SeverityHigh,
		Description:    "Active liver disease increases risk of statin hepatotoxicity",
		Recommendation: "Check liver function before and after starting therapy",
	},
	{
		Drug: "Tramadol", Condition: "epilepsy", Severity: SeverityHigh,
		Description:    "Tramadol lowers the seizure threshold",
		Recommendation: "Prefer a non-tramadol analgesic in seizure disorders",
	},
	{
		Drug: "Prednisone", Condition: "diabetes", Severity: SeverityModerate,
		Description:    "Corticosteroids raise blood glucose and can destabilise diabetic control",
		Recommendation: "Intensify glucose monitoring for the duration of steroid therapy",
	},
	{
		Drug: "Hydrochlorothiazide", Condition: "gout", Severity: SeverityModerate,
		Description:    "Thiazides reduce urate excretion and can trigger gout flares",
		Recommendation: "Consider an alternative antihypertensive or add urate-lowering therapy",
	},
}
