package registry

// AllergyConditionID is the condition that unlocks the allergy sub-options.
const AllergyConditionID = "food_allergies"

// Default returns the built-in condition registry. The data is static
// reference material: loaded once at startup, never mutated.
func Default() *Registry {
	r, err := New(defaultConditions, defaultAllergies)
	if err != nil {
		// The built-in data is validated by tests; a failure here is a
		// programming error, not a runtime condition.
		panic(err)
	}
	return r
}

var defaultConditions = []ConditionDef{
	{
		ID:               "diabetes",
		Label:            "Diabetes",
		ShortLabel:       "Diabetes",
		Description:      "Type 1 or Type 2 diabetes",
		Category:         CategoryHighImpact,
		HasFamilyHistory: true,
		LabFields: []LabFieldDef{
			{Key: "hba1c", Label: "HbA1c", Unit: "%", NormalRange: "4.0–5.6", Min: 3, Max: 20, Step: 0.1, Placeholder: "5.6"},
			{Key: "fasting_glucose", Label: "Fasting Glucose", Unit: "mg/dL", NormalRange: "70–99", Min: 40, Max: 500, Step: 1, Placeholder: "95"},
		},
	},
	{
		ID:               "prediabetes",
		Label:            "Prediabetes",
		ShortLabel:       "Prediabetes",
		Description:      "Borderline blood sugar levels",
		Category:         CategoryHighImpact,
		HasFamilyHistory: true,
	},
	{
		ID:               "hypertension",
		Label:            "High Blood Pressure",
		ShortLabel:       "BP",
		Description:      "Hypertension, high BP",
		Category:         CategoryHighImpact,
		HasFamilyHistory: true,
		LabFields: []LabFieldDef{
			{Key: "bp_systolic", Label: "Systolic BP", Unit: "mmHg", NormalRange: "90–120", Min: 60, Max: 250, Step: 1, Placeholder: "120"},
			{Key: "bp_diastolic", Label: "Diastolic BP", Unit: "mmHg", NormalRange: "60–80", Min: 40, Max: 150, Step: 1, Placeholder: "80"},
		},
	},
	{
		ID:               "high_cholesterol",
		Label:            "High Cholesterol",
		ShortLabel:       "Cholesterol",
		Description:      "Elevated LDL or triglycerides",
		Category:         CategoryHighImpact,
		HasFamilyHistory: true,
		LabFields: []LabFieldDef{
			{Key: "ldl", Label: "LDL Cholesterol", Unit: "mg/dL", NormalRange: "< 100", Min: 20, Max: 400, Step: 1, Placeholder: "100"},
			{Key: "hdl", Label: "HDL Cholesterol", Unit: "mg/dL", NormalRange: "> 40", Min: 10, Max: 150, Step: 1, Placeholder: "50"},
			{Key: "triglycerides", Label: "Triglycerides", Unit: "mg/dL", NormalRange: "< 150", Min: 30, Max: 1000, Step: 1, Placeholder: "140"},
		},
	},
	{
		ID:               "fatty_liver",
		Label:            "Fatty Liver",
		ShortLabel:       "Fatty Liver",
		Description:      "Non-alcoholic fatty liver disease",
		Category:         CategoryHighImpact,
		HasFamilyHistory: false,
	},
	{
		ID:               "kidney_disease",
		Label:            "Kidney Disease",
		ShortLabel:       "Kidney",
		Description:      "Chronic kidney disease, reduced kidney function",
		Category:         CategoryHighImpact,
		HasFamilyHistory: true,
		LabFields: []LabFieldDef{
			{Key: "creatinine", Label: "Creatinine", Unit: "mg/dL", NormalRange: "0.7–1.3", Min: 0.2, Max: 15, Step: 0.1, Placeholder: "1.0"},
		},
	},
	{
		ID:               "heart_disease",
		Label:            "Heart Disease",
		ShortLabel:       "Heart",
		Description:      "Coronary artery disease, prior cardiac events",
		Category:         CategoryHighImpact,
		MinAge:           18,
		HasFamilyHistory: true,
	},
	{
		ID:               "thyroid",
		Label:            "Thyroid Disorder",
		ShortLabel:       "Thyroid",
		Description:      "Hypothyroid or hyperthyroid",
		Category:         CategoryMediumImpact,
		HasFamilyHistory: true,
		LabFields: []LabFieldDef{
			{Key: "tsh", Label: "TSH", Unit: "mIU/L", NormalRange: "0.4–4.0", Min: 0.01, Max: 100, Step: 0.01, Placeholder: "2.5"},
		},
	},
	{
		ID:               "pcos",
		Label:            "PCOS / PCOD",
		ShortLabel:       "PCOS",
		Description:      "Polycystic ovary syndrome",
		Category:         CategoryMediumImpact,
		GenderFilter:     []Gender{GenderFemale},
		HasFamilyHistory: true,
	},
	{
		ID:               "gout",
		Label:            "Gout",
		ShortLabel:       "Gout",
		Description:      "High uric acid, joint inflammation",
		Category:         CategoryMediumImpact,
		HasFamilyHistory: true,
		LabFields: []LabFieldDef{
			{Key: "uric_acid", Label: "Uric Acid", Unit: "mg/dL", NormalRange: "3.5–7.2", Min: 1, Max: 20, Step: 0.1, Placeholder: "6.0"},
		},
	},
	{
		ID:               "acidity",
		Label:            "Acidity / GERD",
		ShortLabel:       "Acidity",
		Description:      "Acid reflux, heartburn",
		Category:         CategoryMediumImpact,
		HasFamilyHistory: false,
	},
	{
		ID:               "ibs",
		Label:            "IBS",
		ShortLabel:       "IBS",
		Description:      "Irritable bowel syndrome, sensitive gut",
		Category:         CategoryMediumImpact,
		HasFamilyHistory: false,
	},
	{
		ID:               "lactose_intolerance",
		Label:            "Lactose Intolerance",
		ShortLabel:       "Lactose",
		Description:      "Trouble digesting milk products",
		Category:         CategoryMediumImpact,
		HasFamilyHistory: false,
	},
	{
		ID:               AllergyConditionID,
		Label:            "Food Allergies",
		ShortLabel:       "Allergies",
		Description:      "Allergic reactions to specific foods",
		Category:         CategoryMediumImpact,
		HasFamilyHistory: false,
	},
}

var defaultAllergies = []AllergyOption{
	{ID: "peanuts", Label: "Peanuts"},
	{ID: "tree_nuts", Label: "Tree Nuts"},
	{ID: "dairy", Label: "Dairy"},
	{ID: "eggs", Label: "Eggs"},
	{ID: "gluten", Label: "Gluten"},
	{ID: "soy", Label: "Soy"},
	{ID: "shellfish", Label: "Shellfish"},
	{ID: "fish", Label: "Fish"},
	{ID: "sesame", Label: "Sesame"},
	{ID: "mustard", Label: "Mustard"},
}
