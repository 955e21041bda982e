package appointment

// Problems patients can pick when booking. Free text is also accepted.
var Problems = []string{
	"Fever", "Cold & Cough", "Chest Pain", "Skin Rash",
	"Headache", "Stomach Pain", "Joint Pain", "Vision Problem",
	"Toothache", "Ear Pain", "Diabetes Checkup", "Heart Checkup",
	"Allergy", "High Blood Pressure", "Back Pain",
}

var specialistMap = map[string]string{
	"Fever":               "General Physician",
	"Cold & Cough":        "General Physician",
	"Chest Pain":          "Cardiologist",
	"Skin Rash":           "Dermatologist",
	"Headache":            "Neurologist",
	"Stomach Pain":        "Gastroenterologist",
	"Joint Pain":          "Orthopedic",
	"Vision Problem":      "Ophthalmologist",
	"Toothache":           "Dentist",
	"Ear Pain":            "ENT Specialist",
	"Diabetes Checkup":    "Endocrinologist",
	"Heart Checkup":       "Cardiologist",
	"Allergy":             "Allergist",
	"High Blood Pressure": "Cardiologist",
	"Back Pain":           "Orthopedic",
}

// SuggestSpecialist maps a problem to the specialist a patient should see.
// Unrecognized problems fall back to a general physician.
func SuggestSpecialist(problem string) string {
	if s, ok := specialistMap[problem]; ok {
		return s
	}
	return "General Physician"
}
