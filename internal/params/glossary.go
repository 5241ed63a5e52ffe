package params

const genericMeaning = "This parameter measures important health indicators."

// explanations maps parameter-name fragments to plain-language meanings.
// It is a slice, not a map, because lookup is first-match-wins over a fixed
// scan order; with a map the winning entry would vary between runs.
var explanations = []struct {
	key     string
	meaning string
}{
	{"haemoglobin", "Hemoglobin carries oxygen in your blood. Low levels can cause fatigue and weakness."},
	{"hemoglobin", "Hemoglobin carries oxygen in your blood. Low levels can cause fatigue and weakness."},
	{"hgb", "Hemoglobin carries oxygen in your blood. Low levels can cause fatigue and weakness."},
	{"rbc", "Red blood cells carry oxygen throughout your body. Low count indicates anemia."},
	{"red blood cell", "Red blood cells carry oxygen throughout your body. Low count indicates anemia."},
	{"haematocrit", "Hematocrit shows the percentage of red blood cells in your blood. Low values indicate anemia."},
	{"hematocrit", "Hematocrit shows the percentage of red blood cells in your blood. Low values indicate anemia."},
	{"hct", "Hematocrit shows the percentage of red blood cells in your blood. Low values indicate anemia."},
	{"pcv", "Packed cell volume (hematocrit) shows red blood cell percentage. Low values indicate anemia."},
	{"mcv", "Mean corpuscular volume measures average red blood cell size. Normal values indicate healthy cells."},
	{"mch", "Mean corpuscular hemoglobin measures average hemoglobin per red blood cell."},
	{"mchc", "Mean corpuscular hemoglobin concentration measures hemoglobin density in red blood cells."},
	{"rdw", "Red cell distribution width measures variation in red blood cell size. High values indicate size variation."},
	{"wbc", "White blood cells fight infections. High count may indicate infection or inflammation."},
	{"white blood cell", "White blood cells fight infections. High count may indicate infection or inflammation."},
	{"neutrophil", "Neutrophils fight bacterial infections. High levels suggest active bacterial infection."},
	{"lymphocyte", "Lymphocytes fight viral infections and produce antibodies. Low levels may indicate immune issues."},
	{"eosinophil", "Eosinophils fight parasites and allergic reactions. Low levels are usually normal."},
	{"monocyte", "Monocytes help fight infections and remove dead cells. Normal levels indicate healthy immune function."},
	{"basophil", "Basophils are involved in allergic reactions. Normal levels are very low."},
	{"platelet", "Platelets help blood clotting. Normal levels prevent excessive bleeding."},
	{"mpv", "Mean platelet volume measures average platelet size. Normal values indicate healthy platelets."},
}
