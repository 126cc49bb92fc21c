package service

// positionLabels maps the provider's shareholder position codes to the
// Persian labels exposed to consumers. Codes outside this table pass
// through unchanged so new upstream codes degrade visibly, not silently.
var positionLabels = map[string]string{
	"Chairman":       "رئیس هیئت مدیره",
	"Ceo":            "مدیرعامل",
	"Member":         "عضو هیئت مدیره",
	"DeputyChairman": "نایب رئیس هیئت مدیره",
}

// TranslatePosition returns the Persian label for a position code, or the
// code itself when it is not in the table.
func TranslatePosition(code string) string {
	if label, ok := positionLabels[code]; ok {
		return label
	}
	return code
}
