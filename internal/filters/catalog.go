package filters

import "slices"

// Group is one top-level node of a two-level option taxonomy.
type Group struct {
	Label    string
	Children []string
}

// Industries is the industry -> sub-industry taxonomy offered for company_industry.
var Industries = []Group{
	{Label: "Technology", Children: []string{
		"Software Development", "IT Services", "Computer Hardware", "Telecommunications",
		"Internet Services", "Cloud Computing", "Cybersecurity", "Artificial Intelligence",
	}},
	{Label: "Healthcare", Children: []string{
		"Hospitals & Clinics", "Pharmaceuticals", "Medical Devices", "Biotechnology",
		"Health Insurance", "Healthcare IT", "Mental Health Services",
	}},
	{Label: "Finance", Children: []string{
		"Banking", "Investment Banking", "Insurance", "Asset Management",
		"Financial Technology", "Accounting", "Real Estate Finance",
	}},
	{Label: "Manufacturing", Children: []string{
		"Automotive", "Aerospace", "Electronics", "Textiles",
		"Food & Beverage", "Chemicals", "Machinery",
	}},
	{Label: "Retail", Children: []string{
		"E-commerce", "Supermarkets", "Fashion & Apparel", "Consumer Electronics",
		"Home & Garden", "Specialty Retail",
	}},
	{Label: "Education", Children: []string{
		"Higher Education", "K-12 Education", "EdTech", "Training & Development",
		"Online Learning", "Educational Publishing",
	}},
	{Label: "Energy", Children: []string{
		"Oil & Gas", "Renewable Energy", "Utilities", "Mining",
		"Power Generation", "Energy Services",
	}},
	{Label: "Media & Entertainment", Children: []string{
		"Broadcasting", "Film & Television", "Music", "Publishing",
		"Gaming", "Advertising", "Social Media",
	}},
}

// CompanySizeRanges are the options for company_size_range.
var CompanySizeRanges = []string{
	"0 - 1 (Self-employed)", "1 - 10", "2 - 10", "11 - 50",
	"51 - 200", "201 - 500", "501 - 1000", "1001 - 5000",
}

// EmailValidations are the options for email_validation.
var EmailValidations = []string{"Valid", "Invalid", "Accept all", "Catch all", "Risky", "Unknown"}

// SearchSourceTypes are the source_type choices in the contacts view.
var SearchSourceTypes = []string{"all", "seamless", "skrapp"}

// UploadSourceTypes are the source_type choices when importing a file.
var UploadSourceTypes = []string{"seamless", "skrapp"}

// Known reports whether v is an offered option of a catalogued list field.
// Job titles are free text and always known.
func Known(f Field, v string) bool {
	switch f {
	case CompanySizeRange:
		return slices.Contains(CompanySizeRanges, v)
	case EmailValidation:
		return slices.Contains(EmailValidations, v)
	case CompanyIndustry:
		for _, g := range Industries {
			if slices.Contains(g.Children, v) {
				return true
			}
		}
		return false
	}
	return true
}
