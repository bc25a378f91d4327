package core

import "strings"

// View names one embeddable text projection of a profile. Each view maps
// 1:1 to its own vector collection in the index, and also determines which
// facets of a profile are shown to the judge during classification.
type View string

const (
	// ViewProfessional projects the business-facing facets of a profile.
	ViewProfessional View = "professional"
	// ViewPersonal projects the personal facets of a profile.
	ViewPersonal View = "personal"
)

// Views enumerates every view in indexing order.
func Views() []View {
	return []View{ViewProfessional, ViewPersonal}
}

// Valid reports whether v is a known view.
func (v View) Valid() bool {
	return v == ViewProfessional || v == ViewPersonal
}

// ProjectionText builds the single embeddable text for this view of a
// profile. Facets are never mixed across views: the professional view sees
// only business-facing fields, the personal view only personal ones.
func (v View) ProjectionText(p *Profile) string {
	switch v {
	case ViewProfessional:
		return professionalText(p)
	case ViewPersonal:
		return personalText(p)
	default:
		return ""
	}
}

func professionalText(p *Profile) string {
	parts := []string{"Name: " + p.Name}

	if p.Business != "" {
		parts = append(parts, "Business: "+p.Business)
	}
	if p.Expertise != "" {
		parts = append(parts, "Expertise: "+p.Expertise)
	}

	// Phone numbers and email addresses carry no semantic signal; only
	// company and site handles are worth embedding.
	if companies := companyContacts(p.Contacts); len(companies) > 0 {
		parts = append(parts, "Related companies: "+strings.Join(companies, ", "))
	}

	return strings.Join(parts, " ")
}

func personalText(p *Profile) string {
	parts := []string{p.Name}
	parts = append(parts, p.Hobbies...)
	if p.FamilyStatus != "" {
		parts = append(parts, p.FamilyStatus)
	}
	return strings.Join(parts, " ")
}

// companyContacts filters a contact list down to company and site handles.
func companyContacts(contacts []string) []string {
	var companies []string
	for _, c := range contacts {
		if strings.HasPrefix(c, "+") || strings.Contains(c, "@") {
			continue
		}
		companies = append(companies, c)
	}
	return companies
}
