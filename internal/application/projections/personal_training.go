package projections

import (
	domainTraining "gymportal/internal/domain/training"
)

// PackageView is a package with its display prices.
type PackageView struct {
	domainTraining.Package
	Price      string
	PerSession string
}

// PersonalTrainingResult carries the page content.
type PersonalTrainingResult struct {
	Content  *domainTraining.Content
	Packages []PackageView
}

// QueryPersonalTraining returns the content for lang with formatted package prices.
// PRE: source has content for the default language
// POST: Packages keep content order; featured packages are flagged, not reordered
func QueryPersonalTraining(source ContentSource, lang string) PersonalTrainingResult {
	c := source.For(lang)
	packages := make([]PackageView, 0, len(c.Packages))
	for _, p := range c.Packages {
		packages = append(packages, PackageView{
			Package:    p,
			Price:      domainTraining.FormatPrice(p.PriceCents, p.Currency),
			PerSession: domainTraining.FormatPrice(p.PerSessionCents(), p.Currency),
		})
	}
	return PersonalTrainingResult{Content: c, Packages: packages}
}
