package catalog

import "github.com/darideveloper/cotiza/pkg/domain"

// Default returns the built-in production catalog. Name fields are i18n
// codes resolved by the content layer, not display strings.
func Default() *Registry {
	r, err := New(defaultFeatures, defaultSections, defaultFeatureCategories, defaultSectionCategories)
	if err != nil {
		// The built-in tables are constants; a failure here is a
		// programming error.
		panic(err)
	}
	return r
}

var defaultFeatures = []domain.Feature{
	{ID: "domain", Name: "domain", Icon: "globe", Category: "basic", USDPrice: 25},
	{ID: "hosting", Name: "hosting", Icon: "server", Category: "basic", USDPrice: 10},
	{ID: "contact", Name: "contact", Icon: "mail", Category: "basic", USDPrice: 15},
	{ID: "whatsapp", Name: "whatsapp", Icon: "message-circle", Category: "basic", USDPrice: 15},
	{ID: "email", Name: "email", Icon: "at-sign", Category: "basic", USDPrice: 15},

	{ID: "blog", Name: "blog", Icon: "book", Category: "content", USDPrice: 25},
	{ID: "sections", Name: "sections", Icon: "layers", Category: "content", USDPrice: 20},
	{ID: "social", Name: "social", Icon: "share", Category: "content", USDPrice: 30},
	{ID: "newsletter", Name: "newsletter", Icon: "newspaper", Category: "content", USDPrice: 15},

	{ID: "ecommerce", Name: "ecommerce", Icon: "shopping-cart", Category: "advanced", USDPrice: 120},
	{ID: "reservations", Name: "reservations", Icon: "calendar", Category: "advanced", USDPrice: 35},
	{ID: "payments", Name: "payments", Icon: "credit-card", Category: "advanced", USDPrice: 35},

	{ID: "multilang", Name: "multilang", Icon: "globe-2", Category: "services", USDPrice: 5, PerSection: true},
	{ID: "backups", Name: "backups", Icon: "save", Category: "services", USDPrice: 5},
}

var defaultFeatureCategories = []domain.FeatureCategory{
	{ID: "basic", Title: "quote.steps.basic", Features: []string{"domain", "hosting", "contact", "whatsapp", "email"}},
	{ID: "content", Title: "quote.steps.content", Features: []string{"blog", "sections", "social", "newsletter"}},
	{ID: "advanced", Title: "quote.steps.advanced", Features: []string{"ecommerce", "reservations", "payments"}},
	{ID: "services", Title: "quote.steps.services", Features: []string{"multilang", "backups"}},
}

var defaultSections = []domain.Section{
	{ID: "header", Name: "Header", Icon: "home", Category: "core", Required: true},
	{ID: "footer", Name: "Footer", Icon: "home", Category: "core", Required: true},

	{ID: "hero", Name: "Hero Section", Icon: "checkCircle", Category: "content"},
	{ID: "about", Name: "About Us", Icon: "person", Category: "content"},
	{ID: "services", Name: "Services", Icon: "checkCircle", Category: "content"},
	{ID: "portfolio", Name: "Portfolio", Icon: "gallery", Category: "content"},
	{ID: "gallery", Name: "Gallery", Icon: "gallery", Category: "content"},
	{ID: "testimonials", Name: "Testimonials", Icon: "quote", Category: "content"},
	{ID: "team", Name: "Our Team", Icon: "person", Category: "content"},
	{ID: "pricing", Name: "Pricing", Icon: "quote", Category: "content"},
	{ID: "features", Name: "Features", Icon: "checkCircle", Category: "content"},
	{ID: "stats", Name: "Statistics", Icon: "grid", Category: "content"},
	{ID: "faq", Name: "FAQ", Icon: "helpCircle", Category: "content"},
	{ID: "blog", Name: "Blog", Icon: "book", Category: "content"},
	{ID: "news", Name: "News", Icon: "book", Category: "content"},

	{ID: "contact", Name: "Contact Form", Icon: "email", Category: "contact"},
	{ID: "location", Name: "Location", Icon: "globe", Category: "contact"},
	{ID: "social", Name: "Social Media", Icon: "openLink", Category: "contact"},
	{ID: "whatsapp", Name: "WhatsApp Button", Icon: "whatsapp", Category: "contact"},
}

var defaultSectionCategories = []domain.SectionCategory{
	{ID: "core", Name: "Core Sections", Sections: []string{"header", "footer"}},
	{ID: "content", Name: "Content Sections", Sections: []string{
		"hero", "about", "services", "portfolio", "gallery", "testimonials",
		"team", "pricing", "features", "stats", "faq", "blog", "news",
	}},
	{ID: "contact", Name: "Contact Sections", Sections: []string{"contact", "location", "social", "whatsapp"}},
}
