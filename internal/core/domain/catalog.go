package domain

import "errors"

// Plan is a pricing tier of a catalog service.
type Plan string

const (
	PlanBasic    Plan = "Basic"
	PlanStandard Plan = "Standard"
	PlanPremium  Plan = "Premium"
)

var (
	ErrUnknownService = errors.New("unknown service")
	ErrUnknownPlan    = errors.New("unknown plan")
)

type PlanOffer struct {
	Tier        Plan   `json:"tier"`
	Price       Money  `json:"price"`
	Description string `json:"description"`
}

type Service struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Category    string      `json:"category"`
	Description string      `json:"description"`
	Plans       []PlanOffer `json:"plans"`
}

// Catalog is the fixed list of purchasable services. Prices always come from
// here, never from the client.
type Catalog []Service

// Lookup resolves a service and plan pair.
func (c Catalog) Lookup(serviceID int, plan Plan) (Service, PlanOffer, error) {
	for _, s := range c {
		if s.ID != serviceID {
			continue
		}
		for _, p := range s.Plans {
			if p.Tier == plan {
				return s, p, nil
			}
		}
		return Service{}, PlanOffer{}, ErrUnknownPlan
	}
	return Service{}, PlanOffer{}, ErrUnknownService
}

func DefaultCatalog() Catalog {
	return Catalog{
		{
			ID:          1,
			Name:        "SEO Optimization",
			Category:    "Marketing",
			Description: "Comprehensive SEO strategy to improve your search rankings",
			Plans: []PlanOffer{
				{Tier: PlanBasic, Price: Dollars(299), Description: "Basic keyword research and on-page optimization"},
				{Tier: PlanStandard, Price: Dollars(599), Description: "Keyword research, on-page, technical SEO, and link building"},
				{Tier: PlanPremium, Price: Dollars(1199), Description: "Full service including monthly reporting and strategy adjustments"},
			},
		},
		{
			ID:          2,
			Name:        "Content Writing",
			Category:    "Content",
			Description: "Professional blog posts, articles, and web content creation",
			Plans: []PlanOffer{
				{Tier: PlanBasic, Price: Dollars(149), Description: "5 blog posts (500 words each)"},
				{Tier: PlanStandard, Price: Dollars(349), Description: "10 blog posts (1000 words each) + keyword research"},
				{Tier: PlanPremium, Price: Dollars(699), Description: "20 blog posts + keyword research + monthly strategy"},
			},
		},
		{
			ID:          3,
			Name:        "Social Media Management",
			Category:    "Social",
			Description: "Post scheduling, content creation, and community management",
			Plans: []PlanOffer{
				{Tier: PlanBasic, Price: Dollars(199), Description: "Posting to 2 social media platforms (4 posts per week)"},
				{Tier: PlanStandard, Price: Dollars(399), Description: "Posting to 4 platforms + basic analytics (8 posts per week)"},
				{Tier: PlanPremium, Price: Dollars(799), Description: "All platforms + full analytics + community engagement (daily)"},
			},
		},
		{
			ID:          4,
			Name:        "Web Design",
			Category:    "Design",
			Description: "Custom website design and development",
			Plans: []PlanOffer{
				{Tier: PlanBasic, Price: Dollars(999), Description: "5-page static website"},
				{Tier: PlanStandard, Price: Dollars(1999), Description: "10-page website with CMS integration"},
				{Tier: PlanPremium, Price: Dollars(3999), Description: "Custom e-commerce solution with full functionality"},
			},
		},
	}
}
