package rest

import (
	"github.com/shopspring/decimal"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

// SearchResultResponse - ответ поиска. Имена полей в camelCase, как ждет фронтенд.
type SearchResultResponse struct {
	Results    []ProfessionalResponse `json:"results"`
	Page       int                    `json:"page"`
	PageSize   int                    `json:"pageSize"`
	Total      int64                  `json:"total"`
	TotalPages int                    `json:"totalPages"`
	Query      *string                `json:"query"`
	Location   *string                `json:"location"`

	CategoryFacets []FacetResponse `json:"categoryFacets"`
	CityFacets     []FacetResponse `json:"cityFacets"`
	AreaFacets     []FacetResponse `json:"areaFacets"`
}

type FacetResponse struct {
	Label string `json:"label"`
	Count int64  `json:"count"`
}

type FacetsResponse struct {
	CategoryFacets []FacetResponse `json:"categoryFacets"`
	CityFacets     []FacetResponse `json:"cityFacets"`
	AreaFacets     []FacetResponse `json:"areaFacets"`
}

type LocationResponse struct {
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	Remote  bool   `json:"remote"`
}

type ProfessionalResponse struct {
	ID            int64                 `json:"id"`
	Slug          string                `json:"slug"`
	FirstName     string                `json:"firstName"`
	LastName      string                `json:"lastName"`
	DisplayName   string                `json:"displayName"`
	Headline      string                `json:"headline"`
	Bio           string                `json:"bio"`
	AvatarURL     string                `json:"avatarUrl,omitempty"`
	Location      LocationResponse      `json:"location"`
	IsVerified    bool                  `json:"isVerified"`
	IsAvailable   bool                  `json:"isAvailable"`
	Rating        *float64              `json:"rating"`
	ReviewCount   int                   `json:"reviewCount"`
	HourlyRateMin *float64              `json:"hourlyRateMin,omitempty"`
	HourlyRateMax *float64              `json:"hourlyRateMax,omitempty"`
	Currency      string                `json:"currency,omitempty"`
	Category      string                `json:"category"`
	Subcategories []SubcategoryResponse `json:"subcategories"`
	ServiceAreas  []string              `json:"serviceAreas"`
}

// ProfessionalDetailResponse - полная карточка для /api/professionals/{id} и /slug/{slug}.
type ProfessionalDetailResponse struct {
	ProfessionalResponse
	CoverImageURL string               `json:"coverImageUrl,omitempty"`
	Email         string               `json:"email,omitempty"`
	Phone         string               `json:"phone,omitempty"`
	WhatsApp      string               `json:"whatsapp,omitempty"`
	Services      []ServiceResponse    `json:"services"`
	SocialLinks   []SocialLinkResponse `json:"socialLinks"`
}

type ServiceResponse struct {
	ID          int64    `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	PriceMin    *float64 `json:"priceMin"`
	PriceMax    *float64 `json:"priceMax"`
	Currency    string   `json:"currency,omitempty"`
	PriceUnit   string   `json:"priceUnit,omitempty"`
	Duration    string   `json:"duration,omitempty"`
}

type SocialLinkResponse struct {
	ID       int64  `json:"id"`
	Platform string `json:"platform"`
	URL      string `json:"url"`
	Label    string `json:"label,omitempty"`
}

type SubcategoryResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ToSearchResultResponse - JSON-представление результата поиска, общее для HTTP и CLI.
func ToSearchResultResponse(result *domain.SearchResult) SearchResultResponse {
	response := SearchResultResponse{
		Results:        make([]ProfessionalResponse, len(result.Professionals)),
		Page:           result.Page,
		PageSize:       result.PageSize,
		Total:          result.Total,
		TotalPages:     result.TotalPages,
		Query:          result.Query,
		Location:       result.Location,
		CategoryFacets: toFacetResponses(result.CategoryFacets),
		CityFacets:     toFacetResponses(result.CityFacets),
		AreaFacets:     toFacetResponses(result.AreaFacets),
	}
	for i, p := range result.Professionals {
		response.Results[i] = toProfessionalResponse(p)
	}
	return response
}

func toFacetsResponse(facets *domain.Facets) FacetsResponse {
	return FacetsResponse{
		CategoryFacets: toFacetResponses(facets.Categories),
		CityFacets:     toFacetResponses(facets.Cities),
		AreaFacets:     toFacetResponses(facets.Areas),
	}
}

func toFacetResponses(facets []domain.FacetCount) []FacetResponse {
	response := make([]FacetResponse, len(facets))
	for i, f := range facets {
		response[i] = FacetResponse{Label: f.Label, Count: f.Count}
	}
	return response
}

func toProfessionalResponse(p domain.Professional) ProfessionalResponse {
	serviceAreas := p.ServiceAreas
	if serviceAreas == nil {
		serviceAreas = []string{}
	}
	return ProfessionalResponse{
		ID:          p.ID,
		Slug:        p.Slug,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		DisplayName: p.Name(),
		Headline:    p.Headline,
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
		Location: LocationResponse{
			City:    p.City,
			State:   p.State,
			Country: p.Country,
			Remote:  p.Remote,
		},
		IsVerified:    p.IsVerified,
		IsAvailable:   p.IsAvailable,
		Rating:        decimalToFloat(p.Rating),
		ReviewCount:   p.ReviewCount,
		HourlyRateMin: decimalToFloat(p.HourlyRateMin),
		HourlyRateMax: decimalToFloat(p.HourlyRateMax),
		Currency:      p.Currency,
		Category:      p.Category,
		Subcategories: toSubcategoryResponses(p.Subcategories),
		ServiceAreas:  serviceAreas,
	}
}

func toProfessionalDetailResponse(p domain.Professional) ProfessionalDetailResponse {
	services := make([]ServiceResponse, len(p.Services))
	for i, s := range p.Services {
		services[i] = ServiceResponse{
			ID:          s.ID,
			Title:       s.Title,
			Description: s.Description,
			PriceMin:    decimalToFloat(s.PriceMin),
			PriceMax:    decimalToFloat(s.PriceMax),
			Currency:    s.Currency,
			PriceUnit:   s.PriceUnit,
			Duration:    s.Duration,
		}
	}
	links := make([]SocialLinkResponse, len(p.SocialLinks))
	for i, l := range p.SocialLinks {
		links[i] = SocialLinkResponse{ID: l.ID, Platform: l.Platform, URL: l.URL, Label: l.Label}
	}
	return ProfessionalDetailResponse{
		ProfessionalResponse: toProfessionalResponse(p),
		CoverImageURL:        p.CoverImageURL,
		Email:                p.Contact.Email,
		Phone:                p.Contact.Phone,
		WhatsApp:             p.Contact.WhatsApp,
		Services:             services,
		SocialLinks:          links,
	}
}

func toSubcategoryResponses(items []domain.Subcategory) []SubcategoryResponse {
	response := make([]SubcategoryResponse, len(items))
	for i, s := range items {
		response[i] = SubcategoryResponse{ID: s.ID, Name: s.Name, Category: s.Category}
	}
	return response
}

// decimalToFloat - для JSON рейтинг и ставки отдаются числом, NULL - как null
func decimalToFloat(d decimal.NullDecimal) *float64 {
	if !d.Valid {
		return nil
	}
	f := d.Decimal.InexactFloat64()
	return &f
}
