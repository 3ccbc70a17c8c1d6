package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Professional - проекция профиля специалиста, с которой работает поиск.
type Professional struct {
	ID          int64
	Slug        string
	FirstName   string
	LastName    string
	DisplayName string
	Headline    string
	Bio         string
	AvatarURL   string
	Category    string

	City    string
	State   string
	Country string
	Remote  bool

	IsAvailable bool
	IsVerified  bool

	Rating        decimal.NullDecimal // NULL - специалист еще без оценок
	ReviewCount   int
	HourlyRateMin decimal.NullDecimal
	HourlyRateMax decimal.NullDecimal
	Currency      string

	Subcategories []Subcategory // отсортированы по имени
	ServiceAreas  []string

	// Поля полной карточки. Заполняются только при чтении одного профиля (по id или slug),
	// в результатах поиска пустые.
	CoverImageURL string
	Contact       ContactInfo
	Services      []ServiceOffering
	SocialLinks   []SocialLink
}

type ContactInfo struct {
	Email    string
	Phone    string
	WhatsApp string
}

// ServiceOffering - услуга из карточки специалиста с ценой "от-до".
type ServiceOffering struct {
	ID          int64
	Title       string
	Description string
	PriceMin    decimal.NullDecimal
	PriceMax    decimal.NullDecimal
	Currency    string
	PriceUnit   string // "hour", "visit", ...
	Duration    string
}

type SocialLink struct {
	ID       int64
	Platform string
	URL      string
	Label    string
}

// SearchProjection возвращает копию без полей полной карточки.
func (p Professional) SearchProjection() Professional {
	p.CoverImageURL = ""
	p.Contact = ContactInfo{}
	p.Services = nil
	p.SocialLinks = nil
	return p
}

// Name - имя для отображения: DisplayName, а если его нет - имя и фамилия.
func (p Professional) Name() string {
	if strings.TrimSpace(p.DisplayName) != "" {
		return p.DisplayName
	}
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

// SubcategoryNames возвращает имена подкатегорий в исходном порядке.
func (p Professional) SubcategoryNames() []string {
	names := make([]string, len(p.Subcategories))
	for i, s := range p.Subcategories {
		names[i] = s.Name
	}
	return names
}

// Subcategory - конечный тег услуги ("Drain Cleaning") внутри родительской категории ("Plumbing").
type Subcategory struct {
	ID       int64
	Name     string
	Category string
}
