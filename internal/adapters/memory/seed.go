package memory

import (
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

// Seed - содержимое YAML-файла с тестовыми данными для STORAGE_BACKEND=memory.
type Seed struct {
	Subcategories []seedSubcategory  `yaml:"subcategories"`
	Professionals []seedProfessional `yaml:"professionals"`
}

type seedSubcategory struct {
	ID       int64  `yaml:"id"`
	Name     string `yaml:"name"`
	Category string `yaml:"category"`
}

type seedProfessional struct {
	ID            int64    `yaml:"id"`
	Slug          string   `yaml:"slug"`
	FirstName     string   `yaml:"firstName"`
	LastName      string   `yaml:"lastName"`
	DisplayName   string   `yaml:"displayName"`
	Headline      string   `yaml:"headline"`
	Bio           string   `yaml:"bio"`
	AvatarURL     string   `yaml:"avatarUrl"`
	Category      string   `yaml:"category"`
	City          string   `yaml:"city"`
	State         string   `yaml:"state"`
	Country       string   `yaml:"country"`
	Remote        bool     `yaml:"remote"`
	Available     *bool    `yaml:"available"`
	Verified      bool     `yaml:"verified"`
	Rating        *float64 `yaml:"rating"`
	ReviewCount   int      `yaml:"reviewCount"`
	HourlyRateMin *float64 `yaml:"hourlyRateMin"`
	HourlyRateMax *float64 `yaml:"hourlyRateMax"`
	Currency      string   `yaml:"currency"`
	Subcategories []string `yaml:"subcategories"`
	ServiceAreas  []string `yaml:"serviceAreas"`

	CoverImageURL string           `yaml:"coverImageUrl"`
	Email         string           `yaml:"email"`
	Phone         string           `yaml:"phone"`
	WhatsApp      string           `yaml:"whatsapp"`
	Services      []seedService    `yaml:"services"`
	SocialLinks   []seedSocialLink `yaml:"socialLinks"`
}

type seedService struct {
	ID          int64    `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	PriceMin    *float64 `yaml:"priceMin"`
	PriceMax    *float64 `yaml:"priceMax"`
	Currency    string   `yaml:"currency"`
	PriceUnit   string   `yaml:"priceUnit"`
	Duration    string   `yaml:"duration"`
}

type seedSocialLink struct {
	ID       int64  `yaml:"id"`
	Platform string `yaml:"platform"`
	URL      string `yaml:"url"`
	Label    string `yaml:"label"`
}

// LoadSeedFile читает seed-файл и собирает из него Store.
func LoadSeedFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed file %s: %w", path, err)
	}
	defer f.Close()

	store, err := LoadSeed(f)
	if err != nil {
		return nil, fmt.Errorf("seed file %s: %w", path, err)
	}
	return store, nil
}

// LoadSeed декодирует YAML и проверяет ссылки специалистов на подкатегории.
func LoadSeed(r io.Reader) (*Store, error) {
	var seed Seed
	if err := yaml.NewDecoder(r).Decode(&seed); err != nil {
		return nil, fmt.Errorf("failed to decode seed: %w", err)
	}
	return seed.Build()
}

func (s Seed) Build() (*Store, error) {
	subcategories := make([]domain.Subcategory, 0, len(s.Subcategories))
	byName := make(map[string]domain.Subcategory, len(s.Subcategories))
	for _, sc := range s.Subcategories {
		sub := domain.Subcategory{ID: sc.ID, Name: sc.Name, Category: sc.Category}
		subcategories = append(subcategories, sub)
		byName[sc.Name] = sub
	}

	seenIDs := make(map[int64]struct{}, len(s.Professionals))
	professionals := make([]domain.Professional, 0, len(s.Professionals))
	for _, sp := range s.Professionals {
		if _, dup := seenIDs[sp.ID]; dup {
			return nil, fmt.Errorf("duplicate professional id %d", sp.ID)
		}
		seenIDs[sp.ID] = struct{}{}

		p := domain.Professional{
			ID:            sp.ID,
			Slug:          sp.Slug,
			FirstName:     sp.FirstName,
			LastName:      sp.LastName,
			DisplayName:   sp.DisplayName,
			Headline:      sp.Headline,
			Bio:           sp.Bio,
			AvatarURL:     sp.AvatarURL,
			Category:      sp.Category,
			City:          sp.City,
			State:         sp.State,
			Country:       sp.Country,
			Remote:        sp.Remote,
			IsAvailable:   sp.Available == nil || *sp.Available,
			IsVerified:    sp.Verified,
			Rating:        nullDecimal(sp.Rating),
			ReviewCount:   sp.ReviewCount,
			HourlyRateMin: nullDecimal(sp.HourlyRateMin),
			HourlyRateMax: nullDecimal(sp.HourlyRateMax),
			Currency:      sp.Currency,
			ServiceAreas:  append([]string(nil), sp.ServiceAreas...),
			CoverImageURL: sp.CoverImageURL,
			Contact:       domain.ContactInfo{Email: sp.Email, Phone: sp.Phone, WhatsApp: sp.WhatsApp},
		}

		for _, ss := range sp.Services {
			if ss.Title == "" {
				return nil, fmt.Errorf("professional %d has a service without title", sp.ID)
			}
			p.Services = append(p.Services, domain.ServiceOffering{
				ID:          ss.ID,
				Title:       ss.Title,
				Description: ss.Description,
				PriceMin:    nullDecimal(ss.PriceMin),
				PriceMax:    nullDecimal(ss.PriceMax),
				Currency:    ss.Currency,
				PriceUnit:   ss.PriceUnit,
				Duration:    ss.Duration,
			})
		}
		for _, sl := range sp.SocialLinks {
			if sl.Platform == "" || sl.URL == "" {
				return nil, fmt.Errorf("professional %d has a social link without platform or url", sp.ID)
			}
			p.SocialLinks = append(p.SocialLinks, domain.SocialLink{ID: sl.ID, Platform: sl.Platform, URL: sl.URL, Label: sl.Label})
		}

		for _, name := range sp.Subcategories {
			sub, ok := byName[name]
			if !ok {
				return nil, fmt.Errorf("professional %d references unknown subcategory %q", sp.ID, name)
			}
			p.Subcategories = append(p.Subcategories, sub)
		}
		sort.Slice(p.Subcategories, func(i, j int) bool {
			return p.Subcategories[i].Name < p.Subcategories[j].Name
		})

		professionals = append(professionals, p)
	}

	return NewStore(professionals, subcategories), nil
}

func nullDecimal(v *float64) decimal.NullDecimal {
	if v == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(decimal.NewFromFloat(*v))
}
