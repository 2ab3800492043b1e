// Package tenant defines the store tenant domain model: the unit of data
// partitioning for the whole system.
package tenant

import (
	"fmt"
	"regexp"
	"time"

	"github.com/shelfspace/shelfspace/internal/domain"
)

// Theme defaults applied to every new tenant.
const (
	DefaultPrimaryColor = "#8B5CF6"
	DefaultLogoURL      = "/assets/default-logo.svg"
)

// SharedStoreName is the single shared tenant that customer accounts are
// attached to at signup. Looked up by name, created once if absent.
const SharedStoreName = "Main Bookstore"

// Theme holds the storefront presentation fields an admin can customize.
type Theme struct {
	PrimaryColor string `json:"primaryColor"`
	LogoURL      string `json:"logoUrl"`
}

// Settings is the explicit whitelist of tenant feature flags. Fields not
// declared here are never stored, regardless of what a client submits.
type Settings struct {
	Enable3DModel bool `json:"enable3dModel"`
	EnableReviews bool `json:"enableReviews"`
}

// Tenant represents an isolated store/seller account.
type Tenant struct {
	ID        string    `json:"id"`
	StoreName string    `json:"storeName"`
	Slug      string    `json:"slug"`
	Theme     Theme     `json:"theme"`
	Settings  Settings  `json:"settings"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// New returns a Tenant with the derived slug and default theme and settings.
func New(storeName string) Tenant {
	return Tenant{
		StoreName: storeName,
		Slug:      Slugify(storeName),
		Theme: Theme{
			PrimaryColor: DefaultPrimaryColor,
			LogoURL:      DefaultLogoURL,
		},
		Settings: Settings{
			Enable3DModel: true,
			EnableReviews: false,
		},
	}
}

// SettingsPatch carries the recognized settings flags of an update request.
// Pointer fields distinguish "leave as is" from "set to false".
type SettingsPatch struct {
	Enable3DModel *bool `json:"enable3dModel,omitempty"`
	EnableReviews *bool `json:"enableReviews,omitempty"`
}

// UpdateRequest holds the fields an admin may change on their own tenant.
type UpdateRequest struct {
	StoreName    string         `json:"storeName,omitempty"`
	PrimaryColor string         `json:"primaryColor,omitempty"`
	LogoURL      string         `json:"logoUrl,omitempty"`
	Settings     *SettingsPatch `json:"settings,omitempty"`
}

// Validate checks the submitted fields. A store name that reduces to an
// empty slug is rejected because the storefront would become unreachable.
func (r *UpdateRequest) Validate() error {
	if r.StoreName != "" && Slugify(r.StoreName) == "" {
		return fmt.Errorf("storeName must contain letters or digits: %w", domain.ErrValidation)
	}
	if r.PrimaryColor != "" && !hexColor.MatchString(r.PrimaryColor) {
		return fmt.Errorf("primaryColor must be a #rrggbb hex color: %w", domain.ErrValidation)
	}
	return nil
}

var hexColor = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// PublicTheme is the theme projection exposed on public endpoints.
type PublicTheme struct {
	PrimaryColor string `json:"primaryColor"`
	LogoURL      string `json:"logoUrl"`
}

// Storefront is the reduced tenant projection returned by the public
// store-by-slug endpoint. It never exposes the full record.
type Storefront struct {
	StoreName string      `json:"storeName"`
	Slug      string      `json:"slug"`
	Theme     PublicTheme `json:"theme"`
	Settings  Settings    `json:"settings"`
}

// Listing is the minimal projection returned by the public store directory:
// name, slug and logo only.
type Listing struct {
	StoreName string `json:"storeName"`
	Slug      string `json:"slug"`
	Theme     struct {
		LogoURL string `json:"logoUrl"`
	} `json:"theme"`
}

// PublicView returns the reduced storefront projection of t.
func (t *Tenant) PublicView() Storefront {
	return Storefront{
		StoreName: t.StoreName,
		Slug:      t.Slug,
		Theme: PublicTheme{
			PrimaryColor: t.Theme.PrimaryColor,
			LogoURL:      t.Theme.LogoURL,
		},
		Settings: t.Settings,
	}
}

// ListingView returns the directory projection of t.
func (t *Tenant) ListingView() Listing {
	l := Listing{
		StoreName: t.StoreName,
		Slug:      t.Slug,
	}
	l.Theme.LogoURL = t.Theme.LogoURL
	return l
}
