package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Listing is one configured marketplace storefront variant. Each deployed
// service instance serves exactly one listing; its display name and product
// code are read-only constants for the registration pipeline.
type Listing struct {
	Key         string `mapstructure:"-"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	ProductCode string `mapstructure:"productCode"`
	Path        string `mapstructure:"path"`
	Enabled     bool   `mapstructure:"enabled"`
}

var (
	ErrListingNotFound = errors.New("listing_not_found")
	ErrListingDisabled = errors.New("listing_disabled")
)

// LoadListing resolves the active listing. When a catalog file is configured
// it must contain the listing selected by LISTING_PATH; otherwise the listing
// is assembled from the LISTING_NAME / PRODUCT_CODE environment values.
func LoadListing(cfg Config) (Listing, error) {
	if cfg.ListingsFile == "" {
		if cfg.ListingName == "" || cfg.DefaultProductCode == "" {
			return Listing{}, errors.New("listing configuration is required: set LISTINGS_FILE or LISTING_NAME and PRODUCT_CODE")
		}
		return Listing{
			Key:         cfg.ListingPath,
			Name:        cfg.ListingName,
			ProductCode: cfg.DefaultProductCode,
			Path:        cfg.ListingPath,
			Enabled:     true,
		}, nil
	}

	v := viper.New()
	v.SetConfigFile(cfg.ListingsFile)
	if err := v.ReadInConfig(); err != nil {
		return Listing{}, fmt.Errorf("read listings file: %w", err)
	}

	var catalog map[string]Listing
	if err := v.UnmarshalKey("marketplaceListings", &catalog); err != nil {
		return Listing{}, fmt.Errorf("decode listings file: %w", err)
	}

	target := strings.TrimSpace(cfg.ListingPath)
	for key, listing := range catalog {
		listing.Key = key
		if listing.Path != target && key != target {
			continue
		}
		if !listing.Enabled {
			return Listing{}, ErrListingDisabled
		}
		if listing.ProductCode == "" {
			listing.ProductCode = cfg.DefaultProductCode
		}
		return listing, nil
	}

	return Listing{}, ErrListingNotFound
}
