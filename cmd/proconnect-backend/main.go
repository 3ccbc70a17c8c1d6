package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vgayam/proconnect-backend/internal"
	"github.com/vgayam/proconnect-backend/internal/adapters/rest"
	"github.com/vgayam/proconnect-backend/internal/core/domain"
)

const (
	flagEnv     = "env"
	flagTimeout = "timeout"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "proconnect-backend",
		Short:        "Search and ranking service for service professionals",
		SilenceUsage: true,
	}
	root.PersistentFlags().String(flagEnv, "", "Path to .env file (default: ./.env if present)")
	root.PersistentFlags().Duration(flagTimeout, 30*time.Second, "Timeout for a one-shot search")

	root.AddCommand(newServeCmd(), newSearchCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			application, err := newApp(c)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			return application.Run()
		},
	}
}

func newSearchCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "search [query]",
		Short: "Run one search and print the JSON result",
		Long: `Run one search against the configured storage backend and print the result
in the same JSON shape as GET /api/professionals.

The query may be given as the positional argument or with --q.
"plumber in Indiranagar" is interpreted the same way as over HTTP.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSearch,
	}
	c.Flags().String("q", "", "Free-text query")
	c.Flags().String("city", "", "City (fuzzy match)")
	c.Flags().String("state", "", "State (exact, case-insensitive)")
	c.Flags().String("country", "", "Country (exact, case-insensitive)")
	c.Flags().String("area", "", "Service area (fuzzy match)")
	c.Flags().String("category", "", "Category")
	c.Flags().StringSlice("subcategories", nil, "Subcategory names, comma-separated")
	c.Flags().String("location", "", "Alias for --city, used when --city is empty")
	c.Flags().StringSlice("categories", nil, "Categories, comma-separated (only the first one filters); wins over --category")
	c.Flags().StringSlice("skills", nil, "Deprecated alias for --subcategories")
	c.Flags().Bool("remote", false, "Only remote (or, with =false, only on-site) professionals")
	c.Flags().Bool("available", false, "Only available (or, with =false, only unavailable) professionals")
	c.Flags().Int("page", 0, "Zero-based page number")
	c.Flags().Int("page-size", domain.DefaultPageSize, "Page size")
	return c
}

func runSearch(c *cobra.Command, args []string) error {
	raw := domain.RawSearchCriteria{}
	raw.Query, _ = c.Flags().GetString("q")
	if len(args) > 0 {
		raw.Query = args[0]
	}
	raw.City, _ = c.Flags().GetString("city")
	raw.State, _ = c.Flags().GetString("state")
	raw.Country, _ = c.Flags().GetString("country")
	raw.Area, _ = c.Flags().GetString("area")
	raw.Category, _ = c.Flags().GetString("category")
	raw.Subcategories, _ = c.Flags().GetStringSlice("subcategories")
	raw.Location, _ = c.Flags().GetString("location")
	raw.Categories, _ = c.Flags().GetStringSlice("categories")
	raw.Skills, _ = c.Flags().GetStringSlice("skills")
	raw.Page, _ = c.Flags().GetInt("page")
	raw.PageSize, _ = c.Flags().GetInt("page-size")
	raw.Remote = optionalBool(c, "remote")
	raw.Available = optionalBool(c, "available")

	application, err := newApp(c)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	defer application.Close()

	timeout, _ := c.Flags().GetDuration(flagTimeout)
	ctx, cancel := context.WithTimeout(c.Context(), timeout)
	defer cancel()

	result, err := application.Search(ctx, raw)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	enc := json.NewEncoder(c.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(rest.ToSearchResultResponse(result))
}

// optionalBool - флаг без явного значения не фильтрует
func optionalBool(c *cobra.Command, name string) *bool {
	if !c.Flags().Changed(name) {
		return nil
	}
	v, _ := c.Flags().GetBool(name)
	return &v
}

func newApp(c *cobra.Command) (*internal.App, error) {
	envPath, _ := c.Flags().GetString(flagEnv)
	return internal.NewApp(envPath)
}
