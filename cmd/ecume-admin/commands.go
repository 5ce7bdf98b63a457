package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/farah-rezgui/ecume-admin/internal/backoffice"
	"github.com/farah-rezgui/ecume-admin/internal/config"
	"github.com/farah-rezgui/ecume-admin/internal/discovery"
	"github.com/farah-rezgui/ecume-admin/internal/draft"
	"github.com/farah-rezgui/ecume-admin/internal/tui"
	"github.com/farah-rezgui/ecume-admin/internal/ui"
)

// Command flags
var (
	apiURL         string
	profileName    string
	timeoutSeconds int
	scanTimeout    int

	// products add flags
	addTitle       string
	addDescription string
	addPrice       float64
	addStock       int
	addImages      []string
	addYes         bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API base URL (overrides the active profile)")
	rootCmd.PersistentFlags().StringVar(&profileName, "profile", "", "Named API profile from the config file")
	rootCmd.PersistentFlags().IntVar(&timeoutSeconds, "timeout", 0, "Request timeout in seconds (0 = default)")

	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(productsCmd)
	rootCmd.AddCommand(usersCmd)
	rootCmd.AddCommand(clientsCmd)
	rootCmd.AddCommand(ordersCmd)
	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(profilesCmd)

	productsCmd.AddCommand(productsListCmd)
	productsCmd.AddCommand(productsAddCmd)
	ordersCmd.AddCommand(ordersListCmd)
	ordersCmd.AddCommand(ordersWatchCmd)
	profilesCmd.AddCommand(profilesListCmd)
	profilesCmd.AddCommand(profilesSetDefaultCmd)

	productsAddCmd.Flags().StringVar(&addTitle, "title", "", "Product title (required)")
	productsAddCmd.Flags().StringVar(&addDescription, "description", "", "Product description (required)")
	productsAddCmd.Flags().Float64Var(&addPrice, "price", 0, "Product price (required, > 0)")
	productsAddCmd.Flags().IntVar(&addStock, "stock", 1, "Stock quantity (>= 1)")
	productsAddCmd.Flags().StringSliceVar(&addImages, "image", nil, "Image file to attach (repeatable; JPEG, PNG, or GIF)")
	productsAddCmd.Flags().BoolVar(&addYes, "yes", false, "Skip the confirmation prompt")

	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 5, "Scan timeout in seconds")
}

// resolveClient builds the API client for a command: --api wins, then the
// ECUME_API_URL environment variable (a local .env is loaded at startup),
// then the named or default profile from the config registry.
func resolveClient() (*backoffice.Client, string, error) {
	if apiURL != "" {
		client := backoffice.NewClient(apiURL)
		applyTimeout(client, 0)
		return client, "", nil
	}

	if envURL := os.Getenv("ECUME_API_URL"); envURL != "" {
		client := backoffice.NewClient(envURL)
		applyTimeout(client, 0)
		return client, "", nil
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, "", fmt.Errorf("failed to load config: %w", err)
	}

	profile := registry.ActiveProfile(profileName)
	if profile == nil {
		return nil, "", fmt.Errorf("no API profile configured; pass --api or create one with 'ecume-admin profiles'")
	}

	client := backoffice.NewClient(profile.BaseURL)
	applyTimeout(client, profile.TimeoutSeconds)

	name := profileName
	if name == "" && registry.Preferences != nil {
		name = registry.Preferences.DefaultProfile
	}
	registry.TouchProfile(name)
	_ = registry.Save()

	return client, name, nil
}

// applyTimeout applies the --timeout flag, or the profile's timeout
func applyTimeout(client *backoffice.Client, profileSeconds int) {
	switch {
	case timeoutSeconds > 0:
		client.SetTimeout(time.Duration(timeoutSeconds) * time.Second)
	case profileSeconds > 0:
		client.SetTimeout(time.Duration(profileSeconds) * time.Second)
	}
}

// signalContext returns a context cancelled by Ctrl+C
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

// dashboardCmd launches the interactive TUI
var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Launch the interactive dashboard",
	Long: `Launch the full-screen interactive dashboard.

Browse every collection, create products with image attachments, and get
live feedback on submissions. This is also the default when ecume-admin
runs without a subcommand.`,
	RunE: runDashboard,
}

func runDashboard(cmd *cobra.Command, args []string) error {
	client, profile, err := resolveClient()
	if err != nil {
		return err
	}

	p := tea.NewProgram(tui.NewAppModel(client, profile), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}

// productsCmd groups product subcommands
var productsCmd = &cobra.Command{
	Use:   "products",
	Short: "List and create products",
}

var productsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all products",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := resolveClient()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		products, err := client.ListProducts(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch products: %w", err)
		}

		if len(products) == 0 {
			fmt.Println("No products yet.")
			return nil
		}

		table := ui.NewTable("TITLE", "PRICE", "STOCK", "CREATED")
		for _, p := range products {
			table.AddRow(p.Title, ui.FormatPrice(p.Price), strconv.Itoa(p.StockQuantity), ui.FormatDate(p.CreatedAt))
		}
		fmt.Println(table.Render())
		fmt.Printf("  %d product(s)\n", len(products))
		return nil
	},
}

var productsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a product",
	Long: `Create a product from flags.

All validation problems are reported together, so one run is enough to see
everything that needs fixing. When images are attached the command shows a
review of exactly what will be sent and asks for confirmation; --yes skips
the prompt for scripted use.`,
	Example: `  # Scalar-only product
  ecume-admin products add --title "Chair" --description "Oak chair" --price 49.99 --stock 5

  # With images (prompts for confirmation)
  ecume-admin products add --title "Chair" --description "Oak chair" --price 49.99 \
      --image front.jpg --image side.jpg`,
	RunE: runProductsAdd,
}

func runProductsAdd(cmd *cobra.Command, args []string) error {
	client, _, err := resolveClient()
	if err != nil {
		return err
	}

	d := draft.New()
	if len(addImages) > 0 {
		d = draft.NewWithAssets()
		defer d.Discard()

		selections := make([]draft.FileSelection, 0, len(addImages))
		for _, path := range addImages {
			selection, err := draft.SelectionFromFile(path)
			if err != nil {
				return err
			}
			selections = append(selections, selection)
		}
		if err := d.Staging().AddFiles(selections); err != nil {
			return fmt.Errorf("%s", backoffice.ShortMessage(err))
		}
	}

	d.Title = addTitle
	d.Description = addDescription
	d.Price = addPrice
	d.StockQuantity = addStock

	gate := draft.NewConfirmationGate(d)
	payload, errs := gate.Submit()
	if len(errs) > 0 {
		return fmt.Errorf("invalid product:\n%s", draft.FormatValidationErrors(errs))
	}

	if payload == nil {
		// Asset-bearing: review and confirm before anything ships
		details := []ui.Detail{
			{Key: "Title", Value: d.Title},
			{Key: "Description", Value: d.Description},
			{Key: "Price", Value: ui.FormatPrice(d.Price)},
			{Key: "Stock", Value: strconv.Itoa(d.StockQuantity)},
			{Key: "Images", Value: strconv.Itoa(d.Staging().Count())},
		}

		if addYes {
			payload, err = gate.Confirm()
			if err != nil {
				return err
			}
		} else if ui.ConfirmSubmission(os.Stdout, os.Stdin, "Create product", details) {
			payload, err = gate.Confirm()
			if err != nil {
				return err
			}
		} else {
			_ = gate.Cancel()
			return nil
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	result := client.CreateProduct(ctx, payload)
	if !result.Success {
		fmt.Println(ui.RenderFailure("Product not created", result.Err, []string{
			"Check that the API server is running and reachable",
			"Re-run with the same flags - your input was not consumed",
		}))
		return fmt.Errorf("submission failed")
	}

	box := ui.NewSuccessResult("Product created").
		AddDetail("Title", d.Title).
		AddDetail("Price", ui.FormatPrice(d.Price)).
		AddDetail("Stock", strconv.Itoa(d.StockQuantity))
	if result.Entity != nil && result.Entity.ID != "" {
		box.AddDetail("ID", result.Entity.ID)
	}
	fmt.Println(box.Render())
	return nil
}

// usersCmd lists back-office users
var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List back-office users",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := resolveClient()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		users, err := client.ListUsers(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch users: %w", err)
		}

		table := ui.NewTable("USERNAME", "EMAIL", "ROLE", "STATUS")
		for i := range users {
			u := &users[i]
			table.AddRow(u.Username, u.Email, u.RoleLabel(), u.StatusLabel())
		}
		fmt.Println(table.Render())
		return nil
	},
}

// clientsCmd lists shop customers
var clientsCmd = &cobra.Command{
	Use:   "clients",
	Short: "List shop clients",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := resolveClient()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		customers, err := client.ListClients(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch clients: %w", err)
		}

		table := ui.NewTable("NAME", "EMAIL", "PHONE")
		for _, c := range customers {
			table.AddRow(c.Name, c.Email, c.Phone)
		}
		fmt.Println(table.Render())
		return nil
	},
}

// ordersCmd groups order subcommands
var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List orders and watch live order events",
}

var ordersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := resolveClient()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		orders, err := client.ListOrders(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch orders: %w", err)
		}

		table := ui.NewTable("ORDER", "CLIENT", "TOTAL", "STATUS")
		for _, o := range orders {
			table.AddRow(o.ID, o.ClientID, ui.FormatPrice(o.Total), o.Status)
		}
		fmt.Println(table.Render())
		return nil
	},
}

var ordersWatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream live order events",
	Long: `Subscribe to the order event stream over WebSocket and print each
event as it arrives. Runs until interrupted with Ctrl+C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _, err := resolveClient()
		if err != nil {
			return err
		}

		ctx, cancel := signalContext()
		defer cancel()

		stream, err := client.WatchOrders(ctx)
		if err != nil {
			return fmt.Errorf("failed to open order stream: %w", err)
		}
		defer stream.Close()

		fmt.Println("Watching order events (Ctrl+C to stop)...")
		for event := range stream.Events() {
			fmt.Printf("  [%s] order %s  client=%s  total=%s  status=%s\n",
				event.Type, event.Order.ID, event.Order.ClientID,
				ui.FormatPrice(event.Order.Total), event.Order.Status)
		}

		if err := stream.Err(); err != nil {
			return fmt.Errorf("order stream ended: %w", err)
		}
		fmt.Println("Order stream closed.")
		return nil
	},
}

// discoverCmd finds API servers on the local network
var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Discover Ecume API servers on the network",
	Long: `Scan the local network for Ecume API servers using mDNS/DNS-SD.

Discovered servers are listed with their address and advertised metadata;
point a profile at one with 'ecume-admin profiles'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cmd.Flags().Changed("timeout") {
			if registry, err := config.LoadRegistry(); err == nil &&
				registry.Preferences != nil && registry.Preferences.DiscoverTimeout > 0 {
				scanTimeout = registry.Preferences.DiscoverTimeout
			}
		}

		fmt.Printf("Scanning for API servers (timeout: %ds)...\n\n", scanTimeout)

		instances, err := discovery.ScanInstances(time.Duration(scanTimeout) * time.Second)
		if err != nil {
			return fmt.Errorf("scan failed: %w", err)
		}

		if len(instances) == 0 {
			fmt.Println("No API servers found.")
			fmt.Println("\nTroubleshooting:")
			fmt.Println("  - Check that the server advertises _ecume-api._tcp via mDNS")
			fmt.Println("  - Verify you are on the same network segment")
			fmt.Println("  - Try increasing --timeout for slower networks")
			fmt.Println("  - Use --api to specify the URL manually")
			return nil
		}

		fmt.Printf("Found %d server(s):\n\n", len(instances))
		for i, instance := range instances {
			fmt.Printf("%d. %s\n", i+1, instance.Name)
			fmt.Printf("   URL:         %s\n", instance.BaseURL())
			fmt.Printf("   Environment: %s\n", instance.Environment())
			if v := instance.GetMetadata("version"); v != "" {
				fmt.Printf("   Version:     %s\n", v)
			}
			fmt.Println()
		}
		return nil
	},
}

// profilesCmd manages named API profiles
var profilesCmd = &cobra.Command{
	Use:   "profiles",
	Short: "Manage API profiles",
}

var profilesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List configured profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		defaultName := ""
		if registry.Preferences != nil {
			defaultName = registry.Preferences.DefaultProfile
		}

		table := ui.NewTable("NAME", "URL", "DEFAULT")
		for name, profile := range registry.Profiles {
			marker := ""
			if name == defaultName {
				marker = "*"
			}
			table.AddRow(name, profile.BaseURL, marker)
		}
		fmt.Println(table.Render())
		return nil
	},
}

var profilesSetDefaultCmd = &cobra.Command{
	Use:   "set-default <name> [url]",
	Short: "Set the default profile, creating it if a URL is given",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		name := args[0]
		if len(args) == 2 {
			registry.EnsureProfile(name, args[1])
		} else if registry.GetProfile(name) == nil {
			return fmt.Errorf("profile %q does not exist; pass its URL to create it", name)
		}

		registry.SetDefaultProfile(name)
		if err := registry.Save(); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}

		fmt.Printf("Default profile set to %q (%s)\n", name, registry.GetProfile(name).BaseURL)
		return nil
	},
}
