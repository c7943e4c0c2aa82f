package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/coverwise/coverwise/internal/calculation"
	"github.com/coverwise/coverwise/internal/compare"
	"github.com/coverwise/coverwise/internal/config"
	"github.com/coverwise/coverwise/internal/database"
	"github.com/coverwise/coverwise/internal/domain"
	"github.com/coverwise/coverwise/internal/output"
	"github.com/coverwise/coverwise/internal/recommend"
	"github.com/coverwise/coverwise/internal/report"
	"github.com/coverwise/coverwise/internal/scheduler"
	"github.com/coverwise/coverwise/internal/server"
	"github.com/coverwise/coverwise/internal/store"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "coverwise",
	Short: "Life insurance advisory engine",
	Long:  "Needs analysis, premium estimation, investment projections and product recommendations for life insurance planning",
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(os.Stdout, "coverwise %s (commit %s, built %s)\n", version, commit, date)
		if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
			fmt.Fprintln(os.Stdout, bi.Main.Path)
		}
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze [profile-file]",
	Short: "Run an insurance needs analysis for a customer profile",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		profile, err := parser.LoadProfile(args[0])
		if err != nil {
			log.Fatal(err)
		}

		result := calculation.ComputeNeeds(profile)

		format, _ := cmd.Flags().GetString("format")
		if err := output.NewReportGenerator().Render(&result, format); err != nil {
			log.Fatal(err)
		}
	},
}

var premiumCmd = &cobra.Command{
	Use:   "premium",
	Short: "Estimate the annual premium for a product",
	Run: func(cmd *cobra.Command, args []string) {
		age, _ := cmd.Flags().GetInt("age")
		gender, _ := cmd.Flags().GetString("gender")
		term, _ := cmd.Flags().GetInt("term")
		productType, _ := cmd.Flags().GetString("product-type")
		sumAssured := decimalFlag(cmd, "sum-assured")

		estimator := calculation.NewPremiumEstimator()
		premium := estimator.Estimate(age, domain.Gender(gender), sumAssured, term, domain.ProductType(productType))

		fmt.Printf("Annual Premium:     %s\n", output.FormatCurrency(premium))
		fmt.Printf("Rate per 1000:      %s\n", calculation.RatePer1000(premium, sumAssured).StringFixed(2))
	},
}

var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Project investment growth with inflation adjustment",
	Run: func(cmd *cobra.Command, args []string) {
		kind, _ := cmd.Flags().GetString("type")
		years, _ := cmd.Flags().GetInt("years")
		breakdown, _ := cmd.Flags().GetBool("breakdown")
		amount := decimalFlag(cmd, "amount")
		returnRate := decimalFlag(cmd, "return-rate")
		inflationRate := decimalFlag(cmd, "inflation-rate")
		stepUp := decimalFlag(cmd, "step-up")

		gen := output.NewReportGenerator()
		format, _ := cmd.Flags().GetString("format")

		var result any
		switch kind {
		case "lumpsum":
			result = calculation.InflationAdjustedReturns(amount, returnRate, inflationRate, years)
		case "sip":
			result = calculation.SIPReturns(amount, returnRate, inflationRate, years)
		case "step_up_sip":
			result = calculation.StepUpSIPReturns(amount, returnRate, inflationRate, years, stepUp)
		default:
			log.Fatalf("unknown projection type %q (want lumpsum, sip or step_up_sip)", kind)
		}
		if err := gen.Render(result, format); err != nil {
			log.Fatal(err)
		}

		if breakdown {
			initial, monthly := decimal.Zero, amount
			if kind == "lumpsum" {
				initial, monthly = amount, decimal.Zero
			}
			records := calculation.YearlyBreakdown(initial, monthly, returnRate, inflationRate, years)
			if err := gen.Render(records, format); err != nil {
				log.Fatal(err)
			}
		}
	},
}

var compareCmd = &cobra.Command{
	Use:   "compare [profile-file] [catalogue-file]",
	Short: "Compare catalogue products for a customer profile",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		profile, err := parser.LoadProfile(args[0])
		if err != nil {
			log.Fatal(err)
		}
		catalogue, err := parser.LoadCatalogue(args[1])
		if err != nil {
			log.Fatal(err)
		}

		term, _ := cmd.Flags().GetInt("term")
		sumAssured := decimalFlag(cmd, "sum-assured")

		engine := compare.NewEngine()
		comparison := engine.CompareProducts(catalogue.Products, profile, sumAssured, term)

		format, _ := cmd.Flags().GetString("format")
		if err := output.NewReportGenerator().Render(comparison, format); err != nil {
			log.Fatal(err)
		}
	},
}

var recommendCmd = &cobra.Command{
	Use:   "recommend [profile-file] [catalogue-file]",
	Short: "Generate product recommendations for a customer profile",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		parser := config.NewInputParser()
		profile, err := parser.LoadProfile(args[0])
		if err != nil {
			log.Fatal(err)
		}
		catalogue, err := parser.LoadCatalogue(args[1])
		if err != nil {
			log.Fatal(err)
		}

		needs := calculation.ComputeNeeds(profile)
		engine := recommend.NewEngine()
		recs := engine.Generate(profile.ID, profile, &needs, catalogue.Products, nil)

		// Attach names for console output; the CLI path has no database.
		byID := make(map[int64]*domain.Product, len(catalogue.Products))
		for i := range catalogue.Products {
			byID[catalogue.Products[i].ID] = &catalogue.Products[i]
		}
		for i := range recs {
			if p, ok := byID[recs[i].ProductID]; ok {
				recs[i].ProductName = p.Name
				recs[i].InsurerName = p.Insurer.Name
			}
		}

		format, _ := cmd.Flags().GetString("format")
		if err := output.NewReportGenerator().Render(recs, format); err != nil {
			log.Fatal(err)
		}
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Initialize the database and seed the product catalogue",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadAppConfig()
		logger := newLogger(cfg)

		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if err := db.InitSchema(); err != nil {
			log.Fatal(err)
		}

		insurers := store.NewInsurerRepository(db, logger)
		products := store.NewProductRepository(db, logger)
		if err := store.NewSeeder(insurers, products, logger).Run(); err != nil {
			log.Fatal(err)
		}
		fmt.Printf("Database ready at %s\n", db.Path())
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the advisory HTTP service",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.LoadAppConfig()
		logger := newLogger(cfg)

		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			logger.Fatal().Err(err).Msg("Failed to open database")
		}
		defer db.Close()
		if err := db.InitSchema(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to initialize schema")
		}

		insurers := store.NewInsurerRepository(db, logger)
		products := store.NewProductRepository(db, logger)
		customers := store.NewCustomerRepository(db, logger)
		needs := store.NewNeedsRepository(db, logger)
		recommendations := store.NewRecommendationRepository(db, logger)
		market := store.NewMarketRepository(db, logger)
		reports := store.NewReportRepository(db, logger)

		if err := store.NewSeeder(insurers, products, logger).Run(); err != nil {
			logger.Fatal().Err(err).Msg("Failed to seed catalogue")
		}

		refreshJob := scheduler.NewMarketRefreshJob(insurers, market, logger)
		sched := scheduler.New(logger)
		if err := sched.AddJob(cfg.MarketRefreshSchedule, refreshJob); err != nil {
			logger.Fatal().Err(err).Str("schedule", cfg.MarketRefreshSchedule).Msg("Bad refresh schedule")
		}
		sched.Start()
		defer sched.Stop()

		srv := server.New(server.Config{
			Port:            cfg.Port,
			Log:             logger,
			DevMode:         cfg.DevMode,
			Insurers:        insurers,
			Products:        products,
			Customers:       customers,
			Needs:           needs,
			Recommendations: recommendations,
			Market:          market,
			Recommender:     recommend.NewEngine(),
			Comparer:        compare.NewEngine(),
			Reports:         report.NewService(customers, needs, recommendations, reports, logger),
			MarketRefresh:   refreshJob,
		})

		errCh := make(chan error, 1)
		go func() {
			errCh <- srv.Start()
		}()

		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-errCh:
			logger.Fatal().Err(err).Msg("Server failed")
		case sig := <-stop:
			logger.Info().Str("signal", sig.String()).Msg("Shutting down")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msg("Shutdown failed")
		}
	},
}

func newLogger(cfg *config.AppConfig) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var logger zerolog.Logger
	if cfg.DevMode {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// decimalFlag parses a string flag as a decimal, failing hard on bad input.
func decimalFlag(cmd *cobra.Command, name string) decimal.Decimal {
	raw, _ := cmd.Flags().GetString(name)
	d, err := decimal.NewFromString(raw)
	if err != nil {
		log.Fatalf("invalid --%s value %q", name, raw)
	}
	return d
}

func init() {
	analyzeCmd.Flags().String("format", "console", "Output format (console, json)")

	premiumCmd.Flags().Int("age", 30, "Customer age")
	premiumCmd.Flags().String("gender", "male", "Customer gender (male, female, other)")
	premiumCmd.Flags().String("sum-assured", "5000000", "Sum assured")
	premiumCmd.Flags().Int("term", 20, "Policy term in years")
	premiumCmd.Flags().String("product-type", "term_life", "Product type")

	projectCmd.Flags().String("type", "sip", "Projection type (lumpsum, sip, step_up_sip)")
	projectCmd.Flags().String("amount", "10000", "Principal (lumpsum) or monthly contribution (sip)")
	projectCmd.Flags().String("return-rate", "8", "Expected annual return rate in percent")
	projectCmd.Flags().String("inflation-rate", "6", "Expected inflation rate in percent")
	projectCmd.Flags().Int("years", 20, "Investment horizon in years")
	projectCmd.Flags().String("step-up", "10", "Annual step-up rate in percent (step_up_sip only)")
	projectCmd.Flags().Bool("breakdown", false, "Include year-by-year breakdown")
	projectCmd.Flags().String("format", "json", "Output format (console, json)")

	compareCmd.Flags().String("sum-assured", "1000000", "Sum assured to price products at")
	compareCmd.Flags().Int("term", 20, "Policy term in years")
	compareCmd.Flags().String("format", "console", "Output format (console, json)")

	recommendCmd.Flags().String("format", "console", "Output format (console, json)")

	rootCmd.AddCommand(analyzeCmd, premiumCmd, projectCmd, compareCmd, recommendCmd, seedCmd, serveCmd, versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
