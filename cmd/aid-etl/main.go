package main

import (
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/sen-dwh/aid-etl/internal/config"
	"github.com/sen-dwh/aid-etl/internal/db"
	"github.com/sen-dwh/aid-etl/internal/etl"
	"github.com/sen-dwh/aid-etl/internal/event"
	"github.com/sen-dwh/aid-etl/internal/geo"
	"github.com/sen-dwh/aid-etl/internal/pipeline"
)

func main() {
	if err := config.LoadEnv(); err != nil {
		log.Fatalf("Failed to load environment: %v", err)
	}

	rootCmd := &cobra.Command{
		Use:   "aid-etl",
		Short: "Humanitarian aid distribution ETL",
		Long:  `Normalizes humanitarian-aid distribution records and loads them into the analytical warehouse`,
	}

	rootCmd.AddCommand(createRunCmd())
	rootCmd.AddCommand(createCleanCmd())
	rootCmd.AddCommand(createImportXLSXCmd())
	rootCmd.AddCommand(createPingCmd())
	rootCmd.AddCommand(createCheckRegistryCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// newPipeline wires the resolver stack from the embedded reference
// data and the external locality registry.
func newPipeline() (*pipeline.Pipeline, error) {
	hier, err := geo.LoadHierarchy()
	if err != nil {
		return nil, fmt.Errorf("failed to load hierarchy: %w", err)
	}
	dicts, err := geo.LoadDictionaries(config.GetEnv("AID_CORRECTIONS", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to load correction dictionaries: %w", err)
	}
	registry, err := geo.LoadLocalityRegistry(config.RegistryPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load locality registry: %w", err)
	}
	categorizer, err := event.NewCategorizer(config.GetEnv("AID_EVENTS", ""))
	if err != nil {
		return nil, fmt.Errorf("failed to load event taxonomy: %w", err)
	}
	return pipeline.NewPipeline(geo.NewResolver(hier, dicts, registry), categorizer), nil
}

// createRunCmd runs the full pipeline: extract from the source
// database, normalize, load into the warehouse.
func createRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Extract, normalize and load into the warehouse",
		Run: func(cmd *cobra.Command, args []string) {
			p, err := newPipeline()
			if err != nil {
				log.Fatalf("Failed to initialize pipeline: %v", err)
			}

			src, err := db.NewSourceConnection()
			if err != nil {
				log.Fatalf("Failed to connect to source database: %v", err)
			}
			defer src.Close()

			raw, err := etl.NewExtractor(src.DB).Extract()
			if err != nil {
				log.Fatalf("Failed to extract source records: %v", err)
			}

			clean, summary := p.Run(raw)
			summary.Print()

			dwh, err := db.NewWarehouseConnection()
			if err != nil {
				log.Fatalf("Failed to connect to warehouse: %v", err)
			}
			defer dwh.Close()

			loadSummary := etl.NewLoader(etl.NewPostgresStore(dwh.DB)).Load(clean)
			loadSummary.Print()
		},
	}
}

// createCleanCmd normalizes a workbook without touching the warehouse
// and writes the result to CSV for review.
func createCleanCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "clean [workbook.xlsx]",
		Short: "Normalize a workbook and export the result to CSV",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			p, err := newPipeline()
			if err != nil {
				log.Fatalf("Failed to initialize pipeline: %v", err)
			}

			raw, err := etl.ReadXLSX(args[0])
			if err != nil {
				log.Fatalf("Failed to read workbook: %v", err)
			}

			clean, summary := p.Run(raw)
			summary.Print()

			if out != "" {
				if err := etl.ExportCSV(clean, out); err != nil {
					log.Fatalf("Failed to export CSV: %v", err)
				}
			}
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "CSV file to write the normalized batch to")
	return cmd
}

// createImportXLSXCmd normalizes an operator workbook and loads it
// straight into the warehouse.
func createImportXLSXCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import-xlsx [workbook.xlsx]",
		Short: "Normalize an operator workbook and load it into the warehouse",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			p, err := newPipeline()
			if err != nil {
				log.Fatalf("Failed to initialize pipeline: %v", err)
			}

			raw, err := etl.ReadXLSX(args[0])
			if err != nil {
				log.Fatalf("Failed to read workbook: %v", err)
			}

			clean, summary := p.Run(raw)
			summary.Print()

			dwh, err := db.NewWarehouseConnection()
			if err != nil {
				log.Fatalf("Failed to connect to warehouse: %v", err)
			}
			defer dwh.Close()

			loadSummary := etl.NewLoader(etl.NewPostgresStore(dwh.DB)).Load(clean)
			loadSummary.Print()
		},
	}
}

// createPingCmd tests both database connections.
func createPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Test source and warehouse connectivity",
		Run: func(cmd *cobra.Command, args []string) {
			src, err := db.NewSourceConnection()
			if err != nil {
				log.Fatalf("Source connection failed: %v", err)
			}
			defer src.Close()

			var count int
			if err := src.DB.QueryRow("SELECT COUNT(*) FROM asistencia_humanitaria").Scan(&count); err != nil {
				log.Printf("Error counting source records: %v", err)
			} else {
				fmt.Printf("Source records: %d\n", count)
			}

			dwh, err := db.NewWarehouseConnection()
			if err != nil {
				log.Fatalf("Warehouse connection failed: %v", err)
			}
			defer dwh.Close()

			if err := dwh.DB.QueryRow("SELECT COUNT(*) FROM hechos_asistencia_humanitaria").Scan(&count); err != nil {
				log.Printf("Error counting fact rows: %v", err)
			} else {
				fmt.Printf("Fact rows loaded: %d\n", count)
			}
		},
	}
}

// createCheckRegistryCmd reports how much of the district hierarchy
// the locality registry covers.
func createCheckRegistryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check-registry",
		Short: "Report locality registry coverage against the hierarchy",
		Run: func(cmd *cobra.Command, args []string) {
			hier, err := geo.LoadHierarchy()
			if err != nil {
				log.Fatalf("Failed to load hierarchy: %v", err)
			}
			registry, err := geo.LoadLocalityRegistry(config.RegistryPath())
			if err != nil {
				log.Fatalf("Failed to load locality registry: %v", err)
			}

			localities := 0
			for _, dist := range registry.Districts() {
				localities += len(registry.LocalitiesOf(dist))
			}
			fmt.Printf("Registry: %d localities across %d districts\n", localities, registry.Size())

			for _, dept := range hier.Departments() {
				covered := 0
				for _, dist := range dept.Districts {
					if len(registry.LocalitiesOf(dist)) > 0 {
						covered++
					}
				}
				fmt.Printf("  %-20s %d/%d districts covered\n", dept.Name, covered, len(dept.Districts))
			}
		},
	}
}
