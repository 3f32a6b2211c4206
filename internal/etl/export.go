package etl

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/sen-dwh/aid-etl/internal/pipeline"
)

var exportHeader = []string{
	"fecha", "anio", "mes",
	"departamento", "ranking_departamento", "distrito", "localidad", "evento",
	"kit_eventos", "kit_sentencia", "chapa_fibrocemento", "chapa_zinc",
	"colchones", "frazadas", "terciadas", "puntales", "carpas_plasticas",
	"total_ayuda",
}

// ExportCSV writes a clean batch to CSV for operator review. Records
// without a parseable date get an empty date cell rather than being
// dropped: the audit file must show everything the pipeline kept.
func ExportCSV(records []pipeline.CleanRecord, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	w := csv.NewWriter(file)
	defer w.Flush()

	if err := w.Write(exportHeader); err != nil {
		return fmt.Errorf("failed to write export header: %w", err)
	}

	for _, rec := range records {
		date := ""
		if rec.Date != nil {
			date = rec.Date.Format("2006-01-02")
		}
		row := []string{
			date,
			strconv.Itoa(rec.Year),
			strconv.Itoa(rec.Month),
			rec.Department,
			strconv.Itoa(rec.DepartmentRank),
			rec.District,
			rec.Locality,
			rec.Event,
			strconv.Itoa(rec.KitEventos),
			strconv.Itoa(rec.KitSentencia),
			strconv.Itoa(rec.ChapaFibrocemento),
			strconv.Itoa(rec.ChapaZinc),
			strconv.Itoa(rec.Colchones),
			strconv.Itoa(rec.Frazadas),
			strconv.Itoa(rec.Terciadas),
			strconv.Itoa(rec.Puntales),
			strconv.Itoa(rec.CarpasPlasticas),
			strconv.Itoa(rec.TotalAid()),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("failed to write export row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed flushing export: %w", err)
	}

	fmt.Printf("Exported %d records to %s\n", len(records), path)
	return nil
}
