package etl

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/sen-dwh/aid-etl/internal/normalize"
	"github.com/sen-dwh/aid-etl/internal/pipeline"
)

// columnSetters maps a normalized source column name to the RawRecord
// field it feeds. Keys are diacritic-stripped, upper-cased, with
// underscores treated as spaces, so "KIT A", "kit_a" and "Kit A" all
// land in the same field.
var columnSetters = map[string]func(*pipeline.RawRecord, string){
	"FECHA":              func(r *pipeline.RawRecord, v string) { r.Fecha = v },
	"DEPARTAMENTO":       func(r *pipeline.RawRecord, v string) { r.Departamento = v },
	"DISTRITO":           func(r *pipeline.RawRecord, v string) { r.Distrito = v },
	"LOCALIDAD":          func(r *pipeline.RawRecord, v string) { r.Localidad = v },
	"EVENTO":             func(r *pipeline.RawRecord, v string) { r.Evento = v },
	"KIT A":              func(r *pipeline.RawRecord, v string) { r.KitA = v },
	"KIT B":              func(r *pipeline.RawRecord, v string) { r.KitB = v },
	"CHAPA FIBROCEMENTO": func(r *pipeline.RawRecord, v string) { r.ChapaFibrocemento = v },
	"CHAPA ZINC":         func(r *pipeline.RawRecord, v string) { r.ChapaZinc = v },
	"COLCHONES":          func(r *pipeline.RawRecord, v string) { r.Colchones = v },
	"FRAZADAS":           func(r *pipeline.RawRecord, v string) { r.Frazadas = v },
	"TERCIADAS":          func(r *pipeline.RawRecord, v string) { r.Terciadas = v },
	"PUNTALES":           func(r *pipeline.RawRecord, v string) { r.Puntales = v },
	"CARPAS PLASTICAS":   func(r *pipeline.RawRecord, v string) { r.CarpasPlasticas = v },
}

// normalizeColumn reduces a header or column name to the setter key
// form.
func normalizeColumn(name string) string {
	return normalize.Key(strings.ReplaceAll(name, "_", " "))
}

// Extractor pulls raw records from the operational source table.
type Extractor struct {
	db *sql.DB
}

func NewExtractor(db *sql.DB) *Extractor {
	return &Extractor{db: db}
}

// Extract reads the whole source table, mapping columns by name so
// schema drift in column order never misfiles a value.
func (e *Extractor) Extract() ([]pipeline.RawRecord, error) {
	rows, err := e.db.Query("SELECT * FROM asistencia_humanitaria")
	if err != nil {
		return nil, fmt.Errorf("failed to query source table: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read source columns: %w", err)
	}

	setters := make([]func(*pipeline.RawRecord, string), len(cols))
	for i, col := range cols {
		setters[i] = columnSetters[normalizeColumn(col)]
	}

	var records []pipeline.RawRecord
	values := make([]sql.NullString, len(cols))
	scanArgs := make([]any, len(cols))
	for i := range values {
		scanArgs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(scanArgs...); err != nil {
			return nil, fmt.Errorf("failed to scan source row: %w", err)
		}
		var rec pipeline.RawRecord
		for i, set := range setters {
			if set != nil && values[i].Valid {
				set(&rec, values[i].String)
			}
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed reading source rows: %w", err)
	}

	fmt.Printf("Extracted %d records from asistencia_humanitaria\n", len(records))
	return records, nil
}
