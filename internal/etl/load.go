package etl

import (
	"database/sql"
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/sen-dwh/aid-etl/internal/pipeline"
)

// DimensionStore resolves natural keys to warehouse surrogate keys,
// creating dimension rows on first sight. Implementations must be
// idempotent: ensuring the same natural key twice returns the same
// surrogate and never duplicates a row.
type DimensionStore interface {
	EnsureDate(t time.Time) (int, error)
	EnsureEvent(name string) (int, error)
	EnsureLocation(department, district, locality string) (int, error)

	// FindLocationByDistrict is the fallback when the full triple
	// cannot be ensured: any existing row for the (department,
	// district) pair keeps the fact from being lost to locality noise.
	FindLocationByDistrict(department, district string) (int, bool, error)

	FactExists(dateID, locationID, eventID int) (bool, error)
	InsertFact(f FactRow) error
}

// FactRow is one hechos_asistencia_humanitaria row.
type FactRow struct {
	DateID     int
	LocationID int
	EventID    int

	KitEventos        int
	KitSentencia      int
	ChapaFibrocemento int
	ChapaZinc         int
	Colchones         int
	Frazadas          int
	Terciadas         int
	Puntales          int
	CarpasPlasticas   int
}

// LoadSummary is the per-run diagnostic report: what loaded, what was
// rejected and why, and the natural keys operators should triage.
type LoadSummary struct {
	Processed  int
	Loaded     int
	Duplicates int

	RejectedMissingDate     int
	RejectedMissingEvent    int
	RejectedMissingLocation int
	InsertErrors            int

	unresolved map[string]int
}

func (s *LoadSummary) reject(key string) {
	if s.unresolved == nil {
		s.unresolved = make(map[string]int)
	}
	s.unresolved[key]++
}

// TopUnresolved returns the most frequent unresolved natural keys,
// most frequent first, ties broken alphabetically.
func (s *LoadSummary) TopUnresolved(n int) []string {
	keys := make([]string, 0, len(s.unresolved))
	for k := range s.unresolved {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if s.unresolved[keys[i]] != s.unresolved[keys[j]] {
			return s.unresolved[keys[i]] > s.unresolved[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Print writes the load report.
func (s *LoadSummary) Print() {
	fmt.Printf("Load complete: %d processed, %d loaded, %d duplicates skipped\n",
		s.Processed, s.Loaded, s.Duplicates)
	fmt.Printf("Rejected: %d missing date, %d missing event, %d missing location, %d insert errors\n",
		s.RejectedMissingDate, s.RejectedMissingEvent, s.RejectedMissingLocation, s.InsertErrors)
	if top := s.TopUnresolved(10); len(top) > 0 {
		fmt.Printf("Top unresolved natural keys:\n")
		for _, k := range top {
			fmt.Printf("  %-50s %d\n", k, s.unresolved[k])
		}
	}
}

// Loader resolves surrogate keys for a clean batch and inserts fact
// rows. A failure on one record never aborts the run: it is counted,
// logged with its natural key, and the loop continues.
type Loader struct {
	store DimensionStore
}

func NewLoader(store DimensionStore) *Loader {
	return &Loader{store: store}
}

// Load pushes one clean batch into the warehouse. Dimension rows are
// ensured before the fact insert that references them, so a partial
// run never leaves dangling fact rows.
func (l *Loader) Load(records []pipeline.CleanRecord) *LoadSummary {
	summary := &LoadSummary{}

	for _, rec := range records {
		summary.Processed++

		if rec.Date == nil {
			summary.RejectedMissingDate++
			summary.reject(fmt.Sprintf("date:(none) %s/%s", rec.Department, rec.District))
			continue
		}
		dateID, err := l.store.EnsureDate(*rec.Date)
		if err != nil {
			summary.RejectedMissingDate++
			summary.reject("date:" + rec.Date.Format("2006-01-02"))
			log.Printf("date key %s: %v", rec.Date.Format("2006-01-02"), err)
			continue
		}

		eventID, err := l.store.EnsureEvent(rec.Event)
		if err != nil {
			summary.RejectedMissingEvent++
			summary.reject("event:" + rec.Event)
			log.Printf("event key %q: %v", rec.Event, err)
			continue
		}

		locationID, err := l.store.EnsureLocation(rec.Department, rec.District, rec.Locality)
		if err != nil {
			// Locality-level noise should not lose the fact.
			id, ok, ferr := l.store.FindLocationByDistrict(rec.Department, rec.District)
			if ferr != nil || !ok {
				summary.RejectedMissingLocation++
				summary.reject(fmt.Sprintf("location:%s/%s/%s", rec.Department, rec.District, rec.Locality))
				log.Printf("location key %s/%s/%s: %v", rec.Department, rec.District, rec.Locality, err)
				continue
			}
			locationID = id
		}

		dup, err := l.store.FactExists(dateID, locationID, eventID)
		if err != nil {
			summary.InsertErrors++
			log.Printf("duplicate check %d/%d/%d: %v", dateID, locationID, eventID, err)
			continue
		}
		if dup {
			summary.Duplicates++
			continue
		}

		fact := FactRow{
			DateID:            dateID,
			LocationID:        locationID,
			EventID:           eventID,
			KitEventos:        rec.KitEventos,
			KitSentencia:      rec.KitSentencia,
			ChapaFibrocemento: rec.ChapaFibrocemento,
			ChapaZinc:         rec.ChapaZinc,
			Colchones:         rec.Colchones,
			Frazadas:          rec.Frazadas,
			Terciadas:         rec.Terciadas,
			Puntales:          rec.Puntales,
			CarpasPlasticas:   rec.CarpasPlasticas,
		}
		if err := l.store.InsertFact(fact); err != nil {
			summary.InsertErrors++
			log.Printf("fact insert %s %s/%s/%s %s: %v",
				rec.Date.Format("2006-01-02"), rec.Department, rec.District, rec.Locality, rec.Event, err)
			continue
		}

		summary.Loaded++
		if summary.Loaded%1000 == 0 {
			fmt.Printf("  loaded %d fact rows\n", summary.Loaded)
		}
	}

	return summary
}

var spanishMonths = [...]string{
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// PostgresStore is the warehouse-backed DimensionStore. Surrogate
// lookups are cached per run so a full reload touches each dimension
// row once.
type PostgresStore struct {
	db *sql.DB

	dates     map[string]int
	events    map[string]int
	locations map[string]int
}

func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:        db,
		dates:     make(map[string]int),
		events:    make(map[string]int),
		locations: make(map[string]int),
	}
}

func (s *PostgresStore) EnsureDate(t time.Time) (int, error) {
	key := t.Format("2006-01-02")
	if id, ok := s.dates[key]; ok {
		return id, nil
	}

	var id int
	err := s.db.QueryRow("SELECT id_fecha FROM dim_fecha WHERE fecha = $1", key).Scan(&id)
	if err == sql.ErrNoRows {
		err = s.db.QueryRow(`
			INSERT INTO dim_fecha (fecha, anio, mes, nombre_mes, dia_del_mes)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id_fecha`,
			key, t.Year(), int(t.Month()), spanishMonths[t.Month()-1], t.Day(),
		).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to ensure dim_fecha %s: %w", key, err)
	}

	s.dates[key] = id
	return id, nil
}

func (s *PostgresStore) EnsureEvent(name string) (int, error) {
	if id, ok := s.events[name]; ok {
		return id, nil
	}

	var id int
	err := s.db.QueryRow("SELECT id_evento FROM dim_evento WHERE evento = $1", name).Scan(&id)
	if err == sql.ErrNoRows {
		err = s.db.QueryRow(
			"INSERT INTO dim_evento (evento) VALUES ($1) RETURNING id_evento", name,
		).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to ensure dim_evento %q: %w", name, err)
	}

	s.events[name] = id
	return id, nil
}

func (s *PostgresStore) EnsureLocation(department, district, locality string) (int, error) {
	key := department + "|" + district + "|" + locality
	if id, ok := s.locations[key]; ok {
		return id, nil
	}

	var id int
	err := s.db.QueryRow(`
		SELECT id_ubicacion FROM dim_ubicacion
		WHERE departamento = $1 AND distrito = $2 AND localidad = $3`,
		department, district, locality,
	).Scan(&id)
	if err == sql.ErrNoRows {
		err = s.db.QueryRow(`
			INSERT INTO dim_ubicacion (departamento, distrito, localidad)
			VALUES ($1, $2, $3)
			RETURNING id_ubicacion`,
			department, district, locality,
		).Scan(&id)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to ensure dim_ubicacion %s: %w", key, err)
	}

	s.locations[key] = id
	return id, nil
}

func (s *PostgresStore) FindLocationByDistrict(department, district string) (int, bool, error) {
	var id int
	err := s.db.QueryRow(`
		SELECT id_ubicacion FROM dim_ubicacion
		WHERE departamento = $1 AND distrito = $2
		ORDER BY id_ubicacion LIMIT 1`,
		department, district,
	).Scan(&id)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("failed to look up dim_ubicacion %s/%s: %w", department, district, err)
	}
	return id, true, nil
}

func (s *PostgresStore) FactExists(dateID, locationID, eventID int) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS (
			SELECT 1 FROM hechos_asistencia_humanitaria
			WHERE id_fecha = $1 AND id_ubicacion = $2 AND id_evento = $3
		)`, dateID, locationID, eventID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed duplicate check: %w", err)
	}
	return exists, nil
}

func (s *PostgresStore) InsertFact(f FactRow) error {
	_, err := s.db.Exec(`
		INSERT INTO hechos_asistencia_humanitaria (
			id_fecha, id_ubicacion, id_evento,
			kit_eventos, kit_sentencia, chapa_fibrocemento, chapa_zinc,
			colchones, frazadas, terciadas, puntales, carpas_plasticas
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		f.DateID, f.LocationID, f.EventID,
		f.KitEventos, f.KitSentencia, f.ChapaFibrocemento, f.ChapaZinc,
		f.Colchones, f.Frazadas, f.Terciadas, f.Puntales, f.CarpasPlasticas,
	)
	if err != nil {
		return fmt.Errorf("failed to insert fact row: %w", err)
	}
	return nil
}
