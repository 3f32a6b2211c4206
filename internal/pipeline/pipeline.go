package pipeline

import (
	"fmt"
	"sort"

	"github.com/sen-dwh/aid-etl/internal/event"
	"github.com/sen-dwh/aid-etl/internal/geo"
	"github.com/sen-dwh/aid-etl/internal/normalize"
)

// Pipeline normalizes a batch of raw records into clean warehouse
// rows. Steps run in a fixed order per record because each depends on
// the previous one; the hard filter runs strictly after inference
// since inference can itself disqualify a record.
type Pipeline struct {
	resolver    *geo.Resolver
	categorizer *event.Categorizer

	progressEvery int
}

// Summary reports what one pipeline run did with its batch.
type Summary struct {
	Processed         int
	Kept              int
	DroppedDiscard    int
	DroppedNoSupplies int
	DroppedNoAid      int
	Inferred          int

	EventCounts      map[string]int
	DepartmentCounts map[string]int
}

func NewPipeline(resolver *geo.Resolver, categorizer *event.Categorizer) *Pipeline {
	return &Pipeline{
		resolver:      resolver,
		categorizer:   categorizer,
		progressEvery: 5000,
	}
}

// Run normalizes the batch, preserving the input order of surviving
// records.
func (p *Pipeline) Run(records []RawRecord) ([]CleanRecord, *Summary) {
	summary := &Summary{
		EventCounts:      make(map[string]int),
		DepartmentCounts: make(map[string]int),
	}
	clean := make([]CleanRecord, 0, len(records))

	for i, raw := range records {
		summary.Processed++
		if p.progressEvery > 0 && (i+1)%p.progressEvery == 0 {
			fmt.Printf("  normalized %d/%d records\n", i+1, len(records))
		}

		rec, inferred := p.normalizeOne(raw)
		if inferred {
			summary.Inferred++
		}

		switch {
		case rec.Event == event.Discard:
			summary.DroppedDiscard++
			continue
		case rec.Event == event.NoSupplies:
			summary.DroppedNoSupplies++
			continue
		case rec.TotalAid() <= 0:
			summary.DroppedNoAid++
			continue
		}

		summary.Kept++
		summary.EventCounts[rec.Event]++
		summary.DepartmentCounts[rec.Department]++
		clean = append(clean, rec)
	}

	return clean, summary
}

func (p *Pipeline) normalizeOne(raw RawRecord) (CleanRecord, bool) {
	department := p.resolver.ResolveDepartment(raw.Departamento)
	district := p.resolver.ResolveDistrict(raw.Distrito, department)

	// District typed into the locality column with the district column
	// left blank.
	district, locality := p.resolver.CorrectFieldSwap(district, raw.Localidad)
	locality = p.resolver.ResolveLocality(locality, district)

	rec := CleanRecord{
		Department: department,
		District:   district,
		Locality:   locality,

		KitEventos:        normalize.CleanNumber(raw.KitA),
		KitSentencia:      normalize.CleanNumber(raw.KitB),
		ChapaFibrocemento: normalize.CleanNumber(raw.ChapaFibrocemento),
		ChapaZinc:         normalize.CleanNumber(raw.ChapaZinc),
		Colchones:         normalize.CleanNumber(raw.Colchones),
		Frazadas:          normalize.CleanNumber(raw.Frazadas),
		Terciadas:         normalize.CleanNumber(raw.Terciadas),
		Puntales:          normalize.CleanNumber(raw.Puntales),
		CarpasPlasticas:   normalize.CleanNumber(raw.CarpasPlasticas),
	}

	categorized := p.categorizer.Categorize(raw.Evento)
	rec.Event = event.Infer(categorized, department, event.AidProfile{
		TotalKits:         rec.TotalKits(),
		ChapaZinc:         rec.ChapaZinc,
		ChapaFibrocemento: rec.ChapaFibrocemento,
		Materials:         rec.TotalMaterials(),
	})
	inferred := categorized == event.NoEvent && rec.Event != event.NoEvent

	rec.Date = normalize.CleanDate(raw.Fecha)
	if rec.Date != nil {
		rec.Year = rec.Date.Year()
		rec.Month = int(rec.Date.Month())
	}
	rec.DepartmentRank = p.resolver.Rank(rec.Department)

	p.enforceSchema(&rec)
	return rec, inferred
}

// enforceSchema pins the final column contract: every text field is
// upper-cased trimmed text, never empty.
func (p *Pipeline) enforceSchema(rec *CleanRecord) {
	rec.Department = normalize.CleanText(rec.Department)
	rec.District = normalize.CleanText(rec.District)
	rec.Locality = normalize.CleanText(rec.Locality)
	rec.Event = normalize.CleanText(rec.Event)
}

// Print writes the run report the way operators review it: totals,
// department closure, and the event distribution.
func (s *Summary) Print() {
	fmt.Printf("Processed %d records: %d kept, %d dropped (%d discard, %d no supplies, %d zero aid), %d events inferred\n",
		s.Processed, s.Kept,
		s.DroppedDiscard+s.DroppedNoSupplies+s.DroppedNoAid,
		s.DroppedDiscard, s.DroppedNoSupplies, s.DroppedNoAid,
		s.Inferred)

	fmt.Printf("Departments in output: %d\n", len(s.DepartmentCounts))
	for _, line := range sortedCounts(s.DepartmentCounts, 0) {
		fmt.Printf("  %s\n", line)
	}
	fmt.Printf("Top events:\n")
	for _, line := range sortedCounts(s.EventCounts, 10) {
		fmt.Printf("  %s\n", line)
	}
}

func sortedCounts(m map[string]int, limit int) []string {
	type kv struct {
		key   string
		count int
	}
	pairs := make([]kv, 0, len(m))
	for k, v := range m {
		pairs = append(pairs, kv{k, v})
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].count != pairs[j].count {
			return pairs[i].count > pairs[j].count
		}
		return pairs[i].key < pairs[j].key
	})
	if limit > 0 && len(pairs) > limit {
		pairs = pairs[:limit]
	}
	lines := make([]string, len(pairs))
	for i, p := range pairs {
		lines[i] = fmt.Sprintf("%-30s %d", p.key, p.count)
	}
	return lines
}
