package pipeline

import (
	"reflect"
	"testing"

	"github.com/sen-dwh/aid-etl/internal/event"
	"github.com/sen-dwh/aid-etl/internal/geo"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	hier, err := geo.LoadHierarchy()
	if err != nil {
		t.Fatalf("LoadHierarchy: %v", err)
	}
	dicts, err := geo.LoadDictionaries("")
	if err != nil {
		t.Fatalf("LoadDictionaries: %v", err)
	}
	registry, err := geo.LoadLocalityRegistry("")
	if err != nil {
		t.Fatalf("LoadLocalityRegistry: %v", err)
	}
	cat, err := event.NewCategorizer("")
	if err != nil {
		t.Fatalf("NewCategorizer: %v", err)
	}
	p := NewPipeline(geo.NewResolver(hier, dicts, registry), cat)
	p.progressEvery = 0
	return p
}

func TestRunNormalizesAndDerives(t *testing.T) {
	p := newTestPipeline(t)

	clean, summary := p.Run([]RawRecord{{
		Fecha:        "2021-03-15",
		Departamento: "CAAGUAZU",
		Distrito:     "Cnel Oviedo",
		Evento:       "INUNDACION",
		KitA:         "5",
		KitB:         "2,0",
		ChapaZinc:    "3",
	}})

	if summary.Kept != 1 || len(clean) != 1 {
		t.Fatalf("expected 1 kept record, got summary %+v", summary)
	}
	rec := clean[0]
	if rec.Department != "CAAGUAZÚ" {
		t.Errorf("department = %q, want CAAGUAZÚ", rec.Department)
	}
	if rec.District != "CORONEL OVIEDO" {
		t.Errorf("district = %q, want CORONEL OVIEDO", rec.District)
	}
	if rec.Event != event.Flood {
		t.Errorf("event = %q, want %q", rec.Event, event.Flood)
	}
	if rec.KitEventos != 5 || rec.KitSentencia != 2 || rec.ChapaZinc != 3 {
		t.Errorf("quantities = %d/%d/%d, want 5/2/3", rec.KitEventos, rec.KitSentencia, rec.ChapaZinc)
	}
	if rec.Year != 2021 || rec.Month != 3 {
		t.Errorf("year/month = %d/%d, want 2021/3", rec.Year, rec.Month)
	}
	if rec.DepartmentRank != 5 {
		t.Errorf("department rank = %d, want 5", rec.DepartmentRank)
	}
	if rec.TotalAid() != 10 {
		t.Errorf("total aid = %d, want 10", rec.TotalAid())
	}
}

func TestRunInfersFireFromComposition(t *testing.T) {
	p := newTestPipeline(t)

	clean, summary := p.Run([]RawRecord{{
		Fecha:     "15/03/2021",
		KitA:      "5",
		ChapaZinc: "3",
	}})

	if len(clean) != 1 {
		t.Fatalf("expected 1 record, got %d", len(clean))
	}
	if clean[0].Event != event.Fire {
		t.Errorf("event = %q, want %q", clean[0].Event, event.Fire)
	}
	if clean[0].Department != geo.DefaultDepartment {
		t.Errorf("department = %q, want %q", clean[0].Department, geo.DefaultDepartment)
	}
	if summary.Inferred != 1 {
		t.Errorf("inferred count = %d, want 1", summary.Inferred)
	}
}

func TestRunHardFilter(t *testing.T) {
	p := newTestPipeline(t)

	clean, summary := p.Run([]RawRecord{
		// Stock movement, excluded no matter the quantities.
		{Departamento: "CENTRAL", Evento: "PREPOS.", KitA: "100"},
		// Nothing delivered and no event: no-supplies sentinel.
		{Departamento: "CENTRAL"},
		// Labeled event but zero aid.
		{Departamento: "CENTRAL", Evento: "INCENDIO"},
	})

	if len(clean) != 0 {
		t.Fatalf("expected empty output, got %d records", len(clean))
	}
	if summary.DroppedDiscard != 1 {
		t.Errorf("discard count = %d, want 1", summary.DroppedDiscard)
	}
	if summary.DroppedNoSupplies != 1 {
		t.Errorf("no-supplies count = %d, want 1", summary.DroppedNoSupplies)
	}
	if summary.DroppedNoAid != 1 {
		t.Errorf("zero-aid count = %d, want 1", summary.DroppedNoAid)
	}
}

func TestRunMonotonicAndOrderPreserving(t *testing.T) {
	p := newTestPipeline(t)

	in := []RawRecord{
		{Departamento: "ITAPUA", Evento: "SEQUIA", KitA: "1"},
		{Departamento: "CENTRAL", Evento: "PREPOS.", KitA: "7"},
		{Departamento: "GUAIRA", Evento: "INCENDIO", KitA: "2"},
		{Departamento: "AMAMBAY", Evento: "COVID", KitA: "3"},
	}
	clean, summary := p.Run(in)

	if len(clean) > len(in) {
		t.Fatalf("output %d exceeds input %d", len(clean), len(in))
	}
	if summary.Processed != len(in) || summary.Kept != len(clean) {
		t.Errorf("summary %+v inconsistent with output size %d", summary, len(clean))
	}
	wantDepts := []string{"ITAPÚA", "GUAIRÁ", "AMAMBAY"}
	for i, rec := range clean {
		if rec.Department != wantDepts[i] {
			t.Errorf("record %d department = %q, want %q", i, rec.Department, wantDepts[i])
		}
		if !event.IsCanonical(rec.Event) {
			t.Errorf("record %d event %q is not a loadable category", i, rec.Event)
		}
	}
}

func TestRunDeterministic(t *testing.T) {
	p := newTestPipeline(t)

	in := []RawRecord{
		{Fecha: "2022-07-01", Departamento: "BOQUERON", KitA: "4"},
		{Fecha: "2022-07-02", Departamento: "ASUNCION", Distrito: "ASUNCION", Evento: "OLLA POP.", KitA: "9"},
		{Fecha: "2022-07-03", Departamento: "CAAGUAZU - repartición", Distrito: "VILLARICA", KitB: "12"},
	}
	first, _ := p.Run(in)
	second, _ := p.Run(in)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("two runs over the same batch diverged:\n%+v\n%+v", first, second)
	}
}
