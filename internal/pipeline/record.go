package pipeline

import "time"

// RawRecord is one distribution entry exactly as the operator typed
// it. Every field is free text; the quantity columns may hold numbers,
// decimals with comma separators, or garbage.
type RawRecord struct {
	Fecha             string
	Departamento      string
	Distrito          string
	Localidad         string
	Evento            string
	KitA              string
	KitB              string
	ChapaFibrocemento string
	ChapaZinc         string
	Colchones         string
	Frazadas          string
	Terciadas         string
	Puntales          string
	CarpasPlasticas   string
}

// CleanRecord is the normalized form ready for the warehouse. A record
// that survives the pipeline always has TotalAid() > 0 and a canonical
// (or audit-retained) event that is never a discard or no-supplies
// sentinel.
type CleanRecord struct {
	Date       *time.Time
	Department string
	District   string
	Locality   string
	Event      string

	KitEventos        int
	KitSentencia      int
	ChapaFibrocemento int
	ChapaZinc         int
	Colchones         int
	Frazadas          int
	Terciadas         int
	Puntales          int
	CarpasPlasticas   int

	Year           int
	Month          int
	DepartmentRank int
}

// TotalKits is the sum of the two kit programs.
func (c *CleanRecord) TotalKits() int {
	return c.KitEventos + c.KitSentencia
}

// TotalMaterials sums the seven material columns.
func (c *CleanRecord) TotalMaterials() int {
	return c.ChapaFibrocemento + c.ChapaZinc + c.Colchones +
		c.Frazadas + c.Terciadas + c.Puntales + c.CarpasPlasticas
}

// TotalAid is the overall quantity delivered; records at zero are
// dropped by the pipeline.
func (c *CleanRecord) TotalAid() int {
	return c.TotalKits() + c.TotalMaterials()
}
