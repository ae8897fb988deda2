package entity

// Valores de ranking (tri-estado de cumplimiento).
const (
	RankingNotCompliant = 0 // no cumple
	RankingInProgress   = 1 // en proceso
	RankingCompliant    = 2 // cumple
)

// Item es una línea de checklist dentro de una categoría. Los contadores
// numéricos son datos suministrados: ninguno se deriva de otro (la
// diferencia NO se calcula a partir de stock y stock físico).
type Item struct {
	ID            int64 // 0 hasta persistir
	Name          string
	Ranking       *int // nil = sin marcar
	Observation   *string
	Price         int
	Stock         int
	Income        int
	OtherIncome   int
	TotalStock    int
	PhysicalStock int
	Difference    int
	Column15      int
}
