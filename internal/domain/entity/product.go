package entity

// Product representa un producto de un proveedor con su posición de despliegue.
//
// Rank (orden) es nil para filas heredadas que nunca pasaron por normalización;
// el motor de ordenamiento las trata como "al final". Tras una normalización los
// ranks de un proveedor forman la secuencia densa 1..N sin huecos ni duplicados.
type Product struct {
	ID         int64
	ProviderID int64
	Name       string // único dentro de su proveedor
	Rank       *int32
}

// RankValue devuelve el rank o 0 si es nil (solo para logging/respuestas).
func (p *Product) RankValue() int32 {
	if p.Rank == nil {
		return 0
	}
	return *p.Rank
}
