package entity

// Provider representa un proveedor de una tienda.
type Provider struct {
	ID      int64
	StoreID int64
	Name    string // único dentro de su tienda
}
