package enums

// ProductUnit is the selling unit a product is priced in.
type ProductUnit string

const (
	ProductUnitKg    ProductUnit = "kg"
	ProductUnitGram  ProductUnit = "g"
	ProductUnitPiece ProductUnit = "piece"
	ProductUnitLitre ProductUnit = "litre"
	ProductUnitDozen ProductUnit = "dozen"
	ProductUnitPack  ProductUnit = "pack"
)

func (u ProductUnit) IsValid() bool {
	switch u {
	case ProductUnitKg, ProductUnitGram, ProductUnitPiece, ProductUnitLitre, ProductUnitDozen, ProductUnitPack:
		return true
	}
	return false
}
