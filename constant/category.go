package constant

// Category identifies one of the fixed product partitions. Each partition is
// backed by its own table and is never queried together with another one.
type Category string

const (
	CategorySeeds       Category = "seeds"
	CategoryVegetables  Category = "vegetables"
	CategoryPlants      Category = "plants"
	CategoryFertilizers Category = "fertilizers"
	CategorySampling    Category = "sampling"
)

// Categories returns all partitions in their canonical order.
func Categories() []Category {
	return []Category{
		CategorySeeds,
		CategoryVegetables,
		CategoryPlants,
		CategoryFertilizers,
		CategorySampling,
	}
}

func (c Category) Valid() bool {
	switch c {
	case CategorySeeds, CategoryVegetables, CategoryPlants, CategoryFertilizers, CategorySampling:
		return true
	}
	return false
}

func (c Category) String() string {
	return string(c)
}
