package enums

// CollectionType separates the auto-created wishlist from regular binders.
type CollectionType string

const (
	CollectionTypeStandard CollectionType = "standard"
	CollectionTypeWishlist CollectionType = "wishlist"
)

var validCollectionTypes = []CollectionType{
	CollectionTypeStandard,
	CollectionTypeWishlist,
}

// String implements fmt.Stringer.
func (c CollectionType) String() string {
	return string(c)
}

// IsValid reports whether the value is a known CollectionType.
func (c CollectionType) IsValid() bool {
	for _, candidate := range validCollectionTypes {
		if candidate == c {
			return true
		}
	}
	return false
}
