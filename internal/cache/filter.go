package cache

import "strconv"

// Filter identifies one cached listing scope: the unfiltered catalog or a
// single category. Each distinct filter maps to its own deterministic key.
type Filter struct {
	categoryID int64
	byCategory bool
}

func Unfiltered() Filter { return Filter{} }

func ByCategory(id int64) Filter { return Filter{categoryID: id, byCategory: true} }

// Category reports the category scope, if any.
func (f Filter) Category() (int64, bool) { return f.categoryID, f.byCategory }

func (f Filter) Key() string {
	if f.byCategory {
		return "products:category:" + strconv.FormatInt(f.categoryID, 10)
	}
	return "products:all"
}
