package navsync

// Stats counts what a synchronization pass changed.
type Stats struct {
	Added               int
	Removed             int
	Renamed             int
	Orphans             int
	PlaceholdersCreated int
	PlaceholdersPruned  int
}

// Merge returns the sum of s and o.
func (s Stats) Merge(o Stats) Stats {
	return Stats{
		Added:               s.Added + o.Added,
		Removed:             s.Removed + o.Removed,
		Renamed:             s.Renamed + o.Renamed,
		Orphans:             s.Orphans + o.Orphans,
		PlaceholdersCreated: s.PlaceholdersCreated + o.PlaceholdersCreated,
		PlaceholdersPruned:  s.PlaceholdersPruned + o.PlaceholdersPruned,
	}
}

// Changed reports whether any pass modified the tree.
func (s Stats) Changed() bool {
	return s != Stats{}
}
