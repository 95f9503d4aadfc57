package movies

// Record is an item as it is stored, with every attribute it was written
// with. The read endpoints return records rather than Movie or CastMember so
// that attributes outside those types pass through.
type Record map[string]any

// Str returns the named attribute if it is a string.
func (r Record) Str(name string) string {
	s, _ := r[name].(string)
	return s
}
