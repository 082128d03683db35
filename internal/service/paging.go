package service

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// clampPage applies the default page size and the hard cap. The cap is a
// hardening measure so a caller cannot request an unbounded result set.
func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	return offset, limit
}
