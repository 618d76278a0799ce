package binder

// Pager realizes a long result list one page at a time.
type Pager struct {
	size      int
	threshold float64
	pages     int
	total     int
}

// NewPager creates a pager of size records per page that loads the next page
// once the scroll position passes threshold of the scrollable extent.
func NewPager(size int, threshold float64) *Pager {
	if size <= 0 {
		size = 50
	}
	if threshold <= 0 || threshold > 1 {
		threshold = 0.8
	}
	return &Pager{size: size, threshold: threshold, pages: 1}
}

// Reset starts over at the first page of a list of total records.
func (p *Pager) Reset(total int) {
	p.total = total
	p.pages = 1
}

// Limit is the number of records currently realized.
func (p *Pager) Limit() int {
	return min(p.pages*p.size, p.total)
}

// More reports whether records remain beyond Limit.
func (p *Pager) More() bool {
	return p.pages*p.size < p.total
}

// Scroll records a scroll position out of extent and reports whether the next
// page was added. An extent of zero or less means the content does not scroll,
// which counts as being at the end.
func (p *Pager) Scroll(position, extent float64) bool {
	if !p.More() {
		return false
	}
	if extent > 0 && position < p.threshold*extent {
		return false
	}
	p.pages++
	return true
}

// Page returns the realized prefix of records.
func Page[R any](p *Pager, records []R) []R {
	return records[:min(p.Limit(), len(records))]
}
