package dex

// Viewport describes the visible window over the loaded collection, in rows.
type Viewport struct {
	Offset int
	Height int
	Total  int
}

// Bottom returns the index just past the last visible row.
func (v Viewport) Bottom() int {
	return v.Offset + v.Height
}

// Trigger decides whether a viewport position asks for the next page.
type Trigger interface {
	Fire(v Viewport) bool
}

// DefaultRatio is the scroll position, as a fraction of the loaded list, that asks for more.
const DefaultRatio = 0.70

// ThresholdTrigger fires once (offset + height) / total reaches Ratio.
type ThresholdTrigger struct {
	Ratio float64
}

// Fire implements Trigger.
func (t ThresholdTrigger) Fire(v Viewport) bool {
	if v.Total <= 0 {
		return false
	}
	ratio := t.Ratio
	if ratio <= 0 || ratio > 1 {
		ratio = DefaultRatio
	}
	return float64(v.Bottom())/float64(v.Total) >= ratio
}

// BottomTrigger fires when the visible window reaches within Margin rows of the end.
type BottomTrigger struct {
	Margin int
}

// Fire implements Trigger.
func (t BottomTrigger) Fire(v Viewport) bool {
	if v.Total <= 0 {
		return false
	}
	return v.Bottom() >= v.Total-max(0, t.Margin)
}

// Pager tracks the current page in page mode.
type Pager struct {
	page     int
	pageSize int
	total    int
}

// NewPager starts at page 1.
func NewPager(pageSize, total int) *Pager {
	return &Pager{page: 1, pageSize: max(1, pageSize), total: max(0, total)}
}

// Page returns the current page, 1-based.
func (p *Pager) Page() int {
	return p.page
}

// Pages returns ceil(total / pageSize), at least 1.
func (p *Pager) Pages() int {
	return max(1, (p.total+p.pageSize-1)/p.pageSize)
}

// Offset returns the list offset of the current page.
func (p *Pager) Offset() int {
	return (p.page - 1) * p.pageSize
}

// SetTotal updates the collection size and re-clamps the current page.
func (p *Pager) SetTotal(total int) {
	p.total = max(0, total)
	p.page = min(p.page, p.Pages())
}

// Set moves to page n clamped to [1, Pages()] and reports whether the page changed.
// A change means the current page must be re-fetched.
func (p *Pager) Set(n int) (int, bool) {
	n = max(1, min(n, p.Pages()))
	if n == p.page {
		return n, false
	}
	p.page = n
	return n, true
}

// Next moves one page forward.
func (p *Pager) Next() (int, bool) {
	return p.Set(p.page + 1)
}

// Prev moves one page back.
func (p *Pager) Prev() (int, bool) {
	return p.Set(p.page - 1)
}
