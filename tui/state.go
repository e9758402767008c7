package tui

type state int

const (
	loadingState state = iota
	errorState
	listState
	searchState
	detailState
)

func (s state) String() string {
	switch s {
	case loadingState:
		return "loading"
	case errorState:
		return "error"
	case listState:
		return "list"
	case searchState:
		return "search"
	case detailState:
		return "detail"
	default:
		return "unknown"
	}
}
