package utils

// Constants
const (
	ISO_DATE_LAYOUT     = "2006-01-02"
	DISPLAY_DATE_LAYOUT = "Mon, Jan 2"
	SEARCH_DATE_LAYOUT  = "02 January"
	WEIGHT_UNIT         = "kg"
)
