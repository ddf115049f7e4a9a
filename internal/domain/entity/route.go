package entity

// Route is a served origin -> destination pair
type Route struct {
	Origin             string `json:"origin"`
	Destination        string `json:"destination"`
	OriginCountry      string `json:"origin_country"`
	DestinationCountry string `json:"destination_country"`
}
