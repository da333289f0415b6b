package domain

import "fmt"

// region maps a coordinate range to a district and state. The table is the
// geocoding fallback: coarse, but it keeps the risk map usable when the
// reverse-geocoding service is down.
type region struct {
	box      boundingBox
	district string
	state    string
}

var regionTable = []region{
	{boundingBox{29.5, 32.5, 73.8, 76.9}, "Ludhiana", "Punjab"},
	{boundingBox{27.5, 30.9, 74.5, 78.2}, "Hisar", "Haryana"},
	{boundingBox{25.0, 29.4, 77.0, 84.6}, "Lucknow", "Uttar Pradesh"},
	{boundingBox{24.2, 27.5, 83.3, 88.1}, "Patna", "Bihar"},
	{boundingBox{21.5, 27.2, 85.8, 89.9}, "Kolkata", "West Bengal"},
	{boundingBox{17.8, 22.6, 81.4, 87.5}, "Cuttack", "Odisha"},
	{boundingBox{23.1, 30.2, 69.5, 78.3}, "Jaipur", "Rajasthan"},
	{boundingBox{20.1, 24.7, 68.2, 74.5}, "Ahmedabad", "Gujarat"},
	{boundingBox{21.1, 26.9, 74.0, 82.8}, "Bhopal", "Madhya Pradesh"},
	{boundingBox{15.6, 22.0, 72.6, 80.9}, "Nagpur", "Maharashtra"},
	{boundingBox{15.8, 19.9, 77.2, 81.8}, "Hyderabad", "Telangana"},
	{boundingBox{12.6, 19.1, 76.8, 84.8}, "Vijayawada", "Andhra Pradesh"},
	{boundingBox{11.5, 18.5, 74.0, 78.6}, "Bengaluru", "Karnataka"},
	{boundingBox{8.0, 13.6, 76.2, 80.4}, "Thanjavur", "Tamil Nadu"},
	{boundingBox{8.2, 12.8, 74.8, 77.4}, "Thrissur", "Kerala"},
	{boundingBox{21.0, 24.1, 81.0, 84.4}, "Raipur", "Chhattisgarh"},
	{boundingBox{26.0, 28.2, 89.7, 96.0}, "Dibrugarh", "Assam"},
}

// LookupRegion resolves a coordinate to a district/state through the fallback
// table. The first matching range wins; more specific regions are listed
// before the broad ones they overlap.
func LookupRegion(lat, lon float64) (Place, bool) {
	for _, r := range regionTable {
		if r.box.contains(lat, lon) {
			return Place{
				District:    r.district,
				State:       r.state,
				DisplayName: fmt.Sprintf("%s, %s", r.district, r.state),
			}, true
		}
	}
	return Place{DisplayName: "Location details unavailable"}, false
}
