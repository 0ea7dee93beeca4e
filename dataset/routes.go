package dataset

import "cityflow/simulator/models"

// intersections around University Park, MD, from the April 2025 traffic
// calming implementation plan.
var intersections = models.Intersections{
	1:  {Lat: 38.9751, Lng: -76.9481},
	2:  {Lat: 38.9755, Lng: -76.9518},
	3:  {Lat: 38.9746, Lng: -76.9500},
	4:  {Lat: 38.9712, Lng: -76.9491},
	5:  {Lat: 38.9684, Lng: -76.9487},
	6:  {Lat: 38.9664, Lng: -76.9435},
	7:  {Lat: 38.9656, Lng: -76.9415},
	8:  {Lat: 38.9649, Lng: -76.9393},
	9:  {Lat: 38.9659, Lng: -76.9391},
	10: {Lat: 38.9667, Lng: -76.9390},
	11: {Lat: 38.9670, Lng: -76.9388},
	12: {Lat: 38.9676, Lng: -76.9387},
	13: {Lat: 38.9686, Lng: -76.9387},
	14: {Lat: 38.9695, Lng: -76.9385},
	15: {Lat: 38.9728, Lng: -76.9380},
	16: {Lat: 38.9739, Lng: -76.9380},
	17: {Lat: 38.9763, Lng: -76.9379},
	18: {Lat: 38.9785, Lng: -76.9517},
	19: {Lat: 38.9777, Lng: -76.9486},
	20: {Lat: 38.9773, Lng: -76.9473},
	21: {Lat: 38.9776, Lng: -76.9522},
	22: {Lat: 38.9758, Lng: -76.9509},
	23: {Lat: 38.9723, Lng: -76.9484},
	24: {Lat: 38.9745, Lng: -76.9454},
	25: {Lat: 38.9755, Lng: -76.9444},
	26: {Lat: 38.9756, Lng: -76.9411},
	27: {Lat: 38.9704, Lng: -76.9422},
	28: {Lat: 38.9685, Lng: -76.9452},
	29: {Lat: 38.9673, Lng: -76.9470},
	30: {Lat: 38.9755, Lng: -76.9421},
}

var april2025Morning = []models.Route{
	{ID: 1, PathNodes: []int{15, 14, 13, 12}, Count: 96, Desc: "Pineway Cross-Town Westbound"},
	{ID: 2, PathNodes: []int{15, 16, 17, 18}, Count: 87, Desc: "Pineway Cross-Town Eastbound"},
	{ID: 3, PathNodes: []int{3, 8, 13, 18}, Count: 78, Desc: "Adelphi Southbound Cut-Through"},
	{ID: 4, PathNodes: []int{23, 18, 13, 8}, Count: 71, Desc: "Adelphi Northbound Cut-Through"},
	{ID: 5, PathNodes: []int{12, 13, 14, 15}, Count: 68, Desc: "Wells Parkway Eastbound"},
	{ID: 6, PathNodes: []int{2, 7, 12}, Count: 64, Desc: "University Blvd to Wells"},
	{ID: 7, PathNodes: []int{12, 7, 2}, Count: 62, Desc: "Wells to University Blvd"},
	{ID: 8, PathNodes: []int{18, 17, 16, 15}, Count: 59, Desc: "Wells Parkway Westbound"},
	{ID: 9, PathNodes: []int{1, 6, 11, 16}, Count: 56, Desc: "Route 1 Southbound"},
	{ID: 10, PathNodes: []int{16, 11, 6, 1}, Count: 54, Desc: "Route 1 Northbound"},
	{ID: 11, PathNodes: []int{3, 4, 9, 14}, Count: 51, Desc: "Adelphi to Pineway"},
	{ID: 12, PathNodes: []int{14, 9, 4, 3}, Count: 48, Desc: "Pineway to Adelphi"},
	{ID: 13, PathNodes: []int{8, 9, 10}, Count: 45, Desc: "Local Connector South"},
	{ID: 14, PathNodes: []int{10, 9, 8}, Count: 43, Desc: "Local Connector North"},
	{ID: 15, PathNodes: []int{5, 10, 15, 20}, Count: 41, Desc: "Queens Chapel Cross-Through"},
	{ID: 16, PathNodes: []int{20, 15, 10, 5}, Count: 39, Desc: "Queens Chapel Return"},
	{ID: 17, PathNodes: []int{2, 3, 4, 5}, Count: 37, Desc: "University Blvd Eastbound"},
	{ID: 18, PathNodes: []int{5, 4, 3, 2}, Count: 35, Desc: "University Blvd Westbound"},
	{ID: 19, PathNodes: []int{11, 12, 13}, Count: 32, Desc: "Neighborhood Collector A"},
	{ID: 20, PathNodes: []int{13, 12, 11}, Count: 30, Desc: "Neighborhood Collector B"},
	{ID: 21, PathNodes: []int{6, 7, 8, 9}, Count: 28, Desc: "Residential Route East"},
	{ID: 22, PathNodes: []int{9, 8, 7, 6}, Count: 26, Desc: "Residential Route West"},
	{ID: 23, PathNodes: []int{16, 17, 18, 19}, Count: 24, Desc: "Pineway Extension East"},
	{ID: 24, PathNodes: []int{19, 18, 17, 16}, Count: 22, Desc: "Pineway Extension West"},
	{ID: 25, PathNodes: []int{1, 2, 3}, Count: 20, Desc: "Route 1 to University Short"},
	{ID: 26, PathNodes: []int{21, 22, 23}, Count: 18, Desc: "Western Bypass North"},
	{ID: 27, PathNodes: []int{23, 22, 21}, Count: 16, Desc: "Western Bypass South"},
	{ID: 28, PathNodes: []int{24, 25, 26}, Count: 14, Desc: "Central Corridor North"},
	{ID: 29, PathNodes: []int{26, 25, 24}, Count: 12, Desc: "Central Corridor South"},
	{ID: 30, PathNodes: []int{27, 28, 29}, Count: 10, Desc: "Eastern Collector North"},
}

var april2025Evening = []models.Route{
	{ID: 1, PathNodes: []int{15, 14, 13, 12}, Count: 112, Desc: "Pineway Cross-Town Westbound"},
	{ID: 2, PathNodes: []int{15, 16, 17, 18}, Count: 104, Desc: "Pineway Cross-Town Eastbound"},
	{ID: 3, PathNodes: []int{3, 8, 13, 18}, Count: 95, Desc: "Adelphi Southbound Cut-Through"},
	{ID: 4, PathNodes: []int{23, 18, 13, 8}, Count: 89, Desc: "Adelphi Northbound Cut-Through"},
	{ID: 5, PathNodes: []int{12, 13, 14, 15}, Count: 82, Desc: "Wells Parkway Eastbound"},
	{ID: 6, PathNodes: []int{2, 7, 12}, Count: 76, Desc: "University Blvd to Wells"},
	{ID: 7, PathNodes: []int{12, 7, 2}, Count: 73, Desc: "Wells to University Blvd"},
	{ID: 8, PathNodes: []int{18, 17, 16, 15}, Count: 69, Desc: "Wells Parkway Westbound"},
	{ID: 9, PathNodes: []int{1, 6, 11, 16}, Count: 65, Desc: "Route 1 Southbound"},
	{ID: 10, PathNodes: []int{16, 11, 6, 1}, Count: 61, Desc: "Route 1 Northbound"},
	{ID: 11, PathNodes: []int{3, 4, 9, 14}, Count: 58, Desc: "Adelphi to Pineway"},
	{ID: 12, PathNodes: []int{14, 9, 4, 3}, Count: 54, Desc: "Pineway to Adelphi"},
	{ID: 13, PathNodes: []int{8, 9, 10}, Count: 51, Desc: "Local Connector South"},
	{ID: 14, PathNodes: []int{10, 9, 8}, Count: 48, Desc: "Local Connector North"},
	{ID: 15, PathNodes: []int{5, 10, 15, 20}, Count: 45, Desc: "Queens Chapel Cross-Through"},
	{ID: 16, PathNodes: []int{20, 15, 10, 5}, Count: 42, Desc: "Queens Chapel Return"},
	{ID: 17, PathNodes: []int{2, 3, 4, 5}, Count: 40, Desc: "University Blvd Eastbound"},
	{ID: 18, PathNodes: []int{5, 4, 3, 2}, Count: 38, Desc: "University Blvd Westbound"},
	{ID: 19, PathNodes: []int{11, 12, 13}, Count: 35, Desc: "Neighborhood Collector A"},
	{ID: 20, PathNodes: []int{13, 12, 11}, Count: 33, Desc: "Neighborhood Collector B"},
}

var dec2025Morning = []models.Route{
	{ID: 1, PathNodes: []int{15, 14, 13, 12}, Count: 68, Desc: "Pineway Cross-Town Westbound"},
	{ID: 2, PathNodes: []int{15, 16, 17, 18}, Count: 64, Desc: "Pineway Cross-Town Eastbound"},
	{ID: 3, PathNodes: []int{3, 8, 13, 18}, Count: 52, Desc: "Adelphi Southbound Cut-Through"},
	{ID: 4, PathNodes: []int{23, 18, 13, 8}, Count: 49, Desc: "Adelphi Northbound Cut-Through"},
	{ID: 5, PathNodes: []int{12, 13, 14, 15}, Count: 58, Desc: "Wells Parkway Eastbound"},
	{ID: 6, PathNodes: []int{2, 7, 12}, Count: 55, Desc: "University Blvd to Wells"},
	{ID: 7, PathNodes: []int{12, 7, 2}, Count: 53, Desc: "Wells to University Blvd"},
	{ID: 8, PathNodes: []int{18, 17, 16, 15}, Count: 51, Desc: "Wells Parkway Westbound"},
	{ID: 9, PathNodes: []int{1, 6, 11, 16}, Count: 47, Desc: "Route 1 Southbound"},
	{ID: 10, PathNodes: []int{16, 11, 6, 1}, Count: 45, Desc: "Route 1 Northbound"},
	{ID: 11, PathNodes: []int{3, 4, 9, 14}, Count: 38, Desc: "Adelphi to Pineway"},
	{ID: 12, PathNodes: []int{14, 9, 4, 3}, Count: 36, Desc: "Pineway to Adelphi"},
	{ID: 13, PathNodes: []int{8, 9, 10}, Count: 34, Desc: "Local Connector South"},
	{ID: 14, PathNodes: []int{10, 9, 8}, Count: 32, Desc: "Local Connector North"},
	{ID: 15, PathNodes: []int{5, 10, 15, 20}, Count: 30, Desc: "Queens Chapel Cross-Through"},
}

var dec2025Evening = []models.Route{
	{ID: 1, PathNodes: []int{15, 14, 13, 12}, Count: 84, Desc: "Pineway Cross-Town Westbound"},
	{ID: 2, PathNodes: []int{15, 16, 17, 18}, Count: 79, Desc: "Pineway Cross-Town Eastbound"},
	{ID: 3, PathNodes: []int{3, 8, 13, 18}, Count: 67, Desc: "Adelphi Southbound Cut-Through"},
	{ID: 4, PathNodes: []int{23, 18, 13, 8}, Count: 63, Desc: "Adelphi Northbound Cut-Through"},
	{ID: 5, PathNodes: []int{12, 13, 14, 15}, Count: 71, Desc: "Wells Parkway Eastbound"},
	{ID: 6, PathNodes: []int{2, 7, 12}, Count: 68, Desc: "University Blvd to Wells"},
	{ID: 7, PathNodes: []int{12, 7, 2}, Count: 65, Desc: "Wells to University Blvd"},
	{ID: 8, PathNodes: []int{18, 17, 16, 15}, Count: 61, Desc: "Wells Parkway Westbound"},
	{ID: 9, PathNodes: []int{1, 6, 11, 16}, Count: 58, Desc: "Route 1 Southbound"},
	{ID: 10, PathNodes: []int{16, 11, 6, 1}, Count: 55, Desc: "Route 1 Northbound"},
	{ID: 11, PathNodes: []int{3, 4, 9, 14}, Count: 48, Desc: "Adelphi to Pineway"},
	{ID: 12, PathNodes: []int{14, 9, 4, 3}, Count: 45, Desc: "Pineway to Adelphi"},
	{ID: 13, PathNodes: []int{8, 9, 10}, Count: 42, Desc: "Local Connector South"},
	{ID: 14, PathNodes: []int{10, 9, 8}, Count: 40, Desc: "Local Connector North"},
	{ID: 15, PathNodes: []int{5, 10, 15, 20}, Count: 37, Desc: "Queens Chapel Cross-Through"},
}

var jan2026Morning = []models.Route{
	{ID: 1, PathNodes: []int{15, 14, 13, 12}, Count: 72, Desc: "Pineway Cross-Town Westbound"},
	{ID: 2, PathNodes: []int{15, 16, 17, 18}, Count: 68, Desc: "Pineway Cross-Town Eastbound"},
	{ID: 3, PathNodes: []int{3, 8, 13, 18}, Count: 55, Desc: "Adelphi Southbound Cut-Through"},
	{ID: 4, PathNodes: []int{23, 18, 13, 8}, Count: 52, Desc: "Adelphi Northbound Cut-Through"},
	{ID: 5, PathNodes: []int{12, 13, 14, 15}, Count: 61, Desc: "Wells Parkway Eastbound"},
	{ID: 6, PathNodes: []int{2, 7, 12}, Count: 58, Desc: "University Blvd to Wells"},
	{ID: 7, PathNodes: []int{12, 7, 2}, Count: 56, Desc: "Wells to University Blvd"},
	{ID: 8, PathNodes: []int{18, 17, 16, 15}, Count: 53, Desc: "Wells Parkway Westbound"},
	{ID: 9, PathNodes: []int{1, 6, 11, 16}, Count: 50, Desc: "Route 1 Southbound"},
	{ID: 10, PathNodes: []int{16, 11, 6, 1}, Count: 48, Desc: "Route 1 Northbound"},
	{ID: 11, PathNodes: []int{3, 4, 9, 14}, Count: 40, Desc: "Adelphi to Pineway"},
	{ID: 12, PathNodes: []int{14, 9, 4, 3}, Count: 38, Desc: "Pineway to Adelphi"},
	{ID: 13, PathNodes: []int{8, 9, 10}, Count: 36, Desc: "Local Connector South"},
	{ID: 14, PathNodes: []int{10, 9, 8}, Count: 34, Desc: "Local Connector North"},
	{ID: 15, PathNodes: []int{5, 10, 15, 20}, Count: 32, Desc: "Queens Chapel Cross-Through"},
}

var realtimeBaseline = []models.Route{
	{ID: 1, PathNodes: []int{15, 14, 13, 12}, Count: 70, Desc: "Pineway Cross-Town Westbound"},
	{ID: 2, PathNodes: []int{15, 16, 17, 18}, Count: 66, Desc: "Pineway Cross-Town Eastbound"},
	{ID: 3, PathNodes: []int{3, 8, 13, 18}, Count: 54, Desc: "Adelphi Southbound Cut-Through"},
	{ID: 4, PathNodes: []int{23, 18, 13, 8}, Count: 51, Desc: "Adelphi Northbound Cut-Through"},
	{ID: 5, PathNodes: []int{12, 13, 14, 15}, Count: 60, Desc: "Wells Parkway Eastbound"},
	{ID: 6, PathNodes: []int{2, 7, 12}, Count: 57, Desc: "University Blvd to Wells"},
	{ID: 7, PathNodes: []int{12, 7, 2}, Count: 55, Desc: "Wells to University Blvd"},
	{ID: 8, PathNodes: []int{18, 17, 16, 15}, Count: 52, Desc: "Wells Parkway Westbound"},
	{ID: 9, PathNodes: []int{1, 6, 11, 16}, Count: 49, Desc: "Route 1 Southbound"},
	{ID: 10, PathNodes: []int{16, 11, 6, 1}, Count: 47, Desc: "Route 1 Northbound"},
	{ID: 11, PathNodes: []int{3, 4, 9, 14}, Count: 39, Desc: "Adelphi to Pineway"},
	{ID: 12, PathNodes: []int{14, 9, 4, 3}, Count: 37, Desc: "Pineway to Adelphi"},
	{ID: 13, PathNodes: []int{8, 9, 10}, Count: 35, Desc: "Local Connector South"},
	{ID: 14, PathNodes: []int{10, 9, 8}, Count: 33, Desc: "Local Connector North"},
	{ID: 15, PathNodes: []int{5, 10, 15, 20}, Count: 31, Desc: "Queens Chapel Cross-Through"},
}
