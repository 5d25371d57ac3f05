package location

import "wayfarer/internal/types"

// SampleRegions is the bundled catalogue used by the offline source and the
// Elasticsearch seeding command.
func SampleRegions() []Region {
	return []Region{
		{
			Name:   "Banff",
			Center: types.Point{Lat: 51.1784, Lng: -115.5708},
			Records: []Record{
				{ID: "banff-01", Name: "Johnston Canyon Trail", Latitude: 51.2454, Longitude: -115.8395, Rating: 4.8, PriceLevel: 0, Categories: []string{"hiking", "park"}},
				{ID: "banff-02", Name: "Sulphur Mountain Gondola", Latitude: 51.1441, Longitude: -115.5735, Rating: 4.6, PriceLevel: 3, Categories: []string{"tourist_attraction", "mountain"}},
				{ID: "banff-03", Name: "Lake Louise", Latitude: 51.4254, Longitude: -116.1773, Rating: 4.9, PriceLevel: 0, Categories: []string{"natural_feature", "lake"}},
				{ID: "banff-04", Name: "Banff Upper Hot Springs", Latitude: 51.1519, Longitude: -115.5616, Rating: 4.2, PriceLevel: 2, Categories: []string{"spa"}},
				{ID: "banff-05", Name: "Whyte Museum of the Canadian Rockies", Latitude: 51.1760, Longitude: -115.5728, Rating: 4.5, PriceLevel: 1, Categories: []string{"museum"}},
				{ID: "banff-06", Name: "Tunnel Mountain Campground", Latitude: 51.1905, Longitude: -115.5260, Rating: 4.4, PriceLevel: 1, Categories: []string{"campground", "camping"}},
				{ID: "banff-07", Name: "Bow River Rafting", Latitude: 51.1796, Longitude: -115.5590, Rating: 4.7, PriceLevel: 2, Categories: []string{"rafting"}},
				{ID: "banff-08", Name: "The Bison Restaurant", Latitude: 51.1779, Longitude: -115.5712, Rating: 4.3, PriceLevel: 3, Categories: []string{"restaurant"}},
				{ID: "banff-09", Name: "Moraine Lake", Latitude: 51.3217, Longitude: -116.1860, Rating: 4.9, PriceLevel: 0, Categories: []string{"natural_feature", "photography"}},
			},
		},
		{
			Name:   "Paris",
			Center: types.Point{Lat: 48.8566, Lng: 2.3522},
			Records: []Record{
				{ID: "paris-01", Name: "Louvre Museum", Latitude: 48.8606, Longitude: 2.3376, Rating: 4.7, PriceLevel: 2, Categories: []string{"museum", "art"}},
				{ID: "paris-02", Name: "Eiffel Tower", Latitude: 48.8584, Longitude: 2.2945, Rating: 4.6, PriceLevel: 3, Categories: []string{"tourist_attraction", "architecture"}},
				{ID: "paris-03", Name: "Musée d'Orsay", Latitude: 48.8600, Longitude: 2.3266, Rating: 4.8, PriceLevel: 2, Categories: []string{"museum", "art"}},
				{ID: "paris-04", Name: "Le Marais", Latitude: 48.8590, Longitude: 2.3620, Rating: 4.5, PriceLevel: 2, Categories: []string{"shopping", "nightlife"}},
				{ID: "paris-05", Name: "Jardin du Luxembourg", Latitude: 48.8462, Longitude: 2.3372, Rating: 4.7, PriceLevel: 0, Categories: []string{"park"}},
				{ID: "paris-06", Name: "Le Cordon Bleu", Latitude: 48.8417, Longitude: 2.2846, Rating: 4.4, PriceLevel: 4, Categories: []string{"cooking classes"}},
				{ID: "paris-07", Name: "Montmartre", Latitude: 48.8867, Longitude: 2.3431, Rating: 4.6, PriceLevel: 1, Categories: []string{"art", "history"}},
				{ID: "paris-08", Name: "Le Jules Verne", Latitude: 48.8583, Longitude: 2.2944, Rating: 4.5, PriceLevel: 4, Categories: []string{"fine dining"}},
			},
		},
		{
			Name:   "Kyoto",
			Center: types.Point{Lat: 35.0116, Lng: 135.7681},
			Records: []Record{
				{ID: "kyoto-01", Name: "Fushimi Inari Taisha", Latitude: 34.9671, Longitude: 135.7727, Rating: 4.8, PriceLevel: 0, Categories: []string{"place_of_worship", "hiking"}},
				{ID: "kyoto-02", Name: "Kinkaku-ji", Latitude: 35.0394, Longitude: 135.7292, Rating: 4.7, PriceLevel: 1, Categories: []string{"place_of_worship", "architecture"}},
				{ID: "kyoto-03", Name: "Arashiyama Bamboo Grove", Latitude: 35.0170, Longitude: 135.6713, Rating: 4.5, PriceLevel: 0, Categories: []string{"natural_feature", "forest"}},
				{ID: "kyoto-04", Name: "Nishiki Market", Latitude: 35.0050, Longitude: 135.7649, Rating: 4.4, PriceLevel: 2, Categories: []string{"street food"}},
				{ID: "kyoto-05", Name: "Gion District", Latitude: 35.0037, Longitude: 135.7788, Rating: 4.6, PriceLevel: 3, Categories: []string{"history", "local customs"}},
				{ID: "kyoto-06", Name: "Kyoto National Museum", Latitude: 34.9899, Longitude: 135.7730, Rating: 4.5, PriceLevel: 1, Categories: []string{"museum"}},
				{ID: "kyoto-07", Name: "Kurama Onsen", Latitude: 35.1196, Longitude: 135.7706, Rating: 4.3, PriceLevel: 3, Categories: []string{"spa"}},
			},
		},
		{
			Name:   "Lisbon",
			Center: types.Point{Lat: 38.7223, Lng: -9.1393},
			Records: []Record{
				{ID: "lisbon-01", Name: "Belém Tower", Latitude: 38.6916, Longitude: -9.2160, Rating: 4.5, PriceLevel: 1, Categories: []string{"history", "architecture"}},
				{ID: "lisbon-02", Name: "Alfama", Latitude: 38.7118, Longitude: -9.1300, Rating: 4.6, PriceLevel: 1, Categories: []string{"city tours"}},
				{ID: "lisbon-03", Name: "Time Out Market", Latitude: 38.7069, Longitude: -9.1459, Rating: 4.5, PriceLevel: 2, Categories: []string{"street food", "restaurant"}},
				{ID: "lisbon-04", Name: "Bairro Alto", Latitude: 38.7135, Longitude: -9.1448, Rating: 4.3, PriceLevel: 2, Categories: []string{"nightlife", "bar"}},
				{ID: "lisbon-05", Name: "Oceanário de Lisboa", Latitude: 38.7635, Longitude: -9.0937, Rating: 4.7, PriceLevel: 2, Categories: []string{"aquarium"}},
				{ID: "lisbon-06", Name: "Carcavelos Beach", Latitude: 38.6780, Longitude: -9.3350, Rating: 4.5, PriceLevel: 0, Categories: []string{"beach"}},
				{ID: "lisbon-07", Name: "Gulbenkian Museum", Latitude: 38.7373, Longitude: -9.1545, Rating: 4.7, PriceLevel: 1, Categories: []string{"museum", "art"}},
			},
		},
	}
}
