package application

import "github.com/RaikyD/digital-link/internal/domain"

var (
	Drivers            = []string{"Driver 1", "Driver 2", "Driver 3", "Knut Hansen"}
	Projects           = []string{"Aker Solutions", "Equinor"}
	TransportCompanies = []string{"Schenker", "Royal Transport", "Tenden Transport"}
)

// SeedDemo fills an empty store with the demo shipments and returns how many were added.
func SeedDemo(store *ShipmentStore) int {
	if store.Len() > 0 {
		return 0
	}
	demo := []domain.Shipment{
		demoShipment("1", "2024-01-20", "Driver 1", "123 Main St, Oslo", "Electronics Package", 3, "boxes"),
		demoShipment("2", "2024-01-20", "Driver 2", "456 Park Ave, Bergen", "Office Supplies", 5, "boxes"),
		demoShipment("3", "2024-01-21", "Driver 3", "789 Oak Rd, Trondheim", "Furniture", 2, "pallets"),
		demoShipment("4", "2024-01-21", "Driver 1", "321 Pine St, Stavanger", "Medical Supplies", 4, "boxes"),
		demoShipment("5", "2024-01-22", "Driver 2", "654 Elm St, Tromsø", "Construction Materials", 1, "pallet"),
	}
	for _, sh := range demo {
		store.Append(sh)
	}
	return len(demo)
}

func demoShipment(id, date, driver, address, item string, qty int, unit string) domain.Shipment {
	return domain.Shipment{
		ID:         id,
		Date:       date,
		Status:     domain.StatusPending,
		DriverName: driver,
		Address:    address,
		Items: []domain.ShipmentItem{
			{ID: id, Name: item, Quantity: qty, Unit: unit},
		},
	}
}
