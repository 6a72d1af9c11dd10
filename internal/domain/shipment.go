package domain

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending Status = "pending"
	StatusSigned  Status = "signed"
	// StatusDelivered is reserved for an external integration; nothing in this service sets it.
	StatusDelivered Status = "delivered"
)

const (
	DateLayout    = "2006-01-02"
	ArrivalLayout = "2006-01-02 15:04"

	DefaultItemUnit     = "boxes"
	DefaultItemQuantity = 1
)

type ShipmentItem struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Unit      string `json:"unit"`
	Delivered *int   `json:"delivered,omitempty"`
}

type Shipment struct {
	ID                  string         `json:"id"`
	Date                string         `json:"date"`
	Items               []ShipmentItem `json:"items"`
	Status              Status         `json:"status"`
	DriverName          string         `json:"driverName,omitempty"`
	Signature           string         `json:"signature,omitempty"`
	SignatureName       string         `json:"signatureName,omitempty"`
	Address             string         `json:"address,omitempty"`
	Project             string         `json:"project,omitempty"`
	TransportCompany    string         `json:"transportCompany,omitempty"`
	IsPartialDelivery   bool           `json:"isPartialDelivery,omitempty"`
	ActualTimeOfArrival string         `json:"actualTimeOfArrival,omitempty"`
}

// Clone returns a copy that shares no memory with s.
func (s Shipment) Clone() Shipment {
	out := s
	if s.Items != nil {
		out.Items = make([]ShipmentItem, len(s.Items))
		for i, it := range s.Items {
			out.Items[i] = it.Clone()
		}
	}
	return out
}

func (it ShipmentItem) Clone() ShipmentItem {
	out := it
	if it.Delivered != nil {
		v := *it.Delivered
		out.Delivered = &v
	}
	return out
}

func (s Shipment) IsPending() bool { return s.Status == StatusPending }

func (s Shipment) Item(itemID string) (ShipmentItem, bool) {
	for _, it := range s.Items {
		if it.ID == itemID {
			return it, true
		}
	}
	return ShipmentItem{}, false
}

// Draft is a shipment still being filled in by a company user.
type Draft struct {
	Date             string         `json:"date"`
	Items            []ShipmentItem `json:"items"`
	DriverName       string         `json:"driverName,omitempty"`
	Project          string         `json:"project,omitempty"`
	TransportCompany string         `json:"transportCompany,omitempty"`
	Address          string         `json:"address"`
}

func NewDraft(now time.Time) Draft {
	return Draft{
		Date:  now.Format(DateLayout),
		Items: []ShipmentItem{},
	}
}

func NewDraftItem(id string) ShipmentItem {
	return ShipmentItem{
		ID:       id,
		Quantity: DefaultItemQuantity,
		Unit:     DefaultItemUnit,
	}
}

func (d Draft) Clone() Draft {
	out := d
	out.Items = make([]ShipmentItem, len(d.Items))
	for i, it := range d.Items {
		out.Items[i] = it.Clone()
	}
	return out
}

type ValidationOptions struct {
	RequireProject          bool
	RequireTransportCompany bool
}

func DefaultValidationOptions() ValidationOptions {
	return ValidationOptions{RequireProject: true, RequireTransportCompany: true}
}

// Validate reports the first missing required field, checked in form order.
func (d Draft) Validate(opts ValidationOptions) error {
	switch {
	case len(d.Items) == 0:
		return ErrNoItems
	case strings.TrimSpace(d.DriverName) == "":
		return ErrNoDriver
	case opts.RequireProject && strings.TrimSpace(d.Project) == "":
		return ErrNoProject
	case opts.RequireTransportCompany && strings.TrimSpace(d.TransportCompany) == "":
		return ErrNoTransportCompany
	case strings.TrimSpace(d.Address) == "":
		return ErrNoAddress
	}
	return nil
}

// NewShipment turns a valid draft into a pending shipment. Items are not validated.
func NewShipment(id string, d Draft, opts ValidationOptions) (Shipment, error) {
	if err := d.Validate(opts); err != nil {
		return Shipment{}, err
	}
	d = d.Clone()
	for i := range d.Items {
		d.Items[i].Delivered = nil
	}
	return Shipment{
		ID:               id,
		Date:             d.Date,
		Items:            d.Items,
		Status:           StatusPending,
		DriverName:       d.DriverName,
		Address:          d.Address,
		Project:          d.Project,
		TransportCompany: d.TransportCompany,
	}, nil
}
