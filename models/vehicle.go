package models

import (
	"encoding/json"
	"fmt"
)

// VehicleStatus enum
type VehicleStatus string

const (
	Available VehicleStatus = "Available"
	Busy      VehicleStatus = "Busy"
)

// Vehicle is a collection truck and the driver operating it.
// Records are maintained outside the complaint lifecycle, so the json keys
// follow the trucks.json file the fleet office edits.
type Vehicle struct {
	TruckID     string        `bson:"truckId" json:"truck_id"`
	DriverName  string        `bson:"driverName" json:"driver_name"`
	PhoneNumber string        `bson:"phoneNumber" json:"phone_no"`
	Area        string        `bson:"area" json:"area"`
	Status      VehicleStatus `bson:"status" json:"status"`
}

// UnmarshalJSON also accepts the camelCase keys used by the Mongo documents.
func (v *Vehicle) UnmarshalJSON(data []byte) error {
	type vehicleFields Vehicle
	var aux struct {
		vehicleFields
		TruckIDAlt     string `json:"truckId"`
		DriverNameAlt  string `json:"driverName"`
		PhoneNumberAlt string `json:"phoneNumber"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*v = Vehicle(aux.vehicleFields)
	if v.TruckID == "" {
		v.TruckID = aux.TruckIDAlt
	}
	if v.DriverName == "" {
		v.DriverName = aux.DriverNameAlt
	}
	if v.PhoneNumber == "" {
		v.PhoneNumber = aux.PhoneNumberAlt
	}
	return nil
}

// Label is the value written to Complaint.AssignedTo.
func (v Vehicle) Label() string {
	return fmt.Sprintf("%s (%s)", v.DriverName, v.TruckID)
}
